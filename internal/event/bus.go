// Package event is a small in-process pub/sub bus for world events: joining
// a world, entities appearing or moving, chunks loading. Handlers run on the
// publisher's goroutine, so subscribers must not block.
package event

import (
	"log/slog"
	"sync"
)

type HandlerFunc func(evt any)

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]HandlerFunc),
	}
}

func (b *Bus) Subscribe(eventName string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish delivers evt to every subscriber of eventName, in subscription
// order. A panicking handler is logged and does not stop delivery.
func (b *Bus) Publish(eventName string, evt any) {
	b.mu.RLock()
	handlers := make([]HandlerFunc, len(b.handlers[eventName]))
	copy(handlers, b.handlers[eventName])
	b.mu.RUnlock()

	for _, handler := range handlers {
		deliver(eventName, handler, evt)
	}
}

func deliver(eventName string, h HandlerFunc, evt any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event handler panicked", "event", eventName, "panic", r)
		}
	}()
	h(evt)
}
