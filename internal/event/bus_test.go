package event

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSubscribeAndPublish(t *testing.T) {
	bus := NewBus()
	var received any
	bus.Subscribe(EventChunkLoaded, func(evt any) {
		received = evt
	})

	bus.Publish(EventChunkLoaded, &ChunkLoadedEvent{X: 3, Z: -2})

	e, ok := received.(*ChunkLoadedEvent)
	if !ok {
		t.Fatalf("handler received %T, want *ChunkLoadedEvent", received)
	}
	if e.X != 3 || e.Z != -2 {
		t.Errorf("handler received (%d, %d), want (3, -2)", e.X, e.Z)
	}
}

func TestPublishNoSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Publish("nonexistent", "data")
}

func TestMultipleSubscribers(t *testing.T) {
	bus := NewBus()
	var count int32

	for i := 0; i < 3; i++ {
		bus.Subscribe("test", func(evt any) {
			atomic.AddInt32(&count, 1)
		})
	}

	bus.Publish("test", "data")

	if count != 3 {
		t.Errorf("handlers called %d times, want 3", count)
	}
}

func TestEventsAreIndependent(t *testing.T) {
	bus := NewBus()
	var joined, appeared bool

	bus.Subscribe(EventWorldJoined, func(evt any) { joined = true })
	bus.Subscribe(EventEntityAppear, func(evt any) { appeared = true })

	bus.Publish(EventWorldJoined, &WorldJoinedEvent{})

	if !joined {
		t.Error("world.joined handler should have run")
	}
	if appeared {
		t.Error("entity.appear handler should not have run")
	}
}

func TestPanickingHandlerDoesNotStopDelivery(t *testing.T) {
	bus := NewBus()
	var after bool

	bus.Subscribe("test", func(evt any) { panic("boom") })
	bus.Subscribe("test", func(evt any) { after = true })

	bus.Publish("test", "data")

	if !after {
		t.Error("handler after the panicking one should still run")
	}
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewBus()
	var count atomic.Int64

	bus.Subscribe("test", func(evt any) {
		count.Add(1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish("test", "data")
		}()
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Subscribe("other", func(evt any) {})
		}()
	}
	wg.Wait()

	if count.Load() != 100 {
		t.Errorf("handler called %d times, want 100", count.Load())
	}
}
