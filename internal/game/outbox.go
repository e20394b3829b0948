package game

import "sync"

// Outbox is an unbounded FIFO of encoded frames from the tick loop to the
// reader goroutine. Push never blocks: the queue grows while the reader is
// busy, so the only places the ticker waits are its interval and locks.
type Outbox struct {
	mu     sync.Mutex
	frames [][]byte
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

// Push appends a frame to the queue.
func (o *Outbox) Push(frame []byte) {
	o.mu.Lock()
	o.frames = append(o.frames, frame)
	o.mu.Unlock()
}

// Pop removes and returns the oldest frame, reporting false when the queue
// is empty.
func (o *Outbox) Pop() ([]byte, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.frames) == 0 {
		return nil, false
	}
	frame := o.frames[0]
	o.frames = o.frames[1:]
	return frame, true
}

// Len reports how many frames are queued.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.frames)
}
