package protocol

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// State is one stage of the connection handshake sequence. Transitions are
// strictly forward; no phase is ever revisited.
type State int

const (
	Handshaking State = iota
	Status
	Login
	Configuration
	Play
)

// StateUnchanged is returned by handlers that do not transition.
const StateUnchanged State = -1

func (s State) String() string {
	switch s {
	case Handshaking:
		return "Handshaking"
	case Status:
		return "Status"
	case Login:
		return "Login"
	case Configuration:
		return "Configuration"
	case Play:
		return "Play"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Handler decodes one packet's payload from the bounded stream and applies it.
// It may return the next connection state to transition to, or StateUnchanged.
type Handler func(*Stream) (State, error)

// HandlerTable maps packet ids to handlers for one connection state.
type HandlerTable map[int32]Handler

// Receiver owns the connection state machine and per-state dispatch tables.
// Changing state swaps the active table; handing it the state it is already in
// is a programming error and panics.
type Receiver struct {
	mu        sync.Mutex
	state     State
	tables    map[State]HandlerTable
	handlers  HandlerTable
	threshold int
}

func NewReceiver(tables map[State]HandlerTable) *Receiver {
	return &Receiver{
		state:     Handshaking,
		tables:    tables,
		handlers:  tables[Handshaking],
		threshold: -1,
	}
}

func (r *Receiver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Receiver) ChangeState(next State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if next == r.state {
		panic(fmt.Sprintf("protocol: transition to current state %s", next))
	}
	r.state = next
	r.handlers = r.tables[next]
}

// SetThreshold enables the compressed frame format for every following packet.
func (r *Receiver) SetThreshold(t int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threshold = t
}

func (r *Receiver) Threshold() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.threshold
}

// Receive reads and dispatches exactly one frame. Unknown ids and failed
// decodes drain the rest of the frame before returning, so the next frame read
// starts aligned; only I/O errors leave the stream in an undefined position.
func (r *Receiver) Receive(conn io.Reader) error {
	id, s, err := ReadFrame(conn, r.Threshold())
	if err != nil {
		return err
	}

	r.mu.Lock()
	state := r.state
	h := r.handlers[id]
	r.mu.Unlock()

	if h == nil {
		if err := s.Drain(); err != nil {
			return err
		}
		return &UnknownPacketError{State: state, ID: id}
	}

	next, err := h(s)
	if err != nil {
		if Recoverable(err) {
			if derr := s.Drain(); derr != nil {
				return derr
			}
		}
		return err
	}

	if s.Remaining() > 0 {
		// Handler field list disagrees with the packet definition; not fatal,
		// but worth surfacing.
		slog.Warn("handler left unread payload bytes",
			"state", state, "packet_id", fmt.Sprintf("0x%02x", id), "remaining", s.Remaining())
		if err := s.Drain(); err != nil {
			return err
		}
	}

	if next != StateUnchanged {
		r.ChangeState(next)
	}
	return nil
}
