package protocol

import (
	"errors"
	"fmt"
)

// The error taxonomy of the read path. Anything wrapping ErrMalformed, ErrNBT
// or ErrDomain is recoverable at the frame level: the current frame is drained
// and the next one is read normally. Plain I/O errors abort the connection.
var (
	ErrMalformed = errors.New("malformed packet")

	ErrVarIntTooLong  = fmt.Errorf("%w: varint is too long", ErrMalformed)
	ErrVarLongTooLong = fmt.Errorf("%w: varlong is too long", ErrMalformed)
	ErrInvalidPacket  = fmt.Errorf("%w: invalid packet structure", ErrMalformed)
	ErrPacketTooLarge = fmt.Errorf("%w: packet size exceeds maximum allowed", ErrMalformed)
	ErrFrameExhausted = fmt.Errorf("%w: no bytes remaining in frame", ErrMalformed)

	// ErrDomain marks game-level errors raised inside packet handlers, such
	// as a reference to an entity id that was never spawned.
	ErrDomain = errors.New("domain error")
)

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// UnknownPacketError reports a packet id with no handler registered for the
// current connection state.
type UnknownPacketError struct {
	State State
	ID    int32
}

func (e *UnknownPacketError) Error() string {
	return fmt.Sprintf("unknown packet id 0x%02x in state %s", e.ID, e.State)
}

// Recoverable reports whether the read loop may continue after err. Everything
// outside the taxonomy above is treated as an I/O failure and is fatal.
func Recoverable(err error) bool {
	var unknown *UnknownPacketError
	if errors.As(err, &unknown) {
		return true
	}
	return errors.Is(err, ErrMalformed) || errors.Is(err, ErrNBT) || errors.Is(err, ErrDomain)
}
