package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func loginFrames(t *testing.T, ids ...int32) *bytes.Buffer {
	t.Helper()
	var wire bytes.Buffer
	for _, id := range ids {
		frame, err := EncodePacket(id, &KeepAlive{ID: 99}, -1)
		if err != nil {
			t.Fatal(err)
		}
		wire.Write(frame)
	}
	return &wire
}

func TestReceiverDispatch(t *testing.T) {
	var got int64
	r := NewReceiver(map[State]HandlerTable{
		Login: {
			0x10: func(s *Stream) (State, error) {
				p, err := ParseKeepAlive(s)
				if err != nil {
					return StateUnchanged, err
				}
				got = p.ID
				return StateUnchanged, nil
			},
		},
	})
	r.ChangeState(Login)

	if err := r.Receive(loginFrames(t, 0x10)); err != nil {
		t.Fatal(err)
	}
	if got != 99 {
		t.Errorf("handler decoded %d, want 99", got)
	}
	if r.State() != Login {
		t.Errorf("state = %s, want Login", r.State())
	}
}

func TestReceiverUnknownPacketIsSkipped(t *testing.T) {
	var handled bool
	r := NewReceiver(map[State]HandlerTable{
		Login: {
			0x10: func(s *Stream) (State, error) {
				if _, err := ParseKeepAlive(s); err != nil {
					return StateUnchanged, err
				}
				handled = true
				return StateUnchanged, nil
			},
		},
	})
	r.ChangeState(Login)

	// An unregistered id followed by a known one: the first must be drained
	// so the second still decodes.
	wire := loginFrames(t, 0x55, 0x10)

	err := r.Receive(wire)
	var unknown *UnknownPacketError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownPacketError", err)
	}
	if unknown.ID != 0x55 || unknown.State != Login {
		t.Errorf("unknown = %+v", unknown)
	}
	if !Recoverable(err) {
		t.Error("unknown packet should be recoverable")
	}

	if err := r.Receive(wire); err != nil {
		t.Fatalf("frame after unknown id: %v", err)
	}
	if !handled {
		t.Error("second frame should have reached its handler")
	}
}

func TestReceiverRecoverableHandlerErrorDrains(t *testing.T) {
	r := NewReceiver(map[State]HandlerTable{
		Login: {
			0x10: func(s *Stream) (State, error) {
				// Consume one byte then give up.
				if _, err := ReadByte(s); err != nil {
					return StateUnchanged, err
				}
				return StateUnchanged, malformedf("test decode failure")
			},
			0x11: func(s *Stream) (State, error) {
				_, err := ParseKeepAlive(s)
				return StateUnchanged, err
			},
		},
	})
	r.ChangeState(Login)

	wire := loginFrames(t, 0x10, 0x11)

	if err := r.Receive(wire); !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want malformed", err)
	}
	// The failed frame was drained, so the next one is aligned.
	if err := r.Receive(wire); err != nil {
		t.Fatalf("frame after failed decode: %v", err)
	}
}

func TestReceiverStateTransition(t *testing.T) {
	r := NewReceiver(map[State]HandlerTable{
		Login: {
			0x10: func(s *Stream) (State, error) {
				if err := s.Drain(); err != nil {
					return StateUnchanged, err
				}
				return Configuration, nil
			},
		},
		Configuration: {
			0x10: func(s *Stream) (State, error) {
				return StateUnchanged, s.Drain()
			},
		},
	})
	r.ChangeState(Login)

	wire := loginFrames(t, 0x10, 0x10)

	if err := r.Receive(wire); err != nil {
		t.Fatal(err)
	}
	if r.State() != Configuration {
		t.Fatalf("state = %s, want Configuration", r.State())
	}
	// Same id now resolves through the Configuration table.
	if err := r.Receive(wire); err != nil {
		t.Fatal(err)
	}
}

func TestReceiverSameStatePanics(t *testing.T) {
	r := NewReceiver(nil)
	defer func() {
		if recover() == nil {
			t.Error("transition to the current state should panic")
		}
	}()
	r.ChangeState(Handshaking)
}

func TestReceiverThreshold(t *testing.T) {
	r := NewReceiver(nil)
	if r.Threshold() != -1 {
		t.Fatalf("initial threshold = %d, want -1", r.Threshold())
	}
	r.SetThreshold(256)
	if r.Threshold() != 256 {
		t.Fatalf("threshold = %d, want 256", r.Threshold())
	}
}

func TestReceiverLeftoverBytesAreNotFatal(t *testing.T) {
	r := NewReceiver(map[State]HandlerTable{
		Login: {
			// Reads nothing, leaving the whole payload unread.
			0x10: func(s *Stream) (State, error) {
				return StateUnchanged, nil
			},
			0x11: func(s *Stream) (State, error) {
				_, err := ParseKeepAlive(s)
				return StateUnchanged, err
			},
		},
	})
	r.ChangeState(Login)

	wire := loginFrames(t, 0x10, 0x11)

	if err := r.Receive(wire); err != nil {
		t.Fatalf("leftover bytes should only warn, got %v", err)
	}
	if err := r.Receive(wire); err != nil {
		t.Fatalf("next frame should stay aligned: %v", err)
	}
}
