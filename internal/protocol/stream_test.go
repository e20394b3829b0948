package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestStreamBudget(t *testing.T) {
	backing := bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	s := NewStream(backing, 5)

	if s.Remaining() != 5 {
		t.Fatalf("Remaining() = %d, want 5", s.Remaining())
	}

	buf := make([]byte, 3)
	if _, err := io.ReadFull(s, buf); err != nil {
		t.Fatal(err)
	}
	if s.Remaining() != 2 {
		t.Errorf("Remaining() after 3 bytes = %d, want 2", s.Remaining())
	}

	// A read larger than the budget is clamped to it.
	big := make([]byte, 10)
	n, err := s.Read(big)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("clamped read returned %d bytes, want 2", n)
	}
	if s.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", s.Remaining())
	}

	// The budget is spent even though the backing reader has bytes left.
	if _, err := s.Read(buf); !errors.Is(err, ErrFrameExhausted) {
		t.Errorf("read past budget: err = %v, want ErrFrameExhausted", err)
	}
	if backing.Len() != 3 {
		t.Errorf("backing reader has %d unread bytes, want 3", backing.Len())
	}
}

func TestStreamExhaustionIsRecoverable(t *testing.T) {
	s := NewStream(bytes.NewReader(nil), 0)
	_, err := s.Read(make([]byte, 1))
	if !Recoverable(err) {
		t.Fatalf("budget exhaustion should be recoverable, got %v", err)
	}
}

func TestStreamDrain(t *testing.T) {
	backing := bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7})
	s := NewStream(backing, 5)

	buf := make([]byte, 2)
	if _, err := io.ReadFull(s, buf); err != nil {
		t.Fatal(err)
	}

	if err := s.Drain(); err != nil {
		t.Fatalf("Drain(): %v", err)
	}
	if s.Remaining() != 0 {
		t.Errorf("Remaining() after drain = %d, want 0", s.Remaining())
	}
	// Bytes beyond the frame stay where they are.
	if backing.Len() != 2 {
		t.Errorf("backing reader has %d unread bytes, want 2", backing.Len())
	}

	// Draining an empty frame is a no-op.
	if err := s.Drain(); err != nil {
		t.Fatalf("second Drain(): %v", err)
	}
}

func TestStreamZeroLengthRead(t *testing.T) {
	s := NewStream(bytes.NewReader(nil), 0)
	if n, err := s.Read(nil); n != 0 || err != nil {
		t.Errorf("zero-length read = (%d, %v), want (0, nil)", n, err)
	}
}

func TestStreamUnderlyingEOFIsFatal(t *testing.T) {
	// The frame promises 4 bytes but the connection dies after 2: that is an
	// I/O failure, not a malformed packet.
	s := NewStream(bytes.NewReader([]byte{1, 2}), 4)
	_, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	_, err = io.ReadFull(s, make([]byte, 1))
	if err == nil || Recoverable(err) {
		t.Fatalf("err = %v, want a fatal error", err)
	}
}
