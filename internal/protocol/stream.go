package protocol

import "io"

// Stream bounds reads over a single frame's payload. Every read decrements the
// remaining budget; reading past it yields ErrFrameExhausted instead of
// touching bytes that belong to the next frame.
type Stream struct {
	r         io.Reader
	remaining int
}

func NewStream(r io.Reader, size int) *Stream {
	return &Stream{r: r, remaining: size}
}

// Remaining returns the number of payload bytes not yet consumed. A fully
// decoded frame leaves it at exactly zero.
func (s *Stream) Remaining() int {
	return s.remaining
}

func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if s.remaining <= 0 {
		return 0, ErrFrameExhausted
	}
	if len(p) > s.remaining {
		p = p[:s.remaining]
	}
	n, err := s.r.Read(p)
	s.remaining -= n
	return n, err
}

// Drain discards whatever is left of the frame so the next frame length read
// starts at the correct byte offset.
func (s *Stream) Drain() error {
	if s.remaining <= 0 {
		return nil
	}
	n, err := io.CopyN(io.Discard, s.r, int64(s.remaining))
	s.remaining -= int(n)
	return err
}
