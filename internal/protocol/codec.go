package protocol

import "io"

// Decoder reads one value out of the current frame. Container decoders below
// thread the same Stream through every element so nested reads share one
// byte budget.
type Decoder[T any] func(*Stream) (T, error)

// Encoder writes one value; field order is serialization order and is part of
// the wire contract.
type Encoder[T any] func(io.Writer, T) error

// ReadOption decodes a boolean presence flag followed by the payload if set.
func ReadOption[T any](s *Stream, dec Decoder[T]) (*T, error) {
	present, err := ReadBool(s)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := dec(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func WriteOption[T any](w io.Writer, v *T, enc Encoder[T]) error {
	if err := WriteBool(w, v != nil); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return enc(w, *v)
}

// ReadPrefixedSlice decodes a Varint element count followed by that many
// elements.
func ReadPrefixedSlice[T any](s *Stream, dec Decoder[T]) ([]T, error) {
	n, err := ReadVarint(s)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, malformedf("negative sequence length (%d)", n)
	}
	out := make([]T, 0, min(int(n), 4096))
	for i := int32(0); i < n; i++ {
		v, err := dec(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func WritePrefixedSlice[T any](w io.Writer, values []T, enc Encoder[T]) error {
	if err := WriteVarint(w, int32(len(values))); err != nil {
		return err
	}
	for _, v := range values {
		if err := enc(w, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadFixedSlice decodes exactly n elements with no length prefix.
func ReadFixedSlice[T any](s *Stream, n int, dec Decoder[T]) ([]T, error) {
	out := make([]T, 0, min(n, 4096))
	for i := 0; i < n; i++ {
		v, err := dec(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadRemaining decodes elements until the frame's byte budget is exhausted.
func ReadRemaining[T any](s *Stream, dec Decoder[T]) ([]T, error) {
	var out []T
	for s.Remaining() > 0 {
		v, err := dec(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadRemainingBytes consumes the rest of the frame as a raw byte array.
func ReadRemainingBytes(s *Stream) ([]byte, error) {
	buf := make([]byte, s.Remaining())
	if _, err := io.ReadFull(s, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
