package protocol

import (
	"io"
	"math/bits"
)

const (
	segmentBits = 0x7F
	continueBit = 0x80

	maxVarintBytes  = 5
	maxVarLongBytes = 10
)

func ReadVarint(r io.Reader) (int32, error) {
	var value int32
	var buf [1]byte
	for i := 0; ; i++ {
		if i == maxVarintBytes {
			return 0, ErrVarIntTooLong
		}
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		b := buf[0]
		value |= int32(b&segmentBits) << (7 * i)
		if b&continueBit == 0 {
			break
		}
	}
	return value, nil
}

func WriteVarint(w io.Writer, value int32) error {
	uvalue := uint32(value)
	for {
		temp := byte(uvalue & segmentBits)
		uvalue >>= 7
		if uvalue != 0 {
			temp |= continueBit
		}
		if _, err := w.Write([]byte{temp}); err != nil {
			return err
		}
		if uvalue == 0 {
			return nil
		}
	}
}

func ReadVarLong(r io.Reader) (int64, error) {
	var value int64
	var buf [1]byte
	for i := 0; ; i++ {
		if i == maxVarLongBytes {
			return 0, ErrVarLongTooLong
		}
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		b := buf[0]
		value |= int64(b&segmentBits) << (7 * i)
		if b&continueBit == 0 {
			break
		}
	}
	return value, nil
}

func WriteVarLong(w io.Writer, value int64) error {
	uvalue := uint64(value)
	for {
		temp := byte(uvalue & segmentBits)
		uvalue >>= 7
		if uvalue != 0 {
			temp |= continueBit
		}
		if _, err := w.Write([]byte{temp}); err != nil {
			return err
		}
		if uvalue == 0 {
			return nil
		}
	}
}

// VarintSize returns the encoded length of value, needed by the framing layer
// before anything is written.
func VarintSize(value int32) int {
	if value == 0 {
		return 1
	}
	return (bits.Len32(uint32(value)) + 6) / 7
}

func VarLongSize(value int64) int {
	if value == 0 {
		return 1
	}
	return (bits.Len64(uint64(value)) + 6) / 7
}
