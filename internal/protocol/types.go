package protocol

import (
	"crypto/md5"
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
)

func ReadBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, err
	}
	switch buf[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, malformedf("invalid bool value (found %d)", buf[0])
	}
}

func WriteBool(w io.Writer, value bool) error {
	var b byte
	if value {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(r, buf[:])
	return buf[0], err
}

func WriteByte(w io.Writer, value byte) error {
	_, err := w.Write([]byte{value})
	return err
}

func ReadInt16(r io.Reader) (int16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

func WriteInt16(w io.Writer, value int16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadUnsignedShort(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func WriteUnsignedShort(w io.Writer, value uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], value)
	_, err := w.Write(buf[:])
	return err
}

func ReadInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func WriteInt32(w io.Writer, value int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadInt64(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func WriteInt64(w io.Writer, value int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func ReadFloat(r io.Reader) (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(buf[:])), nil
}

func WriteFloat(w io.Writer, value float32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadDouble(r io.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf[:])), nil
}

func WriteDouble(w io.Writer, value float64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadUUID(r io.Reader) (uuid.UUID, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return uuid.Nil, err
	}
	return uuid.UUID(buf), nil
}

func WriteUUID(w io.Writer, id uuid.UUID) error {
	_, err := w.Write(id[:])
	return err
}

// ReadString decodes the protocol's character-counted string: a Varint giving
// the number of characters (not bytes), then the UTF-8 bytes. The reader walks
// one lead byte per character and only accepts 1-3 byte sequences; rejecting
// 4-byte lead bytes is part of the wire contract, not an implementation limit.
func ReadString(r io.Reader) (string, error) {
	n, err := ReadVarint(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", malformedf("negative string length (%d)", n)
	}

	buf := make([]byte, 0, int(n)*3)
	var lead [1]byte
	for i := int32(0); i < n; i++ {
		if _, err := io.ReadFull(r, lead[:]); err != nil {
			return "", err
		}
		width := utf8CharWidth(lead[0])
		if width < 1 || width > 3 {
			return "", malformedf("invalid UTF-8 lead byte 0x%02x", lead[0])
		}
		start := len(buf)
		buf = append(buf, lead[0])
		buf = append(buf, make([]byte, width-1)...)
		if _, err := io.ReadFull(r, buf[start+1:]); err != nil {
			return "", err
		}
	}

	if !utf8.Valid(buf) {
		return "", malformedf("invalid UTF-8 string")
	}
	return string(buf), nil
}

func WriteString(w io.Writer, s string) error {
	if err := WriteVarint(w, int32(utf8.RuneCountInString(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func StringSize(s string) int {
	return VarintSize(int32(utf8.RuneCountInString(s))) + len(s)
}

// https://tools.ietf.org/html/rfc3629
var utf8CharWidths = [256]byte{}

func init() {
	for i := 0x00; i <= 0x7F; i++ {
		utf8CharWidths[i] = 1
	}
	for i := 0xC2; i <= 0xDF; i++ {
		utf8CharWidths[i] = 2
	}
	for i := 0xE0; i <= 0xEF; i++ {
		utf8CharWidths[i] = 3
	}
	for i := 0xF0; i <= 0xF4; i++ {
		utf8CharWidths[i] = 4
	}
}

func utf8CharWidth(b byte) int {
	return int(utf8CharWidths[b])
}

// GenerateOfflineUUID derives the version-3 UUID servers assign to
// offline-mode players: MD5("OfflinePlayer:" + username) with the version and
// RFC 4122 variant bits set.
func GenerateOfflineUUID(username string) uuid.UUID {
	hash := md5.Sum([]byte("OfflinePlayer:" + username))
	hash[6] = (hash[6] & 0x0F) | 0x30
	hash[8] = (hash[8] & 0x3F) | 0x80
	return uuid.UUID(hash)
}
