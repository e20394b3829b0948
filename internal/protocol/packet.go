package protocol

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

const MaxPacketSize = 2097152 // 2MB

// Body is the outbound half of the codec contract: an exact serialized size
// and a writer. The framing layer needs Size before any byte is written
// because the frame length prefix counts the id and payload together.
type Body interface {
	Size() int
	Encode(w io.Writer) error
}

// EncodePacket serializes one frame: Varint(length) | Varint(id) | payload.
// With a non-negative compression threshold the post-handshake format is used
// instead: Varint(length) | Varint(uncompressed size or 0) | (zlib) data.
func EncodePacket(id int32, body Body, threshold int) ([]byte, error) {
	rawSize := VarintSize(id) + body.Size()

	var raw bytes.Buffer
	raw.Grow(rawSize)
	if err := WriteVarint(&raw, id); err != nil {
		return nil, err
	}
	if err := body.Encode(&raw); err != nil {
		return nil, err
	}

	var frame bytes.Buffer
	if threshold < 0 {
		if err := WriteVarint(&frame, int32(raw.Len())); err != nil {
			return nil, err
		}
		frame.Write(raw.Bytes())
		return frame.Bytes(), nil
	}

	var data []byte
	var dataLength int32
	if raw.Len() >= threshold {
		var compressed bytes.Buffer
		z := zlib.NewWriter(&compressed)
		if _, err := z.Write(raw.Bytes()); err != nil {
			return nil, err
		}
		if err := z.Close(); err != nil {
			return nil, err
		}
		data = compressed.Bytes()
		dataLength = int32(raw.Len())
	} else {
		data = raw.Bytes()
	}

	if err := WriteVarint(&frame, int32(VarintSize(dataLength)+len(data))); err != nil {
		return nil, err
	}
	if err := WriteVarint(&frame, dataLength); err != nil {
		return nil, err
	}
	frame.Write(data)
	return frame.Bytes(), nil
}

// WritePacket emits one frame in a single Write call so whole frames are never
// interleaved with frames written by another caller.
func WritePacket(w io.Writer, id int32, body Body, threshold int) error {
	frame, err := EncodePacket(id, body, threshold)
	if err != nil {
		return err
	}
	_, err = w.Write(frame)
	return err
}

// ReadFrame reads one frame off the wire and returns its packet id plus a
// bounded stream over the payload. The caller owns draining the stream when a
// decode fails or no handler matches.
func ReadFrame(r io.Reader, threshold int) (int32, *Stream, error) {
	packetLen, err := ReadVarint(r)
	if err != nil {
		return 0, nil, err
	}
	if packetLen <= 0 {
		return 0, nil, ErrInvalidPacket
	}
	if packetLen > MaxPacketSize {
		return 0, nil, ErrPacketTooLarge
	}

	data := make([]byte, packetLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return 0, nil, err
	}

	if threshold >= 0 {
		rd := bytes.NewReader(data)
		dataLen, err := ReadVarint(rd)
		if err != nil {
			return 0, nil, err
		}
		if dataLen != 0 {
			if dataLen < 0 || dataLen > MaxPacketSize {
				return 0, nil, ErrPacketTooLarge
			}
			z, err := zlib.NewReader(rd)
			if err != nil {
				return 0, nil, malformedf("bad zlib header: %v", err)
			}
			decompressed := make([]byte, dataLen)
			if _, err := io.ReadFull(z, decompressed); err != nil {
				z.Close()
				return 0, nil, malformedf("truncated zlib data: %v", err)
			}
			z.Close()
			data = decompressed
		} else {
			data = data[len(data)-rd.Len():]
		}
	}

	s := NewStream(bytes.NewReader(data), len(data))
	id, err := ReadVarint(s)
	if err != nil {
		return 0, nil, err
	}
	if id < 0 {
		return 0, nil, malformedf("negative packet id (%d)", id)
	}
	return id, s, nil
}
