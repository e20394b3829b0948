package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodePacketUncompressed(t *testing.T) {
	body := &KeepAlive{ID: 0x0102030405060708}
	frame, err := EncodePacket(S2CPlayKeepAlive, body, -1)
	if err != nil {
		t.Fatal(err)
	}

	r := bytes.NewReader(frame)
	length, err := ReadVarint(r)
	if err != nil {
		t.Fatal(err)
	}
	if int(length) != r.Len() {
		t.Fatalf("declared length %d, %d bytes follow", length, r.Len())
	}
	id, err := ReadVarint(r)
	if err != nil {
		t.Fatal(err)
	}
	if id != S2CPlayKeepAlive {
		t.Errorf("id = 0x%02x, want 0x%02x", id, S2CPlayKeepAlive)
	}
	if r.Len() != body.Size() {
		t.Errorf("payload is %d bytes, want %d", r.Len(), body.Size())
	}
}

func TestPacketRoundTripUncompressed(t *testing.T) {
	frame, err := EncodePacket(C2SLoginStart, &LoginStart{
		Username: "Steve",
		UUID:     GenerateOfflineUUID("Steve"),
	}, -1)
	if err != nil {
		t.Fatal(err)
	}

	id, s, err := ReadFrame(bytes.NewReader(frame), -1)
	if err != nil {
		t.Fatal(err)
	}
	if id != C2SLoginStart {
		t.Fatalf("id = 0x%02x, want 0x%02x", id, C2SLoginStart)
	}
	name, err := ReadString(s)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Steve" {
		t.Errorf("username = %q, want %q", name, "Steve")
	}
	u, err := ReadUUID(s)
	if err != nil {
		t.Fatal(err)
	}
	if u != GenerateOfflineUUID("Steve") {
		t.Errorf("uuid mismatch: %s", u)
	}
	if s.Remaining() != 0 {
		t.Errorf("%d payload bytes left over", s.Remaining())
	}
}

func TestPacketRoundTripCompressed(t *testing.T) {
	// Pack a payload large enough to cross the threshold.
	long := bytes.Repeat([]byte("overworld "), 64)
	body := &PluginMessage{Channel: "test:channel", Data: long}

	for _, threshold := range []int{0, 64, 256} {
		frame, err := EncodePacket(S2CConfigPluginMessage, body, threshold)
		if err != nil {
			t.Fatalf("threshold %d: %v", threshold, err)
		}

		id, s, err := ReadFrame(bytes.NewReader(frame), threshold)
		if err != nil {
			t.Fatalf("threshold %d: %v", threshold, err)
		}
		if id != S2CConfigPluginMessage {
			t.Fatalf("threshold %d: id = 0x%02x", threshold, id)
		}
		got, err := ParsePluginMessage(s)
		if err != nil {
			t.Fatalf("threshold %d: %v", threshold, err)
		}
		if got.Channel != body.Channel || !bytes.Equal(got.Data, body.Data) {
			t.Errorf("threshold %d: payload mismatch", threshold)
		}
	}
}

func TestPacketBelowThresholdStaysUncompressed(t *testing.T) {
	body := &KeepAlive{ID: 7}
	frame, err := EncodePacket(S2CPlayKeepAlive, body, 256)
	if err != nil {
		t.Fatal(err)
	}

	r := bytes.NewReader(frame)
	if _, err := ReadVarint(r); err != nil { // frame length
		t.Fatal(err)
	}
	dataLength, err := ReadVarint(r)
	if err != nil {
		t.Fatal(err)
	}
	if dataLength != 0 {
		t.Fatalf("data length = %d, want 0 marker for uncompressed", dataLength)
	}

	id, s, err := ReadFrame(bytes.NewReader(frame), 256)
	if err != nil {
		t.Fatal(err)
	}
	if id != S2CPlayKeepAlive {
		t.Fatalf("id = 0x%02x", id)
	}
	p, err := ParseKeepAlive(s)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != 7 {
		t.Errorf("keep alive id = %d, want 7", p.ID)
	}
}

func TestReadFrameRejectsBadLengths(t *testing.T) {
	var zero bytes.Buffer
	if err := WriteVarint(&zero, 0); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ReadFrame(&zero, -1); !errors.Is(err, ErrInvalidPacket) {
		t.Errorf("zero length: err = %v, want ErrInvalidPacket", err)
	}

	var huge bytes.Buffer
	if err := WriteVarint(&huge, MaxPacketSize+1); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ReadFrame(&huge, -1); !errors.Is(err, ErrPacketTooLarge) {
		t.Errorf("oversized: err = %v, want ErrPacketTooLarge", err)
	}
}

func TestReadFrameTruncatedIsFatal(t *testing.T) {
	// The length prefix promises more bytes than the connection delivers.
	var buf bytes.Buffer
	if err := WriteVarint(&buf, 100); err != nil {
		t.Fatal(err)
	}
	buf.Write([]byte{1, 2, 3})

	_, _, err := ReadFrame(&buf, -1)
	if err == nil || Recoverable(err) {
		t.Fatalf("err = %v, want a fatal I/O error", err)
	}
}

func TestConsecutiveFramesStayAligned(t *testing.T) {
	// Two frames back to back; decoding the first must leave the reader at
	// the first byte of the second.
	var wire bytes.Buffer
	f1, err := EncodePacket(S2CPlayKeepAlive, &KeepAlive{ID: 1}, -1)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := EncodePacket(S2CPlayKeepAlive, &KeepAlive{ID: 2}, -1)
	if err != nil {
		t.Fatal(err)
	}
	wire.Write(f1)
	wire.Write(f2)

	for want := int64(1); want <= 2; want++ {
		_, s, err := ReadFrame(&wire, -1)
		if err != nil {
			t.Fatal(err)
		}
		p, err := ParseKeepAlive(s)
		if err != nil {
			t.Fatal(err)
		}
		if p.ID != want {
			t.Fatalf("frame %d decoded id %d", want, p.ID)
		}
	}
	if wire.Len() != 0 {
		t.Errorf("%d stray bytes after both frames", wire.Len())
	}
}

func TestWritePacketSingleWrite(t *testing.T) {
	var w countingWriter
	if err := WritePacket(&w, S2CPlayKeepAlive, &KeepAlive{ID: 3}, -1); err != nil {
		t.Fatal(err)
	}
	if w.calls != 1 {
		t.Errorf("WritePacket issued %d writes, want 1", w.calls)
	}
}

type countingWriter struct {
	calls int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.calls++
	return len(p), nil
}
