package game

import (
	"bytes"
	"testing"
)

func TestOutboxFIFO(t *testing.T) {
	o := NewOutbox()
	if _, ok := o.Pop(); ok {
		t.Fatal("empty outbox should not pop")
	}

	o.Push([]byte{1})
	o.Push([]byte{2})
	o.Push([]byte{3})
	if o.Len() != 3 {
		t.Fatalf("len = %d, want 3", o.Len())
	}

	for want := byte(1); want <= 3; want++ {
		frame, ok := o.Pop()
		if !ok {
			t.Fatalf("pop %d failed", want)
		}
		if !bytes.Equal(frame, []byte{want}) {
			t.Errorf("popped %v, want [%d]", frame, want)
		}
	}
	if o.Len() != 0 {
		t.Errorf("len after draining = %d, want 0", o.Len())
	}
}
