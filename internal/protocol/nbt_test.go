package protocol

import (
	"bytes"
	"errors"
	"testing"
)

// nbtBuilder assembles raw NBT bytes for the read tests.
type nbtBuilder struct {
	bytes.Buffer
}

func (b *nbtBuilder) tag(t byte) { b.WriteByte(t) }
func (b *nbtBuilder) end()       { b.WriteByte(TagEnd) }

func (b *nbtBuilder) name(s string) {
	b.WriteByte(byte(len(s) >> 8))
	b.WriteByte(byte(len(s)))
	b.WriteString(s)
}
func (b *nbtBuilder) i32(v int32) {
	b.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func TestReadNBTEmptyCompound(t *testing.T) {
	var b nbtBuilder
	b.tag(TagCompound)
	b.end()

	node, err := ReadNBT(&b)
	if err != nil {
		t.Fatalf("ReadNBT: %v", err)
	}
	m, ok := node.Compound()
	if !ok {
		t.Fatalf("root is %T, want compound", node.Value)
	}
	if len(m) != 0 {
		t.Errorf("compound has %d entries, want 0", len(m))
	}
}

func TestReadNBTNestedCompound(t *testing.T) {
	var b nbtBuilder
	b.tag(TagCompound)
	{
		b.tag(TagInt)
		b.name("count")
		b.i32(42)

		b.tag(TagCompound)
		b.name("inner")
		{
			b.tag(TagByte)
			b.name("flag")
			b.WriteByte(1)
			b.end()
		}

		b.tag(TagString)
		b.name("id")
		b.name("minecraft:stone") // same u16-prefixed layout as a name

		b.end()
	}

	node, err := ReadNBT(&b)
	if err != nil {
		t.Fatalf("ReadNBT: %v", err)
	}
	m, _ := node.Compound()
	if len(m) != 3 {
		t.Fatalf("compound has %d entries, want 3", len(m))
	}
	if got := m["count"].Value; got != int32(42) {
		t.Errorf("count = %v, want 42", got)
	}
	if got := m["id"].Value; got != "minecraft:stone" {
		t.Errorf("id = %v, want minecraft:stone", got)
	}
	inner, ok := m["inner"].Compound()
	if !ok {
		t.Fatalf("inner is %T, want compound", m["inner"].Value)
	}
	if got := inner["flag"].Value; got != int8(1) {
		t.Errorf("inner.flag = %v, want 1", got)
	}
}

func TestReadNBTList(t *testing.T) {
	var b nbtBuilder
	b.tag(TagCompound)
	{
		b.tag(TagList)
		b.name("values")
		b.tag(TagInt) // element type
		b.i32(3)      // count
		b.i32(10)
		b.i32(20)
		b.i32(30)
		b.end()
	}

	node, err := ReadNBT(&b)
	if err != nil {
		t.Fatalf("ReadNBT: %v", err)
	}
	m, _ := node.Compound()
	list, ok := m["values"].Value.([]*NBTNode)
	if !ok {
		t.Fatalf("values is %T, want list", m["values"].Value)
	}
	want := []int32{10, 20, 30}
	if len(list) != len(want) {
		t.Fatalf("list has %d elements, want %d", len(list), len(want))
	}
	for i, n := range list {
		if n.Value != want[i] {
			t.Errorf("list[%d] = %v, want %d", i, n.Value, want[i])
		}
	}
}

func TestReadNBTEmptyEndList(t *testing.T) {
	// A zero-length list may declare TAG_End as its element type.
	var b nbtBuilder
	b.tag(TagCompound)
	{
		b.tag(TagList)
		b.name("empty")
		b.tag(TagEnd)
		b.i32(0)
		b.end()
	}

	node, err := ReadNBT(&b)
	if err != nil {
		t.Fatalf("ReadNBT: %v", err)
	}
	m, _ := node.Compound()
	if list := m["empty"].Value.([]*NBTNode); len(list) != 0 {
		t.Errorf("list has %d elements, want 0", len(list))
	}
}

func TestReadNBTErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *nbtBuilder)
	}{
		{
			name: "root not a compound",
			build: func(b *nbtBuilder) {
				b.tag(TagInt)
				b.i32(1)
			},
		},
		{
			name: "duplicate names",
			build: func(b *nbtBuilder) {
				b.tag(TagCompound)
				b.tag(TagInt)
				b.name("x")
				b.i32(1)
				b.tag(TagInt)
				b.name("x")
				b.i32(2)
				b.end()
			},
		},
		{
			name: "non-empty end list",
			build: func(b *nbtBuilder) {
				b.tag(TagCompound)
				b.tag(TagList)
				b.name("bad")
				b.tag(TagEnd)
				b.i32(2)
				b.end()
			},
		},
		{
			name: "negative list length",
			build: func(b *nbtBuilder) {
				b.tag(TagCompound)
				b.tag(TagList)
				b.name("bad")
				b.tag(TagInt)
				b.i32(-1)
				b.end()
			},
		},
		{
			name: "negative array length",
			build: func(b *nbtBuilder) {
				b.tag(TagCompound)
				b.tag(TagIntArray)
				b.name("bad")
				b.i32(-5)
				b.end()
			},
		},
		{
			name: "unknown tag type",
			build: func(b *nbtBuilder) {
				b.tag(TagCompound)
				b.tag(99)
				b.name("bad")
				b.end()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b nbtBuilder
			tt.build(&b)
			_, err := ReadNBT(&b)
			if !errors.Is(err, ErrNBT) {
				t.Fatalf("err = %v, want an ErrNBT", err)
			}
			if !Recoverable(err) {
				t.Errorf("NBT errors should be recoverable, got %v", err)
			}
		})
	}
}
