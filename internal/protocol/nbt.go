package protocol

import (
	"errors"
	"fmt"
	"io"
)

// NBT tag types.
const (
	TagEnd       = 0
	TagByte      = 1
	TagShort     = 2
	TagInt       = 3
	TagLong      = 4
	TagFloat     = 5
	TagDouble    = 6
	TagByteArray = 7
	TagString    = 8
	TagList      = 9
	TagCompound  = 10
	TagIntArray  = 11
	TagLongArray = 12
)

var (
	ErrNBT              = errors.New("nbt error")
	ErrNBTMalformedRoot = fmt.Errorf("%w: malformed root", ErrNBT)
)

func nbtErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNBT, fmt.Sprintf(format, args...))
}

// NBTNode is one node of the self-describing tree format some packet fields
// carry. Value holds the Go representation matching Type: int8/int16/int32/
// int64/float32/float64, []byte, string, []*NBTNode, map[string]*NBTNode,
// []int32 or []int64.
type NBTNode struct {
	Type  byte
	Value any
}

func (n *NBTNode) String() string {
	switch n.Type {
	case TagEnd:
		return "End"
	case TagByte:
		return fmt.Sprintf("Byte(%d)", n.Value.(int8))
	case TagShort:
		return fmt.Sprintf("Short(%d)", n.Value.(int16))
	case TagInt:
		return fmt.Sprintf("Int(%d)", n.Value.(int32))
	case TagLong:
		return fmt.Sprintf("Long(%d)", n.Value.(int64))
	case TagFloat:
		return fmt.Sprintf("Float(%f)", n.Value.(float32))
	case TagDouble:
		return fmt.Sprintf("Double(%f)", n.Value.(float64))
	case TagByteArray:
		return fmt.Sprintf("ByteArray(%v)", n.Value.([]byte))
	case TagString:
		return fmt.Sprintf("String(%q)", n.Value.(string))
	case TagList:
		return fmt.Sprintf("List(%v)", n.Value.([]*NBTNode))
	case TagCompound:
		return fmt.Sprintf("Compound(%v)", n.Value.(map[string]*NBTNode))
	case TagIntArray:
		return fmt.Sprintf("IntArray(%v)", n.Value.([]int32))
	case TagLongArray:
		return fmt.Sprintf("LongArray(%v)", n.Value.([]int64))
	default:
		return fmt.Sprintf("Unknown(%d)", n.Type)
	}
}

// Compound returns the node's entries if it is a compound.
func (n *NBTNode) Compound() (map[string]*NBTNode, bool) {
	m, ok := n.Value.(map[string]*NBTNode)
	return m, ok
}

// ReadNBT decodes a network NBT value. The root tag carries no name and must
// be a compound; anything else is a malformed-root error.
func ReadNBT(r io.Reader) (*NBTNode, error) {
	tag, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	if tag != TagCompound {
		return nil, ErrNBTMalformedRoot
	}
	compound, err := readNBTCompound(r)
	if err != nil {
		return nil, err
	}
	return &NBTNode{Type: TagCompound, Value: compound}, nil
}

func readNBTPayload(r io.Reader, tag byte) (*NBTNode, error) {
	switch tag {
	case TagByte:
		b, err := ReadByte(r)
		if err != nil {
			return nil, err
		}
		return &NBTNode{Type: TagByte, Value: int8(b)}, nil
	case TagShort:
		v, err := ReadInt16(r)
		if err != nil {
			return nil, err
		}
		return &NBTNode{Type: TagShort, Value: v}, nil
	case TagInt:
		v, err := ReadInt32(r)
		if err != nil {
			return nil, err
		}
		return &NBTNode{Type: TagInt, Value: v}, nil
	case TagLong:
		v, err := ReadInt64(r)
		if err != nil {
			return nil, err
		}
		return &NBTNode{Type: TagLong, Value: v}, nil
	case TagFloat:
		v, err := ReadFloat(r)
		if err != nil {
			return nil, err
		}
		return &NBTNode{Type: TagFloat, Value: v}, nil
	case TagDouble:
		v, err := ReadDouble(r)
		if err != nil {
			return nil, err
		}
		return &NBTNode{Type: TagDouble, Value: v}, nil
	case TagByteArray:
		n, err := readNBTArrayLen(r)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return &NBTNode{Type: TagByteArray, Value: buf}, nil
	case TagString:
		s, err := readNBTString(r)
		if err != nil {
			return nil, err
		}
		return &NBTNode{Type: TagString, Value: s}, nil
	case TagList:
		list, err := readNBTList(r)
		if err != nil {
			return nil, err
		}
		return &NBTNode{Type: TagList, Value: list}, nil
	case TagCompound:
		compound, err := readNBTCompound(r)
		if err != nil {
			return nil, err
		}
		return &NBTNode{Type: TagCompound, Value: compound}, nil
	case TagIntArray:
		n, err := readNBTArrayLen(r)
		if err != nil {
			return nil, err
		}
		out := make([]int32, n)
		for i := range out {
			if out[i], err = ReadInt32(r); err != nil {
				return nil, err
			}
		}
		return &NBTNode{Type: TagIntArray, Value: out}, nil
	case TagLongArray:
		n, err := readNBTArrayLen(r)
		if err != nil {
			return nil, err
		}
		out := make([]int64, n)
		for i := range out {
			if out[i], err = ReadInt64(r); err != nil {
				return nil, err
			}
		}
		return &NBTNode{Type: TagLongArray, Value: out}, nil
	default:
		return nil, nbtErrorf("unknown type id %d", tag)
	}
}

// NBT names use a 16-bit byte-length prefix, not the primary protocol's
// character-counted strings.
func readNBTString(r io.Reader) (string, error) {
	n, err := ReadUnsignedShort(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readNBTArrayLen(r io.Reader) (int, error) {
	n, err := ReadInt32(r)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, nbtErrorf("negative array length (%d)", n)
	}
	return int(n), nil
}

func readNBTList(r io.Reader) ([]*NBTNode, error) {
	elemTag, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	n, err := ReadInt32(r)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nbtErrorf("negative list length (%d)", n)
	}
	if n == 0 {
		return []*NBTNode{}, nil
	}
	if elemTag == TagEnd {
		return nil, nbtErrorf("TAG_End type in non-empty list")
	}

	out := make([]*NBTNode, 0, min(int(n), 4096))
	for i := int32(0); i < n; i++ {
		node, err := readNBTPayload(r, elemTag)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// readNBTCompound reads (tag, name, payload) entries until a TagEnd tag. The
// terminator itself is not stored, and duplicate names are a hard error.
func readNBTCompound(r io.Reader) (map[string]*NBTNode, error) {
	entries := make(map[string]*NBTNode)
	for {
		tag, err := ReadByte(r)
		if err != nil {
			return nil, err
		}
		if tag == TagEnd {
			return entries, nil
		}
		name, err := readNBTString(r)
		if err != nil {
			return nil, err
		}
		value, err := readNBTPayload(r, tag)
		if err != nil {
			return nil, err
		}
		if _, dup := entries[name]; dup {
			return nil, nbtErrorf("two entries with same name %q in compound", name)
		}
		entries[name] = value
	}
}
