package game

import (
	"fmt"
	"math/bits"

	"github.com/Staco78/MinecraftBot/internal/protocol"
)

// PaletteConfig fixes the shape of one palette kind: the cubic volume's side
// length, the bit width of the direct representation, and how many distinct
// ids an indirect palette may hold before it is promoted to direct.
type PaletteConfig struct {
	EntriesPerAxis     int
	DirectBPE          int
	MaxIndirectEntries int
}

func (c PaletteConfig) EntryCount() int {
	return c.EntriesPerAxis * c.EntriesPerAxis * c.EntriesPerAxis
}

var (
	BlockPaletteConfig = PaletteConfig{EntriesPerAxis: 16, DirectBPE: 15, MaxIndirectEntries: 256}
	BiomePaletteConfig = PaletteConfig{EntriesPerAxis: 4, DirectBPE: 6, MaxIndirectEntries: 8}
)

type paletteKind int

const (
	singleValued paletteKind = iota
	indirect
	direct
)

// Palette is dense per-volume storage of integer ids in one of three
// representations: a single id covering every position, a small dictionary
// plus bit-packed dictionary codes, or bit-packed raw ids at the config's
// maximum width. Writes promote the representation as needed; nothing ever
// demotes.
type Palette struct {
	cfg  PaletteConfig
	kind paletteKind

	single int32 // singleValued

	bpe    int           // indirect, direct
	toID   []int32       // indirect: dictionary code -> global id
	toCode map[int32]int // indirect: global id -> dictionary code
	data   []uint64
}

// NewPalette returns a mutable palette holding id 0 everywhere.
func NewPalette(cfg PaletteConfig) *Palette {
	return &Palette{cfg: cfg, kind: singleValued}
}

// ReadPalette decodes the wire representation: a bits-per-entry byte selecting
// the variant, then the variant's payload. The packed array length is implied
// by the config, not carried on the wire.
func ReadPalette(s *protocol.Stream, cfg PaletteConfig) (*Palette, error) {
	bpe, err := protocol.ReadVarint(s)
	if err != nil {
		return nil, err
	}

	switch {
	case bpe == 0:
		id, err := protocol.ReadVarint(s)
		if err != nil {
			return nil, err
		}
		return &Palette{cfg: cfg, kind: singleValued, single: id}, nil

	case bpe > 0 && int(bpe) < cfg.DirectBPE:
		dict, err := protocol.ReadPrefixedSlice(s, func(s *protocol.Stream) (int32, error) {
			return protocol.ReadVarint(s)
		})
		if err != nil {
			return nil, err
		}
		data, err := readPackedWords(s, cfg.EntryCount(), int(bpe))
		if err != nil {
			return nil, err
		}
		toCode := make(map[int32]int, len(dict))
		for code, id := range dict {
			toCode[id] = code
		}
		return &Palette{cfg: cfg, kind: indirect, bpe: int(bpe), toID: dict, toCode: toCode, data: data}, nil

	case int(bpe) == cfg.DirectBPE:
		data, err := readPackedWords(s, cfg.EntryCount(), int(bpe))
		if err != nil {
			return nil, err
		}
		return &Palette{cfg: cfg, kind: direct, bpe: int(bpe), data: data}, nil

	default:
		return nil, fmt.Errorf("%w: invalid palette bits per entry (%d)", protocol.ErrMalformed, bpe)
	}
}

func readPackedWords(s *protocol.Stream, entryCount, bpe int) ([]uint64, error) {
	words := packedWordCount(entryCount, bpe)
	return protocol.ReadFixedSlice(s, words, func(s *protocol.Stream) (uint64, error) {
		return protocol.ReadUint64(s)
	})
}

// Entries never span a word boundary: a word holds 64/bpe entries and the
// leftover high bits stay zero.
func packedWordCount(entryCount, bpe int) int {
	perWord := 64 / bpe
	return (entryCount + perWord - 1) / perWord
}

func (p *Palette) index(x, y, z int) int {
	epa := p.cfg.EntriesPerAxis
	if x < 0 || x >= epa || y < 0 || y >= epa || z < 0 || z >= epa {
		panic(fmt.Sprintf("palette: position (%d, %d, %d) out of bounds for axis size %d", x, y, z, epa))
	}
	return (y*epa+z)*epa + x
}

func getPacked(data []uint64, bpe, idx int) uint64 {
	perWord := 64 / bpe
	word := idx / perWord
	offset := (idx % perWord) * bpe
	mask := uint64(1)<<bpe - 1
	return (data[word] >> offset) & mask
}

// setPacked writes a bitfield in place and returns the previous value.
func setPacked(data []uint64, bpe, idx int, value uint64) uint64 {
	perWord := 64 / bpe
	word := idx / perWord
	offset := (idx % perWord) * bpe
	mask := uint64(1)<<bpe - 1

	old := (data[word] >> offset) & mask
	data[word] &^= mask << offset
	data[word] |= (value & mask) << offset
	return old
}

// Get returns the id stored at the local position.
func (p *Palette) Get(x, y, z int) int32 {
	idx := p.index(x, y, z)
	switch p.kind {
	case singleValued:
		return p.single
	case indirect:
		code := int(getPacked(p.data, p.bpe, idx))
		if code >= len(p.toID) {
			panic(fmt.Sprintf("palette: dictionary code %d out of range (size %d)", code, len(p.toID)))
		}
		return p.toID[code]
	default:
		return int32(getPacked(p.data, p.bpe, idx))
	}
}

// Set stores an id at the local position and returns the previous id,
// promoting the representation when the current one cannot hold the write:
// a single-valued palette converts straight to direct on the first differing
// write, and an indirect palette grows its dictionary (re-packing the backing
// array whenever the code width changes) until the capacity threshold forces
// a direct conversion.
func (p *Palette) Set(x, y, z int, id int32) int32 {
	idx := p.index(x, y, z)

	switch p.kind {
	case singleValued:
		if id == p.single {
			return p.single
		}
		old := p.single
		p.toDirect(p.single)
		setPacked(p.data, p.bpe, idx, uint64(id))
		return old

	case indirect:
		if code, ok := p.toCode[id]; ok {
			oldCode := setPacked(p.data, p.bpe, idx, uint64(code))
			return p.toID[oldCode]
		}
		if len(p.toID) < p.cfg.MaxIndirectEntries {
			code := len(p.toID)
			p.toID = append(p.toID, id)
			p.toCode[id] = code
			newBpe := bits.Len(uint(code))
			if newBpe != p.bpe {
				p.data = repack(p.data, p.cfg.EntryCount(), p.bpe, newBpe, nil)
				p.bpe = newBpe
			}
			oldCode := setPacked(p.data, p.bpe, idx, uint64(code))
			return p.toID[oldCode]
		}
		// Dictionary full: re-encode every entry from code to raw id.
		dict := p.toID
		p.data = repack(p.data, p.cfg.EntryCount(), p.bpe, p.cfg.DirectBPE, func(code uint64) uint64 {
			return uint64(dict[code])
		})
		p.bpe = p.cfg.DirectBPE
		p.kind = direct
		p.toID = nil
		p.toCode = nil
		old := setPacked(p.data, p.bpe, idx, uint64(id))
		return int32(old)

	default:
		old := setPacked(p.data, p.bpe, idx, uint64(id))
		return int32(old)
	}
}

// toDirect replaces a single-valued palette with a direct one holding the
// same id at every position.
func (p *Palette) toDirect(fill int32) {
	bpe := p.cfg.DirectBPE
	data := make([]uint64, packedWordCount(p.cfg.EntryCount(), bpe))
	if fill != 0 {
		for i := 0; i < p.cfg.EntryCount(); i++ {
			setPacked(data, bpe, i, uint64(fill))
		}
	}
	p.kind = direct
	p.bpe = bpe
	p.data = data
}

// repack walks every logical entry once, reading oldBpe-wide fields and
// writing newBpe-wide fields into a freshly sized array, passing each value
// through mapValue when given. Padding bits in each word stay zero.
func repack(data []uint64, entryCount, oldBpe, newBpe int, mapValue func(uint64) uint64) []uint64 {
	out := make([]uint64, packedWordCount(entryCount, newBpe))
	for i := 0; i < entryCount; i++ {
		v := getPacked(data, oldBpe, i)
		if mapValue != nil {
			v = mapValue(v)
		}
		setPacked(out, newBpe, i, v)
	}
	return out
}
