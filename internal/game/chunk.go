package game

import (
	"fmt"

	"github.com/Staco78/MinecraftBot/internal/protocol"
)

// SectionCount is the number of 16-block-tall sections in a chunk column
// for the overworld height range of -64..320.
const SectionCount = 24

// MinBlockY is the lowest buildable Y coordinate.
const MinBlockY = -64

// ChunkSection is one 16x16x16 slice of a chunk column: a block palette, a
// biome palette at quarter resolution, and the server's count of non-air
// blocks in the slice.
type ChunkSection struct {
	BlockCount uint16
	Blocks     *Palette
	Biomes     *Palette
}

// ReadChunkSection decodes one section: non-air count, block palette, biome
// palette.
func ReadChunkSection(s *protocol.Stream) (*ChunkSection, error) {
	count, err := protocol.ReadUnsignedShort(s)
	if err != nil {
		return nil, err
	}
	blocks, err := ReadPalette(s, BlockPaletteConfig)
	if err != nil {
		return nil, err
	}
	biomes, err := ReadPalette(s, BiomePaletteConfig)
	if err != nil {
		return nil, err
	}
	return &ChunkSection{BlockCount: count, Blocks: blocks, Biomes: biomes}, nil
}

// Heightmap is one named per-column height surface.
type Heightmap struct {
	Type int32
	Data []uint64
}

// BlockEntity is an in-chunk block with attached data, positioned by packed
// horizontal offsets and an absolute Y.
type BlockEntity struct {
	XZ   byte // (x & 15) << 4 | (z & 15)
	Y    int16
	Type int32
	Data *protocol.NBTNode
}

// Chunk is a full decoded chunk column.
type Chunk struct {
	X, Z          int32
	Heightmaps    []Heightmap
	Sections      [SectionCount]*ChunkSection
	BlockEntities []BlockEntity
}

// ChunkPos addresses a chunk column in the chunk grid.
type ChunkPos struct {
	X, Z int32
}

// ReadChunk decodes a full chunk data packet body: position, heightmaps, the
// byte-counted section data, and trailing block entities. The section data's
// byte size is checked against what decoding actually consumed.
func ReadChunk(s *protocol.Stream) (*Chunk, error) {
	c := &Chunk{}
	var err error
	if c.X, err = protocol.ReadInt32(s); err != nil {
		return nil, err
	}
	if c.Z, err = protocol.ReadInt32(s); err != nil {
		return nil, err
	}

	c.Heightmaps, err = protocol.ReadPrefixedSlice(s, func(s *protocol.Stream) (Heightmap, error) {
		var h Heightmap
		var err error
		if h.Type, err = protocol.ReadVarint(s); err != nil {
			return h, err
		}
		h.Data, err = protocol.ReadPrefixedSlice(s, func(s *protocol.Stream) (uint64, error) {
			return protocol.ReadUint64(s)
		})
		return h, err
	})
	if err != nil {
		return nil, err
	}

	dataSize, err := protocol.ReadVarint(s)
	if err != nil {
		return nil, err
	}
	if dataSize < 0 {
		return nil, fmt.Errorf("%w: negative chunk data size (%d)", protocol.ErrMalformed, dataSize)
	}

	before := s.Remaining()
	for i := range c.Sections {
		if c.Sections[i], err = ReadChunkSection(s); err != nil {
			return nil, err
		}
	}
	if consumed := before - s.Remaining(); consumed != int(dataSize) {
		return nil, fmt.Errorf("%w: chunk data size mismatch (declared %d, decoded %d)", protocol.ErrMalformed, dataSize, consumed)
	}

	c.BlockEntities, err = protocol.ReadPrefixedSlice(s, func(s *protocol.Stream) (BlockEntity, error) {
		var e BlockEntity
		var err error
		if e.XZ, err = protocol.ReadByte(s); err != nil {
			return e, err
		}
		if e.Y, err = protocol.ReadInt16(s); err != nil {
			return e, err
		}
		if e.Type, err = protocol.ReadVarint(s); err != nil {
			return e, err
		}
		e.Data, err = protocol.ReadNBT(s)
		return e, err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
