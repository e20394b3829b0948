package game

import (
	"fmt"
	"sync"

	"github.com/Staco78/MinecraftBot/internal/protocol"
)

// UnloadedChunkError reports a block or biome access inside a chunk column
// that has not been received yet. It is part of the recoverable error
// taxonomy.
type UnloadedChunkError struct {
	Pos ChunkPos
}

func (e UnloadedChunkError) Error() string {
	return fmt.Sprintf("chunk (%d, %d) is not loaded", e.Pos.X, e.Pos.Z)
}

func (e UnloadedChunkError) Unwrap() error {
	return protocol.ErrDomain
}

// World holds the loaded chunk columns, keyed by chunk position. All methods
// are safe for concurrent use.
type World struct {
	mu     sync.RWMutex
	chunks map[ChunkPos]*Chunk
}

func NewWorld() *World {
	return &World{chunks: make(map[ChunkPos]*Chunk)}
}

// SetChunk installs a chunk column, replacing any previous column at the same
// position.
func (w *World) SetChunk(c *Chunk) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.chunks[ChunkPos{X: c.X, Z: c.Z}] = c
}

// Chunk returns the loaded column at the given chunk position, or nil.
func (w *World) Chunk(pos ChunkPos) *Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.chunks[pos]
}

// ChunkCount returns how many columns are currently loaded.
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

func sectionIndex(y int) int {
	return (y - MinBlockY) >> 4
}

// BlockAt returns the block state id at absolute world coordinates, or an
// error if the containing chunk is not loaded or y is outside the world's
// height range.
func (w *World) BlockAt(x, y, z int) (int32, error) {
	si := sectionIndex(y)
	if si < 0 || si >= SectionCount {
		return 0, fmt.Errorf("%w: y coordinate %d outside world height", protocol.ErrDomain, y)
	}
	pos := ChunkPos{X: int32(x >> 4), Z: int32(z >> 4)}

	w.mu.RLock()
	defer w.mu.RUnlock()
	c := w.chunks[pos]
	if c == nil {
		return 0, UnloadedChunkError{Pos: pos}
	}
	return c.Sections[si].Blocks.Get(x&15, y&15, z&15), nil
}

// SetBlock writes a block state id at absolute world coordinates.
func (w *World) SetBlock(x, y, z int, id int32) error {
	si := sectionIndex(y)
	if si < 0 || si >= SectionCount {
		return fmt.Errorf("%w: y coordinate %d outside world height", protocol.ErrDomain, y)
	}
	pos := ChunkPos{X: int32(x >> 4), Z: int32(z >> 4)}

	w.mu.Lock()
	defer w.mu.Unlock()
	c := w.chunks[pos]
	if c == nil {
		return UnloadedChunkError{Pos: pos}
	}
	c.Sections[si].Blocks.Set(x&15, y&15, z&15, id)
	return nil
}

// BiomeAt returns the biome id at absolute world coordinates. Biomes are
// stored at quarter resolution along each axis.
func (w *World) BiomeAt(x, y, z int) (int32, error) {
	si := sectionIndex(y)
	if si < 0 || si >= SectionCount {
		return 0, fmt.Errorf("%w: y coordinate %d outside world height", protocol.ErrDomain, y)
	}
	pos := ChunkPos{X: int32(x >> 4), Z: int32(z >> 4)}

	w.mu.RLock()
	defer w.mu.RUnlock()
	c := w.chunks[pos]
	if c == nil {
		return 0, UnloadedChunkError{Pos: pos}
	}
	return c.Sections[si].Biomes.Get((x&15)>>2, (y&15)>>2, (z&15)>>2), nil
}
