package gen

import (
	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Block IDs written by the built-in generators.
const (
	BlockAir     uint8 = 0
	BlockSolid   uint8 = 1
	BlockSurface uint8 = 2
)

// Origin is the world block coordinate of a chunk's minimum corner.
type Origin struct{ X, Y, Z int }

// Vec returns the origin as a float vector, for consumers that position
// geometry in world space.
func (o Origin) Vec() mgl64.Vec3 {
	return mgl64.Vec3{float64(o.X), float64(o.Y), float64(o.Z)}
}

// Chunk holds the block IDs of one cubic chunk.
// Index = x + Size*(y + Size*z).
type Chunk struct {
	Size   int
	Blocks []uint8
}

// NewChunk allocates an all-air chunk with the given side length.
func NewChunk(size int) *Chunk {
	return &Chunk{
		Size:   size,
		Blocks: make([]uint8, size*size*size),
	}
}

func (c *Chunk) index(x, y, z int) int {
	return x + c.Size*(y+c.Size*z)
}

// Block returns the block ID at the given local coordinates.
// x, y, z must be in [0, Size).
func (c *Chunk) Block(x, y, z int) uint8 {
	return c.Blocks[c.index(x, y, z)]
}

// SetBlock sets the block ID at the given local coordinates.
func (c *Chunk) SetBlock(x, y, z int, id uint8) {
	c.Blocks[c.index(x, y, z)] = id
}

// Empty reports whether every block in the chunk is air.
func (c *Chunk) Empty() bool {
	for _, b := range c.Blocks {
		if b != BlockAir {
			return false
		}
	}
	return true
}

// Digest returns a 64-bit hash of the chunk's block data.
func (c *Chunk) Digest() uint64 {
	return xxhash.Sum64(c.Blocks)
}

// Generator fills newly allocated chunks. Generate receives an all-air chunk
// and the world coordinate of its minimum corner and must write only into
// that chunk. Generators used with concurrent prefetching must be safe for
// concurrent use.
type Generator interface {
	Generate(c *Chunk, origin Origin) error
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(c *Chunk, origin Origin) error

// Generate calls f(c, origin).
func (f GeneratorFunc) Generate(c *Chunk, origin Origin) error {
	return f(c, origin)
}

// HeightProvider is implemented by generators that know the highest solid
// block of a column.
type HeightProvider interface {
	HeightAt(x, z int) int
}

// Nop leaves every chunk empty.
type Nop struct{}

// Generate ...
func (Nop) Generate(*Chunk, Origin) error { return nil }
