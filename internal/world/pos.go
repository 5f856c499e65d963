package world

import (
	"math"
	"math/bits"
	"strconv"

	"github.com/ethanlu126/noa/internal/world/gen"
	"github.com/go-gl/mathgl/mgl64"
)

// ChunkPos identifies a chunk by its position in chunk-grid units.
type ChunkPos struct {
	X, Y, Z int
}

// String returns the position as "x|y|z".
func (p ChunkPos) String() string {
	b := make([]byte, 0, 24)
	b = strconv.AppendInt(b, int64(p.X), 10)
	b = append(b, '|')
	b = strconv.AppendInt(b, int64(p.Y), 10)
	b = append(b, '|')
	b = strconv.AppendInt(b, int64(p.Z), 10)
	return string(b)
}

// Origin returns the world coordinate of the chunk's minimum corner.
func (p ChunkPos) Origin(size int) gen.Origin {
	return gen.Origin{X: p.X * size, Y: p.Y * size, Z: p.Z * size}
}

// Chebyshev returns the largest per-axis distance between p and o.
func (p ChunkPos) Chebyshev(o ChunkPos) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y), abs(p.Z-o.Z))
}

// Manhattan returns the sum of per-axis distances between p and o.
func (p ChunkPos) Manhattan(o ChunkPos) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y) + abs(p.Z-o.Z)
}

// ChunkPosFromVec returns the position of the chunk of the given size that
// contains the world position v.
func ChunkPosFromVec(v mgl64.Vec3, size int) ChunkPos {
	return newGrid(size).chunkOf(v)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// grid converts between world and chunk coordinates for one chunk size.
// Power-of-two sizes use shifts, which floor for negative inputs.
type grid struct {
	size  int
	shift int
	pow2  bool
}

func newGrid(size int) grid {
	g := grid{size: size}
	if size > 0 && size&(size-1) == 0 {
		g.pow2 = true
		g.shift = bits.TrailingZeros(uint(size))
	}
	return g
}

// chunk returns floor(v / size).
func (g grid) chunk(v int) int {
	if g.pow2 {
		return v >> g.shift
	}
	q := v / g.size
	if v%g.size < 0 {
		q--
	}
	return q
}

// local returns v - chunk(v)*size, always in [0, size).
func (g grid) local(v int) int {
	if g.pow2 {
		return v & (g.size - 1)
	}
	m := v % g.size
	if m < 0 {
		m += g.size
	}
	return m
}

// split decomposes a world block coordinate.
func (g grid) split(x, y, z int) (pos ChunkPos, lx, ly, lz int) {
	pos = ChunkPos{g.chunk(x), g.chunk(y), g.chunk(z)}
	return pos, g.local(x), g.local(y), g.local(z)
}

// chunkOf returns the chunk containing a real-valued world position.
func (g grid) chunkOf(v mgl64.Vec3) ChunkPos {
	s := float64(g.size)
	return ChunkPos{
		X: int(math.Floor(v[0] / s)),
		Y: int(math.Floor(v[1] / s)),
		Z: int(math.Floor(v[2] / s)),
	}
}
