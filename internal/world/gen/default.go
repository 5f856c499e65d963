package gen

import (
	"encoding/binary"
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

// DefaultDecorationChance is the probability that a column gets a surface
// decoration one block above the surface layer.
const DefaultDecorationChance = 0.2

// surfaceY is the world y of the surface layer. Everything below is solid.
const surfaceY = 4

// Default is the reference terrain: solid below y=4, a surface layer at y=4
// and sparse decorations at y=5. Everything above is air.
type Default struct {
	chance float64
	// roll returns a value in [0, 1) for the decoration cell at world x, y, z.
	roll func(x, y, z int) float64
}

// NewDefault returns the reference generator. Decorations are drawn from the
// global random source, so the output is not reproducible.
func NewDefault(chance float64) *Default {
	return &Default{
		chance: chance,
		roll:   func(int, int, int) float64 { return rand.Float64() },
	}
}

// NewSeeded returns the reference generator with decorations derived from a
// hash of the seed and the world coordinate. Output is identical for equal
// seeds regardless of generation order.
func NewSeeded(seed int64, chance float64) *Default {
	return &Default{
		chance: chance,
		roll: func(x, y, z int) float64 {
			return unitHash(seed, x, y, z)
		},
	}
}

// Generate ...
func (g *Default) Generate(c *Chunk, o Origin) error {
	for y := 0; y < c.Size; y++ {
		wy := o.Y + y
		var id uint8
		switch {
		case wy < surfaceY:
			id = BlockSolid
		case wy == surfaceY:
			id = BlockSurface
		case wy == surfaceY+1:
			g.decorate(c, o, y)
			continue
		default:
			continue
		}
		for z := 0; z < c.Size; z++ {
			for x := 0; x < c.Size; x++ {
				c.SetBlock(x, y, z, id)
			}
		}
	}
	return nil
}

// decorate places surface blocks on the local layer y.
func (g *Default) decorate(c *Chunk, o Origin, y int) {
	if g.chance <= 0 {
		return
	}
	for z := 0; z < c.Size; z++ {
		for x := 0; x < c.Size; x++ {
			if g.roll(o.X+x, o.Y+y, o.Z+z) < g.chance {
				c.SetBlock(x, y, z, BlockSurface)
			}
		}
	}
}

// HeightAt ...
func (g *Default) HeightAt(_, _ int) int {
	return surfaceY
}

// unitHash maps (seed, x, y, z) to a float in [0, 1).
func unitHash(seed int64, x, y, z int) float64 {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(x))
	binary.LittleEndian.PutUint64(buf[16:], uint64(y))
	binary.LittleEndian.PutUint64(buf[24:], uint64(z))
	return float64(xxhash.Sum64(buf[:])>>11) / (1 << 53)
}
