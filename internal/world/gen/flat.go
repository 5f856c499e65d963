package gen

// DefaultFlatLayers is four solid layers topped by one surface layer, the
// reference layout without decorations.
var DefaultFlatLayers = []uint8{BlockSolid, BlockSolid, BlockSolid, BlockSolid, BlockSurface}

// Flat generates a superflat world: Layers[i] fills world y = i, everything
// else is air.
type Flat struct {
	Layers []uint8
}

// NewFlat creates a Flat generator. A nil layers slice uses DefaultFlatLayers.
func NewFlat(layers []uint8) *Flat {
	if layers == nil {
		layers = DefaultFlatLayers
	}
	return &Flat{Layers: append([]uint8(nil), layers...)}
}

// Generate ...
func (g *Flat) Generate(c *Chunk, o Origin) error {
	for y := 0; y < c.Size; y++ {
		wy := o.Y + y
		if wy < 0 || wy >= len(g.Layers) {
			continue
		}
		id := g.Layers[wy]
		if id == BlockAir {
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

// HeightAt returns the y of the top non-air layer, or -1 if there is none.
func (g *Flat) HeightAt(_, _ int) int {
	for y := len(g.Layers) - 1; y >= 0; y-- {
		if g.Layers[y] != BlockAir {
			return y
		}
	}
	return -1
}
