package gen

import "testing"

func TestDefaultGeneratorAboveSurfaceIsAir(t *testing.T) {
	g := NewDefault(DefaultDecorationChance)
	c := NewChunk(16)
	if err := g.Generate(c, Origin{0, 16, 0}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !c.Empty() {
		t.Error("chunk at origin (0,16,0) should be all air")
	}
}

// The y=5 decoration layer uses the global random source, so only the set of
// allowed values is checked there.
func TestDefaultGeneratorLayers(t *testing.T) {
	g := NewDefault(DefaultDecorationChance)
	c := NewChunk(16)
	if err := g.Generate(c, Origin{0, 0, 0}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for z := 0; z < 16; z++ {
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				got := c.Block(x, y, z)
				switch {
				case y < 4:
					if got != BlockSolid {
						t.Fatalf("Block(%d,%d,%d) = %d, want %d (solid)", x, y, z, got, BlockSolid)
					}
				case y == 4:
					if got != BlockSurface {
						t.Fatalf("Block(%d,%d,%d) = %d, want %d (surface)", x, y, z, got, BlockSurface)
					}
				case y == 5:
					if got != BlockAir && got != BlockSurface {
						t.Fatalf("Block(%d,%d,%d) = %d, want 0 or %d", x, y, z, got, BlockSurface)
					}
				default:
					if got != BlockAir {
						t.Fatalf("Block(%d,%d,%d) = %d, want 0 (air)", x, y, z, got)
					}
				}
			}
		}
	}
}

func TestDefaultGeneratorNegativeOrigin(t *testing.T) {
	g := NewDefault(0)
	c := NewChunk(8)
	if err := g.Generate(c, Origin{-8, -8, -8}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, b := range c.Blocks {
		if b != BlockSolid {
			t.Fatalf("Blocks[%d] = %d, want %d (solid)", i, b, BlockSolid)
		}
	}
}

func TestDefaultGeneratorZeroChanceHasNoDecorations(t *testing.T) {
	g := NewDefault(0)
	c := NewChunk(16)
	_ = g.Generate(c, Origin{})
	for z := 0; z < 16; z++ {
		for x := 0; x < 16; x++ {
			if got := c.Block(x, 5, z); got != BlockAir {
				t.Fatalf("Block(%d,5,%d) = %d, want 0", x, z, got)
			}
		}
	}
}

func TestSeededGeneratorDeterministic(t *testing.T) {
	g1 := NewSeeded(42, DefaultDecorationChance)
	g2 := NewSeeded(42, DefaultDecorationChance)

	c1, c2 := NewChunk(16), NewChunk(16)
	_ = g1.Generate(c1, Origin{32, 0, -16})
	_ = g2.Generate(c2, Origin{32, 0, -16})
	if c1.Digest() != c2.Digest() {
		t.Fatal("seeded generator produced different chunks for the same seed")
	}
}

func TestSeededGeneratorDecorationRate(t *testing.T) {
	g := NewSeeded(7, DefaultDecorationChance)
	c := NewChunk(32)
	_ = g.Generate(c, Origin{})

	decorated := 0
	for z := 0; z < 32; z++ {
		for x := 0; x < 32; x++ {
			if c.Block(x, 5, z) == BlockSurface {
				decorated++
			}
		}
	}
	// 1024 columns at 20%: expect ~205, allow a wide margin.
	if decorated < 120 || decorated > 300 {
		t.Errorf("decorated columns = %d, want roughly 205", decorated)
	}
}

func TestSeededGeneratorDifferentSeeds(t *testing.T) {
	c1, c2 := NewChunk(16), NewChunk(16)
	_ = NewSeeded(1, DefaultDecorationChance).Generate(c1, Origin{})
	_ = NewSeeded(2, DefaultDecorationChance).Generate(c2, Origin{})
	if c1.Digest() == c2.Digest() {
		t.Error("different seeds should produce different decorations")
	}
}

func TestUnitHashRange(t *testing.T) {
	for i := -500; i < 500; i++ {
		v := unitHash(99, i, i*3, -i)
		if v < 0 || v >= 1 {
			t.Fatalf("unitHash(99, %d, ...) = %f, out of [0,1)", i, v)
		}
	}
}
