package gen

import "testing"

func TestFlatGeneratorLayers(t *testing.T) {
	g := NewFlat(nil)
	c := NewChunk(16)
	if err := g.Generate(c, Origin{16, 0, -16}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tests := []struct {
		y    int
		want uint8
	}{
		{0, BlockSolid},
		{3, BlockSolid},
		{4, BlockSurface},
		{5, BlockAir},
		{15, BlockAir},
	}
	for _, tt := range tests {
		if got := c.Block(7, tt.y, 9); got != tt.want {
			t.Errorf("Block(7,%d,9) = %d, want %d", tt.y, got, tt.want)
		}
	}
}

func TestFlatGeneratorOffsetOrigin(t *testing.T) {
	g := NewFlat([]uint8{1, 1, 3})
	c := NewChunk(4)
	_ = g.Generate(c, Origin{0, -2, 0})

	// local y=2 is world y=0.
	wants := []uint8{0, 0, 1, 1}
	for y, want := range wants {
		if got := c.Block(0, y, 0); got != want {
			t.Errorf("Block(0,%d,0) = %d, want %d", y, got, want)
		}
	}
}

func TestFlatGeneratorHeight(t *testing.T) {
	if got := NewFlat(nil).HeightAt(0, 0); got != 4 {
		t.Errorf("HeightAt = %d, want 4", got)
	}
	if got := NewFlat([]uint8{}).HeightAt(0, 0); got != -1 {
		t.Errorf("HeightAt on empty layers = %d, want -1", got)
	}
}

func TestFlatGeneratorCopiesLayers(t *testing.T) {
	layers := []uint8{1, 2}
	g := NewFlat(layers)
	layers[0] = 9
	if g.Layers[0] != 1 {
		t.Error("NewFlat should copy the layers slice")
	}
}

func TestChunkIndexLayout(t *testing.T) {
	c := NewChunk(4)
	c.SetBlock(1, 2, 3, 5)
	if got := c.Blocks[1+4*(2+4*3)]; got != 5 {
		t.Errorf("Blocks at x + s*(y + s*z) = %d, want 5", got)
	}
	if got := c.Block(1, 2, 3); got != 5 {
		t.Errorf("Block(1,2,3) = %d, want 5", got)
	}
}

func TestChunkDigestTracksContent(t *testing.T) {
	c := NewChunk(4)
	before := c.Digest()
	c.SetBlock(0, 0, 0, 1)
	if c.Digest() == before {
		t.Error("Digest did not change after SetBlock")
	}
	if c.Empty() {
		t.Error("Empty() = true after SetBlock")
	}
}
