package world

import (
	"cmp"
	"slices"

	"github.com/ethanlu126/noa/internal/world/gen"
)

// TrackedChunk is what a Tracker knows about one live chunk.
type TrackedChunk struct {
	Origin gen.Origin
	// Version starts at 1 and is bumped on every change notification.
	Version uint64
	// Empty is true if the chunk held only air at its last notification.
	// Mesh builders skip empty chunks.
	Empty bool
}

// Tracker is a Listener that keeps the bookkeeping a rendering consumer
// needs: which chunk keys are live, where they sit and how often they
// changed. It is not safe for concurrent use.
type Tracker struct {
	NopListener
	live map[ChunkPos]*TrackedChunk
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{live: make(map[ChunkPos]*TrackedChunk)}
}

func (t *Tracker) ChunkAdded(c *gen.Chunk, pos ChunkPos, origin gen.Origin) {
	t.live[pos] = &TrackedChunk{Origin: origin, Version: 1, Empty: c.Empty()}
}

func (t *Tracker) ChunkChanged(c *gen.Chunk, pos ChunkPos, origin gen.Origin) {
	tc, ok := t.live[pos]
	if !ok {
		// A change for a key we never saw added: start tracking it anyway.
		t.ChunkAdded(c, pos, origin)
		return
	}
	tc.Version++
	tc.Empty = c.Empty()
}

func (t *Tracker) ChunkRemoved(pos ChunkPos) {
	delete(t.live, pos)
}

// Chunk returns the tracked state for pos.
func (t *Tracker) Chunk(pos ChunkPos) (TrackedChunk, bool) {
	tc, ok := t.live[pos]
	if !ok {
		return TrackedChunk{}, false
	}
	return *tc, true
}

// Len returns the number of live chunks.
func (t *Tracker) Len() int {
	return len(t.live)
}

// Positions returns the live chunk positions sorted by X, then Y, then Z.
func (t *Tracker) Positions() []ChunkPos {
	out := make([]ChunkPos, 0, len(t.live))
	for pos := range t.live {
		out = append(out, pos)
	}
	slices.SortFunc(out, comparePos)
	return out
}

func comparePos(a, b ChunkPos) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}
