package world

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Tick advances streaming by one step with the observer at the given world
// position. If the observer entered a new chunk the queues are rebuilt. Then
// at most one chunk is evicted or, if nothing is waiting for eviction, the
// nearest queued chunk is generated. A generator failure is returned as a
// *GenerateError.
func (w *World) Tick(observer mgl64.Vec3) error {
	center := w.grid.chunkOf(observer)
	if !w.seen || center != w.observer {
		w.rebuild(center)
		w.observer, w.seen = center, true
	}

	if pos, ok := w.removes.pop(); ok {
		if w.store.remove(pos) {
			w.stats.Removed++
		}
		return nil
	}
	if pos, _, ok := w.adds.pop(); ok {
		return w.load(pos)
	}
	return nil
}

// rebuild recomputes both queues around center.
func (w *World) rebuild(center ChunkPos) {
	add, rem := w.conf.AddDistance, w.conf.RemoveDistance

	w.adds.recenter(center)
	dropped := 0
	if w.conf.CancelStaleAdds {
		dropped = w.adds.dropFartherThan(rem)
	}
	// Chunks the observer came back to stay loaded.
	withdrawn := w.removes.retain(func(pos ChunkPos) bool {
		return pos.Chebyshev(center) > rem
	})

	queued := 0
	for x := center.X - add; x <= center.X+add; x++ {
		for y := center.Y - add; y <= center.Y+add; y++ {
			for z := center.Z - add; z <= center.Z+add; z++ {
				pos := ChunkPos{x, y, z}
				if w.store.Has(pos) {
					continue
				}
				if w.adds.push(pos) {
					queued++
				}
			}
		}
	}

	evicting := 0
	for pos := range w.store.chunks {
		if pos.Chebyshev(center) > rem && w.removes.push(pos) {
			evicting++
		}
	}

	w.stats.Rebuilds++
	w.log.Debug("chunk queues rebuilt",
		"center", center,
		"queued", queued,
		"evicting", evicting,
		"dropped", dropped,
		"withdrawn", withdrawn,
		"adds", w.adds.len(),
		"removes", w.removes.len(),
	)
}

// load generates and inserts the chunk at pos, which has already been taken
// off the add queue.
func (w *World) load(pos ChunkPos) error {
	if err := w.store.create(pos); err != nil {
		return w.fail(pos, err)
	}
	w.stats.Added++
	return nil
}

// fail records a generator failure for pos and requeues it if configured.
func (w *World) fail(pos ChunkPos, err error) error {
	w.stats.Failed++
	if w.conf.RetryFailed {
		w.adds.push(pos)
	}
	w.log.Warn("chunk generation failed", "pos", pos, "retry", w.conf.RetryFailed, "error", err)
	return &GenerateError{Pos: pos, Err: err}
}
