package world

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/ethanlu126/noa/internal/world/gen"
	"github.com/google/uuid"
)

// Config holds the settings of a World. It is copied into the World on
// construction and never changes afterwards.
type Config struct {
	// Log is the Logger to use. If nil, Log is set to slog.Default().
	Log *slog.Logger
	// ChunkSize is the side length of a chunk in blocks. It must be positive;
	// powers of two use faster coordinate math.
	ChunkSize int
	// AddDistance is the Chebyshev radius, in chunks, around the observer's
	// chunk inside which chunks are generated.
	AddDistance int
	// RemoveDistance is the Chebyshev radius beyond which loaded chunks are
	// evicted. It must be at least AddDistance, otherwise fresh chunks would
	// be evicted right after being generated.
	RemoveDistance int
	// Generator fills new chunks. If nil, the reference generator with
	// gen.DefaultDecorationChance is used.
	Generator gen.Generator
	// Workers limits concurrent generator calls in Prefetch. If 0 or lower,
	// runtime.NumCPU() is used.
	Workers int
	// CancelStaleAdds drops queued chunk generations that fall outside
	// RemoveDistance when the observer moves. If false, a queued chunk is
	// always generated once popped, even if it is no longer wanted.
	CancelStaleAdds bool
	// RetryFailed puts a chunk whose generation failed back into the add
	// queue. If false the chunk is dropped until the observer next crosses a
	// chunk boundary.
	RetryFailed bool
}

// DefaultConfig returns the default streaming settings.
func DefaultConfig() Config {
	return Config{
		ChunkSize:      16,
		AddDistance:    2,
		RemoveDistance: 3,
		RetryFailed:    true,
	}
}

// Validate checks the distances and chunk size.
func (conf Config) Validate() error {
	if conf.ChunkSize <= 0 {
		return fmt.Errorf("chunk size %d must be positive: %w", conf.ChunkSize, ErrInvalidConfig)
	}
	if conf.AddDistance < 0 {
		return fmt.Errorf("add distance %d must not be negative: %w", conf.AddDistance, ErrInvalidConfig)
	}
	if conf.RemoveDistance < conf.AddDistance {
		return fmt.Errorf("remove distance %d is below add distance %d: %w", conf.RemoveDistance, conf.AddDistance, ErrInvalidConfig)
	}
	return nil
}

// Stats counts what a World has done since it was created.
type Stats struct {
	Added    uint64
	Removed  uint64
	Changed  uint64
	Failed   uint64
	Rebuilds uint64
}

// World streams chunks in and out around a single observer. It is not safe
// for concurrent use: Tick, Block, SetBlock and Prefetch must all be called
// from the same goroutine.
type World struct {
	conf Config
	log  *slog.Logger
	grid grid

	store   *Store
	adds    *addQueue
	removes *removeQueue
	notify  *notifier

	observer ChunkPos
	// seen is false until the first Tick, so the queues are always built once.
	seen bool

	stats Stats
}

// New creates a World from conf.
func New(conf Config) (*World, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Generator == nil {
		conf.Generator = gen.NewDefault(gen.DefaultDecorationChance)
	}
	if conf.Workers <= 0 {
		conf.Workers = runtime.NumCPU()
	}
	n := &notifier{}
	w := &World{
		conf:    conf,
		log:     conf.Log,
		grid:    newGrid(conf.ChunkSize),
		store:   newStore(conf.ChunkSize, conf.Generator, n),
		adds:    newAddQueue(),
		removes: newRemoveQueue(),
		notify:  n,
	}
	return w, nil
}

// Config returns the settings the World was created with, defaults applied.
func (w *World) Config() Config {
	return w.conf
}

// Store returns the World's chunk store for read access.
func (w *World) Store() *Store {
	return w.store
}

// Handle registers l for chunk notifications and returns an ID that can be
// passed to Unhandle.
func (w *World) Handle(l Listener) uuid.UUID {
	return w.notify.add(l)
}

// Unhandle removes the listener registered under id and reports whether it
// was found.
func (w *World) Unhandle(id uuid.UUID) bool {
	return w.notify.remove(id)
}

// Block returns the block ID at world coordinates x, y, z, or gen.BlockAir if
// the chunk holding it is not loaded.
func (w *World) Block(x, y, z int) uint8 {
	pos, lx, ly, lz := w.grid.split(x, y, z)
	c, ok := w.store.Chunk(pos)
	if !ok {
		return gen.BlockAir
	}
	return c.Block(lx, ly, lz)
}

// SetBlock sets the block at world coordinates x, y, z to id and raises one
// ChunkChanged notification. If the chunk is not loaded nothing happens and
// an error wrapping ErrChunkNotLoaded is returned.
func (w *World) SetBlock(id uint8, x, y, z int) error {
	pos, lx, ly, lz := w.grid.split(x, y, z)
	c, ok := w.store.Chunk(pos)
	if !ok {
		return fmt.Errorf("set block at %d,%d,%d in chunk %s: %w", x, y, z, pos, ErrChunkNotLoaded)
	}
	c.SetBlock(lx, ly, lz, id)
	w.stats.Changed++
	w.notify.chunkChanged(c, pos, pos.Origin(w.conf.ChunkSize))
	return nil
}

// ObserverChunk returns the observer chunk recorded by the last Tick. ok is
// false before the first Tick.
func (w *World) ObserverChunk() (pos ChunkPos, ok bool) {
	return w.observer, w.seen
}

// Pending returns the lengths of the add and remove queues.
func (w *World) Pending() (adds, removes int) {
	return w.adds.len(), w.removes.len()
}

// Stats returns a snapshot of the World's counters.
func (w *World) Stats() Stats {
	return w.stats
}
