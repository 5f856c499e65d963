package world

import (
	"slices"
	"sync/atomic"

	"github.com/ethanlu126/noa/internal/world/gen"
	"github.com/google/uuid"
)

// Listener receives chunk lifecycle notifications. Methods are called
// synchronously from the goroutine driving the World and must not call back
// into it. The chunk passed to ChunkAdded and ChunkChanged is owned by the
// World; listeners may read it until the matching ChunkRemoved.
type Listener interface {
	// ChunkAdded is called after a chunk has been fully generated and
	// inserted.
	ChunkAdded(c *gen.Chunk, pos ChunkPos, origin gen.Origin)
	// ChunkChanged is called after a block in a loaded chunk was set.
	ChunkChanged(c *gen.Chunk, pos ChunkPos, origin gen.Origin)
	// ChunkRemoved is called after a chunk was evicted.
	ChunkRemoved(pos ChunkPos)
}

// NopListener implements Listener with no-ops. Embed it to implement only
// some of the methods.
type NopListener struct{}

func (NopListener) ChunkAdded(*gen.Chunk, ChunkPos, gen.Origin)   {}
func (NopListener) ChunkChanged(*gen.Chunk, ChunkPos, gen.Origin) {}
func (NopListener) ChunkRemoved(ChunkPos)                         {}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Added   func(c *gen.Chunk, pos ChunkPos, origin gen.Origin)
	Changed func(c *gen.Chunk, pos ChunkPos, origin gen.Origin)
	Removed func(pos ChunkPos)
}

func (f ListenerFuncs) ChunkAdded(c *gen.Chunk, pos ChunkPos, origin gen.Origin) {
	if f.Added != nil {
		f.Added(c, pos, origin)
	}
}

func (f ListenerFuncs) ChunkChanged(c *gen.Chunk, pos ChunkPos, origin gen.Origin) {
	if f.Changed != nil {
		f.Changed(c, pos, origin)
	}
}

func (f ListenerFuncs) ChunkRemoved(pos ChunkPos) {
	if f.Removed != nil {
		f.Removed(pos)
	}
}

// EventKind is the type of a chunk lifecycle Event.
type EventKind uint8

const (
	EventAdded EventKind = iota + 1
	EventChanged
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	}
	return "unknown"
}

// Event is a chunk notification as a value. Chunk is nil for EventRemoved.
type Event struct {
	Kind   EventKind
	Pos    ChunkPos
	Origin gen.Origin
	Chunk  *gen.Chunk
}

// ChanListener forwards notifications to a buffered channel. Sends never
// block: when the buffer is full the event is dropped and counted.
type ChanListener struct {
	C       chan Event
	dropped atomic.Uint64
}

// NewChanListener returns a ChanListener with a buffer of n events.
func NewChanListener(n int) *ChanListener {
	return &ChanListener{C: make(chan Event, n)}
}

// Dropped returns the number of events discarded because the buffer was full.
func (l *ChanListener) Dropped() uint64 {
	return l.dropped.Load()
}

func (l *ChanListener) send(e Event) {
	select {
	case l.C <- e:
	default:
		l.dropped.Add(1)
	}
}

func (l *ChanListener) ChunkAdded(c *gen.Chunk, pos ChunkPos, origin gen.Origin) {
	l.send(Event{Kind: EventAdded, Pos: pos, Origin: origin, Chunk: c})
}

func (l *ChanListener) ChunkChanged(c *gen.Chunk, pos ChunkPos, origin gen.Origin) {
	l.send(Event{Kind: EventChanged, Pos: pos, Origin: origin, Chunk: c})
}

func (l *ChanListener) ChunkRemoved(pos ChunkPos) {
	l.send(Event{Kind: EventRemoved, Pos: pos})
}

type subscription struct {
	id uuid.UUID
	l  Listener
}

// notifier fans notifications out to registered listeners in registration
// order.
type notifier struct {
	subs []subscription
}

func (n *notifier) add(l Listener) uuid.UUID {
	id := uuid.New()
	n.subs = append(n.subs, subscription{id: id, l: l})
	return id
}

func (n *notifier) remove(id uuid.UUID) bool {
	before := len(n.subs)
	n.subs = slices.DeleteFunc(n.subs, func(s subscription) bool { return s.id == id })
	return len(n.subs) != before
}

func (n *notifier) chunkAdded(c *gen.Chunk, pos ChunkPos, origin gen.Origin) {
	for _, s := range n.subs {
		s.l.ChunkAdded(c, pos, origin)
	}
}

func (n *notifier) chunkChanged(c *gen.Chunk, pos ChunkPos, origin gen.Origin) {
	for _, s := range n.subs {
		s.l.ChunkChanged(c, pos, origin)
	}
}

func (n *notifier) chunkRemoved(pos ChunkPos) {
	for _, s := range n.subs {
		s.l.ChunkRemoved(pos)
	}
}
