package world

import "container/heap"

// addEntry is a chunk waiting to be generated.
type addEntry struct {
	pos ChunkPos
	// seq is the insertion order, used to break distance ties.
	seq   uint64
	dist  int
	index int
}

// addQueue holds distinct chunk positions pending creation, popped nearest
// first by Manhattan distance to the centre. Equal distances pop in
// insertion order.
type addQueue struct {
	center  ChunkPos
	entries addHeap
	byPos   map[ChunkPos]*addEntry
	nextSeq uint64
}

func newAddQueue() *addQueue {
	return &addQueue{byPos: make(map[ChunkPos]*addEntry)}
}

func (q *addQueue) len() int { return len(q.entries) }

func (q *addQueue) contains(pos ChunkPos) bool {
	_, ok := q.byPos[pos]
	return ok
}

// push queues pos unless it is already queued and reports whether it was
// added.
func (q *addQueue) push(pos ChunkPos) bool {
	if q.contains(pos) {
		return false
	}
	q.nextSeq++
	q.pushSeq(pos, q.nextSeq)
	return true
}

// pushSeq queues pos with an existing sequence number, so an entry taken out
// and put back keeps its place among equals.
func (q *addQueue) pushSeq(pos ChunkPos, seq uint64) {
	if q.contains(pos) {
		return
	}
	e := &addEntry{pos: pos, seq: seq, dist: pos.Manhattan(q.center)}
	q.byPos[pos] = e
	heap.Push(&q.entries, e)
}

// pop removes and returns the nearest queued position.
func (q *addQueue) pop() (ChunkPos, uint64, bool) {
	if len(q.entries) == 0 {
		return ChunkPos{}, 0, false
	}
	e := heap.Pop(&q.entries).(*addEntry)
	delete(q.byPos, e.pos)
	return e.pos, e.seq, true
}

// recenter recomputes every entry's distance against a new centre.
func (q *addQueue) recenter(center ChunkPos) {
	q.center = center
	for _, e := range q.entries {
		e.dist = e.pos.Manhattan(center)
	}
	heap.Init(&q.entries)
}

// dropFartherThan removes entries whose Chebyshev distance from the centre
// exceeds r and returns how many were removed.
func (q *addQueue) dropFartherThan(r int) int {
	kept := q.entries[:0]
	dropped := 0
	for _, e := range q.entries {
		if e.pos.Chebyshev(q.center) > r {
			delete(q.byPos, e.pos)
			dropped++
			continue
		}
		e.index = len(kept)
		kept = append(kept, e)
	}
	clear(q.entries[len(kept):])
	q.entries = kept
	heap.Init(&q.entries)
	return dropped
}

// addHeap implements heap.Interface ordered by (dist, seq).
type addHeap []*addEntry

func (h addHeap) Len() int { return len(h) }

func (h addHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].seq < h[j].seq
}

func (h addHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *addHeap) Push(x any) {
	e := x.(*addEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *addHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// removeQueue is a FIFO of distinct chunk positions pending eviction.
type removeQueue struct {
	items []ChunkPos
	set   map[ChunkPos]struct{}
}

func newRemoveQueue() *removeQueue {
	return &removeQueue{set: make(map[ChunkPos]struct{})}
}

func (q *removeQueue) len() int { return len(q.items) }

func (q *removeQueue) contains(pos ChunkPos) bool {
	_, ok := q.set[pos]
	return ok
}

func (q *removeQueue) push(pos ChunkPos) bool {
	if q.contains(pos) {
		return false
	}
	q.set[pos] = struct{}{}
	q.items = append(q.items, pos)
	return true
}

func (q *removeQueue) pop() (ChunkPos, bool) {
	if len(q.items) == 0 {
		return ChunkPos{}, false
	}
	pos := q.items[0]
	q.items[0] = ChunkPos{}
	q.items = q.items[1:]
	delete(q.set, pos)
	return pos, true
}

// retain keeps only the positions for which keep returns true, preserving
// order, and returns how many were withdrawn.
func (q *removeQueue) retain(keep func(ChunkPos) bool) int {
	kept := q.items[:0]
	for _, pos := range q.items {
		if keep(pos) {
			kept = append(kept, pos)
			continue
		}
		delete(q.set, pos)
	}
	n := len(q.items) - len(kept)
	q.items = kept
	return n
}
