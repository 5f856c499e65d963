package world

import "testing"

func TestAddQueueDeduplicates(t *testing.T) {
	q := newAddQueue()
	if !q.push(ChunkPos{1, 0, 0}) {
		t.Fatal("first push should add")
	}
	if q.push(ChunkPos{1, 0, 0}) {
		t.Fatal("second push of the same position should be ignored")
	}
	if q.len() != 1 {
		t.Errorf("len = %d, want 1", q.len())
	}
}

func TestAddQueueNearestFirstWithInsertionTieBreak(t *testing.T) {
	q := newAddQueue()
	order := []ChunkPos{
		{2, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
		{1, 0, 0},
		{0, 0, -1},
	}
	for _, p := range order {
		q.push(p)
	}
	want := []ChunkPos{
		{0, 0, 0},
		{0, 1, 0},
		{1, 0, 0},
		{0, 0, -1},
		{2, 0, 0},
	}
	for i, w := range want {
		got, _, ok := q.pop()
		if !ok {
			t.Fatalf("pop %d: queue empty", i)
		}
		if got != w {
			t.Errorf("pop %d = %v, want %v", i, got, w)
		}
	}
	if _, _, ok := q.pop(); ok {
		t.Error("queue should be empty")
	}
}

func TestAddQueueRecenter(t *testing.T) {
	q := newAddQueue()
	q.push(ChunkPos{0, 0, 0})
	q.push(ChunkPos{5, 0, 0})
	q.recenter(ChunkPos{5, 0, 0})

	got, _, _ := q.pop()
	if got != (ChunkPos{5, 0, 0}) {
		t.Errorf("after recenter pop = %v, want {5 0 0}", got)
	}
}

func TestAddQueuePushSeqKeepsPlace(t *testing.T) {
	q := newAddQueue()
	q.push(ChunkPos{1, 0, 0})
	q.push(ChunkPos{0, 1, 0})

	first, seq, _ := q.pop()
	q.pushSeq(first, seq)
	got, _, _ := q.pop()
	if got != first {
		t.Errorf("pop after pushSeq = %v, want %v", got, first)
	}
}

func TestAddQueueDropFartherThan(t *testing.T) {
	q := newAddQueue()
	for x := -3; x <= 3; x++ {
		q.push(ChunkPos{x, 0, 0})
	}
	if n := q.dropFartherThan(1); n != 4 {
		t.Errorf("dropFartherThan(1) = %d, want 4", n)
	}
	if q.len() != 3 {
		t.Errorf("len = %d, want 3", q.len())
	}
	if q.contains(ChunkPos{3, 0, 0}) {
		t.Error("dropped position still indexed")
	}
	// Dropped positions can be queued again.
	if !q.push(ChunkPos{3, 0, 0}) {
		t.Error("push of dropped position should add")
	}
}

func TestRemoveQueueFIFO(t *testing.T) {
	q := newRemoveQueue()
	q.push(ChunkPos{3, 0, 0})
	q.push(ChunkPos{1, 0, 0})
	q.push(ChunkPos{3, 0, 0})
	q.push(ChunkPos{2, 0, 0})

	want := []ChunkPos{{3, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	for i, w := range want {
		got, ok := q.pop()
		if !ok || got != w {
			t.Errorf("pop %d = %v, %v; want %v, true", i, got, ok, w)
		}
	}
	if _, ok := q.pop(); ok {
		t.Error("queue should be empty")
	}
}

func TestRemoveQueueRetain(t *testing.T) {
	q := newRemoveQueue()
	for x := 0; x < 5; x++ {
		q.push(ChunkPos{x, 0, 0})
	}
	n := q.retain(func(p ChunkPos) bool { return p.X%2 == 0 })
	if n != 2 {
		t.Errorf("retain withdrew %d, want 2", n)
	}
	if q.contains(ChunkPos{1, 0, 0}) {
		t.Error("withdrawn position still in set")
	}
	got, _ := q.pop()
	if got != (ChunkPos{0, 0, 0}) {
		t.Errorf("pop = %v, want {0 0 0}", got)
	}
}
