package world

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/ethanlu126/noa/internal/world/gen"
)

// Store owns the loaded chunks. It is accessed only from the goroutine
// driving the World; generate is the one method safe to call concurrently.
type Store struct {
	size      int
	generator gen.Generator
	chunks    map[ChunkPos]*gen.Chunk
	notify    *notifier
}

func newStore(size int, generator gen.Generator, notify *notifier) *Store {
	return &Store{
		size:      size,
		generator: generator,
		chunks:    make(map[ChunkPos]*gen.Chunk, 128),
		notify:    notify,
	}
}

// Chunk returns the loaded chunk at pos.
func (s *Store) Chunk(pos ChunkPos) (*gen.Chunk, bool) {
	c, ok := s.chunks[pos]
	return c, ok
}

// Has reports whether the chunk at pos is loaded.
func (s *Store) Has(pos ChunkPos) bool {
	_, ok := s.chunks[pos]
	return ok
}

// Len returns the number of loaded chunks.
func (s *Store) Len() int {
	return len(s.chunks)
}

// Positions returns the loaded chunk positions sorted by X, then Y, then Z.
func (s *Store) Positions() []ChunkPos {
	out := make([]ChunkPos, 0, len(s.chunks))
	for pos := range s.chunks {
		out = append(out, pos)
	}
	slices.SortFunc(out, comparePos)
	return out
}

// Digest hashes the positions and block data of all loaded chunks in sorted
// order. Two stores with the same content have the same digest.
func (s *Store) Digest() uint64 {
	h := xxhash.New()
	var buf [24]byte
	for _, pos := range s.Positions() {
		binary.LittleEndian.PutUint64(buf[0:], uint64(pos.X))
		binary.LittleEndian.PutUint64(buf[8:], uint64(pos.Y))
		binary.LittleEndian.PutUint64(buf[16:], uint64(pos.Z))
		_, _ = h.Write(buf[:])
		_, _ = h.Write(s.chunks[pos].Blocks)
	}
	return h.Sum64()
}

// generate allocates a chunk for pos and runs the generator on it. It does
// not touch the store, so it may run concurrently for distinct positions.
// A panicking generator is reported as an error.
func (s *Store) generate(pos ChunkPos) (c *gen.Chunk, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("generator panic: %v", r)
		}
	}()
	c = gen.NewChunk(s.size)
	if err := s.generator.Generate(c, pos.Origin(s.size)); err != nil {
		return nil, err
	}
	return c, nil
}

// insert stores a fully generated chunk and announces it.
func (s *Store) insert(pos ChunkPos, c *gen.Chunk) {
	s.chunks[pos] = c
	s.notify.chunkAdded(c, pos, pos.Origin(s.size))
}

// create generates and inserts the chunk at pos. On error nothing is stored
// or announced.
func (s *Store) create(pos ChunkPos) error {
	c, err := s.generate(pos)
	if err != nil {
		return err
	}
	s.insert(pos, c)
	return nil
}

// remove deletes the chunk at pos and announces it. Removing a chunk that is
// not loaded does nothing and returns false.
func (s *Store) remove(pos ChunkPos) bool {
	if _, ok := s.chunks[pos]; !ok {
		return false
	}
	delete(s.chunks, pos)
	s.notify.chunkRemoved(pos)
	return true
}
