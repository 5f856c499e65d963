package world

import (
	"errors"
	"fmt"
)

var (
	// ErrChunkNotLoaded is returned when a block write targets a chunk that
	// is not in the store.
	ErrChunkNotLoaded = errors.New("chunk not loaded")
	// ErrInvalidConfig is wrapped by every configuration validation error.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// GenerateError reports a generator failure for one chunk. The chunk was
// neither inserted nor announced.
type GenerateError struct {
	Pos ChunkPos
	Err error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("generate chunk %s: %v", e.Pos, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}
