package world

import (
	"context"
	"errors"

	"github.com/ethanlu126/noa/internal/world/gen"
	"golang.org/x/sync/errgroup"
)

type prefetchJob struct {
	pos     ChunkPos
	seq     uint64
	started bool
	c       *gen.Chunk
	err     error
}

// Prefetch takes up to limit chunks off the add queue, nearest first, and
// generates them on up to Config.Workers goroutines. Once every job has
// finished the chunks are inserted and announced in queue order from the
// calling goroutine, so listeners never see a partially generated chunk. A
// limit of 0 or lower drains the whole queue. Pending evictions are left to
// Tick.
//
// If ctx is cancelled, jobs that have not started are put back into the add
// queue and ctx.Err() is returned along with any generator failures.
func (w *World) Prefetch(ctx context.Context, limit int) (int, error) {
	if limit <= 0 || limit > w.adds.len() {
		limit = w.adds.len()
	}
	if limit == 0 {
		return 0, nil
	}

	jobs := make([]prefetchJob, 0, limit)
	for len(jobs) < limit {
		pos, seq, ok := w.adds.pop()
		if !ok {
			break
		}
		jobs = append(jobs, prefetchJob{pos: pos, seq: seq})
	}

	var g errgroup.Group
	g.SetLimit(w.conf.Workers)
	for i := range jobs {
		if ctx.Err() != nil {
			break
		}
		j := &jobs[i]
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			j.started = true
			j.c, j.err = w.store.generate(j.pos)
			return nil
		})
	}
	_ = g.Wait()

	var (
		loaded int
		errs   []error
	)
	for i := range jobs {
		j := &jobs[i]
		switch {
		case !j.started:
			w.adds.pushSeq(j.pos, j.seq)
		case j.err != nil:
			errs = append(errs, w.fail(j.pos, j.err))
		default:
			w.store.insert(j.pos, j.c)
			w.stats.Added++
			loaded++
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	w.log.Debug("prefetched chunks", "loaded", loaded, "requested", len(jobs), "adds", w.adds.len())
	return loaded, errors.Join(errs...)
}
