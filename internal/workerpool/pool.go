// Package workerpool runs independent bake tasks with bounded parallelism.
// It is deliberately shaped for forge's Phase A (spec §5): the set of
// per-asset tasks whose bake computation needs nothing but their own
// source bytes, and which therefore have no ordering constraint on one
// another. It does not itself assign BlobIds or write anything; it only
// sequences task execution and aggregates the first failure.
//
// Referencing kinds (material, model, scene, bitmap-font) are not run
// through this pool: their canonical encoding embeds the already-assigned
// numeric BlobId of each thing they reference, so committing two of them
// concurrently would make that numbering depend on goroutine scheduling,
// breaking the archive's byte-identical-across-runs guarantee (spec §8).
// pak.Writer bakes and commits those sequentially, in the resolved work
// list's order, instead.
package workerpool

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/forgekit/forge/model"
)

// Task is one unit of independent bake work: Key identifies it and Run
// performs the actual bake-and-hand-to-writer work.
type Task struct {
	Key model.AssetKey
	Run func(ctx context.Context) error
}

// Pool runs a task list with at most Concurrency tasks executing at once.
type Pool struct {
	concurrency int
}

// New returns a Pool bounded to concurrency simultaneous tasks. A
// non-positive concurrency is treated as 1 (sequential).
func New(concurrency int) *Pool {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Pool{concurrency: concurrency}
}

type taskFailure struct {
	key model.AssetKey
	err error
}

// Run executes every task, blocking until all have returned, up to the
// pool's concurrency limit; one task failing does not stop the others
// from running to completion (spec §5).
//
// Run itself never cancels ctx; Task.Run implementations are expected to
// check ctx cooperatively for caller-driven cancellation. If more than one
// task fails, the error returned is the one from the task with the
// lexicographically smallest Key, giving callers a deterministic result
// across repeated runs over the same work list (spec §5 tie-break rule).
func (p *Pool) Run(ctx context.Context, tasks []Task) error {
	var mu sync.Mutex
	var failures []taskFailure

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for _, t := range tasks {
		t := t
		g.Go(func() error {
			if err := t.Run(ctx); err != nil {
				mu.Lock()
				failures = append(failures, taskFailure{t.Key, err})
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()

	return firstByKey(failures)
}

func firstByKey(failures []taskFailure) error {
	if len(failures) == 0 {
		return nil
	}

	winner := failures[0]
	for _, f := range failures[1:] {
		if f.key < winner.key {
			winner = f
		}
	}
	return winner.err
}
