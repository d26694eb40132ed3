package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/forge/model"
)

func TestPool_RunsAllTasksConcurrently(t *testing.T) {
	var count int32
	tasks := make([]Task, 5)
	for i := range tasks {
		tasks[i] = Task{
			Key: model.AssetKey(string(rune('a' + i))),
			Run: func(ctx context.Context) error {
				atomic.AddInt32(&count, 1)
				return nil
			},
		}
	}

	err := New(3).Run(context.Background(), tasks)
	require.NoError(t, err)
	require.EqualValues(t, 5, count)
}

func TestPool_UnrelatedTaskStillRunsAfterAnotherFails(t *testing.T) {
	var independentRan bool

	tasks := []Task{
		{
			Key: "bad",
			Run: func(ctx context.Context) error {
				return errors.New("boom")
			},
		},
		{
			Key: "independent",
			Run: func(ctx context.Context) error {
				independentRan = true
				return nil
			},
		},
	}

	err := New(1).Run(context.Background(), tasks)
	require.Error(t, err)
	require.True(t, independentRan)
}

func TestPool_MultipleFailuresPicksSmallestKey(t *testing.T) {
	tasks := []Task{
		{Key: "zzz", Run: func(ctx context.Context) error { return errors.New("from zzz") }},
		{Key: "aaa", Run: func(ctx context.Context) error { return errors.New("from aaa") }},
		{Key: "mmm", Run: func(ctx context.Context) error { return errors.New("from mmm") }},
	}

	err := New(3).Run(context.Background(), tasks)
	require.EqualError(t, err, "from aaa")
}

func TestPool_ConcurrencyLimitIsRespected(t *testing.T) {
	var active, maxActive int32
	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = Task{
			Key: model.AssetKey(string(rune('a' + i))),
			Run: func(ctx context.Context) error {
				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			},
		}
	}

	err := New(2).Run(context.Background(), tasks)
	require.NoError(t, err)
	require.LessOrEqual(t, maxActive, int32(2))
}

func TestPool_NonPositiveConcurrencyRunsSequentially(t *testing.T) {
	var count int32
	tasks := []Task{
		{Key: "a", Run: func(ctx context.Context) error { atomic.AddInt32(&count, 1); return nil }},
		{Key: "b", Run: func(ctx context.Context) error { atomic.AddInt32(&count, 1); return nil }},
	}

	err := New(0).Run(context.Background(), tasks)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}
