package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsEveryJob(t *testing.T) {
	var done atomic.Int64
	p := newWorkerPool(context.Background(), 2, func(Job) error {
		done.Add(1)
		return nil
	})
	p.start(4)
	for range 100 {
		require.NoError(t, p.push(Job{}))
	}
	require.NoError(t, p.join())
	assert.Equal(t, int64(100), done.Load())
}

func TestWorkerPool_FirstErrorStops(t *testing.T) {
	boom := errors.New("boom")
	p := newWorkerPool(context.Background(), 1, func(j Job) error {
		if j.Rel == "bad" {
			return boom
		}
		return nil
	})
	p.start(2)
	require.NoError(t, p.push(Job{Rel: "bad"}))

	var pushErr error
	for range 1000 {
		if pushErr = p.push(Job{Rel: "ok"}); pushErr != nil {
			break
		}
	}
	require.ErrorIs(t, pushErr, boom, "push fails once a job has failed")
	require.ErrorIs(t, p.join(), boom)
}

func TestWorkerPool_Exhausted(t *testing.T) {
	boom := errors.New("boom")
	p := newWorkerPool(context.Background(), 0, func(Job) error { return boom })
	p.start(1)
	require.NoError(t, p.push(Job{}))

	select {
	case <-p.stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not exit")
	}
	err := p.push(Job{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWorkersExhausted) || errors.Is(err, boom))
	require.ErrorIs(t, p.join(), boom)
}

func TestWorkerPool_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	block := make(chan struct{})
	p := newWorkerPool(ctx, 0, func(Job) error {
		<-block
		return nil
	})
	p.start(1)
	require.NoError(t, p.push(Job{}))

	cancel()
	require.ErrorIs(t, p.push(Job{}), context.Canceled)
	close(block)
	require.NoError(t, p.join(), "cancellation is reported by the caller, not the pool")
}

func TestWorkerPool_FailureCancelsContext(t *testing.T) {
	boom := errors.New("boom")
	p := newWorkerPool(context.Background(), 1, func(Job) error { return boom })
	ctx := p.ctx
	p.start(1)
	require.NoError(t, p.push(Job{}))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by the failed job")
	}
	require.ErrorIs(t, context.Cause(ctx), boom)
	require.ErrorIs(t, p.join(), boom)
}

func TestPreferCause(t *testing.T) {
	job := errors.New("job")
	walk := errors.New("walk")
	assert.Equal(t, walk, preferCause(walk, nil))
	assert.Equal(t, job, preferCause(nil, job))
	assert.Equal(t, job, preferCause(ErrCancelled, job))
	assert.Equal(t, job, preferCause(ErrWorkersExhausted, job))
	assert.Equal(t, walk, preferCause(walk, job))
	assert.NoError(t, preferCause(nil, nil))
}
