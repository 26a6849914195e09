// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Figure Contributors

package auth

import (
	"context"
	"runtime"

	"github.com/samber/oops"
	"golang.org/x/sync/semaphore"
)

// BlockingPool bounds how many CPU-bound jobs (password hashing) run at once.
// Callers waiting for a slot or a result give up when their context ends; a job
// that already started runs to completion and releases its slot.
type BlockingPool struct {
	sem  *semaphore.Weighted
	size int64
}

// NewBlockingPool creates a pool running at most size jobs concurrently.
// A size below one means runtime.GOMAXPROCS(0).
func NewBlockingPool(size int) *BlockingPool {
	if size < 1 {
		size = runtime.GOMAXPROCS(0)
	}
	return &BlockingPool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: int64(size),
	}
}

// Size returns the concurrency limit.
func (p *BlockingPool) Size() int {
	return int(p.size)
}

type jobResult[T any] struct {
	value T
	err   error
}

// Submit runs fn on the pool and waits for its result.
func Submit[T any](ctx context.Context, p *BlockingPool, fn func() (T, error)) (T, error) {
	var zero T
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, oops.Code("AUTH_POOL_ACQUIRE_FAILED").Wrap(err)
	}

	done := make(chan jobResult[T], 1)
	go func() {
		defer p.sem.Release(1)
		v, err := fn()
		done <- jobResult[T]{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return zero, oops.Code("AUTH_POOL_CANCELED").Wrap(ctx.Err())
	}
}
