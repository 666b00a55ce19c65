package cryptox

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many password hash computations run at once.
type Pool struct {
	hasher Hasher
	sem    *semaphore.Weighted
}

// NewPool wraps h. A size below one defaults to the number of CPUs.
func NewPool(h Hasher, size int) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	return &Pool{hasher: h, sem: semaphore.NewWeighted(int64(size))}
}

// Hash blocks until a slot is free, then hashes password with the pool's
// hasher.
func (p *Pool) Hash(ctx context.Context, password string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)

	return p.hasher.Hash(password)
}

// Verify blocks until a slot is free, then checks password against encoded.
// The error is only ever the context's.
func (p *Pool) Verify(ctx context.Context, password, encoded string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.sem.Release(1)

	return VerifyPassword(password, encoded), nil
}
