package auth

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// HashPool bounds how many password hashes run at once so bcrypt work cannot
// starve the rest of the server. Callers block until a slot frees up or ctx
// is done.
type HashPool struct {
	hasher PasswordHasher
	slots  *semaphore.Weighted
}

func NewHashPool(hasher PasswordHasher, workers int) *HashPool {
	if workers < 1 {
		workers = 1
	}
	return &HashPool{hasher: hasher, slots: semaphore.NewWeighted(int64(workers))}
}

func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	if err := p.slots.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.slots.Release(1)

	return p.hasher.Hash(password)
}

func (p *HashPool) Verify(ctx context.Context, password, digest string) (bool, error) {
	if err := p.slots.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.slots.Release(1)

	return p.hasher.Verify(password, digest)
}
