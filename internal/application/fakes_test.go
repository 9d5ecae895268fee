package application

import (
	"context"
	"sync"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	"github.com/oksasatya/wordle-circles/internal/domain/repository"
	"github.com/oksasatya/wordle-circles/internal/infrastructure/memory"
	"github.com/oksasatya/wordle-circles/internal/infrastructure/search"
)

// racyUsers hides existing rows from the pre-check so the insert's unique
// constraint has to catch the duplicate.
type racyUsers struct{ *memory.UserRepository }

func (racyUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}

// countingUsers counts credential hash rewrites.
type countingUsers struct {
	*memory.UserRepository
	mu      sync.Mutex
	updates int
}

func (c *countingUsers) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	c.mu.Lock()
	c.updates++
	c.mu.Unlock()
	return c.UserRepository.UpdatePasswordHash(ctx, id, hash)
}

// racyScores reports no existing score so the unique constraint path runs.
type racyScores struct{ *memory.ScoreRepository }

func (racyScores) Exists(context.Context, string, string) (bool, error) { return false, nil }

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body)
	return nil
}

type fakeDirectory struct {
	indexed []string
	hits    []search.UserHit
	lastQ   string
	lastN   int
}

func (d *fakeDirectory) Index(_ context.Context, u *entity.User) error {
	d.indexed = append(d.indexed, u.ID)
	return nil
}

func (d *fakeDirectory) Search(_ context.Context, q string, size int) ([]search.UserHit, error) {
	d.lastQ, d.lastN = q, size
	return d.hits, nil
}
