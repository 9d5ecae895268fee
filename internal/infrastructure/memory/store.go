// Package memory holds in-memory repositories that enforce the same unique
// constraints as the Postgres schema. They back service and handler tests.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	"github.com/oksasatya/wordle-circles/internal/domain/repository"
)

type key struct{ a, b string }

// Store is shared by all repositories it hands out.
type Store struct {
	mu      sync.Mutex
	seq     int
	users   map[string]*entity.User
	circles map[string]*entity.Circle
	members map[key]bool
	scores  map[key]*entity.DailyScore
}

func NewStore() *Store {
	return &Store{
		users:   map[string]*entity.User{},
		circles: map[string]*entity.Circle{},
		members: map[key]bool{},
		scores:  map[key]*entity.DailyScore{},
	}
}

func (s *Store) Users() *UserRepository         { return &UserRepository{s} }
func (s *Store) Circles() *CircleRepository     { return &CircleRepository{s} }
func (s *Store) Members() *MembershipRepository { return &MembershipRepository{s} }
func (s *Store) Scores() *ScoreRepository       { return &ScoreRepository{s} }

func (s *Store) nextID() string {
	s.seq++
	return "00000000-0000-0000-0000-" + leftPad(strconv.Itoa(s.seq), 12)
}

func leftPad(v string, n int) string {
	for len(v) < n {
		v = "0" + v
	}
	return v
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = r.s.nextID()
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

type CircleRepository struct{ s *Store }

func (r *CircleRepository) CreateWithCreator(_ context.Context, c *entity.Circle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[c.CreatorID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.s.circles {
		if existing.InviteCode == c.InviteCode {
			return repository.ErrDuplicate
		}
	}
	c.ID = r.s.nextID()
	c.CreatedAt = time.Now().UTC()
	cp := *c
	r.s.circles[c.ID] = &cp
	r.s.members[key{c.CreatorID, c.ID}] = true
	return nil
}

func (r *CircleRepository) GetByID(_ context.Context, id string) (*entity.Circle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.circles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *CircleRepository) GetByInviteCode(_ context.Context, code string) (*entity.Circle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.circles {
		if c.InviteCode == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *CircleRepository) ListForUser(_ context.Context, userID string) ([]entity.CircleSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.CircleSummary{}
	for k := range r.s.members {
		if k.a == userID {
			c := r.s.circles[k.b]
			out = append(out, entity.CircleSummary{ID: c.ID, Name: c.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type MembershipRepository struct{ s *Store }

func (r *MembershipRepository) Exists(_ context.Context, userID, circleID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.members[key{userID, circleID}], nil
}

func (r *MembershipRepository) Create(_ context.Context, m *entity.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{m.UserID, m.CircleID}
	if r.s.members[k] {
		return repository.ErrDuplicate
	}
	if _, ok := r.s.circles[m.CircleID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.users[m.UserID]; !ok {
		return repository.ErrNotFound
	}
	r.s.members[k] = true
	m.ID = r.s.nextID()
	return nil
}

func (r *MembershipRepository) ListMembersWithScores(_ context.Context, circleID, day string) ([]entity.MemberScore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.MemberScore{}
	for k := range r.s.members {
		if k.b != circleID {
			continue
		}
		u := r.s.users[k.a]
		ms := entity.MemberScore{UserID: u.ID, Name: u.Name}
		if sc, ok := r.s.scores[key{u.ID, day}]; ok {
			g, raw := sc.Guesses, sc.RawResult
			ms.Guesses, ms.RawResult = &g, &raw
		}
		out = append(out, ms)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type ScoreRepository struct{ s *Store }

func (r *ScoreRepository) Exists(_ context.Context, userID, day string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.scores[key{userID, day}]
	return ok, nil
}

func (r *ScoreRepository) Create(_ context.Context, sc *entity.DailyScore) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{sc.UserID, sc.Date.Format(entity.DateLayout)}
	if _, ok := r.s.scores[k]; ok {
		return repository.ErrDuplicate
	}
	sc.ID = r.s.nextID()
	sc.SubmittedAt = time.Now().UTC()
	cp := *sc
	r.s.scores[k] = &cp
	return nil
}

func (r *ScoreRepository) GetForDay(_ context.Context, userID, day string) (*entity.DailyScore, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sc, ok := r.s.scores[key{userID, day}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *sc
	return &cp, nil
}

var (
	_ repository.UserRepository       = (*UserRepository)(nil)
	_ repository.CircleRepository     = (*CircleRepository)(nil)
	_ repository.MembershipRepository = (*MembershipRepository)(nil)
	_ repository.ScoreRepository      = (*ScoreRepository)(nil)
)
