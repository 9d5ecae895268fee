package repository

import (
	"context"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
)

// CircleRepository persists circles and their memberships.
type CircleRepository interface {
	// CreateWithCreator inserts the circle and the creator's membership in a
	// single transaction.
	CreateWithCreator(ctx context.Context, c *entity.Circle) error
	GetByID(ctx context.Context, id string) (*entity.Circle, error)
	GetByInviteCode(ctx context.Context, code string) (*entity.Circle, error)
	ListForUser(ctx context.Context, userID string) ([]entity.CircleSummary, error)
}

// MembershipRepository owns the circle_members relation.
type MembershipRepository interface {
	Exists(ctx context.Context, userID, circleID string) (bool, error)
	Create(ctx context.Context, m *entity.Membership) error
	ListMembersWithScores(ctx context.Context, circleID string, day string) ([]entity.MemberScore, error)
}
