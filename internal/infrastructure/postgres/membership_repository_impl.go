package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	"github.com/oksasatya/wordle-circles/internal/domain/repository"
)

type MembershipRepository struct {
	pool *pgxpool.Pool
}

func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

func (r *MembershipRepository) Exists(ctx context.Context, userID, circleID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM circle_members WHERE user_id = $1 AND circle_id = $2
		)
	`, userID, circleID).Scan(&ok)
	if err != nil {
		return false, translateLookup(err)
	}
	return ok, nil
}

// Create relies on user_circle_unique; a racing duplicate surfaces as
// repository.ErrDuplicate.
func (r *MembershipRepository) Create(ctx context.Context, m *entity.Membership) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO circle_members (user_id, circle_id)
		VALUES ($1, $2)
		RETURNING id
	`, m.UserID, m.CircleID).Scan(&m.ID)
	if err != nil {
		return translateInsert(err)
	}
	return nil
}

func (r *MembershipRepository) ListMembersWithScores(ctx context.Context, circleID string, day string) ([]entity.MemberScore, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, COALESCE(u.name, ''), s.guesses, s.raw_result
		FROM circle_members m
		JOIN users u ON u.id = m.user_id
		LEFT JOIN wordle_scores s ON s.user_id = m.user_id AND s.date = $2::date
		WHERE m.circle_id = $1
		ORDER BY u.name ASC NULLS LAST, u.id ASC
	`, circleID, day)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.MemberScore, error) {
		var ms entity.MemberScore
		err := row.Scan(&ms.UserID, &ms.Name, &ms.Guesses, &ms.RawResult)
		return ms, err
	})
}

var _ repository.MembershipRepository = (*MembershipRepository)(nil)
