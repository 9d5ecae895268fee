package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	"github.com/oksasatya/wordle-circles/internal/domain/repository"
)

// errNoCircleRow signals that the circle insert returned nothing.
var errNoCircleRow = errors.New("circle insert returned no row")

type CircleRepository struct {
	pool *pgxpool.Pool
}

func NewCircleRepository(pool *pgxpool.Pool) *CircleRepository {
	return &CircleRepository{pool: pool}
}

// CreateWithCreator inserts the circle and the creator membership atomically.
// Any failure after the circle insert rolls the circle back too.
func (r *CircleRepository) CreateWithCreator(ctx context.Context, c *entity.Circle) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO circles (name, code, creator_id)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`, c.Name, c.InviteCode, c.CreatorID).Scan(&c.ID, &c.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return errNoCircleRow
		}
		if err != nil {
			return translateInsert(err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO circle_members (user_id, circle_id)
			VALUES ($1, $2)
		`, c.CreatorID, c.ID); err != nil {
			return translateInsert(err)
		}
		return nil
	})
}

const circleColumns = `id, name, code, creator_id, created_at`

func (r *CircleRepository) GetByID(ctx context.Context, id string) (*entity.Circle, error) {
	return r.getOne(ctx, `SELECT `+circleColumns+` FROM circles WHERE id = $1`, id)
}

func (r *CircleRepository) GetByInviteCode(ctx context.Context, code string) (*entity.Circle, error) {
	return r.getOne(ctx, `SELECT `+circleColumns+` FROM circles WHERE code = $1`, code)
}

func (r *CircleRepository) getOne(ctx context.Context, query, arg string) (*entity.Circle, error) {
	c := &entity.Circle{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.InviteCode, &c.CreatorID, &c.CreatedAt)
	if err != nil {
		return nil, translateLookup(err)
	}
	return c, nil
}

func (r *CircleRepository) ListForUser(ctx context.Context, userID string) ([]entity.CircleSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.name
		FROM circles c
		JOIN circle_members m ON m.circle_id = c.id
		WHERE m.user_id = $1
		ORDER BY c.name ASC, c.id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.CircleSummary, error) {
		var s entity.CircleSummary
		err := row.Scan(&s.ID, &s.Name)
		return s, err
	})
}

var _ repository.CircleRepository = (*CircleRepository)(nil)
