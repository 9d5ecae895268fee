package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	"github.com/oksasatya/wordle-circles/internal/domain/repository"
)

type ScoreRepository struct {
	pool *pgxpool.Pool
}

func NewScoreRepository(pool *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{pool: pool}
}

func (r *ScoreRepository) Exists(ctx context.Context, userID, day string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM wordle_scores WHERE user_id = $1 AND date = $2::date
		)
	`, userID, day).Scan(&ok)
	if err != nil {
		return false, translateLookup(err)
	}
	return ok, nil
}

// Create relies on user_date_unique; a racing resubmission surfaces as
// repository.ErrDuplicate.
func (r *ScoreRepository) Create(ctx context.Context, s *entity.DailyScore) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO wordle_scores (user_id, date, guesses, raw_result)
		VALUES ($1, $2::date, $3, $4)
		RETURNING id, submitted_at
	`, s.UserID, s.Date.Format(entity.DateLayout), s.Guesses, s.RawResult).Scan(&s.ID, &s.SubmittedAt)
	if err != nil {
		return translateInsert(err)
	}
	return nil
}

func (r *ScoreRepository) GetForDay(ctx context.Context, userID, day string) (*entity.DailyScore, error) {
	s := &entity.DailyScore{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, date, guesses, raw_result, submitted_at
		FROM wordle_scores
		WHERE user_id = $1 AND date = $2::date
	`, userID, day).Scan(&s.ID, &s.UserID, &s.Date, &s.Guesses, &s.RawResult, &s.SubmittedAt)
	if err != nil {
		return nil, translateLookup(err)
	}
	return s, nil
}

var _ repository.ScoreRepository = (*ScoreRepository)(nil)
