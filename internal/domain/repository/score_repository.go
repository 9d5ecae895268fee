package repository

import (
	"context"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
)

// ScoreRepository owns wordle_scores. Days are passed as YYYY-MM-DD strings.
type ScoreRepository interface {
	Exists(ctx context.Context, userID, day string) (bool, error)
	Create(ctx context.Context, s *entity.DailyScore) error
	GetForDay(ctx context.Context, userID, day string) (*entity.DailyScore, error)
}
