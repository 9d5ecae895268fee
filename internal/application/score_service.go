package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	repo "github.com/oksasatya/wordle-circles/internal/domain/repository"
)

type ScoreService struct {
	Scores repo.ScoreRepository
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewScoreService(scores repo.ScoreRepository, logger *logrus.Logger) *ScoreService {
	return &ScoreService{Scores: scores, Logger: discardLogger(logger), Now: time.Now}
}

// Submit records the user's result for the current UTC day. Input is
// validated before the store is touched; a second submission for the same
// day fails with ErrAlreadySubmitted whatever its payload.
func (s *ScoreService) Submit(ctx context.Context, userID string, guesses int, rawResult string) (*entity.DailyScore, error) {
	if guesses < entity.MinGuesses || guesses > entity.MaxGuesses {
		return nil, invalid("guesses", "must be an integer between 1 and 7")
	}
	if strings.TrimSpace(rawResult) == "" {
		return nil, invalid("rawResult", "is required")
	}

	today := entity.DayOf(s.Now())
	day := today.Format(entity.DateLayout)
	exists, err := s.Scores.Exists(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("check score: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubmitted
	}

	score := &entity.DailyScore{UserID: userID, Date: today, Guesses: guesses, RawResult: rawResult}
	if err := s.Scores.Create(ctx, score); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("create score: %w", err)
	}
	scoresSubmitted.Add(1)
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "day": day, "guesses": guesses}).Info("score submitted")
	return score, nil
}

// Today returns the user's score for the current UTC day, or nil.
func (s *ScoreService) Today(ctx context.Context, userID string) (*entity.DailyScore, error) {
	day := entity.DayOf(s.Now()).Format(entity.DateLayout)
	score, err := s.Scores.GetForDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get score: %w", err)
	}
	return score, nil
}
