package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	repo "github.com/oksasatya/wordle-circles/internal/domain/repository"
	"github.com/oksasatya/wordle-circles/pkg/helpers"
	"github.com/oksasatya/wordle-circles/pkg/mailer/templates"
)

const maxCircleNameLen = 100

type CircleService struct {
	Circles  repo.CircleRepository
	Members  repo.MembershipRepository
	Users    repo.UserRepository
	Logger   *logrus.Logger
	Notifier *Notifier
	GenCode  func() (string, error)
	Now      func() time.Time
}

// CircleBoard is a circle's member list joined against one day's scores.
type CircleBoard struct {
	Circle  *entity.Circle
	Day     string
	Members []entity.MemberScore
}

func NewCircleService(circles repo.CircleRepository, members repo.MembershipRepository, users repo.UserRepository, logger *logrus.Logger, n *Notifier) *CircleService {
	return &CircleService{
		Circles:  circles,
		Members:  members,
		Users:    users,
		Logger:   discardLogger(logger),
		Notifier: n,
		GenCode:  helpers.GenInviteCode,
		Now:      time.Now,
	}
}

// Create stores a new circle together with the creator's membership.
// Invite code collisions are not retried.
func (s *CircleService) Create(ctx context.Context, creatorID, name string) (*entity.Circle, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 1 || n > maxCircleNameLen {
		return nil, invalid("name", "must be 1-100 characters long")
	}
	code, err := s.GenCode()
	if err != nil {
		return nil, fmt.Errorf("%w: invite code: %v", ErrCircleCreationFailed, err)
	}
	c := &entity.Circle{Name: name, InviteCode: code, CreatorID: creatorID}
	if err := s.Circles.CreateWithCreator(ctx, c); err != nil {
		s.Logger.WithError(err).WithField("creator_id", creatorID).Error("create circle failed")
		return nil, fmt.Errorf("%w: %v", ErrCircleCreationFailed, err)
	}
	if c.ID == "" {
		return nil, ErrCircleCreationFailed
	}
	circlesCreated.Add(1)
	s.Logger.WithFields(logrus.Fields{"circle_id": c.ID, "creator_id": creatorID}).Info("circle created")
	return c, nil
}

// Join adds the caller to the circle identified by code.
func (s *CircleService) Join(ctx context.Context, caller entity.Caller, code string) (*entity.Circle, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, invalid("code", "is required")
	}
	c, err := s.Circles.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCircleNotFound
		}
		return nil, fmt.Errorf("lookup invite code: %w", err)
	}
	member, err := s.Members.Exists(ctx, caller.UserID, c.ID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if member {
		return nil, ErrAlreadyMember
	}
	if err := s.Members.Create(ctx, &entity.Membership{UserID: caller.UserID, CircleID: c.ID}); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrAlreadyMember
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrCircleNotFound
		}
		return nil, fmt.Errorf("create membership: %w", err)
	}
	circleJoins.Add(1)
	s.Logger.WithFields(logrus.Fields{"circle_id": c.ID, "user_id": caller.UserID}).Info("circle joined")
	s.notifyCreator(ctx, c, caller)
	return c, nil
}

func (s *CircleService) notifyCreator(ctx context.Context, c *entity.Circle, joiner entity.Caller) {
	if s.Notifier == nil || s.Users == nil || c.CreatorID == joiner.UserID {
		return
	}
	creator, err := s.Users.GetByID(ctx, c.CreatorID)
	if err != nil {
		s.Logger.WithError(err).WithField("circle_id", c.ID).Warn("creator lookup for notification failed")
		return
	}
	member := joiner.Name
	if member == "" {
		member = joiner.Email
	}
	s.Notifier.enqueue(ctx, creator.Email, templates.CircleJoined, templates.NotificationData{
		Name:       creator.Name,
		Email:      creator.Email,
		CircleName: c.Name,
		CircleID:   c.ID,
		MemberName: member,
	})
}

// ListForUser returns the user's circles ordered by name.
func (s *CircleService) ListForUser(ctx context.Context, userID string) ([]entity.CircleSummary, error) {
	list, err := s.Circles.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list circles: %w", err)
	}
	if list == nil {
		list = []entity.CircleSummary{}
	}
	return list, nil
}

// Board returns today's results for every member of the circle. Only members
// may view it.
func (s *CircleService) Board(ctx context.Context, circleID, callerID string) (*CircleBoard, error) {
	c, err := s.Circles.GetByID(ctx, circleID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCircleNotFound
		}
		return nil, fmt.Errorf("get circle: %w", err)
	}
	member, err := s.Members.Exists(ctx, callerID, c.ID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return nil, ErrNotCircleMember
	}
	day := entity.DayOf(s.Now()).Format(entity.DateLayout)
	members, err := s.Members.ListMembersWithScores(ctx, c.ID, day)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if members == nil {
		members = []entity.MemberScore{}
	}
	return &CircleBoard{Circle: c, Day: day, Members: members}, nil
}
