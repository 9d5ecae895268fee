package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	repo "github.com/oksasatya/wordle-circles/internal/domain/repository"
	"github.com/oksasatya/wordle-circles/internal/infrastructure/search"
	"github.com/oksasatya/wordle-circles/pkg/helpers"
	"github.com/oksasatya/wordle-circles/pkg/mailer/templates"
)

// UserDirectory indexes and searches users by name.
type UserDirectory interface {
	Index(ctx context.Context, u *entity.User) error
	Search(ctx context.Context, q string, size int) ([]search.UserHit, error)
}

type UserService struct {
	Repo       repo.UserRepository
	JWT        *helpers.JWTManager
	Redis      *redis.Client
	Logger     *logrus.Logger
	Directory  UserDirectory
	Notifier   *Notifier
	SessionTTL time.Duration
	Now        func() time.Time
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, dir UserDirectory, n *Notifier, sessionTTL time.Duration) *UserService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &UserService{
		Repo:       r,
		JWT:        jwt,
		Redis:      rdb,
		Logger:     discardLogger(logger),
		Directory:  dir,
		Notifier:   n,
		SessionTTL: sessionTTL,
		Now:        time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) nowRFC3339() string {
	return s.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates a user with a bcrypt credential hash.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, invalid("email", "is required")
	}
	_, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	usersRegistered.Add(1)
	s.Logger.WithField("user_id", u.ID).Info("user registered")

	if s.Directory != nil {
		if err := s.Directory.Index(ctx, u); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
	}
	s.Notifier.enqueue(ctx, u.Email, templates.Welcome, templates.NotificationData{Name: u.Name, Email: u.Email})
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing
// tokens. A legacy hash is replaced with bcrypt on success.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.Logger.WithError(err).Error("lookup user for login failed")
		}
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if helpers.IsLegacyHash(u.PasswordHash) {
		if hash, hErr := helpers.HashPassword(password); hErr == nil {
			if uErr := s.Repo.UpdatePasswordHash(ctx, u.ID, hash); uErr != nil {
				s.Logger.WithError(uErr).WithField("user_id", u.ID).Warn("credential upgrade failed")
			} else {
				u.PasswordHash = hash
			}
		}
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.mint(u.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate tokens failed")
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"sid":        sid,
			"created_at": s.nowRFC3339(),
		}
		key := helpers.SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.SessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, nil
}

func (s *UserService) mint(userID, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the session id and both tokens. The refresh token must
// belong to the session currently stored for the user.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, *entity.User, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, nil, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, nil, ErrInvalidCredentials
	}
	key := helpers.SessionKey(u.ID)
	if s.Redis != nil {
		sid, rErr := s.Redis.HGet(ctx, key, "sid").Result()
		if rErr != nil || sid != claims.SessionID {
			return TokenPair{}, nil, ErrInvalidCredentials
		}
	}

	sid := uuid.NewString()
	pair, err := s.mint(u.ID, sid)
	if err != nil {
		return TokenPair{}, nil, err
	}
	if s.Redis != nil {
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": s.nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.SessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, u, nil
}

// Logout drops the user's session; outstanding tokens stop working once the
// session check fails.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	if err := s.Redis.Del(ctx, helpers.SessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("drop session: %w", err)
	}
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// SearchUsers matches users by name prefix. Without a directory it returns
// an empty list.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]search.UserHit, error) {
	q = strings.TrimSpace(q)
	if s.Directory == nil || q == "" {
		return []search.UserHit{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	hits, err := s.Directory.Search(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return hits, nil
}
