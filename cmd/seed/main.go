package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/wordle-circles/config"
	"github.com/oksasatya/wordle-circles/internal/application"
	"github.com/oksasatya/wordle-circles/internal/domain/entity"
	pginfra "github.com/oksasatya/wordle-circles/internal/infrastructure/postgres"
	"github.com/oksasatya/wordle-circles/pkg/helpers"
)

const demoPassword = "password123"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 0, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	userRepo := pginfra.NewUserRepository(pool)
	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	users := application.NewUserService(userRepo, jwt, nil, logger, nil, nil, cfg.SessionTTL)
	circles := application.NewCircleService(pginfra.NewCircleRepository(pool), pginfra.NewMembershipRepository(pool), userRepo, logger, nil)

	alice := ensureUser(ctx, users, "Demo Alice", "alice@example.com")
	bob := ensureUser(ctx, users, "Demo Bob", "bob@example.com")

	circle, err := circles.Create(ctx, alice.ID, "Demo Circle")
	if err != nil {
		log.Fatalf("failed to create circle: %v", err)
	}
	if _, err := circles.Join(ctx, entity.Caller{UserID: bob.ID, Name: bob.Name, Email: bob.Email}, circle.InviteCode); err != nil {
		log.Fatalf("failed to join circle: %v", err)
	}
	fmt.Printf("seeded circle: id=%s name=%q invite=%s\n", circle.ID, circle.Name, circle.InviteCode)
}

// ensureUser registers the demo user, or logs in when it already exists.
func ensureUser(ctx context.Context, svc *application.UserService, name, email string) *entity.User {
	u, err := svc.Register(ctx, application.RegisterInput{Name: name, Email: email, Password: demoPassword})
	if errors.Is(err, application.ErrDuplicateEmail) {
		u, err = svc.Authenticate(ctx, email, demoPassword)
	}
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", u.ID, u.Email, u.Name, demoPassword)
	return u
}
