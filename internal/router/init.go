package router

import (
	"context"
	"errors"

	"github.com/oksasatya/wordle-circles/internal/application"
	"github.com/oksasatya/wordle-circles/internal/container"
	pginfra "github.com/oksasatya/wordle-circles/internal/infrastructure/postgres"
	"github.com/oksasatya/wordle-circles/internal/infrastructure/search"
	handlers "github.com/oksasatya/wordle-circles/internal/interface/http"
	"github.com/oksasatya/wordle-circles/internal/interface/middleware"
	"github.com/oksasatya/wordle-circles/internal/router/modules"
)

// Services groups the application services the HTTP modules are built on.
type Services struct {
	Users   *application.UserService
	Circles *application.CircleService
	Scores  *application.ScoreService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	circles := pginfra.NewCircleRepository(pool)
	members := pginfra.NewMembershipRepository(pool)
	scores := pginfra.NewScoreRepository(pool)

	notifier := &application.Notifier{AppName: cfg.AppName, AppURL: cfg.AppURL, Logger: logger}
	// a typed nil *RabbitPublisher must not reach the Publisher interface
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		notifier.Pub = pub
	}

	var dir application.UserDirectory
	if es := container.GetES(); es != nil {
		dir = search.NewUserDirectory(es, cfg.ESUsersIndex)
	}

	return Services{
		Users:   application.NewUserService(users, container.GetJWT(), container.GetRedis(), logger, dir, notifier, cfg.SessionTTL),
		Circles: application.NewCircleService(circles, members, users, logger, notifier),
		Scores:  application.NewScoreService(scores, logger),
	}
}

// InitModules builds services from the container and registers every module.
// Call once during startup.
func InitModules(r *Registry) {
	Mount(r, buildServices())

	health := modules.NewHealthModule(map[string]modules.Check{
		"postgres": func(ctx context.Context) error { return container.GetPGPool().Ping(ctx) },
		"redis": func(ctx context.Context) error {
			if rdb := container.GetRedis(); rdb != nil {
				return rdb.Ping(ctx).Err()
			}
			return nil
		},
	})
	r.AddRoot(health)
}

// Mount registers the HTTP modules for svc on the registry.
func Mount(r *Registry, svc Services) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	jwt := container.GetJWT()
	if jwt == nil {
		panic(errors.New("router: jwt manager not configured"))
	}

	limiter := &middleware.Limiter{Redis: rdb, Enabled: cfg.RateLimitsEnabled}
	auth := middleware.Auth(rdb, jwt)
	optional := middleware.OptionalAuth(rdb, jwt)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Users, logger, cfg.CookieDomain, cfg.CookieSecure), auth, optional, limiter))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger), auth, limiter))
	r.Add(modules.NewCircleModule(handlers.NewCircleHandler(svc.Circles, logger), auth, limiter))
	r.Add(modules.NewScoreModule(handlers.NewScoreHandler(svc.Scores, logger), auth, limiter))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limiter))
	}
}
