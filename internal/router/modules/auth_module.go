package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/wordle-circles/internal/interface/http"
	"github.com/oksasatya/wordle-circles/internal/interface/middleware"
)

// AuthModule wires registration and session routes.
// Public: POST /register, POST /login, POST /refresh, GET /auth-check
// Protected: POST /logout
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Auth     gin.HandlerFunc
	Optional gin.HandlerFunc
	Limiter  *middleware.Limiter
}

func NewAuthModule(h *handlers.AuthHandler, auth, optional gin.HandlerFunc, limiter *middleware.Limiter) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth, Optional: optional, Limiter: limiter}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := m.Limiter.Handler(middleware.Limits{Max: 10, Window: time.Minute, Key: middleware.KeyByIPAndPath()})
	loginLimiter := m.Limiter.Handler(middleware.Limits{Max: 10, Window: time.Minute, Key: middleware.KeyByIPAndPath()})
	refreshLimiter := m.Limiter.Handler(middleware.Limits{Max: 60, Window: time.Minute, Key: middleware.KeyByIP()})

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.GET("/auth-check", m.Optional, m.Handler.AuthCheck)

	auth := rg.Group("/")
	auth.Use(m.Auth)
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
