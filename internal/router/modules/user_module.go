package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/wordle-circles/internal/interface/http"
	"github.com/oksasatya/wordle-circles/internal/interface/middleware"
)

// UserModule wires profile and directory routes. All are protected.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
	Limiter *middleware.Limiter
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc, limiter *middleware.Limiter) *UserModule {
	return &UserModule{Handler: h, Auth: auth, Limiter: limiter}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(m.Auth)
	{
		auth.GET("/user/profile", m.Handler.GetProfile)
		auth.GET("/users/search",
			m.Limiter.Handler(middleware.Limits{Max: 60, Window: time.Minute, Key: middleware.KeyByUserID()}),
			m.Handler.Search,
		)
	}
}
