package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/wordle-circles/internal/interface/http"
	"github.com/oksasatya/wordle-circles/internal/interface/middleware"
)

// ScoreModule wires daily result submission. All are protected.
type ScoreModule struct {
	Handler *handlers.ScoreHandler
	Auth    gin.HandlerFunc
	Limiter *middleware.Limiter
}

func NewScoreModule(h *handlers.ScoreHandler, auth gin.HandlerFunc, limiter *middleware.Limiter) *ScoreModule {
	return &ScoreModule{Handler: h, Auth: auth, Limiter: limiter}
}

func (m *ScoreModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(m.Auth)
	{
		auth.POST("/submit-wordle",
			m.Limiter.Handler(middleware.Limits{Max: 20, Window: time.Minute, Key: middleware.KeyByUserID()}),
			m.Handler.Submit,
		)
		auth.GET("/scores/today", m.Handler.Today)
	}
}
