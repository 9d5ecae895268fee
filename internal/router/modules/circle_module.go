package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/wordle-circles/internal/interface/http"
	"github.com/oksasatya/wordle-circles/internal/interface/middleware"
)

// CircleModule wires circle creation, joining and viewing. All are protected.
type CircleModule struct {
	Handler *handlers.CircleHandler
	Auth    gin.HandlerFunc
	Limiter *middleware.Limiter
}

func NewCircleModule(h *handlers.CircleHandler, auth gin.HandlerFunc, limiter *middleware.Limiter) *CircleModule {
	return &CircleModule{Handler: h, Auth: auth, Limiter: limiter}
}

func (m *CircleModule) Register(rg *gin.RouterGroup) {
	writeLimiter := m.Limiter.Handler(middleware.Limits{Max: 30, Window: time.Minute, Key: middleware.KeyByUserID()})

	auth := rg.Group("/")
	auth.Use(m.Auth)
	{
		auth.POST("/create-circle", writeLimiter, m.Handler.Create)
		auth.POST("/join-circle", writeLimiter, m.Handler.Join)
		auth.GET("/my-circles", m.Handler.MyCircles)
		auth.GET("/circles/:circleId", m.Handler.Get)
	}
}
