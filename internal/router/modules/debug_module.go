package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/wordle-circles/internal/interface/middleware"
)

type DebugModule struct {
	Limiter *middleware.Limiter
}

func NewDebugModule(limiter *middleware.Limiter) *DebugModule { return &DebugModule{Limiter: limiter} }

// Register exposes expvar counters, rate-limited per IP. Private-range
// clients (scrapers inside the cluster) are not limited.
func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := m.Limiter.Handler(middleware.Limits{
		Max:    120,
		Window: time.Minute,
		Key:    middleware.KeyByIP(),
		Allow:  middleware.AllowPrivateIP(),
	})
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
