package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/wordle-circles/pkg/response"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// HealthModule serves GET /health. Every check must pass within two seconds.
type HealthModule struct {
	Checks map[string]Check
}

func NewHealthModule(checks map[string]Check) *HealthModule {
	return &HealthModule{Checks: checks}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.handle)
}

func (m *HealthModule) handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(m.Checks))
	healthy := true
	for name, check := range m.Checks {
		if err := check(ctx); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	if !healthy {
		response.Error[any](c, http.StatusServiceUnavailable, "unhealthy", status)
		return
	}
	response.Success(c, http.StatusOK, status, "ok", nil)
}
