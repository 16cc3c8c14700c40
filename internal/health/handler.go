// Package health provides the health check endpoint.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/softball_scoreboard/internal/database/database"
)

const checkTimeout = 5 * time.Second

// Check probes one dependency.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Pinger is the part of a Redis client used by RedisCheck.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisCheck pings Redis.
func RedisCheck(client Pinger) Check {
	return Check{
		Name: "redis",
		Probe: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

// Handler handles health check requests.
type Handler struct {
	checks []Check
	logger *zap.SugaredLogger
}

// New creates a health handler that always checks the database plus any
// extra checks.
func New(db *gorm.DB, logger *zap.SugaredLogger, extra ...Check) *Handler {
	checks := []Check{{
		Name: "database",
		Probe: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}}
	return &Handler{checks: append(checks, extra...), logger: logger}
}

// Response represents health check response.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			h.logger.Warnw("health check failed", "check", check.Name, "error", err)
			resp.Status = "unhealthy"
			resp.Checks[check.Name] = "down"
			continue
		}
		resp.Checks[check.Name] = "up"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
