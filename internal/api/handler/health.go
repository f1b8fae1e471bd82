package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const dependencyCheckTimeout = 3 * time.Second

// HealthHandler serves the liveness and readiness probes. Liveness answers
// immediately; readiness pings MongoDB and Redis first.
type HealthHandler struct {
	mongo   *mongo.Database
	redis   *redis.Client
	started time.Time
}

func NewHealthHandler(db *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		mongo:   db,
		redis:   rdb,
		started: time.Now(),
	}
}

// Liveness handles GET /health.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness handles GET /health/ready.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dependencyCheckTimeout)
	defer cancel()

	deps := map[string]dependencyStatus{
		"mongodb": h.checkMongo(ctx),
		"redis":   h.checkRedis(ctx),
	}

	status, httpStatus := "ok", http.StatusOK
	for _, d := range deps {
		if d.Status != "ok" {
			status, httpStatus = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

func (h *HealthHandler) checkMongo(ctx context.Context) dependencyStatus {
	if err := h.mongo.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}

func (h *HealthHandler) checkRedis(ctx context.Context) dependencyStatus {
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}
