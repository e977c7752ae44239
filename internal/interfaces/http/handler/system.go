package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/catsync/backend/internal/infrastructure/persistence"
)

// SystemHandler serves health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db    *persistence.Database
	redis *redis.Client
}

// NewSystemHandler creates a new SystemHandler. redis may be nil when
// caching is not configured.
func NewSystemHandler(db *persistence.Database, redisClient *redis.Client) *SystemHandler {
	return &SystemHandler{db: db, redis: redisClient}
}

// HealthResponse reports per-dependency health
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Time   time.Time         `json:"time"`
}

// Health reports service and dependency health
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status: "ok",
		Checks: map[string]string{},
		Time:   time.Now(),
	}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		resp.Status = "degraded"
		resp.Checks["database"] = err.Error()
	} else {
		resp.Checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			resp.Status = "degraded"
			resp.Checks["redis"] = err.Error()
		} else {
			resp.Checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
