package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type QueueStats interface {
	Len() (int64, error)
	DeadLetterLen() (int64, error)
}

type HealthHandler struct {
	database Pinger
	queue    QueueStats
}

// NewHealthHandler accepts nil for whichever backend is not configured.
func NewHealthHandler(database Pinger, queue QueueStats) *HealthHandler {
	return &HealthHandler{database: database, queue: queue}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := http.StatusOK
	res := gin.H{
		"status":   "healthy",
		"database": "disabled",
		"queue":    "disabled",
	}

	if h.database != nil {
		res["database"] = "connected"
		if err := h.database.Ping(c.Request.Context()); err != nil {
			slog.Error("health check: database ping failed", "error", err)
			res["database"] = "disconnected"
			status = http.StatusServiceUnavailable
		}
	}

	if h.queue != nil {
		pending, err := h.queue.Len()
		if err == nil {
			var failed int64
			failed, err = h.queue.DeadLetterLen()
			res["queue"] = gin.H{"pending": pending, "failed": failed}
		}
		if err != nil {
			slog.Error("health check: queue depth failed", "error", err)
			res["queue"] = "disconnected"
			status = http.StatusServiceUnavailable
		}
	}

	if status != http.StatusOK {
		res["status"] = "unhealthy"
	}
	c.JSON(status, res)
}
