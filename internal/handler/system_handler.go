package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/7vignesh/blind-coding/internal/repository"
	"github.com/7vignesh/blind-coding/internal/response"
	"github.com/7vignesh/blind-coding/internal/service"
	ws "github.com/7vignesh/blind-coding/internal/websocket"
)

const healthPingTimeout = 2 * time.Second

// SystemHandler reports process health.
type SystemHandler struct {
	store     *repository.QuestionStore
	tracker   *service.SubmissionTracker
	hub       *ws.Hub
	rdb       *redis.Client
	startTime time.Time
}

// NewSystemHandler creates a SystemHandler. rdb may be nil.
func NewSystemHandler(store *repository.QuestionStore, tracker *service.SubmissionTracker, hub *ws.Hub, rdb *redis.Client) *SystemHandler {
	return &SystemHandler{
		store:     store,
		tracker:   tracker,
		hub:       hub,
		rdb:       rdb,
		startTime: time.Now(),
	}
}

type healthStatus struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Questions int    `json:"questions"`
	Submitted int    `json:"submitted"`
	Overviews int    `json:"overviews"`
	Redis     string `json:"redis"`
}

// Health godoc
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	status := healthStatus{
		Status:    "ok",
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Questions: h.store.Len(),
		Submitted: h.tracker.Len(),
		Overviews: h.hub.Len(),
		Redis:     "disabled",
	}

	if h.rdb != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			status.Status = "degraded"
			status.Redis = "unreachable"
		} else {
			status.Redis = "ok"
		}
	}

	response.Success(c, http.StatusOK, status)
}
