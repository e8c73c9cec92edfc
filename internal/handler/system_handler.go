package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexlearn/nexlearn-backend/internal/response"
	"github.com/rs/zerolog"
)

const readyTimeout = 2 * time.Second

// Pinger checks that a dependency answers.
type Pinger func(ctx context.Context) error

// QueueDepth reports how many items wait in a worker queue.
type QueueDepth func(ctx context.Context) (int64, error)

// SystemHandler serves liveness and readiness probes.
type SystemHandler struct {
	checks     map[string]Pinger
	contactLen QueueDepth
	startTime  time.Time
	log        zerolog.Logger
}

// NewSystemHandler creates a SystemHandler. contactLen may be nil.
func NewSystemHandler(checks map[string]Pinger, contactLen QueueDepth, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		checks:     checks,
		contactLen: contactLen,
		startTime:  time.Now(),
		log:        log.With().Str("component", "system_handler").Logger(),
	}
}

type healthResponse struct {
	Status     string `json:"status"`
	Uptime     string `json:"uptime"`
	Goroutines int    `json:"goroutines"`
}

type readyResponse struct {
	Status       string            `json:"status"`
	Checks       map[string]string `json:"checks"`
	ContactQueue *int64            `json:"contactQueue,omitempty"`
}

// Health godoc
// GET /health
// Liveness only; dependencies are not contacted.
func (h *SystemHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, healthResponse{
		Status:     "ok",
		Uptime:     formatDuration(time.Since(h.startTime)),
		Goroutines: runtime.NumGoroutine(),
	})
}

// Ready godoc
// GET /health/ready
// Pings every dependency; 503 if any of them fails.
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	resp := readyResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("Readiness check failed")
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	if h.contactLen != nil {
		if n, err := h.contactLen(ctx); err == nil {
			resp.ContactQueue = &n
		}
	}

	response.Success(c, status, resp)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
