package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessCheckTimeout = 2 * time.Second

type readinessCheck struct {
	name  string
	check func(ctx context.Context) error
}

// HealthHandler exposes liveness, readiness, and service metadata endpoints.
type HealthHandler struct {
	startedAt time.Time
	info      InfoResponse
	checks    []readinessCheck
}

// HealthOption customizes a HealthHandler.
type HealthOption func(*HealthHandler)

// WithReadinessCheck registers a named dependency probe for /readyz.
func WithReadinessCheck(name string, check func(ctx context.Context) error) HealthOption {
	return func(h *HealthHandler) {
		if name == "" || check == nil {
			return
		}
		h.checks = append(h.checks, readinessCheck{name: name, check: check})
	}
}

// NewHealthHandler builds a new health handler instance.
func NewHealthHandler(info InfoResponse, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{
		startedAt: time.Now().UTC(),
		info:      info,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Status reports process liveness.
func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		StartedAt: h.startedAt,
	})
}

// Readiness probes registered dependencies and reports per-check results.
func (h *HealthHandler) Readiness(c *gin.Context) {
	results := make(map[string]string, len(h.checks))
	ready := true

	for _, chk := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessCheckTimeout)
		err := chk.check(ctx)
		cancel()

		if err != nil {
			ready = false
			results[chk.name] = "down"
			continue
		}
		results[chk.name] = "up"
	}

	status := "ready"
	httpStatus := http.StatusOK
	if !ready {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, ReadinessResponse{
		Status: status,
		Checks: results,
	})
}

// Up reports application health in the conventional "UP" form.
func (h *HealthHandler) Up(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// Info returns service metadata.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, h.info)
}
