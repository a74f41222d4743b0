package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Error codes returned by the API.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeDuplicateRole  = "DUPLICATE_ROLE"
	CodeRoleNotFound   = "ROLE_NOT_FOUND"
	CodeInternalError  = "INTERNAL_ERROR"
)

// ErrorResponse is the canonical error payload.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, code string, status int, message string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
		TraceID: traceIDStr,
	}
}

// RoleCreateRequest is the payload for POST /roles.
type RoleCreateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// RolePayload describes a role returned by the API.
type RolePayload struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports per-dependency readiness.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// InfoResponse exposes service metadata.
type InfoResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}
