package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/onmind/role-service/internal/core/domain"
	"github.com/onmind/role-service/internal/usecase"
)

// RoleHandler exposes the role CRUD surface.
type RoleHandler struct {
	roles *usecase.RoleService
}

func NewRoleHandler(roles *usecase.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// CreateRole handles POST /api/v1/roles.
func (h *RoleHandler) CreateRole(c *gin.Context) {
	if h.roles == nil {
		c.JSON(http.StatusInternalServerError,
			NewErrorResponse(c, CodeInternalError, http.StatusInternalServerError, "role handler not fully configured"))
		return
	}

	var req RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			NewErrorResponse(c, CodeInvalidRequest, http.StatusBadRequest, "invalid role payload"))
		return
	}

	role, err := h.roles.CreateRole(c.Request.Context(), req.Name)
	if err != nil {
		var nameErr *domain.NameValidationError
		if errors.As(err, &nameErr) {
			c.JSON(http.StatusBadRequest,
				NewErrorResponse(c, CodeInvalidRequest, http.StatusBadRequest, nameErr.Message))
			return
		}

		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrRoleExists, Code: CodeDuplicateRole, Status: http.StatusConflict, Message: "role already exists"},
		})
		return
	}

	c.JSON(http.StatusCreated, toRolePayload(role))
}

// ListRoles handles GET /api/v1/roles.
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roles.ListRoles(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, toRolePayloads(roles))
}

// GetRoleByID handles GET /api/v1/roles/:id.
func (h *RoleHandler) GetRoleByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			NewErrorResponse(c, CodeInvalidRequest, http.StatusBadRequest, "role id must be an integer"))
		return
	}

	role, err := h.roles.GetRoleByID(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidRoleID, Code: CodeInvalidRequest, Status: http.StatusBadRequest, Message: "role id must be positive"},
			{Err: usecase.ErrRoleNotFound, Code: CodeRoleNotFound, Status: http.StatusNotFound, Message: "role not found"},
		})
		return
	}

	c.JSON(http.StatusOK, toRolePayload(*role))
}

// SearchRoles handles GET /api/v1/roles/search?name=pattern.
func (h *RoleHandler) SearchRoles(c *gin.Context) {
	pattern := c.Query("name")

	roles, err := h.roles.SearchRoles(c.Request.Context(), pattern)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrEmptyPattern, Code: CodeInvalidRequest, Status: http.StatusBadRequest, Message: "search pattern must not be blank"},
		})
		return
	}

	c.JSON(http.StatusOK, toRolePayloads(roles))
}

func toRolePayload(role domain.Role) RolePayload {
	return RolePayload{
		ID:        role.ID,
		Name:      role.Name,
		CreatedAt: role.CreatedAt,
	}
}

// toRolePayloads always returns a non-nil slice so empty results render as [].
func toRolePayloads(roles []domain.Role) []RolePayload {
	payloads := make([]RolePayload, 0, len(roles))
	for _, role := range roles {
		payloads = append(payloads, toRolePayload(role))
	}
	return payloads
}
