package roles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruiter-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the roles service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/roles", h.list)
	rg.POST("/roles", h.create)
	rg.GET("/roles/:id", h.get)
	rg.PUT("/roles/:id", h.update)
	rg.DELETE("/roles/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	roles, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list roles", nil)
		return
	}
	if roles == nil {
		roles = []Role{}
	}
	respond.OK(c, roles)
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid role payload", nil)
		return
	}
	role, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		if IsValidationError(err) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create role", nil)
		return
	}
	c.Set("roleId", role.ID)
	respond.JSON(c, http.StatusCreated, role)
}

func (h *Handler) get(c *gin.Context) {
	role, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "role not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load role", nil)
		return
	}
	respond.OK(c, role)
}

func (h *Handler) update(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid role payload", nil)
		return
	}
	role, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "role not found", nil)
		case IsValidationError(err):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update role", nil)
		}
		return
	}
	c.Set("roleId", role.ID)
	respond.OK(c, role)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "role not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete role", nil)
		return
	}
	respond.OK(c, gin.H{"ok": true})
}
