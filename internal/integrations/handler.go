package integrations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruiter-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/integrations", h.list)
	rg.POST("/integrations", h.configure)
	rg.POST("/integrations/:platform/test", h.test)
	rg.POST("/integrations/:platform/sync", h.sync)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list integrations", nil)
		return
	}
	if list == nil {
		list = []Integration{}
	}
	respond.OK(c, list)
}

func (h *Handler) configure(c *gin.Context) {
	var in Integration
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid integration payload", nil)
		return
	}
	if in.Platform == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "platform is required", nil)
		return
	}
	if _, err := h.Svc.Configure(c.Request.Context(), in); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store integration", nil)
		return
	}
	respond.OK(c, gin.H{"ok": true})
}

func (h *Handler) test(c *gin.Context) {
	result, err := h.Svc.TestConnection(c.Request.Context(), c.Param("platform"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "integration not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to test integration", nil)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) sync(c *gin.Context) {
	platform := c.Param("platform")
	if _, err := h.Svc.Sync(c.Request.Context(), platform); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "integration not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sync integration", nil)
		return
	}
	respond.OK(c, gin.H{"ok": true, "message": "Sync initiated for " + platform})
}
