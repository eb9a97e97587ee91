package scoring

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruiter-backend/internal/shared/server/respond"
)

// Handler exposes the scoring weight configuration.
type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/scoring", h.getWeights)
	rg.PUT("/scoring", h.putWeights)
}

func (h *Handler) getWeights(c *gin.Context) {
	weights, err := h.Store.Get(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load scoring weights", nil)
		return
	}
	respond.OK(c, gin.H{"weights": weights})
}

func (h *Handler) putWeights(c *gin.Context) {
	var body struct {
		Weights Weights `json:"weights"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid weights payload", nil)
		return
	}
	if len(body.Weights) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "weights are required", nil)
		return
	}
	for name := range body.Weights {
		if !IsKnownFactor(name) {
			respond.Error(c, http.StatusBadRequest, "validation_error", fmt.Sprintf("unknown factor: %s", name), nil)
			return
		}
	}
	if err := h.Store.Put(c.Request.Context(), body.Weights); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store scoring weights", nil)
		return
	}
	respond.OK(c, gin.H{"weights": body.Weights})
}
