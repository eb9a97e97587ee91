package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruiter-backend/internal/activity"
	"recruiter-backend/internal/shared/server/respond"
)

type Handler struct {
	Repo     Repo
	Activity activity.Recorder
}

func NewHandler(repo Repo, recorder activity.Recorder) *Handler {
	return &Handler{Repo: repo, Activity: recorder}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.get)
	rg.POST("/settings", h.update)
	rg.GET("/onboarding", h.onboardingStatus)
	rg.POST("/onboarding/complete", h.completeOnboarding)
}

func (h *Handler) get(c *gin.Context) {
	s, err := h.Repo.Get(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load settings", nil)
		return
	}
	respond.OK(c, s)
}

// update merges the posted fields over the stored settings, mirroring a
// partial settings form save.
func (h *Handler) update(c *gin.Context) {
	var body struct {
		OnboardingComplete *bool   `json:"onboardingComplete"`
		CompanyName        *string `json:"companyName"`
		Timezone           *string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid settings payload", nil)
		return
	}
	current, err := h.Repo.Get(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load settings", nil)
		return
	}
	if body.OnboardingComplete != nil {
		current.OnboardingComplete = *body.OnboardingComplete
	}
	if body.CompanyName != nil {
		current.CompanyName = *body.CompanyName
	}
	if body.Timezone != nil {
		current.Timezone = *body.Timezone
	}
	if err := h.Repo.Put(c.Request.Context(), current); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store settings", nil)
		return
	}
	respond.OK(c, current)
}

func (h *Handler) onboardingStatus(c *gin.Context) {
	s, err := h.Repo.Get(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load settings", nil)
		return
	}
	respond.OK(c, gin.H{"complete": s.OnboardingComplete})
}

func (h *Handler) completeOnboarding(c *gin.Context) {
	s, err := h.Repo.Get(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load settings", nil)
		return
	}
	s.OnboardingComplete = true
	if err := h.Repo.Put(c.Request.Context(), s); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store settings", nil)
		return
	}
	h.Activity.Record(c.Request.Context(), activity.ActionOnboardingComplete, map[string]any{})
	respond.OK(c, gin.H{"ok": true})
}
