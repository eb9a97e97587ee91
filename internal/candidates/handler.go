package candidates

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruiter-backend/internal/pipeline"
	"recruiter-backend/internal/scoring"
	"recruiter-backend/internal/shared/server/respond"
)

const maxResumeBytes = 10 << 20

// Handler wires HTTP handlers to the candidates service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/candidates", h.list)
	rg.POST("/candidates", h.create)
	rg.GET("/candidates/export", h.exportCSV)
	rg.POST("/candidates/import", h.importBulk)
	rg.POST("/candidates/batch-score", h.batchScore)
	rg.GET("/candidates/:id", h.get)
	rg.PUT("/candidates/:id", h.update)
	rg.DELETE("/candidates/:id", h.delete)
	rg.POST("/candidates/:id/score", h.score)
	rg.PUT("/candidates/:id/stage", h.moveStage)
	rg.POST("/candidates/:id/resume", h.attachResume)
}

func (h *Handler) list(c *gin.Context) {
	filter := Filter{
		ProjectID: c.Query("projectId"),
		Stage:     c.Query("stage"),
		Source:    c.Query("source"),
		Search:    c.Query("search"),
		Sort:      c.Query("sort"),
	}
	if v := c.Query("minScore"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "minScore must be an integer", nil)
			return
		}
		filter.MinScore = &parsed
	}
	if v := c.Query("maxScore"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "maxScore must be an integer", nil)
			return
		}
		filter.MaxScore = &parsed
	}

	list, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list candidates", nil)
		return
	}
	if list == nil {
		list = []Candidate{}
	}
	respond.OK(c, list)
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid candidate payload", nil)
		return
	}
	candidate, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidStage) {
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_stage", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create candidate", nil)
		return
	}
	c.Set("candidateId", candidate.ID)
	respond.JSON(c, http.StatusCreated, candidate)
}

type candidateResponse struct {
	Candidate
	DaysInStage int `json:"daysInStage"`
}

func (h *Handler) get(c *gin.Context) {
	candidate, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load candidate", nil)
		return
	}
	respond.OK(c, candidateResponse{
		Candidate:   candidate,
		DaysInStage: h.Svc.DaysInCurrentStage(candidate),
	})
}

func (h *Handler) update(c *gin.Context) {
	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid candidate payload", nil)
		return
	}
	candidate, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update candidate", nil)
		return
	}
	c.Set("candidateId", candidate.ID)
	respond.OK(c, candidate)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete candidate", nil)
		return
	}
	respond.OK(c, gin.H{"ok": true})
}

func (h *Handler) importBulk(c *gin.Context) {
	var body struct {
		Items []CreateInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid import payload", nil)
		return
	}
	if len(body.Items) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no items", nil)
		return
	}
	imported, err := h.Svc.Import(c.Request.Context(), body.Items)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidStage) {
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_stage", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to import candidates", nil)
		return
	}
	respond.OK(c, gin.H{"imported": len(imported), "candidates": imported})
}

// score handles both paths: a body carrying "score" is a manual override and
// bypasses the engine; an empty body triggers an auto-score pass.
func (h *Handler) score(c *gin.Context) {
	var body struct {
		Score          *int                            `json:"score"`
		ScoreBreakdown map[string]scoring.FactorResult `json:"scoreBreakdown"`
		Reason         string                          `json:"reason"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid score payload", nil)
			return
		}
	}

	var candidate Candidate
	var err error
	if body.Score != nil {
		candidate, err = h.Svc.OverrideScore(c.Request.Context(), c.Param("id"), OverrideInput{
			Score:     *body.Score,
			Breakdown: body.ScoreBreakdown,
			Reason:    body.Reason,
		})
	} else {
		candidate, err = h.Svc.AutoScore(c.Request.Context(), c.Param("id"))
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		case IsValidationError(err):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to score candidate", nil)
		}
		return
	}
	c.Set("candidateId", candidate.ID)
	respond.OK(c, candidate)
}

func (h *Handler) batchScore(c *gin.Context) {
	scored, err := h.Svc.BatchScore(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "batch scoring failed", nil)
		return
	}
	respond.OK(c, gin.H{"scored": scored})
}

func (h *Handler) moveStage(c *gin.Context) {
	var body struct {
		Stage string `json:"stage"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Stage == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "stage is required", nil)
		return
	}
	candidate, err := h.Svc.MoveStage(c.Request.Context(), c.Param("id"), body.Stage)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		case errors.Is(err, pipeline.ErrInvalidStage):
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_stage", "target stage is not in the candidate's pipeline", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to move stage", nil)
		}
		return
	}
	c.Set("candidateId", candidate.ID)
	if n := len(candidate.StageHistory); n > 0 && candidate.StageHistory[n-1].From != nil {
		c.Set("stageTransition", *candidate.StageHistory[n-1].From+" -> "+candidate.Stage)
	}
	respond.OK(c, candidate)
}

func (h *Handler) exportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=candidates.csv")
	if err := h.Svc.ExportCSV(c.Request.Context(), c.Writer, c.Query("projectId")); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export candidates", nil)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) attachResume(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxResumeBytes+1))
	if err != nil || len(data) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume payload is required", nil)
		return
	}
	if len(data) > maxResumeBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "resume payload too large", nil)
		return
	}
	candidate, err := h.Svc.AttachResume(
		c.Request.Context(),
		c.Param("id"),
		data,
		c.ContentType(),
		c.Query("filename"),
	)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
		case IsValidationError(err):
			respond.Error(c, http.StatusBadRequest, "validation_error", "could not extract resume text", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to attach resume", nil)
		}
		return
	}
	c.Set("candidateId", candidate.ID)
	respond.OK(c, candidate)
}
