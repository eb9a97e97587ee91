package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recruiter-backend/internal/activity"
	"recruiter-backend/internal/candidates"
	"recruiter-backend/internal/dashboard"
	"recruiter-backend/internal/integrations"
	"recruiter-backend/internal/roles"
	"recruiter-backend/internal/scoring"
	"recruiter-backend/internal/settings"
	"recruiter-backend/internal/shared/config"
	"recruiter-backend/internal/shared/metrics"
	"recruiter-backend/internal/shared/server/middleware"
	"recruiter-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers wired by bootstrap.
type RouterDeps struct {
	Config             config.Config
	RolesHandler       *roles.Handler
	CandidatesHandler  *candidates.Handler
	ScoringHandler     *scoring.Handler
	ActivityHandler    *activity.Handler
	IntegrationHandler *integrations.Handler
	SettingsHandler    *settings.Handler
	DashboardHandler   *dashboard.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.RolesHandler.RegisterRoutes(api)
	deps.CandidatesHandler.RegisterRoutes(api)
	deps.ScoringHandler.RegisterRoutes(api)
	deps.ActivityHandler.RegisterRoutes(api)
	deps.IntegrationHandler.RegisterRoutes(api)
	deps.SettingsHandler.RegisterRoutes(api)
	deps.DashboardHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
