package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"recruiter-backend/internal/activity"
	"recruiter-backend/internal/candidates"
	"recruiter-backend/internal/dashboard"
	"recruiter-backend/internal/extract"
	"recruiter-backend/internal/integrations"
	"recruiter-backend/internal/roles"
	"recruiter-backend/internal/scoring"
	"recruiter-backend/internal/settings"
	"recruiter-backend/internal/shared/config"
	"recruiter-backend/internal/shared/server"
	"recruiter-backend/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	RolesRepo        roles.Repo
	CandidatesRepo   candidates.Repo
	ActivityRepo     activity.Repo
	IntegrationsRepo integrations.Repo
	SettingsRepo     settings.Repo
	WeightsStore     scoring.Store

	ActivityRecorder   activity.Recorder
	RolesService       *roles.Service
	CandidatesService  *candidates.Service
	IntegrationService *integrations.Service
	DashboardService   *dashboard.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		RolesHandler:       roles.NewHandler(app.RolesService),
		CandidatesHandler:  candidates.NewHandler(app.CandidatesService),
		ScoringHandler:     scoring.NewHandler(app.WeightsStore),
		ActivityHandler:    activity.NewHandler(app.ActivityRepo),
		IntegrationHandler: integrations.NewHandler(app.IntegrationService),
		SettingsHandler:    settings.NewHandler(app.SettingsRepo, app.ActivityRecorder),
		DashboardHandler:   dashboard.NewHandler(app.DashboardService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.RolesRepo = &roles.PGRepo{DB: app.DB}
		app.CandidatesRepo = &candidates.PGRepo{DB: app.DB}
		app.ActivityRepo = &activity.PGRepo{DB: app.DB}
		app.IntegrationsRepo = &integrations.PGRepo{DB: app.DB}
		app.SettingsRepo = &settings.PGRepo{DB: app.DB}
		app.WeightsStore = &scoring.PGStore{DB: app.DB}
	} else {
		app.RolesRepo = roles.NewMemoryRepo()
		app.CandidatesRepo = candidates.NewMemoryRepo()
		app.ActivityRepo = activity.NewMemoryRepo()
		app.IntegrationsRepo = integrations.NewMemoryRepo()
		app.SettingsRepo = settings.NewMemoryRepo()
		app.WeightsStore = scoring.NewMemoryStore()
	}

	app.ActivityRecorder = activity.NewFeedRecorder(app.ActivityRepo, app.Config.ActivityLogCap)
	app.RolesService = roles.NewService(app.RolesRepo, app.ActivityRecorder)
	app.CandidatesService = &candidates.Service{
		Repo:      app.CandidatesRepo,
		Roles:     app.RolesRepo,
		Weights:   app.WeightsStore,
		Activity:  app.ActivityRecorder,
		Extractor: extract.Extractor{},
	}
	app.IntegrationService = integrations.NewService(app.IntegrationsRepo, nil, app.ActivityRecorder)
	app.DashboardService = dashboard.NewService(app.RolesRepo, app.CandidatesRepo, app.IntegrationsRepo, app.ActivityRepo)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
