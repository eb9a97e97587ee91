package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recruiter-backend/internal/shared/config"
)

func TestBuildWithoutDatabaseUsesMemoryRepos(t *testing.T) {
	app, err := Build(config.Config{Env: "dev", ActivityLogCap: 100})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if app.DB != nil {
		t.Fatalf("expected nil DB in memory mode")
	}
	if app.CandidatesRepo == nil || app.RolesRepo == nil {
		t.Fatalf("expected memory repos wired")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "candidates_scored_total") {
		t.Fatalf("expected counter in metrics output")
	}
}

func TestBuildRequiresDatabaseInProduction(t *testing.T) {
	if _, err := Build(config.Config{Env: "production"}); err == nil {
		t.Fatalf("expected error when DATABASE_URL missing in production")
	}
}

func TestBuildEndToEndCandidateFlow(t *testing.T) {
	app, err := Build(config.Config{Env: "dev"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	body := `{"name":"Flow Test","resumeText":"Go and leadership"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/candidates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating candidate, got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected dashboard 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"totalCandidates":1`) {
		t.Fatalf("expected dashboard to count the candidate, got %s", resp.Body.String())
	}
}
