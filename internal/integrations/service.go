package integrations

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recruiter-backend/internal/activity"
)

type probeSpec struct {
	url    string
	auth   string // "basic" or "bearer"
	method string
	body   string
}

// Known platform probe endpoints. The {subdomain} placeholder is filled from
// the stored integration.
var platformProbes = map[string]probeSpec{
	"greenhouse":      {url: "https://harvest.greenhouse.io/v1/candidates?per_page=1", auth: "basic"},
	"lever":           {url: "https://api.lever.co/v1/candidates?limit=1", auth: "basic"},
	"workable":        {url: "https://{subdomain}.workable.com/spi/v3/candidates?limit=1", auth: "bearer"},
	"bamboohr":        {url: "https://api.bamboohr.com/api/gateway.php/{subdomain}/v1/applicant_tracking/applications?page=1&per_page=1", auth: "basic"},
	"ashby":           {url: "https://api.ashbyhq.com/candidate.list", auth: "bearer", method: http.MethodPost, body: `{"limit":1}`},
	"smartrecruiters": {url: "https://api.smartrecruiters.com/candidates?limit=1", auth: "bearer"},
}

// TestResult is the outcome of a connection probe.
type TestResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Service manages integration configuration and the connection probe. The
// HTTP client is injected so tests can point probes at a local server.
type Service struct {
	Repo     Repo
	Client   *http.Client
	Activity activity.Recorder

	// probeURL rewrites the endpoint before the request; tests use it to
	// target httptest servers.
	probeURL func(string) string
}

func NewService(repo Repo, client *http.Client, recorder activity.Recorder) *Service {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Service{Repo: repo, Client: client, Activity: recorder}
}

// Configure upserts an integration, preserving the stored API key when a
// masked one is posted back.
func (s *Service) Configure(ctx context.Context, in Integration) (Integration, error) {
	if strings.TrimSpace(in.Platform) == "" {
		return Integration{}, fmt.Errorf("platform is required")
	}
	stored, err := s.Repo.Upsert(ctx, in)
	if err != nil {
		return Integration{}, err
	}
	s.Activity.Record(ctx, activity.ActionIntegrationConfigured, map[string]any{
		"platform": stored.Platform,
	})
	return stored, nil
}

// List returns configured integrations with masked API keys.
func (s *Service) List(ctx context.Context) ([]Integration, error) {
	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].APIKey = MaskKey(list[i].APIKey)
	}
	return list, nil
}

// TestConnection probes the platform's API with the stored credentials.
// Probe failures come back in the result, not as an error.
func (s *Service) TestConnection(ctx context.Context, platform string) (TestResult, error) {
	integration, err := s.Repo.GetByPlatform(ctx, platform)
	if err != nil {
		return TestResult{}, err
	}
	spec, ok := platformProbes[platform]
	if !ok {
		return TestResult{OK: false, Error: "unsupported platform for test"}, nil
	}

	url := strings.ReplaceAll(spec.url, "{subdomain}", integration.Subdomain)
	if s.probeURL != nil {
		url = s.probeURL(url)
	}
	method := spec.method
	if method == "" {
		method = http.MethodGet
	}
	var body *strings.Reader
	if spec.body != "" {
		body = strings.NewReader(spec.body)
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return TestResult{OK: false, Error: err.Error()}, nil
	}
	req.Header.Set("Content-Type", "application/json")
	if spec.auth == "basic" {
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(integration.APIKey+":")))
	} else {
		req.Header.Set("Authorization", "Bearer "+integration.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return TestResult{OK: false, Error: err.Error()}, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return TestResult{OK: true, Message: "Connection successful"}, nil
	}
	return TestResult{OK: false, Error: fmt.Sprintf("API returned %d", resp.StatusCode)}, nil
}

// Sync marks a sync cycle on the integration. Actual candidate pulls are out
// of scope; only the status bookkeeping contract is kept.
func (s *Service) Sync(ctx context.Context, platform string) (Integration, error) {
	integration, err := s.Repo.GetByPlatform(ctx, platform)
	if err != nil {
		return Integration{}, err
	}
	integration.SyncStatus = SyncSyncing
	if _, err := s.Repo.Upsert(ctx, integration); err != nil {
		return Integration{}, err
	}

	now := time.Now().UTC()
	integration.LastSync = &now
	integration.SyncStatus = SyncSynced
	stored, err := s.Repo.Upsert(ctx, integration)
	if err != nil {
		return Integration{}, err
	}
	s.Activity.Record(ctx, activity.ActionIntegrationSynced, map[string]any{
		"platform": platform,
	})
	return stored, nil
}
