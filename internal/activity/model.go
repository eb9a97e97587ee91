package activity

import "time"

// Entry is one append-only activity record. The feed is newest-first and
// capped; entries are never edited.
type Entry struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	Timestamp time.Time      `json:"timestamp"`
}

// Event kinds recorded by the services.
const (
	ActionCandidateAdded        = "candidate_added"
	ActionCandidatesImported    = "candidates_imported"
	ActionCandidateScored       = "candidate_scored"
	ActionBatchScore            = "batch_score"
	ActionStageChange           = "stage_change"
	ActionProjectCreated        = "project_created"
	ActionProjectDeleted        = "project_deleted"
	ActionIntegrationConfigured = "integration_configured"
	ActionIntegrationSynced     = "integration_synced"
	ActionOnboardingComplete    = "onboarding_complete"
)
