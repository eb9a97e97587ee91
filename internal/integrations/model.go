package integrations

import (
	"strings"
	"time"
)

// Sync statuses.
const (
	SyncNever   = "never"
	SyncSyncing = "syncing"
	SyncSynced  = "synced"
	SyncError   = "error"
)

// Integration is a configured third-party ATS connection. Only the contract
// is implemented here: credential storage, a connection probe, and sync
// bookkeeping. No candidate data is pulled.
type Integration struct {
	ID               string     `json:"id"`
	Platform         string     `json:"platform"`
	APIKey           string     `json:"apiKey"`
	Subdomain        string     `json:"subdomain"`
	Enabled          bool       `json:"enabled"`
	LastSync         *time.Time `json:"lastSync"`
	SyncStatus       string     `json:"syncStatus"`
	CandidatesSynced int        `json:"candidatesSynced"`
}

// MaskKey hides the middle of an API key for listing.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// IsMasked reports whether key looks like a masked value posted back from a
// listing; stored keys are preserved in that case.
func IsMasked(key string) bool {
	return strings.Contains(key, "****")
}
