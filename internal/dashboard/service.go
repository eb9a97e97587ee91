package dashboard

import (
	"context"

	"recruiter-backend/internal/activity"
	"recruiter-backend/internal/candidates"
	"recruiter-backend/internal/integrations"
	"recruiter-backend/internal/roles"
)

const recentActivityLimit = 20

// Summary is the aggregate view served to the dashboard.
type Summary struct {
	ActiveRoles        int               `json:"activeRoles"`
	TotalCandidates    int               `json:"totalCandidates"`
	UnscoredCandidates int               `json:"unscoredCandidates"`
	StageDistribution  map[string]int    `json:"stageDistribution"`
	SourceDistribution map[string]int    `json:"sourceDistribution"`
	IntegrationStatus  map[string]string `json:"integrationStatus"`
	RecentActivity     []activity.Entry  `json:"recentActivity"`
}

// Service aggregates across the domain repos. It reads only; all writes go
// through the owning packages.
type Service struct {
	Roles        roles.Repo
	Candidates   candidates.Repo
	Integrations integrations.Repo
	Activity     activity.Repo
}

func NewService(r roles.Repo, c candidates.Repo, i integrations.Repo, a activity.Repo) *Service {
	return &Service{Roles: r, Candidates: c, Integrations: i, Activity: a}
}

func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	summary := Summary{
		StageDistribution:  map[string]int{},
		SourceDistribution: map[string]int{},
		IntegrationStatus:  map[string]string{},
		RecentActivity:     []activity.Entry{},
	}

	roleList, err := s.Roles.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	for _, r := range roleList {
		if r.Status == roles.StatusOpen {
			summary.ActiveRoles++
		}
	}

	candidateList, err := s.Candidates.List(ctx, candidates.Filter{})
	if err != nil {
		return Summary{}, err
	}
	summary.TotalCandidates = len(candidateList)
	for _, cand := range candidateList {
		if !cand.Scored() {
			summary.UnscoredCandidates++
		}
		if cand.Stage != "" {
			summary.StageDistribution[cand.Stage]++
		}
		if cand.Source != "" {
			summary.SourceDistribution[cand.Source]++
		}
	}

	integrationList, err := s.Integrations.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	for _, in := range integrationList {
		summary.IntegrationStatus[in.Platform] = in.SyncStatus
	}

	recent, err := s.Activity.List(ctx, recentActivityLimit)
	if err != nil {
		return Summary{}, err
	}
	if recent != nil {
		summary.RecentActivity = recent
	}

	return summary, nil
}
