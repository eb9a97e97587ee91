package candidates

import (
	"context"
	"errors"
	"testing"
	"time"

	"recruiter-backend/internal/activity"
	"recruiter-backend/internal/pipeline"
	"recruiter-backend/internal/roles"
	"recruiter-backend/internal/scoring"
)

func newTestService(t *testing.T) (*Service, *roles.MemoryRepo) {
	t.Helper()
	rolesRepo := roles.NewMemoryRepo()
	return &Service{
		Repo:     NewMemoryRepo(),
		Roles:    rolesRepo,
		Weights:  scoring.NewMemoryStore(),
		Activity: activity.NopRecorder{},
	}, rolesRepo
}

func seedRole(t *testing.T, repo *roles.MemoryRepo, role roles.Role) roles.Role {
	t.Helper()
	if role.ID == "" {
		role.ID = "role-1"
	}
	if role.CreatedAt.IsZero() {
		role.CreatedAt = time.Now().UTC()
	}
	if err := repo.Create(context.Background(), role); err != nil {
		t.Fatalf("seed role: %v", err)
	}
	return role
}

func TestCreateStartsAtRolePipelineHead(t *testing.T) {
	svc, rolesRepo := newTestService(t)
	role := seedRole(t, rolesRepo, roles.Role{
		Title:          "Backend Engineer",
		PipelineStages: []string{"Applied", "Interview", "Offer"},
	})

	c, err := svc.Create(context.Background(), CreateInput{
		Name:      "Dana Whitfield",
		ProjectID: role.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Stage != "Applied" {
		t.Fatalf("expected initial stage Applied, got %q", c.Stage)
	}
	if c.Role != "Backend Engineer" {
		t.Fatalf("expected role title filled from the role, got %q", c.Role)
	}
	if len(c.StageHistory) != 1 || c.StageHistory[0].From != nil {
		t.Fatalf("expected single seed history entry with nil from, got %+v", c.StageHistory)
	}
	if c.Source != SourceManual {
		t.Fatalf("expected default source manual, got %q", c.Source)
	}
}

func TestCreateUnassignedDefaultsToSourced(t *testing.T) {
	svc, _ := newTestService(t)
	c, err := svc.Create(context.Background(), CreateInput{Name: "Free Agent"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Stage != "Sourced" {
		t.Fatalf("expected unassigned candidate to start in Sourced, got %q", c.Stage)
	}
}

func TestCreateRejectsUnknownStage(t *testing.T) {
	svc, rolesRepo := newTestService(t)
	role := seedRole(t, rolesRepo, roles.Role{
		Title:          "Designer",
		PipelineStages: []string{"Applied", "Portfolio Review"},
	})

	_, err := svc.Create(context.Background(), CreateInput{
		Name:      "Nim Patel",
		ProjectID: role.ID,
		Stage:     "Limbo",
	})
	if !errors.Is(err, pipeline.ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage, got %v", err)
	}
}

func TestImportDefaultsSourceToImport(t *testing.T) {
	svc, _ := newTestService(t)
	imported, err := svc.Import(context.Background(), []CreateInput{
		{Name: "One"},
		{Name: "Two", Source: "referral"},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(imported) != 2 {
		t.Fatalf("expected 2 imported, got %d", len(imported))
	}
	if imported[0].Source != SourceImport {
		t.Fatalf("expected default source import, got %q", imported[0].Source)
	}
	if imported[1].Source != "referral" {
		t.Fatalf("expected explicit source kept, got %q", imported[1].Source)
	}
}

func TestAutoScoreStoresBreakdownAndReason(t *testing.T) {
	svc, rolesRepo := newTestService(t)
	role := seedRole(t, rolesRepo, roles.Role{
		Title:          "Platform Engineer",
		RequiredSkills: []string{"Go", "Kubernetes"},
	})
	c, err := svc.Create(context.Background(), CreateInput{
		Name:       "Riley Okafor",
		ProjectID:  role.ID,
		ResumeText: "Go services on Kubernetes, strong collaboration",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	scored, err := svc.AutoScore(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("auto score: %v", err)
	}
	if scored.Score == nil {
		t.Fatalf("expected a score to be set")
	}
	if scored.ScoreReason != ReasonAutoScored {
		t.Fatalf("expected auto-score reason, got %q", scored.ScoreReason)
	}
	skills, ok := scored.ScoreBreakdown[scoring.FactorSkillsMatch]
	if !ok {
		t.Fatalf("expected skillsMatch in breakdown")
	}
	if skills.Score != 100 {
		t.Fatalf("expected full skills match, got %d", skills.Score)
	}
}

func TestOverrideScoreBypassesEngine(t *testing.T) {
	svc, _ := newTestService(t)
	c, err := svc.Create(context.Background(), CreateInput{Name: "Morgan Vale"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.OverrideScore(context.Background(), c.ID, OverrideInput{Score: 91})
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if updated.Score == nil || *updated.Score != 91 {
		t.Fatalf("expected score 91, got %v", updated.Score)
	}
	if updated.ScoreReason != ReasonManualOverride {
		t.Fatalf("expected manual override reason, got %q", updated.ScoreReason)
	}
	if updated.ScoreBreakdown != nil {
		t.Fatalf("expected override without breakdown to leave it empty")
	}
}

func TestOverrideScoreValidatesRange(t *testing.T) {
	svc, _ := newTestService(t)
	c, err := svc.Create(context.Background(), CreateInput{Name: "Out of Range"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.OverrideScore(context.Background(), c.ID, OverrideInput{Score: 101}); !IsValidationError(err) {
		t.Fatalf("expected validation error for score 101, got %v", err)
	}
	if _, err := svc.OverrideScore(context.Background(), c.ID, OverrideInput{Score: -1}); !IsValidationError(err) {
		t.Fatalf("expected validation error for score -1, got %v", err)
	}
}

func TestBatchScoreSkipsAlreadyScored(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		c, err := svc.Create(ctx, CreateInput{Name: name})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, c.ID)
	}
	// A stored zero still counts as scored.
	if _, err := svc.OverrideScore(ctx, ids[0], OverrideInput{Score: 0}); err != nil {
		t.Fatalf("override: %v", err)
	}

	scored, err := svc.BatchScore(ctx)
	if err != nil {
		t.Fatalf("batch score: %v", err)
	}
	if scored != 2 {
		t.Fatalf("expected 2 newly scored, got %d", scored)
	}

	overridden, err := svc.Get(ctx, ids[0])
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if overridden.Score == nil || *overridden.Score != 0 {
		t.Fatalf("expected overridden zero preserved, got %v", overridden.Score)
	}

	// Repeat runs are no-ops.
	again, err := svc.BatchScore(ctx)
	if err != nil {
		t.Fatalf("second batch score: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected 0 scored on repeat run, got %d", again)
	}

	for _, id := range ids[1:] {
		c, err := svc.Get(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if c.ScoreReason != ReasonBatchScored {
			t.Fatalf("expected batch reason, got %q", c.ScoreReason)
		}
	}
}

func TestMoveStageAppendsHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, CreateInput{Name: "Harper Quinn"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	moved, err := svc.MoveStage(ctx, c.ID, "Screening")
	if err != nil {
		t.Fatalf("move stage: %v", err)
	}
	if moved.Stage != "Screening" {
		t.Fatalf("expected stage Screening, got %q", moved.Stage)
	}
	if len(moved.StageHistory) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(moved.StageHistory))
	}
	last := moved.StageHistory[len(moved.StageHistory)-1]
	if last.From == nil || *last.From != "Sourced" {
		t.Fatalf("expected transition from Sourced, got %v", last.From)
	}
}

func TestMoveStageUnknownTargetLeavesCandidateUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, CreateInput{Name: "Stay Put"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.MoveStage(ctx, c.ID, "Nonexistent"); !errors.Is(err, pipeline.ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage, got %v", err)
	}
	unchanged, err := svc.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if unchanged.Stage != "Sourced" || len(unchanged.StageHistory) != 1 {
		t.Fatalf("expected candidate unchanged after invalid move, got stage %q with %d entries",
			unchanged.Stage, len(unchanged.StageHistory))
	}
}

func TestMoveStageToRejectedAlwaysAllowed(t *testing.T) {
	svc, rolesRepo := newTestService(t)
	ctx := context.Background()
	role := seedRole(t, rolesRepo, roles.Role{
		Title:          "Analyst",
		PipelineStages: []string{"Applied", "Interview"},
	})
	c, err := svc.Create(ctx, CreateInput{Name: "Rejected Path", ProjectID: role.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	moved, err := svc.MoveStage(ctx, c.ID, pipeline.StageRejected)
	if err != nil {
		t.Fatalf("expected Rejected reachable, got %v", err)
	}
	if moved.Stage != pipeline.StageRejected {
		t.Fatalf("expected stage Rejected, got %q", moved.Stage)
	}
}

func TestMoveStageMissingCandidate(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.MoveStage(context.Background(), "no-such-id", "Screening"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletedRoleFallsBackToDefaultPipeline(t *testing.T) {
	svc, rolesRepo := newTestService(t)
	ctx := context.Background()
	role := seedRole(t, rolesRepo, roles.Role{
		Title:          "Ephemeral",
		PipelineStages: []string{"Applied", "Interview"},
	})
	c, err := svc.Create(ctx, CreateInput{Name: "Orphaned", ProjectID: role.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := rolesRepo.Delete(ctx, role.ID); err != nil {
		t.Fatalf("delete role: %v", err)
	}

	// The role is gone, so the default pipeline governs from here.
	moved, err := svc.MoveStage(ctx, c.ID, "Screening")
	if err != nil {
		t.Fatalf("move stage: %v", err)
	}
	if moved.Stage != "Screening" {
		t.Fatalf("expected stage Screening, got %q", moved.Stage)
	}
}
