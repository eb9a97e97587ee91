package pipeline

import (
	"errors"
	"testing"
	"time"
)

func TestResolveAppendsRejected(t *testing.T) {
	stages := Resolve([]string{"Applied", "Interview", "Offer"})
	if len(stages) != 4 {
		t.Fatalf("expected 4 stages, got %d", len(stages))
	}
	if stages[len(stages)-1] != StageRejected {
		t.Fatalf("expected Rejected appended last, got %q", stages[len(stages)-1])
	}
}

func TestResolveKeepsExplicitRejected(t *testing.T) {
	stages := Resolve([]string{"Applied", StageRejected, "Offer"})
	count := 0
	for _, s := range stages {
		if s == StageRejected {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one Rejected stage, got %d", count)
	}
}

func TestResolveEmptyUsesDefaults(t *testing.T) {
	stages := Resolve(nil)
	defaults := DefaultStages()
	if len(stages) != len(defaults) {
		t.Fatalf("expected %d default stages, got %d", len(defaults), len(stages))
	}
	if stages[0] != "Sourced" {
		t.Fatalf("expected default pipeline to start at Sourced, got %q", stages[0])
	}
}

func TestMachineInitial(t *testing.T) {
	m := NewMachine([]string{"Applied", "Interview"})
	if m.Initial() != "Applied" {
		t.Fatalf("expected initial stage Applied, got %q", m.Initial())
	}
}

func TestMoveAppendsHistory(t *testing.T) {
	m := NewMachine(nil)
	now := time.Now().UTC()
	history := Seed("Sourced", now.Add(-time.Hour))

	stage, next, err := m.Move("Sourced", history, "Screening", now)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if stage != "Screening" {
		t.Fatalf("expected new stage Screening, got %q", stage)
	}
	if len(next) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(next))
	}
	last := next[len(next)-1]
	if last.From == nil || *last.From != "Sourced" {
		t.Fatalf("expected transition from Sourced, got %v", last.From)
	}
	if !last.Timestamp.Equal(now) {
		t.Fatalf("expected transition timestamp %v, got %v", now, last.Timestamp)
	}
}

func TestMoveInvalidStageLeavesInputsUnchanged(t *testing.T) {
	m := NewMachine([]string{"Applied", "Interview"})
	now := time.Now().UTC()
	history := Seed("Applied", now)

	stage, next, err := m.Move("Applied", history, "Limbo", now)
	if !errors.Is(err, ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage, got %v", err)
	}
	if stage != "Applied" {
		t.Fatalf("expected stage unchanged, got %q", stage)
	}
	if len(next) != 1 {
		t.Fatalf("expected history unchanged, got %d entries", len(next))
	}
}

func TestMoveSelfTransitionAppends(t *testing.T) {
	m := NewMachine(nil)
	now := time.Now().UTC()
	history := Seed("Sourced", now.Add(-48*time.Hour))

	stage, next, err := m.Move("Sourced", history, "Sourced", now)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if stage != "Sourced" {
		t.Fatalf("expected stage Sourced, got %q", stage)
	}
	if len(next) != 2 {
		t.Fatalf("expected self-transition to append, got %d entries", len(next))
	}
}

func TestMoveToRejectedAlwaysAllowed(t *testing.T) {
	m := NewMachine([]string{"Applied", "Interview"})
	if _, _, err := m.Move("Applied", nil, StageRejected, time.Now().UTC()); err != nil {
		t.Fatalf("expected Rejected to be reachable, got %v", err)
	}
}

func TestSeedHasNilFrom(t *testing.T) {
	now := time.Now().UTC()
	history := Seed("Sourced", now)
	if len(history) != 1 {
		t.Fatalf("expected single seed entry, got %d", len(history))
	}
	if history[0].From != nil {
		t.Fatalf("expected nil from on seed entry, got %q", *history[0].From)
	}
	if history[0].Stage != "Sourced" {
		t.Fatalf("expected seed stage Sourced, got %q", history[0].Stage)
	}
}

func TestDaysInStage(t *testing.T) {
	now := time.Now().UTC()
	history := Seed("Sourced", now.Add(-72*time.Hour))
	if got := DaysInStage(history, now); got != 3 {
		t.Fatalf("expected 3 days in stage, got %d", got)
	}
	if got := DaysInStage(nil, now); got != 0 {
		t.Fatalf("expected 0 days for empty history, got %d", got)
	}
}
