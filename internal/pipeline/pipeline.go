package pipeline

import (
	"errors"
	"time"
)

// StageRejected is the reserved terminal-ish stage name. It is implicitly
// available in every pipeline and must not appear in a role's own stage list.
const StageRejected = "Rejected"

// ErrInvalidStage is returned when a transition targets a stage that is not in
// the candidate's resolved stage set.
var ErrInvalidStage = errors.New("invalid stage")

// DefaultStages is the pipeline used when a candidate has no assigned role.
func DefaultStages() []string {
	return []string{
		"Sourced", "Screening", "Phone Screen", "Technical",
		"Culture Fit", "Offer", "Hired", StageRejected,
	}
}

// Transition is one append-only stage-history record. From is nil only for the
// entry recorded at candidate creation.
type Transition struct {
	Stage     string    `json:"stage"`
	From      *string   `json:"from"`
	Timestamp time.Time `json:"timestamp"`
}

// Machine is the resolved stage set for one candidate. Stage names come from
// the role's ordered pipeline, with Rejected always appended.
type Machine struct {
	stages []string
	index  map[string]struct{}
}

// NewMachine builds a machine from a role's pipeline stages. Empty input
// resolves to the default pipeline.
func NewMachine(roleStages []string) *Machine {
	stages := Resolve(roleStages)
	index := make(map[string]struct{}, len(stages))
	for _, s := range stages {
		index[s] = struct{}{}
	}
	return &Machine{stages: stages, index: index}
}

// Resolve returns the usable stage sequence for the given role stages:
// the role's own order plus Rejected, or the default pipeline when empty.
func Resolve(roleStages []string) []string {
	if len(roleStages) == 0 {
		return DefaultStages()
	}
	out := make([]string, 0, len(roleStages)+1)
	hasRejected := false
	for _, s := range roleStages {
		if s == StageRejected {
			hasRejected = true
		}
		out = append(out, s)
	}
	if !hasRejected {
		out = append(out, StageRejected)
	}
	return out
}

// Initial returns the stage a newly created candidate starts in.
func (m *Machine) Initial() string {
	return m.stages[0]
}

// Stages returns the resolved stage sequence.
func (m *Machine) Stages() []string {
	return append([]string(nil), m.stages...)
}

// Contains reports whether stage is a member of the resolved set.
func (m *Machine) Contains(stage string) bool {
	_, ok := m.index[stage]
	return ok
}

// Move validates target membership and returns the new current stage plus the
// extended history. Self-transitions are permitted and still append; they bump
// recency. On ErrInvalidStage the inputs are returned unchanged.
func (m *Machine) Move(current string, history []Transition, target string, now time.Time) (string, []Transition, error) {
	if !m.Contains(target) {
		return current, history, ErrInvalidStage
	}
	from := current
	next := append(history, Transition{
		Stage:     target,
		From:      &from,
		Timestamp: now,
	})
	return target, next, nil
}

// Seed builds the creation-time history entry, with a nil From.
func Seed(stage string, at time.Time) []Transition {
	return []Transition{{Stage: stage, From: nil, Timestamp: at}}
}

// DaysInStage reports how many whole days the candidate has sat in its current
// stage, counted from the last history entry. Zero for empty history.
func DaysInStage(history []Transition, now time.Time) int {
	if len(history) == 0 {
		return 0
	}
	last := history[len(history)-1]
	days := int(now.Sub(last.Timestamp).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
