package compiler

import (
	"time"

	"github.com/goliatone/go-portfolio/internal/publish"
)

// Step names a stage of a compile run.
type Step string

const (
	StepPosts    Step = "posts"
	StepProjects Step = "projects"
	StepResume   Step = "resume"
	StepTimeline Step = "timeline"
	StepMedia    Step = "media"
	StepManifest Step = "manifest"
)

// Status is the result of a single step.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// StepOutcome records how a step ended. Reason is a human readable note for
// skipped steps and for completed steps that degraded.
type StepOutcome struct {
	Step      Step
	Status    Status
	Reason    string
	Err       error
	Artifacts int
}

// RecordIssue points at a record that was skipped, orphaned or flagged.
type RecordIssue struct {
	Step     Step
	Source   string
	RecordID string
	Reason   string
}

// Report summarises a compile run.
type Report struct {
	Posts    int
	Projects int
	// Skipped lists records left out of every output.
	Skipped []RecordIssue
	// Orphans lists projects published in the aggregate without a per-id file.
	Orphans []RecordIssue
	// Warnings lists records published despite a problem.
	Warnings  []RecordIssue
	Outcomes  []StepOutcome
	Artifacts []publish.Artifact
	Pruned    []string
	DryRun    bool
	Duration  time.Duration
}

// Outcome returns the outcome recorded for step.
func (r *Report) Outcome(step Step) (StepOutcome, bool) {
	if r == nil {
		return StepOutcome{}, false
	}
	for _, outcome := range r.Outcomes {
		if outcome.Step == step {
			return outcome, true
		}
	}
	return StepOutcome{}, false
}

// Ran lists the steps that completed.
func (r *Report) Ran() []Step {
	if r == nil {
		return nil
	}
	steps := make([]Step, 0, len(r.Outcomes))
	for _, outcome := range r.Outcomes {
		if outcome.Status == StatusCompleted {
			steps = append(steps, outcome.Step)
		}
	}
	return steps
}

func (r *Report) record(outcome StepOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

func completed(step Step, artifacts int) StepOutcome {
	return StepOutcome{Step: step, Status: StatusCompleted, Artifacts: artifacts}
}

func skipped(step Step, reason string) StepOutcome {
	return StepOutcome{Step: step, Status: StatusSkipped, Reason: reason}
}

func failed(step Step, reason string, err error) StepOutcome {
	return StepOutcome{Step: step, Status: StatusFailed, Reason: reason, Err: err}
}
