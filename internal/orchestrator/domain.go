package orchestrator

import (
	"github.com/gatescan/gatescan/internal/runs"
	"github.com/google/uuid"
)

// Outcome reports the result of one (repository, branch) sync-and-scan.
type Outcome struct {
	Repository string
	Branch     string
	ProjectKey string
	Status     runs.Status
	// Error is the redacted failure message, empty on success.
	Error string
	// RunID references the recorded scan run, Nil if recording failed.
	RunID uuid.UUID
}

func (o Outcome) Failed() bool {
	return o.Status == runs.StatusFailed
}
