package runs

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSuccess Status = "success" // Sync and scan completed
	StatusFailed  Status = "failed"  // Sync or scan failed
)

type ScanRunDraft struct {
	// Target
	Repository string // Repository name from configuration
	Branch     string // Branch that was scanned

	// Scan Details
	ProjectKey  string // SonarQube project key
	WorkingCopy string // Path of the working copy on disk

	// Outcome
	Status     Status
	Error      string    // Error message if failed, already redacted
	StartedAt  time.Time // When sync started
	FinishedAt time.Time // When the scan completed or failed
}

type ScanRun struct {
	ScanRunDraft

	ID        uuid.UUID
	CreatedAt time.Time
}

func (r *ScanRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
