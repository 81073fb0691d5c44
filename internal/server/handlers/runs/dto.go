package runs

import (
	"time"

	"github.com/google/uuid"
)

// RunResponse represents the response payload for a scan run.
type RunResponse struct {
	ID         uuid.UUID `json:"id"`
	Repository string    `json:"repository"`
	Branch     string    `json:"branch"`
	ProjectKey string    `json:"project_key"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	CreatedAt  time.Time `json:"created_at"`
}
