package scans

import "github.com/google/uuid"

// TriggerRequest represents the request payload for an on-demand scan.
type TriggerRequest struct {
	Repository string `json:"repository"       validate:"required,min=1,max=100"`
	Branch     string `json:"branch,omitempty" validate:"omitempty,min=1,max=200"`
}

// OutcomeResponse represents the result of one scanned branch.
type OutcomeResponse struct {
	Repository string    `json:"repository"`
	Branch     string    `json:"branch"`
	ProjectKey string    `json:"project_key"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	RunID      uuid.UUID `json:"run_id"`
}
