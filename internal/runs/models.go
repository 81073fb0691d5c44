package runs

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gatescan/gatescan/internal/storage"
	"github.com/google/uuid"
)

const (
	prefix = "run:"

	prefixByID         = prefix + "id:"
	prefixByRepository = prefix + "repo:"
	prefixByTarget     = prefix + "target:"
)

// scanRunModel represents one recorded sync-and-scan of a repository branch.
type scanRunModel struct {
	storage.BaseEntity

	// Target
	Repository string `json:"repository"`
	Branch     string `json:"branch"`

	// Scan Details
	ProjectKey  string `json:"project_key"`
	WorkingCopy string `json:"working_copy"`

	// Outcome
	Status     Status    `json:"status"`
	Error      string    `json:"error"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func (m *scanRunModel) StorageKey() string {
	return prefixByID + m.ID.String()
}

func (m *scanRunModel) StorageIndexes() []string {
	ts := strconv.FormatInt(m.CreatedAt.UnixNano(), 10)
	return []string{
		repositoryPrefix(m.Repository) + ts,
		targetPrefix(m.Repository, m.Branch) + ts,
	}
}

func (m *scanRunModel) MarshalStorage() ([]byte, error) {
	return json.Marshal(m)
}

func (m *scanRunModel) UnmarshalStorage(data []byte) error {
	return json.Unmarshal(data, m)
}

// repositoryPrefix generates the index prefix for a repository's runs.
func repositoryPrefix(repository string) string {
	return prefixByRepository + repository + ":"
}

// targetPrefix generates the index prefix for a (repository, branch) pair.
func targetPrefix(repository, branch string) string {
	return prefixByTarget + repository + "@" + branch + ":"
}

func newScanRunModel(draft *ScanRunDraft) *scanRunModel {
	if draft == nil {
		return nil
	}

	now := time.Now()
	return &scanRunModel{
		BaseEntity: storage.BaseEntity{
			ID:        uuid.Must(uuid.NewV7()),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Repository:  draft.Repository,
		Branch:      draft.Branch,
		ProjectKey:  draft.ProjectKey,
		WorkingCopy: draft.WorkingCopy,
		Status:      draft.Status,
		Error:       draft.Error,
		StartedAt:   draft.StartedAt,
		FinishedAt:  draft.FinishedAt,
	}
}

func newScanRun(model *scanRunModel) *ScanRun {
	if model == nil {
		return nil
	}

	return &ScanRun{
		ScanRunDraft: ScanRunDraft{
			Repository:  model.Repository,
			Branch:      model.Branch,
			ProjectKey:  model.ProjectKey,
			WorkingCopy: model.WorkingCopy,
			Status:      model.Status,
			Error:       model.Error,
			StartedAt:   model.StartedAt,
			FinishedAt:  model.FinishedAt,
		},
		ID:        model.ID,
		CreatedAt: model.CreatedAt,
	}
}
