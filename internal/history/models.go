package history

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/operations"
)

type recordModel struct {
	ID          uuid.UUID       `json:"id"`
	RepoPath    string          `json:"repo_path"`
	Kind        operations.Kind `json:"kind"`
	Status      Status          `json:"status"`
	Message     string          `json:"message"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func recordKey(id string) string {
	return prefixByID + id
}

// repoPrefix is the index prefix of one repository. Paths are encoded so that one path is never
// a prefix of another.
func repoPrefix(repoPath string) string {
	return prefixByRepo + base64.RawURLEncoding.EncodeToString([]byte(repoPath)) + ":"
}

func kindPrefix(kind operations.Kind) string {
	return prefixByKind + string(kind) + ":"
}

// StorageKey implements badgerfx.Entity.
func (m *recordModel) StorageKey() string {
	return recordKey(m.ID.String())
}

// StorageIndexes implements badgerfx.Entity. Both indexes sort by start time.
func (m *recordModel) StorageIndexes() []string {
	suffix := fmt.Sprintf("%020d:%s", m.StartedAt.UnixNano(), m.ID)
	return []string{
		repoPrefix(m.RepoPath) + suffix,
		kindPrefix(m.Kind) + suffix,
	}
}

// MarshalStorage implements badgerfx.Entity.
func (m *recordModel) MarshalStorage() ([]byte, error) {
	return json.Marshal(m)
}

// UnmarshalStorage implements badgerfx.Entity.
func (m *recordModel) UnmarshalStorage(data []byte) error {
	return json.Unmarshal(data, m)
}

func newRecordModel(record *Record) *recordModel {
	if record == nil {
		return nil
	}

	return &recordModel{
		ID:          record.ID,
		RepoPath:    record.RepoPath,
		Kind:        record.Kind,
		Status:      record.Status,
		Message:     record.Message,
		StartedAt:   record.StartedAt,
		CompletedAt: record.CompletedAt,
		UpdatedAt:   time.Now(),
	}
}

func newRecord(model *recordModel) *Record {
	if model == nil {
		return nil
	}

	return &Record{
		ID:          model.ID,
		RepoPath:    model.RepoPath,
		Kind:        model.Kind,
		Status:      model.Status,
		Message:     model.Message,
		StartedAt:   model.StartedAt,
		CompletedAt: model.CompletedAt,
	}
}
