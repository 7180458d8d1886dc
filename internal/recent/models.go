package recent

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

const (
	prefix = "recent:"

	prefixByPath = prefix + "path:"
	prefixByTime = prefix + "time:"
)

// Entry is one remembered repository.
type Entry struct {
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"opened_at"`
}

func pathKey(path string) string {
	return prefixByPath + encodePath(path)
}

func encodePath(path string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(path))
}

// StorageKey implements badgerfx.Entity.
func (e *Entry) StorageKey() string {
	return pathKey(e.Path)
}

// StorageIndexes implements badgerfx.Entity. The time index is zero padded so keys sort by time.
func (e *Entry) StorageIndexes() []string {
	return []string{
		fmt.Sprintf("%s%020d:%s", prefixByTime, e.OpenedAt.UnixNano(), encodePath(e.Path)),
	}
}

// MarshalStorage implements badgerfx.Entity.
func (e *Entry) MarshalStorage() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalStorage implements badgerfx.Entity.
func (e *Entry) UnmarshalStorage(data []byte) error {
	return json.Unmarshal(data, e)
}
