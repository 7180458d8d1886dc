package history

import "errors"

var (
	ErrNotFound = errors.New("record not found")
)
