package recent

import "errors"

var (
	ErrNotFound = errors.New("repository not in recent list")
)
