package panel

import (
	"errors"

	"github.com/mgit-app/mgit/internal/operations"
)

var (
	ErrBusy                 = operations.ErrBusy
	ErrNoRepository         = errors.New("no repository opened")
	ErrInvalidRepository    = errors.New("not a valid git repository")
	ErrInvalidInput         = errors.New("invalid input")
	ErrNoRemote             = errors.New("no remote configured, add a remote first")
	ErrConfirmationRequired = errors.New("confirmation required")
)
