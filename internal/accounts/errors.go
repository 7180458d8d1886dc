package accounts

import "errors"

var (
	ErrNoAccount       = errors.New("no hosting account configured")
	ErrInvalidAccount  = errors.New("invalid hosting account")
	ErrUnknownProvider = errors.New("unknown hosting provider")
)
