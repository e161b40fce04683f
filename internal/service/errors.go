package service

import "errors"

// Business-rule failures are plain sentinel errors so handlers can map them
// to statuses with errors.Is. Store failures are anything not wrapping one
// of these.
var (
	ErrValidation   = errors.New("validation")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
)
