package usecase

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Services wrap
// them with context via fmt.Errorf("%w: ...").
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrConflict         = errors.New("conflict")
)
