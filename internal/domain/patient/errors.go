package patient

import "errors"

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrEmailAlreadyExists = errors.New("a patient with this email already exists")
	ErrStoreUnavailable   = errors.New("patient store unavailable")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
)
