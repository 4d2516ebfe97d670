package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrBillingUnavailable classifies every billing failure during create.
var ErrBillingUnavailable = errors.New("billing account could not be created")

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// BillingError reports a create whose store write succeeded but whose billing
// registration failed. The patient identified by PatientID exists.
type BillingError struct {
	PatientID uuid.UUID
	Err       error
}

func (e *BillingError) Error() string {
	return fmt.Sprintf("patient %s saved but %s: %v", e.PatientID, ErrBillingUnavailable, e.Err)
}

func (e *BillingError) Unwrap() error {
	return e.Err
}

func (e *BillingError) Is(target error) bool {
	return target == ErrBillingUnavailable
}
