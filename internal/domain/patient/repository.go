package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the Patient Store. Implementations own email uniqueness and
// must reject a duplicate at write time even when a prior existence check
// passed. Failures other than the sentinel errors below are wrapped with
// ErrStoreUnavailable.
type Repository interface {
	// FindAll returns every patient record.
	FindAll(ctx context.Context) ([]*Patient, error)

	// ExistsByEmail reports whether any record holds email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByEmailExcludingID reports whether a record other than id holds email.
	ExistsByEmailExcludingID(ctx context.Context, email string, id uuid.UUID) (bool, error)

	// FindByID returns ErrPatientNotFound if no record has the given id.
	FindByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// Save inserts p when p.ID is uuid.Nil (assigning a new id) and overwrites
	// the stored record otherwise. Overwriting an id that is no longer stored
	// returns ErrPatientNotFound; deleted ids are never written back.
	// Returns ErrEmailAlreadyExists on a uniqueness violation.
	Save(ctx context.Context, p *Patient) error

	// DeleteByID removes the record. Returns ErrPatientNotFound if nothing was removed.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
