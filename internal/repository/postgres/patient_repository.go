package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/domain/patient"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PatientRepository is the gorm-backed Patient Store. The unique index on
// email is the authoritative uniqueness check; the DB must be opened with
// TranslateError so violations surface as gorm.ErrDuplicatedKey.
type PatientRepository struct {
	db *gorm.DB
}

var _ patient.Repository = (*PatientRepository)(nil)

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) FindAll(ctx context.Context) ([]*patient.Patient, error) {
	var patients []*patient.Patient
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&patients).Error; err != nil {
		return nil, unavailable("listing patients", err)
	}
	return patients, nil
}

func (r *PatientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("email = ?", email).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, unavailable("checking email", err)
	}
	return count > 0, nil
}

func (r *PatientRepository) ExistsByEmailExcludingID(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("email = ? AND id <> ?", email, id).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, unavailable("checking email", err)
	}
	return count > 0, nil
}

func (r *PatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, unavailable("finding patient", err)
	}
	return &p, nil
}

func (r *PatientRepository) Save(ctx context.Context, p *patient.Patient) error {
	db := r.db.WithContext(ctx)

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
		if err := db.Create(p).Error; err != nil {
			p.ID = uuid.Nil
			return saveError(err)
		}
		return nil
	}

	// Updates, unlike db.Save, never falls back to INSERT when no row matches.
	result := db.Model(p).Select("*").Omit("created_at").Updates(p)
	if result.Error != nil {
		return saveError(result.Error)
	}
	if result.RowsAffected == 0 {
		return patient.ErrPatientNotFound
	}
	return nil
}

func saveError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return patient.ErrEmailAlreadyExists
	}
	return unavailable("saving patient", err)
}

func (r *PatientRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&patient.Patient{}, "id = ?", id)
	if result.Error != nil {
		return unavailable("deleting patient", result.Error)
	}
	if result.RowsAffected == 0 {
		return patient.ErrPatientNotFound
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", patient.ErrStoreUnavailable, op, err)
}
