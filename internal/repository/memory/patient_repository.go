package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/domain/patient"
	"github.com/google/uuid"
)

// PatientRepository keeps patients in a map. The email uniqueness check and
// the write happen under the same lock, so concurrent creates with the same
// email cannot both succeed.
type PatientRepository struct {
	mu       sync.RWMutex
	patients map[uuid.UUID]*patient.Patient
	byEmail  map[string]uuid.UUID
}

var _ patient.Repository = (*PatientRepository)(nil)

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{
		patients: make(map[uuid.UUID]*patient.Patient),
		byEmail:  make(map[string]uuid.UUID),
	}
}

func (r *PatientRepository) FindAll(_ context.Context) ([]*patient.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*patient.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		cp := *p
		result = append(result, &cp)
	}
	// Map iteration order is random; keep listings stable.
	slices.SortFunc(result, func(a, b *patient.Patient) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return result, nil
}

func (r *PatientRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *PatientRepository) ExistsByEmailExcludingID(_ context.Context, email string, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.byEmail[email]
	return ok && owner != id, nil
}

func (r *PatientRepository) FindByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *PatientRepository) Save(_ context.Context, p *patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var existing *patient.Patient
	if p.ID != uuid.Nil {
		var ok bool
		if existing, ok = r.patients[p.ID]; !ok {
			return patient.ErrPatientNotFound
		}
	}

	if owner, ok := r.byEmail[p.Email]; ok && owner != p.ID {
		return patient.ErrEmailAlreadyExists
	}

	now := time.Now().UTC()
	if existing == nil {
		p.ID = uuid.New()
		p.CreatedAt = now
	} else {
		p.CreatedAt = existing.CreatedAt
		delete(r.byEmail, existing.Email)
	}
	p.UpdatedAt = now

	cp := *p
	r.patients[p.ID] = &cp
	r.byEmail[p.Email] = p.ID
	return nil
}

func (r *PatientRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok {
		return patient.ErrPatientNotFound
	}
	delete(r.byEmail, p.Email)
	delete(r.patients, id)
	return nil
}

// Len returns the number of stored patients.
func (r *PatientRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patients)
}
