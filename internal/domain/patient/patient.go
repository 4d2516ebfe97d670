package patient

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the ISO-8601 calendar date format used on the wire.
const DateLayout = "2006-01-02"

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name    string `gorm:"column:name;type:varchar(100);not null"`
	Email   string `gorm:"column:email;type:varchar(255);uniqueIndex:uq_patients_email;not null"`
	Address string `gorm:"column:address;type:text;not null"`

	DateOfBirth    time.Time `gorm:"column:date_of_birth;type:date;not null"`
	RegisteredDate time.Time `gorm:"column:registered_date;type:date;not null"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

// Input is the validated intent handed to the orchestrator for create and
// update. Dates are ISO-8601 strings; RegisteredDate is only read on create.
type Input struct {
	Name           string `json:"name" validate:"notblank,max=100"`
	Email          string `json:"email" validate:"notblank,email"`
	Address        string `json:"address" validate:"notblank"`
	DateOfBirth    string `json:"dateOfBirth" validate:"notblank"`
	RegisteredDate string `json:"registeredDate"`
}

// View is the external representation of a patient.
type View struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
}

func (p *Patient) View() View {
	return View{
		ID:          p.ID.String(),
		Name:        p.Name,
		Email:       p.Email,
		Address:     p.Address,
		DateOfBirth: p.DateOfBirth.Format(DateLayout),
	}
}

// ApplyDetails overwrites the mutable fields. ID and RegisteredDate are left untouched.
func (p *Patient) ApplyDetails(name, email, address string, dateOfBirth time.Time) {
	p.Name = name
	p.Email = email
	p.Address = address
	p.DateOfBirth = dateOfBirth
}

// ParseDate parses an ISO-8601 calendar date into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func Views(patients []*Patient) []View {
	views := make([]View, 0, len(patients))
	for _, p := range patients {
		views = append(views, p.View())
	}
	return views
}
