package patient

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "01/01/1990", "1990-13-01", "1990-02-30", "1990-01-01T00:00:00Z"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestPatient_View(t *testing.T) {
	id := uuid.New()
	p := &Patient{
		ID:             id,
		Name:           "Ann",
		Email:          "ann@x.com",
		Address:        "1 Rd",
		DateOfBirth:    time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		RegisteredDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, View{
		ID:          id.String(),
		Name:        "Ann",
		Email:       "ann@x.com",
		Address:     "1 Rd",
		DateOfBirth: "1990-01-01",
	}, p.View())
}

func TestPatient_ApplyDetailsKeepsIdentity(t *testing.T) {
	id := uuid.New()
	registered := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	p := &Patient{ID: id, Name: "Ann", RegisteredDate: registered}

	dob := time.Date(1991, time.March, 4, 0, 0, 0, 0, time.UTC)
	p.ApplyDetails("Ann B", "annb@x.com", "2 Rd", dob)

	assert.Equal(t, id, p.ID)
	assert.Equal(t, registered, p.RegisteredDate)
	assert.Equal(t, "Ann B", p.Name)
	assert.Equal(t, "annb@x.com", p.Email)
	assert.Equal(t, "2 Rd", p.Address)
	assert.Equal(t, dob, p.DateOfBirth)
}

func TestViews_EmptyIsNotNil(t *testing.T) {
	v := Views(nil)
	assert.NotNil(t, v)
	assert.Empty(t, v)
}
