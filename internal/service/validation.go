package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/domain/patient"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type validatedInput struct {
	name           string
	email          string
	address        string
	dateOfBirth    time.Time
	registeredDate time.Time
}

type inputValidator struct {
	validate *validator.Validate
}

func newInputValidator() *inputValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &inputValidator{validate: v}
}

// check validates in and parses its dates. registeredDate is only required
// and parsed when requireRegistered is set.
func (v *inputValidator) check(in patient.Input, requireRegistered bool) (validatedInput, error) {
	var fields []string

	if err := v.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return validatedInput{}, err
		}
		for _, fe := range verrs {
			fields = append(fields, describe(fe))
		}
	}

	out := validatedInput{name: in.Name, email: in.Email, address: in.Address}

	if strings.TrimSpace(in.DateOfBirth) != "" {
		dob, err := patient.ParseDate(in.DateOfBirth)
		if err != nil {
			fields = append(fields, "dateOfBirth must be in YYYY-MM-DD format")
		}
		out.dateOfBirth = dob
	}

	// registeredDate is fixed at creation; updates never read it.
	if requireRegistered {
		if strings.TrimSpace(in.RegisteredDate) == "" {
			fields = append(fields, "registeredDate is required")
		} else {
			rd, err := patient.ParseDate(in.RegisteredDate)
			if err != nil {
				fields = append(fields, "registeredDate must be in YYYY-MM-DD format")
			}
			out.registeredDate = rd
		}
	}

	if len(fields) > 0 {
		return validatedInput{}, &ValidationError{Fields: fields}
	}
	return out, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
