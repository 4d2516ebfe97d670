package v1

import (
	"errors"
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	var billErr *service.BillingError
	if errors.As(err, &billErr) {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "patient saved but billing account could not be created",
			Code:    "BILLING_UNAVAILABLE",
			Details: map[string]string{"patient_id": billErr.PatientID.String()},
		})
		return
	}

	switch {
	case errors.Is(err, patient.ErrPatientNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: patient.ErrPatientNotFound.Error(), Code: "NOT_FOUND"})

	case errors.Is(err, patient.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: patient.ErrEmailAlreadyExists.Error(), Code: "DUPLICATE_EMAIL"})

	case errors.Is(err, patient.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "patient store unavailable", Code: "STORE_UNAVAILABLE"})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}

	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}
