package v1

import (
	"context"
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/domain/patient"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PatientService is the orchestrator as seen by the HTTP layer.
type PatientService interface {
	ListPatients(ctx context.Context) ([]patient.View, error)
	CreatePatient(ctx context.Context, in patient.Input) (*patient.View, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, in patient.Input) (*patient.View, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error
}

type PatientHandler struct {
	svc PatientService
}

func NewPatientHandler(svc PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

func (h *PatientHandler) Register(rg *gin.RouterGroup) {
	patients := rg.Group("/patients")
	patients.GET("", h.List)
	patients.POST("", h.Create)
	patients.PUT("/:id", h.Update)
	patients.DELETE("/:id", h.Delete)
}

func (h *PatientHandler) List(c *gin.Context) {
	views, err := h.svc.ListPatients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, views)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var in patient.Input
	if !bindJSON(c, &in) {
		return
	}

	view, err := h.svc.CreatePatient(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	// Existing clients expect 200 on create.
	respondOK(c, view)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var in patient.Input
	if !bindJSON(c, &in) {
		return
	}

	view, err := h.svc.UpdatePatient(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, view)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePatient(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
