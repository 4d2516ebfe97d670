package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/events"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// BillingLink registers a freshly created patient with the billing system.
type BillingLink interface {
	RegisterAccount(ctx context.Context, patientID uuid.UUID, name, email string) error
}

// EventNotifier hands patient events to the stream without blocking.
type EventNotifier interface {
	Notify(ctx context.Context, e events.PatientEvent)
}

type Option func(*PatientService)

// WithBilling makes billing registration part of every create.
func WithBilling(b BillingLink) Option {
	return func(s *PatientService) { s.billing = b }
}

// WithEvents emits PATIENT_CREATED after every successful create.
func WithEvents(n EventNotifier) Option {
	return func(s *PatientService) { s.notifier = n }
}

// WithUpdateEvents also emits PATIENT_UPDATED after updates. It has no effect
// without WithEvents.
func WithUpdateEvents() Option {
	return func(s *PatientService) { s.updateEvents = true }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *PatientService) { s.tracer = t }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(s *PatientService) { s.metrics = m }
}

type PatientService struct {
	repo         patient.Repository
	billing      BillingLink
	notifier     EventNotifier
	updateEvents bool
	validator    *inputValidator
	tracer       trace.Tracer
	metrics      *metrics.Collector
	log          *zap.Logger
}

func NewPatientService(repo patient.Repository, log *zap.Logger, opts ...Option) *PatientService {
	s := &PatientService{
		repo:      repo,
		validator: newInputValidator(),
		tracer:    otel.Tracer("patient-service/service"),
		log:       log.Named("patient_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PatientService) ListPatients(ctx context.Context) ([]patient.View, error) {
	ctx, span := s.tracer.Start(ctx, "patient.list")
	defer span.End()

	patients, err := s.repo.FindAll(ctx)
	if err != nil {
		s.fail(span, "list", err)
		return nil, fmt.Errorf("listing patients: %w", err)
	}

	span.SetAttributes(attribute.Int("patient.count", len(patients)))
	s.record("list", "success")
	return patient.Views(patients), nil
}

func (s *PatientService) CreatePatient(ctx context.Context, in patient.Input) (*patient.View, error) {
	ctx, span := s.tracer.Start(ctx, "patient.create")
	defer span.End()

	v, err := s.validator.check(in, true)
	if err != nil {
		s.fail(span, "create", err)
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, v.email)
	if err != nil {
		s.fail(span, "create", err)
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		s.fail(span, "create", patient.ErrEmailAlreadyExists)
		return nil, patient.ErrEmailAlreadyExists
	}

	p := &patient.Patient{
		Name:           v.name,
		Email:          v.email,
		Address:        v.address,
		DateOfBirth:    v.dateOfBirth,
		RegisteredDate: v.registeredDate,
	}
	if err := s.repo.Save(ctx, p); err != nil {
		s.fail(span, "create", err)
		return nil, fmt.Errorf("saving patient: %w", err)
	}
	span.SetAttributes(attribute.String("patient.id", p.ID.String()))
	if s.metrics != nil {
		s.metrics.PatientsCreatedTotal.Inc()
	}

	if s.billing != nil {
		// The record is already persisted; a caller going away must not abort
		// the billing round trip.
		if err := s.billing.RegisterAccount(context.WithoutCancel(ctx), p.ID, p.Name, p.Email); err != nil {
			if s.metrics != nil {
				s.metrics.BillingGapTotal.Inc()
			}
			s.log.Error("patient persisted without billing account",
				zap.String("patient_id", p.ID.String()),
				zap.Error(err),
			)
			bErr := &BillingError{PatientID: p.ID, Err: err}
			s.fail(span, "create", bErr)
			return nil, bErr
		}
	}

	s.notify(ctx, events.PatientCreated, p)

	s.log.Info("patient created", zap.String("patient_id", p.ID.String()))
	s.record("create", "success")
	view := p.View()
	return &view, nil
}

func (s *PatientService) UpdatePatient(ctx context.Context, id uuid.UUID, in patient.Input) (*patient.View, error) {
	ctx, span := s.tracer.Start(ctx, "patient.update", trace.WithAttributes(attribute.String("patient.id", id.String())))
	defer span.End()

	v, err := s.validator.check(in, false)
	if err != nil {
		s.fail(span, "update", err)
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.fail(span, "update", err)
		return nil, fmt.Errorf("finding patient %s: %w", id, err)
	}

	taken, err := s.repo.ExistsByEmailExcludingID(ctx, v.email, id)
	if err != nil {
		s.fail(span, "update", err)
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if taken {
		s.fail(span, "update", patient.ErrEmailAlreadyExists)
		return nil, patient.ErrEmailAlreadyExists
	}

	p.ApplyDetails(v.name, v.email, v.address, v.dateOfBirth)
	if err := s.repo.Save(ctx, p); err != nil {
		s.fail(span, "update", err)
		return nil, fmt.Errorf("saving patient %s: %w", id, err)
	}

	if s.updateEvents {
		s.notify(ctx, events.PatientUpdated, p)
	}

	s.log.Info("patient updated", zap.String("patient_id", id.String()))
	s.record("update", "success")
	view := p.View()
	return &view, nil
}

// DeletePatient removes the patient. Deleting an unknown id fails with
// patient.ErrPatientNotFound, the same as updating one.
func (s *PatientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "patient.delete", trace.WithAttributes(attribute.String("patient.id", id.String())))
	defer span.End()

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.fail(span, "delete", err)
		return fmt.Errorf("deleting patient %s: %w", id, err)
	}

	s.log.Info("patient deleted", zap.String("patient_id", id.String()))
	s.record("delete", "success")
	return nil
}

func (s *PatientService) notify(ctx context.Context, t events.EventType, p *patient.Patient) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, events.PatientEvent{
		PatientID: p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Type:      t,
	})
}

func (s *PatientService) fail(span trace.Span, op string, err error) {
	outcome := outcomeOf(err)
	span.SetStatus(codes.Error, outcome)
	if outcome == "store_error" || outcome == "billing_error" {
		span.RecordError(err)
		s.log.Error("patient operation failed", zap.String("operation", op), zap.Error(err))
	} else {
		s.log.Debug("patient operation rejected", zap.String("operation", op), zap.String("outcome", outcome), zap.Error(err))
	}
	s.record(op, outcome)
}

func (s *PatientService) record(op, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.PatientOperationsTotal.WithLabelValues(op, outcome).Inc()
}

func outcomeOf(err error) string {
	var validErr *ValidationError
	switch {
	case errors.As(err, &validErr):
		return "invalid"
	case errors.Is(err, patient.ErrEmailAlreadyExists):
		return "duplicate"
	case errors.Is(err, patient.ErrPatientNotFound):
		return "not_found"
	case errors.Is(err, ErrBillingUnavailable):
		return "billing_error"
	default:
		return "store_error"
	}
}
