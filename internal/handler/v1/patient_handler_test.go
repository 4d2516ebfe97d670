package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/repository/memory"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/service"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubService struct {
	err error
}

func (s stubService) ListPatients(context.Context) ([]patient.View, error) { return nil, s.err }

func (s stubService) CreatePatient(context.Context, patient.Input) (*patient.View, error) {
	return nil, s.err
}

func (s stubService) UpdatePatient(context.Context, uuid.UUID, patient.Input) (*patient.View, error) {
	return nil, s.err
}

func (s stubService) DeletePatient(context.Context, uuid.UUID) error { return s.err }

func newRouter(svc PatientService, ready map[string]ReadinessCheck) *gin.Engine {
	return NewRouter(RouterConfig{
		Patients: svc,
		Log:      zap.NewNop(),
		Metrics:  metrics.NewCollector("patient-service", prometheus.NewRegistry()),
		Ready:    ready,
	})
}

func newTestAPI() *gin.Engine {
	svc := service.NewPatientService(memory.NewPatientRepository(), zap.NewNop())
	return newRouter(svc, nil)
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ann() map[string]string {
	return map[string]string{
		"name":           "Ann",
		"email":          "ann@x.com",
		"address":        "1 Rd",
		"dateOfBirth":    "1990-01-01",
		"registeredDate": "2024-01-01",
	}
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) patient.View {
	t.Helper()
	var resp APIResponse[patient.View]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestPatientAPI_Lifecycle(t *testing.T) {
	r := newTestAPI()

	w := do(t, r, http.MethodPost, "/api/v1/patients", ann())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decodeView(t, w)
	assert.Equal(t, "1990-01-01", created.DateOfBirth)
	assert.NotEmpty(t, created.ID)

	w = do(t, r, http.MethodPost, "/api/v1/patients", ann())
	assert.Equal(t, http.StatusConflict, w.Code)

	update := ann()
	update["address"] = "2 Rd"
	delete(update, "registeredDate")
	w = do(t, r, http.MethodPut, "/api/v1/patients/"+created.ID, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2 Rd", decodeView(t, w).Address)

	w = do(t, r, http.MethodGet, "/api/v1/patients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list APIResponse[[]patient.View]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)

	w = do(t, r, http.MethodDelete, "/api/v1/patients/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodDelete, "/api/v1/patients/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/patients", nil)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestPatientAPI_ValidationErrors(t *testing.T) {
	r := newTestAPI()

	in := ann()
	in["email"] = "nope"
	delete(in, "registeredDate")
	w := do(t, r, http.MethodPost, "/api/v1/patients", in)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{
		"email must be a valid email address",
		"registeredDate is required",
	}, resp.Fields)
}

func TestPatientAPI_BadRequests(t *testing.T) {
	r := newTestAPI()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, "/api/v1/patients/not-a-uuid", ann())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodDelete, "/api/v1/patients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, "/api/v1/patients/"+uuid.NewString(), ann())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRespondServiceError_Mapping(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{
			name: "store unavailable",
			err:  fmt.Errorf("listing: %w", patient.ErrStoreUnavailable),
			code: http.StatusServiceUnavailable,
			body: `{"error":"patient store unavailable","code":"STORE_UNAVAILABLE"}`,
		},
		{
			name: "billing",
			err:  &service.BillingError{PatientID: id, Err: errors.New("circuit open")},
			code: http.StatusBadGateway,
			body: fmt.Sprintf(`{"error":"patient saved but billing account could not be created","code":"BILLING_UNAVAILABLE","details":{"patient_id":%q}}`, id),
		},
		{
			name: "not found",
			err:  fmt.Errorf("finding: %w", patient.ErrPatientNotFound),
			code: http.StatusNotFound,
			body: `{"error":"patient not found","code":"NOT_FOUND"}`,
		},
		{
			name: "unknown",
			err:  errors.New("surprise"),
			code: http.StatusInternalServerError,
			body: `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(stubService{err: tt.err}, nil)

			w := do(t, r, http.MethodPost, "/api/v1/patients", ann())
			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestOpsEndpoints(t *testing.T) {
	healthy := newRouter(stubService{}, map[string]ReadinessCheck{
		"store": func(context.Context) error { return nil },
	})
	w := do(t, healthy, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, healthy, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"checks":{"store":"ok"}}`, w.Body.String())

	unhealthy := newRouter(stubService{}, map[string]ReadinessCheck{
		"store": func(context.Context) error { return errors.New("connection refused") },
	})
	w = do(t, unhealthy, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"checks":{"store":"connection refused"}}`, w.Body.String())

	w = do(t, healthy, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, healthy, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_AuthAndRateLimit(t *testing.T) {
	r := NewRouter(RouterConfig{
		Patients:  stubService{},
		Log:       zap.NewNop(),
		Metrics:   metrics.NewCollector("patient-service", prometheus.NewRegistry()),
		RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1, BurstSize: 1},
		Verifier:  authVerifier(),
	})

	w := do(t, r, http.MethodGet, "/api/v1/patients", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/patients", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func authVerifier() *auth.Verifier {
	return auth.NewVerifier(config.AuthConfig{Enabled: true, Secret: "0123456789abcdef0123456789abcdef"})
}
