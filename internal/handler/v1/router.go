package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type RouterConfig struct {
	Patients  PatientService
	Log       *zap.Logger
	Metrics   *metrics.Collector
	RateLimit config.RateLimitConfig
	// Verifier enables bearer token checks on the patient API when set.
	Verifier *auth.Verifier
	Ready    map[string]ReadinessCheck
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(cfg.Log),
		middleware.Logger(cfg.Log),
		middleware.Metrics(cfg.Metrics),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", readiness(cfg.Ready))
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.NewRateLimiter(cfg.RateLimit).Handler())
	}
	if cfg.Verifier != nil {
		api.Use(middleware.Authenticate(cfg.Verifier))
	}
	NewPatientHandler(cfg.Patients).Register(api)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "route not found"})
	})

	return r
}

func readiness(checks map[string]ReadinessCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}
		c.JSON(status, gin.H{"checks": results})
	}
}
