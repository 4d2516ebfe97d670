package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/billing"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/events"
	v1 "github.com/dmehra2102/prod-golang-projects/patient-service/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/repository/memory"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/repository/postgres"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/service"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/tracer"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "patient-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log, cfg.App)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(ctx, cfg.Tracing, cfg.App)
	if err != nil {
		return fmt.Errorf("initialising tracer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	m := metrics.NewCollector(cfg.App.Name, prometheus.DefaultRegisterer)
	ready := map[string]v1.ReadinessCheck{}

	var repo patient.Repository
	switch cfg.Database.Driver {
	case config.StoreDriverMemory:
		log.Warn("using in-memory patient store; data is lost on restart")
		repo = memory.NewPatientRepository()
	default:
		db, err := database.Connect(cfg.Database, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(db); err != nil {
				log.Warn("closing database failed", zap.Error(err))
			}
		}()
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(db, log); err != nil {
				return err
			}
		}
		ready["store"] = func(ctx context.Context) error { return database.Ping(ctx, db) }
		repo = postgres.NewPatientRepository(db)
	}

	opts := []service.Option{service.WithMetrics(m)}

	if cfg.Features.Billing {
		bc, err := billing.Dial(cfg.Billing, log, m)
		if err != nil {
			return err
		}
		defer func() { _ = bc.Close() }()
		opts = append(opts, service.WithBilling(bc))
		log.Info("billing link enabled", zap.String("address", cfg.Billing.Address))
	}

	if cfg.Features.Events {
		pub, err := newPublisher(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := pub.Close(); err != nil {
				log.Warn("closing event publisher failed", zap.Error(err))
			}
		}()

		notifier := events.NewNotifier(pub, cfg.Events, log, m)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Events.ShutdownTimeout)
			defer cancel()
			if err := notifier.Shutdown(shutdownCtx); err != nil {
				log.Warn("event notifier did not drain", zap.Error(err))
			}
		}()

		opts = append(opts, service.WithEvents(notifier))
		if cfg.Features.UpdateEvents {
			opts = append(opts, service.WithUpdateEvents())
		}
		log.Info("event notifier enabled",
			zap.String("client", string(cfg.Kafka.Client)),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	svc := service.NewPatientService(repo, log, opts...)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	routerCfg := v1.RouterConfig{
		Patients:  svc,
		Log:       log,
		Metrics:   m,
		RateLimit: cfg.RateLimit,
		Ready:     ready,
	}
	if cfg.Auth.Enabled {
		routerCfg.Verifier = auth.NewVerifier(cfg.Auth)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      v1.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	log.Info("http server stopped")
	return nil
}

// newPublisher builds the Kafka publisher selected by KAFKA_CLIENT and makes
// sure the topic exists.
func newPublisher(cfg *config.Config, log *zap.Logger) (events.Publisher, error) {
	sc, err := events.NewSaramaConfig(cfg.Kafka, cfg.Events.PublishTimeout)
	if err != nil {
		return nil, err
	}

	if cfg.Kafka.EnsureTopic {
		if err := events.EnsureTopic(cfg.Kafka, sc, log); err != nil {
			return nil, err
		}
	}

	if cfg.Kafka.Client == config.KafkaClientKafkaGo {
		return events.NewWriterPublisher(cfg.Kafka, cfg.Events.PublishTimeout), nil
	}
	return events.DialSarama(cfg.Kafka, sc)
}
