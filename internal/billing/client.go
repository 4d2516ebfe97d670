package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	pb "github.com/dmehra2102/prod-golang-projects/patient-service/gen/billing/v1"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/metrics"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrCircuitOpen is returned without contacting the billing service while the
// circuit breaker is open.
var ErrCircuitOpen = errors.New("billing circuit breaker is open")

// Client registers patients with the billing service over gRPC. A call is
// bounded by cfg.Timeout overall and cfg.AttemptTimeout per attempt; transient
// failures are retried up to cfg.MaxAttempts times.
type Client struct {
	billing pb.BillingServiceClient
	closer  func() error
	breaker *gobreaker.CircuitBreaker[*pb.BillingResponse]
	cfg     config.BillingConfig
	log     *zap.Logger
	metrics *metrics.Collector
}

// Dial creates a client connection to cfg.Address. The connection is
// established lazily on the first call.
func Dial(cfg config.BillingConfig, log *zap.Logger, m *metrics.Collector, opts ...grpc.DialOption) (*Client, error) {
	creds, err := transportCredentials(cfg)
	if err != nil {
		return nil, fmt.Errorf("billing transport credentials: %w", err)
	}

	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, opts...)
	conn, err := grpc.NewClient(cfg.Address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating billing client for %s: %w", cfg.Address, err)
	}

	c := NewClient(conn, cfg, log, m)
	c.closer = conn.Close
	return c, nil
}

func NewClient(conn grpc.ClientConnInterface, cfg config.BillingConfig, log *zap.Logger, m *metrics.Collector) *Client {
	log = log.Named("billing")
	c := &Client{
		billing: pb.NewBillingServiceClient(conn),
		cfg:     cfg,
		log:     log,
		metrics: m,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*pb.BillingResponse](gobreaker.Settings{
		Name:        "billing",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return cfg.BreakerFailures > 0 && counts.ConsecutiveFailures >= uint32(cfg.BreakerFailures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("billing circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if to == gobreaker.StateClosed {
				m.BillingBreakerOpen.Set(0)
			} else {
				m.BillingBreakerOpen.Set(1)
			}
		},
	})

	return c
}

// RegisterAccount creates the billing account for a newly persisted patient.
func (c *Client) RegisterAccount(ctx context.Context, patientID uuid.UUID, name, email string) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req := &pb.BillingRequest{PatientId: patientID.String(), Name: name, Email: email}
	resp, err := c.breaker.Execute(func() (*pb.BillingResponse, error) {
		return c.registerWithRetry(ctx, req)
	})
	c.metrics.BillingRequestDuration.Observe(time.Since(start).Seconds())

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.metrics.BillingRequestsTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("registering billing account for patient %s: %w", patientID, ErrCircuitOpen)
	}
	if err != nil {
		c.metrics.BillingRequestsTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("registering billing account for patient %s: %w", patientID, err)
	}

	c.metrics.BillingRequestsTotal.WithLabelValues("success").Inc()
	c.log.Info("billing account registered",
		zap.String("patient_id", patientID.String()),
		zap.String("account_id", resp.GetAccountId()),
		zap.String("status", resp.GetStatus()),
	)
	return nil
}

func (c *Client) registerWithRetry(ctx context.Context, req *pb.BillingRequest) (*pb.BillingResponse, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialBackoff

	attempt := 0
	return backoff.Retry(ctx, func() (*pb.BillingResponse, error) {
		attempt++
		resp, err := c.invoke(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !isTransient(err) {
			return nil, backoff.Permanent(err)
		}
		c.log.Warn("billing attempt failed",
			zap.String("patient_id", req.GetPatientId()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return nil, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(c.cfg.MaxAttempts)),
	)
}

func (c *Client) invoke(ctx context.Context, req *pb.BillingRequest) (*pb.BillingResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.AttemptTimeout)
	defer cancel()

	return c.billing.CreateBillingAccount(ctx, req)
}

func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

func isTransient(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return true
	}
	return false
}
