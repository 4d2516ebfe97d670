package billing

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	pb "github.com/dmehra2102/prod-golang-projects/patient-service/gen/billing/v1"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type handlerFunc func(ctx context.Context, req *pb.BillingRequest) (*pb.BillingResponse, error)

type billingServer struct {
	pb.UnimplementedBillingServiceServer
	handle handlerFunc
}

func (s *billingServer) CreateBillingAccount(ctx context.Context, req *pb.BillingRequest) (*pb.BillingResponse, error) {
	return s.handle(ctx, req)
}

// startBillingServer serves BillingService over an in-memory listener and
// returns a connection to it.
func startBillingServer(t *testing.T, h handlerFunc) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	pb.RegisterBillingServiceServer(srv, &billingServer{handle: h})

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func testConfig() config.BillingConfig {
	return config.BillingConfig{
		Timeout:         2 * time.Second,
		AttemptTimeout:  200 * time.Millisecond,
		MaxAttempts:     3,
		InitialBackoff:  time.Millisecond,
		BreakerFailures: 5,
		BreakerTimeout:  time.Minute,
	}
}

func newTestClient(t *testing.T, cfg config.BillingConfig, h handlerFunc) (*Client, *metrics.Collector) {
	t.Helper()
	m := metrics.NewCollector("patient-service", prometheus.NewRegistry())
	return NewClient(startBillingServer(t, h), cfg, zap.NewNop(), m), m
}

func TestRegisterAccount_Success(t *testing.T) {
	id := uuid.New()
	var got *pb.BillingRequest

	c, m := newTestClient(t, testConfig(), func(_ context.Context, req *pb.BillingRequest) (*pb.BillingResponse, error) {
		got = req
		return &pb.BillingResponse{AccountId: "12345", Status: "ACTIVE"}, nil
	})

	err := c.RegisterAccount(context.Background(), id, "Ann", "ann@x.com")
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, id.String(), got.GetPatientId())
	assert.Equal(t, "Ann", got.GetName())
	assert.Equal(t, "ann@x.com", got.GetEmail())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BillingRequestsTotal.WithLabelValues("success")))
}

func TestRegisterAccount_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, testConfig(), func(context.Context, *pb.BillingRequest) (*pb.BillingResponse, error) {
		if calls.Add(1) < 3 {
			return nil, status.Error(codes.Unavailable, "billing warming up")
		}
		return &pb.BillingResponse{AccountId: "12345", Status: "ACTIVE"}, nil
	})

	require.NoError(t, c.RegisterAccount(context.Background(), uuid.New(), "Ann", "ann@x.com"))
	assert.Equal(t, int32(3), calls.Load())
}

func TestRegisterAccount_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	c, m := newTestClient(t, testConfig(), func(context.Context, *pb.BillingRequest) (*pb.BillingResponse, error) {
		calls.Add(1)
		return nil, status.Error(codes.Unavailable, "down")
	})

	err := c.RegisterAccount(context.Background(), uuid.New(), "Ann", "ann@x.com")
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(err))
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BillingRequestsTotal.WithLabelValues("failure")))
}

func TestRegisterAccount_PermanentErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, testConfig(), func(context.Context, *pb.BillingRequest) (*pb.BillingResponse, error) {
		calls.Add(1)
		return nil, status.Error(codes.InvalidArgument, "email rejected")
	})

	err := c.RegisterAccount(context.Background(), uuid.New(), "Ann", "ann@x.com")
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRegisterAccount_AttemptTimeoutIsBounded(t *testing.T) {
	cfg := testConfig()
	cfg.AttemptTimeout = 50 * time.Millisecond
	cfg.MaxAttempts = 2

	var calls atomic.Int32
	c, _ := newTestClient(t, cfg, func(ctx context.Context, _ *pb.BillingRequest) (*pb.BillingResponse, error) {
		calls.Add(1)
		<-ctx.Done()
		return nil, status.FromContextError(ctx.Err()).Err()
	})

	start := time.Now()
	err := c.RegisterAccount(context.Background(), uuid.New(), "Ann", "ann@x.com")
	require.Error(t, err)
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
	assert.Equal(t, int32(2), calls.Load())
	assert.Less(t, time.Since(start), cfg.Timeout)
}

func TestRegisterAccount_CircuitOpensAfterConsecutiveFailures(t *testing.T) {
	cfg := testConfig()
	cfg.MaxAttempts = 1
	cfg.BreakerFailures = 2

	var calls atomic.Int32
	c, m := newTestClient(t, cfg, func(context.Context, *pb.BillingRequest) (*pb.BillingResponse, error) {
		calls.Add(1)
		return nil, status.Error(codes.Internal, "boom")
	})

	ctx := context.Background()
	assert.Error(t, c.RegisterAccount(ctx, uuid.New(), "Ann", "ann@x.com"))
	assert.Error(t, c.RegisterAccount(ctx, uuid.New(), "Bob", "bob@x.com"))

	err := c.RegisterAccount(ctx, uuid.New(), "Cid", "cid@x.com")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the billing service")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BillingBreakerOpen))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BillingRequestsTotal.WithLabelValues("rejected")))
}

func TestTransportCredentials(t *testing.T) {
	creds, err := transportCredentials(config.BillingConfig{})
	require.NoError(t, err)
	assert.Equal(t, "insecure", creds.Info().SecurityProtocol)

	_, err = transportCredentials(config.BillingConfig{TLSCAFile: "/does/not/exist.pem"})
	assert.ErrorContains(t, err, "read CA file")
}

func TestCreateBillingAccountPath(t *testing.T) {
	assert.Equal(t, "/BillingService/CreateBillingAccount", pb.BillingService_CreateBillingAccount_FullMethodName)
}
