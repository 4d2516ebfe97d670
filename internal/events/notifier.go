package events

import (
	"context"
	"sync"
	"time"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
	"github.com/dmehra2102/prod-golang-projects/patient-service/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Publisher writes a single event to the stream.
type Publisher interface {
	Publish(ctx context.Context, e PatientEvent) error
	Close() error
}

type queuedEvent struct {
	event PatientEvent
	link  trace.Link
}

// Notifier publishes patient events in the background. Notify never blocks
// the caller and publish failures are logged, never returned.
type Notifier struct {
	pub     Publisher
	log     *zap.Logger
	metrics *metrics.Collector
	tracer  trace.Tracer
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan queuedEvent
	wg     sync.WaitGroup
}

func NewNotifier(pub Publisher, cfg config.EventsConfig, log *zap.Logger, m *metrics.Collector) *Notifier {
	n := &Notifier{
		pub:     pub,
		log:     log.Named("events"),
		metrics: m,
		tracer:  otel.Tracer("patient-service/events"),
		timeout: cfg.PublishTimeout,
		queue:   make(chan queuedEvent, cfg.BufferSize),
	}

	for range cfg.Workers {
		n.wg.Add(1)
		go n.worker()
	}
	return n
}

// Notify enqueues e for publishing. If the buffer is full or the notifier has
// been shut down, the event is dropped.
func (n *Notifier) Notify(ctx context.Context, e PatientEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.drop(e, "notifier shut down")
		return
	}

	select {
	case n.queue <- queuedEvent{event: e, link: trace.LinkFromContext(ctx)}:
		n.metrics.EventsQueueDepthGauge.Set(float64(len(n.queue)))
	default:
		n.drop(e, "event buffer full")
	}
}

// Shutdown stops intake and waits for queued events to be published or for
// ctx to expire, whichever comes first.
func (n *Notifier) Shutdown(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		n.log.Warn("event notifier shutdown timed out; queued events may be lost",
			zap.Int("pending", len(n.queue)),
		)
		return ctx.Err()
	}
}

func (n *Notifier) drop(e PatientEvent, reason string) {
	n.metrics.EventsDroppedTotal.Inc()
	n.log.Warn("dropping patient event",
		zap.String("reason", reason),
		zap.String("event_type", string(e.Type)),
		zap.String("patient_id", e.PatientID.String()),
	)
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for q := range n.queue {
		n.metrics.EventsQueueDepthGauge.Set(float64(len(n.queue)))
		n.publish(q)
	}
}

func (n *Notifier) publish(q queuedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	ctx, span := n.tracer.Start(ctx, "events.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithLinks(q.link),
		trace.WithAttributes(
			attribute.String("event.type", string(q.event.Type)),
			attribute.String("patient.id", q.event.PatientID.String()),
		),
	)
	defer span.End()

	start := time.Now()
	err := n.pub.Publish(ctx, q.event)
	n.metrics.EventPublishDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		n.metrics.EventsPublishedTotal.WithLabelValues(string(q.event.Type), "failure").Inc()
		n.log.Error("failed to publish patient event",
			zap.String("event_type", string(q.event.Type)),
			zap.String("patient_id", q.event.PatientID.String()),
			zap.Error(err),
		)
		return
	}

	n.metrics.EventsPublishedTotal.WithLabelValues(string(q.event.Type), "success").Inc()
	n.log.Debug("patient event published",
		zap.String("event_type", string(q.event.Type)),
		zap.String("patient_id", q.event.PatientID.String()),
	)
}
