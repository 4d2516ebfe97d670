package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	PatientsCreatedTotal   prometheus.Counter
	PatientOperationsTotal *prometheus.CounterVec

	BillingRequestsTotal   *prometheus.CounterVec
	BillingRequestDuration prometheus.Histogram
	BillingBreakerOpen     prometheus.Gauge
	// BillingGapTotal counts creates that persisted a patient but failed to
	// register the billing account.
	BillingGapTotal prometheus.Counter

	EventsPublishedTotal  *prometheus.CounterVec
	EventPublishDuration  prometheus.Histogram
	EventsDroppedTotal    prometheus.Counter
	EventsQueueDepthGauge prometheus.Gauge
}

// NewCollector registers all service metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() so collectors never clash.
func NewCollector(serviceName string, reg prometheus.Registerer) *Collector {
	namespace := strings.ReplaceAll(serviceName, "-", "_")
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		PatientsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "patients",
			Name:      "created_total",
			Help:      "Total number of patient records persisted by create.",
		}),

		PatientOperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "patients",
			Name:      "operations_total",
			Help:      "Orchestrator operations by operation and outcome.",
		}, []string{"operation", "outcome"}),

		BillingRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "requests_total",
			Help:      "Billing account registrations by outcome.",
		}, []string{"outcome"}),

		BillingRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "request_duration_seconds",
			Help:      "Billing registration latency including retries.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}),

		BillingBreakerOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "circuit_open",
			Help:      "1 while the billing circuit breaker is open or half-open.",
		}),

		BillingGapTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "consistency_gap_total",
			Help:      "Patients persisted without a billing account. Alert if non-zero.",
		}),

		EventsPublishedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Patient events handed to the stream by event type and outcome.",
		}, []string{"event_type", "outcome"}),

		EventPublishDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "publish_duration_seconds",
			Help:      "Event publish latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		}),

		EventsDroppedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "dropped_total",
			Help:      "Events dropped due to a full buffer or shutdown. Alert if non-zero.",
		}),

		EventsQueueDepthGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "queue_depth",
			Help:      "Events waiting to be published.",
		}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
