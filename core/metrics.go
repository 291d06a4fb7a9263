package core

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes used as the "outcome" label.
const (
	OutcomeOK             = "ok"
	OutcomeHTTPError      = "http_error"
	OutcomeEnvelopeError  = "envelope_error"
	OutcomeTransportError = "transport_error"
)

// clientMetrics holds the collectors registered for one session.
type clientMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// newClientMetrics registers the request collectors on reg. A nil reg yields
// nil metrics and every observe call becomes a no-op. Collectors already
// registered by another session on the same registerer are reused.
func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	if reg == nil {
		return nil, nil
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_client_requests_total",
		Help: "Requests sent to the admin backend, by verb, resource and outcome.",
	}, []string{"verb", "resource", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_client_request_duration_seconds",
		Help:    "Latency of requests sent to the admin backend.",
		Buckets: prometheus.DefBuckets,
	}, []string{"verb", "resource"})

	var err error
	if requests, err = registerOrReuse(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = registerOrReuse(reg, duration); err != nil {
		return nil, err
	}
	return &clientMetrics{requests: requests, duration: duration}, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *clientMetrics) observe(verb Verb, resource, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(verb.String(), resource, outcome).Inc()
	m.duration.WithLabelValues(verb.String(), resource).Observe(time.Since(started).Seconds())
}

// outcomeOf classifies err for the outcome label.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case IsApiError(err):
		return OutcomeHTTPError
	case IsEnvelopeError(err):
		return OutcomeEnvelopeError
	default:
		return OutcomeTransportError
	}
}
