// Package metrics exposes the service's Prometheus collectors. All recording
// methods are safe to call on a nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solarverify"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	grades             *prometheus.CounterVec
	compositeScore     prometheus.Histogram
	emails             *prometheus.CounterVec
	tokenVerifications *prometheus.CounterVec
	tokensIssued       prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		grades: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_grades_total",
			Help:      "Graded quotes by letter grade.",
		}, []string{"grade"}),
		compositeScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_composite_score",
			Help:      "Distribution of composite quote scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		emails: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Outbound emails by kind and outcome.",
		}, []string{"kind", "outcome"}),
		tokenVerifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_verifications_total",
			Help:      "Magic-link verifications by outcome.",
		}, []string{"outcome"}),
		tokensIssued: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Magic-link tokens issued.",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

func (m *Metrics) RecordGrade(grade string, composite float64) {
	if m == nil {
		return
	}
	m.grades.WithLabelValues(grade).Inc()
	m.compositeScore.Observe(composite)
}

func (m *Metrics) RecordEmail(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	m.emails.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) RecordTokenIssued() {
	if m == nil {
		return
	}
	m.tokensIssued.Inc()
}

// RecordTokenVerification takes "verified" or a rejection reason.
func (m *Metrics) RecordTokenVerification(outcome string) {
	if m == nil {
		return
	}
	m.tokenVerifications.WithLabelValues(outcome).Inc()
}
