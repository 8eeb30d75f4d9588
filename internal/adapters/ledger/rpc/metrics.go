package rpc

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	outcomeOK             = "ok"
	outcomeRPCError       = "rpc_error"
	outcomeHTTPError      = "http_error"
	outcomeTransportError = "transport_error"
)

// Metrics counts ledger calls by method and outcome. A nil *Metrics records
// nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lp",
			Subsystem: "ledger",
			Name:      "requests_total",
			Help:      "Ledger JSON-RPC calls by method and outcome.",
		}, []string{"method", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lp",
			Subsystem: "ledger",
			Name:      "request_duration_seconds",
			Help:      "Ledger JSON-RPC call latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
	}

	for _, collector := range []prometheus.Collector{m.requests, m.latency} {
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("register ledger metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) observe(method string, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, outcome).Inc()
	m.latency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// WriteText writes every metric family gathered from gatherer in the
// Prometheus text exposition format.
func WriteText(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
