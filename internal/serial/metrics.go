package serial

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts traffic through a Transceiver
type Metrics struct {
	registry *prometheus.Registry

	txBytes   prometheus.Counter
	rxBytes   prometheus.Counter
	exchanges prometheus.Counter
	errors    prometheus.Counter
	duration  prometheus.Histogram
}

// Stats is a point-in-time copy of the counters
type Stats struct {
	TxBytes   uint64
	RxBytes   uint64
	Exchanges uint64
	Errors    uint64
}

// NewMetrics registers the transceiver metrics on reg, or on a private registry when reg is nil
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: reg,
		txBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctserial_tx_bytes_total",
			Help: "Bytes written to the serial device",
		}),
		rxBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctserial_rx_bytes_total",
			Help: "Bytes read back from the serial device",
		}),
		exchanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctserial_exchanges_total",
			Help: "Send/receive exchanges performed",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctserial_transport_errors_total",
			Help: "Exchanges that failed with a transport error",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ctserial_exchange_duration_seconds",
			Help:    "Wall time of one exchange including settle intervals",
			Buckets: []float64{0.1, 0.2, 0.25, 0.5, 1, 2, 5},
		}),
	}
	reg.MustRegister(m.txBytes, m.rxBytes, m.exchanges, m.errors, m.duration)
	return m
}

// Registry exposes the registry the metrics live on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Snapshot gathers the current counter values
func (m *Metrics) Snapshot() (Stats, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var s Stats
	for _, mf := range families {
		if len(mf.GetMetric()) == 0 {
			continue
		}
		value := uint64(mf.GetMetric()[0].GetCounter().GetValue())
		switch mf.GetName() {
		case "ctserial_tx_bytes_total":
			s.TxBytes = value
		case "ctserial_rx_bytes_total":
			s.RxBytes = value
		case "ctserial_exchanges_total":
			s.Exchanges = value
		case "ctserial_transport_errors_total":
			s.Errors = value
		}
	}
	return s, nil
}
