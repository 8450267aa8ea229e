package keeper

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the matching engine, scoped
// to just the orderbook subsystem this keeper owns.
type Metrics struct {
	OrdersSubmittedTotal *prometheus.CounterVec
	OrdersCancelledTotal *prometheus.CounterVec
	FillsTotal           *prometheus.CounterVec
	FillVolume           *prometheus.CounterVec
	OrderbookDepth       *prometheus.GaugeVec
	SpreadBps            *prometheus.GaugeVec
	SubmitLatencyMs      *prometheus.HistogramVec
}

// newMetrics builds an unregistered Metrics instance. Registration against
// a global or caller-supplied prometheus.Registerer happens at app wiring
// time, not here, so that constructing a Keeper in tests never touches a
// process-global registry.
func newMetrics() *Metrics {
	return &Metrics{
		OrdersSubmittedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "clob",
				Subsystem: "orders",
				Name:      "submitted_total",
				Help:      "Total number of orders submitted",
			},
			[]string{"pair_id", "order_type"},
		),
		OrdersCancelledTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "clob",
				Subsystem: "orders",
				Name:      "cancelled_total",
				Help:      "Total number of orders cancelled",
			},
			[]string{"pair_id"},
		),
		FillsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "clob",
				Subsystem: "fills",
				Name:      "total",
				Help:      "Total number of fills executed",
			},
			[]string{"pair_id"},
		),
		FillVolume: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "clob",
				Subsystem: "fills",
				Name:      "volume",
				Help:      "Total filled quantity, in base-asset FixedScalar units",
			},
			[]string{"pair_id"},
		),
		OrderbookDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "clob",
				Subsystem: "orderbook",
				Name:      "depth",
				Help:      "Number of active price levels",
			},
			[]string{"pair_id", "side"},
		),
		SpreadBps: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "clob",
				Subsystem: "orderbook",
				Name:      "spread_bps",
				Help:      "Bid-ask spread in basis points",
			},
			[]string{"pair_id"},
		),
		SubmitLatencyMs: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "clob",
				Subsystem: "orders",
				Name:      "submit_latency_ms",
				Help:      "Submission pipeline latency in milliseconds",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50},
			},
			[]string{"pair_id"},
		),
	}
}

// Collectors returns every collector, for a caller that wants to register
// them all against a prometheus.Registerer in one call.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.OrdersSubmittedTotal,
		m.OrdersCancelledTotal,
		m.FillsTotal,
		m.FillVolume,
		m.OrderbookDepth,
		m.SpreadBps,
		m.SubmitLatencyMs,
	}
}
