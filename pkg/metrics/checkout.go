package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records order placement outcomes.
type CheckoutMetrics struct {
	placed  *prometheus.CounterVec
	failed  *prometheus.CounterVec
	revenue prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders successfully placed, by payment method.",
	}, []string{"payment_method"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Order placements that failed, by reason.",
	}, []string{"reason"})
	revenue := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_total_amount",
		Help:    "Distribution of order totals in whole currency units.",
		Buckets: []float64{1000, 2500, 5000, 10000, 25000, 50000, 100000},
	})
	reg.MustRegister(placed, failed, revenue)
	return &CheckoutMetrics{
		placed:  placed,
		failed:  failed,
		revenue: revenue,
	}
}

// ObservePlaced records a successful order and its total.
func (c *CheckoutMetrics) ObservePlaced(paymentMethod string, total int) {
	if c == nil || c.placed == nil {
		return
	}
	c.placed.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
	c.revenue.Observe(float64(total))
}

// IncFailed increments the failure counter for the given reason.
func (c *CheckoutMetrics) IncFailed(reason string) {
	if c == nil || c.failed == nil {
		return
	}
	c.failed.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
