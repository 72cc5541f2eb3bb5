package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, label string) float64 {
	t.Helper()
	metric := &dto.Metric{}
	counter, err := vec.GetMetricWithLabelValues(label)
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}
	if err := counter.Write(metric); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return metric.GetCounter().GetValue()
}

func TestCheckoutMetricsObservePlaced(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.ObservePlaced("cash_on_delivery", 2250)
	m.ObservePlaced("Cash_On_Delivery ", 5000)

	if got := counterValue(t, m.placed, "cash_on_delivery"); got != 2 {
		t.Fatalf("expected 2 placed orders, got %v", got)
	}
}

func TestCheckoutMetricsIncFailed(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.IncFailed("db_insert")
	m.IncFailed("")

	if got := counterValue(t, m.failed, "db_insert"); got != 1 {
		t.Fatalf("expected 1 db_insert failure, got %v", got)
	}
	if got := counterValue(t, m.failed, "unknown"); got != 1 {
		t.Fatalf("expected blank reason to map to unknown, got %v", got)
	}
}

func TestCheckoutMetricsNilSafe(t *testing.T) {
	var m *CheckoutMetrics
	m.ObservePlaced("cash_on_delivery", 100)
	m.IncFailed("whatever")

	empty := NewCheckoutMetrics(nil)
	empty.ObservePlaced("cash_on_delivery", 100)
	empty.IncFailed("whatever")
}
