package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getGaugeValue(g prometheus.Gauge) float64 {
	var m dto.Metric
	if err := g.(prometheus.Metric).Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestMetrics_UpstreamRequestsTotal(t *testing.T) {
	before := getCounterVecValue(UpstreamRequestsTotal, "shows", "success")
	UpstreamRequestsTotal.WithLabelValues("shows", "success").Inc()
	after := getCounterVecValue(UpstreamRequestsTotal, "shows", "success")

	if after != before+1 {
		t.Errorf("Expected counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_UIActionsTotal(t *testing.T) {
	before := getCounterVecValue(UIActionsTotal, "select_show", "error")
	UIActionsTotal.WithLabelValues("select_show", "error").Inc()
	after := getCounterVecValue(UIActionsTotal, "select_show", "error")

	if after != before+1 {
		t.Errorf("Expected counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_ActiveSessions(t *testing.T) {
	ActiveSessions.Set(3)
	if v := getGaugeValue(ActiveSessions); v != 3 {
		t.Errorf("Expected active sessions to be 3, got %.0f", v)
	}
	ActiveSessions.Set(0)
}

func TestMetrics_NewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("localhost", 9191)

	if srv.Addr != "localhost:9191" {
		t.Errorf("Expected address 'localhost:9191', got '%s'", srv.Addr)
	}
	if srv.Handler == nil {
		t.Error("Expected handler to be set")
	}
}

func TestMetrics_NewHTTPServer_DefaultPort(t *testing.T) {
	srv := NewHTTPServer("0.0.0.0", 0)

	if srv.Addr != "0.0.0.0:9090" {
		t.Errorf("Expected address '0.0.0.0:9090', got '%s'", srv.Addr)
	}
}
