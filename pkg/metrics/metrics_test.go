package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestKioskMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg)

	m.OrderPrinted()
	m.OrderPrinted()
	m.OrderFailed()
	m.FeedbackSubmitted("manual")
	m.FeedbackSubmitted("auto")
	m.FeedbackSubmitted("auto")
	m.ScreensaverSlept()
	m.ScreensaverWoke()
	m.APIError("products")
	m.ObserveAPICall("products", 120*time.Millisecond)
	m.SetCartSize(3)
	m.SetBackendUp(true)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ordersPrinted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.orderFailures))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.feedbackSubmitted.WithLabelValues("auto")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.feedbackSubmitted.WithLabelValues("manual")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.screensaverSleeps))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.apiErrors.WithLabelValues("products")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.cartSize))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.backendUp))

	m.SetBackendUp(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.backendUp))
}

func TestNewWithRegisterer_NilFallsBackToDefault(t *testing.T) {
	// Registering twice on the default registerer would panic; use a scratch
	// registry to confirm construction wires every collector.
	reg := prometheus.NewRegistry()
	assert.NotPanics(t, func() { NewWithRegisterer(reg) })
}
