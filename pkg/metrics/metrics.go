// Package metrics exposes kiosk fleet metrics via Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// KioskMetrics holds the instruments published on the ops endpoint.
type KioskMetrics struct {
	ordersPrinted     prometheus.Counter
	orderFailures     prometheus.Counter
	feedbackSubmitted *prometheus.CounterVec
	screensaverWakes  prometheus.Counter
	screensaverSleeps prometheus.Counter
	apiErrors         *prometheus.CounterVec
	apiDuration       *prometheus.HistogramVec
	cartSize          prometheus.Gauge
	backendUp         prometheus.Gauge
}

// New registers the kiosk metrics on the default registerer.
func New() *KioskMetrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the kiosk metrics on the given registerer.
func NewWithRegisterer(reg prometheus.Registerer) *KioskMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &KioskMetrics{
		ordersPrinted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_orders_printed_total",
			Help: "Total number of orders successfully printed",
		}),
		orderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_order_failures_total",
			Help: "Total number of failed checkout submissions",
		}),
		feedbackSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kiosk_feedback_submitted_total",
			Help: "Total number of feedback submissions by source",
		}, []string{"source"}), // "manual" or "auto"
		screensaverWakes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_screensaver_wakes_total",
			Help: "Total number of wake-ups from the screensaver",
		}),
		screensaverSleeps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_screensaver_sleeps_total",
			Help: "Total number of idle timeouts into the screensaver",
		}),
		apiErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kiosk_api_errors_total",
			Help: "Total number of failed backend calls by endpoint",
		}, []string{"endpoint"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kiosk_api_request_duration_seconds",
			Help:    "Duration of backend calls in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		cartSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kiosk_cart_lines",
			Help: "Number of lines currently in the cart",
		}),
		backendUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kiosk_backend_up",
			Help: "Whether the backend answered the last connectivity probe",
		}),
	}

	reg.MustRegister(
		m.ordersPrinted, m.orderFailures, m.feedbackSubmitted,
		m.screensaverWakes, m.screensaverSleeps,
		m.apiErrors, m.apiDuration, m.cartSize, m.backendUp,
	)
	return m
}

// OrderPrinted counts a successful checkout.
func (m *KioskMetrics) OrderPrinted() { m.ordersPrinted.Inc() }

// OrderFailed counts a failed checkout submission.
func (m *KioskMetrics) OrderFailed() { m.orderFailures.Inc() }

// FeedbackSubmitted counts a feedback submission; source is "manual" or
// "auto".
func (m *KioskMetrics) FeedbackSubmitted(source string) {
	m.feedbackSubmitted.WithLabelValues(source).Inc()
}

// ScreensaverSlept counts an idle timeout.
func (m *KioskMetrics) ScreensaverSlept() { m.screensaverSleeps.Inc() }

// ScreensaverWoke counts a wake-up.
func (m *KioskMetrics) ScreensaverWoke() { m.screensaverWakes.Inc() }

// APIError counts a failed backend call.
func (m *KioskMetrics) APIError(endpoint string) {
	m.apiErrors.WithLabelValues(endpoint).Inc()
}

// ObserveAPICall records a backend call duration.
func (m *KioskMetrics) ObserveAPICall(endpoint string, d time.Duration) {
	m.apiDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// SetCartSize publishes the current cart line count.
func (m *KioskMetrics) SetCartSize(n int) { m.cartSize.Set(float64(n)) }

// SetBackendUp publishes the last probe result.
func (m *KioskMetrics) SetBackendUp(up bool) {
	if up {
		m.backendUp.Set(1)
	} else {
		m.backendUp.Set(0)
	}
}
