// Package metrics exposes Prometheus counters for invoice loads, payments
// and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	invoiceLoads    *prometheus.CounterVec
	payments        *prometheus.CounterVec
	paymentTips     prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// New registers the viewer's collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	invoiceLoads := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_viewer_invoice_loads_total",
			Help: "Invoice loads by result.",
		},
		[]string{"result"}, // loaded | not_found | invalid | unreachable
	)

	payments := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_viewer_payments_total",
			Help: "Payment attempts by kind and result.",
		},
		[]string{"kind", "result"}, // success | failed | unavailable
	)

	paymentTips := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "invoice_viewer_payment_tips_cents_total",
			Help: "Sum of tips on successful payments, in cents.",
		},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "invoice_viewer_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)

	registry.MustRegister(invoiceLoads, payments, paymentTips, requestDuration)

	return &Metrics{
		registry:        registry,
		invoiceLoads:    invoiceLoads,
		payments:        payments,
		paymentTips:     paymentTips,
		requestDuration: requestDuration,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) IncInvoiceLoad(result string) {
	if m == nil {
		return
	}
	m.invoiceLoads.WithLabelValues(result).Inc()
}

func (m *Metrics) IncPayment(kind, result string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) AddTipCents(cents int64) {
	if m == nil || cents <= 0 {
		return
	}
	m.paymentTips.Add(float64(cents))
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
