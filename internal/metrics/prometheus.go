package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	apiRequests        *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiInFlight        prometheus.Gauge
	formRejections     *prometheus.CounterVec
	pageRenders        *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with registerer.
// Pass prometheus.DefaultRegisterer to expose them on /metrics.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gory_api_requests_total",
			Help: "The total number of requests made to the trips API",
		}, []string{"operation", "status"}),
		apiRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gory_api_request_duration_seconds",
			Help:    "Latency of requests made to the trips API",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		apiInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gory_api_requests_in_flight",
			Help: "The number of trips API requests currently in flight",
		}),
		formRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gory_form_rejections_total",
			Help: "The total number of form submissions rejected before reaching the API",
		}, []string{"form"}),
		pageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gory_page_renders_total",
			Help: "The total number of HTML pages rendered",
		}, []string{"page", "status"}),
	}
	metrics.register(registerer)
	return metrics
}

func (m *Metrics) register(registerer prometheus.Registerer) {
	registerer.MustRegister(
		m.apiRequests,
		m.apiRequestDuration,
		m.apiInFlight,
		m.formRejections,
		m.pageRenders,
	)
}

// ObserveAPIRequest records a finished API call. A status of 0 means the
// request never got a response.
func (m *Metrics) ObserveAPIRequest(operation string, status int, duration time.Duration) {
	statusLabel := "error"
	if status != 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.apiRequests.WithLabelValues(operation, statusLabel).Inc()
	m.apiRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) SetAPIInFlight(n int64) {
	m.apiInFlight.Set(float64(n))
}

func (m *Metrics) IncrementFormRejections(form string) {
	m.formRejections.WithLabelValues(form).Inc()
}

func (m *Metrics) IncrementPageRenders(page string, status int) {
	m.pageRenders.WithLabelValues(page, strconv.Itoa(status)).Inc()
}
