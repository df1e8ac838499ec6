package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "textextract",
			Name:      "invocations_total",
			Help:      "Total service invocations by service name and result",
		},
		[]string{"service", "result"},
	)

	invocationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "textextract",
			Name:      "invocation_duration_seconds",
			Help:      "Duration of service invocations by service name",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	pagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "textextract",
			Name:      "pages_processed_total",
			Help:      "Total pages processed by extraction mode (text, ocr)",
		},
		[]string{"mode"},
	)

	engineCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "textextract",
			Name:      "engine_invocations_total",
			Help:      "Total recognition engine invocations by result",
		},
		[]string{"result"},
	)

	engineLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "textextract",
			Name:      "engine_duration_seconds",
			Help:      "Duration of recognition engine invocations",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Init registers collectors.
func Init() {
	prometheus.MustRegister(invocations, invocationLatency, pagesProcessed, engineCalls, engineLatency)
}

// Handler returns the http.Handler for /metrics
func Handler() http.Handler { return promhttp.Handler() }

func ObserveInvocation(service, result string, dur time.Duration) {
	invocations.WithLabelValues(service, result).Inc()
	invocationLatency.WithLabelValues(service).Observe(dur.Seconds())
}

func AddPages(mode string, n int) { pagesProcessed.WithLabelValues(mode).Add(float64(n)) }

func ObserveEngine(result string, dur time.Duration) {
	engineCalls.WithLabelValues(result).Inc()
	engineLatency.Observe(dur.Seconds())
}
