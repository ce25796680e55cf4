package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "isoatthetop"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	DataCacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "site_data_cache_events_total", Help: "Site data cache hits/misses/errors."},
		[]string{"path", "event"}, // event: hit|miss|error
	)
	PageViews = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "page_views_total", Help: "Rendered page views."},
		[]string{"path"},
	)
	ContactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "contact_submissions_total", Help: "Contact form submissions by outcome."},
		[]string{"outcome"}, // relayed|failed|mailto|rejected|throttled
	)
)

// InitRegistry registers the site collectors on a fresh registry.
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, DataCacheEvents, PageViews, ContactSubmissions)
	return reg
}

// MetricsHandler exposes reg for scraping.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveDataCache(path, event string) {
	DataCacheEvents.WithLabelValues(path, event).Inc()
}

func ObserveContact(outcome string) {
	ContactSubmissions.WithLabelValues(outcome).Inc()
}
