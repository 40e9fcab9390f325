// Package metrics exposes Prometheus collectors for IGDB traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "igdb_cache_lookups_total",
		Help: "Response cache lookups by endpoint and result.",
	}, []string{"endpoint", "result"}) // result: hit, miss

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "igdb_upstream_requests_total",
		Help: "Outbound IGDB data requests by endpoint and HTTP status.",
	}, []string{"endpoint", "status"}) // status: numeric code, or "error" on transport failure

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "igdb_upstream_request_duration_seconds",
		Help:    "Duration of outbound IGDB data requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "igdb_token_refreshes_total",
		Help: "Client-credentials token exchanges by result.",
	}, []string{"result"}) // result: ok, error

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "questhub_http_requests_total",
		Help: "Gateway HTTP requests by route pattern, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "questhub_http_request_duration_seconds",
		Help:    "Gateway HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// RecordCacheLookup counts a cache hit or miss for an endpoint.
func RecordCacheLookup(endpoint string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(endpoint, result).Inc()
}

// RecordUpstream counts an outbound request and observes its duration.
// A status of 0 means the request never produced a response.
func RecordUpstream(endpoint string, status int, start time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequests.WithLabelValues(endpoint, label).Inc()
	UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// RecordTokenRefresh counts a token exchange attempt.
func RecordTokenRefresh(err error) {
	if err != nil {
		TokenRefreshes.WithLabelValues("error").Inc()
		return
	}
	TokenRefreshes.WithLabelValues("ok").Inc()
}

// RecordHTTP counts a served gateway request.
func RecordHTTP(route, method string, status int, took time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(took.Seconds())
}
