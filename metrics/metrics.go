// Package metrics declares the Prometheus collectors the API exports on
// /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dadly_http_requests_total",
			Help: "HTTP requests by route, method and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dadly_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// FeedSize observes how many cards each feed response carried.
	FeedSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dadly_feed_recipes",
			Help:    "Recipes returned per feed request",
			Buckets: []float64{0, 1, 5, 10, 20, 30, 50},
		},
		[]string{"mode"}, // guest, random, ranked
	)

	FeedCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dadly_feed_candidates",
			Help:    "Candidate recipes scored per ranked feed request",
			Buckets: []float64{10, 50, 100, 250, 500},
		},
	)

	LikesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dadly_likes_total",
			Help: "Like and unlike attempts by outcome",
		},
		[]string{"action", "outcome"}, // like|unlike; ok, duplicate, not_found, error
	)

	TokensRevokedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dadly_tokens_revoked_total",
			Help: "Tokens added to the revocation store",
		},
	)

	RealtimeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dadly_realtime_connections",
			Help: "Open websocket connections",
		},
	)
)

func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordFeed(mode string, size int) {
	FeedSize.WithLabelValues(mode).Observe(float64(size))
}

func RecordLike(action, outcome string) {
	LikesTotal.WithLabelValues(action, outcome).Inc()
}
