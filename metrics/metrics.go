package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "manglasports_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "manglasports_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "manglasports_auth_success_total",
			Help: "Total number of successful logins",
		},
	)

	AuthFailureTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "manglasports_auth_failure_total",
			Help: "Total number of failed logins",
		},
	)

	// Order metrics
	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "manglasports_orders_placed_total",
			Help: "Total number of orders placed",
		},
	)
)
