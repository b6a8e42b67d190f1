// Package metrics defines the Prometheus series exported on /metrics.
//
// HTTP series are labelled by chi route pattern, not raw path, so ids in
// URLs do not explode cardinality. Domain counters track the OTP lifecycle
// and intake volume.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crime_report"

var (
	// HTTPRequestsTotal counts requests by method, route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests processed, by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes handler latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// OTPIssuedTotal counts codes issued; mode is "fixed" or "random".
	OTPIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "otp",
		Name:      "issued_total",
		Help:      "One-time codes issued.",
	}, []string{"mode"})

	// OTPVerificationsTotal counts verification attempts by result
	// (verified, missing, mismatch, expired).
	OTPVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "otp",
		Name:      "verifications_total",
		Help:      "One-time code verification attempts.",
	}, []string{"result"})

	ComplaintsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "complaints",
		Name:      "created_total",
		Help:      "Complaints filed, by crime type bucket.",
	}, []string{"crime_type"})

	MediaUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "media",
		Name:      "uploads_total",
		Help:      "Complaint attachments stored, by backend, kind and outcome.",
	}, []string{"backend", "kind", "outcome"})

	SOSAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sos",
		Name:      "alerts_total",
		Help:      "SOS alerts received.",
	})

	RateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter, by route.",
	}, []string{"route"})
)
