// Package metrics registers the service's Prometheus collectors on the
// default registry, served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "salon"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_step_transitions_total",
		Help:      "Booking workflow step changes.",
	}, []string{"from", "to"})

	BookingsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_completed_total",
		Help:      "Bookings confirmed.",
	})

	CouponClaims = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coupon_claims_total",
		Help:      "Coupon claim attempts by outcome.",
	}, []string{"result"})

	CouponsConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "coupons_consumed_total",
		Help:      "Coupons applied to a confirmed booking.",
	})

	OverlayEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overlay_events_total",
		Help:      "Overlay opens and closes by kind.",
	}, []string{"kind", "action"})

	ActiveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_clients",
		Help:      "Client states currently held in memory.",
	})
)
