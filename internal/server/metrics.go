package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	requests     *prometheus.CounterVec
	rateLimited  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mechsolver_calculations_total",
				Help: "Formula evaluations by formula id and outcome",
			},
			[]string{"formula", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mechsolver_calculation_duration_seconds",
				Help:    "Time spent evaluating formulas",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"formula"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mechsolver_http_requests_total",
				Help: "HTTP requests by route pattern and status code",
			},
			[]string{"route", "code"},
		),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mechsolver_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		}),
	}
	reg.MustRegister(m.calculations, m.duration, m.requests, m.rateLimited)
	return m
}
