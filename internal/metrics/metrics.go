// Package metrics — Prometheus-коллекторы blog-service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Метки побочных эффектов, чьи сбои только логируются и считаются.
const (
	EffectViewIncrement = "view_increment"
	EffectMediaCleanup  = "media_cleanup"
	EffectCascade       = "cascade_cleanup"
	EffectCache         = "featured_cache"
	EffectRecount       = "comments_recount"
)

// Metrics — набор коллекторов. Методы безопасны для nil-получателя:
// сервис и middleware могут работать без метрик (в тестах).
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	secondary *prometheus.CounterVec
}

// New создаёт коллекторы и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		secondary: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_secondary_failures_total",
			Help: "Failures of secondary effects that never reach the caller.",
		}, []string{"effect"}),
	}

	reg.MustRegister(m.requests, m.duration, m.secondary)

	return m
}

// ObserveHTTP учитывает завершённый HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}

	if route == "" {
		route = "unmatched"
	}

	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(dur.Seconds())
}

// SecondaryFailure учитывает сбой побочного эффекта.
func (m *Metrics) SecondaryFailure(effect string) {
	if m == nil {
		return
	}

	m.secondary.WithLabelValues(effect).Inc()
}
