package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics собирает Prometheus-метрики сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SlotTogglesTotal      *prometheus.CounterVec
	SessionWriteFailures  prometheus.Counter
	ForecastCacheHits     prometheus.Counter
	ForecastCacheMisses   prometheus.Counter
	ForecastErrors        prometheus.Counter
	RegistryRepairsTotal  prometheus.Counter
	ChangeEventsPublished prometheus.Counter
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		SlotTogglesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_slot_toggles_total",
			Help:        "Total number of slot occupancy transitions",
			ConstLabels: labels,
		}, []string{"to_status"}),

		SessionWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "parking_session_write_failures_total",
			Help:        "Total number of failed best-effort session log writes",
			ConstLabels: labels,
		}),

		ForecastCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "parking_forecast_cache_hits_total",
			Help:        "Total number of forecast requests served from cache",
			ConstLabels: labels,
		}),

		ForecastCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "parking_forecast_cache_misses_total",
			Help:        "Total number of forecast computations",
			ConstLabels: labels,
		}),

		ForecastErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "parking_forecast_errors_total",
			Help:        "Total number of failed forecast computations",
			ConstLabels: labels,
		}),

		RegistryRepairsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "parking_registry_repairs_total",
			Help:        "Total number of registry snapshot repairs on load",
			ConstLabels: labels,
		}),

		ChangeEventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "parking_change_events_published_total",
			Help:        "Total number of change notifications published",
			ConstLabels: labels,
		}),
	}
}
