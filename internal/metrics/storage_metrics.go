package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorageMetrics считает обращения к хранилищу по сущности, операции и варианту результата.
type StorageMetrics struct {
	results  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewStorageMetrics регистрирует метрики хранилища в DefaultRegisterer.
func NewStorageMetrics() *StorageMetrics {
	return NewStorageMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewStorageMetricsWithRegisterer регистрирует метрики в переданном реестре.
func NewStorageMetricsWithRegisterer(registerer prometheus.Registerer) *StorageMetrics {
	registerer = registererOrDefault(registerer)

	return &StorageMetrics{
		results: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "purchasing_storage_results_total",
			Help: "Storage calls by entity, operation and result kind",
		}, []string{"entity", "operation", "result"}),
		duration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "purchasing_storage_duration_seconds",
			Help:    "Duration of storage calls in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"entity", "operation"}),
	}
}

// Observe фиксирует один вызов хранилища. Безопасен для nil.
func (m *StorageMetrics) Observe(entity, operation, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(entity, operation, result).Inc()
	m.duration.WithLabelValues(entity, operation).Observe(duration.Seconds())
}
