package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы создания заказа.
const (
	OrderOutcomeInserted         = "inserted"
	OrderOutcomeCustomerNotFound = "customer_not_found"
	OrderOutcomeProductsNotFound = "products_not_found"
	OrderOutcomeFatal            = "fatal"
	OrderOutcomeCanceled         = "canceled"
)

// OrderMetrics описывает метрики оркестратора заказов.
type OrderMetrics struct {
	inserts  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewOrderMetrics регистрирует метрики заказов в DefaultRegisterer.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewOrderMetricsWithRegisterer регистрирует метрики в переданном реестре.
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	registerer = registererOrDefault(registerer)

	return &OrderMetrics{
		inserts: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "purchasing_order_inserts_total",
			Help: "Purchase order insert requests by terminal outcome",
		}, []string{"outcome"}),
		duration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "purchasing_order_insert_duration_seconds",
			Help:    "Duration of purchase order composition in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
}

// RecordInsert фиксирует терминальный исход создания заказа. Безопасен для nil.
func (m *OrderMetrics) RecordInsert(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.inserts.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(duration.Seconds())
}
