package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_products_created_total",
		Help: "Total number of products created",
	})

	SuppliersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_suppliers_created_total",
		Help: "Total number of suppliers created",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_orders_created_total",
		Help: "Total number of purchase orders created",
	})

	OrdersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_orders_deleted_total",
		Help: "Total number of purchase orders deleted (cascade included)",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warehouse_orders_failed_total",
		Help: "Total number of failed order operations",
	}, []string{"reason"})

	OrderItemMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warehouse_order_item_mutations_total",
		Help: "Total number of order item mutations",
	}, []string{"change"})

	OrderTotalRefreshLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "warehouse_order_total_refresh_latency_seconds",
		Help:    "Latency of order total recompute-and-persist operations",
		Buckets: prometheus.DefBuckets,
	})

	AuditEventsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warehouse_audit_events_processed_total",
		Help: "Total number of warehouse events recorded by the audit worker",
	}, []string{"type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
