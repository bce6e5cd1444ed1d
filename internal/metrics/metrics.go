package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	StockMovementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_movements_total",
			Help: "Total number of stock movements by kind (issue, return, transfer, sale, write_off, adjustment)",
		},
		[]string{"kind"},
	)

	StockDivergenceGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stock_divergence_rows",
			Help: "Number of equipment rows where stored availability disagrees with the rental ledger, as of the last audit run",
		},
	)
)
