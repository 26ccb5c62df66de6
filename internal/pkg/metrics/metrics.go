package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	kioskClients    prometheus.Gauge
	dashboardReads  *prometheus.CounterVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kennar",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kennar",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP requests.",
			Buckets: []float64{
				0.005, 0.01, 0.025, 0.05,
				0.1, 0.25, 0.5,
				1, 2.5, 5, 10,
			},
		}, []string{"route", "method"}),
		kioskClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "kennar",
			Subsystem: "kiosk",
			Name:      "connected_clients",
			Help:      "Current number of connected realtime clients.",
		}),
		dashboardReads: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kennar",
			Subsystem: "dashboard",
			Name:      "stats_total",
			Help:      "Dashboard aggregate computations by result.",
		}, []string{"result"}),
	}
})

func get() *metrics {
	return metricsSingleton()
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m := get()
	if route == "" {
		route = "unmatched"
	}
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func KioskConnected() {
	get().kioskClients.Inc()
}

func KioskDisconnected() {
	get().kioskClients.Dec()
}

// DashboardStats counts aggregate computations; result is "ok" or "error".
func DashboardStats(result string) {
	get().dashboardReads.WithLabelValues(result).Inc()
}
