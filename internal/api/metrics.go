package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ============================================================
// Prometheus метрики HTTP API
// ============================================================
//
// Использование:
// - /metrics endpoint для Prometheus scrape
// - Grafana дашборды для визуализации латентности и ошибок

// ============ Метрики запросов ============

// HTTPRequestDuration - длительность обработки HTTP запросов
// Buckets рассчитаны на API с внешними вызовами (CoinGecko до 10s)
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "bitport",
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestsTotal - количество HTTP запросов
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "bitport",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests",
	},
	[]string{"method", "route", "status"},
)

// statusRecorder захватывает статус код для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Metrics - middleware, записывающее латентность и счетчики запросов.
// Route label берется из шаблона mux маршрута (не из сырого пути),
// чтобы не раздувать кардинальность метрик на /{id} путях.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		status := strconv.Itoa(rec.status)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0

		HTTPRequestDuration.WithLabelValues(r.Method, route, status).Observe(elapsed)
		HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
	})
}
