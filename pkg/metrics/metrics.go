package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	service string

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	DBQueries       *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBOpenConns     *prometheus.GaugeVec
	DBInUseConns    *prometheus.GaugeVec
	DBIdleConns     *prometheus.GaugeVec
	DBWaitCount     *prometheus.GaugeVec

	ExternalRequests *prometheus.CounterVec
	ExternalDuration *prometheus.HistogramVec

	HoldsCreated      *prometheus.CounterVec
	HoldConflicts     *prometheus.CounterVec
	PaymentsConfirmed *prometheus.CounterVec
	StatusTransitions *prometheus.CounterVec
	RateLimitRejected *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: serviceName,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"service", "route", "method", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "route", "method"},
		),
		DBQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "db_queries_total", Help: "Database queries."},
			[]string{"service", "operation", "status"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration seconds.",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"service", "operation"},
		),
		DBOpenConns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "db_open_connections", Help: "Open connections in the pool."},
			[]string{"service"},
		),
		DBInUseConns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "db_in_use_connections", Help: "Connections currently in use."},
			[]string{"service"},
		),
		DBIdleConns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "db_idle_connections", Help: "Idle connections."},
			[]string{"service"},
		),
		DBWaitCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "db_wait_count", Help: "Total number of connections waited for."},
			[]string{"service"},
		),
		ExternalRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "external_requests_total", Help: "Outbound requests."},
			[]string{"service", "target", "status"},
		),
		ExternalDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_request_duration_seconds",
				Help:    "Outbound request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "target"},
		),
		HoldsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "booking_holds_created_total", Help: "Pending holds created."},
			[]string{"service"},
		),
		HoldConflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "booking_hold_conflicts_total", Help: "Hold attempts rejected because of overlapping bookings."},
			[]string{"service"},
		),
		PaymentsConfirmed: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "booking_payments_confirmed_total", Help: "Payments reconciled with bookings."},
			[]string{"service", "method"},
		),
		StatusTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "booking_status_transitions_total", Help: "Bookings moved by the status sweep."},
			[]string{"service", "to"},
		),
		RateLimitRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "rate_limit_rejected_total", Help: "Requests rejected by throttling."},
			[]string{"service", "scope"},
		),
	}

	reg.MustRegister(
		m.HTTPRequests, m.HTTPDuration,
		m.DBQueries, m.DBQueryDuration, m.DBOpenConns, m.DBInUseConns, m.DBIdleConns, m.DBWaitCount,
		m.ExternalRequests, m.ExternalDuration,
		m.HoldsCreated, m.HoldConflicts, m.PaymentsConfirmed, m.StatusTransitions, m.RateLimitRejected,
	)

	return m
}

// ObserveHTTP фиксирует HTTP запрос
func (m *Metrics) ObserveHTTP(service, route, method string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(service, route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(service, route, method).Observe(dur.Seconds())
}

// ObserveDB фиксирует запрос к БД
func (m *Metrics) ObserveDB(service, operation string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueries.WithLabelValues(service, operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(service, operation).Observe(dur.Seconds())
}

// ObserveExternal фиксирует запрос к внешнему сервису
func (m *Metrics) ObserveExternal(service, target string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.ExternalRequests.WithLabelValues(service, target, strconv.Itoa(status)).Inc()
	m.ExternalDuration.WithLabelValues(service, target).Observe(dur.Seconds())
}

// Доменные счётчики. Все методы безопасны для nil (метрики выключены).

func (m *Metrics) IncHoldsCreated() {
	if m == nil {
		return
	}
	m.HoldsCreated.WithLabelValues(m.service).Inc()
}

func (m *Metrics) IncHoldConflicts() {
	if m == nil {
		return
	}
	m.HoldConflicts.WithLabelValues(m.service).Inc()
}

func (m *Metrics) IncPaymentsConfirmed(method string) {
	if m == nil {
		return
	}
	m.PaymentsConfirmed.WithLabelValues(m.service, method).Inc()
}

func (m *Metrics) AddStatusTransitions(to string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.StatusTransitions.WithLabelValues(m.service, to).Add(float64(n))
}

func (m *Metrics) IncRateLimitRejected(scope string) {
	if m == nil {
		return
	}
	m.RateLimitRejected.WithLabelValues(m.service, scope).Inc()
}
