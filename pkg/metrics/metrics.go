package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbOpenConnections *prometheus.GaugeVec
	dbInUse           *prometheus.GaugeVec
	dbIdle            *prometheus.GaugeVec
	dbWaitCount       *prometheus.GaugeVec
	dbQueryDuration   *prometheus.HistogramVec

	bookingsCreated  *prometheus.CounterVec
	bookingsReleased *prometheus.CounterVec
	checkIns         *prometheus.CounterVec
	slotConflicts    *prometheus.CounterVec
}

// New создает коллектор и регистрирует его в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает коллектор в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "room_bookings_created_total",
			Help: "Bookings written by series commit or extension",
		}, []string{"service", "kind"}),
		bookingsReleased: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "room_bookings_released_total",
			Help: "Bookings released by the no-show sweep",
		}, []string{"service"}),
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "room_booking_checkins_total",
			Help: "Check-in attempts by result",
		}, []string{"service", "result"}),
		slotConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "room_slot_conflicts_total",
			Help: "Requests rejected because the slot was occupied",
		}, []string{"service", "operation"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.dbQueryDuration,
		m.bookingsCreated,
		m.bookingsReleased,
		m.checkIns,
		m.slotConflicts,
	)

	return m
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(m.serviceName).Set(float64(open))
	m.dbInUse.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.dbIdle.WithLabelValues(m.serviceName).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(m.serviceName).Set(float64(waitCount))
}

// BookingsCreated учитывает созданные бронирования (kind: series, extension)
func (m *Metrics) BookingsCreated(kind string, count int) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(m.serviceName, kind).Add(float64(count))
}

// BookingsReleased учитывает бронирования, освобожденные автоматически
func (m *Metrics) BookingsReleased(count int) {
	if m == nil {
		return
	}
	m.bookingsReleased.WithLabelValues(m.serviceName).Add(float64(count))
}

// CheckIn учитывает попытку подтверждения присутствия
func (m *Metrics) CheckIn(result string) {
	if m == nil {
		return
	}
	m.checkIns.WithLabelValues(m.serviceName, result).Inc()
}

// SlotConflict учитывает отказ из-за занятого слота
func (m *Metrics) SlotConflict(operation string) {
	if m == nil {
		return
	}
	m.slotConflicts.WithLabelValues(m.serviceName, operation).Inc()
}
