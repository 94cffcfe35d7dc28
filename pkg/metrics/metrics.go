package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Причины отказа в создании бронирования
const (
	RejectReasonCapacity   = "capacity"   // в окне слота нет свободных номеров
	RejectReasonContention = "contention" // исчерпан бюджет повторов при конкурентной записи
)

// Metrics набор Prometheus метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	bookingsCreated  *prometheus.CounterVec
	createRejected   *prometheus.CounterVec
	createConflicts  *prometheus.CounterVec
	slotOccupancy    *prometheus.GaugeVec
	slotRemaining    *prometheus.GaugeVec
}

// New регистрирует метрики в глобальном регистре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном регистре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		dbConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		bookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Number of bookings created",
		}, []string{"service", "slot"}),

		createRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_create_rejected_total",
			Help: "Number of rejected booking creations by reason (capacity, contention)",
		}, []string{"service", "slot", "reason"}),

		createConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_create_conflicts_total",
			Help: "Number of queue number uniqueness conflicts resolved by retry",
		}, []string{"service", "slot"}),

		slotOccupancy: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "slot_occupancy",
			Help: "Active bookings in today's slot",
		}, []string{"service", "slot"}),

		slotRemaining: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "slot_remaining",
			Help: "Remaining queue numbers in today's slot (-1 when unlimited)",
		}, []string{"service", "slot"}),
	}
}

// ObserveHTTPRequest фиксирует выполненный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.dbConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

func (m *Metrics) IncBookingCreated(slot string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(m.serviceName, slot).Inc()
}

// IncCreateRejected reason: RejectReasonCapacity или RejectReasonContention
func (m *Metrics) IncCreateRejected(slot, reason string) {
	if m == nil {
		return
	}
	m.createRejected.WithLabelValues(m.serviceName, slot, reason).Inc()
}

func (m *Metrics) IncCreateConflict(slot string) {
	if m == nil {
		return
	}
	m.createConflicts.WithLabelValues(m.serviceName, slot).Inc()
}

// SetSlotOccupancy публикует заполненность слота. remaining < 0 означает безлимитный слот
func (m *Metrics) SetSlotOccupancy(slot string, booked, remaining int) {
	if m == nil {
		return
	}
	m.slotOccupancy.WithLabelValues(m.serviceName, slot).Set(float64(booked))
	m.slotRemaining.WithLabelValues(m.serviceName, slot).Set(float64(remaining))
}
