package metrics

import (
	"time"

	"github.com/angelmondragon/caffeineveins/pkg/enums"
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records persistence and order activity. A nil *StoreMetrics is a no-op.
type StoreMetrics struct {
	persistDuration *prometheus.HistogramVec
	persistFailure  *prometheus.CounterVec
	corruptLoads    *prometheus.CounterVec
	ordersPlaced    prometheus.Counter
	statusChanges   *prometheus.CounterVec
	pendingOrders   prometheus.Gauge
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	persistDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_persist_duration_seconds",
		Help:    "Duration of full-blob saves in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"key"})
	persistFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_persist_failures_total",
		Help: "Failed full-blob saves.",
	}, []string{"key"})
	corruptLoads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_corrupt_loads_total",
		Help: "Stored blobs that could not be parsed on load.",
	}, []string{"key"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders appended to the ledger.",
	})
	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Order status updates by target status.",
	}, []string{"status"})
	pendingOrders := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orders_pending",
		Help: "Orders waiting for the counter, as of the last housekeeping run.",
	})
	reg.MustRegister(persistDuration, persistFailure, corruptLoads, ordersPlaced, statusChanges, pendingOrders)
	return &StoreMetrics{
		persistDuration: persistDuration,
		persistFailure:  persistFailure,
		corruptLoads:    corruptLoads,
		ordersPlaced:    ordersPlaced,
		statusChanges:   statusChanges,
		pendingOrders:   pendingOrders,
	}
}

// ObservePersist records one save of key and whether it failed.
func (m *StoreMetrics) ObservePersist(key string, duration time.Duration, err error) {
	if m == nil || m.persistDuration == nil {
		return
	}
	label := normalizeLabel(key)
	m.persistDuration.WithLabelValues(label).Observe(duration.Seconds())
	if err != nil {
		m.persistFailure.WithLabelValues(label).Inc()
	}
}

func (m *StoreMetrics) IncCorruptLoad(key string) {
	if m == nil || m.corruptLoads == nil {
		return
	}
	m.corruptLoads.WithLabelValues(normalizeLabel(key)).Inc()
}

func (m *StoreMetrics) IncOrderPlaced() {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
}

func (m *StoreMetrics) IncStatusChange(status enums.OrderStatus) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(status.String())).Inc()
}

func (m *StoreMetrics) SetPendingOrders(n int) {
	if m == nil || m.pendingOrders == nil {
		return
	}
	m.pendingOrders.Set(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
