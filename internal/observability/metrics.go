package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	eventsAppliedTotal  *prometheus.CounterVec
	eventsDroppedTotal  *prometheus.CounterVec
	fetchFailuresTotal  *prometheus.CounterVec
	pushReconnectsTotal *prometheus.CounterVec
	syncInstancesActive prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the sync layer.
func RegisterMetrics() {
	registerOnce.Do(func() {
		eventsAppliedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quibble_sync_events_applied_total",
			Help: "Total number of push events applied to local snapshots.",
		}, []string{"event"})

		eventsDroppedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quibble_sync_events_dropped_total",
			Help: "Total number of push events dropped before dispatch.",
		}, []string{"reason"})

		fetchFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quibble_fetch_failures_total",
			Help: "Total number of failed gateway fetches.",
		}, []string{"operation"})

		pushReconnectsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quibble_push_reconnects_total",
			Help: "Total number of push channel reconnect attempts.",
		}, []string{"transport"})

		syncInstancesActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quibble_sync_instances_active",
			Help: "Number of live page synchronizers.",
		})

		prometheus.MustRegister(eventsAppliedTotal, eventsDroppedTotal, fetchFailuresTotal, pushReconnectsTotal, syncInstancesActive)
	})
}

// EventsApplied exposes the counter for applied push events.
func EventsApplied() *prometheus.CounterVec {
	RegisterMetrics()
	return eventsAppliedTotal
}

// EventsDropped exposes the counter for dropped push events.
func EventsDropped() *prometheus.CounterVec {
	RegisterMetrics()
	return eventsDroppedTotal
}

// FetchFailures exposes the counter for failed gateway fetches.
func FetchFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return fetchFailuresTotal
}

// PushReconnects exposes the counter for push reconnect attempts.
func PushReconnects() *prometheus.CounterVec {
	RegisterMetrics()
	return pushReconnectsTotal
}

// SyncInstances exposes the gauge tracking live synchronizers.
func SyncInstances() prometheus.Gauge {
	RegisterMetrics()
	return syncInstancesActive
}
