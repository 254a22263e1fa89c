package realtime

import "github.com/prometheus/client_golang/prometheus"

var (
	liveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "realtime_connections",
			Help: "Currently open hub connections",
		},
	)

	eventsDelivered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_events_delivered_total",
			Help: "Events delivered to individual connections",
		},
		[]string{"event"},
	)

	eventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_events_dropped_total",
			Help: "Per-connection deliveries absorbed as failures",
		},
		[]string{"event"},
	)
)

func init() {
	prometheus.MustRegister(liveConnections)
	prometheus.MustRegister(eventsDelivered)
	prometheus.MustRegister(eventsDropped)
}
