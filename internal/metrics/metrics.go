package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "driver_agent_token_refreshes_total",
		Help: "Total number of access token refresh calls by outcome.",
	},
		[]string{"outcome"},
	)

	QueuedRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driver_agent_queued_requests_total",
		Help: "Total number of requests parked while a token refresh was in flight.",
	})

	ForcedLogoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driver_agent_forced_logouts_total",
		Help: "Total number of sessions torn down because the refresh token was rejected.",
	})

	RealtimeState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "driver_agent_realtime_state",
		Help: "Realtime channel state: 0 disconnected, 1 connecting, 2 connected.",
	})

	RealtimeReconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driver_agent_realtime_reconnects_total",
		Help: "Total number of realtime channel reconnect attempts.",
	})

	RealtimeMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "driver_agent_realtime_messages_total",
		Help: "Total number of realtime messages received by kind.",
	},
		[]string{"kind"},
	)

	RealtimeMalformedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driver_agent_realtime_malformed_total",
		Help: "Total number of realtime payloads discarded as malformed.",
	})

	OffersResolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "driver_agent_offers_resolved_total",
		Help: "Total number of order offers by resolution.",
	},
		[]string{"resolution"},
	)

	HeartbeatFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driver_agent_heartbeat_failures_total",
		Help: "Total number of failed driver heartbeats.",
	})

	EventSinkErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "driver_agent_event_sink_errors_total",
		Help: "Total number of event batches a sink failed to write.",
	},
		[]string{"sink"},
	)

	EventsOverflowTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driver_agent_events_overflow_total",
		Help: "Total number of events logged instead of journaled because the queue was full.",
	})

	OrderCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "driver_agent_order_cache_items",
		Help: "Current number of orders in the active order cache.",
	})
)
