package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// StreamedBytes counts body bytes relayed to clients
	StreamedBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flixtube_streamed_bytes_total",
			Help: "Video bytes written to clients",
		},
		[]string{"service"},
	)

	// StreamOutcomes counts finished video requests by status and outcome
	StreamOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flixtube_stream_requests_total",
			Help: "Video requests by final status code and outcome",
		},
		[]string{"service", "status", "outcome"},
	)

	// EventsPublished counts events handed to the broker
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flixtube_events_published_total",
			Help: "Events published to the broker",
		},
		[]string{"exchange"},
	)

	// EventPublishFailures counts publications that failed after all retries
	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flixtube_event_publish_failures_total",
			Help: "Events that could not be published after retries",
		},
		[]string{"exchange"},
	)

	// EventsDropped counts events dropped because the publish queue was full
	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flixtube_events_dropped_total",
			Help: "Events dropped because the publish queue was full",
		},
		[]string{"exchange"},
	)

	// MessagesConsumed counts settled deliveries by disposition
	MessagesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flixtube_messages_consumed_total",
			Help: "Broker deliveries settled by consumers",
		},
		[]string{"exchange", "disposition"},
	)

	// MessagesDeadLettered counts deliveries moved to a dead-letter subject
	MessagesDeadLettered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flixtube_messages_dead_lettered_total",
			Help: "Broker deliveries moved to the dead-letter subject",
		},
		[]string{"exchange"},
	)
)

// RecordStreamedBytes records bytes relayed to a client
func RecordStreamedBytes(service string, n int64) {
	if n > 0 {
		StreamedBytes.WithLabelValues(service).Add(float64(n))
	}
}

// RecordStreamOutcome records how a video request ended
func RecordStreamOutcome(service string, status int, outcome string) {
	StreamOutcomes.WithLabelValues(service, strconv.Itoa(status), outcome).Inc()
}

// RecordEventPublished records an event published to exchange
func RecordEventPublished(exchange string) {
	EventsPublished.WithLabelValues(exchange).Inc()
}

// RecordEventPublishFailure records a publication given up on
func RecordEventPublishFailure(exchange string) {
	EventPublishFailures.WithLabelValues(exchange).Inc()
}

// RecordEventDropped records an event dropped before publication
func RecordEventDropped(exchange string) {
	EventsDropped.WithLabelValues(exchange).Inc()
}

// RecordMessageConsumed records a settled delivery
func RecordMessageConsumed(exchange, disposition string) {
	MessagesConsumed.WithLabelValues(exchange, disposition).Inc()
}

// RecordMessageDeadLettered records a dead-lettered delivery
func RecordMessageDeadLettered(exchange string) {
	MessagesDeadLettered.WithLabelValues(exchange).Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
