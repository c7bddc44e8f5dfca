package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eventrelay"

// Relay holds the relay metrics.
type Relay struct {
	Broadcasts       prometheus.Counter
	Deliveries       prometheus.Counter
	StaleQueues      prometheus.Counter
	Fanout           prometheus.Histogram
	UpstreamMessages prometheus.Counter
	Resubscribes     prometheus.Counter
	ActiveSessions   prometheus.Gauge
	SessionsTotal    prometheus.Counter
	Commands         *prometheus.CounterVec
}

// New creates the relay metrics and registers them on reg.
func New(reg prometheus.Registerer) *Relay {
	f := promauto.With(reg)

	return &Relay{
		Broadcasts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcast",
			Name:      "total",
			Help:      "Total number of payloads broadcast.",
		}),
		Deliveries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcast",
			Name:      "deliveries_total",
			Help:      "Total number of payloads enqueued to client queues.",
		}),
		StaleQueues: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "broadcast",
			Name:      "stale_queues_total",
			Help:      "Closed queues skipped during broadcast.",
		}),
		Fanout: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "broadcast",
			Name:      "fanout",
			Help:      "Number of recipients per broadcast.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
		}),
		UpstreamMessages: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "messages_total",
			Help:      "Total number of messages received from the upstream channel.",
		}),
		Resubscribes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "resubscribes_total",
			Help:      "Total number of upstream resubscription attempts.",
		}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "active_sessions",
			Help:      "Number of connected event stream clients.",
		}),
		SessionsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "sessions_total",
			Help:      "Total number of event stream sessions started.",
		}),
		Commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "command",
			Name:      "submissions_total",
			Help:      "Command submissions by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveBroadcast records one broadcast.
func (m *Relay) ObserveBroadcast(delivered, stale int) {
	m.Broadcasts.Inc()
	m.Deliveries.Add(float64(delivered))
	m.StaleQueues.Add(float64(stale))
	m.Fanout.Observe(float64(delivered))
}

// ObserveMessage records one message forwarded from upstream.
func (m *Relay) ObserveMessage(int) {
	m.UpstreamMessages.Inc()
}

// ObserveResubscribe records one resubscription attempt.
func (m *Relay) ObserveResubscribe() {
	m.Resubscribes.Inc()
}

// ObserveSessionStart records a connected event stream client.
func (m *Relay) ObserveSessionStart() {
	m.ActiveSessions.Inc()
	m.SessionsTotal.Inc()
}

// ObserveSessionEnd records a disconnected event stream client.
func (m *Relay) ObserveSessionEnd() {
	m.ActiveSessions.Dec()
}

// ObserveCommand records a command submission. The token is not used as a
// label since rejected tokens are arbitrary client input.
func (m *Relay) ObserveCommand(_ string, accepted bool) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	m.Commands.WithLabelValues(outcome).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
