package metrics

import "github.com/prometheus/client_golang/prometheus"

// Roster change results.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultConflict = "conflict"
	ResultFull     = "full"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// RosterMetrics tracks signups, unregistrations and roster sizes.
type RosterMetrics struct {
	Changes      *prometheus.CounterVec
	Participants *prometheus.GaugeVec
}

// NewRosterMetrics creates and registers roster metrics on the given registry.
func NewRosterMetrics(reg prometheus.Registerer) *RosterMetrics {
	m := &RosterMetrics{
		Changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "changes_total",
			Help:      "Total signup and unregister attempts, by operation and result.",
		}, []string{"operation", "result"}),
		Participants: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "participants",
			Help:      "Current number of participants, by activity.",
		}, []string{"activity"}),
	}

	reg.MustRegister(m.Changes, m.Participants)
	return m
}

func (m *RosterMetrics) RecordChange(operation, result string) {
	m.Changes.WithLabelValues(operation, result).Inc()
}

func (m *RosterMetrics) SetParticipants(activity string, n int) {
	m.Participants.WithLabelValues(activity).Set(float64(n))
}

// AddParticipants adjusts an activity's roster gauge by delta.
func (m *RosterMetrics) AddParticipants(activity string, delta int) {
	m.Participants.WithLabelValues(activity).Add(float64(delta))
}
