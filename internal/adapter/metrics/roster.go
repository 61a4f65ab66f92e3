package metrics

import "github.com/prometheus/client_golang/prometheus"

// Result labels shared by login and roster counters.
const (
	ResultSuccess         = "success"
	ResultInvalid         = "invalid_credentials"
	ResultNotFound        = "not_found"
	ResultAlreadyEnrolled = "already_enrolled"
	ResultNotEnrolled     = "not_enrolled"
	ResultError           = "error"
)

const (
	OperationSignup     = "signup"
	OperationUnregister = "unregister"
)

// RosterMetrics tracks authentication and roster changes. A nil
// *RosterMetrics is valid and records nothing.
type RosterMetrics struct {
	LoginsTotal   *prometheus.CounterVec
	LogoutsTotal  prometheus.Counter
	RosterChanges *prometheus.CounterVec
}

func NewRosterMetrics(reg prometheus.Registerer) *RosterMetrics {
	m := &RosterMetrics{
		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Total number of teacher login attempts, by result.",
		}, []string{"result"}),
		LogoutsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "sessions_revoked_total",
			Help:      "Total number of sessions revoked by logout.",
		}),
		RosterChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "changes_total",
			Help:      "Total number of signup and unregister attempts, by operation and result.",
		}, []string{"operation", "result"}),
	}

	reg.MustRegister(m.LoginsTotal, m.LogoutsTotal, m.RosterChanges)
	return m
}

// RegisterSessionGauge exposes the live session count, read on scrape.
func RegisterSessionGauge(reg prometheus.Registerer, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "active_sessions",
		Help:      "Number of bearer sessions currently valid.",
	}, func() float64 {
		return float64(count())
	}))
}

func (m *RosterMetrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}

func (m *RosterMetrics) ObserveLogout(revoked int) {
	if m == nil {
		return
	}
	m.LogoutsTotal.Add(float64(revoked))
}

func (m *RosterMetrics) ObserveRosterChange(operation, result string) {
	if m == nil {
		return
	}
	m.RosterChanges.WithLabelValues(operation, result).Inc()
}
