package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes counters for the supplier quota lifecycle.
type Metrics struct {
	ActivitiesCounted *prometheus.CounterVec
	WarningsSent      prometheus.Counter
	LocksApplied      prometheus.Counter
	NotificationsSent *prometheus.CounterVec

	registry *prometheus.Registry
}

func NewMetrics() *Metrics {
	m := &Metrics{
		ActivitiesCounted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "monasabat_activities_counted_total",
			Help: "Countable activity events applied to supplier quotas.",
		}, []string{"flow"}),
		WarningsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "monasabat_quota_warnings_sent_total",
			Help: "Quota warning notifications emitted.",
		}),
		LocksApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "monasabat_quota_locks_applied_total",
			Help: "Suppliers locked for exceeding the free quota.",
		}),
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "monasabat_notifications_sent_total",
			Help: "Outbound notification attempts by result.",
		}, []string{"result"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.ActivitiesCounted,
		m.WarningsSent,
		m.LocksApplied,
		m.NotificationsSent,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
