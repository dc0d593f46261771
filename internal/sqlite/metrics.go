package sqlite

import "github.com/prometheus/client_golang/prometheus"

// metrics counts store traffic. Resolution is the expensive step, so it is
// broken down by class.
type metrics struct {
	resolved *prometheus.CounterVec
	appended *prometheus.CounterVec
	commits  prometheus.Counter
	aborts   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drafts",
			Subsystem: "store",
			Name:      "objects_resolved_total",
			Help:      "Objects resolved through a transaction, by class.",
		}, []string{"class"}),
		appended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drafts",
			Subsystem: "store",
			Name:      "objects_appended_total",
			Help:      "Objects appended to containers, by class.",
		}, []string{"class"}),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drafts",
			Subsystem: "store",
			Name:      "transactions_committed_total",
			Help:      "Transactions committed.",
		}),
		aborts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drafts",
			Subsystem: "store",
			Name:      "transactions_aborted_total",
			Help:      "Transactions aborted or rolled back on failed commit.",
		}),
	}
	reg.MustRegister(m.resolved, m.appended, m.commits, m.aborts)
	return m
}
