// Package metrics exposes prometheus counters for reference lookups and
// configuration runs.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Agrid-Dev/hvacstandards/internal/report"
)

const namespace = "hvacstd"

type Metrics struct {
	lookups    *prometheus.CounterVec
	outcomes   *prometheus.CounterVec
	sizingRuns *prometheus.CounterVec
	decisions  *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Reference table lookups by table and result.",
		}, []string{"table", "result"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "configured_objects_total",
			Help:      "Model objects processed by outcome.",
		}, []string{"outcome"}),
		sizingRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sizing_runs_total",
			Help:      "Sizing runs requested by result.",
		}, []string{"result"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requirement_decisions_total",
			Help:      "Feature requirement decisions by feature and outcome.",
		}, []string{"feature", "required"}),
	}
	if reg != nil {
		reg.MustRegister(m.lookups, m.outcomes, m.sizingRuns, m.decisions)
	}
	return m
}

// ObserveLookup implements standards.LookupObserver.
func (m *Metrics) ObserveLookup(table string, hit bool) {
	m.lookups.WithLabelValues(table, result(hit)).Inc()
}

func (m *Metrics) ObserveSizingRun(ok bool) {
	m.sizingRuns.WithLabelValues(result(ok)).Inc()
}

// ObserveRequirement implements requirements.DecisionObserver.
func (m *Metrics) ObserveRequirement(feature string, required bool) {
	m.decisions.WithLabelValues(feature, strconv.FormatBool(required)).Inc()
}

// ObserveReport counts every entry of a finished report.
func (m *Metrics) ObserveReport(r *report.Report) {
	for _, e := range r.Entries {
		m.outcomes.WithLabelValues(e.Outcome.String()).Inc()
	}
}

func result(ok bool) string {
	if ok {
		return "hit"
	}
	return "miss"
}
