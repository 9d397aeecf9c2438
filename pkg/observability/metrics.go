package observability

import (
	"errors"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts editor notifications.
type Metrics struct {
	changes  *prometheus.CounterVec
	rejects  *prometheus.CounterVec
	affected prometheus.Histogram
	saves    prometheus.Counter
	useCases prometheus.Counter
	nodes    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "changes_total",
			Help:      "Applied document changes by operation type.",
		}, []string{"operation"}),
		rejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "rejections_total",
			Help:      "Refused commands by action and reason.",
		}, []string{"action", "reason"}),
		affected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "arbor",
			Name:      "affected_nodes",
			Help:      "Number of nodes touched by a single change.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "saves_total",
			Help:      "Save requests handed to the host.",
		}),
		useCases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "use_case_executions_total",
			Help:      "Use case execution requests handed to the host.",
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "arbor",
			Name:      "document_nodes",
			Help:      "Node count of the present document.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.changes, m.rejects, m.affected, m.saves, m.useCases, m.nodes)
	}
	return m
}

// Hooks returns hooks that record metrics and then call next.
func (m *Metrics) Hooks(next domain.Hooks) domain.Hooks {
	return domain.Hooks{
		OnChange: func(info *domain.ChangeInfo) {
			m.ObserveChange(info)
			if next.OnChange != nil {
				next.OnChange(info)
			}
		},
		OnReject: func(ev *domain.RejectEvent) {
			m.ObserveReject(ev)
			if next.OnReject != nil {
				next.OnReject(ev)
			}
		},
		OnSave: func(info *domain.ChangeInfo) {
			m.saves.Inc()
			if next.OnSave != nil {
				next.OnSave(info)
			}
		},
		OnExecuteUseCase: func(info *domain.ChangeInfo) {
			m.useCases.Inc()
			if next.OnExecuteUseCase != nil {
				next.OnExecuteUseCase(info)
			}
		},
	}
}

// ObserveChange records an applied change.
func (m *Metrics) ObserveChange(info *domain.ChangeInfo) {
	if info == nil {
		return
	}
	m.changes.WithLabelValues(string(info.OperationType)).Inc()
	m.affected.Observe(float64(len(info.AffectedNodeUUIDs)))
	if info.CurrentData != nil {
		m.nodes.Set(float64(info.CurrentData.Len()))
	}
}

// ObserveReject records a refused command.
func (m *Metrics) ObserveReject(ev *domain.RejectEvent) {
	if ev == nil {
		return
	}
	m.rejects.WithLabelValues(string(ev.Action), Reason(ev.Reason)).Inc()
}

var reasons = []struct {
	err   error
	label string
}{
	{domain.ErrReadOnly, "read_only"},
	{domain.ErrNodeNotFound, "not_found"},
	{domain.ErrStepBeforePrecondition, "step_before_precondition"},
	{domain.ErrNotReorderable, "not_reorderable"},
	{domain.ErrPriorityNotEditable, "priority_not_editable"},
	{domain.ErrRootImmutable, "root_immutable"},
	{domain.ErrInvalidParent, "invalid_parent"},
	{domain.ErrInvalidNode, "invalid_node"},
	{domain.ErrInvalidPriority, "invalid_priority"},
	{domain.ErrUnknownNodeType, "unknown_node_type"},
	{domain.ErrInvalidReorderPosition, "invalid_position"},
	{domain.ErrUseCaseExecutionDisabled, "use_case_disabled"},
	{domain.ErrNothingToUndo, "nothing_to_undo"},
	{domain.ErrNothingToRedo, "nothing_to_redo"},
	{domain.ErrUnsupportedAction, "unsupported"},
	{domain.ErrNoChange, "no_change"},
}

// Reason maps a rejection error to a low-cardinality label.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "other"
}
