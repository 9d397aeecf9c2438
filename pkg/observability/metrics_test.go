package observability_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	var forwarded int
	hooks := m.Hooks(domain.Hooks{
		OnChange: func(*domain.ChangeInfo) { forwarded++ },
	})

	doc := domain.NewMindMap()
	hooks.OnChange(&domain.ChangeInfo{OperationType: domain.OpReorderNode, CurrentData: doc, AffectedNodeUUIDs: []string{"a"}})
	hooks.OnChange(&domain.ChangeInfo{OperationType: domain.OpReorderNode, CurrentData: doc})
	hooks.OnReject(&domain.RejectEvent{Action: domain.ActionReorderNode, Reason: fmt.Errorf("wrapped: %w", domain.ErrStepBeforePrecondition)})
	hooks.OnSave(&domain.ChangeInfo{})

	assert.Equal(t, 2, forwarded)

	expected := `
# HELP arbor_changes_total Applied document changes by operation type.
# TYPE arbor_changes_total counter
arbor_changes_total{operation="REORDER_NODE"} 2
# HELP arbor_saves_total Save requests handed to the host.
# TYPE arbor_saves_total counter
arbor_saves_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "arbor_changes_total", "arbor_saves_total"))
	n, err := testutil.GatherAndCount(reg, "arbor_rejections_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrReadOnly, "read_only"},
		{fmt.Errorf("x: %w", domain.ErrNodeNotFound), "not_found"},
		{fmt.Errorf("%w: nodes not measured yet", domain.ErrNoChange), "no_change"},
		{assert.AnError, "other"},
		{nil, "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, observability.Reason(tt.err))
	}
}
