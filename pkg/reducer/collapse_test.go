package reducer_test

import (
	"testing"

	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/reducer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapse_ToggleAndExpand(t *testing.T) {
	state := testutils.Sample().Build()

	collapsed := reducer.Reduce(state, domain.ToggleNodeCollapse{NodeUUID: "uc1"})
	assert.True(t, collapsed.Nodes["uc1"].IsCollapsed)

	reopened := reducer.Reduce(collapsed, domain.ToggleNodeCollapse{NodeUUID: "uc1"})
	assert.False(t, reopened.Nodes["uc1"].IsCollapsed)

	expanded := reducer.Reduce(collapsed, domain.ExpandNodes{NodeUUIDs: []string{"uc1", "m2"}})
	assert.False(t, expanded.Nodes["uc1"].IsCollapsed)
	assert.Same(t, collapsed.Nodes["m2"], expanded.Nodes["m2"])
}

func TestCollapse_All(t *testing.T) {
	state := testutils.Sample().Build()

	all, err := reducer.Apply(state, domain.CollapseAllNodes{})
	require.NoError(t, err)
	for id, n := range all.Nodes {
		assert.Equal(t, id != "root", n.IsCollapsed, "node %s", id)
	}

	again, err := reducer.Apply(all, domain.CollapseAllNodes{})
	assert.ErrorIs(t, err, domain.ErrNoChange)
	assert.Same(t, all, again)

	open, err := reducer.Apply(all, domain.ExpandAllNodes{})
	require.NoError(t, err)
	for id, n := range open.Nodes {
		assert.False(t, n.IsCollapsed, "node %s", id)
	}

	_, err = reducer.Apply(open, domain.ExpandAllNodes{})
	assert.ErrorIs(t, err, domain.ErrNoChange)
}

func TestCollapse_LevelThreshold(t *testing.T) {
	tests := []struct {
		name      string
		action    domain.Action
		threshold int
	}{
		{
			name:      "Expand To Level Uses Max Rank",
			action:    domain.ExpandToLevel{TargetTypes: []domain.NodeType{domain.NodeTypeModule, domain.NodeTypeUseCase}},
			threshold: domain.NodeTypeUseCase.Rank(),
		},
		{
			name:      "Collapse To Level Uses Min Rank",
			action:    domain.CollapseToLevel{TargetTypes: []domain.NodeType{domain.NodeTypeUseCase, domain.NodeTypeTestPoint}},
			threshold: domain.NodeTypeTestPoint.Rank(),
		},
		{
			name:      "Collapse At Module",
			action:    domain.CollapseToLevel{TargetTypes: []domain.NodeType{domain.NodeTypeModule}},
			threshold: domain.NodeTypeModule.Rank(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutils.Sample().Add("m2", "g", domain.NodeTypeGeneral).Collapse("g")
			state := b.Build()
			// A collapsed root must be reopened by level operations.
			state.Nodes["root"].IsCollapsed = true

			next, err := reducer.Apply(state, tt.action)
			require.NoError(t, err)

			for id, n := range next.Nodes {
				switch {
				case id == "root":
					assert.False(t, n.IsCollapsed, "root is always open")
				case n.NodeType.Rank() < 0:
					assert.Equal(t, state.Nodes[id].IsCollapsed, n.IsCollapsed, "unranked %s is untouched", id)
				default:
					assert.Equal(t, n.NodeType.Rank() >= tt.threshold, n.IsCollapsed, "node %s", id)
				}
			}
		})
	}
}
