package reducer_test

import (
	"testing"

	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/reducer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_NoOpReturnsSameReference(t *testing.T) {
	base := testutils.Sample().Collapse("tp1").Size("s1", 100, 40).Priority("uc1", domain.PriorityP1)

	tests := []struct {
		name    string
		action  domain.Action
		wantErr error
	}{
		{"Text Missing Target", domain.UpdateNodeText{NodeUUID: "ghost", Name: "x"}, domain.ErrNodeNotFound},
		{"Type Missing Target", domain.UpdateNodeType{NodeUUID: "ghost", NodeType: domain.NodeTypeStep}, domain.ErrNodeNotFound},
		{"Type Unchanged", domain.UpdateNodeType{NodeUUID: "s1", NodeType: domain.NodeTypeStep}, domain.ErrNoChange},
		{"Type Unknown", domain.UpdateNodeType{NodeUUID: "s1", NodeType: "BOGUS"}, domain.ErrUnknownNodeType},
		{"Priority Missing Target", domain.UpdateNodePriority{NodeUUID: "ghost", PriorityLevel: domain.PriorityP0}, domain.ErrNodeNotFound},
		{"Priority Unchanged", domain.UpdateNodePriority{NodeUUID: "uc1", PriorityLevel: domain.PriorityP1}, domain.ErrNoChange},
		{"Position Missing Target", domain.UpdateNodePosition{NodeUUID: "ghost"}, domain.ErrNodeNotFound},
		{"Size Missing Target", domain.UpdateNodeSize{NodeUUID: "ghost", Width: 1, Height: 1}, domain.ErrNodeNotFound},
		{"Size Unchanged", domain.UpdateNodeSize{NodeUUID: "s1", Width: 100, Height: 40}, domain.ErrNoChange},
		{"Reparent Missing Node", domain.ReparentNode{NodeUUID: "ghost", NewParentUUID: "m2", OldParentUUID: "m1"}, domain.ErrNodeNotFound},
		{"Reparent Missing New Parent", domain.ReparentNode{NodeUUID: "tp1", NewParentUUID: "ghost", OldParentUUID: "m1"}, domain.ErrNodeNotFound},
		{"Reparent Missing Old Parent", domain.ReparentNode{NodeUUID: "tp1", NewParentUUID: "m2", OldParentUUID: "ghost"}, domain.ErrNodeNotFound},
		{"Reparent Into Own Subtree", domain.ReparentNode{NodeUUID: "m1", NewParentUUID: "uc1", OldParentUUID: "root"}, domain.ErrInvalidParent},
		{"Reorder Missing Node", domain.ReorderNode{DraggedNodeUUID: "ghost", TargetSiblingUUID: "s1", Position: domain.Before}, domain.ErrNodeNotFound},
		{"Reorder Missing Sibling", domain.ReorderNode{DraggedNodeUUID: "s1", TargetSiblingUUID: "m2", Position: domain.Before}, domain.ErrNodeNotFound},
		{"Reorder Same Place", domain.ReorderNode{DraggedNodeUUID: "s2", TargetSiblingUUID: "s1", Position: domain.After}, domain.ErrNoChange},
		{"Reorder Root", domain.ReorderNode{DraggedNodeUUID: "root", TargetSiblingUUID: "m1", Position: domain.Before}, domain.ErrRootImmutable},
		{"Reorder Bad Position", domain.ReorderNode{DraggedNodeUUID: "s2", TargetSiblingUUID: "s1", Position: "middle"}, domain.ErrInvalidReorderPosition},
		{"Toggle Missing Target", domain.ToggleNodeCollapse{NodeUUID: "ghost"}, domain.ErrNodeNotFound},
		{"Toggle Root", domain.ToggleNodeCollapse{NodeUUID: "root"}, domain.ErrRootImmutable},
		{"Expand Nodes None Collapsed", domain.ExpandNodes{NodeUUIDs: []string{"m1", "ghost"}}, domain.ErrNoChange},
		{"Expand To Level Unknown Type", domain.ExpandToLevel{TargetTypes: []domain.NodeType{domain.NodeTypeStep, "NOPE"}}, domain.ErrUnknownNodeType},
		{"Collapse To Level Unknown Type", domain.CollapseToLevel{TargetTypes: []domain.NodeType{"NOPE"}}, domain.ErrUnknownNodeType},
		{"Collapse To Level Empty", domain.CollapseToLevel{}, domain.ErrNoChange},
		{"Add Under Missing Parent", domain.AddNode{Node: &domain.Node{UUID: "n", NodeType: domain.NodeTypeStep}, ParentUUID: "ghost"}, domain.ErrNodeNotFound},
		{"Add Duplicate", domain.AddNode{Node: &domain.Node{UUID: "s1", NodeType: domain.NodeTypeStep}, ParentUUID: "uc1"}, domain.ErrInvalidNode},
		{"Delete Missing", domain.DeleteNode{NodeUUID: "ghost"}, domain.ErrNodeNotFound},
		{"Delete Root", domain.DeleteNode{NodeUUID: "root"}, domain.ErrRootImmutable},
		{"Unsupported", nil, domain.ErrUnsupportedAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := base.Build()
			next, err := reducer.Apply(state, tt.action)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Same(t, state, next)
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	state := testutils.Sample().Build()
	snapshot := state.Clone()

	actions := []domain.Action{
		domain.UpdateNodeText{NodeUUID: "s1", Name: "renamed"},
		domain.UpdateNodeType{NodeUUID: "s1", NodeType: domain.NodeTypeGeneral},
		domain.UpdateNodePriority{NodeUUID: "uc1", PriorityLevel: domain.PriorityP2},
		domain.UpdateNodePosition{NodeUUID: "s1", Position: domain.Position{X: 5, Y: 6}},
		domain.UpdateNodeSize{NodeUUID: "s1", Width: 10, Height: 20},
		domain.ReparentNode{NodeUUID: "tp1", NewParentUUID: "m2", OldParentUUID: "m1"},
		domain.ReorderNode{DraggedNodeUUID: "s3", TargetSiblingUUID: "s1", Position: domain.Before},
		domain.ToggleNodeCollapse{NodeUUID: "m1"},
		domain.CollapseAllNodes{},
		domain.ExpandToLevel{TargetTypes: []domain.NodeType{domain.NodeTypeUseCase}},
		domain.AddNode{Node: &domain.Node{UUID: "new", NodeType: domain.NodeTypeStep}, ParentUUID: "uc1", Index: 1},
		domain.DeleteNode{NodeUUID: "uc1"},
	}

	for _, a := range actions {
		next, err := reducer.Apply(state, a)
		require.NoError(t, err, "action %s", a.Kind())
		assert.NotSame(t, state, next, "action %s", a.Kind())
		assert.Equal(t, snapshot, state, "action %s mutated its input", a.Kind())
	}
}

func TestApply_FieldUpdates(t *testing.T) {
	state := testutils.Sample().Build()

	t.Run("Text", func(t *testing.T) {
		next := reducer.Reduce(state, domain.UpdateNodeText{NodeUUID: "s1", Name: "Open page"})
		assert.Equal(t, "Open page", next.Nodes["s1"].Name)
		assert.Same(t, state.Nodes["s2"], next.Nodes["s2"], "untouched nodes are shared")
	})

	t.Run("Type Resets Name To Label", func(t *testing.T) {
		next := reducer.Reduce(state, domain.UpdateNodeType{NodeUUID: "s1", NodeType: domain.NodeTypeExpectedResult})
		assert.Equal(t, domain.NodeTypeExpectedResult, next.Nodes["s1"].NodeType)
		assert.Equal(t, "Expected Result", next.Nodes["s1"].Name)
	})

	t.Run("Priority", func(t *testing.T) {
		next := reducer.Reduce(state, domain.UpdateNodePriority{NodeUUID: "uc1", PriorityLevel: domain.PriorityP0})
		assert.Equal(t, domain.PriorityP0, next.Nodes["uc1"].PriorityLevel)
	})

	t.Run("Size", func(t *testing.T) {
		next := reducer.Reduce(state, domain.UpdateNodeSize{NodeUUID: "s1", Width: 120, Height: 36})
		assert.True(t, next.Nodes["s1"].HasSize(120, 36))
		assert.False(t, state.Nodes["s1"].Measured())
	})

	t.Run("Set Mind Map", func(t *testing.T) {
		other := testutils.NewBuilder("x").Build()
		assert.Same(t, other, reducer.Reduce(state, domain.SetMindMap{Data: other}))
	})
}

func TestApply_Reparent(t *testing.T) {
	state := testutils.Sample().Build()

	next, err := reducer.Apply(state, domain.ReparentNode{NodeUUID: "s2", NewParentUUID: "m2", OldParentUUID: "uc1"})
	require.NoError(t, err)

	assert.Equal(t, "m2", next.Nodes["s2"].ParentUUID)
	assert.Equal(t, []string{"p1", "s1", "s3"}, next.Nodes["uc1"].ChildNodeList)
	assert.Equal(t, []string{"s2"}, next.Nodes["m2"].ChildNodeList)
	assert.Equal(t, 3, next.Nodes["s3"].SortNumber)
	assert.Equal(t, 1, next.Nodes["s2"].SortNumber)
}

func TestApply_AddAndDelete(t *testing.T) {
	state := testutils.Sample().Build()

	added, err := reducer.Apply(state, domain.AddNode{
		Node:       &domain.Node{UUID: "s0", Name: "Step", NodeType: domain.NodeTypeStep},
		ParentUUID: "uc1",
		Index:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "s0", "s1", "s2", "s3"}, added.Nodes["uc1"].ChildNodeList)
	assert.Equal(t, "uc1", added.Nodes["s0"].ParentUUID)
	assert.Equal(t, 2, added.Nodes["s0"].SortNumber)
	assert.Equal(t, 5, added.Nodes["s3"].SortNumber)

	appended := reducer.Reduce(state, domain.AddNode{
		Node:       &domain.Node{UUID: "m3", NodeType: domain.NodeTypeModule},
		ParentUUID: "root",
		Index:      -1,
	})
	assert.Equal(t, []string{"m1", "m2", "m3"}, appended.Nodes["root"].ChildNodeList)

	deleted, err := reducer.Apply(state, domain.DeleteNode{NodeUUID: "tp1"})
	require.NoError(t, err)
	for _, id := range []string{"tp1", "uc1", "p1", "s1", "r1", "s2", "s3"} {
		assert.NotContains(t, deleted.Nodes, id)
	}
	assert.Empty(t, deleted.Nodes["m1"].ChildNodeList)
	assert.Len(t, deleted.Nodes, 3)
}
