package reducer_test

import (
	"testing"

	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/reducer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepsFixture() *domain.MindMap {
	return testutils.NewBuilder("root").
		Add("root", "uc", domain.NodeTypeUseCase).
		Add("uc", "P", domain.NodeTypePrecondition).
		Add("uc", "S1", domain.NodeTypeStep).
		Add("uc", "S2", domain.NodeTypeStep).
		Add("uc", "S3", domain.NodeTypeStep).
		Build()
}

func TestReorder_PreconditionBoundary(t *testing.T) {
	t.Run("Step Moves Among Steps", func(t *testing.T) {
		state := stepsFixture()
		next, err := reducer.Apply(state, domain.ReorderNode{
			DraggedNodeUUID:   "S3",
			TargetSiblingUUID: "S1",
			Position:          domain.Before,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"P", "S3", "S1", "S2"}, next.Nodes["uc"].ChildNodeList)

		for i, id := range next.Nodes["uc"].ChildNodeList {
			assert.Equal(t, i+1, next.Nodes[id].SortNumber, "sortNumber of %s", id)
		}
	})

	t.Run("Step Before Precondition Is Rejected", func(t *testing.T) {
		state := stepsFixture()
		next, err := reducer.Apply(state, domain.ReorderNode{
			DraggedNodeUUID:   "S1",
			TargetSiblingUUID: "P",
			Position:          domain.Before,
		})
		assert.ErrorIs(t, err, domain.ErrStepBeforePrecondition)
		assert.Same(t, state, next)
		assert.Equal(t, []string{"P", "S1", "S2", "S3"}, next.Nodes["uc"].ChildNodeList)
	})

	t.Run("Step Right After Precondition Is Allowed", func(t *testing.T) {
		state := stepsFixture()
		next, err := reducer.Apply(state, domain.ReorderNode{
			DraggedNodeUUID:   "S3",
			TargetSiblingUUID: "P",
			Position:          domain.After,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"P", "S3", "S1", "S2"}, next.Nodes["uc"].ChildNodeList)
	})

	t.Run("Precondition May Move Freely", func(t *testing.T) {
		state := stepsFixture()
		next, err := reducer.Apply(state, domain.ReorderNode{
			DraggedNodeUUID:   "P",
			TargetSiblingUUID: "S2",
			Position:          domain.After,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"S1", "S2", "P", "S3"}, next.Nodes["uc"].ChildNodeList)
	})

	t.Run("Step Cannot Land Before Any Precondition", func(t *testing.T) {
		state := testutils.NewBuilder("root").
			Add("root", "uc", domain.NodeTypeUseCase).
			Add("uc", "P1", domain.NodeTypePrecondition).
			Add("uc", "P2", domain.NodeTypePrecondition).
			Add("uc", "S1", domain.NodeTypeStep).
			Build()

		next, err := reducer.Apply(state, domain.ReorderNode{
			DraggedNodeUUID:   "S1",
			TargetSiblingUUID: "P2",
			Position:          domain.Before,
		})
		assert.ErrorIs(t, err, domain.ErrStepBeforePrecondition)
		assert.Same(t, state, next)
	})

	t.Run("Step Listed Ahead Of Precondition May Move Behind It", func(t *testing.T) {
		state := testutils.NewBuilder("root").
			Add("root", "uc", domain.NodeTypeUseCase).
			Add("uc", "S1", domain.NodeTypeStep).
			Add("uc", "P", domain.NodeTypePrecondition).
			Add("uc", "S2", domain.NodeTypeStep).
			Build()

		next, err := reducer.Apply(state, domain.ReorderNode{
			DraggedNodeUUID:   "S1",
			TargetSiblingUUID: "P",
			Position:          domain.After,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"P", "S1", "S2"}, next.Nodes["uc"].ChildNodeList)

		_, err = reducer.Apply(state, domain.ReorderNode{
			DraggedNodeUUID:   "S2",
			TargetSiblingUUID: "S1",
			Position:          domain.Before,
		})
		assert.ErrorIs(t, err, domain.ErrStepBeforePrecondition)
	})

	t.Run("Untouched Siblings Are Shared", func(t *testing.T) {
		state := stepsFixture()
		next := reducer.Reduce(state, domain.ReorderNode{
			DraggedNodeUUID:   "S3",
			TargetSiblingUUID: "S2",
			Position:          domain.Before,
		})
		assert.Equal(t, []string{"P", "S1", "S3", "S2"}, next.Nodes["uc"].ChildNodeList)
		assert.Same(t, state.Nodes["P"], next.Nodes["P"])
		assert.Same(t, state.Nodes["S1"], next.Nodes["S1"])
		assert.Equal(t, 3, next.Nodes["S3"].SortNumber)
		assert.Equal(t, 4, next.Nodes["S2"].SortNumber)
	})
}
