package history_test

import (
	"testing"

	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/history"
	"github.com/aretw0/arbor/pkg/reducer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistory(opts ...history.Option) func(history.State, domain.Action) history.State {
	opts = append([]history.Option{history.WithIgnoredActions(domain.ActionUpdateNodeSize)}, opts...)
	return history.Wrap(reducer.Reduce, opts...)
}

func TestHistory_NormalActionsPushPast(t *testing.T) {
	step := newHistory()
	s0 := testutils.Sample().Build()
	h := history.New(s0)

	h = step(h, domain.UpdateNodeText{NodeUUID: "s1", Name: "a"})
	require.Len(t, h.Past, 1)
	assert.Same(t, s0, h.Past[0])
	assert.True(t, h.CanUndo())
	assert.True(t, h.IsDirty())
	assert.False(t, h.CanRedo())

	t.Run("No-op Does Not Record", func(t *testing.T) {
		same := step(h, domain.UpdateNodeText{NodeUUID: "ghost", Name: "b"})
		assert.Len(t, same.Past, 1)
		assert.Same(t, h.Present, same.Present)
	})
}

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	step := newHistory()
	s0 := testutils.Sample().Build()
	h := history.New(s0)

	actions := []domain.Action{
		domain.UpdateNodeText{NodeUUID: "s1", Name: "Login"},
		domain.ReorderNode{DraggedNodeUUID: "s3", TargetSiblingUUID: "s1", Position: domain.Before},
		domain.DeleteNode{NodeUUID: "m2"},
		domain.CollapseAllNodes{},
	}
	for _, a := range actions {
		h = step(h, a)
	}
	final := h.Present

	for range actions {
		h = step(h, history.Undo{})
	}
	assert.Equal(t, s0, h.Present)
	assert.False(t, h.CanUndo())
	assert.Len(t, h.Future, len(actions))

	for range actions {
		h = step(h, history.Redo{})
	}
	assert.Equal(t, final, h.Present)
	assert.False(t, h.CanRedo())
	assert.Len(t, h.Past, len(actions))

	t.Run("Undo On Empty Past Is No-op", func(t *testing.T) {
		fresh := history.New(s0)
		assert.Equal(t, fresh, step(fresh, history.Undo{}))
		assert.Equal(t, fresh, step(fresh, history.Redo{}))
	})

	t.Run("New Action Clears Future", func(t *testing.T) {
		undone := step(h, history.Undo{})
		require.True(t, undone.CanRedo())
		branched := step(undone, domain.UpdateNodeText{NodeUUID: "s2", Name: "x"})
		assert.False(t, branched.CanRedo())
	})
}

func TestHistory_IgnoredActionsReplacePresent(t *testing.T) {
	step := newHistory()
	h := history.New(testutils.Sample().Build())
	h = step(h, domain.UpdateNodeText{NodeUUID: "s1", Name: "a"})
	h = step(h, history.Undo{})
	require.True(t, h.CanRedo())

	sized := step(h, domain.UpdateNodeSize{NodeUUID: "s1", Width: 10, Height: 10})
	assert.NotSame(t, h.Present, sized.Present)
	assert.Equal(t, h.Past, sized.Past)
	assert.Equal(t, h.Future, sized.Future, "transient updates keep redo available")
}

func TestHistory_CommitEditAtomicity(t *testing.T) {
	step := newHistory()
	s0 := testutils.Sample().Size("s1", 100, 30).Build()
	h := history.New(s0)

	// Transient resizes while the user is typing.
	for i := 1; i <= 3; i++ {
		h = step(h, domain.UpdateNodeSize{NodeUUID: "s1", Width: 100 + float64(i)*10, Height: 30})
	}
	require.Empty(t, h.Past)

	archive := s0
	final := reducer.Reduce(reducer.Reduce(h.Present, domain.UpdateNodeText{NodeUUID: "s1", Name: "typed"}),
		domain.UpdateNodeSize{NodeUUID: "s1", Width: 150, Height: 30})
	h = step(h, history.CommitEdit{Archive: archive, Present: final})

	require.Len(t, h.Past, 1)
	assert.Equal(t, "s1", h.Past[0].Nodes["s1"].Name)
	assert.True(t, h.Past[0].Nodes["s1"].HasSize(100, 30))
	assert.Same(t, final, h.Present)

	h = step(h, history.Undo{})
	assert.True(t, h.Present.Nodes["s1"].HasSize(100, 30))
}

func TestHistory_ResetAndClear(t *testing.T) {
	step := newHistory()
	h := history.New(testutils.Sample().Build())
	h = step(h, domain.UpdateNodeText{NodeUUID: "s1", Name: "a"})
	h = step(h, domain.UpdateNodeText{NodeUUID: "s1", Name: "b"})

	cleared := step(h, history.ClearHistory{})
	assert.Empty(t, cleared.Past)
	assert.Same(t, h.Present, cleared.Present)
	assert.False(t, cleared.IsDirty())

	undone := step(h, history.Undo{})
	require.True(t, undone.CanRedo())
	baseline := step(undone, history.ClearHistory{})
	assert.Empty(t, baseline.Past)
	assert.Empty(t, baseline.Future)
	assert.False(t, baseline.CanRedo())
	assert.Same(t, undone.Present, baseline.Present)

	other := testutils.NewBuilder("other").Build()
	reset := step(h, history.ResetHistory{Present: other})
	assert.Empty(t, reset.Past)
	assert.Empty(t, reset.Future)
	assert.Same(t, other, reset.Present)
}

func TestHistory_Limit(t *testing.T) {
	step := newHistory(history.WithLimit(2))
	h := history.New(testutils.Sample().Build())
	for _, name := range []string{"a", "b", "c", "d"} {
		h = step(h, domain.UpdateNodeText{NodeUUID: "s1", Name: name})
	}
	require.Len(t, h.Past, 2)
	assert.Equal(t, "b", h.Past[0].Nodes["s1"].Name)
	assert.Equal(t, "c", h.Past[1].Nodes["s1"].Name)
}
