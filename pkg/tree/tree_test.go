package tree_test

import (
	"testing"

	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/stretchr/testify/assert"
)

func TestFindAllDescendantUUIDs(t *testing.T) {
	m := testutils.Sample().Build()

	tests := []struct {
		name string
		id   string
		want []string
	}{
		{"Leaf", "r1", []string{"r1"}},
		{"Use Case Breadth First", "uc1", []string{"uc1", "p1", "s1", "s2", "s3", "r1"}},
		{"Missing Node", "ghost", []string{"ghost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.FindAllDescendantUUIDs(m, tt.id))
		})
	}

	t.Run("Whole Tree", func(t *testing.T) {
		got := tree.FindAllDescendantUUIDs(m, "root")
		assert.ElementsMatch(t, m.UUIDs(), got)
		assert.Equal(t, "root", got[0])
	})
}

func TestCountAllDescendants_CollapseInvariant(t *testing.T) {
	expanded := testutils.Sample().Build()
	collapsed := testutils.Sample().Collapse("tp1").Collapse("s1").Build()

	for _, id := range []string{"root", "m1", "tp1", "uc1", "s1", "r1", "m2"} {
		assert.Equal(t,
			tree.CountAllDescendants(expanded, id),
			tree.CountAllDescendants(collapsed, id),
			"count for %s must not depend on collapse", id)
	}

	assert.Equal(t, 9, tree.CountAllDescendants(expanded, "root"))
	assert.Equal(t, 5, tree.CountAllDescendants(expanded, "uc1"))
	assert.Equal(t, 0, tree.CountAllDescendants(expanded, "r1"))
	assert.Equal(t, 0, tree.CountAllDescendants(expanded, "ghost"))
}

func TestFindAllAncestorUUIDs(t *testing.T) {
	m := testutils.Sample().Build()

	assert.Equal(t, []string{"s1", "uc1", "tp1", "m1", "root"}, tree.FindAllAncestorUUIDs(m, "r1"))
	assert.Empty(t, tree.FindAllAncestorUUIDs(m, "root"))
	assert.Empty(t, tree.FindAllAncestorUUIDs(m, "ghost"))

	t.Run("Stops At Unresolved Parent", func(t *testing.T) {
		broken := testutils.Sample().Build()
		broken.Nodes["uc1"].ParentUUID = "missing"
		assert.Equal(t, []string{"s1", "uc1"}, tree.FindAllAncestorUUIDs(broken, "r1"))
	})

	t.Run("Stops On Cycle", func(t *testing.T) {
		cyclic := testutils.Sample().Build()
		cyclic.Nodes["m1"].ParentUUID = "tp1"
		assert.Equal(t, []string{"m1"}, tree.FindAllAncestorUUIDs(cyclic, "tp1"))
	})
}

func TestNodeChain(t *testing.T) {
	m := testutils.Sample().Build()

	c := tree.NodeChain(m, "s1")
	assert.Equal(t, []string{"root", "m1", "tp1", "uc1", "s1"}, c.UUIDs)
	assert.Len(t, c.Nodes, 5)
	assert.Same(t, m.Nodes["s1"], c.Nodes[4])

	p := c.Parent()
	assert.Equal(t, []string{"root", "m1", "tp1", "uc1"}, p.UUIDs)

	assert.Empty(t, tree.NodeChain(m, "ghost").UUIDs)
	assert.Equal(t, []string{"root"}, tree.NodeChain(m, "root").UUIDs)
}

func TestWalk(t *testing.T) {
	m := testutils.Sample().Build()

	var order []string
	tree.Walk(m, func(n *domain.Node, depth int) bool {
		order = append(order, n.UUID)
		return n.UUID != "s1"
	})
	assert.Equal(t, []string{"root", "m1", "tp1", "uc1", "p1", "s1", "s2", "s3", "m2"}, order)
}

func TestIsDescendant(t *testing.T) {
	m := testutils.Sample().Build()
	assert.True(t, tree.IsDescendant(m, "m1", "r1"))
	assert.True(t, tree.IsDescendant(m, "m1", "m1"))
	assert.False(t, tree.IsDescendant(m, "m2", "r1"))
	assert.Equal(t, 5, tree.Depth(m, "r1"))
}
