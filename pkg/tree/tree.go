// Package tree provides pure traversal helpers over a domain.MindMap.
//
// All walks use explicit work lists so that pathological documents cannot
// exhaust the goroutine stack, and all of them tolerate dangling references
// and cycles by stopping at the first unresolved or revisited node.
package tree

import "github.com/aretw0/arbor/pkg/domain"

// FindAllDescendantUUIDs returns the subtree rooted at uuid in breadth-first
// order, starting with uuid itself. A missing uuid yields just that uuid so
// that cascading deletes stay idempotent.
func FindAllDescendantUUIDs(m *domain.MindMap, uuid string) []string {
	out := []string{}
	seen := make(map[string]bool)
	queue := []string{uuid}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if seen[current] {
			continue
		}
		seen[current] = true
		out = append(out, current)

		if n, ok := m.Node(current); ok {
			queue = append(queue, n.ChildNodeList...)
		}
	}
	return out
}

// DescendantSet is FindAllDescendantUUIDs as a set.
func DescendantSet(m *domain.MindMap, uuid string) map[string]bool {
	ids := FindAllDescendantUUIDs(m, uuid)
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// CountAllDescendants counts every node below uuid, excluding uuid itself.
// Collapsed nodes are counted with their whole subtree: collapse changes
// visibility, never the count.
func CountAllDescendants(m *domain.MindMap, uuid string) int {
	root, ok := m.Node(uuid)
	if !ok {
		return 0
	}

	count := 0
	seen := map[string]bool{uuid: true}
	stack := append([]string(nil), root.ChildNodeList...)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[current] {
			continue
		}
		seen[current] = true

		n, ok := m.Node(current)
		if !ok {
			// Dangling child ids are still listed by their parent.
			count++
			continue
		}
		count++
		stack = append(stack, n.ChildNodeList...)
	}
	return count
}

// FindAllAncestorUUIDs walks parent links upward from uuid and returns the
// ancestors nearest first. The walk stops at the root or at the first parent
// that cannot be resolved.
func FindAllAncestorUUIDs(m *domain.MindMap, uuid string) []string {
	ancestors := []string{}
	current, ok := m.Node(uuid)
	if !ok {
		return ancestors
	}

	seen := map[string]bool{uuid: true}
	for current.ParentUUID != "" {
		parent, ok := m.Node(current.ParentUUID)
		if !ok || seen[parent.UUID] {
			break
		}
		seen[parent.UUID] = true
		ancestors = append(ancestors, parent.UUID)
		current = parent
	}
	return ancestors
}

// Chain is the path from the root down to a node.
type Chain struct {
	UUIDs []string
	Nodes []*domain.Node
}

// Parent returns the chain without its last element.
func (c Chain) Parent() Chain {
	if len(c.UUIDs) == 0 {
		return Chain{UUIDs: []string{}, Nodes: []*domain.Node{}}
	}
	return Chain{UUIDs: c.UUIDs[:len(c.UUIDs)-1], Nodes: c.Nodes[:len(c.Nodes)-1]}
}

// NodeChain returns the uuids and nodes from the root (or the highest
// resolvable ancestor) down to uuid, inclusive.
func NodeChain(m *domain.MindMap, uuid string) Chain {
	n, ok := m.Node(uuid)
	if !ok {
		return Chain{UUIDs: []string{}, Nodes: []*domain.Node{}}
	}

	ancestors := FindAllAncestorUUIDs(m, uuid)
	c := Chain{
		UUIDs: make([]string, 0, len(ancestors)+1),
		Nodes: make([]*domain.Node, 0, len(ancestors)+1),
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		a := m.Nodes[ancestors[i]]
		c.UUIDs = append(c.UUIDs, a.UUID)
		c.Nodes = append(c.Nodes, a)
	}
	c.UUIDs = append(c.UUIDs, n.UUID)
	c.Nodes = append(c.Nodes, n)
	return c
}

// Depth returns the number of ancestors of uuid.
func Depth(m *domain.MindMap, uuid string) int {
	return len(FindAllAncestorUUIDs(m, uuid))
}

// Walk visits the nodes reachable from the root in depth-first pre-order,
// following childNodeList order. visit returns false to skip a subtree.
func Walk(m *domain.MindMap, visit func(n *domain.Node, depth int) bool) {
	root, ok := m.Root()
	if !ok {
		return
	}

	type frame struct {
		id    string
		depth int
	}
	seen := make(map[string]bool)
	stack := []frame{{root.UUID, 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[f.id] {
			continue
		}
		seen[f.id] = true

		n, ok := m.Node(f.id)
		if !ok {
			continue
		}
		if !visit(n, f.depth) {
			continue
		}
		for i := len(n.ChildNodeList) - 1; i >= 0; i-- {
			stack = append(stack, frame{n.ChildNodeList[i], f.depth + 1})
		}
	}
}

// IsDescendant reports whether candidate lies in the subtree of uuid (inclusive).
func IsDescendant(m *domain.MindMap, uuid, candidate string) bool {
	if uuid == candidate {
		return true
	}
	for _, a := range FindAllAncestorUUIDs(m, candidate) {
		if a == uuid {
			return true
		}
	}
	return false
}
