package reducer

import (
	"fmt"
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
)

// Reduce applies action to state and discards the rejection reason.
func Reduce(state *domain.MindMap, action domain.Action) *domain.MindMap {
	next, _ := Apply(state, action)
	return next
}

// Apply applies action to state. When the returned error is non-nil the
// returned snapshot is state itself.
func Apply(state *domain.MindMap, action domain.Action) (*domain.MindMap, error) {
	if state == nil {
		state = domain.NewMindMap()
	}

	switch a := action.(type) {
	case domain.SetMindMap:
		if a.Data == nil {
			return domain.NewMindMap(), nil
		}
		return a.Data, nil
	case domain.UpdateNodeText:
		return updateNode(state, a.NodeUUID, func(n *domain.Node) error {
			n.Name = a.Name
			return nil
		})
	case domain.UpdateNodeType:
		return updateNodeType(state, a)
	case domain.UpdateNodePriority:
		return updateNodePriority(state, a)
	case domain.UpdateNodePosition:
		return updateNode(state, a.NodeUUID, func(n *domain.Node) error {
			n.Position = a.Position
			return nil
		})
	case domain.UpdateNodeSize:
		return updateNodeSize(state, a)
	case domain.ReparentNode:
		return reparent(state, a)
	case domain.ReorderNode:
		return reorder(state, a)
	case domain.ToggleNodeCollapse:
		return toggleCollapse(state, a)
	case domain.ExpandNodes:
		return expandNodes(state, a.NodeUUIDs)
	case domain.ExpandAllNodes:
		return setAllCollapsed(state, false)
	case domain.CollapseAllNodes:
		return setAllCollapsed(state, true)
	case domain.ExpandToLevel:
		return applyLevel(state, a.TargetTypes, func(r []int) int { return slices.Max(r) })
	case domain.CollapseToLevel:
		return applyLevel(state, a.TargetTypes, func(r []int) int { return slices.Min(r) })
	case domain.AddNode:
		return addNode(state, a)
	case domain.DeleteNode:
		return deleteNode(state, a)
	}

	if action == nil {
		return state, domain.ErrUnsupportedAction
	}
	return state, fmt.Errorf("%w: %s", domain.ErrUnsupportedAction, action.Kind())
}

// updateNode clones a single node, lets mutate edit the clone and publishes
// it in a shallow copy of state.
func updateNode(state *domain.MindMap, id string, mutate func(n *domain.Node) error) (*domain.MindMap, error) {
	n, ok := state.Node(id)
	if !ok {
		return state, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, id)
	}
	c := n.Clone()
	if err := mutate(c); err != nil {
		return state, err
	}
	next := state.ShallowCopy()
	next.Nodes[id] = c
	return next, nil
}

func updateNodeType(state *domain.MindMap, a domain.UpdateNodeType) (*domain.MindMap, error) {
	if !a.NodeType.Valid() {
		return state, fmt.Errorf("%w: %q", domain.ErrUnknownNodeType, a.NodeType)
	}
	return updateNode(state, a.NodeUUID, func(n *domain.Node) error {
		if n.NodeType == a.NodeType {
			return domain.ErrNoChange
		}
		n.NodeType = a.NodeType
		n.Name = a.NodeType.Label()
		return nil
	})
}

func updateNodePriority(state *domain.MindMap, a domain.UpdateNodePriority) (*domain.MindMap, error) {
	if !a.PriorityLevel.Valid() {
		return state, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, a.PriorityLevel)
	}
	return updateNode(state, a.NodeUUID, func(n *domain.Node) error {
		if n.PriorityLevel == a.PriorityLevel {
			return domain.ErrNoChange
		}
		n.PriorityLevel = a.PriorityLevel
		return nil
	})
}

func updateNodeSize(state *domain.MindMap, a domain.UpdateNodeSize) (*domain.MindMap, error) {
	return updateNode(state, a.NodeUUID, func(n *domain.Node) error {
		if n.HasSize(a.Width, a.Height) {
			return domain.ErrNoChange
		}
		n.SetSize(a.Width, a.Height)
		return nil
	})
}

func toggleCollapse(state *domain.MindMap, a domain.ToggleNodeCollapse) (*domain.MindMap, error) {
	if a.NodeUUID != "" && a.NodeUUID == state.RootUUID {
		return state, domain.ErrRootImmutable
	}
	return updateNode(state, a.NodeUUID, func(n *domain.Node) error {
		n.IsCollapsed = !n.IsCollapsed
		return nil
	})
}

func expandNodes(state *domain.MindMap, ids []string) (*domain.MindMap, error) {
	var next *domain.MindMap
	for _, id := range ids {
		n, ok := state.Node(id)
		if !ok || !n.IsCollapsed {
			continue
		}
		if next == nil {
			next = state.ShallowCopy()
		}
		c := n.Clone()
		c.IsCollapsed = false
		next.Nodes[id] = c
	}
	if next == nil {
		return state, domain.ErrNoChange
	}
	return next, nil
}

// setAllCollapsed sets the flag on every node. The root is only ever expanded.
func setAllCollapsed(state *domain.MindMap, collapsed bool) (*domain.MindMap, error) {
	return setCollapsedWhere(state, func(n *domain.Node) (bool, bool) {
		if n.UUID == state.RootUUID {
			return false, true
		}
		return collapsed, true
	})
}

// applyLevel maps each target type to its rank, picks the threshold with
// pick and collapses every ranked node at or beyond it.
func applyLevel(state *domain.MindMap, targets []domain.NodeType, pick func([]int) int) (*domain.MindMap, error) {
	if len(targets) == 0 {
		return state, domain.ErrNoChange
	}
	ranks := make([]int, 0, len(targets))
	for _, t := range targets {
		r := t.Rank()
		if r < 0 {
			return state, fmt.Errorf("%w: %q", domain.ErrUnknownNodeType, t)
		}
		ranks = append(ranks, r)
	}
	threshold := pick(ranks)

	return setCollapsedWhere(state, func(n *domain.Node) (bool, bool) {
		if n.UUID == state.RootUUID {
			return false, true
		}
		r := n.NodeType.Rank()
		if r < 0 {
			return false, false
		}
		return r >= threshold, true
	})
}

// setCollapsedWhere applies want to each node; want returns the desired flag
// and whether the node participates at all.
func setCollapsedWhere(state *domain.MindMap, want func(n *domain.Node) (bool, bool)) (*domain.MindMap, error) {
	var next *domain.MindMap
	for id, n := range state.Nodes {
		collapsed, ok := want(n)
		if !ok || n.IsCollapsed == collapsed {
			continue
		}
		if next == nil {
			next = state.ShallowCopy()
		}
		c := n.Clone()
		c.IsCollapsed = collapsed
		next.Nodes[id] = c
	}
	if next == nil {
		return state, domain.ErrNoChange
	}
	return next, nil
}

// renumber rewrites sortNumber of every child of parentID to its 1-based
// index. Only nodes whose number changes are cloned.
func renumber(next *domain.MindMap, parentID string) {
	parent, ok := next.Node(parentID)
	if !ok {
		return
	}
	for i, id := range parent.ChildNodeList {
		n, ok := next.Node(id)
		if !ok || n.SortNumber == i+1 {
			continue
		}
		c := n.Clone()
		c.SortNumber = i + 1
		next.Nodes[id] = c
	}
}
