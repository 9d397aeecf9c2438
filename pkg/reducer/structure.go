package reducer

import (
	"fmt"
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// reorder moves the dragged node within its current sibling list.
// A STEP may never land at or before the last PRECONDITION sibling.
func reorder(state *domain.MindMap, a domain.ReorderNode) (*domain.MindMap, error) {
	if !a.Position.Valid() {
		return state, fmt.Errorf("%w: %q", domain.ErrInvalidReorderPosition, a.Position)
	}
	dragged, ok := state.Node(a.DraggedNodeUUID)
	if !ok {
		return state, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, a.DraggedNodeUUID)
	}
	if dragged.IsRoot() {
		return state, domain.ErrRootImmutable
	}
	parent, ok := state.Node(dragged.ParentUUID)
	if !ok {
		return state, fmt.Errorf("%w: parent %q", domain.ErrNodeNotFound, dragged.ParentUUID)
	}
	if a.DraggedNodeUUID == a.TargetSiblingUUID {
		return state, domain.ErrNoChange
	}

	original := parent.ChildNodeList
	from := slices.Index(original, a.DraggedNodeUUID)
	if from < 0 {
		return state, fmt.Errorf("%w: %q is not listed by its parent", domain.ErrNodeNotFound, a.DraggedNodeUUID)
	}
	remaining := slices.Delete(slices.Clone(original), from, from+1)

	at := slices.Index(remaining, a.TargetSiblingUUID)
	if at < 0 {
		return state, fmt.Errorf("%w: sibling %q", domain.ErrNodeNotFound, a.TargetSiblingUUID)
	}
	if a.Position == domain.After {
		at++
	}

	if dragged.NodeType == domain.NodeTypeStep {
		if last := lastIndexOfType(state, remaining, domain.NodeTypePrecondition); last >= 0 && at <= last {
			return state, domain.ErrStepBeforePrecondition
		}
	}

	children := slices.Insert(remaining, at, a.DraggedNodeUUID)
	if slices.Equal(children, original) {
		return state, domain.ErrNoChange
	}

	next := state.ShallowCopy()
	p := parent.Clone()
	p.ChildNodeList = children
	next.Nodes[p.UUID] = p
	renumber(next, p.UUID)
	return next, nil
}

func lastIndexOfType(state *domain.MindMap, ids []string, t domain.NodeType) int {
	for i := len(ids) - 1; i >= 0; i-- {
		if n, ok := state.Node(ids[i]); ok && n.NodeType == t {
			return i
		}
	}
	return -1
}

// reparent detaches a node from its parent and appends it to a new one.
func reparent(state *domain.MindMap, a domain.ReparentNode) (*domain.MindMap, error) {
	node, ok := state.Node(a.NodeUUID)
	if !ok {
		return state, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, a.NodeUUID)
	}
	if node.IsRoot() {
		return state, domain.ErrRootImmutable
	}
	oldID := a.OldParentUUID
	if oldID == "" {
		oldID = node.ParentUUID
	}
	oldParent, ok := state.Node(oldID)
	if !ok {
		return state, fmt.Errorf("%w: old parent %q", domain.ErrNodeNotFound, oldID)
	}
	newParent, ok := state.Node(a.NewParentUUID)
	if !ok {
		return state, fmt.Errorf("%w: new parent %q", domain.ErrNodeNotFound, a.NewParentUUID)
	}
	if oldID != node.ParentUUID {
		return state, fmt.Errorf("%w: %q is not the parent of %q", domain.ErrInvalidParent, oldID, a.NodeUUID)
	}
	if oldID == newParent.UUID {
		return state, domain.ErrNoChange
	}
	if tree.IsDescendant(state, a.NodeUUID, newParent.UUID) {
		return state, fmt.Errorf("%w: %q is inside the moved subtree", domain.ErrInvalidParent, newParent.UUID)
	}

	next := state.ShallowCopy()

	op := oldParent.Clone()
	op.ChildNodeList = slices.DeleteFunc(op.ChildNodeList, func(id string) bool { return id == a.NodeUUID })
	next.Nodes[op.UUID] = op

	np := newParent.Clone()
	np.ChildNodeList = append(np.ChildNodeList, a.NodeUUID)
	next.Nodes[np.UUID] = np

	n := node.Clone()
	n.ParentUUID = np.UUID
	next.Nodes[n.UUID] = n

	renumber(next, op.UUID)
	renumber(next, np.UUID)
	return next, nil
}

// addNode inserts a fresh leaf under an existing parent.
func addNode(state *domain.MindMap, a domain.AddNode) (*domain.MindMap, error) {
	if a.Node == nil || a.Node.UUID == "" {
		return state, fmt.Errorf("%w: missing uuid", domain.ErrInvalidNode)
	}
	if _, exists := state.Nodes[a.Node.UUID]; exists {
		return state, fmt.Errorf("%w: uuid %q already exists", domain.ErrInvalidNode, a.Node.UUID)
	}
	if len(a.Node.ChildNodeList) > 0 {
		return state, fmt.Errorf("%w: new node %q must be a leaf", domain.ErrInvalidNode, a.Node.UUID)
	}
	if !a.Node.NodeType.Valid() {
		return state, fmt.Errorf("%w: %q", domain.ErrUnknownNodeType, a.Node.NodeType)
	}
	parent, ok := state.Node(a.ParentUUID)
	if !ok {
		return state, fmt.Errorf("%w: parent %q", domain.ErrNodeNotFound, a.ParentUUID)
	}

	n := a.Node.Clone()
	n.ParentUUID = parent.UUID
	n.IsCollapsed = false

	p := parent.Clone()
	at := a.Index
	if at < 0 || at > len(p.ChildNodeList) {
		at = len(p.ChildNodeList)
	}
	p.ChildNodeList = slices.Insert(p.ChildNodeList, at, n.UUID)

	next := state.ShallowCopy()
	next.Nodes[p.UUID] = p
	next.Nodes[n.UUID] = n
	renumber(next, p.UUID)
	return next, nil
}

// deleteNode removes a node with its whole subtree.
func deleteNode(state *domain.MindMap, a domain.DeleteNode) (*domain.MindMap, error) {
	node, ok := state.Node(a.NodeUUID)
	if !ok {
		return state, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, a.NodeUUID)
	}
	if node.IsRoot() || node.UUID == state.RootUUID {
		return state, domain.ErrRootImmutable
	}

	next := state.ShallowCopy()
	for _, id := range tree.FindAllDescendantUUIDs(state, a.NodeUUID) {
		delete(next.Nodes, id)
	}

	if parent, ok := next.Node(node.ParentUUID); ok {
		p := parent.Clone()
		p.ChildNodeList = slices.DeleteFunc(p.ChildNodeList, func(id string) bool { return id == a.NodeUUID })
		next.Nodes[p.UUID] = p
		renumber(next, p.UUID)
	}
	return next, nil
}
