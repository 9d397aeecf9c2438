package arbor

import (
	"fmt"
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/reducer"
	"github.com/aretw0/arbor/pkg/tree"
)

// ReorderNode moves dragged before or after target within its sibling list.
// Siblings are renumbered, the document is re-laid out and the notification
// carries the full chain of the moved node.
func (e *Editor) ReorderNode(dragged, target string, pos domain.ReorderPosition) domain.Outcome {
	kind := domain.ActionReorderNode
	if out, ok := e.guardEdit(kind, dragged); !ok {
		return out
	}
	n, out, ok := e.lookup(kind, dragged)
	if !ok {
		return out
	}
	if !e.cfg.CanReorder(n.NodeType) {
		return e.reject(kind, dragged, fmt.Errorf("%w: %s", domain.ErrNotReorderable, n.NodeType))
	}

	prev := e.Document()
	next, err := reducer.Apply(prev, domain.ReorderNode{
		DraggedNodeUUID:   dragged,
		TargetSiblingUUID: target,
		Position:          pos,
	})
	if err != nil {
		return e.reject(kind, dragged, err)
	}
	laid := e.relayout(next)
	e.commit(laid)

	return e.emit(nodeChange(domain.OpReorderNode,
		fmt.Sprintf("Reordered node '%s'", n.Name), prev, laid, dragged))
}

// ReparentNode moves a node, with its subtree, to the end of newParent's children.
// In strict mode the new parent must have the same type as the old one.
func (e *Editor) ReparentNode(id, newParent string) domain.Outcome {
	kind := domain.ActionReparentNode
	if out, ok := e.guardEdit(kind, id); !ok {
		return out
	}
	n, out, ok := e.lookup(kind, id)
	if !ok {
		return out
	}
	np, out, ok := e.lookup(kind, newParent)
	if !ok {
		return out
	}

	prev := e.Document()
	if e.cfg.StrictDrag {
		if op, ok := prev.Node(n.ParentUUID); ok && op.NodeType != np.NodeType {
			return e.reject(kind, id, fmt.Errorf("%w: %s cannot adopt a child of a %s", domain.ErrInvalidParent, np.NodeType, op.NodeType))
		}
	}

	next, err := reducer.Apply(prev, domain.ReparentNode{
		NodeUUID:      id,
		NewParentUUID: newParent,
		OldParentUUID: n.ParentUUID,
	})
	if err != nil {
		return e.reject(kind, id, err)
	}
	laid := e.relayout(next)
	e.commit(laid)

	info := nodeChange(domain.OpReparentNode,
		fmt.Sprintf("Moved node '%s' under '%s'", n.Name, np.Name), prev, laid, id)
	info.AffectedNodeUUIDs = []string{id, n.ParentUUID, newParent}
	return e.emit(info)
}

// InsertNode adds n under parent at index; a negative index appends.
// A missing uuid is generated, a missing type follows the hierarchy rules and
// a missing name defaults to the type label. n itself is never modified.
func (e *Editor) InsertNode(parent string, n *domain.Node, index int) domain.Outcome {
	kind := domain.ActionAddNode
	if out, ok := e.guardEdit(kind, parent); !ok {
		return out
	}
	p, out, ok := e.lookup(kind, parent)
	if !ok {
		return out
	}

	child := &domain.Node{}
	if n != nil {
		child = n.Clone()
	}
	if child.UUID == "" {
		child.UUID = e.newID()
	}

	want, allowed := e.childType(p)
	if !allowed {
		return e.reject(kind, parent, fmt.Errorf("%w: %s nodes cannot have children", domain.ErrInvalidParent, p.NodeType))
	}
	if child.NodeType == "" {
		child.NodeType = want
	}
	if child.Name == "" {
		child.Name = child.NodeType.Label()
	}

	prev := e.Document()
	next, err := reducer.Apply(prev, domain.AddNode{Node: child, ParentUUID: parent, Index: index})
	if err != nil {
		return e.reject(kind, child.UUID, err)
	}
	laid := e.relayout(next)
	e.commit(laid)

	info := nodeChange(domain.OpAddNode,
		fmt.Sprintf("Added node '%s' under '%s'", child.Name, p.Name), prev, laid, child.UUID)
	info.AffectedNodeUUIDs = []string{child.UUID, parent}
	return e.emit(info)
}

// AddChildNode appends a new child to parent.
func (e *Editor) AddChildNode(parent string) domain.Outcome {
	return e.InsertNode(parent, nil, -1)
}

// AddSiblingNode inserts a new node right after sibling, with the sibling's type.
func (e *Editor) AddSiblingNode(sibling string) domain.Outcome {
	kind := domain.ActionAddNode
	s, out, ok := e.lookup(kind, sibling)
	if !ok {
		return out
	}
	if s.IsRoot() {
		return e.reject(kind, sibling, domain.ErrRootImmutable)
	}
	p, out, ok := e.lookup(kind, s.ParentUUID)
	if !ok {
		return out
	}

	var n *domain.Node
	if e.cfg.StrictMode {
		n = &domain.Node{NodeType: s.NodeType}
	}
	return e.InsertNode(p.UUID, n, slices.Index(p.ChildNodeList, sibling)+1)
}

// DeleteNode removes a node and its whole subtree.
func (e *Editor) DeleteNode(id string) domain.Outcome {
	kind := domain.ActionDeleteNode
	if out, ok := e.guardEdit(kind, id); !ok {
		return out
	}
	n, out, ok := e.lookup(kind, id)
	if !ok {
		return out
	}

	prev := e.Document()
	removed := tree.FindAllDescendantUUIDs(prev, id)
	next, err := reducer.Apply(prev, domain.DeleteNode{NodeUUID: id})
	if err != nil {
		return e.reject(kind, id, err)
	}
	laid := e.relayout(next)
	e.commit(laid)

	info := &domain.ChangeInfo{
		OperationType:     domain.OpDeleteNode,
		Description:       fmt.Sprintf("Deleted node '%s' and %d descendant(s)", n.Name, len(removed)-1),
		PreviousData:      prev,
		CurrentData:       laid,
		AffectedNodeUUIDs: removed,
	}
	if p, ok := laid.Node(n.ParentUUID); ok {
		info.ParentNode = p
		chain := tree.NodeChain(laid, p.UUID)
		info.ParentUUIDChain = chain.UUIDs
		info.ParentUUIDChainNodes = chain.Nodes
	}
	return e.emit(info)
}

// childType is the type a new child of p receives, and whether p may have children.
func (e *Editor) childType(p *domain.Node) (domain.NodeType, bool) {
	if !e.cfg.StrictMode {
		return domain.NodeTypeGeneral, true
	}
	return p.NodeType.ChildType()
}
