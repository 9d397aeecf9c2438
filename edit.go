package arbor

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/history"
	"github.com/aretw0/arbor/pkg/reducer"
)

// UpdateNodeSize records a measured size. A durable update re-lays out the
// document and becomes an undo step; a transient one only patches the
// present (interim measurement, live resize while typing).
func (e *Editor) UpdateNodeSize(id string, width, height float64, durable bool) domain.Outcome {
	kind := domain.ActionUpdateNodeSize
	n, out, ok := e.lookup(kind, id)
	if !ok {
		return out
	}
	if n.HasSize(width, height) {
		return e.reject(kind, id, domain.ErrNoChange)
	}

	action := domain.UpdateNodeSize{NodeUUID: id, Width: width, Height: height}
	if !durable {
		e.hist = e.step(e.hist, action)
		e.tryInitialLayout()
		return domain.Accepted(nil)
	}

	prev := e.Document()
	sized, err := reducer.Apply(prev, action)
	if err != nil {
		return e.reject(kind, id, err)
	}
	laid := e.relayout(sized)
	e.commit(laid)

	out = e.emit(&domain.ChangeInfo{
		OperationType:     domain.OpLayout,
		Description:       fmt.Sprintf("Updated size for node '%s' and re-laid out", n.Name),
		PreviousData:      prev,
		CurrentData:       laid,
		AffectedNodeUUIDs: []string{id},
		UpdatedNodes:      nodesOf(laid, []string{id}),
	})
	e.tryInitialLayout()
	return out
}

// FinishEditing closes a text edit session. The archived undo point carries
// the node's original name and initialSize, the size it had before any
// transient resize of the session; the new present carries name and size and
// is re-laid out. The whole session becomes a single history entry.
func (e *Editor) FinishEditing(id, name string, size, initialSize domain.Size) domain.Outcome {
	kind := domain.ActionCommitEdit
	if out, ok := e.guardEdit(kind, id); !ok {
		return out
	}
	n, out, ok := e.lookup(kind, id)
	if !ok {
		return out
	}

	cur := e.Document()
	if n.Name == name && size == initialSize {
		// Drop whatever interim size the session left behind.
		if !n.HasSize(initialSize.Width, initialSize.Height) {
			e.hist = e.step(e.hist, domain.UpdateNodeSize{NodeUUID: id, Width: initialSize.Width, Height: initialSize.Height})
		}
		return e.reject(kind, id, domain.ErrNoChange)
	}

	archive := cur.ShallowCopy()
	before := n.Clone()
	before.SetSize(initialSize.Width, initialSize.Height)
	archive.Nodes[id] = before

	updated := cur.ShallowCopy()
	after := n.Clone()
	after.Name = name
	after.SetSize(size.Width, size.Height)
	updated.Nodes[id] = after

	laid := e.relayout(updated)
	e.hist = e.step(e.hist, history.CommitEdit{Archive: archive, Present: laid})

	return e.emit(nodeChange(domain.OpUpdateNodeText,
		fmt.Sprintf("Updated node '%s'", n.Name), archive, laid, id))
}

// UpdateNodeText renames a node outside of an edit session.
func (e *Editor) UpdateNodeText(id, name string) domain.Outcome {
	kind := domain.ActionUpdateNodeText
	if out, ok := e.guardEdit(kind, id); !ok {
		return out
	}
	n, out, ok := e.lookup(kind, id)
	if !ok {
		return out
	}
	if n.Name == name {
		return e.reject(kind, id, domain.ErrNoChange)
	}

	prev := e.Document()
	next, err := reducer.Apply(prev, domain.UpdateNodeText{NodeUUID: id, Name: name})
	if err != nil {
		return e.reject(kind, id, err)
	}
	laid := e.relayout(next)
	e.commit(laid)

	return e.emit(nodeChange(domain.OpUpdateNodeText,
		fmt.Sprintf("Updated node '%s'", n.Name), prev, laid, id))
}

// UpdateNodeType changes the type of a node and resets its name to the
// type's default label. Layout is left to the size update that follows.
func (e *Editor) UpdateNodeType(id string, t domain.NodeType) domain.Outcome {
	kind := domain.ActionUpdateNodeType
	if out, ok := e.guardEdit(kind, id); !ok {
		return out
	}
	n, out, ok := e.lookup(kind, id)
	if !ok {
		return out
	}

	prev := e.Document()
	action := domain.UpdateNodeType{NodeUUID: id, NodeType: t}
	if _, err := reducer.Apply(prev, action); err != nil {
		return e.reject(kind, id, err)
	}
	e.hist = e.step(e.hist, action)

	return e.emit(nodeChange(domain.OpUpdateNodeType,
		fmt.Sprintf("Changed node '%s' type to %s", n.Name, t), prev, e.Document(), id))
}

// UpdateNodePriority sets the priority of a node whose type allows it.
func (e *Editor) UpdateNodePriority(id string, p domain.Priority) domain.Outcome {
	kind := domain.ActionUpdateNodePriority
	if out, ok := e.guardEdit(kind, id); !ok {
		return out
	}
	n, out, ok := e.lookup(kind, id)
	if !ok {
		return out
	}
	if !e.cfg.CanEditPriority(n.NodeType) {
		return e.reject(kind, id, fmt.Errorf("%w: %s", domain.ErrPriorityNotEditable, n.NodeType))
	}

	prev := e.Document()
	action := domain.UpdateNodePriority{NodeUUID: id, PriorityLevel: p}
	if _, err := reducer.Apply(prev, action); err != nil {
		return e.reject(kind, id, err)
	}
	e.hist = e.step(e.hist, action)
	cur := e.Document()

	return e.emit(nodeChange(domain.OpUpdateNodePriority,
		fmt.Sprintf("Updated priorityLevel for node '%s' to %s", cur.Nodes[id].Name, p), prev, cur, id))
}

// UpdateNodePosition stores an explicit drag position. It is not re-laid out.
func (e *Editor) UpdateNodePosition(id string, pos domain.Position) domain.Outcome {
	kind := domain.ActionUpdateNodePosition
	if out, ok := e.guardEdit(kind, id); !ok {
		return out
	}
	n, out, ok := e.lookup(kind, id)
	if !ok {
		return out
	}
	if n.Position == pos {
		return e.reject(kind, id, domain.ErrNoChange)
	}

	prev := e.Document()
	action := domain.UpdateNodePosition{NodeUUID: id, Position: pos}
	if _, err := reducer.Apply(prev, action); err != nil {
		return e.reject(kind, id, err)
	}
	e.hist = e.step(e.hist, action)

	return e.emit(nodeChange(domain.OpUpdateNodePosition,
		fmt.Sprintf("Moved node '%s' to (%.0f, %.0f)", n.Name, pos.X, pos.Y), prev, e.Document(), id))
}
