package arbor

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/layout"
	"github.com/aretw0/arbor/pkg/reducer"
)

// ToggleNodeCollapse flips the collapsed flag of a non-root node.
// Visibility changes are allowed in read-only mode.
func (e *Editor) ToggleNodeCollapse(id string) domain.Outcome {
	kind := domain.ActionToggleNodeCollapse
	n, out, ok := e.lookup(kind, id)
	if !ok {
		return out
	}
	if n.IsRoot() {
		return e.reject(kind, id, domain.ErrRootImmutable)
	}

	prev := e.Document()
	next, err := reducer.Apply(prev, domain.ToggleNodeCollapse{NodeUUID: id})
	if err != nil {
		return e.reject(kind, id, err)
	}
	laid := e.relayout(next)
	e.commit(laid)

	state := "collapsed"
	if n.IsCollapsed {
		state = "expanded"
	}
	return e.emit(nodeChange(domain.OpToggleNodeCollapse,
		fmt.Sprintf("Node '%s' %s", n.Name, state), prev, laid, id))
}

// ExpandNodes expands every listed node.
func (e *Editor) ExpandNodes(ids ...string) domain.Outcome {
	if len(ids) == 0 {
		return e.reject(domain.ActionExpandNodes, "", domain.ErrNoChange)
	}
	return e.visibility(domain.ExpandNodes{NodeUUIDs: ids},
		fmt.Sprintf("Expanded %d node(s)", len(ids)))
}

// ExpandAll expands every node.
func (e *Editor) ExpandAll() domain.Outcome {
	return e.visibility(domain.ExpandAllNodes{}, "Expanded all nodes")
}

// CollapseAll collapses every node except the root.
func (e *Editor) CollapseAll() domain.Outcome {
	return e.visibility(domain.CollapseAllNodes{}, "Collapsed all nodes")
}

// ExpandToLevel shows every node shallower than the deepest of types.
func (e *Editor) ExpandToLevel(types ...domain.NodeType) domain.Outcome {
	return e.visibility(domain.ExpandToLevel{TargetTypes: types},
		"Expanded to level "+joinTypes(types))
}

// CollapseToLevel hides everything from the shallowest of types down.
func (e *Editor) CollapseToLevel(types ...domain.NodeType) domain.Outcome {
	return e.visibility(domain.CollapseToLevel{TargetTypes: types},
		"Collapsed to level "+joinTypes(types))
}

// visibility runs a bulk collapse action; the notification lists only the
// nodes whose flag actually changed.
func (e *Editor) visibility(action domain.Action, desc string) domain.Outcome {
	prev := e.Document()
	next, err := reducer.Apply(prev, action)
	if err != nil {
		return e.reject(action.Kind(), "", err)
	}
	laid := e.relayout(next)
	e.commit(laid)

	changed := domain.CollapseChanges(prev, laid)
	return e.emit(&domain.ChangeInfo{
		OperationType:     domain.OpToggleNodeCollapse,
		Description:       desc,
		PreviousData:      prev,
		CurrentData:       laid,
		AffectedNodeUUIDs: changed,
		UpdatedNodes:      nodesOf(laid, changed),
	})
}

// TriggerAutoLayout re-lays out the document on demand, discarding manual positions.
func (e *Editor) TriggerAutoLayout() domain.Outcome {
	kind := domain.ActionSetMindMap
	prev := e.Document()
	if !layout.Ready(prev) {
		return e.reject(kind, "", fmt.Errorf("%w: nodes not measured yet", domain.ErrNoChange))
	}

	laid := e.layout(prev)
	if laid == prev {
		return e.reject(kind, "", domain.ErrNoChange)
	}
	e.commit(laid)

	moved := domain.Diff(prev, laid).Changed
	return e.emit(&domain.ChangeInfo{
		OperationType:     domain.OpLayout,
		Description:       "Auto-layout applied",
		PreviousData:      prev,
		CurrentData:       laid,
		AffectedNodeUUIDs: moved,
		UpdatedNodes:      nodesOf(laid, moved),
	})
}

func joinTypes(types []domain.NodeType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
