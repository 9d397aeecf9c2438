package arbor

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/history"
)

// Dispatch routes an action value to the matching orchestrated operation.
// Size updates go through the transient path; use UpdateNodeSize for durable ones.
func (e *Editor) Dispatch(action domain.Action) domain.Outcome {
	switch a := action.(type) {
	case domain.SetMindMap:
		if err := e.SetData(a.Data); err != nil {
			return e.reject(a.Kind(), "", err)
		}
		return domain.Accepted(nil)
	case domain.UpdateNodeText:
		return e.UpdateNodeText(a.NodeUUID, a.Name)
	case domain.UpdateNodeType:
		return e.UpdateNodeType(a.NodeUUID, a.NodeType)
	case domain.UpdateNodePriority:
		return e.UpdateNodePriority(a.NodeUUID, a.PriorityLevel)
	case domain.UpdateNodePosition:
		return e.UpdateNodePosition(a.NodeUUID, a.Position)
	case domain.UpdateNodeSize:
		return e.UpdateNodeSize(a.NodeUUID, a.Width, a.Height, false)
	case domain.ReparentNode:
		return e.ReparentNode(a.NodeUUID, a.NewParentUUID)
	case domain.ReorderNode:
		return e.ReorderNode(a.DraggedNodeUUID, a.TargetSiblingUUID, a.Position)
	case domain.ToggleNodeCollapse:
		return e.ToggleNodeCollapse(a.NodeUUID)
	case domain.ExpandNodes:
		return e.ExpandNodes(a.NodeUUIDs...)
	case domain.ExpandAllNodes:
		return e.ExpandAll()
	case domain.CollapseAllNodes:
		return e.CollapseAll()
	case domain.ExpandToLevel:
		return e.ExpandToLevel(a.TargetTypes...)
	case domain.CollapseToLevel:
		return e.CollapseToLevel(a.TargetTypes...)
	case domain.AddNode:
		return e.InsertNode(a.ParentUUID, a.Node, a.Index)
	case domain.DeleteNode:
		return e.DeleteNode(a.NodeUUID)
	case history.Undo:
		return e.Undo()
	case history.Redo:
		return e.Redo()
	case history.ClearHistory:
		e.ResetHistory()
		return domain.Accepted(nil)
	}

	if action == nil {
		return e.reject("", "", domain.ErrUnsupportedAction)
	}
	return e.reject(action.Kind(), "", fmt.Errorf("%w: %s", domain.ErrUnsupportedAction, action.Kind()))
}
