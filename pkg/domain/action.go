package domain

// ActionType names a state transition.
type ActionType string

// Reducer actions.
const (
	ActionSetMindMap         ActionType = "SET_MIND_MAP"
	ActionUpdateNodeText     ActionType = "UPDATE_NODE_TEXT"
	ActionUpdateNodeType     ActionType = "UPDATE_NODE_TYPE"
	ActionUpdateNodePriority ActionType = "UPDATE_NODE_PRIORITY"
	ActionUpdateNodePosition ActionType = "UPDATE_NODE_POSITION"
	ActionUpdateNodeSize     ActionType = "UPDATE_NODE_SIZE"
	ActionReparentNode       ActionType = "REPARENT_NODE"
	ActionReorderNode        ActionType = "REORDER_NODE"
	ActionToggleNodeCollapse ActionType = "TOGGLE_NODE_COLLAPSE"
	ActionExpandNodes        ActionType = "EXPAND_NODES"
	ActionExpandAllNodes     ActionType = "EXPAND_ALL_NODES"
	ActionCollapseAllNodes   ActionType = "COLLAPSE_ALL_NODES"
	ActionExpandToLevel      ActionType = "EXPAND_TO_LEVEL"
	ActionCollapseToLevel    ActionType = "COLLAPSE_TO_LEVEL"
	ActionAddNode            ActionType = "ADD_NODE"
	ActionDeleteNode         ActionType = "DELETE_NODE"
)

// History actions. They are interpreted by the history wrapper and never
// reach the reducer.
const (
	ActionResetHistory ActionType = "RESET_HISTORY"
	ActionClearHistory ActionType = "CLEAR_HISTORY"
	ActionCommitEdit   ActionType = "COMMIT_EDIT"
	ActionUndo         ActionType = "UNDO"
	ActionRedo         ActionType = "REDO"
)

// Valid reports whether t names a known reducer or history action.
func (t ActionType) Valid() bool {
	switch t {
	case ActionSetMindMap, ActionUpdateNodeText, ActionUpdateNodeType, ActionUpdateNodePriority,
		ActionUpdateNodePosition, ActionUpdateNodeSize, ActionReparentNode, ActionReorderNode,
		ActionToggleNodeCollapse, ActionExpandNodes, ActionExpandAllNodes, ActionCollapseAllNodes,
		ActionExpandToLevel, ActionCollapseToLevel, ActionAddNode, ActionDeleteNode,
		ActionResetHistory, ActionClearHistory, ActionCommitEdit, ActionUndo, ActionRedo:
		return true
	}
	return false
}

// Ignorable reports whether history may replace the present for t without
// recording an undo entry. SET_MIND_MAP carries every committed edit and the
// history actions are never recorded through the reducer path.
func (t ActionType) Ignorable() bool {
	switch t {
	case ActionSetMindMap, ActionResetHistory, ActionClearHistory, ActionCommitEdit, ActionUndo, ActionRedo:
		return false
	}
	return t.Valid()
}

// Action is a request to transition a MindMap.
type Action interface {
	Kind() ActionType
}

// ReorderPosition places a dragged node relative to its target sibling.
type ReorderPosition string

const (
	Before ReorderPosition = "before"
	After  ReorderPosition = "after"
)

// Valid reports whether p is before or after.
func (p ReorderPosition) Valid() bool {
	return p == Before || p == After
}

type SetMindMap struct {
	Data *MindMap `mapstructure:"data"`
}

type UpdateNodeText struct {
	NodeUUID string `mapstructure:"nodeUuid"`
	Name     string `mapstructure:"name"`
}

type UpdateNodeType struct {
	NodeUUID string   `mapstructure:"nodeUuid"`
	NodeType NodeType `mapstructure:"nodeType"`
}

type UpdateNodePriority struct {
	NodeUUID      string   `mapstructure:"nodeUuid"`
	PriorityLevel Priority `mapstructure:"priorityLevel"`
}

type UpdateNodePosition struct {
	NodeUUID string   `mapstructure:"nodeUuid"`
	Position Position `mapstructure:"position"`
}

type UpdateNodeSize struct {
	NodeUUID string  `mapstructure:"nodeUuid"`
	Width    float64 `mapstructure:"width"`
	Height   float64 `mapstructure:"height"`
}

type ReparentNode struct {
	NodeUUID      string `mapstructure:"nodeUuid"`
	NewParentUUID string `mapstructure:"newParentUuid"`
	OldParentUUID string `mapstructure:"oldParentUuid"`
}

type ReorderNode struct {
	DraggedNodeUUID   string          `mapstructure:"draggedNodeUuid"`
	TargetSiblingUUID string          `mapstructure:"targetSiblingUuid"`
	Position          ReorderPosition `mapstructure:"position"`
}

type ToggleNodeCollapse struct {
	NodeUUID string `mapstructure:"nodeUuid"`
}

type ExpandNodes struct {
	NodeUUIDs []string `mapstructure:"nodeUuids"`
}

type ExpandAllNodes struct{}

type CollapseAllNodes struct{}

type ExpandToLevel struct {
	TargetTypes []NodeType `mapstructure:"targetTypes"`
}

type CollapseToLevel struct {
	TargetTypes []NodeType `mapstructure:"targetTypes"`
}

// AddNode inserts Node under ParentUUID at Index. A negative or out of range
// Index appends.
type AddNode struct {
	Node       *Node  `mapstructure:"node"`
	ParentUUID string `mapstructure:"parentUuid"`
	Index      int    `mapstructure:"index"`
}

// DeleteNode removes a node and its whole subtree.
type DeleteNode struct {
	NodeUUID string `mapstructure:"nodeUuid"`
}

func (SetMindMap) Kind() ActionType         { return ActionSetMindMap }
func (UpdateNodeText) Kind() ActionType     { return ActionUpdateNodeText }
func (UpdateNodeType) Kind() ActionType     { return ActionUpdateNodeType }
func (UpdateNodePriority) Kind() ActionType { return ActionUpdateNodePriority }
func (UpdateNodePosition) Kind() ActionType { return ActionUpdateNodePosition }
func (UpdateNodeSize) Kind() ActionType     { return ActionUpdateNodeSize }
func (ReparentNode) Kind() ActionType       { return ActionReparentNode }
func (ReorderNode) Kind() ActionType        { return ActionReorderNode }
func (ToggleNodeCollapse) Kind() ActionType { return ActionToggleNodeCollapse }
func (ExpandNodes) Kind() ActionType        { return ActionExpandNodes }
func (ExpandAllNodes) Kind() ActionType     { return ActionExpandAllNodes }
func (CollapseAllNodes) Kind() ActionType   { return ActionCollapseAllNodes }
func (ExpandToLevel) Kind() ActionType      { return ActionExpandToLevel }
func (CollapseToLevel) Kind() ActionType    { return ActionCollapseToLevel }
func (AddNode) Kind() ActionType            { return ActionAddNode }
func (DeleteNode) Kind() ActionType         { return ActionDeleteNode }
