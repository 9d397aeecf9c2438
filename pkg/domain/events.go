package domain

import "time"

// OperationType categorizes a change notification.
type OperationType string

const (
	OpLoadData           OperationType = "LOAD_DATA"
	OpSave               OperationType = "SAVE"
	OpLayout             OperationType = "LAYOUT"
	OpUpdateNodeText     OperationType = "UPDATE_NODE_TEXT"
	OpUpdateNodeType     OperationType = "UPDATE_NODE_TYPE"
	OpUpdateNodePriority OperationType = "UPDATE_NODE_PRIORITY"
	OpToggleNodeCollapse OperationType = "TOGGLE_NODE_COLLAPSE"
	OpReorderNode        OperationType = "REORDER_NODE"
	OpExecuteUseCase     OperationType = "EXECUTE_USE_CASE"
	OpUndo               OperationType = "UNDO"
	OpRedo               OperationType = "REDO"
	OpAddNode            OperationType = "ADD_NODE"
	OpDeleteNode         OperationType = "DELETE_NODE"
	OpUpdateNodePosition OperationType = "UPDATE_NODE_POSITION"
	OpReparentNode       OperationType = "REPARENT_NODE"
)

// ChangeInfo is delivered to the host after every mutating operation.
// Chains run from the root down to CurrentNode; parent chains omit CurrentNode.
type ChangeInfo struct {
	OperationType     OperationType `json:"operationType"`
	Timestamp         time.Time     `json:"timestamp"`
	Description       string        `json:"description"`
	PreviousData      *MindMap      `json:"previousData"`
	CurrentData       *MindMap      `json:"currentData"`
	AffectedNodeUUIDs []string      `json:"affectedNodeUuids,omitempty"`
	UpdatedNodes      []*Node       `json:"updatedNodes,omitempty"`

	CurrentNode          *Node    `json:"currentNode,omitempty"`
	ParentNode           *Node    `json:"parentNode,omitempty"`
	UUIDChain            []string `json:"uuidChain,omitempty"`
	UUIDChainNodes       []*Node  `json:"uuidChainNodes,omitempty"`
	ParentUUIDChain      []string `json:"parentUuidChain,omitempty"`
	ParentUUIDChainNodes []*Node  `json:"parentUuidChainNodes,omitempty"`

	// Revision is the content fingerprint of CurrentData, set on save.
	Revision string `json:"revision,omitempty"`
}

// RejectEvent describes a command that was refused.
type RejectEvent struct {
	Timestamp time.Time  `json:"timestamp"`
	Action    ActionType `json:"action"`
	NodeUUID  string     `json:"nodeUuid,omitempty"`
	Reason    error      `json:"-"`
}

// Hooks are host callbacks invoked synchronously by the editor.
type Hooks struct {
	OnChange         func(*ChangeInfo)
	OnReject         func(*RejectEvent)
	OnSave           func(*ChangeInfo)
	OnExecuteUseCase func(*ChangeInfo)
}

// Outcome is the result of an editor command.
type Outcome struct {
	Applied bool
	Reason  error
	Change  *ChangeInfo
}

// Accepted builds a successful outcome.
func Accepted(change *ChangeInfo) Outcome {
	return Outcome{Applied: true, Change: change}
}

// Rejected builds a refused outcome carrying its reason.
func Rejected(reason error) Outcome {
	return Outcome{Reason: reason}
}

// Err returns nil for applied outcomes and the rejection reason otherwise.
func (o Outcome) Err() error {
	if o.Applied {
		return nil
	}
	if o.Reason == nil {
		return ErrNoChange
	}
	return o.Reason
}
