package compiler

import (
	"errors"

	"github.com/aretw0/arbor/pkg/domain"
)

// ErrUnknownOp is returned for steps naming no known command.
var ErrUnknownOp = errors.New("unknown op")

// Ops that have no reducer action of their own.
const (
	OpFinishEditing  = "FINISH_EDITING"
	OpAddChildNode   = "ADD_CHILD_NODE"
	OpAddSiblingNode = "ADD_SIBLING_NODE"
	OpAutoLayout     = "AUTO_LAYOUT"
	OpSave           = "SAVE"
	OpExecuteUseCase = "EXECUTE_USE_CASE"
	OpSetReadOnly    = "SET_READ_ONLY"
)

// Command is a compiled script step.
type Command interface {
	Op() string
}

// ActionCommand wraps a reducer action routed through Editor.Dispatch.
type ActionCommand struct {
	Action domain.Action
}

// ResizeNode reports a measured size. Durable updates re-lay out and are undoable.
type ResizeNode struct {
	NodeUUID string  `mapstructure:"nodeUuid"`
	Width    float64 `mapstructure:"width"`
	Height   float64 `mapstructure:"height"`
	Durable  bool    `mapstructure:"durable"`
}

// FinishEditing closes a text edit session.
type FinishEditing struct {
	NodeUUID    string      `mapstructure:"nodeUuid"`
	Name        string      `mapstructure:"name"`
	Size        domain.Size `mapstructure:"size"`
	InitialSize domain.Size `mapstructure:"initialSize"`
}

type AddChildNode struct {
	ParentUUID string `mapstructure:"parentUuid"`
}

type AddSiblingNode struct {
	SiblingUUID string `mapstructure:"siblingUuid"`
}

type ExecuteUseCase struct {
	NodeUUID string `mapstructure:"nodeUuid"`
}

type SetReadOnly struct {
	ReadOnly bool `mapstructure:"readOnly"`
}

type (
	Undo         struct{}
	Redo         struct{}
	ResetHistory struct{}
	AutoLayout   struct{}
	Save         struct{}
)

func (c ActionCommand) Op() string { return string(c.Action.Kind()) }
func (ResizeNode) Op() string      { return string(domain.ActionUpdateNodeSize) }
func (FinishEditing) Op() string   { return OpFinishEditing }
func (AddChildNode) Op() string    { return OpAddChildNode }
func (AddSiblingNode) Op() string  { return OpAddSiblingNode }
func (ExecuteUseCase) Op() string  { return OpExecuteUseCase }
func (SetReadOnly) Op() string     { return OpSetReadOnly }
func (Undo) Op() string            { return string(domain.ActionUndo) }
func (Redo) Op() string            { return string(domain.ActionRedo) }
func (ResetHistory) Op() string    { return string(domain.ActionClearHistory) }
func (AutoLayout) Op() string      { return OpAutoLayout }
func (Save) Op() string            { return OpSave }
