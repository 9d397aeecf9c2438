package domain

import "errors"

// ErrNodeNotFound is returned when a command references a uuid absent from the store.
var ErrNodeNotFound = errors.New("node not found")

// ErrNoChange is returned when a command would leave the document unchanged.
var ErrNoChange = errors.New("no change")

// ErrStepBeforePrecondition is returned when a STEP would be reordered at or before a PRECONDITION sibling.
var ErrStepBeforePrecondition = errors.New("a STEP node cannot be reordered to be before a PRECONDITION node")

// ErrUnknownNodeType is returned for node type names outside the known enumeration.
var ErrUnknownNodeType = errors.New("unknown node type")

// ErrInvalidPriority is returned for priority values outside P0..P3.
var ErrInvalidPriority = errors.New("invalid priority level")

// ErrRootImmutable is returned when a command tries to delete, move or collapse the root.
var ErrRootImmutable = errors.New("root node cannot be modified this way")

// ErrInvalidParent is returned when a structural edit targets a parent that cannot accept the node.
var ErrInvalidParent = errors.New("invalid parent")

// ErrReadOnly is returned when an edit is issued while the editor is read-only.
var ErrReadOnly = errors.New("editor is read-only")

// ErrNotReorderable is returned when reordering is disabled for the node type.
var ErrNotReorderable = errors.New("node type is not reorderable")

// ErrPriorityNotEditable is returned when the node type does not carry an editable priority.
var ErrPriorityNotEditable = errors.New("priority is not editable for node type")

// ErrUseCaseExecutionDisabled is returned when use case execution is turned off.
var ErrUseCaseExecutionDisabled = errors.New("use case execution is disabled")

// ErrNothingToUndo is returned by Undo when the past is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo is returned by Redo when the future is empty.
var ErrNothingToRedo = errors.New("nothing to redo")

// ErrInvalidNode is returned when a node to insert is malformed or its uuid is taken.
var ErrInvalidNode = errors.New("invalid node")

// ErrInvalidReorderPosition is returned when a reorder position is neither before nor after.
var ErrInvalidReorderPosition = errors.New("reorder position must be before or after")

// ErrUnsupportedAction is returned for actions the reducer does not handle.
var ErrUnsupportedAction = errors.New("unsupported action")
