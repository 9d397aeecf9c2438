package arbor

import (
	"fmt"

	"github.com/aretw0/arbor/internal/validator"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/history"
	"github.com/aretw0/arbor/pkg/snapshot"
)

// Commands is the imperative surface handed to the host.
type Commands struct {
	Save           func() (*domain.ChangeInfo, error)
	ExecuteUseCase func(nodeUUID string) domain.Outcome
	SetData        func(m *domain.MindMap) error
	ResetHistory   func()
	SetReadOnly    func(readOnly bool)
}

// Commands returns the host command surface bound to e.
func (e *Editor) Commands() Commands {
	return Commands{
		Save:           e.Save,
		ExecuteUseCase: e.ExecuteUseCase,
		SetData:        e.SetData,
		ResetHistory:   e.ResetHistory,
		SetReadOnly:    e.SetReadOnly,
	}
}

// Undo steps back one history entry.
func (e *Editor) Undo() domain.Outcome {
	kind := domain.ActionUndo
	if out, ok := e.guardEdit(kind, ""); !ok {
		return out
	}
	if !e.hist.CanUndo() {
		return e.reject(kind, "", domain.ErrNothingToUndo)
	}

	prev := e.Document()
	e.hist = e.step(e.hist, history.Undo{})
	cur := e.Document()

	return e.emit(&domain.ChangeInfo{
		OperationType:     domain.OpUndo,
		Description:       "Undo last action",
		PreviousData:      prev,
		CurrentData:       cur,
		AffectedNodeUUIDs: cur.UUIDs(),
	})
}

// Redo re-applies the most recently undone entry.
func (e *Editor) Redo() domain.Outcome {
	kind := domain.ActionRedo
	if out, ok := e.guardEdit(kind, ""); !ok {
		return out
	}
	if !e.hist.CanRedo() {
		return e.reject(kind, "", domain.ErrNothingToRedo)
	}

	prev := e.Document()
	e.hist = e.step(e.hist, history.Redo{})
	cur := e.Document()

	return e.emit(&domain.ChangeInfo{
		OperationType:     domain.OpRedo,
		Description:       "Redo last action",
		PreviousData:      prev,
		CurrentData:       cur,
		AffectedNodeUUIDs: cur.UUIDs(),
	})
}

// ResetHistory makes the present the new baseline: nothing is left to undo.
func (e *Editor) ResetHistory() {
	e.hist = e.step(e.hist, history.ClearHistory{})
	e.log.Debug("history cleared")
}

// SetReadOnly toggles whether user edits are accepted.
func (e *Editor) SetReadOnly(readOnly bool) {
	e.readOnly = readOnly
	e.log.Debug("read-only changed", "read_only", readOnly)
}

// SetData replaces the whole document. History starts over and the editor
// returns to read-only mode.
func (e *Editor) SetData(m *domain.MindMap) error {
	if m == nil {
		m = domain.NewMindMap()
	}
	if err := validator.Validate(m); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	e.load(m)
	e.readOnly = true
	return nil
}

// Save builds a save notification for the present document and hands it to
// the OnSave hook. Revision is the content fingerprint of the snapshot.
func (e *Editor) Save() (*domain.ChangeInfo, error) {
	cur := e.Document()
	rev, err := snapshot.Fingerprint(cur)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint document: %w", err)
	}

	info := &domain.ChangeInfo{
		OperationType:     domain.OpSave,
		Timestamp:         e.now(),
		Description:       "Data saved via trigger.",
		PreviousData:      cur,
		CurrentData:       cur,
		AffectedNodeUUIDs: cur.UUIDs(),
		Revision:          rev,
	}
	e.log.Info("document saved", "revision", rev)
	if e.hooks.OnSave != nil {
		e.hooks.OnSave(info)
	}
	return info, nil
}

// ExecuteUseCase asks the host to run a use case. The notification carries
// the node, its parent and the chain from the root.
func (e *Editor) ExecuteUseCase(id string) domain.Outcome {
	kind := domain.ActionType(domain.OpExecuteUseCase)
	if !e.cfg.EnableUseCaseExecution {
		return e.reject(kind, id, domain.ErrUseCaseExecutionDisabled)
	}
	if e.readOnly && !e.cfg.EnableReadOnlyUseCaseExecution {
		return e.reject(kind, id, fmt.Errorf("%w: not allowed while read-only", domain.ErrUseCaseExecutionDisabled))
	}
	n, out, ok := e.lookup(kind, id)
	if !ok {
		return out
	}
	if n.NodeType != domain.NodeTypeUseCase {
		return e.reject(kind, id, fmt.Errorf("%w: %s is not a use case", domain.ErrInvalidNode, n.NodeType))
	}

	cur := e.Document()
	info := nodeChange(domain.OpExecuteUseCase,
		fmt.Sprintf("Triggered execution for use case '%s'", n.Name), cur, cur, id)
	info.UpdatedNodes = nil
	info.Timestamp = e.now()

	e.log.Info("use case execution requested", "node", id)
	if e.hooks.OnExecuteUseCase != nil {
		e.hooks.OnExecuteUseCase(info)
	}
	return domain.Accepted(info)
}
