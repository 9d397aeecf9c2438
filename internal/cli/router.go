package cli

import (
	"fmt"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/pkg/domain"
)

// Route applies one compiled command to the editor.
// The error is reserved for commands that cannot produce an Outcome (save failures);
// rejected edits are reported through the Outcome.
func Route(ed *arbor.Editor, cmd compiler.Command) (domain.Outcome, error) {
	switch c := cmd.(type) {
	case compiler.ActionCommand:
		return ed.Dispatch(c.Action), nil
	case compiler.ResizeNode:
		return ed.UpdateNodeSize(c.NodeUUID, c.Width, c.Height, c.Durable), nil
	case compiler.FinishEditing:
		return ed.FinishEditing(c.NodeUUID, c.Name, c.Size, c.InitialSize), nil
	case compiler.AddChildNode:
		return ed.AddChildNode(c.ParentUUID), nil
	case compiler.AddSiblingNode:
		return ed.AddSiblingNode(c.SiblingUUID), nil
	case compiler.AutoLayout:
		return ed.TriggerAutoLayout(), nil
	case compiler.Undo:
		return ed.Undo(), nil
	case compiler.Redo:
		return ed.Redo(), nil
	case compiler.ResetHistory:
		ed.Commands().ResetHistory()
		return domain.Accepted(nil), nil
	case compiler.SetReadOnly:
		ed.Commands().SetReadOnly(c.ReadOnly)
		return domain.Accepted(nil), nil
	case compiler.ExecuteUseCase:
		return ed.Commands().ExecuteUseCase(c.NodeUUID), nil
	case compiler.Save:
		info, err := ed.Commands().Save()
		if err != nil {
			return domain.Outcome{}, err
		}
		return domain.Accepted(info), nil
	}
	return domain.Outcome{}, fmt.Errorf("no route for command %T", cmd)
}
