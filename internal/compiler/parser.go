package compiler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Script is an ordered list of editor commands, as written by a user.
type Script struct {
	// Document optionally names the document the script was recorded against.
	Document string `json:"document,omitempty" yaml:"document,omitempty"`
	Steps    []Step `json:"steps" yaml:"steps"`
}

// Step is one raw command: an op name plus loosely typed arguments.
type Step struct {
	Op   string         `json:"op" yaml:"op"`
	Args map[string]any `json:"args,omitempty" yaml:"args,omitempty"`
}

// Parser is responsible for converting raw bytes into commands.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a script in the given format and compiles every step.
// All failing steps are reported together.
func (p *Parser) Parse(data []byte, format schema.Format) (*Script, []Command, error) {
	var s Script
	var err error
	switch format {
	case schema.FormatJSON:
		err = json.Unmarshal(data, &s)
	case schema.FormatYAML:
		err = yaml.Unmarshal(data, &s)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse script: %w", err)
	}

	cmds := make([]Command, 0, len(s.Steps))
	var errs []error
	for i, step := range s.Steps {
		cmd, err := p.Compile(step)
		if err != nil {
			errs = append(errs, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err))
			continue
		}
		cmds = append(cmds, cmd)
	}
	if len(errs) > 0 {
		return &s, nil, &schema.AggregateError{Errors: errs}
	}
	return &s, cmds, nil
}

// ParseStep decodes a single JSON step, as posted to the HTTP host.
func (p *Parser) ParseStep(data []byte) (Command, error) {
	var step Step
	if err := json.Unmarshal(data, &step); err != nil {
		return nil, fmt.Errorf("failed to parse step: %w", err)
	}
	return p.Compile(step)
}

// Compile turns a raw step into a typed command.
func (p *Parser) Compile(step Step) (Command, error) {
	op := normalizeOp(step.Op)
	if op == "" {
		return nil, fmt.Errorf("step missing op")
	}

	build, ok := builders[op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
	target := build()
	if err := decode(step.Args, target); err != nil {
		return nil, err
	}
	return deref(target), nil
}

func normalizeOp(op string) string {
	op = strings.TrimSpace(op)
	op = strings.ReplaceAll(op, "-", "_")
	return strings.ToUpper(op)
}

// decode fills target from args. Unknown keys are an error so typos surface.
func decode(args map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid args: %w", err)
	}
	return nil
}

var builders = map[string]func() any{
	string(domain.ActionSetMindMap):         func() any { return &domain.SetMindMap{} },
	string(domain.ActionUpdateNodeText):     func() any { return &domain.UpdateNodeText{} },
	string(domain.ActionUpdateNodeType):     func() any { return &domain.UpdateNodeType{} },
	string(domain.ActionUpdateNodePriority): func() any { return &domain.UpdateNodePriority{} },
	string(domain.ActionUpdateNodePosition): func() any { return &domain.UpdateNodePosition{} },
	string(domain.ActionUpdateNodeSize):     func() any { return &ResizeNode{} },
	string(domain.ActionReparentNode):       func() any { return &domain.ReparentNode{} },
	string(domain.ActionReorderNode):        func() any { return &domain.ReorderNode{} },
	string(domain.ActionToggleNodeCollapse): func() any { return &domain.ToggleNodeCollapse{} },
	string(domain.ActionExpandNodes):        func() any { return &domain.ExpandNodes{} },
	string(domain.ActionExpandAllNodes):     func() any { return &domain.ExpandAllNodes{} },
	string(domain.ActionCollapseAllNodes):   func() any { return &domain.CollapseAllNodes{} },
	string(domain.ActionExpandToLevel):      func() any { return &domain.ExpandToLevel{} },
	string(domain.ActionCollapseToLevel):    func() any { return &domain.CollapseToLevel{} },
	string(domain.ActionAddNode):            func() any { return &domain.AddNode{Index: -1} },
	string(domain.ActionDeleteNode):         func() any { return &domain.DeleteNode{} },
	string(domain.ActionUndo):               func() any { return &Undo{} },
	string(domain.ActionRedo):               func() any { return &Redo{} },
	string(domain.ActionClearHistory):       func() any { return &ResetHistory{} },
	string(domain.ActionResetHistory):       func() any { return &ResetHistory{} },
	OpFinishEditing:                         func() any { return &FinishEditing{} },
	OpAddChildNode:                          func() any { return &AddChildNode{} },
	OpAddSiblingNode:                        func() any { return &AddSiblingNode{} },
	OpAutoLayout:                            func() any { return &AutoLayout{} },
	OpSave:                                  func() any { return &Save{} },
	OpExecuteUseCase:                        func() any { return &ExecuteUseCase{} },
	OpSetReadOnly:                           func() any { return &SetReadOnly{} },
}

// deref unwraps the pointer a builder returned so commands are plain values.
func deref(v any) Command {
	switch c := v.(type) {
	case *domain.SetMindMap:
		return ActionCommand{Action: *c}
	case *domain.UpdateNodeText:
		return ActionCommand{Action: *c}
	case *domain.UpdateNodeType:
		return ActionCommand{Action: *c}
	case *domain.UpdateNodePriority:
		return ActionCommand{Action: *c}
	case *domain.UpdateNodePosition:
		return ActionCommand{Action: *c}
	case *domain.ReparentNode:
		return ActionCommand{Action: *c}
	case *domain.ReorderNode:
		return ActionCommand{Action: *c}
	case *domain.ToggleNodeCollapse:
		return ActionCommand{Action: *c}
	case *domain.ExpandNodes:
		return ActionCommand{Action: *c}
	case *domain.ExpandAllNodes:
		return ActionCommand{Action: *c}
	case *domain.CollapseAllNodes:
		return ActionCommand{Action: *c}
	case *domain.ExpandToLevel:
		return ActionCommand{Action: *c}
	case *domain.CollapseToLevel:
		return ActionCommand{Action: *c}
	case *domain.AddNode:
		return ActionCommand{Action: *c}
	case *domain.DeleteNode:
		return ActionCommand{Action: *c}
	case *ResizeNode:
		return *c
	case *Undo:
		return *c
	case *Redo:
		return *c
	case *ResetHistory:
		return *c
	case *FinishEditing:
		return *c
	case *AddChildNode:
		return *c
	case *AddSiblingNode:
		return *c
	case *AutoLayout:
		return *c
	case *Save:
		return *c
	case *ExecuteUseCase:
		return *c
	case *SetReadOnly:
		return *c
	}
	panic(fmt.Sprintf("compiler: no command for %T", v))
}
