package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/config"
	"github.com/aretw0/arbor/pkg/domain"
)

// EditorOptions contains what every command needs to open a document.
type EditorOptions struct {
	DocPath    string
	ConfigPath string
	Debug      bool
	// Editable starts the editor writable regardless of the config file.
	Editable bool
	// Hooks are added after the debug hooks and take precedence.
	Hooks domain.Hooks
}

// CreateEditor loads the config and document and opens an editor with standard CLI conventions.
func CreateEditor(opts EditorOptions, logger *slog.Logger) (*arbor.Editor, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	doc, err := LoadDocument(opts.DocPath)
	if err != nil {
		return nil, err
	}

	editorOpts := []arbor.Option{
		arbor.WithConfig(cfg),
		arbor.WithLogger(logger),
	}
	if opts.Editable {
		editorOpts = append(editorOpts, arbor.WithReadOnly(false))
	}

	hooks := opts.Hooks
	if opts.Debug {
		hooks = mergeHooks(createDebugHooks(logger), hooks)
	}
	editorOpts = append(editorOpts, arbor.WithHooks(hooks))

	ed, err := arbor.New(doc, editorOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing editor: %w", err)
	}
	return ed, nil
}

// mergeHooks calls a then b for every callback either defines.
func mergeHooks(a, b domain.Hooks) domain.Hooks {
	return domain.Hooks{
		OnChange:         chain(a.OnChange, b.OnChange),
		OnReject:         chain(a.OnReject, b.OnReject),
		OnSave:           chain(a.OnSave, b.OnSave),
		OnExecuteUseCase: chain(a.OnExecuteUseCase, b.OnExecuteUseCase),
	}
}

func chain[T any](a, b func(T)) func(T) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(v T) {
		a(v)
		b(v)
	}
}
