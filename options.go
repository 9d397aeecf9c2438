package arbor

import (
	"log/slog"
	"time"

	"github.com/aretw0/arbor/pkg/config"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/layout"
)

// Option defines a functional option for configuring the Editor.
// Options apply in order, so WithConfig should come before the finer grained ones.
type Option func(*Editor)

// WithConfig replaces the whole configuration.
func WithConfig(cfg config.Config) Option {
	return func(e *Editor) {
		e.cfg = cfg
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithHooks registers host callbacks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithLayout swaps the layout pass.
func WithLayout(fn layout.Func) Option {
	return func(e *Editor) {
		e.layout = fn
	}
}

// WithLayoutOptions tunes the default layout pass. Ignored when WithLayout is used.
func WithLayoutOptions(opts ...layout.Option) Option {
	return func(e *Editor) {
		e.layoutOpts = append(e.layoutOpts, opts...)
	}
}

// WithClock sets the time source for notification timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		e.now = now
	}
}

// WithIDGenerator sets how uuids for new nodes are minted (default: random UUIDv4).
func WithIDGenerator(fn func() string) Option {
	return func(e *Editor) {
		e.newID = fn
	}
}

// WithReadOnly sets the initial read-only flag.
func WithReadOnly(readOnly bool) Option {
	return func(e *Editor) {
		e.cfg.ReadOnly = readOnly
	}
}

// WithStrictMode toggles hierarchy rules for new and reparented nodes.
func WithStrictMode(strict bool) Option {
	return func(e *Editor) {
		e.cfg.StrictMode = strict
		e.cfg.StrictDrag = strict
	}
}

// WithHistoryLimit caps the number of undo steps kept.
func WithHistoryLimit(n int) Option {
	return func(e *Editor) {
		e.cfg.HistoryLimit = n
	}
}

// WithReorderableTypes lists the node types that may be reordered among siblings.
// Calling it with no types disables reordering.
func WithReorderableTypes(types ...domain.NodeType) Option {
	return func(e *Editor) {
		e.cfg.EnableNodeReorder = len(types) > 0
		e.cfg.ReorderableNodeTypes = types
	}
}

// WithPriorityEditableTypes lists the node types whose priority may change.
func WithPriorityEditableTypes(types ...domain.NodeType) Option {
	return func(e *Editor) {
		e.cfg.PriorityEditableNodeTypes = types
	}
}

// WithUseCaseExecution controls ExecuteUseCase, both in general and while read-only.
func WithUseCaseExecution(enabled, whileReadOnly bool) Option {
	return func(e *Editor) {
		e.cfg.EnableUseCaseExecution = enabled
		e.cfg.EnableReadOnlyUseCaseExecution = whileReadOnly
	}
}
