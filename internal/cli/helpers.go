package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/convert"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/schema"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout documents).
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to w.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// LoadDocument reads a hierarchical document (JSON or YAML by extension) and flattens it.
func LoadDocument(path string) (*domain.MindMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	raw, err := schema.Decode(data, schema.FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	return convert.ToMindMap(raw)
}

// MeasureAll gives every unmeasured node a nominal size so layout can run
// without a rendering host.
func MeasureAll(m *domain.MindMap, size domain.Size) *domain.MindMap {
	if m.AllMeasured() {
		return m
	}
	out := m.ShallowCopy()
	for id, n := range out.Nodes {
		if n.Measured() {
			continue
		}
		c := n.Clone()
		c.SetSize(size.Width, size.Height)
		out.Nodes[id] = c
	}
	return out
}

// createDebugHooks logs every notification and rejection.
func createDebugHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnChange: func(c *domain.ChangeInfo) {
			logger.Debug("Change", "op", c.OperationType, "description", c.Description, "affected", len(c.AffectedNodeUUIDs))
		},
		OnReject: func(e *domain.RejectEvent) {
			logger.Debug("Rejected", "op", e.Action, "node", e.NodeUUID, "err", e.Reason)
		},
		OnSave: func(c *domain.ChangeInfo) {
			logger.Debug("Saved", "revision", c.Revision)
		},
		OnExecuteUseCase: func(c *domain.ChangeInfo) {
			logger.Debug("Execute Use Case", "node", c.CurrentNode.UUID)
		},
	}
}
