package arbor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/validator"
	"github.com/aretw0/arbor/pkg/config"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/history"
	"github.com/aretw0/arbor/pkg/layout"
	"github.com/aretw0/arbor/pkg/reducer"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/google/uuid"
)

// Editor orchestrates reducer, layout, history and change notifications for
// one document. It is not safe for concurrent use; hosts that share an
// Editor across goroutines must serialize access.
type Editor struct {
	hist history.State
	step func(history.State, domain.Action) history.State

	layout     layout.Func
	layoutOpts []layout.Option
	hooks      domain.Hooks
	logger     *slog.Logger
	log        *slog.Logger
	now        func() time.Time
	newID      func() string

	cfg      config.Config
	readOnly bool

	// initialLayoutDone is reset on every load and set once all nodes are measured.
	initialLayoutDone bool
}

// New creates an Editor over initial. A nil document starts empty.
// The document is validated before it is accepted.
func New(initial *domain.MindMap, opts ...Option) (*Editor, error) {
	e := &Editor{
		cfg:   config.Default(),
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid editor config: %w", err)
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	if e.layout == nil {
		base := []layout.Option{
			layout.WithGaps(e.cfg.Layout.HorizontalGap, e.cfg.Layout.VerticalGap),
			layout.WithOrigin(domain.Position{X: e.cfg.Layout.OriginX, Y: e.cfg.Layout.OriginY}),
		}
		e.layout = layout.New(append(base, e.layoutOpts...)...)
	}

	e.step = history.Wrap(reducer.Reduce,
		history.WithIgnoredActions(e.cfg.IgnoredActions...),
		history.WithIgnoredActions(domain.ActionUpdateNodeSize),
		history.WithLimit(e.cfg.HistoryLimit),
	)
	e.readOnly = e.cfg.ReadOnly

	if initial == nil {
		initial = domain.NewMindMap()
	}
	if err := validator.Validate(initial); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	e.load(initial)
	return e, nil
}

// Document returns the present snapshot. Callers must not mutate it.
func (e *Editor) Document() *domain.MindMap {
	return e.hist.Present
}

// History returns the full undo state.
func (e *Editor) History() history.State {
	return e.hist
}

func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }
func (e *Editor) IsDirty() bool { return e.hist.IsDirty() }

// ReadOnly reports whether user edits are currently refused.
func (e *Editor) ReadOnly() bool {
	return e.readOnly
}

// Config returns the settings the Editor was built with.
func (e *Editor) Config() config.Config {
	return e.cfg
}

// load installs m as a fresh baseline and announces it.
func (e *Editor) load(m *domain.MindMap) {
	e.log = e.logger.With("root", m.RootUUID)
	e.hist = e.step(e.hist, history.ResetHistory{Present: m})
	e.initialLayoutDone = false

	e.emit(&domain.ChangeInfo{
		OperationType:     domain.OpLoadData,
		Description:       "Initial data loaded",
		PreviousData:      domain.NewMindMap(),
		CurrentData:       m,
		AffectedNodeUUIDs: m.UUIDs(),
	})
	e.log.Debug("document loaded", "nodes", m.Len())

	e.tryInitialLayout()
}

// tryInitialLayout lays out the document once every node has been measured.
// The laid out map becomes the history baseline.
func (e *Editor) tryInitialLayout() {
	if e.initialLayoutDone {
		return
	}
	cur := e.Document()
	if cur.RootUUID == "" || !layout.Ready(cur) {
		return
	}

	laid := e.layout(cur)
	e.hist = e.step(e.hist, history.ResetHistory{Present: laid})
	e.initialLayoutDone = true

	e.emit(&domain.ChangeInfo{
		OperationType: domain.OpLayout,
		Description:   "Initial auto-layout applied",
		PreviousData:  cur,
		CurrentData:   laid,
	})
	e.log.Debug("initial layout applied")
}

// relayout runs the layout pass, deferring it while any node is unmeasured.
func (e *Editor) relayout(m *domain.MindMap) *domain.MindMap {
	if !layout.Ready(m) {
		return m
	}
	return e.layout(m)
}

// commit records next as a normal history entry.
func (e *Editor) commit(next *domain.MindMap) {
	e.hist = e.step(e.hist, domain.SetMindMap{Data: next})
}

func (e *Editor) emit(info *domain.ChangeInfo) domain.Outcome {
	if info.Timestamp.IsZero() {
		info.Timestamp = e.now()
	}
	e.log.Debug("change", "op", info.OperationType, "affected", len(info.AffectedNodeUUIDs))
	if e.hooks.OnChange != nil {
		e.hooks.OnChange(info)
	}
	return domain.Accepted(info)
}

func (e *Editor) reject(kind domain.ActionType, nodeID string, reason error) domain.Outcome {
	if errors.Is(reason, domain.ErrNoChange) {
		e.log.Debug("command had no effect", "op", kind, "node", nodeID)
		return domain.Rejected(reason)
	}

	e.log.Warn("command rejected", "op", kind, "node", nodeID, "reason", reason)
	if e.hooks.OnReject != nil {
		e.hooks.OnReject(&domain.RejectEvent{
			Timestamp: e.now(),
			Action:    kind,
			NodeUUID:  nodeID,
			Reason:    reason,
		})
	}
	return domain.Rejected(reason)
}

// guardEdit refuses user edits while the editor is read-only.
func (e *Editor) guardEdit(kind domain.ActionType, nodeID string) (domain.Outcome, bool) {
	if e.readOnly {
		return e.reject(kind, nodeID, domain.ErrReadOnly), false
	}
	return domain.Outcome{}, true
}

// lookup resolves id in the present document.
func (e *Editor) lookup(kind domain.ActionType, id string) (*domain.Node, domain.Outcome, bool) {
	n, ok := e.Document().Node(id)
	if !ok {
		return nil, e.reject(kind, id, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)), false
	}
	return n, domain.Outcome{}, true
}

// nodeChange builds a notification centered on one node of cur.
func nodeChange(op domain.OperationType, desc string, prev, cur *domain.MindMap, id string) *domain.ChangeInfo {
	info := &domain.ChangeInfo{
		OperationType:     op,
		Description:       desc,
		PreviousData:      prev,
		CurrentData:       cur,
		AffectedNodeUUIDs: []string{id},
	}

	n, ok := cur.Node(id)
	if !ok {
		return info
	}
	info.CurrentNode = n
	info.UpdatedNodes = []*domain.Node{n}
	if p, ok := cur.Node(n.ParentUUID); ok {
		info.ParentNode = p
	}

	chain := tree.NodeChain(cur, id)
	parent := chain.Parent()
	info.UUIDChain = chain.UUIDs
	info.UUIDChainNodes = chain.Nodes
	info.ParentUUIDChain = parent.UUIDs
	info.ParentUUIDChainNodes = parent.Nodes
	return info
}

// nodesOf resolves ids in m, skipping the ones that are gone.
func nodesOf(m *domain.MindMap, ids []string) []*domain.Node {
	out := make([]*domain.Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := m.Node(id); ok {
			out = append(out, n)
		}
	}
	return out
}
