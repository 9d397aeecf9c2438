// Package history wraps a mind map reducer with undo and redo.
//
// A State holds past snapshots (oldest first), the present snapshot and the
// future snapshots (next redo first). Wrap returns a pure transition function
// over State; it never mutates the State it receives.
package history

import (
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
)

// Reducer is the wrapped transition function.
type Reducer func(*domain.MindMap, domain.Action) *domain.MindMap

// State is the three-slot history.
type State struct {
	Past    []*domain.MindMap
	Present *domain.MindMap
	Future  []*domain.MindMap
}

// New starts a history with present as its only snapshot.
func New(present *domain.MindMap) State {
	return State{Present: present}
}

// CanUndo reports whether a past snapshot exists.
func (s State) CanUndo() bool { return len(s.Past) > 0 }

// CanRedo reports whether a future snapshot exists.
func (s State) CanRedo() bool { return len(s.Future) > 0 }

// IsDirty reports whether anything was recorded since the last baseline.
func (s State) IsDirty() bool { return len(s.Past) > 0 }

// PreviousUndo returns the snapshot Undo would restore.
func (s State) PreviousUndo() (*domain.MindMap, bool) {
	if !s.CanUndo() {
		return nil, false
	}
	return s.Past[len(s.Past)-1], true
}

// NextRedo returns the snapshot Redo would restore.
func (s State) NextRedo() (*domain.MindMap, bool) {
	if !s.CanRedo() {
		return nil, false
	}
	return s.Future[0], true
}

// ResetHistory replaces the present and forgets past and future.
type ResetHistory struct {
	Present *domain.MindMap
}

// ClearHistory keeps the present as a fresh baseline with nothing to undo or redo.
type ClearHistory struct{}

// CommitEdit records Archive as the undo point and installs Present.
// Archive may differ from the current present, e.g. when an edit session
// went through transient sizes that should not be restored by undo.
type CommitEdit struct {
	Archive *domain.MindMap
	Present *domain.MindMap
}

// Undo restores the newest past snapshot.
type Undo struct{}

// Redo restores the next future snapshot.
type Redo struct{}

func (ResetHistory) Kind() domain.ActionType { return domain.ActionResetHistory }
func (ClearHistory) Kind() domain.ActionType { return domain.ActionClearHistory }
func (CommitEdit) Kind() domain.ActionType   { return domain.ActionCommitEdit }
func (Undo) Kind() domain.ActionType         { return domain.ActionUndo }
func (Redo) Kind() domain.ActionType         { return domain.ActionRedo }

type config struct {
	ignored map[domain.ActionType]bool
	limit   int
}

// Option configures Wrap.
type Option func(*config)

// WithIgnoredActions lists action kinds that replace the present without
// recording an undo entry.
func WithIgnoredActions(kinds ...domain.ActionType) Option {
	return func(c *config) {
		for _, k := range kinds {
			c.ignored[k] = true
		}
	}
}

// WithLimit caps the number of past snapshots; the oldest are dropped first.
// Zero or a negative value means unbounded.
func WithLimit(n int) Option {
	return func(c *config) {
		c.limit = n
	}
}

// Wrap returns a transition function over State driven by reduce.
func Wrap(reduce Reducer, opts ...Option) func(State, domain.Action) State {
	cfg := &config{ignored: make(map[domain.ActionType]bool)}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(s State, action domain.Action) State {
		switch a := action.(type) {
		case ResetHistory:
			return State{Present: a.Present}
		case ClearHistory:
			return State{Present: s.Present}
		case CommitEdit:
			return State{
				Past:    cfg.push(s.Past, a.Archive),
				Present: a.Present,
			}
		case Undo:
			prev, ok := s.PreviousUndo()
			if !ok {
				return s
			}
			return State{
				Past:    s.Past[: len(s.Past)-1 : len(s.Past)-1],
				Present: prev,
				Future:  append([]*domain.MindMap{s.Present}, s.Future...),
			}
		case Redo:
			next, ok := s.NextRedo()
			if !ok {
				return s
			}
			return State{
				Past:    cfg.push(s.Past, s.Present),
				Present: next,
				Future:  slices.Clone(s.Future[1:]),
			}
		}

		if action == nil {
			return s
		}

		next := reduce(s.Present, action)
		if next == s.Present {
			return s
		}
		if cfg.ignored[action.Kind()] {
			return State{Past: s.Past, Present: next, Future: s.Future}
		}
		return State{
			Past:    cfg.push(s.Past, s.Present),
			Present: next,
		}
	}
}

// push appends snap to a copy of past, honoring the limit.
func (c *config) push(past []*domain.MindMap, snap *domain.MindMap) []*domain.MindMap {
	out := make([]*domain.MindMap, 0, len(past)+1)
	out = append(out, past...)
	out = append(out, snap)
	if c.limit > 0 && len(out) > c.limit {
		out = out[len(out)-c.limit:]
	}
	return out
}
