// Package layout computes node positions for a horizontal mind map.
//
// The root sits at the origin; every child column starts HorizontalGap to
// the right of its parent, and each sibling block is centered vertically on
// its parent. A node's footprint is the larger of its own height and the
// stacked footprints of its visible children, so collapsed subtrees occupy
// only the collapsed node's box.
package layout

import (
	"github.com/aretw0/arbor/pkg/domain"
)

const (
	DefaultHorizontalGap = 80
	DefaultVerticalGap   = 20
)

// Options controls spacing and placement.
type Options struct {
	HorizontalGap float64
	VerticalGap   float64
	Origin        domain.Position
}

// Option configures Auto.
type Option func(*Options)

// WithGaps sets the horizontal and vertical spacing.
func WithGaps(horizontal, vertical float64) Option {
	return func(o *Options) {
		o.HorizontalGap = horizontal
		o.VerticalGap = vertical
	}
}

// WithOrigin sets the position of the root node.
func WithOrigin(p domain.Position) Option {
	return func(o *Options) {
		o.Origin = p
	}
}

// Func is the signature of a layout pass, so hosts can swap the algorithm.
type Func func(*domain.MindMap) *domain.MindMap

// New returns a layout pass bound to opts.
func New(opts ...Option) Func {
	return func(m *domain.MindMap) *domain.MindMap {
		return Auto(m, opts...)
	}
}

// Ready reports whether every node is measured and layout can run without guessing sizes.
func Ready(m *domain.MindMap) bool {
	return m.AllMeasured()
}

// Auto assigns a position to every node reachable from the root. It never
// alters structural fields, and it returns m itself when no position moves.
// Unmeasured nodes are treated as zero-sized boxes.
func Auto(m *domain.MindMap, opts ...Option) *domain.MindMap {
	o := Options{HorizontalGap: DefaultHorizontalGap, VerticalGap: DefaultVerticalGap}
	for _, opt := range opts {
		opt(&o)
	}

	root, ok := m.Root()
	if !ok {
		return m
	}

	order := preOrder(m, root.UUID)
	footprint := footprints(m, order, o.VerticalGap)
	placed := place(m, order, footprint, o)

	var next *domain.MindMap
	for _, id := range order {
		n := m.Nodes[id]
		p := placed[id]
		if n.Position == p {
			continue
		}
		if next == nil {
			next = m.ShallowCopy()
		}
		c := n.Clone()
		c.Position = p
		next.Nodes[id] = c
	}
	if next == nil {
		return m
	}
	return next
}

// preOrder lists every node reachable from rootID, parents before children,
// siblings in childNodeList order. Cycles and dangling ids are skipped.
func preOrder(m *domain.MindMap, rootID string) []string {
	var order []string
	seen := make(map[string]bool)
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := m.Node(id)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
		for i := len(n.ChildNodeList) - 1; i >= 0; i-- {
			stack = append(stack, n.ChildNodeList[i])
		}
	}
	return order
}

// visibleChildren returns the reachable children of a node that is not collapsed.
func visibleChildren(n *domain.Node, reachable map[string]float64) []string {
	if n.IsCollapsed {
		return nil
	}
	out := make([]string, 0, len(n.ChildNodeList))
	for _, id := range n.ChildNodeList {
		if _, ok := reachable[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// footprints computes the vertical space of each subtree bottom-up by
// walking the pre-order list backwards.
func footprints(m *domain.MindMap, order []string, gap float64) map[string]float64 {
	fp := make(map[string]float64, len(order))
	for _, id := range order {
		fp[id] = 0
	}
	for i := len(order) - 1; i >= 0; i-- {
		n := m.Nodes[order[i]]
		_, h := n.Size()

		children := visibleChildren(n, fp)
		total := 0.0
		for j, c := range children {
			total += fp[c]
			if j < len(children)-1 {
				total += gap
			}
		}
		fp[n.UUID] = max(h, total)
	}
	return fp
}

// place assigns positions top-down. Hidden descendants of a collapsed node
// share the collapsed node's position.
func place(m *domain.MindMap, order []string, fp map[string]float64, o Options) map[string]domain.Position {
	pos := make(map[string]domain.Position, len(order))
	hidden := make(map[string]bool)

	rootID := order[0]
	_, rootH := m.Nodes[rootID].Size()
	pos[rootID] = domain.Position{X: o.Origin.X, Y: o.Origin.Y + (fp[rootID]-rootH)/2}

	for _, id := range order {
		n := m.Nodes[id]
		p := pos[id]

		if n.IsCollapsed || hidden[id] {
			for _, c := range n.ChildNodeList {
				if _, ok := fp[c]; ok {
					pos[c] = p
					hidden[c] = true
				}
			}
			continue
		}

		children := visibleChildren(n, fp)
		if len(children) == 0 {
			continue
		}

		total := 0.0
		for j, c := range children {
			total += fp[c]
			if j < len(children)-1 {
				total += o.VerticalGap
			}
		}

		w, h := n.Size()
		x := p.X + w + o.HorizontalGap
		y := p.Y + h/2 - total/2
		for _, c := range children {
			_, ch := m.Nodes[c].Size()
			pos[c] = domain.Position{X: x, Y: y + (fp[c]-ch)/2}
			y += fp[c] + o.VerticalGap
		}
	}
	return pos
}
