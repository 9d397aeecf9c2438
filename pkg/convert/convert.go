// Package convert translates between the hierarchical host document
// (pkg/schema) and the flat MindMap the editor works on.
package convert

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/schema"
	"github.com/google/uuid"
)

type options struct {
	newID func() string
}

// Option configures a conversion.
type Option func(*options)

// WithIDGenerator sets how uuids are minted for raw nodes that lack one.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// NewID returns a dashless random uuid, the spelling hosts use.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ToMindMap validates raw and flattens it. Sibling order is childNodeList
// order; sortNumber is re-derived from it. The root is always expanded.
func ToMindMap(raw *schema.RawNode, opts ...Option) (*domain.MindMap, error) {
	o := &options{newID: NewID}
	for _, opt := range opts {
		opt(o)
	}

	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	m := domain.NewMindMap()
	ids := make(map[*schema.RawNode]string)
	idOf := func(n *schema.RawNode) string {
		if id, ok := ids[n]; ok {
			return id
		}
		id := n.UUID
		if id == "" {
			id = o.newID()
		}
		ids[n] = id
		return id
	}

	m.RootUUID = idOf(raw)

	type frame struct {
		n      *schema.RawNode
		parent string
		sort   int
	}
	stack := []frame{{n: raw}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := idOf(f.n)
		if _, dup := m.Nodes[id]; dup {
			return nil, fmt.Errorf("%w: generated uuid %q collides", domain.ErrInvalidNode, id)
		}
		node := &domain.Node{
			UUID:          id,
			ParentUUID:    f.parent,
			Name:          f.n.Name,
			NodeType:      f.n.NodeType.NodeType(),
			PriorityLevel: domain.Priority(f.n.PriorityLevel),
			SortNumber:    f.sort,
		}
		for _, c := range f.n.ChildNodeList {
			node.ChildNodeList = append(node.ChildNodeList, idOf(c))
		}
		m.Nodes[id] = node

		for i := len(f.n.ChildNodeList) - 1; i >= 0; i-- {
			stack = append(stack, frame{n: f.n.ChildNodeList[i], parent: id, sort: i + 1})
		}
	}
	return m, nil
}

// FromMindMap rebuilds the hierarchical form from the root down.
// Host keys (id, parentId, generateModeName) are not part of the flat model
// and come back empty.
func FromMindMap(m *domain.MindMap) (*schema.RawNode, error) {
	root, ok := m.Root()
	if !ok {
		return nil, fmt.Errorf("%w: root %q", domain.ErrNodeNotFound, m.RootUUID)
	}

	out := rawOf(root)
	type frame struct {
		n   *domain.Node
		raw *schema.RawNode
	}
	seen := map[string]bool{root.UUID: true}
	stack := []frame{{root, out}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, cid := range f.n.ChildNodeList {
			c, ok := m.Node(cid)
			if !ok {
				return nil, fmt.Errorf("%w: child %q of %q", domain.ErrNodeNotFound, cid, f.n.UUID)
			}
			if seen[cid] {
				return nil, fmt.Errorf("%w: %q is listed twice", domain.ErrInvalidNode, cid)
			}
			seen[cid] = true

			rc := rawOf(c)
			f.raw.ChildNodeList = append(f.raw.ChildNodeList, rc)
			stack = append(stack, frame{c, rc})
		}
	}
	return out, nil
}

func rawOf(n *domain.Node) *schema.RawNode {
	return &schema.RawNode{
		UUID:          n.UUID,
		Name:          n.Name,
		NodeType:      schema.RawTypeOf(n.NodeType),
		PriorityLevel: string(n.PriorityLevel),
		SortNumber:    n.SortNumber,
	}
}
