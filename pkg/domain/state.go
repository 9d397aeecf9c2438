package domain

import (
	"maps"
	"slices"
)

// MindMap is the normalized tree document. The Nodes map is the single source
// of truth; a MindMap is treated as an immutable snapshot once published.
type MindMap struct {
	RootUUID string           `json:"rootUuid" yaml:"rootUuid"`
	Nodes    map[string]*Node `json:"nodes" yaml:"nodes"`
}

// NewMindMap creates an empty document.
func NewMindMap() *MindMap {
	return &MindMap{Nodes: make(map[string]*Node)}
}

// Node looks up a node by uuid.
func (m *MindMap) Node(uuid string) (*Node, bool) {
	if m == nil || uuid == "" {
		return nil, false
	}
	n, ok := m.Nodes[uuid]
	return n, ok && n != nil
}

// Root returns the root node, if present.
func (m *MindMap) Root() (*Node, bool) {
	if m == nil {
		return nil, false
	}
	return m.Node(m.RootUUID)
}

// Len returns the number of nodes in the store.
func (m *MindMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Nodes)
}

// IsEmpty reports whether the document has no root.
func (m *MindMap) IsEmpty() bool {
	return m == nil || m.RootUUID == "" || len(m.Nodes) == 0
}

// UUIDs returns every node uuid in ascending order.
func (m *MindMap) UUIDs() []string {
	if m == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m.Nodes))
}

// AllMeasured reports whether every node has a measured width.
// An empty document is never considered measured.
func (m *MindMap) AllMeasured() bool {
	if m.IsEmpty() {
		return false
	}
	for _, n := range m.Nodes {
		if !n.Measured() {
			return false
		}
	}
	return true
}

// ShallowCopy returns a new MindMap whose node map is a fresh copy holding
// the same node pointers. Callers replace the nodes they modify with clones.
func (m *MindMap) ShallowCopy() *MindMap {
	return &MindMap{
		RootUUID: m.RootUUID,
		Nodes:    maps.Clone(m.Nodes),
	}
}

// Clone returns a deep copy of m.
func (m *MindMap) Clone() *MindMap {
	if m == nil {
		return nil
	}
	c := &MindMap{RootUUID: m.RootUUID, Nodes: make(map[string]*Node, len(m.Nodes))}
	for id, n := range m.Nodes {
		c.Nodes[id] = n.Clone()
	}
	return c
}
