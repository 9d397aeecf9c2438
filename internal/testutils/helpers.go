package testutils

import (
	"github.com/aretw0/arbor/pkg/domain"
)

// Builder assembles MindMap fixtures. Children are appended in call order
// and receive a 1-based sortNumber.
type Builder struct {
	m *domain.MindMap
}

// NewBuilder starts a document with a DEMAND root.
func NewBuilder(rootUUID string) *Builder {
	m := domain.NewMindMap()
	m.RootUUID = rootUUID
	m.Nodes[rootUUID] = &domain.Node{
		UUID:     rootUUID,
		Name:     rootUUID,
		NodeType: domain.NodeTypeDemand,
	}
	return &Builder{m: m}
}

// Add appends a child of type t under parent.
func (b *Builder) Add(parent, uuid string, t domain.NodeType) *Builder {
	p := b.m.Nodes[parent]
	p.ChildNodeList = append(p.ChildNodeList, uuid)
	b.m.Nodes[uuid] = &domain.Node{
		UUID:       uuid,
		ParentUUID: parent,
		Name:       uuid,
		NodeType:   t,
		SortNumber: len(p.ChildNodeList),
	}
	return b
}

// Collapse marks uuid as collapsed.
func (b *Builder) Collapse(uuid string) *Builder {
	b.m.Nodes[uuid].IsCollapsed = true
	return b
}

// Priority sets the priority of uuid.
func (b *Builder) Priority(uuid string, p domain.Priority) *Builder {
	b.m.Nodes[uuid].PriorityLevel = p
	return b
}

// Size measures uuid.
func (b *Builder) Size(uuid string, w, h float64) *Builder {
	b.m.Nodes[uuid].SetSize(w, h)
	return b
}

// Measured gives every node a w x h size.
func (b *Builder) Measured(w, h float64) *Builder {
	for _, n := range b.m.Nodes {
		n.SetSize(w, h)
	}
	return b
}

// Build returns the assembled document.
func (b *Builder) Build() *domain.MindMap {
	return b.m
}

// Sample returns a small test-case document:
//
//	root (DEMAND)
//	├── m1 (MODULE)
//	│   └── tp1 (TEST_POINT)
//	│       └── uc1 (USE_CASE)
//	│           ├── p1 (PRECONDITION)
//	│           ├── s1 (STEP)
//	│           │   └── r1 (EXPECTED_RESULT)
//	│           ├── s2 (STEP)
//	│           └── s3 (STEP)
//	└── m2 (MODULE)
func Sample() *Builder {
	return NewBuilder("root").
		Add("root", "m1", domain.NodeTypeModule).
		Add("m1", "tp1", domain.NodeTypeTestPoint).
		Add("tp1", "uc1", domain.NodeTypeUseCase).
		Add("uc1", "p1", domain.NodeTypePrecondition).
		Add("uc1", "s1", domain.NodeTypeStep).
		Add("s1", "r1", domain.NodeTypeExpectedResult).
		Add("uc1", "s2", domain.NodeTypeStep).
		Add("uc1", "s3", domain.NodeTypeStep).
		Add("root", "m2", domain.NodeTypeModule)
}
