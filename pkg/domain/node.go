package domain

import "slices"

// NodeType classifies a node. Ranked types form a fixed hierarchy used by
// level-based expand and collapse.
type NodeType string

const (
	NodeTypeDemand         NodeType = "DEMAND"
	NodeTypeModule         NodeType = "MODULE"
	NodeTypeTestPoint      NodeType = "TEST_POINT"
	NodeTypeUseCase        NodeType = "USE_CASE"
	NodeTypePrecondition   NodeType = "PRECONDITION"
	NodeTypeStep           NodeType = "STEP"
	NodeTypeExpectedResult NodeType = "EXPECTED_RESULT"
	// NodeTypeGeneral is a free-form node outside the hierarchy.
	NodeTypeGeneral NodeType = "GENERAL"
)

// TypeHierarchy is the total order over ranked node types, shallowest first.
var TypeHierarchy = []NodeType{
	NodeTypeDemand,
	NodeTypeModule,
	NodeTypeTestPoint,
	NodeTypeUseCase,
	NodeTypePrecondition,
	NodeTypeStep,
	NodeTypeExpectedResult,
}

var typeLabels = map[NodeType]string{
	NodeTypeDemand:         "Demand",
	NodeTypeModule:         "Module",
	NodeTypeTestPoint:      "Test Point",
	NodeTypeUseCase:        "Use Case",
	NodeTypePrecondition:   "Precondition",
	NodeTypeStep:           "Step",
	NodeTypeExpectedResult: "Expected Result",
	NodeTypeGeneral:        "General",
}

// Rank returns the position of t in TypeHierarchy, or -1 when t is unranked.
func (t NodeType) Rank() int {
	return slices.Index(TypeHierarchy, t)
}

// Label returns the default display name for the type.
func (t NodeType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid reports whether t is a known node type.
func (t NodeType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// ChildType returns the type a new child of t receives in strict mode.
// The second result is false when t may not have children.
func (t NodeType) ChildType() (NodeType, bool) {
	switch t {
	case NodeTypeExpectedResult:
		return "", false
	case NodeTypeUseCase:
		// Steps are the default content of a use case; preconditions are added explicitly.
		return NodeTypeStep, true
	case NodeTypePrecondition:
		return "", false
	}
	r := t.Rank()
	if r < 0 {
		return NodeTypeGeneral, true
	}
	return TypeHierarchy[r+1], true
}

// Priority is the ranked priority of a node. The zero value means unset.
type Priority string

const (
	PriorityNone Priority = ""
	PriorityP0   Priority = "0"
	PriorityP1   Priority = "1"
	PriorityP2   Priority = "2"
	PriorityP3   Priority = "3"
)

// Valid reports whether p is unset or one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityP0, PriorityP1, PriorityP2, PriorityP3:
		return true
	}
	return false
}

// String renders the priority as shown to users (P0..P3).
func (p Priority) String() string {
	if p == PriorityNone {
		return ""
	}
	return "P" + string(p)
}

// Position is the top-left corner of a node on the canvas.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is a single entity of the mind map.
// Nodes never hold references to other nodes; relationships are uuids.
type Node struct {
	UUID          string   `json:"uuid" yaml:"uuid"`
	ParentUUID    string   `json:"parentUuid,omitempty" yaml:"parentUuid,omitempty"`
	ChildNodeList []string `json:"childNodeList,omitempty" yaml:"childNodeList,omitempty"`
	Name          string   `json:"name" yaml:"name"`
	NodeType      NodeType `json:"nodeType" yaml:"nodeType"`
	PriorityLevel Priority `json:"priorityLevel,omitempty" yaml:"priorityLevel,omitempty"`
	Position      Position `json:"position" yaml:"position"`

	// Width and Height are nil until the rendering host has measured the node.
	Width  *float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height *float64 `json:"height,omitempty" yaml:"height,omitempty"`

	IsCollapsed bool `json:"isCollapsed,omitempty" yaml:"isCollapsed,omitempty"`

	// SortNumber is the 1-based sibling rank. Zero means unset.
	SortNumber int `json:"sortNumber,omitempty" yaml:"sortNumber,omitempty"`
}

// Clone returns a copy of n that shares no mutable memory with it.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.ChildNodeList = slices.Clone(n.ChildNodeList)
	if n.Width != nil {
		w := *n.Width
		c.Width = &w
	}
	if n.Height != nil {
		h := *n.Height
		c.Height = &h
	}
	return &c
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	return n.ParentUUID == ""
}

// Measured reports whether the host has reported a width for n.
func (n *Node) Measured() bool {
	return n.Width != nil
}

// Size returns the measured size, zero for unmeasured dimensions.
func (n *Node) Size() (w, h float64) {
	if n.Width != nil {
		w = *n.Width
	}
	if n.Height != nil {
		h = *n.Height
	}
	return w, h
}

// HasSize reports whether n is measured with exactly w x h.
func (n *Node) HasSize(w, h float64) bool {
	return n.Width != nil && n.Height != nil && *n.Width == w && *n.Height == h
}

// SetSize stores a measured size on n.
func (n *Node) SetSize(w, h float64) {
	n.Width = &w
	n.Height = &h
}

// Size is a measured width and height.
type Size struct {
	Width  float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`
}

// SizeOf returns the measured size of n; ok is false when n is unmeasured.
func SizeOf(n *Node) (s Size, ok bool) {
	if n == nil || n.Width == nil || n.Height == nil {
		return Size{}, false
	}
	return Size{Width: *n.Width, Height: *n.Height}, true
}
