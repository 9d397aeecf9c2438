package schema

import "github.com/aretw0/arbor/pkg/domain"

// RawType is the host spelling of a node type.
type RawType string

const (
	RawRoot           RawType = "rootNode"
	RawModule         RawType = "moduleNode"
	RawTestPoint      RawType = "testPointNode"
	RawUseCase        RawType = "caseNode"
	RawPrecondition   RawType = "preconditionNode"
	RawStep           RawType = "stepNode"
	RawExpectedResult RawType = "resultNode"
	RawGeneral        RawType = "generalNode"
)

var rawToDomain = map[RawType]domain.NodeType{
	RawRoot:           domain.NodeTypeDemand,
	RawModule:         domain.NodeTypeModule,
	RawTestPoint:      domain.NodeTypeTestPoint,
	RawUseCase:        domain.NodeTypeUseCase,
	RawPrecondition:   domain.NodeTypePrecondition,
	RawStep:           domain.NodeTypeStep,
	RawExpectedResult: domain.NodeTypeExpectedResult,
	RawGeneral:        domain.NodeTypeGeneral,
}

// NodeType maps t to the editor vocabulary. Unknown spellings are GENERAL.
func (t RawType) NodeType() domain.NodeType {
	if nt, ok := rawToDomain[t]; ok {
		return nt
	}
	return domain.NodeTypeGeneral
}

// Known reports whether t is one of the documented spellings.
func (t RawType) Known() bool {
	_, ok := rawToDomain[t]
	return ok
}

// RawTypeOf is the inverse of RawType.NodeType.
func RawTypeOf(t domain.NodeType) RawType {
	for raw, nt := range rawToDomain {
		if nt == t {
			return raw
		}
	}
	return RawGeneral
}

// RawNode is one node of a hierarchical document.
// ID and ParentID are host database keys; they are carried but never interpreted.
type RawNode struct {
	ID               *int64     `json:"id,omitempty" yaml:"id,omitempty"`
	ParentID         *int64     `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	UUID             string     `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Name             string     `json:"name" yaml:"name"`
	NodeType         RawType    `json:"nodeType,omitempty" yaml:"nodeType,omitempty"`
	PriorityLevel    string     `json:"priorityLevel,omitempty" yaml:"priorityLevel,omitempty"`
	GenerateModeName string     `json:"generateModeName,omitempty" yaml:"generateModeName,omitempty"`
	SortNumber       int        `json:"sortNumber,omitempty" yaml:"sortNumber,omitempty"`
	ChildNodeList    []*RawNode `json:"childNodeList,omitempty" yaml:"childNodeList,omitempty"`
}

// Walk visits raw and its descendants depth-first, children in list order.
// path is the dotted position of the node, e.g. "root.childNodeList[2]".
func Walk(raw *RawNode, visit func(n *RawNode, path string)) {
	type frame struct {
		n    *RawNode
		path string
	}
	stack := []frame{{raw, "root"}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n == nil {
			continue
		}
		visit(f.n, f.path)
		for i := len(f.n.ChildNodeList) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.n.ChildNodeList[i], childPath(f.path, i)})
		}
	}
}
