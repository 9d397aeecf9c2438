package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	// Highlighted nodes, e.g. the ones touched by the last change.
	Highlighted []string
	CurrentNode string
}

// GenerateMermaid produces a Mermaid flowchart of the document, left to right.
// It applies semantic styling:
// - Root: ((Circle))
// - Use case: [[Subroutine]]
// - Precondition: [/Parallelogram/]
// - Expected result: ([Stadium])
// - Default: [Rectangle]
// Collapsed nodes are drawn with a "+N" badge and their subtree is omitted.
func GenerateMermaid(m *domain.MindMap, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var collapsed []string
	tree.Walk(m, func(n *domain.Node, depth int) bool {
		safeID := sanitizeMermaidID(n.UUID)

		// Node Shape based on Type
		opener, closer := "[", "]"
		switch {
		case n.UUID == m.RootUUID:
			opener, closer = "((", "))"
		case n.NodeType == domain.NodeTypeUseCase:
			opener, closer = "[[", "]]"
		case n.NodeType == domain.NodeTypePrecondition:
			opener, closer = "[/", "/]"
		case n.NodeType == domain.NodeTypeExpectedResult:
			opener, closer = "([", "])"
		}

		label := escapeLabel(n.Name)
		if p := n.PriorityLevel.String(); p != "" {
			label = fmt.Sprintf("%s <br/> %s", label, p)
		}
		if n.IsCollapsed && len(n.ChildNodeList) > 0 {
			label = fmt.Sprintf("%s <br/> +%d", label, tree.CountAllDescendants(m, n.UUID))
			collapsed = append(collapsed, safeID)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)

		if n.ParentUUID != "" {
			fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(n.ParentUUID), safeID)
		}
		return !n.IsCollapsed
	})

	if len(collapsed) > 0 {
		sb.WriteString("\n    classDef collapsed stroke-dasharray: 5 5;\n")
		for _, id := range collapsed {
			fmt.Fprintf(&sb, "    class %s collapsed;\n", id)
		}
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef highlighted fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Highlighted {
			if _, ok := m.Node(id); !ok {
				continue
			}
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s highlighted;\n", safeID)
			}
		}

		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return "n_" + s
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.ReplaceAll(s, "\n", " ")
}
