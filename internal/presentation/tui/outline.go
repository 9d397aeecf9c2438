package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// OutlineOptions tunes Outline.
type OutlineOptions struct {
	// ShowCollapsed descends into collapsed subtrees.
	ShowCollapsed bool
	// Title is rendered as a level one heading when set.
	Title string
}

// Outline renders the document as a nested Markdown list with one
// "**[TYPE]** name" item per node and a code-span priority badge.
// Collapsed nodes are suffixed with the number of hidden descendants.
func Outline(m *domain.MindMap, opts OutlineOptions) string {
	var sb strings.Builder
	if opts.Title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", opts.Title)
	}

	tree.Walk(m, func(n *domain.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&sb, "- **[%s]** %s", escapeMarkdown(string(n.NodeType)), escapeMarkdown(n.Name))
		if p := n.PriorityLevel.String(); p != "" {
			fmt.Fprintf(&sb, " `%s`", p)
		}
		hidden := n.IsCollapsed && len(n.ChildNodeList) > 0 && !opts.ShowCollapsed
		if hidden {
			fmt.Fprintf(&sb, " _(+%d hidden)_", tree.CountAllDescendants(m, n.UUID))
		}
		sb.WriteString("\n")
		return !hidden
	})

	if m.IsEmpty() {
		sb.WriteString("_empty document_\n")
	}
	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"*", "\\*",
	"_", "\\_",
	"`", "\\`",
	"[", "\\[",
	"]", "\\]",
	"\n", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
