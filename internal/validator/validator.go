package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Validate checks the structural invariants of a mind map: the root exists,
// is unparented and expanded; parent and child links agree; every node is
// reachable exactly once from the root; no id dangles; and sortNumber, when
// set, mirrors the sibling order. An empty document is valid.
func Validate(m *domain.MindMap) error {
	if m == nil || (m.RootUUID == "" && len(m.Nodes) == 0) {
		return nil
	}

	var errors []string

	root, ok := m.Root()
	if !ok {
		return fmt.Errorf("found 1 errors:\n- root node '%s' not found", m.RootUUID)
	}
	if root.ParentUUID != "" {
		errors = append(errors, fmt.Sprintf("root '%s' has parent '%s'", root.UUID, root.ParentUUID))
	}
	if root.IsCollapsed {
		errors = append(errors, fmt.Sprintf("root '%s' is collapsed", root.UUID))
	}

	for key, n := range m.Nodes {
		if n == nil {
			errors = append(errors, fmt.Sprintf("nil node under key '%s'", key))
			continue
		}
		if n.UUID != key {
			errors = append(errors, fmt.Sprintf("node key '%s' holds uuid '%s'", key, n.UUID))
		}
	}

	// Crawl from the root.
	visited := make(map[string]bool)
	queue := []string{root.UUID}
	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			errors = append(errors, fmt.Sprintf("node '%s' is reachable more than once", currentID))
			continue
		}
		visited[currentID] = true

		n, ok := m.Node(currentID)
		if !ok {
			continue
		}

		for i, childID := range n.ChildNodeList {
			child, ok := m.Node(childID)
			if !ok {
				errors = append(errors, fmt.Sprintf("node '%s' lists missing child '%s'", currentID, childID))
				continue
			}
			if child.ParentUUID != currentID {
				errors = append(errors, fmt.Sprintf("child '%s' of '%s' points to parent '%s'", childID, currentID, child.ParentUUID))
			}
			if child.SortNumber != 0 && child.SortNumber != i+1 {
				errors = append(errors, fmt.Sprintf("node '%s' has sortNumber %d at position %d", childID, child.SortNumber, i+1))
			}
			queue = append(queue, childID)
		}
	}

	for _, id := range m.UUIDs() {
		n := m.Nodes[id]
		if n == nil {
			continue
		}
		if !visited[id] {
			errors = append(errors, fmt.Sprintf("node '%s' is unreachable from root", id))
		}
		if id == root.UUID {
			continue
		}
		parent, ok := m.Node(n.ParentUUID)
		if !ok {
			errors = append(errors, fmt.Sprintf("node '%s' references missing parent '%s'", id, n.ParentUUID))
			continue
		}
		if !slices.Contains(parent.ChildNodeList, id) {
			errors = append(errors, fmt.Sprintf("parent '%s' does not list child '%s'", parent.UUID, id))
		}
	}

	if len(errors) > 0 {
		slices.Sort(errors)
		errors = slices.Compact(errors)
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}
