package domain

import (
	"reflect"
	"slices"
)

// MindMapDiff lists the node uuids that differ between two snapshots.
// It is used to report affected nodes and to build partial updates for clients.
type MindMapDiff struct {
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
	Changed []string `json:"changed,omitempty"`

	// RootChanged is set when the document root was swapped.
	RootChanged bool `json:"rootChanged,omitempty"`
}

// Diff compares oldMap and newMap. A nil oldMap yields every node of newMap as added.
// Identical snapshots (same pointer) short-circuit to an empty diff.
func Diff(oldMap, newMap *MindMap) *MindMapDiff {
	d := &MindMapDiff{}
	if oldMap == newMap {
		return d
	}
	if oldMap == nil {
		oldMap = NewMindMap()
	}
	if newMap == nil {
		newMap = NewMindMap()
	}
	d.RootChanged = oldMap.RootUUID != newMap.RootUUID

	for id, n := range newMap.Nodes {
		o, ok := oldMap.Nodes[id]
		switch {
		case !ok:
			d.Added = append(d.Added, id)
		case o != n && !reflect.DeepEqual(o, n):
			// Unchanged nodes are shared by pointer between snapshots,
			// so DeepEqual only runs for cloned entries.
			d.Changed = append(d.Changed, id)
		}
	}
	for id := range oldMap.Nodes {
		if _, ok := newMap.Nodes[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}

	slices.Sort(d.Added)
	slices.Sort(d.Removed)
	slices.Sort(d.Changed)
	return d
}

// CollapseChanges returns the uuids whose IsCollapsed flag differs between snapshots.
func CollapseChanges(oldMap, newMap *MindMap) []string {
	var ids []string
	for id, n := range newMap.Nodes {
		if o, ok := oldMap.Nodes[id]; ok && o.IsCollapsed != n.IsCollapsed {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// IsEmpty checks if the diff contains any change.
func (d *MindMapDiff) IsEmpty() bool {
	return !d.RootChanged && len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Affected returns every uuid touched by the diff.
func (d *MindMapDiff) Affected() []string {
	out := slices.Concat(d.Added, d.Changed, d.Removed)
	slices.Sort(out)
	return out
}
