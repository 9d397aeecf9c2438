package schema

import (
	"github.com/aretw0/arbor/pkg/domain"
)

// Validate checks a document before conversion. It reports every problem
// found, aggregated. Missing uuids are not an error: the converter mints them.
// Unknown node types are accepted and become GENERAL.
func Validate(raw *RawNode) error {
	if raw == nil {
		return &AggregateError{Errors: []error{&ValidationError{Path: "root", Key: "uuid", Reason: "document is empty"}}}
	}

	var errs []error
	seen := make(map[string]string)

	Walk(raw, func(n *RawNode, path string) {
		if n.UUID != "" {
			if first, dup := seen[n.UUID]; dup {
				errs = append(errs, &ValidationError{Path: path, Key: "uuid", Reason: "duplicate of " + first, Value: n.UUID})
			} else {
				seen[n.UUID] = path
			}
		}
		if !domain.Priority(n.PriorityLevel).Valid() {
			errs = append(errs, &ValidationError{Path: path, Key: "priorityLevel", Reason: "must be one of 0, 1, 2, 3", Value: n.PriorityLevel})
		}
		if n.SortNumber < 0 {
			errs = append(errs, &ValidationError{Path: path, Key: "sortNumber", Reason: "must not be negative", Value: n.SortNumber})
		}
		for i, c := range n.ChildNodeList {
			if c == nil {
				errs = append(errs, &ValidationError{Path: childPath(path, i), Key: "childNodeList", Reason: "null child"})
			}
		}
	})

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
