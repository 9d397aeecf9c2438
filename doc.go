/*
Package arbor is an embeddable state engine for tree-structured test-design documents (mind maps).

It keeps a flat, normalized tree (pkg/domain) and mutates it only through a pure reducer (pkg/reducer). Undo and redo come from a history wrapper (pkg/history), and a deterministic auto-layout pass (pkg/layout) assigns positions. The Editor in this package sequences those pieces and reports every change to the host.

# Concept

The host owns rendering and measurement. It feeds node sizes back into the Editor as they become known. Arbor decides when to re-lay out, what enters history, and which change notification to emit. Snapshots are immutable: a host may keep any MindMap it received without it changing underneath.

# Key Features

  - Referential no-op: a command that changes nothing leaves the document pointer untouched.
  - Atomic edit sessions: interim sizes during text editing never become undo steps.
  - Typed outcomes: rejected commands return a reason instead of logging and moving on.
  - Structural guards: steps can never be dragged above a precondition.

# Usage

	package main

	import (
		"log"

		"github.com/aretw0/arbor"
		"github.com/aretw0/arbor/pkg/domain"
	)

	func main() {
		doc := loadDocument() // *domain.MindMap

		ed, err := arbor.New(doc,
			arbor.WithReadOnly(false),
			arbor.WithHooks(domain.Hooks{
				OnChange: func(c *domain.ChangeInfo) {
					log.Println(c.OperationType, c.Description)
				},
			}),
		)
		if err != nil {
			log.Fatal(err)
		}

		// The rendering host reports sizes; the first full measurement triggers layout.
		for _, id := range doc.UUIDs() {
			ed.UpdateNodeSize(id, 120, 40, false)
		}

		if out := ed.ReorderNode("s3", "s1", domain.Before); !out.Applied {
			log.Println("rejected:", out.Reason)
		}

		ed.Undo()
	}
*/
package arbor
