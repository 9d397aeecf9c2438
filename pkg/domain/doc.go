/*
Package domain contains the core data model of the Arbor mind map engine.

It defines the normalized tree representation, the actions that mutate it and
the change notifications produced for hosts. The package is kept pure and free
of I/O so that the reducer, history and layout packages can treat every
MindMap as an immutable value snapshot.

# Key Entities

  - MindMap: a flat arena of nodes indexed by uuid, plus the root uuid.
  - Node: a single tree entity; relationships are expressed by id only.
  - Action: a typed request to transition a MindMap into a new snapshot.
  - ChangeInfo: the notification delivered to hosts after every mutation.
  - Outcome: the typed result of a command (applied or rejected with a reason).
*/
package domain
