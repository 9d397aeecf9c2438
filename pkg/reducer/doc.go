/*
Package reducer implements the pure state transition function of the mind map.

Reduce and Apply never mutate their input. Every transition returns either a
new snapshot (sharing untouched nodes by pointer) or, when the action would
not change anything observable, the very same *domain.MindMap it was given.
Callers can therefore detect no-ops with a pointer comparison.

Apply additionally reports why a transition was refused: a missing reference,
a constraint violation such as moving a STEP before a PRECONDITION, or an
invalid enumeration value. None of these are fatal; the state is simply left
unchanged.
*/
package reducer
