// Package selection implements the symbol selection state machine: an edit
// session that composes a tactical symbol from cascading choices (scheme,
// affiliation, status, dimension, function, two modifiers) and translates
// between that selection and its fixed 12-character symbol code.
//
// Every field change is applied through an explicit, synchronous transition
// that re-derives the dependent option lists and clears selections the change
// invalidated. The session never blocks and holds no I/O; the catalog it
// reads is immutable.
package selection
