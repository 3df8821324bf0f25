package store

import "fmt"

// InvalidAxiom is returned when add_axiom receives a structurally malformed
// axiom: negative cardinality, an undeclared datatype used in
// a facet restriction the store can statically detect, etc. No partial
// update is ever applied when this is returned.
type InvalidAxiom struct {
	Reason string
}

func (e *InvalidAxiom) Error() string { return fmt.Sprintf("invalid axiom: %s", e.Reason) }

// EntityKindConflict is returned by merge (or add_axiom, when an axiom
// implicitly declares an entity) when the same IRI is already in use as a
// different entity kind.
type EntityKindConflict struct {
	IRI      string
	Existing EntityKind
	Wanted   EntityKind
}

func (e *EntityKindConflict) Error() string {
	return fmt.Sprintf("entity kind conflict for %s: already declared as %s, used as %s", e.IRI, e.Existing, e.Wanted)
}
