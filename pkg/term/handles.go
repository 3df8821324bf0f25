// Package term defines the interned term algebra the prover and store
// operate on: IRI-backed entity handles, literals, and the recursive class
// expression / property expression / data range trees of SROIQ(D).
package term

import "github.com/sroiqd/reasoner/pkg/interner"

// IRIHandle is the compact handle for any interned IRI, regardless of
// whether it names a class, property, individual, or datatype. All IRIs
// share a single interner table: a class and a property can
// never be assigned the same handle for different IRIs, but the same IRI
// used in two roles resolves to one handle.
type IRIHandle = interner.Handle

// ClassHandle identifies a named class entity.
type ClassHandle = IRIHandle

// ObjectPropertyHandle identifies a named object property entity.
type ObjectPropertyHandle = IRIHandle

// DataPropertyHandle identifies a named data property entity.
type DataPropertyHandle = IRIHandle

// AnnotationPropertyHandle identifies an annotation property entity.
type AnnotationPropertyHandle = IRIHandle

// IndividualHandle identifies a named individual entity.
type IndividualHandle = IRIHandle

// AnonymousHandle identifies an anonymous individual or blank node. It is
// scoped to the owning Ontology and is never interned alongside IRIs:
// anonymous individuals never leak out as first-class store entities.
type AnonymousHandle uint32

// Individual is either a named individual or an anonymous one. Exactly one
// of the two handles is meaningful, selected by Anonymous.
type Individual struct {
	Named      IndividualHandle
	Anon       AnonymousHandle
	Anonymous  bool
}

// NamedIndividual builds an Individual referring to a named entity.
func NamedIndividual(h IndividualHandle) Individual {
	return Individual{Named: h}
}

// AnonIndividual builds an Individual referring to an anonymous one.
func AnonIndividual(h AnonymousHandle) Individual {
	return Individual{Anon: h, Anonymous: true}
}
