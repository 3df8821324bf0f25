package store

import "github.com/sroiqd/reasoner/pkg/term"

// Characteristic is a bit position in an ObjectProperty's characteristic
// bitset.
type Characteristic uint16

const (
	CharFunctional Characteristic = 1 << iota
	CharInverseFunctional
	CharReflexive
	CharIrreflexive
	CharSymmetric
	CharAsymmetric
	CharTransitive
)

// Has reports whether the bitset includes c.
func (bits Characteristic) Has(c Characteristic) bool { return bits&c != 0 }

// Class is a named class entity: an IRI plus flags. Anonymous class
// expressions are not entities and live only inside axioms.
type Class struct {
	IRI        term.ClassHandle
	Deprecated bool
}

// ObjectProperty is a named object property entity with its characteristic
// bitset.
type ObjectProperty struct {
	IRI             term.ObjectPropertyHandle
	Characteristics Characteristic
}

// DataProperty is a named data property entity.
type DataProperty struct {
	IRI        term.DataPropertyHandle
	Functional bool
}

// AnnotationProperty is semantically inert, carried only for round-tripping.
type AnnotationProperty struct {
	IRI term.AnnotationPropertyHandle
}

// NamedIndividual is a named individual entity.
type NamedIndividual struct {
	IRI term.IndividualHandle
}

// EntityKind distinguishes the five entity categories for conflict
// detection.
type EntityKind uint8

const (
	KindClass EntityKind = iota
	KindObjectProperty
	KindDataProperty
	KindAnnotationProperty
	KindNamedIndividual
)

func (k EntityKind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindObjectProperty:
		return "ObjectProperty"
	case KindDataProperty:
		return "DataProperty"
	case KindAnnotationProperty:
		return "AnnotationProperty"
	case KindNamedIndividual:
		return "NamedIndividual"
	default:
		return "Unknown"
	}
}
