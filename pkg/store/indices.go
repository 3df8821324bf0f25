package store

import "github.com/sroiqd/reasoner/pkg/term"

// indices holds every derived structure the ontology needs fast lookups
// over, maintained incrementally: each inserted axiom updates them in
// place. The store has no retraction, so they are never rebuilt.
type indices struct {
	subOf   map[term.ClassHandle][]*SubClassOfAxiom
	superOf map[term.ClassHandle][]*SubClassOfAxiom

	equiv    map[term.ClassHandle]map[term.ClassHandle]bool
	disjoint map[term.ClassHandle]map[term.ClassHandle]bool

	propCharacteristics map[term.ObjectPropertyHandle]Characteristic
	propDomain          map[term.IRIHandle][]*term.ClassExpr
	propRange           map[term.IRIHandle][]*term.ClassExpr
	propChain           map[term.ObjectPropertyHandle][][]term.PropertyExpr
	propHierarchy       map[term.ObjectPropertyHandle]map[term.ObjectPropertyHandle]bool
	propInverse         map[term.ObjectPropertyHandle]term.ObjectPropertyHandle

	assertionsBySubject map[string][]Axiom
}

func newIndices() *indices {
	return &indices{
		subOf:               make(map[term.ClassHandle][]*SubClassOfAxiom),
		superOf:             make(map[term.ClassHandle][]*SubClassOfAxiom),
		equiv:               make(map[term.ClassHandle]map[term.ClassHandle]bool),
		disjoint:            make(map[term.ClassHandle]map[term.ClassHandle]bool),
		propCharacteristics: make(map[term.ObjectPropertyHandle]Characteristic),
		propDomain:          make(map[term.IRIHandle][]*term.ClassExpr),
		propRange:           make(map[term.IRIHandle][]*term.ClassExpr),
		propChain:           make(map[term.ObjectPropertyHandle][][]term.PropertyExpr),
		propHierarchy:       make(map[term.ObjectPropertyHandle]map[term.ObjectPropertyHandle]bool),
		propInverse:         make(map[term.ObjectPropertyHandle]term.ObjectPropertyHandle),
		assertionsBySubject: make(map[string][]Axiom),
	}
}

func (ix *indices) index(a Axiom) {
	switch v := a.(type) {
	case *SubClassOfAxiom:
		if v.Sub.Kind == term.ExprClass {
			ix.subOf[v.Sub.Class] = append(ix.subOf[v.Sub.Class], v)
		}
		if v.Super.Kind == term.ExprClass {
			ix.superOf[v.Super.Class] = append(ix.superOf[v.Super.Class], v)
		}
	case *EquivalentClassesAxiom:
		for _, c := range v.Classes {
			if c.Kind != term.ExprClass {
				continue
			}
			for _, d := range v.Classes {
				if d.Kind != term.ExprClass || d.Class == c.Class {
					continue
				}
				ix.addEquiv(c.Class, d.Class)
			}
		}
	case *DisjointClassesAxiom:
		for _, c := range v.Classes {
			if c.Kind != term.ExprClass {
				continue
			}
			for _, d := range v.Classes {
				if d.Kind != term.ExprClass || d.Class == c.Class {
					continue
				}
				ix.addDisjoint(c.Class, d.Class)
			}
		}
	case *ObjectPropertyCharacteristicAxiom:
		ix.propCharacteristics[v.Property.Named] |= v.Which
	case *ObjectPropertyDomainAxiom:
		ix.propDomain[v.Property.Named] = append(ix.propDomain[v.Property.Named], v.Domain)
	case *ObjectPropertyRangeAxiom:
		ix.propRange[v.Property.Named] = append(ix.propRange[v.Property.Named], v.Range)
	case *DataPropertyDomainAxiom:
		ix.propDomain[v.Property] = append(ix.propDomain[v.Property], v.Domain)
	case *SubObjectPropertyOfAxiom:
		if len(v.Chain) > 0 {
			ix.propChain[v.Super.Named] = append(ix.propChain[v.Super.Named], v.Chain)
		} else {
			ix.addPropHierarchy(v.Sub.Named, v.Super.Named)
		}
	case *InverseObjectPropertiesAxiom:
		ix.propInverse[v.P.Named] = v.Q.Named
		ix.propInverse[v.Q.Named] = v.P.Named
	case *ClassAssertionAxiom:
		k := individualKeyStr(v.Individual)
		ix.assertionsBySubject[k] = append(ix.assertionsBySubject[k], v)
	case *ObjectPropertyAssertionAxiom:
		k := individualKeyStr(v.Subject)
		ix.assertionsBySubject[k] = append(ix.assertionsBySubject[k], v)
	case *NegativeObjectPropertyAssertionAxiom:
		k := individualKeyStr(v.Subject)
		ix.assertionsBySubject[k] = append(ix.assertionsBySubject[k], v)
	case *DataPropertyAssertionAxiom:
		k := individualKeyStr(v.Subject)
		ix.assertionsBySubject[k] = append(ix.assertionsBySubject[k], v)
	case *NegativeDataPropertyAssertionAxiom:
		k := individualKeyStr(v.Subject)
		ix.assertionsBySubject[k] = append(ix.assertionsBySubject[k], v)
	}
}

func (ix *indices) addEquiv(a, b term.ClassHandle) {
	if ix.equiv[a] == nil {
		ix.equiv[a] = make(map[term.ClassHandle]bool)
	}
	ix.equiv[a][b] = true
}

func (ix *indices) addDisjoint(a, b term.ClassHandle) {
	if ix.disjoint[a] == nil {
		ix.disjoint[a] = make(map[term.ClassHandle]bool)
	}
	ix.disjoint[a][b] = true
}

func (ix *indices) addPropHierarchy(sub, super term.ObjectPropertyHandle) {
	if ix.propHierarchy[sub] == nil {
		ix.propHierarchy[sub] = make(map[term.ObjectPropertyHandle]bool)
	}
	ix.propHierarchy[sub][super] = true
}

// HasCharacteristic reports whether property p has characteristic c.
// Reasoning transitively through declared equivalences/sub-property chains
// is NOT performed here (that belongs to the prover); this is the raw O(1)
// bitset test.
func (ix *indices) HasCharacteristic(p term.ObjectPropertyHandle, c Characteristic) bool {
	return ix.propCharacteristics[p].Has(c)
}
