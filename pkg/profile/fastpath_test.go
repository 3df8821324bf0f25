package profile

import (
	"testing"

	"github.com/sroiqd/reasoner/pkg/store"
	"github.com/sroiqd/reasoner/pkg/term"
)

func TestELSatisfiableDetectsDisjointCollision(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	b, _ := ont.DeclareClass("urn:test#B")
	c, _ := ont.DeclareClass("urn:test#C")
	if err := ont.AddAxiom(store.SubClassOfAxiom{Sub: term.NamedClass(c), Super: term.NamedClass(a)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if err := ont.AddAxiom(store.SubClassOfAxiom{Sub: term.NamedClass(c), Super: term.NamedClass(b)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if err := ont.AddAxiom(store.DisjointClassesAxiom{Classes: []*term.ClassExpr{term.NamedClass(a), term.NamedClass(b)}}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if ELSatisfiable(ont, c) {
		t.Fatal("expected C to be unsatisfiable: it is a subclass of two disjoint classes")
	}
}

func TestELSatisfiableOrdinaryClass(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	if !ELSatisfiable(ont, a) {
		t.Fatal("expected an unconstrained class to be satisfiable")
	}
}

func TestRLConsistentDetectsDisjointCollision(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	b, _ := ont.DeclareClass("urn:test#B")
	alice, _ := ont.DeclareIndividual("urn:test#Alice")
	if err := ont.AddAxiom(store.DisjointClassesAxiom{Classes: []*term.ClassExpr{term.NamedClass(a), term.NamedClass(b)}}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if err := ont.AddAxiom(store.ClassAssertionAxiom{Individual: term.NamedIndividual(alice), Class: term.NamedClass(a)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if err := ont.AddAxiom(store.ClassAssertionAxiom{Individual: term.NamedIndividual(alice), Class: term.NamedClass(b)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if RLConsistent(ont) {
		t.Fatal("expected Alice asserted both A and B, with A/B disjoint, to be inconsistent")
	}
}

func TestRLConsistentPropagatesThroughSubClassOf(t *testing.T) {
	ont := store.New()
	animal, _ := ont.DeclareClass("urn:test#Animal")
	dog, _ := ont.DeclareClass("urn:test#Dog")
	rex, _ := ont.DeclareIndividual("urn:test#Rex")
	if err := ont.AddAxiom(store.SubClassOfAxiom{Sub: term.NamedClass(dog), Super: term.NamedClass(animal)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if err := ont.AddAxiom(store.ClassAssertionAxiom{Individual: term.NamedIndividual(rex), Class: term.NamedClass(dog)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if !RLConsistent(ont) {
		t.Fatal("expected a plain SubClassOf-derived ABox to remain consistent")
	}
}
