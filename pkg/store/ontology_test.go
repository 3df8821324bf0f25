package store

import (
	"testing"

	"github.com/sroiqd/reasoner/pkg/term"
)

func mustClass(t *testing.T, o *Ontology, iri string) term.ClassHandle {
	t.Helper()
	h, err := o.DeclareClass(iri)
	if err != nil {
		t.Fatalf("DeclareClass(%s) failed: %v", iri, err)
	}
	return h
}

func TestAddAxiomIsIdempotent(t *testing.T) {
	o := New()
	student := mustClass(t, o, "http://example.org/Student")
	person := mustClass(t, o, "http://example.org/Person")

	axiom := &SubClassOfAxiom{Sub: term.NamedClass(student), Super: term.NamedClass(person)}
	if err := o.AddAxiom(axiom); err != nil {
		t.Fatalf("AddAxiom failed: %v", err)
	}
	v1 := o.Version()
	if err := o.AddAxiom(&SubClassOfAxiom{Sub: term.NamedClass(student), Super: term.NamedClass(person)}); err != nil {
		t.Fatalf("second AddAxiom failed: %v", err)
	}
	v2 := o.Version()
	if v1 != v2 {
		t.Fatalf("expected idempotent insertion to leave version unchanged, got %d -> %d", v1, v2)
	}
	if len(o.Axioms()) != 1 {
		t.Fatalf("expected exactly one stored axiom, got %d", len(o.Axioms()))
	}
}

func TestNoPhantomAxioms(t *testing.T) {
	o := New()
	a := mustClass(t, o, "http://example.org/A")
	b := mustClass(t, o, "http://example.org/B")
	inserted := &SubClassOfAxiom{Sub: term.NamedClass(a), Super: term.NamedClass(b)}
	if err := o.AddAxiom(inserted); err != nil {
		t.Fatalf("AddAxiom failed: %v", err)
	}
	for _, got := range o.Axioms() {
		if got.Key() != inserted.Key() {
			t.Fatalf("found an axiom never inserted: %s", got.Key())
		}
	}
}

func TestVersionBumpsOnWrite(t *testing.T) {
	o := New()
	v0 := o.Version()
	a := mustClass(t, o, "http://example.org/A")
	b := mustClass(t, o, "http://example.org/B")
	if err := o.AddAxiom(&SubClassOfAxiom{Sub: term.NamedClass(a), Super: term.NamedClass(b)}); err != nil {
		t.Fatalf("AddAxiom failed: %v", err)
	}
	if o.Version() <= v0 {
		t.Fatalf("expected version to increase after a write")
	}
}

func TestNegativeCardinalityRejected(t *testing.T) {
	o := New()
	c := mustClass(t, o, "http://example.org/C")
	prop, err := o.DeclareObjectProperty("http://example.org/hasPart")
	if err != nil {
		t.Fatalf("DeclareObjectProperty failed: %v", err)
	}
	bad := term.ObjectMinCardinality(-1, term.Object(prop), nil)
	err = o.AddAxiom(&SubClassOfAxiom{Sub: term.NamedClass(c), Super: bad})
	if err == nil {
		t.Fatalf("expected InvalidAxiom for negative cardinality")
	}
	var invalid *InvalidAxiom
	if _, ok := err.(*InvalidAxiom); !ok {
		t.Fatalf("expected *InvalidAxiom, got %T (%v)", err, err)
	}
	_ = invalid
}

func TestEntityKindConflict(t *testing.T) {
	o := New()
	if _, err := o.DeclareClass("http://example.org/X"); err != nil {
		t.Fatalf("DeclareClass failed: %v", err)
	}
	_, err := o.DeclareObjectProperty("http://example.org/X")
	if err == nil {
		t.Fatalf("expected EntityKindConflict when redeclaring a class IRI as a property")
	}
	if _, ok := err.(*EntityKindConflict); !ok {
		t.Fatalf("expected *EntityKindConflict, got %T", err)
	}
}

func TestSubclassAxiomsOfIndex(t *testing.T) {
	o := New()
	student := mustClass(t, o, "http://example.org/Student")
	person := mustClass(t, o, "http://example.org/Person")
	agent := mustClass(t, o, "http://example.org/Agent")

	if err := o.AddAxiom(&SubClassOfAxiom{Sub: term.NamedClass(student), Super: term.NamedClass(person)}); err != nil {
		t.Fatalf("AddAxiom failed: %v", err)
	}
	if err := o.AddAxiom(&SubClassOfAxiom{Sub: term.NamedClass(person), Super: term.NamedClass(agent)}); err != nil {
		t.Fatalf("AddAxiom failed: %v", err)
	}

	got := o.SubClassAxiomsOf(student)
	if len(got) != 1 || got[0].Super.Class != person {
		t.Fatalf("expected exactly one SubClassOf(Student, Person), got %v", got)
	}
}

func TestMergeIsIdempotentOnSelf(t *testing.T) {
	o := New()
	a := mustClass(t, o, "http://example.org/A")
	b := mustClass(t, o, "http://example.org/B")
	if err := o.AddAxiom(&SubClassOfAxiom{Sub: term.NamedClass(a), Super: term.NamedClass(b)}); err != nil {
		t.Fatalf("AddAxiom failed: %v", err)
	}
	before := len(o.Axioms())
	if err := o.Merge(o); err != nil {
		t.Fatalf("self-merge failed: %v", err)
	}
	if len(o.Axioms()) != before {
		t.Fatalf("expected merge(O, O) to leave axiom count unchanged, got %d -> %d", before, len(o.Axioms()))
	}
}

func TestHasKeyWithEmptyPropertiesIsNoop(t *testing.T) {
	o := New()
	c := mustClass(t, o, "http://example.org/C")
	err := o.AddAxiom(&HasKeyAxiom{Class: term.NamedClass(c)})
	if err != nil {
		t.Fatalf("expected empty HasKey to be accepted as a no-op, got %v", err)
	}
}
