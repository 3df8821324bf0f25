package profile

import (
	"testing"

	"github.com/sroiqd/reasoner/pkg/store"
	"github.com/sroiqd/reasoner/pkg/term"
)

func TestEmptyOntologyIsEL(t *testing.T) {
	ont := store.New()
	if got := Classify(ont); got != EL {
		t.Fatalf("expected an empty ontology to classify as EL, got %v", got)
	}
}

func TestUniversalRestrictionExcludesEL(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	r, _ := ont.DeclareObjectProperty("urn:test#r")
	b, _ := ont.DeclareClass("urn:test#B")
	ax := store.SubClassOfAxiom{
		Sub:   term.NamedClass(a),
		Super: term.ObjectAllValuesFrom(term.Object(r), term.NamedClass(b)),
	}
	if err := ont.AddAxiom(ax); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if got := Classify(ont); got != RL {
		t.Fatalf("expected a universal restriction (no inverses/unions) to classify as RL, got %v", got)
	}
}

func TestGeneralComplementForcesDL(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	b, _ := ont.DeclareClass("urn:test#B")
	ax := store.SubClassOfAxiom{Sub: term.NamedClass(a), Super: term.ObjectComplementOf(term.NamedClass(b))}
	if err := ont.AddAxiom(ax); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if got := Classify(ont); got != DL {
		t.Fatalf("expected general negation to force DL, got %v", got)
	}
}

func TestCheckerCachesByVersion(t *testing.T) {
	ont := store.New()
	ck := NewChecker(ont, nil)
	first := ck.Classify()
	if first != EL {
		t.Fatalf("expected EL on an empty ontology, got %v", first)
	}
	a, _ := ont.DeclareClass("urn:test#A")
	b, _ := ont.DeclareClass("urn:test#B")
	if err := ont.AddAxiom(store.SubClassOfAxiom{Sub: term.NamedClass(a), Super: term.ObjectComplementOf(term.NamedClass(b))}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	second := ck.Classify()
	if second != DL {
		t.Fatalf("expected the cache to recompute after a version bump, got %v", second)
	}
}

func TestHeuristicGuesserDoesNotCrashChecker(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	_ = a
	ck := NewChecker(ont, NewHeuristicGuesser())
	if got := ck.Classify(); got != EL {
		t.Fatalf("expected the authoritative structural result regardless of the heuristic guess, got %v", got)
	}
}
