package reasoner

import (
	"context"
	"testing"
	"time"

	"github.com/sroiqd/reasoner/pkg/cache"
	"github.com/sroiqd/reasoner/pkg/store"
	"github.com/sroiqd/reasoner/pkg/tableau"
	"github.com/sroiqd/reasoner/pkg/term"
)

func testProverConfig() tableau.Config {
	return tableau.Config{MaxNodes: 1000, QueryTimeout: 5 * time.Second, BlockingStrategy: tableau.BlockEquality}
}

func TestIsConsistentOnEmptyOntology(t *testing.T) {
	ont := store.New()
	r, err := New(ont, testProverConfig(), 16, 64, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := r.IsConsistent(context.Background())
	if err != nil {
		t.Fatalf("IsConsistent: %v", err)
	}
	if !ok {
		t.Fatal("expected an empty ontology to be consistent")
	}
}

func TestIsSubclassOfViaAssertedHierarchy(t *testing.T) {
	ont := store.New()
	animal, _ := ont.DeclareClass("urn:test#Animal")
	dog, _ := ont.DeclareClass("urn:test#Dog")
	if err := ont.AddAxiom(store.SubClassOfAxiom{Sub: term.NamedClass(dog), Super: term.NamedClass(animal)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	r, err := New(ont, testProverConfig(), 16, 64, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := r.IsSubclassOf(context.Background(), term.NamedClass(dog), term.NamedClass(animal))
	if err != nil {
		t.Fatalf("IsSubclassOf: %v", err)
	}
	if !ok {
		t.Fatal("expected Dog to be a subclass of Animal")
	}
	ok, err = r.IsSubclassOf(context.Background(), term.NamedClass(animal), term.NamedClass(dog))
	if err != nil {
		t.Fatalf("IsSubclassOf: %v", err)
	}
	if ok {
		t.Fatal("Animal should not be a subclass of Dog")
	}
}

func TestAreEquivalentClasses(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	b, _ := ont.DeclareClass("urn:test#B")
	if err := ont.AddAxiom(store.SubClassOfAxiom{Sub: term.NamedClass(a), Super: term.NamedClass(b)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if err := ont.AddAxiom(store.SubClassOfAxiom{Sub: term.NamedClass(b), Super: term.NamedClass(a)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	r, err := New(ont, testProverConfig(), 16, 64, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := r.AreEquivalentClasses(context.Background(), term.NamedClass(a), term.NamedClass(b))
	if err != nil {
		t.Fatalf("AreEquivalentClasses: %v", err)
	}
	if !ok {
		t.Fatal("expected A and B to be equivalent given mutual SubClassOf axioms")
	}
}

func TestIsInstanceOfAssertedClass(t *testing.T) {
	ont := store.New()
	person, _ := ont.DeclareClass("urn:test#Person")
	alice, _ := ont.DeclareIndividual("urn:test#Alice")
	if err := ont.AddAxiom(store.ClassAssertionAxiom{Individual: term.NamedIndividual(alice), Class: term.NamedClass(person)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	r, err := New(ont, testProverConfig(), 16, 64, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := r.IsInstanceOf(context.Background(), term.NamedIndividual(alice), term.NamedClass(person))
	if err != nil {
		t.Fatalf("IsInstanceOf: %v", err)
	}
	if !ok {
		t.Fatal("expected Alice to be an instance of Person")
	}
}

func TestInstancesOfReturnsAssertedMembers(t *testing.T) {
	ont := store.New()
	person, _ := ont.DeclareClass("urn:test#Person")
	alice, _ := ont.DeclareIndividual("urn:test#Alice")
	bob, _ := ont.DeclareIndividual("urn:test#Bob")
	if err := ont.AddAxiom(store.ClassAssertionAxiom{Individual: term.NamedIndividual(alice), Class: term.NamedClass(person)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	_ = bob
	r, err := New(ont, testProverConfig(), 16, 64, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	instances, err := r.InstancesOf(context.Background(), term.NamedClass(person))
	if err != nil {
		t.Fatalf("InstancesOf: %v", err)
	}
	if len(instances) != 1 || instances[0].Named != alice {
		t.Fatalf("expected exactly [Alice], got %v", instances)
	}
}

func TestClassifyBuildsDirectParents(t *testing.T) {
	ont := store.New()
	animal, _ := ont.DeclareClass("urn:test#Animal")
	mammal, _ := ont.DeclareClass("urn:test#Mammal")
	dog, _ := ont.DeclareClass("urn:test#Dog")
	if err := ont.AddAxiom(store.SubClassOfAxiom{Sub: term.NamedClass(mammal), Super: term.NamedClass(animal)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	if err := ont.AddAxiom(store.SubClassOfAxiom{Sub: term.NamedClass(dog), Super: term.NamedClass(mammal)}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	r, err := New(ont, testProverConfig(), 16, 64, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h, err := r.Classify(context.Background())
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	parents := map[term.ClassHandle][]term.ClassHandle{}
	for _, n := range h.Nodes {
		parents[n.Class] = n.Parents
	}
	if len(parents[dog]) != 1 || parents[dog][0] != mammal {
		t.Fatalf("expected Dog's only direct parent to be Mammal, got %v", parents[dog])
	}
}

func TestCacheHitAvoidsSecondProverRun(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	r, err := New(ont, testProverConfig(), 16, 64, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, err := r.IsClassSatisfiable(context.Background(), term.NamedClass(a))
	if err != nil {
		t.Fatalf("IsClassSatisfiable: %v", err)
	}
	stats := r.Cache().Stats()[cache.Satisfiability]
	second, err := r.IsClassSatisfiable(context.Background(), term.NamedClass(a))
	if err != nil {
		t.Fatalf("IsClassSatisfiable: %v", err)
	}
	if first != second {
		t.Fatal("expected a stable result across calls")
	}
	statsAfter := r.Cache().Stats()[cache.Satisfiability]
	if statsAfter.Hits <= stats.Hits {
		t.Fatalf("expected the second call to register a cache hit: before=%+v after=%+v", stats, statsAfter)
	}
}
