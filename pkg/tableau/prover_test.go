package tableau

import (
	"context"
	"testing"
	"time"

	"github.com/sroiqd/reasoner/pkg/store"
	"github.com/sroiqd/reasoner/pkg/term"
)

func testConfig() Config {
	return Config{MaxNodes: 1000, QueryTimeout: 5 * time.Second, BlockingStrategy: BlockEquality}
}

func TestSatisfiableAtomicClass(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	pr := New(testConfig())
	ok, err := pr.Satisfiable(context.Background(), ont, term.NamedClass(a))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected an unconstrained named class to be satisfiable")
	}
}

func TestUnsatisfiableAtomicAndComplement(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	pr := New(testConfig())
	expr := term.ObjectIntersectionOf(term.NamedClass(a), term.ObjectComplementOf(term.NamedClass(a)))
	ok, err := pr.Satisfiable(context.Background(), ont, expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("C ⊓ ¬C must be unsatisfiable")
	}
}

func TestDisjointClassesUnsatisfiable(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	b, _ := ont.DeclareClass("urn:test#B")
	if err := ont.AddAxiom(store.DisjointClassesAxiom{Classes: []*term.ClassExpr{term.NamedClass(a), term.NamedClass(b)}}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	pr := New(testConfig())
	expr := term.ObjectIntersectionOf(term.NamedClass(a), term.NamedClass(b))
	ok, err := pr.Satisfiable(context.Background(), ont, expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("members of two disjoint classes must be unsatisfiable")

	}
}

func TestExistsAllValuesFromClash(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	notA := term.ObjectComplementOf(term.NamedClass(a))
	r, _ := ont.DeclareObjectProperty("urn:test#r")
	pr := New(testConfig())
	// ∃r.A ⊓ ∀r.¬A forces a witness that is both A and ¬A.
	expr := term.ObjectIntersectionOf(
		term.ObjectSomeValuesFrom(term.Object(r), term.NamedClass(a)),
		term.ObjectAllValuesFrom(term.Object(r), notA),
	)
	ok, err := pr.Satisfiable(context.Background(), ont, expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("∃r.A ⊓ ∀r.¬A must be unsatisfiable")
	}
}

func TestMinCardinalityProducesDistinctSuccessors(t *testing.T) {
	ont := store.New()
	r, _ := ont.DeclareObjectProperty("urn:test#r")
	pr := New(testConfig())
	expr := term.ObjectMinCardinality(2, term.Object(r), nil)
	ok, err := pr.Satisfiable(context.Background(), ont, expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("≥2 r.⊤ should be satisfiable by generating two distinct successors")
	}
}

func TestResourceExhaustedOnTightNodeLimit(t *testing.T) {
	ont := store.New()
	r, _ := ont.DeclareObjectProperty("urn:test#r")
	cfg := testConfig()
	cfg.MaxNodes = 1
	pr := New(cfg)
	expr := term.ObjectMinCardinality(5, term.Object(r), nil)
	_, err := pr.Satisfiable(context.Background(), ont, expr)
	if err == nil {
		t.Fatal("expected a ResourceExhausted error under a 1-node budget")
	}
	if _, ok := err.(*ResourceExhausted); !ok {
		t.Fatalf("expected *ResourceExhausted, got %T: %v", err, err)
	}
}

func TestTimeoutOnExpiredContext(t *testing.T) {
	ont := store.New()
	r, _ := ont.DeclareObjectProperty("urn:test#r")
	pr := New(testConfig())
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	expr := term.ObjectSomeValuesFrom(term.Object(r), term.Top)
	_, err := pr.Satisfiable(ctx, ont, expr)
	if _, ok := err.(*Timeout); !ok {
		t.Fatalf("expected *Timeout on an already-expired context, got %T: %v", err, err)
	}
}

func TestUnionBranchesToSatisfiableAlternative(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	b, _ := ont.DeclareClass("urn:test#B")
	if err := ont.AddAxiom(store.DisjointClassesAxiom{Classes: []*term.ClassExpr{term.NamedClass(a), term.NamedClass(b)}}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	pr := New(testConfig())
	// A ⊓ (A ⊔ B) is satisfiable by choosing the A disjunct, even though the
	// B disjunct alone would clash with A via disjointness.
	expr := term.ObjectIntersectionOf(term.NamedClass(a), term.ObjectUnionOf(term.NamedClass(a), term.NamedClass(b)))
	ok, err := pr.Satisfiable(context.Background(), ont, expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected the prover to find the satisfiable disjunct")
	}
}

func TestTransitivePropertyPropagatesAllValuesFrom(t *testing.T) {
	ont := store.New()
	a, _ := ont.DeclareClass("urn:test#A")
	r, _ := ont.DeclareObjectProperty("urn:test#r")
	if err := ont.AddAxiom(store.ObjectPropertyCharacteristicAxiom{Property: term.Object(r), Which: store.CharTransitive}); err != nil {
		t.Fatalf("AddAxiom: %v", err)
	}
	pr := New(testConfig())
	// ∀r.A ⊓ ∃r.∃r.¬A: with r transitive, ∀r.A must propagate across both
	// hops, clashing with the ¬A two hops out.
	notA := term.ObjectComplementOf(term.NamedClass(a))
	expr := term.ObjectIntersectionOf(
		term.ObjectAllValuesFrom(term.Object(r), term.NamedClass(a)),
		term.ObjectSomeValuesFrom(term.Object(r), term.ObjectSomeValuesFrom(term.Object(r), notA)),
	)
	ok, err := pr.Satisfiable(context.Background(), ont, expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("transitive ∀r.A should propagate two hops and clash with ¬A")
	}
}
