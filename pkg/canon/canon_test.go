package canon

import (
	"context"
	"testing"
)

func iri(v string) Term      { return Term{Kind: IRI, Value: v} }
func blank(v string) Term    { return Term{Kind: BlankNode, Value: v} }
func lit(v string) Term      { return Term{Kind: Literal, Value: v} }

func TestScenarioEBlankNodeEquivalence(t *testing.T) {
	g1 := []Triple{
		{Subject: blank("x"), Predicate: iri("p1"), Object: lit("a")},
		{Subject: blank("x"), Predicate: iri("p2"), Object: lit("b")},
	}
	g2 := []Triple{
		{Subject: blank("y"), Predicate: iri("p2"), Object: lit("b")},
		{Subject: blank("y"), Predicate: iri("p1"), Object: lit("a")},
	}

	c := New(DefaultConfig())
	r1, err := c.Hash(context.Background(), g1)
	if err != nil {
		t.Fatalf("Hash(g1) failed: %v", err)
	}
	r2, err := c.Hash(context.Background(), g2)
	if err != nil {
		t.Fatalf("Hash(g2) failed: %v", err)
	}
	if r1.Hash != r2.Hash {
		t.Fatalf("expected canon(G1) == canon(G2), got %x != %x", r1.Hash, r2.Hash)
	}
}

func TestFastPathOrderIndependence(t *testing.T) {
	base := []Triple{
		{Subject: iri("a"), Predicate: iri("knows"), Object: iri("b")},
		{Subject: iri("b"), Predicate: iri("knows"), Object: iri("c")},
		{Subject: iri("c"), Predicate: iri("knows"), Object: iri("a")},
	}
	reordered := []Triple{base[2], base[0], base[1]}

	c := New(DefaultConfig())
	r1, err := c.Hash(context.Background(), base)
	if err != nil {
		t.Fatalf("Hash(base) failed: %v", err)
	}
	r2, err := c.Hash(context.Background(), reordered)
	if err != nil {
		t.Fatalf("Hash(reordered) failed: %v", err)
	}
	if r1.Hash != r2.Hash {
		t.Fatalf("expected hash to be independent of triple order")
	}
	if r1.Stats.Class != Simple {
		t.Fatalf("expected a blank-node-free graph to classify as Simple, got %v", r1.Stats.Class)
	}
}

func TestClassifyPathological(t *testing.T) {
	var triples []Triple
	for i := 0; i < 25; i++ {
		label := string(rune('a' + i%26))
		triples = append(triples, Triple{
			Subject:   blank(label + string(rune('0'+i))),
			Predicate: iri("p"),
			Object:    lit("v"),
		})
	}
	stats := classify(triples)
	if stats.Class != Pathological {
		t.Fatalf("expected >20 blank nodes to classify as Pathological, got %v", stats.Class)
	}
}

func TestStandardPathDeterministicUnderRelabeling(t *testing.T) {
	g1 := []Triple{
		{Subject: blank("n1"), Predicate: iri("p"), Object: blank("n2")},
		{Subject: blank("n2"), Predicate: iri("p"), Object: blank("n3")},
		{Subject: blank("n3"), Predicate: iri("p"), Object: blank("n1")},
		{Subject: blank("n1"), Predicate: iri("tag"), Object: lit("1")},
		{Subject: blank("n2"), Predicate: iri("tag"), Object: lit("2")},
		{Subject: blank("n3"), Predicate: iri("tag"), Object: lit("3")},
	}
	// Same structure, blank-node labels permuted.
	g2 := []Triple{
		{Subject: blank("alpha"), Predicate: iri("p"), Object: blank("beta")},
		{Subject: blank("beta"), Predicate: iri("p"), Object: blank("gamma")},
		{Subject: blank("gamma"), Predicate: iri("p"), Object: blank("alpha")},
		{Subject: blank("alpha"), Predicate: iri("tag"), Object: lit("1")},
		{Subject: blank("beta"), Predicate: iri("tag"), Object: lit("2")},
		{Subject: blank("gamma"), Predicate: iri("tag"), Object: lit("3")},
	}

	h1, err := standardPathHash(g1, 1_000_000)
	if err != nil {
		t.Fatalf("standardPathHash(g1) failed: %v", err)
	}
	h2, err := standardPathHash(g2, 1_000_000)
	if err != nil {
		t.Fatalf("standardPathHash(g2) failed: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("expected relabeled-isomorphic graphs to produce identical standard-path hashes")
	}
}

func TestPermutationBudgetExceeded(t *testing.T) {
	// Four blank nodes with identical neighborhoods tie on first-degree
	// hash, forcing disambiguate to try every permutation of the group; a
	// budget of 1 cannot cover a group of 4.
	var triples []Triple
	names := []string{"n1", "n2", "n3", "n4"}
	for _, n := range names {
		triples = append(triples, Triple{Subject: blank(n), Predicate: iri("tag"), Object: lit("same")})
	}
	_, err := standardPathHash(triples, 1)
	if err == nil {
		t.Fatalf("expected CanonicalizationBudgetExceeded with a budget of 1")
	}
	if _, ok := err.(*CanonicalizationBudgetExceeded); !ok {
		t.Fatalf("expected *CanonicalizationBudgetExceeded, got %T", err)
	}
}
