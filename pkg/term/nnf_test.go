package term

import "testing"

func TestNegateDoubleNegation(t *testing.T) {
	a := NamedClass(10)
	got := Negate(Negate(a))
	if got.Key() != a.Key() {
		t.Fatalf("expected ¬¬A = A, got %s", got.Key())
	}
}

func TestNegateIntersection(t *testing.T) {
	a, b := NamedClass(1), NamedClass(2)
	got := Negate(ObjectIntersectionOf(a, b))
	if got.Kind != ExprUnion {
		t.Fatalf("expected union at top level, got kind %v", got.Kind)
	}
}

func TestNegateSomeValuesFrom(t *testing.T) {
	r := Object(5)
	c := NamedClass(1)
	got := Negate(ObjectSomeValuesFrom(r, c))
	if got.Kind != ExprObjectAllValuesFrom {
		t.Fatalf("expected ∀ after negating ∃, got %v", got.Kind)
	}
	if got.Filler.Kind != ExprComplement {
		t.Fatalf("expected negated filler, got %v", got.Filler.Kind)
	}
}

func TestNegateCardinality(t *testing.T) {
	r := Object(5)
	got := Negate(ObjectMinCardinality(3, r, nil))
	if got.Kind != ExprObjectMaxCardinality || got.Cardinality != 2 {
		t.Fatalf("expected ≤2, got kind=%v n=%d", got.Kind, got.Cardinality)
	}

	gotZero := Negate(ObjectMinCardinality(0, r, nil))
	if gotZero != Bottom {
		t.Fatalf("expected ¬(≥0 R) = ⊥, got %v", gotZero.Kind)
	}
}

func TestPoolInterningSharesPointers(t *testing.T) {
	pool := NewPool()
	a1 := pool.Intern(ObjectIntersectionOf(NamedClass(1), NamedClass(2)))
	a2 := pool.Intern(ObjectIntersectionOf(NamedClass(2), NamedClass(1)))
	if a1 != a2 {
		t.Fatalf("expected commutative intersection to intern to the same pointer")
	}
}

func TestLiteralEqualityAcrossLexicalForms(t *testing.T) {
	l1 := NewLiteral("01", XSDInteger)
	l2 := NewLiteral("1", XSDInteger)
	if !l1.Equal(l2) {
		t.Fatalf("expected \"01\"^^xsd:integer to equal \"1\"^^xsd:integer")
	}
}
