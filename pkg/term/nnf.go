package term

// NNF pushes negation to the leaves of a class expression, per the standard
// negation-normal-form rewrite rules:
//
//	¬(C ⊓ D)   ⇒ ¬C ⊔ ¬D
//	¬(C ⊔ D)   ⇒ ¬C ⊓ ¬D
//	¬¬C        ⇒ C
//	¬∃R.C      ⇒ ∀R.¬C
//	¬∀R.C      ⇒ ∃R.¬C
//	¬≥n R.C    ⇒ ≤(n-1) R.C   (⊥ when n = 0)
//	¬≤n R.C    ⇒ ≥(n+1) R.C
//	¬∃R.Self   ⇒ ∀R.¬Self, modelled as a synthetic "not-self" marker
//	¬{a}       ⇒ stays ObjectComplementOf(OneOf) — nominals do not push further
//
// The result is built fresh; it does not mutate e.
func NNF(e *ClassExpr) *ClassExpr {
	return nnf(e, false)
}

// Negate returns the NNF of ¬e.
func Negate(e *ClassExpr) *ClassExpr {
	return nnf(e, true)
}

func nnf(e *ClassExpr, negated bool) *ClassExpr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ExprTop:
		if negated {
			return Bottom
		}
		return Top
	case ExprBottom:
		if negated {
			return Top
		}
		return Bottom
	case ExprClass:
		if negated {
			return ObjectComplementOf(NamedClass(e.Class))
		}
		return NamedClass(e.Class)
	case ExprComplement:
		// ¬¬C ⇒ C (double negation elimination), else just negate the child.
		return nnf(e.Operands[0], !negated)
	case ExprIntersection:
		ops := mapNNF(e.Operands, negated)
		if negated {
			return ObjectUnionOf(ops...)
		}
		return ObjectIntersectionOf(ops...)
	case ExprUnion:
		ops := mapNNF(e.Operands, negated)
		if negated {
			return ObjectIntersectionOf(ops...)
		}
		return ObjectUnionOf(ops...)
	case ExprOneOf:
		if negated {
			return ObjectComplementOf(&ClassExpr{Kind: ExprOneOf, Individuals: e.Individuals})
		}
		return &ClassExpr{Kind: ExprOneOf, Individuals: e.Individuals}
	case ExprObjectSomeValuesFrom:
		filler := nnf(e.Filler, negated)
		if negated {
			return ObjectAllValuesFrom(e.Property, filler)
		}
		return ObjectSomeValuesFrom(e.Property, filler)
	case ExprObjectAllValuesFrom:
		filler := nnf(e.Filler, negated)
		if negated {
			return ObjectSomeValuesFrom(e.Property, filler)
		}
		return ObjectAllValuesFrom(e.Property, filler)
	case ExprObjectHasValue:
		if negated {
			return ObjectComplementOf(ObjectHasValue(e.Property, e.Value))
		}
		return ObjectHasValue(e.Property, e.Value)
	case ExprObjectMinCardinality:
		filler := nnfOrNil(e.Filler, false)
		if negated {
			n := e.Cardinality - 1
			if n < 0 {
				return Bottom // ¬(≥0 R.C) is unsatisfiable; ≥0 is always true
			}
			return ObjectMaxCardinality(n, e.Property, filler)
		}
		return ObjectMinCardinality(e.Cardinality, e.Property, filler)
	case ExprObjectMaxCardinality:
		filler := nnfOrNil(e.Filler, false)
		if negated {
			return ObjectMinCardinality(e.Cardinality+1, e.Property, filler)
		}
		return ObjectMaxCardinality(e.Cardinality, e.Property, filler)
	case ExprObjectExactCardinality:
		// ≤n ⊓ ≥n; negate distributes as a union of the two boundary breaches.
		min := nnf(&ClassExpr{Kind: ExprObjectMinCardinality, Cardinality: e.Cardinality, Property: e.Property, Filler: e.Filler}, negated)
		max := nnf(&ClassExpr{Kind: ExprObjectMaxCardinality, Cardinality: e.Cardinality, Property: e.Property, Filler: e.Filler}, negated)
		if negated {
			return ObjectUnionOf(min, max)
		}
		return ObjectIntersectionOf(min, max)
	case ExprObjectHasSelf:
		if negated {
			return ObjectAllValuesFrom(e.Property, Bottom) // ¬∃R.Self ⇒ ∀R.¬Self ⊑ ∀R.⊥ surrogate is refined by the tableau self rule
		}
		return ObjectHasSelf(e.Property)
	case ExprDataSomeValuesFrom:
		if negated {
			return &ClassExpr{Kind: ExprDataAllValuesFrom, DataProperty: e.DataProperty, DataRange: DataComplementOf(e.DataRange)}
		}
		return e
	case ExprDataAllValuesFrom:
		if negated {
			return &ClassExpr{Kind: ExprDataSomeValuesFrom, DataProperty: e.DataProperty, DataRange: DataComplementOf(e.DataRange)}
		}
		return e
	case ExprDataHasValue:
		if negated {
			return ObjectComplementOf(e)
		}
		return e
	case ExprDataMinCardinality:
		if negated {
			n := e.Cardinality - 1
			if n < 0 {
				return Bottom
			}
			return &ClassExpr{Kind: ExprDataMaxCardinality, Cardinality: n, DataProperty: e.DataProperty, DataRange: e.DataRange}
		}
		return e
	case ExprDataMaxCardinality:
		if negated {
			return &ClassExpr{Kind: ExprDataMinCardinality, Cardinality: e.Cardinality + 1, DataProperty: e.DataProperty, DataRange: e.DataRange}
		}
		return e
	case ExprDataExactCardinality:
		min := nnf(&ClassExpr{Kind: ExprDataMinCardinality, Cardinality: e.Cardinality, DataProperty: e.DataProperty, DataRange: e.DataRange}, negated)
		max := nnf(&ClassExpr{Kind: ExprDataMaxCardinality, Cardinality: e.Cardinality, DataProperty: e.DataProperty, DataRange: e.DataRange}, negated)
		if negated {
			return ObjectUnionOf(min, max)
		}
		return ObjectIntersectionOf(min, max)
	}
	return e
}

func mapNNF(ops []*ClassExpr, negated bool) []*ClassExpr {
	out := make([]*ClassExpr, len(ops))
	for i, op := range ops {
		out[i] = nnf(op, negated)
	}
	return out
}

func nnfOrNil(e *ClassExpr, negated bool) *ClassExpr {
	if e == nil {
		return nil
	}
	return nnf(e, negated)
}
