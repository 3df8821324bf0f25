package tableau

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/sroiqd/reasoner/pkg/term"
)

// datatypeOracle checks a data node's accumulated data-range constraints
// for consistency: numeric facet intervals are intersected
// with gonum/floats, length facets are intersected as bounds, DataOneOf
// enumerations are intersected against the other constraints, and
// constraints spanning incompatible datatypes are a clash.
type datatypeOracle struct{}

const noBound = math.MaxFloat64

// Check reports whether ranges (all data ranges asserted on one data node)
// admit a non-empty intersection. value, if non-nil, is a concrete literal
// the node is also bound to and must itself satisfy every range.
func (datatypeOracle) Check(ranges []*term.DataRange, value *term.Literal) bool {
	flat := flattenRanges(ranges)

	datatypes := make(map[string]bool)
	for _, r := range flat {
		if !r.negated && (r.positive.Kind == term.RangeDatatype || r.positive.Kind == term.RangeRestriction) {
			datatypes[r.positive.Datatype] = true
		}
	}
	if len(datatypes) > 1 {
		return false // e.g. xsd:integer ⊓ xsd:boolean on one data node
	}

	var lowerBounds, upperBounds []float64
	var minLen, maxLen = -1, -1
	var oneOf map[string]bool
	haveOneOf := false

	for _, r := range flat {
		if r.negated {
			// term.NNF negates a data range by wrapping it in
			// DataComplementOf rather than flipping its facets, so negated
			// restrictions and enumerations do reach the oracle; each is
			// treated as non-constraining rather than complemented.
			continue
		}
		switch r.positive.Kind {
		case term.RangeRestriction:
			f := r.positive.Facets
			if lit, ok := f[term.FacetMinInclusive]; ok {
				if v, ok := parseFloat(lit); ok {
					lowerBounds = append(lowerBounds, v)
				}
			}
			if lit, ok := f[term.FacetMinExclusive]; ok {
				if v, ok := parseFloat(lit); ok {
					lowerBounds = append(lowerBounds, v+epsilon)
				}
			}
			if lit, ok := f[term.FacetMaxInclusive]; ok {
				if v, ok := parseFloat(lit); ok {
					upperBounds = append(upperBounds, v)
				}
			}
			if lit, ok := f[term.FacetMaxExclusive]; ok {
				if v, ok := parseFloat(lit); ok {
					upperBounds = append(upperBounds, v-epsilon)
				}
			}
			if lit, ok := f[term.FacetLength]; ok {
				if n, ok := parseInt(lit); ok {
					minLen, maxLen = mergeLenBound(minLen, maxLen, n, n)
				}
			}
			if lit, ok := f[term.FacetMinLength]; ok {
				if n, ok := parseInt(lit); ok {
					minLen, maxLen = mergeLenBound(minLen, maxLen, n, -1)
				}
			}
			if lit, ok := f[term.FacetMaxLength]; ok {
				if n, ok := parseInt(lit); ok {
					minLen, maxLen = mergeLenBound(minLen, maxLen, -1, n)
				}
			}
		case term.RangeOneOf:
			set := make(map[string]bool, len(r.positive.Literals))
			for _, l := range r.positive.Literals {
				set[l.Datatype+"|"+l.Canonical()] = true
			}
			if !haveOneOf {
				oneOf, haveOneOf = set, true
			} else {
				oneOf = intersectSets(oneOf, set)
			}
		}
	}

	lo, hi := noBound*-1, noBound
	if len(lowerBounds) > 0 {
		lo = floats.Max(lowerBounds)
	}
	if len(upperBounds) > 0 {
		hi = floats.Min(upperBounds)
	}
	if lo > hi {
		return false
	}
	if minLen >= 0 && maxLen >= 0 && minLen > maxLen {
		return false
	}
	if haveOneOf && len(oneOf) == 0 {
		return false
	}

	if value != nil {
		for dt := range datatypes {
			if value.Datatype != dt {
				return false
			}
		}
		if haveOneOf && !oneOf[value.Datatype+"|"+value.Canonical()] {
			return false
		}
		if f, ok := parseFloat(*value); ok && (len(lowerBounds) > 0 || len(upperBounds) > 0) {
			if f < lo || f > hi {
				return false
			}
		}
		n := len([]rune(value.Lexical))
		if (minLen >= 0 && n < minLen) || (maxLen >= 0 && n > maxLen) {
			return false
		}
	}

	return true
}

const epsilon = 1e-9

type polarRange struct {
	positive *term.DataRange
	negated  bool
}

// flattenRanges walks intersection/union/complement structure into a flat
// list of (restriction-or-enum, polarity) leaves. Unions are approximated
// by taking their first disjunct — a documented completeness
// simplification: exact DataUnionOf
// satisfiability would require branching the tableau itself, which a pure
// oracle function does not do.
func flattenRanges(ranges []*term.DataRange) []polarRange {
	var out []polarRange
	var walk func(r *term.DataRange, negated bool)
	walk = func(r *term.DataRange, negated bool) {
		if r == nil {
			return
		}
		switch r.Kind {
		case term.RangeIntersection:
			for _, op := range r.Operands {
				walk(op, negated)
			}
		case term.RangeUnion:
			if len(r.Operands) > 0 {
				walk(r.Operands[0], negated)
			}
		case term.RangeComplement:
			walk(r.Operands[0], !negated)
		default:
			out = append(out, polarRange{positive: r, negated: negated})
		}
	}
	for _, r := range ranges {
		walk(r, false)
	}
	return out
}

func mergeLenBound(curMin, curMax, newMin, newMax int) (int, int) {
	if newMin >= 0 && (curMin < 0 || newMin > curMin) {
		curMin = newMin
	}
	if newMax >= 0 && (curMax < 0 || newMax < curMax) {
		curMax = newMax
	}
	return curMin, curMax
}

func intersectSets(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func parseFloat(l term.Literal) (float64, bool) {
	s := strings.TrimSpace(l.Canonical())
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseInt(l term.Literal) (int, bool) {
	s := strings.TrimSpace(l.Canonical())
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
