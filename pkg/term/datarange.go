package term

import (
	"sort"
	"strings"
)

// DataRangeKind tags the variant of a DataRange node.
type DataRangeKind uint8

const (
	RangeDatatype DataRangeKind = iota
	RangeOneOf
	RangeRestriction
	RangeIntersection
	RangeUnion
	RangeComplement
)

// Facet names recognised by DatatypeRestriction.
const (
	FacetMinInclusive = "minInclusive"
	FacetMaxInclusive = "maxInclusive"
	FacetMinExclusive = "minExclusive"
	FacetMaxExclusive = "maxExclusive"
	FacetTotalDigits  = "totalDigits"
	FacetFractionDigits = "fractionDigits"
	FacetPattern      = "pattern"
	FacetLength       = "length"
	FacetMinLength    = "minLength"
	FacetMaxLength    = "maxLength"
)

// DataRange is a recursive data-range expression.
type DataRange struct {
	Kind     DataRangeKind
	Datatype string // IRI lexical form (RangeDatatype, RangeRestriction base)
	Operands []*DataRange
	Literals []Literal // RangeOneOf enumeration
	Facets   map[string]Literal
}

// NamedDatatype builds a DataRange naming a datatype directly.
func NamedDatatype(iri string) *DataRange {
	return &DataRange{Kind: RangeDatatype, Datatype: iri}
}

// DataOneOf builds an enumeration data range.
func DataOneOf(lits ...Literal) *DataRange {
	return &DataRange{Kind: RangeOneOf, Literals: lits}
}

// DatatypeRestriction builds a facet-restricted data range over base.
func DatatypeRestriction(base string, facets map[string]Literal) *DataRange {
	return &DataRange{Kind: RangeRestriction, Datatype: base, Facets: facets}
}

// DataIntersectionOf, DataUnionOf build boolean combinations.
func DataIntersectionOf(ops ...*DataRange) *DataRange {
	return &DataRange{Kind: RangeIntersection, Operands: ops}
}

func DataUnionOf(ops ...*DataRange) *DataRange {
	return &DataRange{Kind: RangeUnion, Operands: ops}
}

// DataComplementOf negates a single data range.
func DataComplementOf(op *DataRange) *DataRange {
	return &DataRange{Kind: RangeComplement, Operands: []*DataRange{op}}
}

// Key produces a canonical string key for structural-equality interning.
func (d *DataRange) Key() string {
	if d == nil {
		return "nil"
	}
	var b strings.Builder
	d.writeKey(&b)
	return b.String()
}

func (d *DataRange) writeKey(b *strings.Builder) {
	switch d.Kind {
	case RangeDatatype:
		b.WriteString("dt(")
		b.WriteString(d.Datatype)
		b.WriteByte(')')
	case RangeOneOf:
		b.WriteString("oneOf(")
		lits := make([]string, len(d.Literals))
		for i, l := range d.Literals {
			lits[i] = l.Datatype + "|" + l.Canonical() + "|" + l.Lang
		}
		sort.Strings(lits)
		b.WriteString(strings.Join(lits, ","))
		b.WriteByte(')')
	case RangeRestriction:
		b.WriteString("restrict(")
		b.WriteString(d.Datatype)
		keys := make([]string, 0, len(d.Facets))
		for k := range d.Facets {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte(',')
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(d.Facets[k].Canonical())
		}
		b.WriteByte(')')
	case RangeIntersection, RangeUnion, RangeComplement:
		switch d.Kind {
		case RangeIntersection:
			b.WriteString("and(")
		case RangeUnion:
			b.WriteString("or(")
		case RangeComplement:
			b.WriteString("not(")
		}
		for i, op := range d.Operands {
			if i > 0 {
				b.WriteByte(',')
			}
			op.writeKey(b)
		}
		b.WriteByte(')')
	}
}
