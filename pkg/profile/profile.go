// Package profile implements the Profile Checker: classifies an
// ontology's axiom set into one of the OWL 2 profiles (EL, QL, RL) or falls
// back to full DL, so the façade can dispatch EL and RL ontologies to a
// faster specialised routine than the general tableau.
package profile

import (
	"sync"

	"github.com/sroiqd/reasoner/pkg/store"
	"github.com/sroiqd/reasoner/pkg/term"
)

// Profile is one of the four classification outcomes.
type Profile int

const (
	DL Profile = iota
	EL
	QL
	RL
)

func (p Profile) String() string {
	switch p {
	case EL:
		return "EL"
	case QL:
		return "QL"
	case RL:
		return "RL"
	default:
		return "DL"
	}
}

// shapeCounts tallies the axiom/expression shapes that decide profile
// membership. This is a structural approximation of the OWL 2 profile
// restrictions, not a byte-for-byte implementation of the full EL/QL/RL
// grammars: it catches the constructs that matter for dispatch (does a
// faster specialised routine apply) rather than certifying strict profile
// conformance for every edge case the full profile document lists.
type shapeCounts struct {
	unions           int
	generalComplements int
	cardinalityAboveOne int
	universalRestrictions int
	multiNominalOneOf int
	inverseProperties int
	dataRangeComplements int
}

func computeShapeCounts(ont *store.Ontology) shapeCounts {
	var c shapeCounts
	for _, ax := range ont.Axioms() {
		switch v := ax.(type) {
		case *store.SubClassOfAxiom:
			walkExpr(v.Sub, &c)
			walkExpr(v.Super, &c)
		case *store.EquivalentClassesAxiom:
			for _, e := range v.Classes {
				walkExpr(e, &c)
			}
		case *store.DisjointClassesAxiom:
			for _, e := range v.Classes {
				walkExpr(e, &c)
			}
		case *store.DisjointUnionAxiom:
			walkExpr(v.Class, &c)
			for _, e := range v.Parts {
				walkExpr(e, &c)
			}
		case *store.ClassAssertionAxiom:
			walkExpr(v.Class, &c)
		case *store.InverseObjectPropertiesAxiom:
			c.inverseProperties++
		case *store.HasKeyAxiom:
			walkExpr(v.Class, &c)
		}
	}
	return c
}

func walkExpr(e *term.ClassExpr, c *shapeCounts) {
	if e == nil {
		return
	}
	switch e.Kind {
	case term.ExprUnion:
		c.unions++
	case term.ExprComplement:
		// ¬⊥ / ¬⊤ are harmless; anything else is full negation, which none
		// of EL/QL/RL admit.
		if !opIsTrivial(e) {
			c.generalComplements++
		}
	case term.ExprObjectAllValuesFrom, term.ExprDataAllValuesFrom:
		c.universalRestrictions++
	case term.ExprObjectMinCardinality, term.ExprObjectMaxCardinality, term.ExprObjectExactCardinality,
		term.ExprDataMinCardinality, term.ExprDataMaxCardinality, term.ExprDataExactCardinality:
		if e.Cardinality > 1 {
			c.cardinalityAboveOne++
		}
	case term.ExprOneOf:
		if len(e.Individuals) > 1 {
			c.multiNominalOneOf++
		}
	}
	for _, op := range e.Operands {
		walkExpr(op, c)
	}
	if e.Filler != nil {
		walkExpr(e.Filler, c)
	}
	if e.Property.Inverse {
		c.inverseProperties++
	}
}

func opIsTrivial(e *term.ClassExpr) bool {
	if len(e.Operands) != 1 {
		return false
	}
	inner := e.Operands[0]
	return inner.Kind == term.ExprTop || inner.Kind == term.ExprBottom
}

// Classify computes the profile via structural inspection of the axiom set
//. No cardinality >1, no
// general negation, no unions, no multi-individual nominals, no universal
// restrictions, and no inverse properties puts the ontology in EL. Unions
// (any number) with nothing else excluded land in RL (unions are RL-legal on the
// subclass side in the real grammar; this checker doesn't distinguish which
// side, so it is conservative rather than precise there). Anything else is
// DL.
func Classify(ont *store.Ontology) Profile {
	c := computeShapeCounts(ont)
	switch {
	case c.generalComplements > 0, c.cardinalityAboveOne > 0, c.multiNominalOneOf > 0:
		return DL
	case c.unions == 0 && c.universalRestrictions == 0 && c.inverseProperties == 0:
		return EL
	case c.universalRestrictions == 0 && c.inverseProperties == 0:
		return RL
	default:
		return DL
	}
}

// Checker caches Classify's result per ontology version.
type Checker struct {
	ont *store.Ontology

	mu      sync.Mutex
	version uint64
	cached  Profile
	valid   bool

	guesser *HeuristicGuesser
}

// NewChecker builds a Checker over ont, optionally consulting guesser (may
// be nil) for a fast, non-authoritative pre-classification hint.
func NewChecker(ont *store.Ontology, guesser *HeuristicGuesser) *Checker {
	return &Checker{ont: ont, guesser: guesser}
}

// Classify returns the ontology's current profile, recomputing only when
// the ontology's version has advanced since the last call.
func (ck *Checker) Classify() Profile {
	ck.mu.Lock()
	defer ck.mu.Unlock()
	v := ck.ont.Version()
	if ck.valid && ck.version == v {
		return ck.cached
	}
	if ck.guesser != nil {
		// The heuristic guess is computed and discarded, never
		// substituted for the authoritative result — see HeuristicGuesser's
		// doc comment for why.
		_, _ = ck.guesser.Guess(ck.ont)
	}
	p := Classify(ck.ont)
	ck.cached = p
	ck.version = v
	ck.valid = true
	return p
}
