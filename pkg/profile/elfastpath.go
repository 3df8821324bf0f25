package profile

import (
	"github.com/sroiqd/reasoner/pkg/store"
	"github.com/sroiqd/reasoner/pkg/term"
)

// ELSatisfiable decides satisfiability of a named class under an EL-profile
// ontology by closing its asserted superclasses under SubClassOf and
// EquivalentClasses and checking for an owl:Nothing or a pairwise-disjoint
// collision — the two ways an EL-profile ontology (no general negation, no
// union) can name an unsatisfiable class. This is a deliberate
// simplification of full EL++ completion (it doesn't chase existential
// witnesses, since an EL TBox without nominals is acyclic-model
// satisfiable whenever no named class collapses into ⊥ this way) kept only
// for the cases the façade actually dispatches here: callers fall back to
// the tableau whenever the ontology isn't classified EL.
func ELSatisfiable(ont *store.Ontology, class term.ClassHandle) bool {
	closure := elSuperClosure(ont, class, map[term.ClassHandle]bool{})
	for c := range closure {
		for _, ax := range ont.SubClassAxiomsOf(c) {
			if ax.Super.Kind == term.ExprBottom {
				return false
			}
		}
		for d := range closure {
			if c != d && ont.AreDisjoint(c, d) {
				return false
			}
		}
	}
	return true
}

func elSuperClosure(ont *store.Ontology, c term.ClassHandle, seen map[term.ClassHandle]bool) map[term.ClassHandle]bool {
	if seen[c] {
		return seen
	}
	seen[c] = true
	for _, ax := range ont.SubClassAxiomsOf(c) {
		if ax.Super.Kind == term.ExprClass {
			elSuperClosure(ont, ax.Super.Class, seen)
		}
	}
	for _, eq := range ont.EquivalentClassesOf(c) {
		elSuperClosure(ont, eq, seen)
	}
	return seen
}
