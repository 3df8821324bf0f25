package profile

import (
	"github.com/sroiqd/reasoner/pkg/store"
	"github.com/sroiqd/reasoner/pkg/term"
)

// RLConsistent decides consistency of an RL-profile ontology's ABox by
// forward-chaining ClassAssertion facts to a fixpoint through SubClassOf
// and EquivalentClasses, then checking for a disjoint-class collision on
// any individual — the Datalog-shaped rule set RL is designed to admit
//. Like ELSatisfiable, this
// covers the cases the façade actually dispatches here (no general
// negation, no unions — RL rules that would need them never fire) and
// falls back to the tableau for anything an ontology classified anything
// other than RL.
func RLConsistent(ont *store.Ontology) bool {
	facts := map[term.Individual]map[term.ClassHandle]bool{}
	for _, ax := range ont.Axioms() {
		ca, ok := ax.(*store.ClassAssertionAxiom)
		if !ok || ca.Class.Kind != term.ExprClass {
			continue
		}
		if facts[ca.Individual] == nil {
			facts[ca.Individual] = map[term.ClassHandle]bool{}
		}
		facts[ca.Individual][ca.Class.Class] = true
	}

	for {
		changed := false
		for ind, classes := range facts {
			for c := range snapshotKeys(classes) {
				for _, super := range elSuperClosureSkipSelf(ont, c) {
					if !classes[super] {
						classes[super] = true
						changed = true
					}
				}
			}
			facts[ind] = classes
		}
		if !changed {
			break
		}
	}

	for _, classes := range facts {
		for c := range classes {
			for d := range classes {
				if c != d && ont.AreDisjoint(c, d) {
					return false
				}
			}
		}
	}
	return true
}

func snapshotKeys(m map[term.ClassHandle]bool) map[term.ClassHandle]bool {
	out := make(map[term.ClassHandle]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}

func elSuperClosureSkipSelf(ont *store.Ontology, c term.ClassHandle) []term.ClassHandle {
	seen := elSuperClosure(ont, c, map[term.ClassHandle]bool{})
	out := make([]term.ClassHandle, 0, len(seen))
	for k := range seen {
		if k != c {
			out = append(out, k)
		}
	}
	return out
}
