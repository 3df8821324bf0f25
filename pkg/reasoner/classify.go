package reasoner

import (
	"context"
	"sort"

	"github.com/sroiqd/reasoner/pkg/term"
)

// ClassNode is one entry in a classification hierarchy: a named class plus
// its direct (non-transitively-redundant) superclasses among the other
// declared classes.
type ClassNode struct {
	Class   term.ClassHandle
	Parents []term.ClassHandle
}

// ClassHierarchy is the result of Classify: every declared class's direct
// parents in the subsumption partial order.
type ClassHierarchy struct {
	Nodes []ClassNode
}

// Classify computes the complete subsumption hierarchy over every declared
// class. Pairwise subsumption is expensive, so asserted SubClassOf/
// EquivalentClasses axioms seed a first approximation of the order and are
// trusted without a prover call; only pairs the asserted axioms leave
// undetermined are actually asked of the prover. This is a simplification
// of a from-scratch enhanced traversal (the full incremental algorithm
// tracks known-non-subsumption too, pruning still more pairs) but already
// avoids re-deriving directly asserted structure through the tableau.
func (r *Reasoner) Classify(ctx context.Context) (*ClassHierarchy, error) {
	classes := r.ont.Classes()
	handles := make([]term.ClassHandle, len(classes))
	for i, c := range classes {
		handles[i] = c.IRI
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	known := make(map[[2]term.ClassHandle]bool, len(handles)*len(handles))
	for _, sub := range handles {
		for _, super := range handles {
			if sub == super {
				continue
			}
			if asserted := r.assertedSubclass(sub, super); asserted {
				known[[2]term.ClassHandle{sub, super}] = true
			}
		}
	}

	hierarchy := &ClassHierarchy{}
	for _, sub := range handles {
		var parents []term.ClassHandle
		for _, super := range handles {
			if sub == super {
				continue
			}
			pair := [2]term.ClassHandle{sub, super}
			holds, ok := known[pair]
			if !ok {
				var err error
				holds, err = r.IsSubclassOf(ctx, term.NamedClass(sub), term.NamedClass(super))
				if err != nil {
					return nil, err
				}
				known[pair] = holds
			}
			if holds {
				parents = append(parents, super)
			}
		}
		hierarchy.Nodes = append(hierarchy.Nodes, ClassNode{Class: sub, Parents: directParents(parents, known, sub)})
	}
	return hierarchy, nil
}

// directParents drops any parent that subsumes another parent in the set,
// leaving only the direct (most specific) superclasses.
func directParents(parents []term.ClassHandle, known map[[2]term.ClassHandle]bool, sub term.ClassHandle) []term.ClassHandle {
	set := make(map[term.ClassHandle]bool, len(parents))
	for _, p := range parents {
		set[p] = true
	}
	var direct []term.ClassHandle
	for _, p := range parents {
		redundant := false
		for _, q := range parents {
			if p == q {
				continue
			}
			if known[[2]term.ClassHandle{q, p}] {
				redundant = true
				break
			}
		}
		if !redundant {
			direct = append(direct, p)
		}
	}
	return direct
}

// assertedSubclass reports whether sub is directly declared a subclass or
// equivalent of super, without invoking the prover.
func (r *Reasoner) assertedSubclass(sub, super term.ClassHandle) bool {
	for _, ax := range r.ont.SubClassAxiomsOf(sub) {
		if ax.Super.Kind == term.ExprClass && ax.Super.Class == super {
			return true
		}
	}
	for _, h := range r.ont.EquivalentClassesOf(sub) {
		if h == super {
			return true
		}
	}
	return false
}

// InstancesOf returns every named individual the reasoner can prove
// necessarily belongs to c.
func (r *Reasoner) InstancesOf(ctx context.Context, c *term.ClassExpr) ([]term.Individual, error) {
	var out []term.Individual
	for _, ind := range r.ont.Individuals() {
		i := term.NamedIndividual(ind.IRI)
		ok, err := r.IsInstanceOf(ctx, i, c)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, i)
		}
	}
	return out, nil
}
