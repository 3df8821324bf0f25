package tableau

import (
	"fmt"

	"github.com/sroiqd/reasoner/pkg/term"
)

// choicePoint snapshots everything a backtrack needs to restore before
// trying the next alternative. This is chronological
// backtracking over full-state snapshots rather than dependency-directed
// backtracking: simpler to implement correctly, at the cost of redoing work
// a smarter jump would skip. Documented as a deliberate completeness/
// engineering trade-off, not an oversight.
type choicePoint struct {
	cg                  *CompletionGraph
	individualNode      map[string]int64
	dataSucc            map[int64][]dataEdge
	negObjectAssertions []negAssertion
	negDataAssertions   []negDataAssertion
	oneOfResolved       map[string]bool

	alternatives []func(p *proof)
	nextAlt      int
}

func cloneInt64Map(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneDataSucc(m map[int64][]dataEdge) map[int64][]dataEdge {
	out := make(map[int64][]dataEdge, len(m))
	for k, v := range m {
		out[k] = append([]dataEdge(nil), v...)
	}
	return out
}

func (p *proof) snapshot() *choicePoint {
	return &choicePoint{
		cg:                  p.cg.Clone(),
		individualNode:      cloneInt64Map(p.individualNode),
		dataSucc:            cloneDataSucc(p.dataSucc),
		negObjectAssertions: append([]negAssertion(nil), p.negObjectAssertions...),
		negDataAssertions:   append([]negDataAssertion(nil), p.negDataAssertions...),
		oneOfResolved:       cloneBoolMap(p.oneOfResolved),
	}
}

func (p *proof) restore(cp *choicePoint) {
	p.cg = cp.cg.Clone()
	p.individualNode = cloneInt64Map(cp.individualNode)
	p.dataSucc = cloneDataSucc(cp.dataSucc)
	p.negObjectAssertions = append([]negAssertion(nil), cp.negObjectAssertions...)
	p.negDataAssertions = append([]negDataAssertion(nil), cp.negDataAssertions...)
	p.oneOfResolved = cloneBoolMap(cp.oneOfResolved)
}

func (p *proof) pushChoice(alts []func(p *proof)) {
	cp := p.snapshot()
	cp.alternatives = alts
	cp.nextAlt = 1
	p.choiceStack = append(p.choiceStack, cp)
	alts[0](p)
}

// backtrack restores the most recent choice point with an untried
// alternative and applies it, popping any choice point that has been
// exhausted. Returns false when every alternative at every level has been
// tried, meaning the branch is unsatisfiable.
func (p *proof) backtrack() bool {
	for len(p.choiceStack) > 0 {
		cp := p.choiceStack[len(p.choiceStack)-1]
		if cp.nextAlt < len(cp.alternatives) {
			p.restore(cp)
			alt := cp.alternatives[cp.nextAlt]
			cp.nextAlt++
			alt(p)
			return true
		}
		p.choiceStack = p.choiceStack[:len(p.choiceStack)-1]
	}
	return false
}

func (p *proof) unionSatisfied(n *Node, e *term.ClassExpr) bool {
	for _, op := range e.Operands {
		if n.Has(term.NNF(op)) {
			return true
		}
	}
	return false
}

// applyNonDeterministicRule tries the three sources of branching the prover
// supports, in that fixed priority order, and
// reports whether it found one to apply.
func (p *proof) applyNonDeterministicRule() (bool, error) {
	if ok := p.tryUnionRule(); ok {
		return true, nil
	}
	if ok := p.tryAtMostRule(); ok {
		return true, nil
	}
	if ok := p.tryNominalRule(); ok {
		return true, nil
	}
	return false, nil
}

func (p *proof) tryUnionRule() bool {
	for _, n := range p.cg.Nodes() {
		for _, e := range labelValues(n) {
			if e.Kind != term.ExprUnion {
				continue
			}
			if p.unionSatisfied(n, e) {
				continue
			}
			id := n.ID
			ops := e.Operands
			alts := make([]func(p *proof), len(ops))
			for i := range ops {
				op := ops[i]
				alts[i] = func(pp *proof) { pp.addLabel(pp.cg.Node(id), op) }
			}
			p.pushChoice(alts)
			return true
		}
	}
	return false
}

// tryAtMostRule looks for a ≤n restriction whose current successor count
// (restricted to the filler, if qualified) exceeds n, and branches over
// every still-legal pair to merge.
func (p *proof) tryAtMostRule() bool {
	for _, n := range p.cg.Nodes() {
		for _, e := range labelValues(n) {
			if e.Kind != term.ExprObjectMaxCardinality {
				continue
			}
			succs := p.distinctSuccessorsWithFiller(n.ID, e.Property, e.Filler)
			if len(succs) <= e.Cardinality {
				continue
			}
			var alts []func(p *proof)
			for i := 0; i < len(succs); i++ {
				for j := i + 1; j < len(succs); j++ {
					x, y := succs[i], succs[j]
					if p.cg.Node(x).DiffFrom[y] {
						continue
					}
					alts = append(alts, func(pp *proof) { pp.mergeNodes(x, y) })
				}
			}
			if len(alts) == 0 {
				// Every pair is pairwise different: the clash pass doesn't
				// have a standalone rule for this, so raise it here as a
				// cardinality-after-merge clash by adding owl:Nothing.
				p.addLabel(n, term.Bottom)
				return true
			}
			p.pushChoice(alts)
			return true
		}
	}
	return false
}

// tryNominalRule resolves an ObjectOneOf appearing directly in a label by
// merging the node with the nominal node of one of the listed individuals,
// branching over the individuals when there is more than one.
func (p *proof) tryNominalRule() bool {
	for _, n := range p.cg.Nodes() {
		for _, e := range labelValues(n) {
			if e.Kind != term.ExprOneOf || len(e.Individuals) == 0 {
				continue
			}
			key := fmt.Sprintf("%d:%s", n.ID, e.Key())
			if p.oneOfResolved[key] {
				continue
			}
			id := n.ID
			inds := e.Individuals
			alts := make([]func(p *proof), len(inds))
			for i := range inds {
				ind := inds[i]
				alts[i] = func(pp *proof) {
					target := pp.nodeFor(ind)
					pp.mergeNodes(id, target.ID)
					pp.oneOfResolved[key] = true
				}
			}
			p.pushChoice(alts)
			return true
		}
	}
	return false
}

// mergeNodes folds drop into keep: labels, same-as/diff-from sets, edges
// (redirecting any endpoint that was drop), and data successors. The
// resulting same-as/diff-from conflict, if any, surfaces on the next
// checkClashes pass rather than being special-cased here.
func (p *proof) mergeNodes(keep, drop int64) {
	if keep == drop {
		return
	}
	kn := p.cg.Node(keep)
	dn := p.cg.Node(drop)
	if kn == nil || dn == nil {
		return
	}
	for k, v := range dn.Label {
		kn.Label[k] = v
	}
	for id := range dn.SameAs {
		kn.SameAs[id] = true
		if other := p.cg.Node(redirect(id, drop, keep)); other != nil {
			other.SameAs[keep] = true
		}
	}
	for id := range dn.DiffFrom {
		kn.DiffFrom[id] = true
		if other := p.cg.Node(redirect(id, drop, keep)); other != nil {
			other.DiffFrom[keep] = true
		}
	}
	if dn.IsNominal {
		kn.IsNominal = true
		kn.Nominal = dn.Nominal
	}
	for _, e := range append([]*Edge(nil), p.cg.succ[drop]...) {
		to := redirect(e.To, drop, keep)
		if !p.hasMatchingEdge(keep, to, e.Property) {
			p.cg.AddEdge(keep, to, e.Property)
		}
	}
	for _, e := range append([]*Edge(nil), p.cg.pred[drop]...) {
		from := redirect(e.From, drop, keep)
		if !p.hasMatchingEdge(from, keep, e.Property) {
			p.cg.AddEdge(from, keep, e.Property)
		}
	}
	delete(kn.SameAs, drop)
	delete(kn.SameAs, keep)
	delete(kn.DiffFrom, drop)
	delete(kn.DiffFrom, keep)

	p.dataSucc[keep] = append(p.dataSucc[keep], p.dataSucc[drop]...)
	delete(p.dataSucc, drop)
	delete(p.cg.nodes, drop)
	delete(p.cg.succ, drop)
	delete(p.cg.pred, drop)
	for k, id := range p.individualNode {
		if id == drop {
			p.individualNode[k] = keep
		}
	}
}

func redirect(id, drop, keep int64) int64 {
	if id == drop {
		return keep
	}
	return id
}
