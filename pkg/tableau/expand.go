package tableau

import (
	"sort"

	"github.com/sroiqd/reasoner/pkg/store"
	"github.com/sroiqd/reasoner/pkg/term"
)

// labelValues snapshots a node's label as a slice sorted by key, so a rule
// can safely add to the label mid-range without depending on Go's
// unspecified map iteration order.
func labelValues(n *Node) []*term.ClassExpr {
	keys := make([]string, 0, len(n.Label))
	for k := range n.Label {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*term.ClassExpr, len(keys))
	for i, k := range keys {
		out[i] = n.Label[k]
	}
	return out
}

// matchingSuccessors returns the nodes reachable from id via a role
// assertion matching prop, honoring prop's inverse flag by walking
// predecessor edges when asked for an inverse role (the completion graph
// only ever stores the asserted/derived direction, never a duplicate
// reverse edge for a bare Inverse() property expression).
func (p *proof) matchingSuccessors(id int64, prop term.PropertyExpr) []int64 {
	var out []int64
	if prop.Inverse {
		for _, e := range p.cg.pred[id] {
			if e.Property.Named == prop.Named && !e.Property.Inverse {
				out = append(out, e.From)
			}
		}
	} else {
		for _, e := range p.cg.succ[id] {
			if e.Property.Named == prop.Named && !e.Property.Inverse {
				out = append(out, e.To)
			}
		}
	}
	return out
}

func (p *proof) hasMatchingEdge(from, to int64, prop term.PropertyExpr) bool {
	for _, e := range p.cg.succ[from] {
		if e.To == to && e.Property.Equal(prop) {
			return true
		}
	}
	return false
}

func containsRange(ranges []*term.DataRange, dr *term.DataRange) bool {
	if dr == nil {
		return true
	}
	for _, r := range ranges {
		if r.Key() == dr.Key() {
			return true
		}
	}
	return false
}

// applyDeterministicRules runs one pass of every rule that never branches,
// returning whether anything changed so the caller can iterate to a
// fixpoint.
func (p *proof) applyDeterministicRules() bool {
	changed := false
	if p.tboxRule() {
		changed = true
	}
	if p.andRule() {
		changed = true
	}
	if p.allRule() {
		changed = true
	}
	if p.domainRangeRule() {
		changed = true
	}
	if p.hierarchyRule() {
		changed = true
	}
	if p.inverseRule() {
		changed = true
	}
	if p.symmetricRule() {
		changed = true
	}
	if p.selfRule() {
		changed = true
	}
	if p.chainRule() {
		changed = true
	}
	if p.existsRule() {
		changed = true
	}
	if p.keyRule() {
		changed = true
	}
	return changed
}

// tboxRule asserts every internalized general concept inclusion — a
// SubClassOf(Sub,Super) or EquivalentClasses axiom rewritten to
// ¬Sub ⊔ Super — on every node, the standard way a tableau makes global
// TBox axioms bind everywhere rather than only at explicitly asserted
// individuals.
func (p *proof) tboxRule() bool {
	changed := false
	for _, n := range p.cg.Nodes() {
		for _, gci := range p.gcis {
			if p.addLabel(n, gci) {
				changed = true
			}
		}
	}
	return changed
}

func (p *proof) andRule() bool {
	changed := false
	for _, n := range p.cg.Nodes() {
		for _, e := range labelValues(n) {
			if e.Kind != term.ExprIntersection {
				continue
			}
			for _, op := range e.Operands {
				if p.addLabel(n, op) {
					changed = true
				}
			}
		}
	}
	return changed
}

// allRule implements ∀R.C propagation and the transitivity rule: the latter
// propagates the whole ∀R.C expression onward along a transitive R-edge,
// not edge-closure, so it rides along as a second pass over the same label
// entries rather than a separate adjacency computation.
func (p *proof) allRule() bool {
	changed := false
	for _, n := range p.cg.Nodes() {
		for _, e := range labelValues(n) {
			switch e.Kind {
			case term.ExprObjectAllValuesFrom:
				targets := p.matchingSuccessors(n.ID, e.Property)
				for _, t := range targets {
					if p.addLabel(p.cg.Node(t), e.Filler) {
						changed = true
					}
				}
				if p.ont.HasCharacteristic(e.Property.Named, store.CharTransitive) {
					for _, t := range targets {
						if p.cg.Node(t).Add(e) {
							changed = true
						}
					}
				}
			case term.ExprDataAllValuesFrom:
				for _, de := range p.dataSucc[n.ID] {
					if de.prop != e.DataProperty {
						continue
					}
					dn := p.cg.Node(de.to)
					if !containsRange(dn.DataRanges, e.DataRange) {
						dn.DataRanges = append(dn.DataRanges, e.DataRange)
						changed = true
					}
				}
			}
		}
	}
	return changed
}

func (p *proof) domainRangeRule() bool {
	changed := false
	for _, n := range p.cg.Nodes() {
		for _, e := range p.cg.succ[n.ID] {
			domTarget, rngTarget := e.From, e.To
			if e.Property.Inverse {
				domTarget, rngTarget = e.To, e.From
			}
			for _, d := range p.ont.PropertyDomains(e.Property.Named) {
				if p.addLabel(p.cg.Node(domTarget), d) {
					changed = true
				}
			}
			for _, r := range p.ont.PropertyRanges(e.Property.Named) {
				if p.addLabel(p.cg.Node(rngTarget), r) {
					changed = true
				}
			}
		}
		for _, de := range p.dataSucc[n.ID] {
			for _, d := range p.ont.PropertyDomains(de.prop) {
				if p.addLabel(n, d) {
					changed = true
				}
			}
		}
	}
	return changed
}

// hierarchyRule propagates an edge onto every declared super-property, so
// later rules (∀, domain/range, transitivity) only ever need to match a
// literal property on an edge.
func (p *proof) hierarchyRule() bool {
	changed := false
	supers := p.ont.ObjectProperties()
	for _, n := range p.cg.Nodes() {
		for _, e := range append([]*Edge(nil), p.cg.succ[n.ID]...) {
			for _, super := range supers {
				if super.IRI == e.Property.Named {
					continue
				}
				if !p.ont.IsSubPropertyOf(e.Property.Named, super.IRI) {
					continue
				}
				sp := term.PropertyExpr{Named: super.IRI, Inverse: e.Property.Inverse}
				if !p.hasMatchingEdge(e.From, e.To, sp) {
					p.cg.AddEdge(e.From, e.To, sp)
					changed = true
				}
			}
		}
	}
	return changed
}

func (p *proof) inverseRule() bool {
	changed := false
	for _, n := range p.cg.Nodes() {
		for _, e := range append([]*Edge(nil), p.cg.succ[n.ID]...) {
			inv, ok := p.ont.InverseOf(e.Property.Named)
			if !ok {
				continue
			}
			ip := term.Object(inv)
			if !p.hasMatchingEdge(e.To, e.From, ip) {
				p.cg.AddEdge(e.To, e.From, ip)
				changed = true
			}
		}
	}
	return changed
}

func (p *proof) symmetricRule() bool {
	changed := false
	for _, n := range p.cg.Nodes() {
		for _, e := range append([]*Edge(nil), p.cg.succ[n.ID]...) {
			if !p.ont.HasCharacteristic(e.Property.Named, store.CharSymmetric) {
				continue
			}
			if !p.hasMatchingEdge(e.To, e.From, e.Property) {
				p.cg.AddEdge(e.To, e.From, e.Property)
				changed = true
			}
		}
	}
	return changed
}

func (p *proof) selfRule() bool {
	changed := false
	for _, n := range p.cg.Nodes() {
		for _, e := range labelValues(n) {
			if e.Kind != term.ExprObjectHasSelf {
				continue
			}
			if !p.hasMatchingEdge(n.ID, n.ID, e.Property) {
				p.cg.AddEdge(n.ID, n.ID, e.Property)
				changed = true
			}
		}
	}
	return changed
}

// chainRule implements property-chain inclusion: walks each declared chain from every
// node and materializes the edge onto the super property when a full
// R1∘...∘Rn path exists.
func (p *proof) chainRule() bool {
	changed := false
	for _, super := range p.ont.ObjectProperties() {
		chains := p.ont.PropertyChainsInto(super.IRI)
		if len(chains) == 0 {
			continue
		}
		for _, chain := range chains {
			for _, n := range p.cg.Nodes() {
				for _, end := range p.walkChain(n.ID, chain) {
					sp := term.Object(super.IRI)
					if !p.hasMatchingEdge(n.ID, end, sp) {
						p.cg.AddEdge(n.ID, end, sp)
						changed = true
					}
				}
			}
		}
	}
	return changed
}

func (p *proof) walkChain(start int64, chain []term.PropertyExpr) []int64 {
	frontier := []int64{start}
	for _, step := range chain {
		seen := make(map[int64]bool)
		var next []int64
		for _, f := range frontier {
			for _, t := range p.matchingSuccessors(f, step) {
				if !seen[t] {
					seen[t] = true
					next = append(next, t)
				}
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return frontier
}

func (p *proof) hasSuccessorWithFiller(id int64, prop term.PropertyExpr, filler *term.ClassExpr) bool {
	if filler == nil {
		return len(p.matchingSuccessors(id, prop)) > 0
	}
	nnf := term.NNF(filler)
	for _, t := range p.matchingSuccessors(id, prop) {
		if p.cg.Node(t).Has(nnf) {
			return true
		}
	}
	return false
}

// distinctSuccessorsWithFiller returns every successor via prop that
// currently carries filler in its label (or every successor, if filler is
// nil) — the set the ≥n generative rule and the ≤n merge choice both size
// against.
func (p *proof) distinctSuccessorsWithFiller(id int64, prop term.PropertyExpr, filler *term.ClassExpr) []int64 {
	var nnf *term.ClassExpr
	if filler != nil {
		nnf = term.NNF(filler)
	}
	var out []int64
	for _, t := range p.matchingSuccessors(id, prop) {
		if nnf == nil || p.cg.Node(t).Has(nnf) {
			out = append(out, t)
		}
	}
	return out
}

func (p *proof) hasDataSuccessorWithRange(id int64, prop term.DataPropertyHandle, dr *term.DataRange) bool {
	for _, de := range p.dataSucc[id] {
		if de.prop != prop {
			continue
		}
		if dr == nil {
			return true
		}
		for _, r := range p.cg.Node(de.to).DataRanges {
			if r.Key() == dr.Key() {
				return true
			}
		}
	}
	return false
}

// existsRule is the generative rule family (∃, ≥n, and their data-property
// counterparts). It is deterministic in the sense that it never branches —
// it either finds an existing witness or creates exactly the successors
// needed — but it is also where blocking takes effect: a
// blocked node gets no new successors at all.
func (p *proof) existsRule() bool {
	changed := false
	for _, n := range p.cg.Nodes() {
		for _, e := range labelValues(n) {
			switch e.Kind {
			case term.ExprObjectSomeValuesFrom:
				if p.hasSuccessorWithFiller(n.ID, e.Property, e.Filler) {
					continue
				}
				if p.isBlocked(n.ID) {
					continue
				}
				succ := p.cg.NewNode()
				succ.Parent, succ.HasParent = n.ID, true
				p.addLabel(succ, e.Filler)
				p.cg.AddEdge(n.ID, succ.ID, e.Property)
				changed = true

			case term.ExprObjectMinCardinality:
				if p.isBlocked(n.ID) {
					continue
				}
				for len(p.distinctSuccessorsWithFiller(n.ID, e.Property, e.Filler)) < e.Cardinality {
					succ := p.cg.NewNode()
					succ.Parent, succ.HasParent = n.ID, true
					filler := e.Filler
					if filler == nil {
						filler = term.Top
					}
					p.addLabel(succ, filler)
					p.cg.AddEdge(n.ID, succ.ID, e.Property)
					for _, other := range p.matchingSuccessors(n.ID, e.Property) {
						if other != succ.ID {
							p.cg.Node(other).DiffFrom[succ.ID] = true
							succ.DiffFrom[other] = true
						}
					}
					changed = true
				}

			case term.ExprDataSomeValuesFrom:
				if p.hasDataSuccessorWithRange(n.ID, e.DataProperty, e.DataRange) {
					continue
				}
				if p.isBlocked(n.ID) {
					continue
				}
				dn := p.cg.NewNode()
				dn.IsDataNode = true
				if e.DataRange != nil {
					dn.DataRanges = append(dn.DataRanges, e.DataRange)
				}
				p.dataSucc[n.ID] = append(p.dataSucc[n.ID], dataEdge{to: dn.ID, prop: e.DataProperty})
				changed = true

			case term.ExprDataMinCardinality:
				if p.isBlocked(n.ID) {
					continue
				}
				have := 0
				for _, de := range p.dataSucc[n.ID] {
					if de.prop == e.DataProperty {
						have++
					}
				}
				for have < e.Cardinality {
					dn := p.cg.NewNode()
					dn.IsDataNode = true
					if e.DataRange != nil {
						dn.DataRanges = append(dn.DataRanges, e.DataRange)
					}
					p.dataSucc[n.ID] = append(p.dataSucc[n.ID], dataEdge{to: dn.ID, prop: e.DataProperty})
					have++
					changed = true
				}

			case term.ExprObjectHasValue:
				target := p.nodeFor(e.Value)
				if !p.hasMatchingEdge(n.ID, target.ID, e.Property) {
					p.cg.AddEdge(n.ID, target.ID, e.Property)
					changed = true
				}

			case term.ExprDataHasValue:
				found := false
				for _, de := range p.dataSucc[n.ID] {
					if de.prop == e.DataProperty && p.cg.Node(de.to).DataValue != nil && p.cg.Node(de.to).DataValue.Canonical() == e.Literal.Canonical() {
						found = true
						break
					}
				}
				if !found && !p.isBlocked(n.ID) {
					dn := p.cg.NewNode()
					dn.IsDataNode = true
					val := e.Literal
					dn.DataValue = &val
					p.dataSucc[n.ID] = append(p.dataSucc[n.ID], dataEdge{to: dn.ID, prop: e.DataProperty})
					changed = true
				}
			}
		}
	}
	return changed
}

// keyRule is a best-effort, non-branching approximation of HasKey
// semantics: two nominal nodes of the keyed class whose key
// property values agree are forced same-as. Full key reasoning would also
// consider values reachable only after further expansion; this only looks
// at values already present.
func (p *proof) keyRule() bool {
	changed := false
	for _, a := range p.ont.Axioms() {
		hk, ok := a.(*store.HasKeyAxiom)
		if !ok || (len(hk.ObjectProps) == 0 && len(hk.DataProps) == 0) {
			continue
		}
		var candidates []int64
		nnfClass := term.NNF(hk.Class)
		for _, n := range p.cg.Nodes() {
			if n.IsNominal && n.Has(nnfClass) {
				candidates = append(candidates, n.ID)
			}
		}
		for i := 0; i < len(candidates); i++ {
			for j := i + 1; j < len(candidates); j++ {
				x, y := candidates[i], candidates[j]
				if p.cg.Node(x).SameAs[y] {
					continue
				}
				if !p.keyValuesAgree(x, y, hk) {
					continue
				}
				p.cg.Node(x).SameAs[y] = true
				p.cg.Node(y).SameAs[x] = true
				changed = true
			}
		}
	}
	return changed
}

func (p *proof) keyValuesAgree(a, b int64, hk *store.HasKeyAxiom) bool {
	for _, op := range hk.ObjectProps {
		as := p.matchingSuccessors(a, op)
		bs := p.matchingSuccessors(b, op)
		if len(as) == 0 || len(bs) == 0 {
			continue
		}
		if as[0] != bs[0] && !p.cg.Node(as[0]).SameAs[bs[0]] {
			return false
		}
	}
	for _, dp := range hk.DataProps {
		av := p.dataValueFor(a, dp)
		bv := p.dataValueFor(b, dp)
		if av == nil || bv == nil {
			continue
		}
		// Datatypes need not match: a differing-datatype pair with an equal
		// canonical value still agrees. This is looser than Literal.Equal,
		// which also requires equal datatypes.
		if av.Canonical() != bv.Canonical() {
			return false
		}
	}
	return true
}

func (p *proof) dataValueFor(id int64, prop term.DataPropertyHandle) *term.Literal {
	for _, de := range p.dataSucc[id] {
		if de.prop == prop {
			return p.cg.Node(de.to).DataValue
		}
	}
	return nil
}
