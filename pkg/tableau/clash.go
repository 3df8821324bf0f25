package tableau

import "github.com/sroiqd/reasoner/pkg/term"

// clash implements the tableau's clash predicate. It is checked after every
// rule application; the first clash found aborts the current branch.
type clash struct {
	reason string
	nodeID int64
}

func (c *clash) Error() string { return c.reason }

// checkClashes scans every node for clash conditions, including the
// same-as/different-from conflicts that mergeNodes and keyRule can leave
// behind. A ≤n restriction that no merge can satisfy reaches it as
// owl:Nothing, which tryAtMostRule adds to the node.
func (p *proof) checkClashes() *clash {
	for _, n := range p.cg.Nodes() {
		if c := p.checkNodeClash(n); c != nil {
			return c
		}
		for other := range n.SameAs {
			if n.DiffFrom[other] {
				return &clash{reason: "node is both same-as and different-from another node", nodeID: n.ID}
			}
		}
	}
	if c := p.checkDataClashes(); c != nil {
		return c
	}
	if c := p.checkAssertionClashes(); c != nil {
		return c
	}
	return nil
}

func (p *proof) checkNodeClash(n *Node) *clash {
	if _, ok := n.Label[term.Bottom.Key()]; ok {
		return &clash{reason: "owl:Nothing in label", nodeID: n.ID}
	}
	var atomic []term.ClassHandle
	for _, e := range n.Label {
		if e.Kind != term.ExprClass {
			continue
		}
		atomic = append(atomic, e.Class)
		negKey := term.ObjectComplementOf(term.NamedClass(e.Class)).Key()
		if _, ok := n.Label[negKey]; ok {
			return &clash{reason: "atomic class and its negation both in label", nodeID: n.ID}
		}
	}
	for i := 0; i < len(atomic); i++ {
		for j := i + 1; j < len(atomic); j++ {
			if p.ont.AreDisjoint(atomic[i], atomic[j]) {
				return &clash{reason: "two pairwise-disjoint classes both in label", nodeID: n.ID}
			}
		}
	}
	return nil
}

// checkDataClashes runs the datatype oracle over every data node's
// accumulated ranges.
func (p *proof) checkDataClashes() *clash {
	var oracle datatypeOracle
	for _, n := range p.cg.Nodes() {
		if !n.IsDataNode {
			continue
		}
		if !oracle.Check(n.DataRanges, n.DataValue) {
			return &clash{reason: "datatype range constraints are unsatisfiable", nodeID: n.ID}
		}
	}
	return nil
}

// checkAssertionClashes implements the "a negative assertion holds
// together with its positive form" clash: an object/data-property
// assertion and its negative counterpart both present on the same
// (subject, property, object/value) triple.
func (p *proof) checkAssertionClashes() *clash {
	for _, a := range p.negObjectAssertions {
		for _, e := range p.cg.succ[a.subj] {
			if e.To == a.obj && e.Property.Equal(a.prop) {
				return &clash{reason: "object property assertion contradicts a negative assertion", nodeID: a.subj}
			}
		}
	}
	for _, a := range p.negDataAssertions {
		for _, de := range p.dataSucc[a.subj] {
			if de.prop != a.prop {
				continue
			}
			v := p.cg.Node(de.to).DataValue
			if v != nil && v.Datatype == a.val.Datatype && v.Canonical() == a.val.Canonical() {
				return &clash{reason: "data property assertion contradicts a negative assertion", nodeID: a.subj}
			}
		}
	}
	return nil
}
