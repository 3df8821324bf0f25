package tableau

import (
	"context"
	"fmt"
	"time"

	"github.com/sroiqd/reasoner/pkg/store"
	"github.com/sroiqd/reasoner/pkg/term"
)

// Config bounds prover resource usage.
type Config struct {
	MaxNodes        int
	QueryTimeout    time.Duration
	BlockingStrategy BlockingStrategy
}

// DefaultConfig matches the conservative defaults a correctness-first
// reasoning core starts from absent any override.
func DefaultConfig() Config {
	return Config{MaxNodes: 50_000, QueryTimeout: 30 * time.Second, BlockingStrategy: BlockEquality}
}

// Prover decides satisfiability of a class expression against an ontology
// via tableau expansion.
type Prover struct {
	cfg Config
}

func New(cfg Config) *Prover {
	d := DefaultConfig()
	if cfg.MaxNodes <= 0 {
		cfg.MaxNodes = d.MaxNodes
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = d.QueryTimeout
	}
	if cfg.BlockingStrategy == 0 {
		cfg.BlockingStrategy = d.BlockingStrategy
	}
	return &Prover{cfg: cfg}
}

type dataEdge struct {
	to   int64
	prop term.DataPropertyHandle
}

type negAssertion struct {
	subj, obj int64
	prop      term.PropertyExpr
}

type negDataAssertion struct {
	subj int64
	prop term.DataPropertyHandle
	val  term.Literal
}

// proof is one (possibly backtracked-through) run of the tableau over a
// fixed ontology, deciding satisfiability of the class expression seeded
// into its root node.
type proof struct {
	cfg Config
	ont *store.Ontology
	cg  *CompletionGraph

	individualNode map[string]int64
	dataSucc       map[int64][]dataEdge

	// gcis holds every general concept inclusion derived from the
	// ontology's TBox (SubClassOf and EquivalentClasses axioms), each
	// already rewritten to ¬Sub ⊔ Super and reduced to NNF. seedTBox
	// computes this once per proof; tboxRule then asserts every entry on
	// every node, the standard way a tableau internalizes global axioms.
	gcis []*term.ClassExpr

	negObjectAssertions []negAssertion
	negDataAssertions   []negDataAssertion

	choiceStack []*choicePoint

	// oneOfResolved records the (nodeID, exprKey) nominal choices already
	// resolved, so applyNonDeterministicRule doesn't re-offer a choice
	// resolved by an earlier branch.
	oneOfResolved map[string]bool
}

func newProof(cfg Config, ont *store.Ontology) *proof {
	return &proof{
		cfg:            cfg,
		ont:            ont,
		cg:             NewCompletionGraph(),
		individualNode: make(map[string]int64),
		dataSucc:       make(map[int64][]dataEdge),
		oneOfResolved:  make(map[string]bool),
	}
}

func individualKey(i term.Individual) string {
	if i.Anonymous {
		return fmt.Sprintf("anon:%d", i.Anon)
	}
	return fmt.Sprintf("named:%d", i.Named)
}

func (p *proof) nodeFor(i term.Individual) *Node {
	k := individualKey(i)
	if id, ok := p.individualNode[k]; ok {
		return p.cg.Node(id)
	}
	n := p.cg.NewNode()
	n.IsNominal = true
	n.Nominal = i
	p.individualNode[k] = n.ID
	return n
}

func (p *proof) addLabel(n *Node, e *term.ClassExpr) bool {
	if e == nil {
		return false
	}
	return n.Add(term.NNF(e))
}

// seedTBox precomputes the GCI form of every SubClassOf and
// EquivalentClasses axiom in the ontology, so tboxRule only has to walk a
// flat slice rather than re-scanning the axiom list on every pass.
func (p *proof) seedTBox() {
	for _, a := range p.ont.Axioms() {
		switch v := a.(type) {
		case *store.SubClassOfAxiom:
			p.gcis = append(p.gcis, term.NNF(term.ObjectUnionOf(term.ObjectComplementOf(v.Sub), v.Super)))
		case *store.EquivalentClassesAxiom:
			for i, ci := range v.Classes {
				for j, cj := range v.Classes {
					if i == j {
						continue
					}
					p.gcis = append(p.gcis, term.NNF(term.ObjectUnionOf(term.ObjectComplementOf(ci), cj)))
				}
			}
		}
	}
}

// seedABox populates the completion graph with one nominal node per
// individual the ontology's ABox mentions, and the edges/labels/negative
// facts its assertions carry.
func (p *proof) seedABox() {
	for _, a := range p.ont.Axioms() {
		switch v := a.(type) {
		case *store.ClassAssertionAxiom:
			n := p.nodeFor(v.Individual)
			p.addLabel(n, v.Class)
		case *store.ObjectPropertyAssertionAxiom:
			s := p.nodeFor(v.Subject)
			o := p.nodeFor(v.Object)
			p.cg.AddEdge(s.ID, o.ID, v.Property)
		case *store.NegativeObjectPropertyAssertionAxiom:
			s := p.nodeFor(v.Subject)
			o := p.nodeFor(v.Object)
			p.negObjectAssertions = append(p.negObjectAssertions, negAssertion{subj: s.ID, obj: o.ID, prop: v.Property})
		case *store.DataPropertyAssertionAxiom:
			s := p.nodeFor(v.Subject)
			d := p.cg.NewNode()
			d.IsDataNode = true
			val := v.Value
			d.DataValue = &val
			p.dataSucc[s.ID] = append(p.dataSucc[s.ID], dataEdge{to: d.ID, prop: v.Property})
		case *store.NegativeDataPropertyAssertionAxiom:
			s := p.nodeFor(v.Subject)
			p.negDataAssertions = append(p.negDataAssertions, negDataAssertion{subj: s.ID, prop: v.Property, val: v.Value})
		case *store.SameIndividualAxiom:
			ids := make([]int64, len(v.Individuals))
			for i, ind := range v.Individuals {
				ids[i] = p.nodeFor(ind).ID
			}
			for i := range ids {
				for j := range ids {
					if i != j {
						p.cg.Node(ids[i]).SameAs[ids[j]] = true
					}
				}
			}
		case *store.DifferentIndividualsAxiom:
			ids := make([]int64, len(v.Individuals))
			for i, ind := range v.Individuals {
				ids[i] = p.nodeFor(ind).ID
			}
			for i := range ids {
				for j := range ids {
					if i != j {
						p.cg.Node(ids[i]).DiffFrom[ids[j]] = true
					}
				}
			}
		}
	}
}

// run drives the expansion loop to completion: apply
// deterministic rules to a local fixpoint, then try one non-deterministic
// alternative, backtracking on clash until no choice points remain.
func (p *proof) run(ctx context.Context) (bool, error) {
	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return false, &Timeout{}
			}
			return false, ctx.Err()
		default:
		}
		if p.cg.NodeCount() > p.cfg.MaxNodes {
			return false, &ResourceExhausted{Limit: p.cfg.MaxNodes}
		}

		for p.applyDeterministicRules() {
			if p.cg.NodeCount() > p.cfg.MaxNodes {
				return false, &ResourceExhausted{Limit: p.cfg.MaxNodes}
			}
		}
		if c := p.checkClashes(); c != nil {
			if !p.backtrack() {
				return false, nil
			}
			continue
		}

		applied, err := p.applyNonDeterministicRule()
		if err != nil {
			return false, err
		}
		if !applied {
			return true, nil
		}
		if c := p.checkClashes(); c != nil {
			if !p.backtrack() {
				return false, nil
			}
			continue
		}
	}
}

// Satisfiable decides whether c is satisfiable with respect to ont — the
// prover's sole responsibility. Consistency, subsumption, and instance
// checking are all expressed by the caller as a satisfiability query over a
// suitably constructed c.
func (pr *Prover) Satisfiable(ctx context.Context, ont *store.Ontology, c *term.ClassExpr) (bool, error) {
	if pr.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pr.cfg.QueryTimeout)
		defer cancel()
	}
	p := newProof(pr.cfg, ont)
	root := p.cg.NewNode()
	p.addLabel(root, c)
	p.seedTBox()
	p.seedABox()
	return p.run(ctx)
}
