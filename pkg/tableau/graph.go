// Package tableau implements the SROIQ(D) tableau prover: a
// completion-graph expansion engine that decides satisfiability of a class
// expression against an ontology's axioms.
package tableau

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/sroiqd/reasoner/pkg/term"
)

// roleEdge is the custom graph.Line implementation backing the completion
// graph's role edges. Parallel edges between the same two nodes —
// one per asserted/derived property — are exactly what a multigraph's
// distinct line IDs are for.
type roleEdge struct {
	F, T     graph.Node
	UID      int64
	Property term.PropertyExpr
}

func (e roleEdge) From() graph.Node { return e.F }
func (e roleEdge) To() graph.Node   { return e.T }
func (e roleEdge) ID() int64        { return e.UID }
func (e roleEdge) ReversedEdge() graph.Edge {
	return roleEdge{F: e.T, T: e.F, UID: e.UID, Property: e.Property.Invert()}
}
func (e roleEdge) ReversedLine() graph.Line {
	return roleEdge{F: e.T, T: e.F, UID: e.UID, Property: e.Property.Invert()}
}

type simpleNode int64

func (n simpleNode) ID() int64 { return int64(n) }

// Node is one completion-graph node: a label (set of class expressions in
// NNF), same-as/different-from annotations, and the nominal/blocking flags
// the expansion rules and blocking check consult.
type Node struct {
	ID int64

	// Label holds each class expression currently asserted at this node,
	// keyed by its Key() for O(1) membership tests.
	Label map[string]*term.ClassExpr

	IsNominal bool
	Nominal   term.Individual

	SameAs   map[int64]bool
	DiffFrom map[int64]bool

	Blocked   bool
	BlockedBy int64

	// Parent is the node whose ∃/≥n rule created this node; HasParent is
	// false for the root and for nominal nodes. Blocking follows it to find
	// a node's ancestors.
	Parent     int64
	HasParent  bool

	IsDataNode bool
	DataRanges []*term.DataRange
	DataValue  *term.Literal
}

func newNode(id int64) *Node {
	return &Node{
		ID:       id,
		Label:    make(map[string]*term.ClassExpr),
		SameAs:   make(map[int64]bool),
		DiffFrom: make(map[int64]bool),
	}
}

func (n *Node) clone() *Node {
	c := &Node{
		ID:         n.ID,
		Label:      make(map[string]*term.ClassExpr, len(n.Label)),
		SameAs:     make(map[int64]bool, len(n.SameAs)),
		DiffFrom:   make(map[int64]bool, len(n.DiffFrom)),
		IsNominal:  n.IsNominal,
		Nominal:    n.Nominal,
		Blocked:    n.Blocked,
		BlockedBy:  n.BlockedBy,
		Parent:     n.Parent,
		HasParent:  n.HasParent,
		IsDataNode: n.IsDataNode,
		DataValue:  n.DataValue,
	}
	for k, v := range n.Label {
		c.Label[k] = v
	}
	for k, v := range n.SameAs {
		c.SameAs[k] = v
	}
	for k, v := range n.DiffFrom {
		c.DiffFrom[k] = v
	}
	c.DataRanges = append(c.DataRanges, n.DataRanges...)
	return c
}

// Has reports whether e (by structural Key) is already in the node's
// label.
func (n *Node) Has(e *term.ClassExpr) bool {
	_, ok := n.Label[e.Key()]
	return ok
}

// Add inserts e into the label, returning true if it was not already
// present (the expansion loop uses this to detect a fixed point).
func (n *Node) Add(e *term.ClassExpr) bool {
	k := e.Key()
	if _, ok := n.Label[k]; ok {
		return false
	}
	n.Label[k] = e
	return true
}

// CompletionGraph is the tableau's working structure: a
// gonum multigraph of stable integer node IDs backs the topology (the
// "arena with stable integer ids" design note), while Node/Edge metadata
// lives in Go maps alongside it for fast label/characteristic lookups that
// a generic graph API cannot express directly.
type CompletionGraph struct {
	g *multi.DirectedGraph

	nextNode int64
	nextLine int64

	nodes map[int64]*Node
	succ  map[int64][]*Edge
	pred  map[int64][]*Edge
}

// Edge is one role edge (x, R, y) in the completion graph.
type Edge struct {
	ID       int64
	From, To int64
	Property term.PropertyExpr
}

func NewCompletionGraph() *CompletionGraph {
	return &CompletionGraph{
		g:     multi.NewDirectedGraph(),
		nodes: make(map[int64]*Node),
		succ:  make(map[int64][]*Edge),
		pred:  make(map[int64][]*Edge),
	}
}

// NewNode allocates a fresh node, registers it with the backing multigraph,
// and returns it.
func (cg *CompletionGraph) NewNode() *Node {
	id := cg.nextNode
	cg.nextNode++
	n := newNode(id)
	cg.nodes[id] = n
	cg.g.AddNode(simpleNode(id))
	return n
}

func (cg *CompletionGraph) Node(id int64) *Node { return cg.nodes[id] }

// Nodes returns every live node sorted by ID, giving rule application a
// stable, reproducible order across runs.
func (cg *CompletionGraph) Nodes() []*Node {
	out := make([]*Node, 0, len(cg.nodes))
	for _, n := range cg.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddEdge inserts a role edge (from, p, to), registering it with the
// backing multigraph and the succ/pred indices.
func (cg *CompletionGraph) AddEdge(from, to int64, p term.PropertyExpr) *Edge {
	id := cg.nextLine
	cg.nextLine++
	cg.g.SetLine(roleEdge{F: simpleNode(from), T: simpleNode(to), UID: id, Property: p})
	e := &Edge{ID: id, From: from, To: to, Property: p}
	cg.succ[from] = append(cg.succ[from], e)
	cg.pred[to] = append(cg.pred[to], e)
	return e
}

// Successors returns every outgoing edge from id.
func (cg *CompletionGraph) Successors(id int64) []*Edge { return cg.succ[id] }

// Predecessors returns every incoming edge to id.
func (cg *CompletionGraph) Predecessors(id int64) []*Edge { return cg.pred[id] }

// SuccessorsVia returns the outgoing edges from id whose property matches p
// exactly (named handle and direction).
func (cg *CompletionGraph) SuccessorsVia(id int64, p term.PropertyExpr) []*Edge {
	var out []*Edge
	for _, e := range cg.succ[id] {
		if e.Property.Equal(p) {
			out = append(out, e)
		}
	}
	return out
}

// HasEdge reports whether the backing graph has a line from->to, regardless
// of property.
func (cg *CompletionGraph) HasEdge(from, to int64) bool {
	return cg.g.HasEdgeFromTo(from, to)
}

// Clone deep-copies the completion graph for choice-point snapshotting
//.
// A full persistent/copy-on-write structure is the textbook design; this
// implementation snapshots by value copy, which is simpler and sufficient
// at the node counts a configured resource limit permits.
func (cg *CompletionGraph) Clone() *CompletionGraph {
	out := NewCompletionGraph()
	out.nextNode = cg.nextNode
	out.nextLine = cg.nextLine
	for id, n := range cg.nodes {
		out.nodes[id] = n.clone()
		out.g.AddNode(simpleNode(id))
	}
	for from, edges := range cg.succ {
		for _, e := range edges {
			ec := &Edge{ID: e.ID, From: e.From, To: e.To, Property: e.Property}
			out.succ[from] = append(out.succ[from], ec)
			out.pred[e.To] = append(out.pred[e.To], ec)
			out.g.SetLine(roleEdge{F: simpleNode(e.From), T: simpleNode(e.To), UID: e.ID, Property: e.Property})
		}
	}
	return out
}

// NodeCount reports the number of live nodes, for the resource-limit check
// against Config.MaxNodes.
func (cg *CompletionGraph) NodeCount() int { return len(cg.nodes) }
