// Package reasoner implements the Reasoning Façade: the public
// entry point consumers such as the CLI go through.
// Every operation is expressed as a satisfiability query over a suitably
// constructed class expression, consults the Cache Tier first, and maps
// internal errors onto the public ReasonError taxonomy at the boundary.
package reasoner

import (
	"context"
	"fmt"

	"github.com/sroiqd/reasoner/pkg/cache"
	"github.com/sroiqd/reasoner/pkg/profile"
	"github.com/sroiqd/reasoner/pkg/store"
	"github.com/sroiqd/reasoner/pkg/tableau"
	"github.com/sroiqd/reasoner/pkg/term"
)

// Reasoner wires an Ontology, a Prover, and a cache.Manager together behind
// the façade operations below.
type Reasoner struct {
	ont     *store.Ontology
	prove   *tableau.Prover
	cache   *cache.Manager
	checker *profile.Checker

	// useAdvanced forces the full SROIQ tableau even when the ontology
	// classifies as EL or RL.
	useAdvanced bool
}

// New builds a Reasoner over ont. cfg bounds the prover; hotCapacity and
// lruCapacity size each of the four result-cache tiers.
// useAdvanced disables the EL/RL fast-path dispatch below, forcing every
// query through the general tableau.
func New(ont *store.Ontology, cfg tableau.Config, hotCapacity, lruCapacity int, useAdvanced bool) (*Reasoner, error) {
	mgr, err := cache.NewManager(ont, hotCapacity, lruCapacity)
	if err != nil {
		return nil, fmt.Errorf("reasoner: %w", err)
	}
	return &Reasoner{
		ont:         ont,
		prove:       tableau.New(cfg),
		cache:       mgr,
		checker:     profile.NewChecker(ont, profile.NewHeuristicGuesser()),
		useAdvanced: useAdvanced,
	}, nil
}

// Cache exposes the underlying cache.Manager so the Memory Guard can shrink
// or clear it under memory pressure without the façade needing its own
// shrink/clear wrappers.
func (r *Reasoner) Cache() *cache.Manager { return r.cache }

// satisfiable runs the prover, mapping any error to the public ReasonError
// taxonomy. Every façade operation below bottoms out here.
func (r *Reasoner) satisfiable(ctx context.Context, c *term.ClassExpr) (bool, error) {
	ok, err := r.prove.Satisfiable(ctx, r.ont, c)
	if err != nil {
		return false, mapProverError(err)
	}
	return ok, nil
}

func (r *Reasoner) cached(k cache.Kind, key string, compute func() (bool, error)) (bool, error) {
	if v, ok := r.cache.Get(k, key); ok {
		if b, ok := v.(bool); ok {
			return b, nil
		}
	}
	ok, err := compute()
	if err != nil {
		return false, err
	}
	r.cache.Put(k, key, ok)
	return ok, nil
}

// IsConsistent decides whether the ontology's ABox and TBox together admit
// a model: equivalent to asking whether Top is satisfiable with
// the full ABox seeded in, since the prover always seeds assertions. An
// RL-classified ontology is answered by the forward-chaining fast path
// instead of the tableau, unless useAdvanced forces the tableau.
func (r *Reasoner) IsConsistent(ctx context.Context) (bool, error) {
	return r.cached(cache.Consistency, "consistency", func() (bool, error) {
		if !r.useAdvanced && r.checker.Classify() == profile.RL {
			return profile.RLConsistent(r.ont), nil
		}
		return r.satisfiable(ctx, term.Top)
	})
}

// IsClassSatisfiable decides whether c can have an instance without
// contradicting the ontology. A named class under an
// EL-classified ontology is answered by the completion-rule fast path
// instead of the tableau, unless useAdvanced forces the
// tableau.
func (r *Reasoner) IsClassSatisfiable(ctx context.Context, c *term.ClassExpr) (bool, error) {
	key := c.Key()
	return r.cached(cache.Satisfiability, key, func() (bool, error) {
		if !r.useAdvanced && c.Kind == term.ExprClass && r.checker.Classify() == profile.EL {
			return profile.ELSatisfiable(r.ont, c.Class), nil
		}
		return r.satisfiable(ctx, c)
	})
}

// IsSubclassOf decides whether every instance of sub is necessarily an
// instance of super: sub ⊓ ¬super must be unsatisfiable.
func (r *Reasoner) IsSubclassOf(ctx context.Context, sub, super *term.ClassExpr) (bool, error) {
	key := "sub:" + sub.Key() + "<" + super.Key()
	return r.cached(cache.Subsumption, key, func() (bool, error) {
		expr := term.ObjectIntersectionOf(sub, term.ObjectComplementOf(super))
		unsat, err := r.satisfiable(ctx, expr)
		if err != nil {
			return false, err
		}
		return !unsat, nil
	})
}

// AreEquivalentClasses decides whether a and b denote the same extension in
// every model: subclass holds in both directions.
func (r *Reasoner) AreEquivalentClasses(ctx context.Context, a, b *term.ClassExpr) (bool, error) {
	aSubB, err := r.IsSubclassOf(ctx, a, b)
	if err != nil {
		return false, err
	}
	if !aSubB {
		return false, nil
	}
	return r.IsSubclassOf(ctx, b, a)
}

// IsInstanceOf decides whether individual necessarily belongs to c: asserting
// ¬c of individual and checking for inconsistency.
func (r *Reasoner) IsInstanceOf(ctx context.Context, individual term.Individual, c *term.ClassExpr) (bool, error) {
	key := "inst:" + individualKey(individual) + "<" + c.Key()
	return r.cached(cache.Instance, key, func() (bool, error) {
		notC := term.ObjectComplementOf(c)
		assertion := term.ObjectOneOf(individual)
		expr := term.ObjectIntersectionOf(assertion, notC)
		unsat, err := r.satisfiable(ctx, expr)
		if err != nil {
			return false, err
		}
		return !unsat, nil
	})
}

func individualKey(i term.Individual) string {
	if i.Anonymous {
		return fmt.Sprintf("anon:%d", i.Anon)
	}
	return fmt.Sprintf("named:%d", i.Named)
}
