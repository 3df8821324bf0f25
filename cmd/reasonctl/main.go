// reasonctl is a small command-line entry point exercising the reasoning
// façade end to end: it loads a config, builds a tiny built-in ontology,
// and runs is_consistent/classify against it. Struct-based service,
// --version flag, signal-driven shutdown, generalized from a queue-driven
// worker loop to a one-shot CLI since reasonctl has no external queue to
// drain.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sroiqd/reasoner/pkg/canon"
	"github.com/sroiqd/reasoner/pkg/config"
	"github.com/sroiqd/reasoner/pkg/memguard"
	"github.com/sroiqd/reasoner/pkg/reasoner"
	"github.com/sroiqd/reasoner/pkg/store"
	"github.com/sroiqd/reasoner/pkg/tableau"
	"github.com/sroiqd/reasoner/pkg/term"
)

const reasonctlVersion = "v0.1.0"

// Service wires a loaded Config into a running Reasoner and Memory Guard:
// New*, Start, Stop.
type Service struct {
	cfg    *config.Config
	ont    *store.Ontology
	reason *reasoner.Reasoner
	guard  *memguard.Guard
	canon  *canon.Canonicalizer

	ctx    context.Context
	cancel context.CancelFunc
}

// NewService loads cfg from path (empty for defaults-plus-env only) and
// builds a tiny built-in ontology to exercise the façade against.
func NewService(path string) (*Service, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("reasonctl: %w", err)
	}

	ont := builtinOntology()

	r, err := reasoner.New(ont, proverConfig(cfg), cfg.Cache.HotCapacity, cfg.Cache.LRUCapacity, cfg.UseAdvancedReasoning)
	if err != nil {
		return nil, fmt.Errorf("reasonctl: building reasoner: %w", err)
	}

	guard := memguard.New(memguard.Config{
		MaxBytes:         cfg.Memory.MaxBytes,
		MaxCacheEntries:  cfg.Memory.MaxCacheEntries,
		CheckIntervalSec: cfg.Memory.CheckIntervalSec,
		WarnThresholdPct: cfg.Memory.WarnThresholdPct,
		FailOnExceeded:   cfg.Memory.FailOnExceeded,
	}, r.Cache())

	canonicalizer := canon.New(canon.Config{
		FastTimeoutMs:     cfg.CanonFastTimeoutMs,
		PermutationBudget: cfg.CanonPermutationBudget,
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{cfg: cfg, ont: ont, reason: r, guard: guard, canon: canonicalizer, ctx: ctx, cancel: cancel}, nil
}

// Start brings the memory guard up and runs the demo queries once.
func (s *Service) Start() error {
	if err := s.guard.Start(); err != nil {
		return fmt.Errorf("reasonctl: starting memory guard: %w", err)
	}
	log.Println("reasonctl: running demo queries against the built-in ontology")
	return s.runDemoQueries()
}

// Stop shuts the memory guard down.
func (s *Service) Stop() {
	s.cancel()
	s.guard.Stop()
}

func proverConfig(cfg *config.Config) tableau.Config {
	return tableau.Config{
		MaxNodes:         cfg.MaxTableauNodes,
		QueryTimeout:     time.Duration(cfg.QueryTimeoutMs) * time.Millisecond,
		BlockingStrategy: blockingStrategyFromString(cfg.BlockingStrategy),
	}
}

func blockingStrategyFromString(s string) tableau.BlockingStrategy {
	switch s {
	case "subset":
		return tableau.BlockSubset
	case "pairwise":
		return tableau.BlockPairwise
	case "equality", "auto":
		return tableau.BlockEquality
	default:
		return tableau.BlockEquality
	}
}

func main() {
	var path string
	flag.StringVar(&path, "config", "", "path to a reasoner config YAML file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("reasonctl version:", reasonctlVersion)
		return
	}

	svc, err := NewService(path)
	if err != nil {
		log.Fatalf("reasonctl: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	doneChan := make(chan error, 1)
	go func() {
		doneChan <- svc.Start()
	}()

	select {
	case <-sigChan:
		log.Println("reasonctl: received shutdown signal")
	case err := <-doneChan:
		if err != nil {
			svc.Stop()
			log.Fatalf("reasonctl: %v", err)
		}
	}

	svc.Stop()
	log.Println("reasonctl: stopped")
}

// builtinOntology is the tiny fixed ontology reasonctl demonstrates the
// façade against: Person ⊑ Agent, Student ⊑ Person, with Alice asserted a
// Student.
func builtinOntology() *store.Ontology {
	ont := store.New()
	agent, _ := ont.DeclareClass("urn:reasonctl#Agent")
	person, _ := ont.DeclareClass("urn:reasonctl#Person")
	studentC, _ := ont.DeclareClass("urn:reasonctl#Student")
	alice, _ := ont.DeclareIndividual("urn:reasonctl#Alice")

	_ = ont.AddAxiom(store.SubClassOfAxiom{Sub: term.NamedClass(person), Super: term.NamedClass(agent)})
	_ = ont.AddAxiom(store.SubClassOfAxiom{Sub: term.NamedClass(studentC), Super: term.NamedClass(person)})
	_ = ont.AddAxiom(store.ClassAssertionAxiom{Individual: term.NamedIndividual(alice), Class: term.NamedClass(studentC)})
	return ont
}

func (s *Service) runDemoQueries() error {
	ctx, cancel := context.WithTimeout(s.ctx, time.Duration(s.cfg.QueryTimeoutMs)*time.Millisecond)
	defer cancel()

	consistent, err := s.reason.IsConsistent(ctx)
	if err != nil {
		return fmt.Errorf("is_consistent: %w", err)
	}
	log.Printf("is_consistent: %v", consistent)

	h, err := s.reason.Classify(ctx)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	for _, n := range h.Nodes {
		log.Printf("classify: class=%d parents=%v", n.Class, n.Parents)
	}

	result, err := s.canon.Hash(ctx, demoTriples())
	if err != nil {
		return fmt.Errorf("canon: %w", err)
	}
	log.Printf("canon: hash=%x fastPathOnly=%v nodes=%d", result.Hash, result.FastPathOnly, result.Stats.BlankNodeCount)
	return nil
}

// demoTriples is a tiny fixed RDF graph (one blank node, two statements)
// reasonctl hashes to demonstrate the canonicalizer alongside the façade.
func demoTriples() []canon.Triple {
	blank := canon.Term{Kind: canon.BlankNode, Value: "b0"}
	alice := canon.Term{Kind: canon.IRI, Value: "urn:reasonctl#Alice"}
	knows := canon.Term{Kind: canon.IRI, Value: "urn:reasonctl#knows"}
	name := canon.Term{Kind: canon.IRI, Value: "urn:reasonctl#name"}
	lit := canon.Term{Kind: canon.Literal, Value: "anonymous friend"}
	return []canon.Triple{
		{Subject: alice, Predicate: knows, Object: blank},
		{Subject: blank, Predicate: name, Object: lit},
	}
}
