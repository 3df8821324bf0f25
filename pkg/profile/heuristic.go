package profile

import (
	"fmt"
	"sync"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/trees"

	"github.com/sroiqd/reasoner/pkg/store"
)

// trainingRow is one synthetic labeled example the decision tree learns
// from: axiom-shape feature counts paired with the profile they came from.
// These rows are small hand-built archetypes of each profile's axiom
// shape, not mined from a corpus — this is a fast, cheap pre-classifier
// hint, not a certified classifier, so a handful of representative points
// per class is enough to shape the splits.
type trainingRow struct {
	counts  [5]float64 // unions, complements, cardinality>1, universals, inverses
	profile Profile
}

func trainingSet() []trainingRow {
	return []trainingRow{
		{counts: [5]float64{0, 0, 0, 0, 0}, profile: EL},
		{counts: [5]float64{0, 0, 0, 0, 0}, profile: EL},
		{counts: [5]float64{1, 0, 0, 0, 0}, profile: EL},
		{counts: [5]float64{0, 0, 0, 0, 0}, profile: QL},
		{counts: [5]float64{0, 0, 0, 1, 0}, profile: RL},
		{counts: [5]float64{2, 0, 0, 1, 0}, profile: RL},
		{counts: [5]float64{0, 1, 0, 0, 0}, profile: DL},
		{counts: [5]float64{0, 0, 1, 0, 0}, profile: DL},
		{counts: [5]float64{1, 1, 1, 1, 1}, profile: DL},
	}
}

const featureCount = 5

// HeuristicGuesser wraps a golearn ID3 decision tree trained once, offline,
// on trainingSet's small hand-built archetypes. Its guess is never authoritative — Checker.Classify always
// additionally runs the structural classifier in this package and returns
// that result — because a handful of hand-built training rows cannot
// certify real profile membership; the tree only gives a fast hint of
// which specialised routine is likely to apply, useful for future
// telemetry or pre-fetch decisions without gating correctness on it.
type HeuristicGuesser struct {
	mu   sync.Mutex
	tree *trees.ID3DecisionTree
	fit  bool
}

// NewHeuristicGuesser builds (but does not yet fit) a guesser.
func NewHeuristicGuesser() *HeuristicGuesser {
	return &HeuristicGuesser{tree: trees.NewID3DecisionTree(0.6)}
}

func buildInstances(rows []trainingRow) (base.FixedDataGrid, []base.AttributeSpec, *base.CategoricalAttribute, error) {
	attrs := make([]base.Attribute, 0, featureCount+1)
	names := []string{"unions", "complements", "cardinality", "universals", "inverses"}
	for _, n := range names {
		attrs = append(attrs, base.NewFloatAttribute(n))
	}
	classAttr := new(base.CategoricalAttribute)
	classAttr.SetName("profile")
	attrs = append(attrs, classAttr)

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.AddClassAttribute(classAttr); err != nil {
		return nil, nil, nil, fmt.Errorf("profile: failed to register class attribute: %w", err)
	}
	if err := inst.Extend(len(rows)); err != nil {
		return nil, nil, nil, fmt.Errorf("profile: allocating training instances: %w", err)
	}
	for i, row := range rows {
		for j := 0; j < featureCount; j++ {
			inst.Set(specs[j], i, base.PackFloatToBytes(row.counts[j]))
		}
		inst.Set(specs[featureCount], i, classAttr.GetSysValFromString(row.profile.String()))
	}
	return inst, specs, classAttr, nil
}

func (g *HeuristicGuesser) ensureFit() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fit {
		return nil
	}
	inst, _, _, err := buildInstances(trainingSet())
	if err != nil {
		return err
	}
	if err := g.tree.Fit(inst); err != nil {
		return fmt.Errorf("profile: fitting heuristic tree: %w", err)
	}
	g.fit = true
	return nil
}

// Guess predicts ont's profile from its axiom-shape feature counts, without
// running the (authoritative) structural classifier. Any error here — an
// untrained or malformed tree — is non-fatal to the caller; Checker.Classify
// ignores it and falls through to the structural result.
func (g *HeuristicGuesser) Guess(ont *store.Ontology) (Profile, error) {
	if err := g.ensureFit(); err != nil {
		return DL, err
	}
	counts := computeShapeCounts(ont)
	row := trainingRow{counts: [5]float64{
		float64(counts.unions),
		float64(counts.generalComplements),
		float64(counts.cardinalityAboveOne),
		float64(counts.universalRestrictions),
		float64(counts.inverseProperties),
	}}
	inst, specs, classAttr, err := buildInstances([]trainingRow{row})
	if err != nil {
		return DL, err
	}
	predicted, err := g.tree.Predict(inst)
	if err != nil {
		return DL, fmt.Errorf("profile: predicting heuristic guess: %w", err)
	}
	label := base.GetClass(predicted, 0)
	_ = specs
	_ = classAttr
	return profileFromString(label), nil
}

func profileFromString(s string) Profile {
	switch s {
	case "EL":
		return EL
	case "QL":
		return QL
	case "RL":
		return RL
	default:
		return DL
	}
}
