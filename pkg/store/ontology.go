// Package store implements the authoritative, in-memory Ontology container:
// entities, axioms, and the derived indices the reasoner relies on for fast
// lookups.
package store

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/sroiqd/reasoner/pkg/interner"
	"github.com/sroiqd/reasoner/pkg/term"
)

// Ontology is the authoritative, thread-safe container for entities and
// axioms of one ontology. Reasoning queries are readers; add_axiom/merge
// are writers. Any write bumps Version, which the Cache Tier uses
// to treat stale entries as misses.
type Ontology struct {
	mu sync.RWMutex

	ID       string
	Interner *interner.Interner
	Pool     *term.Pool

	classes         map[term.ClassHandle]*Class
	objectProps     map[term.ObjectPropertyHandle]*ObjectProperty
	dataProps       map[term.DataPropertyHandle]*DataProperty
	annotationProps map[term.AnnotationPropertyHandle]*AnnotationProperty
	individuals     map[term.IndividualHandle]*NamedIndividual

	axioms []Axiom
	seen   map[string]bool

	idx *indices

	version uint64

	// changeLog is a bounded ring of the most recent insertion events,
	// kept for diagnostics. It is not required for correctness.
	changeLog    []string
	changeLogCap int
}

// New creates an empty Ontology.
func New() *Ontology {
	return &Ontology{
		ID:              uuid.New().String(),
		Interner:        interner.New(0),
		Pool:            term.NewPool(),
		classes:         make(map[term.ClassHandle]*Class),
		objectProps:     make(map[term.ObjectPropertyHandle]*ObjectProperty),
		dataProps:       make(map[term.DataPropertyHandle]*DataProperty),
		annotationProps: make(map[term.AnnotationPropertyHandle]*AnnotationProperty),
		individuals:     make(map[term.IndividualHandle]*NamedIndividual),
		seen:            make(map[string]bool),
		idx:             newIndices(),
		changeLogCap:    256,
	}
}

// Version returns the current monotonic version counter. It increments on
// every AddAxiom that inserts a new axiom and on every successful Merge;
// re-adding an axiom already present leaves it unchanged.
func (o *Ontology) Version() uint64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.version
}

// DeclareClass interns iri and registers (or fetches) the Class entity.
func (o *Ontology) DeclareClass(iri string) (term.ClassHandle, error) {
	h, err := o.Interner.Intern(iri)
	if err != nil {
		return 0, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.checkKindLocked(h, KindClass); err != nil {
		return 0, err
	}
	if _, ok := o.classes[h]; !ok {
		o.classes[h] = &Class{IRI: h}
	}
	return h, nil
}

// DeclareObjectProperty interns iri and registers the ObjectProperty entity.
func (o *Ontology) DeclareObjectProperty(iri string) (term.ObjectPropertyHandle, error) {
	h, err := o.Interner.Intern(iri)
	if err != nil {
		return 0, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.checkKindLocked(h, KindObjectProperty); err != nil {
		return 0, err
	}
	if _, ok := o.objectProps[h]; !ok {
		o.objectProps[h] = &ObjectProperty{IRI: h}
	}
	return h, nil
}

// DeclareDataProperty interns iri and registers the DataProperty entity.
func (o *Ontology) DeclareDataProperty(iri string) (term.DataPropertyHandle, error) {
	h, err := o.Interner.Intern(iri)
	if err != nil {
		return 0, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.checkKindLocked(h, KindDataProperty); err != nil {
		return 0, err
	}
	if _, ok := o.dataProps[h]; !ok {
		o.dataProps[h] = &DataProperty{IRI: h}
	}
	return h, nil
}

// DeclareIndividual interns iri and registers the NamedIndividual entity.
func (o *Ontology) DeclareIndividual(iri string) (term.IndividualHandle, error) {
	h, err := o.Interner.Intern(iri)
	if err != nil {
		return 0, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.checkKindLocked(h, KindNamedIndividual); err != nil {
		return 0, err
	}
	if _, ok := o.individuals[h]; !ok {
		o.individuals[h] = &NamedIndividual{IRI: h}
	}
	return h, nil
}

// entityKindLocked reports the kind an IRI is already known under, if any.
func (o *Ontology) entityKindLocked(h term.IRIHandle) (EntityKind, bool) {
	if _, ok := o.classes[h]; ok {
		return KindClass, true
	}
	if _, ok := o.objectProps[h]; ok {
		return KindObjectProperty, true
	}
	if _, ok := o.dataProps[h]; ok {
		return KindDataProperty, true
	}
	if _, ok := o.annotationProps[h]; ok {
		return KindAnnotationProperty, true
	}
	if _, ok := o.individuals[h]; ok {
		return KindNamedIndividual, true
	}
	return 0, false
}

func (o *Ontology) checkKindLocked(h term.IRIHandle, want EntityKind) error {
	if existing, ok := o.entityKindLocked(h); ok && existing != want {
		lex, _ := o.Interner.Resolve(h)
		return &EntityKindConflict{IRI: lex, Existing: existing, Wanted: want}
	}
	return nil
}

// AddAxiom inserts a, updates all indices, and invalidates caches via the
// version bump. Idempotent: a syntactically identical axiom
// (same Key()) is a no-op. AddAxiom declares no entities: an IRI the axiom
// mentions is registered as a class, property or individual only through
// the Declare methods or Merge.
func (o *Ontology) AddAxiom(a Axiom) error {
	// Validation, the indices and the prover switch on pointer axiom types,
	// so an axiom passed by value is stored as a pointer to a copy.
	if v := reflect.ValueOf(a); v.Kind() == reflect.Struct {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		a = ptr.Interface().(Axiom)
	}
	if err := validateAxiom(a); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	key := a.Key()
	if o.seen[key] {
		return nil
	}

	o.seen[key] = true
	o.axioms = append(o.axioms, a)
	o.idx.index(a)
	o.version++
	o.appendChangeLogLocked(key)
	return nil
}

func (o *Ontology) appendChangeLogLocked(entry string) {
	o.changeLog = append(o.changeLog, entry)
	if len(o.changeLog) > o.changeLogCap {
		o.changeLog = o.changeLog[len(o.changeLog)-o.changeLogCap:]
	}
}

// ChangeLog returns the most recent axiom-insertion keys, newest last. It is
// a diagnostic aid, not part of the reasoning contract.
func (o *Ontology) ChangeLog() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]string, len(o.changeLog))
	copy(out, o.changeLog)
	return out
}

// Classes returns every declared class; order is not guaranteed.
func (o *Ontology) Classes() []*Class {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*Class, 0, len(o.classes))
	for _, c := range o.classes {
		out = append(out, c)
	}
	return out
}

// ObjectProperties returns every declared object property.
func (o *Ontology) ObjectProperties() []*ObjectProperty {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*ObjectProperty, 0, len(o.objectProps))
	for _, p := range o.objectProps {
		out = append(out, p)
	}
	return out
}

// DataProperties returns every declared data property.
func (o *Ontology) DataProperties() []*DataProperty {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*DataProperty, 0, len(o.dataProps))
	for _, p := range o.dataProps {
		out = append(out, p)
	}
	return out
}

// Individuals returns every declared named individual.
func (o *Ontology) Individuals() []*NamedIndividual {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]*NamedIndividual, 0, len(o.individuals))
	for _, i := range o.individuals {
		out = append(out, i)
	}
	return out
}

// Axioms returns every inserted axiom, in insertion order. Every axiom
// returned here corresponds to a prior AddAxiom call: the Store never synthesises phantom axioms into this slice.
func (o *Ontology) Axioms() []Axiom {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Axiom, len(o.axioms))
	copy(out, o.axioms)
	return out
}

// SubClassAxiomsOf returns the SubClassOf axioms whose subject is c.
// O(1) via the sub-of index.
func (o *Ontology) SubClassAxiomsOf(c term.ClassHandle) []*SubClassOfAxiom {
	o.mu.RLock()
	defer o.mu.RUnlock()
	src := o.idx.subOf[c]
	out := make([]*SubClassOfAxiom, len(src))
	copy(out, src)
	return out
}

// SuperClassAxiomsOf returns the SubClassOf axioms whose object is c.
func (o *Ontology) SuperClassAxiomsOf(c term.ClassHandle) []*SubClassOfAxiom {
	o.mu.RLock()
	defer o.mu.RUnlock()
	src := o.idx.superOf[c]
	out := make([]*SubClassOfAxiom, len(src))
	copy(out, src)
	return out
}

// EquivalentClassesOf returns the classes declared equivalent to c.
func (o *Ontology) EquivalentClassesOf(c term.ClassHandle) []term.ClassHandle {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var out []term.ClassHandle
	for d := range o.idx.equiv[c] {
		out = append(out, d)
	}
	return out
}

// AreDisjoint reports whether a and b are declared pairwise disjoint.
func (o *Ontology) AreDisjoint(a, b term.ClassHandle) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.idx.disjoint[a][b] || o.idx.disjoint[b][a]
}

// AssertionsAbout returns every ABox axiom whose subject is i. O(1) via the assertions-by-subject index.
func (o *Ontology) AssertionsAbout(i term.Individual) []Axiom {
	o.mu.RLock()
	defer o.mu.RUnlock()
	src := o.idx.assertionsBySubject[individualKeyStr(i)]
	out := make([]Axiom, len(src))
	copy(out, src)
	return out
}

// HasCharacteristic reports whether p carries characteristic c. O(1).
func (o *Ontology) HasCharacteristic(p term.ObjectPropertyHandle, c Characteristic) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.idx.HasCharacteristic(p, c)
}

// PropertyDomains, PropertyRanges expose the prop-domain/range index.
func (o *Ontology) PropertyDomains(p term.IRIHandle) []*term.ClassExpr {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]*term.ClassExpr(nil), o.idx.propDomain[p]...)
}

func (o *Ontology) PropertyRanges(p term.IRIHandle) []*term.ClassExpr {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]*term.ClassExpr(nil), o.idx.propRange[p]...)
}

// PropertyChainsInto returns every chain R1∘...∘Rn declared ⊑ super.
func (o *Ontology) PropertyChainsInto(super term.ObjectPropertyHandle) [][]term.PropertyExpr {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([][]term.PropertyExpr(nil), o.idx.propChain[super]...)
}

// IsSubPropertyOf reports whether the sub-property hierarchy index holds an
// edge sub ⊑ super, for fast R ⊑ S lookups during the hierarchy expansion
// rule.
func (o *Ontology) IsSubPropertyOf(sub, super term.ObjectPropertyHandle) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.idx.propHierarchy[sub][super]
}

// InverseOf returns the declared inverse of p, if any.
func (o *Ontology) InverseOf(p term.ObjectPropertyHandle) (term.ObjectPropertyHandle, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	inv, ok := o.idx.propInverse[p]
	return inv, ok
}

// Signature returns the set of every IRI handle mentioned by any axiom
//.
func (o *Ontology) Signature() map[term.IRIHandle]bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	sig := make(map[term.IRIHandle]bool)
	for _, a := range o.axioms {
		for _, h := range a.Signature() {
			sig[h] = true
		}
	}
	return sig
}

// Merge unions other's entities and axioms into o. Duplicate axioms
// (matching Key()) are skipped; an IRI declared as conflicting entity
// kinds across the two ontologies fails the whole merge with no partial
// update.
func (o *Ontology) Merge(other *Ontology) error {
	other.mu.RLock()
	otherClasses := make(map[term.ClassHandle]*Class, len(other.classes))
	for k, v := range other.classes {
		otherClasses[k] = v
	}
	otherObjProps := make(map[term.ObjectPropertyHandle]*ObjectProperty, len(other.objectProps))
	for k, v := range other.objectProps {
		otherObjProps[k] = v
	}
	otherDataProps := make(map[term.DataPropertyHandle]*DataProperty, len(other.dataProps))
	for k, v := range other.dataProps {
		otherDataProps[k] = v
	}
	otherIndividuals := make(map[term.IndividualHandle]*NamedIndividual, len(other.individuals))
	for k, v := range other.individuals {
		otherIndividuals[k] = v
	}
	otherAxioms := make([]Axiom, len(other.axioms))
	copy(otherAxioms, other.axioms)
	other.mu.RUnlock()

	// IRIs interned in `other` are process-local handles from a different
	// Interner instance; merge is only well-defined when both ontologies
	// share an interner (the common case: both came from the same
	// reasoner session). A cross-interner merge is out of scope.
	if other.Interner != o.Interner {
		return &EntityKindConflict{IRI: "<cross-interner merge>", Existing: KindClass, Wanted: KindClass}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for h := range otherClasses {
		if err := o.checkKindLocked(h, KindClass); err != nil {
			return err
		}
	}
	for h := range otherObjProps {
		if err := o.checkKindLocked(h, KindObjectProperty); err != nil {
			return err
		}
	}
	for h := range otherDataProps {
		if err := o.checkKindLocked(h, KindDataProperty); err != nil {
			return err
		}
	}
	for h := range otherIndividuals {
		if err := o.checkKindLocked(h, KindNamedIndividual); err != nil {
			return err
		}
	}

	for h, c := range otherClasses {
		o.classes[h] = c
	}
	for h, p := range otherObjProps {
		o.objectProps[h] = p
	}
	for h, p := range otherDataProps {
		o.dataProps[h] = p
	}
	for h, i := range otherIndividuals {
		o.individuals[h] = i
	}

	for _, a := range otherAxioms {
		key := a.Key()
		if o.seen[key] {
			continue
		}
		o.seen[key] = true
		o.axioms = append(o.axioms, a)
		o.idx.index(a)
		o.appendChangeLogLocked(key)
	}
	o.version++

	return nil
}

// validateAxiom rejects structurally malformed axioms before any index is
// touched. Cardinality
// restrictions can be nested arbitrarily deep inside an axiom's class
// expressions, so this walks every expression the axiom carries.
func validateAxiom(a Axiom) error {
	switch v := a.(type) {
	case *SubClassOfAxiom:
		if v.Sub == nil || v.Super == nil {
			return &InvalidAxiom{Reason: "SubClassOf operands cannot be nil"}
		}
		if err := checkExprCardinalities(v.Sub); err != nil {
			return err
		}
		return checkExprCardinalities(v.Super)
	case *EquivalentClassesAxiom:
		return checkExprsCardinalities(v.Classes)
	case *DisjointClassesAxiom:
		return checkExprsCardinalities(v.Classes)
	case *DisjointUnionAxiom:
		if err := checkExprCardinalities(v.Class); err != nil {
			return err
		}
		return checkExprsCardinalities(v.Parts)
	case *ClassAssertionAxiom:
		return checkExprCardinalities(v.Class)
	case *ObjectPropertyDomainAxiom:
		return checkExprCardinalities(v.Domain)
	case *ObjectPropertyRangeAxiom:
		return checkExprCardinalities(v.Range)
	case *DataPropertyDomainAxiom:
		return checkExprCardinalities(v.Domain)
	case *HasKeyAxiom:
		if len(v.ObjectProps) == 0 && len(v.DataProps) == 0 {
			return nil // equivalent to no axiom; not an error
		}
		return checkExprCardinalities(v.Class)
	}
	return nil
}

func checkExprsCardinalities(exprs []*term.ClassExpr) error {
	for _, e := range exprs {
		if err := checkExprCardinalities(e); err != nil {
			return err
		}
	}
	return nil
}

func checkExprCardinalities(e *term.ClassExpr) error {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case term.ExprObjectMinCardinality, term.ExprObjectMaxCardinality, term.ExprObjectExactCardinality,
		term.ExprDataMinCardinality, term.ExprDataMaxCardinality, term.ExprDataExactCardinality:
		if e.Cardinality < 0 {
			return &InvalidAxiom{Reason: fmt.Sprintf("negative cardinality %d", e.Cardinality)}
		}
	}
	if err := checkExprCardinalities(e.Filler); err != nil {
		return err
	}
	return checkExprsCardinalities(e.Operands)
}
