package store

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sroiqd/reasoner/pkg/term"
)

// Axiom is implemented by every axiom category the ontology can store. Key
// gives a canonical string used for idempotent insertion (syntactically
// identical axioms are deduplicated) and Signature lists every IRI handle
// the axiom mentions, for Ontology.Signature() and merge-conflict checks.
type Axiom interface {
	Key() string
	Signature() []term.IRIHandle
}

// --- Class axioms ---------------------------------------------------------

type SubClassOfAxiom struct {
	Sub, Super *term.ClassExpr
}

func (a SubClassOfAxiom) Key() string { return "SubClassOf(" + a.Sub.Key() + "," + a.Super.Key() + ")" }
func (a SubClassOfAxiom) Signature() []term.IRIHandle {
	return append(classSignature(a.Sub), classSignature(a.Super)...)
}

type EquivalentClassesAxiom struct {
	Classes []*term.ClassExpr
}

func (a EquivalentClassesAxiom) Key() string {
	return "EquivalentClasses(" + joinExprKeys(a.Classes) + ")"
}
func (a EquivalentClassesAxiom) Signature() []term.IRIHandle {
	var sig []term.IRIHandle
	for _, c := range a.Classes {
		sig = append(sig, classSignature(c)...)
	}
	return sig
}

type DisjointClassesAxiom struct {
	Classes []*term.ClassExpr
}

func (a DisjointClassesAxiom) Key() string { return "DisjointClasses(" + joinExprKeys(a.Classes) + ")" }
func (a DisjointClassesAxiom) Signature() []term.IRIHandle {
	var sig []term.IRIHandle
	for _, c := range a.Classes {
		sig = append(sig, classSignature(c)...)
	}
	return sig
}

type DisjointUnionAxiom struct {
	Class *term.ClassExpr
	Parts []*term.ClassExpr
}

func (a DisjointUnionAxiom) Key() string {
	return "DisjointUnion(" + a.Class.Key() + "," + joinExprKeys(a.Parts) + ")"
}
func (a DisjointUnionAxiom) Signature() []term.IRIHandle {
	sig := classSignature(a.Class)
	for _, p := range a.Parts {
		sig = append(sig, classSignature(p)...)
	}
	return sig
}

// --- Object-property axioms ------------------------------------------------

type SubObjectPropertyOfAxiom struct {
	Sub   term.PropertyExpr // used only when Chain is empty
	Chain []term.PropertyExpr
	Super term.PropertyExpr
}

func (a SubObjectPropertyOfAxiom) Key() string {
	if len(a.Chain) > 0 {
		parts := make([]string, len(a.Chain))
		for i, p := range a.Chain {
			parts[i] = propKeyStr(p)
		}
		return "SubObjectPropertyChain(" + strings.Join(parts, "o") + "->" + propKeyStr(a.Super) + ")"
	}
	return "SubObjectPropertyOf(" + propKeyStr(a.Sub) + "," + propKeyStr(a.Super) + ")"
}
func (a SubObjectPropertyOfAxiom) Signature() []term.IRIHandle {
	sig := []term.IRIHandle{a.Super.Named}
	if len(a.Chain) > 0 {
		for _, p := range a.Chain {
			sig = append(sig, p.Named)
		}
	} else {
		sig = append(sig, a.Sub.Named)
	}
	return sig
}

type EquivalentObjectPropertiesAxiom struct{ Properties []term.PropertyExpr }

func (a EquivalentObjectPropertiesAxiom) Key() string {
	return "EquivalentObjectProperties(" + joinPropKeys(a.Properties) + ")"
}
func (a EquivalentObjectPropertiesAxiom) Signature() []term.IRIHandle { return propSignature(a.Properties) }

type DisjointObjectPropertiesAxiom struct{ Properties []term.PropertyExpr }

func (a DisjointObjectPropertiesAxiom) Key() string {
	return "DisjointObjectProperties(" + joinPropKeys(a.Properties) + ")"
}
func (a DisjointObjectPropertiesAxiom) Signature() []term.IRIHandle { return propSignature(a.Properties) }

type InverseObjectPropertiesAxiom struct{ P, Q term.PropertyExpr }

func (a InverseObjectPropertiesAxiom) Key() string {
	return "InverseObjectProperties(" + propKeyStr(a.P) + "," + propKeyStr(a.Q) + ")"
}
func (a InverseObjectPropertiesAxiom) Signature() []term.IRIHandle {
	return []term.IRIHandle{a.P.Named, a.Q.Named}
}

type ObjectPropertyDomainAxiom struct {
	Property term.PropertyExpr
	Domain   *term.ClassExpr
}

func (a ObjectPropertyDomainAxiom) Key() string {
	return "ObjectPropertyDomain(" + propKeyStr(a.Property) + "," + a.Domain.Key() + ")"
}
func (a ObjectPropertyDomainAxiom) Signature() []term.IRIHandle {
	return append([]term.IRIHandle{a.Property.Named}, classSignature(a.Domain)...)
}

type ObjectPropertyRangeAxiom struct {
	Property term.PropertyExpr
	Range    *term.ClassExpr
}

func (a ObjectPropertyRangeAxiom) Key() string {
	return "ObjectPropertyRange(" + propKeyStr(a.Property) + "," + a.Range.Key() + ")"
}
func (a ObjectPropertyRangeAxiom) Signature() []term.IRIHandle {
	return append([]term.IRIHandle{a.Property.Named}, classSignature(a.Range)...)
}

// ObjectPropertyCharacteristicAxiom covers the seven unary characteristic
// axioms (Functional, InverseFunctional, Reflexive, Irreflexive, Symmetric,
// Asymmetric, Transitive) as one parameterised type, since they differ only
// in which Characteristic bit they assert.
type ObjectPropertyCharacteristicAxiom struct {
	Property term.PropertyExpr
	Which    Characteristic
}

func (a ObjectPropertyCharacteristicAxiom) Key() string {
	return "ObjectPropertyCharacteristic(" + propKeyStr(a.Property) + "," + strconv.Itoa(int(a.Which)) + ")"
}
func (a ObjectPropertyCharacteristicAxiom) Signature() []term.IRIHandle {
	return []term.IRIHandle{a.Property.Named}
}

// --- Data-property axioms ---------------------------------------------------

type SubDataPropertyOfAxiom struct{ Sub, Super term.DataPropertyHandle }

func (a SubDataPropertyOfAxiom) Key() string {
	return "SubDataPropertyOf(" + handleStr(a.Sub) + "," + handleStr(a.Super) + ")"
}
func (a SubDataPropertyOfAxiom) Signature() []term.IRIHandle { return []term.IRIHandle{a.Sub, a.Super} }

type EquivalentDataPropertiesAxiom struct{ Properties []term.DataPropertyHandle }

func (a EquivalentDataPropertiesAxiom) Key() string {
	return "EquivalentDataProperties(" + joinHandles(a.Properties) + ")"
}
func (a EquivalentDataPropertiesAxiom) Signature() []term.IRIHandle { return a.Properties }

type DisjointDataPropertiesAxiom struct{ Properties []term.DataPropertyHandle }

func (a DisjointDataPropertiesAxiom) Key() string {
	return "DisjointDataProperties(" + joinHandles(a.Properties) + ")"
}
func (a DisjointDataPropertiesAxiom) Signature() []term.IRIHandle { return a.Properties }

type DataPropertyDomainAxiom struct {
	Property term.DataPropertyHandle
	Domain   *term.ClassExpr
}

func (a DataPropertyDomainAxiom) Key() string {
	return "DataPropertyDomain(" + handleStr(a.Property) + "," + a.Domain.Key() + ")"
}
func (a DataPropertyDomainAxiom) Signature() []term.IRIHandle {
	return append([]term.IRIHandle{a.Property}, classSignature(a.Domain)...)
}

type DataPropertyRangeAxiom struct {
	Property term.DataPropertyHandle
	Range    *term.DataRange
}

func (a DataPropertyRangeAxiom) Key() string {
	return "DataPropertyRange(" + handleStr(a.Property) + "," + a.Range.Key() + ")"
}
func (a DataPropertyRangeAxiom) Signature() []term.IRIHandle { return []term.IRIHandle{a.Property} }

type FunctionalDataPropertyAxiom struct{ Property term.DataPropertyHandle }

func (a FunctionalDataPropertyAxiom) Key() string { return "FunctionalDataProperty(" + handleStr(a.Property) + ")" }
func (a FunctionalDataPropertyAxiom) Signature() []term.IRIHandle { return []term.IRIHandle{a.Property} }

// --- Individual axioms -------------------------------------------------------

type ClassAssertionAxiom struct {
	Individual term.Individual
	Class      *term.ClassExpr
}

func (a ClassAssertionAxiom) Key() string {
	return "ClassAssertion(" + individualKeyStr(a.Individual) + "," + a.Class.Key() + ")"
}
func (a ClassAssertionAxiom) Signature() []term.IRIHandle {
	sig := classSignature(a.Class)
	if !a.Individual.Anonymous {
		sig = append(sig, a.Individual.Named)
	}
	return sig
}

type ObjectPropertyAssertionAxiom struct {
	Property term.PropertyExpr
	Subject  term.Individual
	Object   term.Individual
}

func (a ObjectPropertyAssertionAxiom) Key() string {
	return "ObjectPropertyAssertion(" + propKeyStr(a.Property) + "," + individualKeyStr(a.Subject) + "," + individualKeyStr(a.Object) + ")"
}
func (a ObjectPropertyAssertionAxiom) Signature() []term.IRIHandle {
	return assertionSignature(a.Property.Named, a.Subject, a.Object)
}

type NegativeObjectPropertyAssertionAxiom struct {
	Property term.PropertyExpr
	Subject  term.Individual
	Object   term.Individual
}

func (a NegativeObjectPropertyAssertionAxiom) Key() string {
	return "NegativeObjectPropertyAssertion(" + propKeyStr(a.Property) + "," + individualKeyStr(a.Subject) + "," + individualKeyStr(a.Object) + ")"
}
func (a NegativeObjectPropertyAssertionAxiom) Signature() []term.IRIHandle {
	return assertionSignature(a.Property.Named, a.Subject, a.Object)
}

type DataPropertyAssertionAxiom struct {
	Property term.DataPropertyHandle
	Subject  term.Individual
	Value    term.Literal
}

func (a DataPropertyAssertionAxiom) Key() string {
	return "DataPropertyAssertion(" + handleStr(a.Property) + "," + individualKeyStr(a.Subject) + "," + a.Value.Datatype + "|" + a.Value.Canonical() + ")"
}
func (a DataPropertyAssertionAxiom) Signature() []term.IRIHandle {
	sig := []term.IRIHandle{a.Property}
	if !a.Subject.Anonymous {
		sig = append(sig, a.Subject.Named)
	}
	return sig
}

type NegativeDataPropertyAssertionAxiom struct {
	Property term.DataPropertyHandle
	Subject  term.Individual
	Value    term.Literal
}

func (a NegativeDataPropertyAssertionAxiom) Key() string {
	return "NegativeDataPropertyAssertion(" + handleStr(a.Property) + "," + individualKeyStr(a.Subject) + "," + a.Value.Datatype + "|" + a.Value.Canonical() + ")"
}
func (a NegativeDataPropertyAssertionAxiom) Signature() []term.IRIHandle {
	sig := []term.IRIHandle{a.Property}
	if !a.Subject.Anonymous {
		sig = append(sig, a.Subject.Named)
	}
	return sig
}

type SameIndividualAxiom struct{ Individuals []term.Individual }

func (a SameIndividualAxiom) Key() string { return "SameIndividual(" + joinIndividualKeys(a.Individuals) + ")" }
func (a SameIndividualAxiom) Signature() []term.IRIHandle { return individualsSignature(a.Individuals) }

type DifferentIndividualsAxiom struct{ Individuals []term.Individual }

func (a DifferentIndividualsAxiom) Key() string {
	return "DifferentIndividuals(" + joinIndividualKeys(a.Individuals) + ")"
}
func (a DifferentIndividualsAxiom) Signature() []term.IRIHandle { return individualsSignature(a.Individuals) }

// --- Key axioms --------------------------------------------------------------

type HasKeyAxiom struct {
	Class         *term.ClassExpr
	ObjectProps   []term.PropertyExpr
	DataProps     []term.DataPropertyHandle
}

func (a HasKeyAxiom) Key() string {
	return "HasKey(" + a.Class.Key() + "," + joinPropKeys(a.ObjectProps) + "," + joinHandles(a.DataProps) + ")"
}
func (a HasKeyAxiom) Signature() []term.IRIHandle {
	sig := classSignature(a.Class)
	sig = append(sig, propSignature(a.ObjectProps)...)
	sig = append(sig, a.DataProps...)
	return sig
}

// --- RDF-structural axioms --------------

type CollectionAxiom struct {
	Head     term.AnonymousHandle
	Elements []string // lexical IRIs or literal lexicals, in list order
}

func (a CollectionAxiom) Key() string {
	return "Collection(" + handleStr(term.IRIHandle(a.Head)) + "," + strings.Join(a.Elements, ",") + ")"
}
func (a CollectionAxiom) Signature() []term.IRIHandle { return nil }

type ContainerAxiom struct {
	Head     term.AnonymousHandle
	Kind     string // rdf:Seq, rdf:Bag, rdf:Alt
	Elements []string
}

func (a ContainerAxiom) Key() string {
	return "Container(" + a.Kind + "," + handleStr(term.IRIHandle(a.Head)) + "," + strings.Join(a.Elements, ",") + ")"
}
func (a ContainerAxiom) Signature() []term.IRIHandle { return nil }

type ReificationAxiom struct {
	Statement          term.AnonymousHandle
	Subject, Predicate, Object string
}

func (a ReificationAxiom) Key() string {
	return "Reification(" + handleStr(term.IRIHandle(a.Statement)) + "," + a.Subject + "," + a.Predicate + "," + a.Object + ")"
}
func (a ReificationAxiom) Signature() []term.IRIHandle { return nil }

// --- shared helpers ----------------------------------------------------------

func classSignature(e *term.ClassExpr) []term.IRIHandle {
	if e == nil {
		return nil
	}
	var sig []term.IRIHandle
	switch e.Kind {
	case term.ExprClass:
		sig = append(sig, e.Class)
	case term.ExprIntersection, term.ExprUnion:
		for _, op := range e.Operands {
			sig = append(sig, classSignature(op)...)
		}
	case term.ExprComplement:
		sig = append(sig, classSignature(e.Operands[0])...)
	case term.ExprOneOf:
		for _, ind := range e.Individuals {
			if !ind.Anonymous {
				sig = append(sig, ind.Named)
			}
		}
	case term.ExprObjectSomeValuesFrom, term.ExprObjectAllValuesFrom:
		sig = append(sig, e.Property.Named)
		sig = append(sig, classSignature(e.Filler)...)
	case term.ExprObjectHasValue:
		sig = append(sig, e.Property.Named)
		if !e.Value.Anonymous {
			sig = append(sig, e.Value.Named)
		}
	case term.ExprObjectMinCardinality, term.ExprObjectMaxCardinality, term.ExprObjectExactCardinality:
		sig = append(sig, e.Property.Named)
		sig = append(sig, classSignature(e.Filler)...)
	case term.ExprObjectHasSelf:
		sig = append(sig, e.Property.Named)
	case term.ExprDataSomeValuesFrom, term.ExprDataAllValuesFrom, term.ExprDataMinCardinality, term.ExprDataMaxCardinality, term.ExprDataExactCardinality:
		sig = append(sig, e.DataProperty)
	case term.ExprDataHasValue:
		sig = append(sig, e.DataProperty)
	}
	return sig
}

func propSignature(props []term.PropertyExpr) []term.IRIHandle {
	sig := make([]term.IRIHandle, len(props))
	for i, p := range props {
		sig[i] = p.Named
	}
	return sig
}

func individualsSignature(inds []term.Individual) []term.IRIHandle {
	var sig []term.IRIHandle
	for _, i := range inds {
		if !i.Anonymous {
			sig = append(sig, i.Named)
		}
	}
	return sig
}

func assertionSignature(prop term.IRIHandle, subj, obj term.Individual) []term.IRIHandle {
	sig := []term.IRIHandle{prop}
	if !subj.Anonymous {
		sig = append(sig, subj.Named)
	}
	if !obj.Anonymous {
		sig = append(sig, obj.Named)
	}
	return sig
}

func joinExprKeys(exprs []*term.ClassExpr) string {
	keys := make([]string, len(exprs))
	for i, e := range exprs {
		keys[i] = e.Key()
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func joinPropKeys(props []term.PropertyExpr) string {
	keys := make([]string, len(props))
	for i, p := range props {
		keys[i] = propKeyStr(p)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func joinHandles(hs []term.IRIHandle) string {
	keys := make([]string, len(hs))
	for i, h := range hs {
		keys[i] = handleStr(h)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func joinIndividualKeys(inds []term.Individual) string {
	keys := make([]string, len(inds))
	for i, ind := range inds {
		keys[i] = individualKeyStr(ind)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func propKeyStr(p term.PropertyExpr) string {
	if p.Inverse {
		return "inv(" + handleStr(p.Named) + ")"
	}
	return handleStr(p.Named)
}

func individualKeyStr(i term.Individual) string {
	if i.Anonymous {
		return "_:" + strconv.FormatUint(uint64(i.Anon), 10)
	}
	return handleStr(i.Named)
}

func handleStr(h term.IRIHandle) string {
	return strconv.FormatUint(uint64(h), 10)
}
