package term

// PropertyExpr is an object property expression: a named property or its
// inverse. Data properties are always named, so they use
// DataPropertyHandle directly and need no expression wrapper.
type PropertyExpr struct {
	Named   ObjectPropertyHandle
	Inverse bool
}

// Object builds a PropertyExpr for a plain named object property.
func Object(p ObjectPropertyHandle) PropertyExpr {
	return PropertyExpr{Named: p}
}

// ObjectInverseOf builds a PropertyExpr for the inverse of p.
func ObjectInverseOf(p ObjectPropertyHandle) PropertyExpr {
	return PropertyExpr{Named: p, Inverse: true}
}

// Invert returns the inverse of the receiver.
func (p PropertyExpr) Invert() PropertyExpr {
	return PropertyExpr{Named: p.Named, Inverse: !p.Inverse}
}

// Equal reports structural equality.
func (p PropertyExpr) Equal(o PropertyExpr) bool {
	return p.Named == o.Named && p.Inverse == o.Inverse
}
