package snode

import "github.com/forestrie/go-snodetree/dtype"

// Field is the handle a frontend declares for a value it wants materialized
// in the layout. Placing a field binds it to exactly one place node.
//
// Implementations must return a nil Adjoint (not a typed nil) when the field
// has no declared adjoint.
type Field interface {
	// Ident is the frontend visible name, used to name the place node.
	Ident() string
	// DType is the element type placement will assign to the node.
	DType() dtype.Type
	// Primal reports whether this field is a primal (an adjoint mirrors it).
	Primal() bool
	// Adjoint returns the declared adjoint field, nil when there is none.
	Adjoint() Field
	// Ambient returns the fill value new cells take on activation, if one
	// was declared.
	Ambient() (any, bool)
	// Node returns the place node the field is bound to, nil before placement.
	Node() *SNode
	// BindNode records the placement. It fails if the field is already bound.
	BindNode(*SNode) error
}
