// Package expr carries the frontend field declarations that bind into a
// layout tree.
package expr

import (
	"errors"
	"fmt"

	"github.com/forestrie/go-snodetree/dtype"
	"github.com/forestrie/go-snodetree/snode"
)

var ErrFieldBound = errors.New("expr: field already bound to a node")

// GlobalField is a declared global value to be materialized by placing it
// into a layout tree. It implements snode.Field.
type GlobalField struct {
	ident      string
	dt         dtype.Type
	primal     bool
	noAdjoint  bool
	adjoint    *GlobalField
	hasAmbient bool
	ambient    any
	node       *snode.SNode
}

// Option configures a field at declaration.
type Option func(*GlobalField)

// WithAmbient declares the fill value cells of this field take on
// activation.
func WithAmbient(v any) Option {
	return func(f *GlobalField) {
		f.hasAmbient = true
		f.ambient = v
	}
}

// AsAdjoint declares the field as an adjoint rather than a primal. Adjoints
// do not declare adjoints of their own.
func AsAdjoint() Option {
	return func(f *GlobalField) { f.primal = false }
}

// WithoutAdjoint suppresses the automatic adjoint declaration for a primal
// real field that takes no part in differentiation.
func WithoutAdjoint() Option {
	return func(f *GlobalField) { f.noAdjoint = true }
}

// WithAdjoint pairs the field with an explicitly declared adjoint in place
// of the automatic one.
func WithAdjoint(adj *GlobalField) Option {
	return func(f *GlobalField) { f.adjoint = adj }
}

// NewField declares a field. Primal fields of real types automatically
// declare a matching adjoint named "<ident>.grad", so gradient placement
// can mirror them later.
func NewField(ident string, dt dtype.Type, opts ...Option) *GlobalField {
	f := &GlobalField{ident: ident, dt: dt, primal: true}
	for _, o := range opts {
		o(f)
	}
	if f.primal && !f.noAdjoint && f.adjoint == nil && dtype.IsReal(dt) {
		f.adjoint = &GlobalField{ident: ident + ".grad", dt: dt}
	}
	return f
}

func (f *GlobalField) Ident() string { return f.ident }

func (f *GlobalField) DType() dtype.Type { return f.dt }

func (f *GlobalField) Primal() bool { return f.primal }

// Adjoint returns the declared adjoint, nil when there is none.
func (f *GlobalField) Adjoint() snode.Field {
	if f.adjoint == nil {
		return nil
	}
	return f.adjoint
}

// AdjointField is Adjoint with its concrete type.
func (f *GlobalField) AdjointField() *GlobalField { return f.adjoint }

func (f *GlobalField) Ambient() (any, bool) { return f.ambient, f.hasAmbient }

// Node returns the place node the field is bound to, nil before placement.
func (f *GlobalField) Node() *snode.SNode { return f.node }

// BindNode records the placement. Fields bind exactly once.
func (f *GlobalField) BindNode(sn *snode.SNode) error {
	if f.node != nil {
		return fmt.Errorf("%w: %s", ErrFieldBound, f.ident)
	}
	f.node = sn
	return nil
}
