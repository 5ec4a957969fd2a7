package snode

import (
	"errors"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/forestrie/go-snodetree/dtype"
)

func TestMain(m *testing.M) {
	logger.New("NOOP")
	defer logger.OnExit()
	m.Run()
}

// testField is a minimal Field for exercising placement without pulling in
// the expr package.
type testField struct {
	ident      string
	dt         dtype.Type
	primal     bool
	adjoint    *testField
	hasAmbient bool
	ambient    any
	node       *SNode
}

// newTestField declares a primal, minting an adjoint for real types the way
// a frontend would.
func newTestField(ident string, dt dtype.Type) *testField {
	f := &testField{ident: ident, dt: dt, primal: true}
	if dtype.IsReal(dt) {
		f.adjoint = &testField{ident: ident + ".grad", dt: dt}
	}
	return f
}

func (f *testField) Ident() string     { return f.ident }
func (f *testField) DType() dtype.Type { return f.dt }
func (f *testField) Primal() bool      { return f.primal }

func (f *testField) Adjoint() Field {
	if f.adjoint == nil {
		return nil
	}
	return f.adjoint
}

func (f *testField) Ambient() (any, bool) { return f.ambient, f.hasAmbient }

func (f *testField) Node() *SNode { return f.node }

func (f *testField) BindNode(sn *SNode) error {
	if f.node != nil {
		return errors.New("testField: bound twice")
	}
	f.node = sn
	return nil
}
