package snode

import (
	"fmt"

	"github.com/forestrie/go-snodetree/dtype"
)

// LazyGrad places the adjoints for every primal real field in this subtree.
// Children are processed depth first, then each place child of sn holding a
// primal real field without a placed adjoint contributes its declared
// adjoint, and the collected adjoints are placed directly under sn. Fields
// whose adjoints are already placed are skipped, so running it twice is
// harmless.
func (sn *SNode) LazyGrad() error {
	if sn.tree.frozen {
		return ErrTreeFrozen
	}
	if sn.Kind == KindPlace {
		return nil
	}
	for _, ch := range sn.Children {
		if err := ch.LazyGrad(); err != nil {
			return err
		}
	}

	// collect before placing, placement appends to sn.Children
	var adjoints []Field
	for _, ch := range sn.Children {
		if ch.Kind != KindPlace || ch.Field == nil {
			continue
		}
		if !ch.Field.Primal() || !dtype.IsReal(ch.DType) || ch.HasGrad() {
			continue
		}
		adj := ch.Field.Adjoint()
		if adj == nil {
			return fmt.Errorf("%w: %s", ErrNoAdjoint, ch.Field.Ident())
		}
		adjoints = append(adjoints, adj)
	}
	for _, adj := range adjoints {
		if _, err := sn.Place(adj); err != nil {
			return err
		}
	}
	return nil
}

// Primal reports whether the bound field is a primal. It fails when no field
// is bound, as on structural nodes and tree created exponent nodes.
func (sn *SNode) Primal() (bool, error) {
	if sn.Field == nil {
		return false, fmt.Errorf("%w: %s", ErrNoField, sn.HintedTypeName())
	}
	return sn.Field.Primal(), nil
}

// HasGrad reports whether the bound field is a primal whose declared adjoint
// is itself placed.
func (sn *SNode) HasGrad() bool {
	if sn.Field == nil || !sn.Field.Primal() {
		return false
	}
	adj := sn.Field.Adjoint()
	return adj != nil && adj.Node() != nil
}

// Grad returns the place node holding the bound field's adjoint.
func (sn *SNode) Grad() (*SNode, error) {
	if !sn.HasGrad() {
		return nil, fmt.Errorf("%w: %s", ErrNoGrad, sn.HintedTypeName())
	}
	return sn.Field.Adjoint().Node(), nil
}
