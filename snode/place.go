package snode

import (
	"fmt"

	"github.com/forestrie/go-snodetree/dtype"
)

// Place binds field to a new place leaf under sn and returns the leaf.
// Placing on the root is redirected through a fresh zero axis dense child,
// so every placed field lives under a proper container.
//
// When the field's type stores its exponent separately, placement creates a
// sibling place node holding the exponent, or reuses the current session's
// exponent node when a shared exponent placement session is active, and
// links the two.
//
// The optional offsets bias the coordinates used to address the new leaf.
func (sn *SNode) Place(field Field, offsets ...int) (*SNode, error) {
	if sn.tree.frozen {
		return nil, ErrTreeFrozen
	}
	if sn.Kind == KindRoot {
		ch, err := sn.Dense(nil, nil)
		if err != nil {
			return nil, err
		}
		return ch.Place(field, offsets...)
	}
	if field.Node() != nil {
		return nil, fmt.Errorf("%w: %s", ErrFieldAlreadyPlaced, field.Ident())
	}

	var expNode *SNode
	if cft, ok := field.DType().(dtype.CustomFloatType); ok {
		if expType := cft.ExponentType(); expType != nil {
			t := sn.tree
			if t.placingSharedExp && t.sharedExpNode != nil {
				if t.sharedExpType != expType {
					return nil, fmt.Errorf("%w: session has %s, field %s needs %s",
						ErrSharedExpTypeMismatch, t.sharedExpType, field.Ident(), expType)
				}
				expNode = t.sharedExpNode
			} else {
				en, err := sn.InsertChild(KindPlace)
				if err != nil {
					return nil, err
				}
				en.DType = expType
				en.Name = field.Ident() + "_exp"
				expNode = en
				if t.placingSharedExp {
					t.sharedExpNode = en
					t.sharedExpType = expType
				}
			}
		}
	}

	ch, err := sn.InsertChild(KindPlace)
	if err != nil {
		return nil, err
	}
	if err := field.BindNode(ch); err != nil {
		return nil, err
	}
	ch.Field = field
	ch.Name = field.Ident()
	ch.DType = field.DType()
	if v, ok := field.Ambient(); ok {
		ch.HasAmbient = true
		ch.AmbientValue = v
	}
	if sn.tree.placingSharedExp {
		ch.OwnsSharedExponent = true
	}
	if expNode != nil {
		ch.ExpNode = expNode
		expNode.ExponentUsers = append(expNode.ExponentUsers, ch)
	}
	if len(offsets) > 0 {
		if err := ch.SetIndexOffsets(offsets); err != nil {
			return nil, err
		}
	}
	return ch, nil
}

// SetIndexOffsets records the coordinate bias used when addressing this
// place node. Offsets may not be empty and are set at most once.
func (sn *SNode) SetIndexOffsets(offsets []int) error {
	if sn.tree.frozen {
		return ErrTreeFrozen
	}
	if sn.Kind != KindPlace {
		return fmt.Errorf("%w: %s", ErrNotPlaceNode, sn.HintedTypeName())
	}
	if len(offsets) == 0 {
		return ErrEmptyOffsets
	}
	if sn.IndexOffsets != nil {
		return fmt.Errorf("%w: %s", ErrOffsetsAlreadySet, sn.TypeName())
	}
	sn.IndexOffsets = append([]int(nil), offsets...)
	return nil
}
