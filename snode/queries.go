package snode

import "fmt"

// Parent returns the parent node, nil for the root. Parent links are
// resolved by Freeze.
func (sn *SNode) Parent() (*SNode, error) {
	if !sn.tree.frozen {
		return nil, ErrTreeNotFrozen
	}
	return sn.parent, nil
}

// LeastSparseAncestor returns the nearest node on the path from sn to the
// root, sn included, that needs activation. It returns nil when the whole
// path is dense, and fails when the path claims sparsity but no activating
// node exists, which indicates a corrupted tree.
func (sn *SNode) LeastSparseAncestor() (*SNode, error) {
	if !sn.tree.frozen {
		return nil, ErrTreeNotFrozen
	}
	if sn.PathAllDense {
		return nil, nil
	}
	cur := sn
	for !cur.NeedsActivation() {
		if cur.parent == nil {
			return nil, ErrNoSparseAncestor
		}
		cur = cur.parent
	}
	return cur, nil
}

// NumBits sums the coordinate bits consumed for the given axis by sn and
// every ancestor.
func (sn *SNode) NumBits(axis Axis) (int, error) {
	if !sn.tree.frozen {
		return 0, ErrTreeNotFrozen
	}
	if int(axis) >= MaxAxes {
		return 0, fmt.Errorf("%w: %d", ErrAxisRange, axis)
	}
	total := 0
	for cur := sn; cur != nil; cur = cur.parent {
		total += cur.Extractors[axis].NumBits
	}
	return total, nil
}

// ActiveAxis maps the i'th active axis at this node back to its Axis id.
func (sn *SNode) ActiveAxis(i int) (Axis, error) {
	if !sn.tree.frozen {
		return 0, ErrTreeNotFrozen
	}
	if i < 0 || i >= sn.activeAxes {
		return 0, fmt.Errorf("%w: %d of %d", ErrAxisOutOfRange, i, sn.activeAxes)
	}
	return Axis(sn.physicalIndexPosition[i]), nil
}

// ShapeAlongAxis returns the addressable extent of the i'th active axis at
// this node. Power of two promotion padding is excluded; extents folded
// into trailing bits by bit array packing are included.
func (sn *SNode) ShapeAlongAxis(i int) (int, error) {
	if !sn.tree.frozen {
		return 0, ErrTreeNotFrozen
	}
	if i < 0 || i >= sn.activeAxes {
		return 0, fmt.Errorf("%w: %d of %d", ErrAxisOutOfRange, i, sn.activeAxes)
	}
	ext := sn.Extractors[sn.physicalIndexPosition[i]]
	return ext.NumElements << ext.TrailingBits, nil
}
