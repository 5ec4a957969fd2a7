package snode

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/forestrie/go-snodetree/dtype"
)

// InsertChild appends a new node of the given kind under sn and returns it.
// The child's dense path and bit level standing derive from sn at insertion.
// Parent links are only resolved when the tree is frozen.
func (sn *SNode) InsertChild(kind NodeKind) (*SNode, error) {
	if sn.tree.frozen {
		return nil, ErrTreeFrozen
	}
	if kind == KindRoot {
		return nil, ErrRootChildKind
	}
	ch := sn.tree.newNode(sn.Depth+1, kind)
	ch.PathAllDense = sn.PathAllDense && !kind.NeedsActivation()
	ch.BitLevel = sn.BitLevel || sn.Kind == KindBitStruct || sn.Kind == KindBitArray
	sn.Children = append(sn.Children, ch)
	return ch, nil
}

// CreateNode validates and appends a structural child subdividing the given
// axes. A single size is broadcast across all axes. Sizes that are not
// powers of two are promoted to the next power of two for index arithmetic;
// the requested extent is retained as the extractor's element count so
// padding cells stay invisible to shape queries.
func (sn *SNode) CreateNode(axes []Axis, sizes []int, kind NodeKind) (*SNode, error) {
	if len(axes) != len(sizes) && len(sizes) != 1 {
		return nil, fmt.Errorf("%w: %d axes, %d sizes", ErrAxisSizeMismatch, len(axes), len(sizes))
	}
	if len(sizes) == 1 {
		s := sizes[0]
		sizes = make([]int, len(axes))
		for i := range sizes {
			sizes[i] = s
		}
	}
	for _, a := range axes {
		if int(a) >= MaxAxes {
			return nil, fmt.Errorf("%w: %d", ErrAxisRange, a)
		}
	}
	for _, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrSizeRange, s)
		}
	}
	if kind == KindHash && sn.Depth != 0 {
		// the memset based cell initialization only works directly under root
		return nil, ErrHashNotUnderRoot
	}

	ch, err := sn.InsertChild(kind)
	if err != nil {
		return nil, err
	}
	ch.N = 1
	for i, a := range axes {
		size := sizes[i]
		pot := size
		if !IsPow2(size) {
			pot = CeilPow2(size)
			logger.Sugar.Debugf("sn.create: %s axis=%d size=%d promoted=%d", ch.TypeName(), a, size, pot)
		}
		ch.N *= int64(pot)
		ext := &ch.Extractors[a]
		ext.activate(Log2(pot))
		ext.NumElements = size
		ch.orderedAxes = append(ch.orderedAxes, a)
	}
	return ch, nil
}

// Dense appends a dense child subdividing the given axes.
func (sn *SNode) Dense(axes []Axis, sizes []int) (*SNode, error) {
	return sn.CreateNode(axes, sizes, KindDense)
}

// Pointer appends a pointer child. Cells are allocated on first activation.
func (sn *SNode) Pointer(axes []Axis, sizes []int) (*SNode, error) {
	return sn.CreateNode(axes, sizes, KindPointer)
}

// Bitmasked appends a bitmasked child, dense storage with a per cell
// activity bit.
func (sn *SNode) Bitmasked(axes []Axis, sizes []int) (*SNode, error) {
	return sn.CreateNode(axes, sizes, KindBitmasked)
}

// Hash appends a hash child. Hash nodes are only valid directly under the
// root.
func (sn *SNode) Hash(axes []Axis, sizes []int) (*SNode, error) {
	return sn.CreateNode(axes, sizes, KindHash)
}

// Dynamic appends a variable length child along a single axis with capacity
// n, grown chunkSize cells at a time.
func (sn *SNode) Dynamic(axis Axis, n int, chunkSize int) (*SNode, error) {
	ch, err := sn.CreateNode([]Axis{axis}, []int{n}, KindDynamic)
	if err != nil {
		return nil, err
	}
	ch.ChunkSize = chunkSize
	return ch, nil
}

// BitStruct appends a container that packs its place children into a single
// unsigned word of numBits.
func (sn *SNode) BitStruct(numBits int) (*SNode, error) {
	pt, err := dtype.Int(numBits, false)
	if err != nil {
		return nil, err
	}
	ch, err := sn.InsertChild(KindBitStruct)
	if err != nil {
		return nil, err
	}
	ch.PhysicalType = pt
	return ch, nil
}

// BitArray appends a container subdividing the given axes, packing runs of
// cells along the innermost axis into unsigned words of numBits. The packing
// is resolved by Freeze, once the placed element type is known.
func (sn *SNode) BitArray(axes []Axis, sizes []int, numBits int) (*SNode, error) {
	pt, err := dtype.Int(numBits, false)
	if err != nil {
		return nil, err
	}
	ch, err := sn.CreateNode(axes, sizes, KindBitArray)
	if err != nil {
		return nil, err
	}
	ch.PhysicalType = pt
	return ch, nil
}
