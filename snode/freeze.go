package snode

import (
	"fmt"

	"github.com/forestrie/go-snodetree/dtype"
)

// Freeze ends the building phase. It packs the bit containers, resolves
// parent links, accumulates extractor totals down the tree and resolves each
// node's active axis set. A frozen tree is immutable, safe for concurrent
// reads, and is the only form the structural queries and the snapshot codec
// accept.
//
// Freeze fails on an invalid bit container and leaves the tree part
// resolved; a tree that fails to freeze must be rebuilt, not retried.
func (t *Tree) Freeze() error {
	if t.frozen {
		return ErrTreeFrozen
	}
	if t.placingSharedExp {
		return ErrSharedExpActive
	}
	var pathActive [MaxAxes]bool
	if err := t.freezeNode(t.Root, pathActive); err != nil {
		return err
	}
	t.frozen = true
	return nil
}

func (t *Tree) freezeNode(sn *SNode, pathActive [MaxAxes]bool) error {
	// pack this node's own container while its extractors are still node
	// local, accumulation below folds ancestor totals in
	switch sn.Kind {
	case KindBitArray:
		if err := foldBitArray(sn); err != nil {
			return err
		}
	case KindBitStruct:
		if err := packBitStruct(sn); err != nil {
			return err
		}
	}

	if p := sn.parent; p != nil {
		for a := 0; a < MaxAxes; a++ {
			sn.Extractors[a].NumElements *= p.Extractors[a].NumElements
			sn.Extractors[a].TrailingBits += p.Extractors[a].TrailingBits
		}
	}

	for a := 0; a < MaxAxes; a++ {
		if sn.Extractors[a].Active {
			pathActive[a] = true
		}
	}
	sn.activeAxes = 0
	for a := 0; a < MaxAxes; a++ {
		if pathActive[a] {
			sn.physicalIndexPosition[sn.activeAxes] = a
			sn.activeAxes++
		}
	}

	for _, ch := range sn.Children {
		ch.parent = sn
		if err := t.freezeNode(ch, pathActive); err != nil {
			return err
		}
	}
	return nil
}

// foldBitArray re-expresses a bit array's innermost extractor in whole
// physical words: the extractor's element count becomes the word count and
// the folded low order coordinate bits move to TrailingBits, so the
// addressable extent NumElements << TrailingBits is unchanged.
func foldBitArray(sn *SNode) error {
	var elem dtype.Type
	for _, ch := range sn.Children {
		if ch.Kind != KindPlace {
			return fmt.Errorf("%w: %s child under bit array %s", ErrBitPacking, ch.Kind, sn.TypeName())
		}
		if elem == nil {
			elem = ch.DType
		} else if ch.DType != elem {
			return fmt.Errorf("%w: mixed element types under %s", ErrBitPacking, sn.TypeName())
		}
	}
	if elem == nil {
		return nil
	}
	w := elem.Bits()
	wordBits := sn.PhysicalType.Bits()
	if w <= 0 || wordBits%w != 0 || !IsPow2(wordBits/w) {
		return fmt.Errorf("%w: %d bit elements in %d bit words", ErrBitPacking, w, wordBits)
	}
	perWord := wordBits / w
	if perWord == 1 {
		return nil
	}
	if len(sn.orderedAxes) == 0 {
		return fmt.Errorf("%w: bit array %s subdivides no axes", ErrBitPacking, sn.TypeName())
	}
	inner := sn.orderedAxes[len(sn.orderedAxes)-1]
	ext := &sn.Extractors[inner]
	if ext.NumElements%perWord != 0 {
		return fmt.Errorf("%w: axis %d extent %d does not fill %d element words",
			ErrBitPacking, inner, ext.NumElements, perWord)
	}
	fold := Log2(perWord)
	ext.NumBits -= fold
	ext.TrailingBits += fold
	ext.NumElements /= perWord
	return nil
}

// packBitStruct assigns each place child its bit offset within the physical
// word, in declaration order, and checks the total fits.
func packBitStruct(sn *SNode) error {
	off := 0
	for _, ch := range sn.Children {
		if ch.Kind != KindPlace {
			return fmt.Errorf("%w: %s child under bit struct %s", ErrBitPacking, ch.Kind, sn.TypeName())
		}
		ch.BitOffset = off
		off += storageBits(ch.DType)
	}
	if w := sn.PhysicalType.Bits(); off > w {
		return fmt.Errorf("%w: %d bits into %d bit word", ErrBitStructOverflow, off, w)
	}
	return nil
}

// storageBits is the width a place leaf occupies inside a bit container. A
// custom float with a separated exponent stores only its significand at its
// own leaf, the exponent is a sibling leaf accounted on its own.
func storageBits(dt dtype.Type) int {
	if cft, ok := dt.(dtype.CustomFloatType); ok {
		return cft.StorageBits()
	}
	return dt.Bits()
}
