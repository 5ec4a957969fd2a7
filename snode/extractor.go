package snode

// Extractor records how a node decomposes the coordinate bits of one axis.
// Each node carries MaxAxes of these, one per axis; only the extractors a
// node activates contribute index bits at that level.
//
// Before the tree is frozen, NumBits and NumElements describe the node's own
// subdivision of the axis: NumBits index bits (the promoted extent), over
// NumElements requested elements. Freezing accumulates totals down the tree,
// after which NumElements is the cumulative element count along the axis at
// this node and TrailingBits counts low order coordinate bits folded below
// the addressable unit (only bit array containers fold bits).
type Extractor struct {
	// Active is set when the owning node subdivides this axis.
	Active bool

	NumBits      int
	TrailingBits int
	NumElements  int
}

func (e *Extractor) activate(numBits int) {
	e.Active = true
	e.NumBits = numBits
}
