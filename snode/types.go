package snode

import "errors"

// MaxAxes is the fixed number of addressable axes. Every node carries one
// extractor slot per axis whether or not the axis is active there.
const MaxAxes = 8

// Axis identifies one of the MaxAxes addressable axes, 0 is outermost.
type Axis uint8

var (
	ErrAxisSizeMismatch = errors.New("snode: axis and size counts do not match")
	ErrAxisRange        = errors.New("snode: axis out of range")
	ErrSizeRange        = errors.New("snode: axis size must be positive")
	ErrHashNotUnderRoot = errors.New("snode: hash nodes must be attached to the root")
	ErrRootChildKind    = errors.New("snode: root nodes cannot be inserted as children")

	ErrNotPlaceNode       = errors.New("snode: not a place node")
	ErrFieldAlreadyPlaced = errors.New("snode: field is already placed")
	ErrOffsetsAlreadySet  = errors.New("snode: index offsets already set")
	ErrEmptyOffsets       = errors.New("snode: index offsets must not be empty")

	ErrSharedExpActive       = errors.New("snode: shared exponent placement already active")
	ErrSharedExpInactive     = errors.New("snode: shared exponent placement not active")
	ErrSharedExpUnused       = errors.New("snode: shared exponent placement placed no exponent")
	ErrSharedExpTypeMismatch = errors.New("snode: shared exponent type mismatch")

	ErrNoField          = errors.New("snode: no field bound to node")
	ErrNoGrad           = errors.New("snode: node has no gradient")
	ErrNoAdjoint        = errors.New("snode: primal field has no declared adjoint")
	ErrNoSparseAncestor = errors.New("snode: no sparse ancestor on path to root")

	ErrTreeFrozen    = errors.New("snode: tree is frozen")
	ErrTreeNotFrozen = errors.New("snode: tree is not frozen")

	ErrAxisOutOfRange    = errors.New("snode: active axis index out of range")
	ErrBitPacking        = errors.New("snode: invalid bit packing")
	ErrBitStructOverflow = errors.New("snode: bit struct fields exceed physical word")
)
