package snode

import (
	"fmt"

	"github.com/forestrie/go-snodetree/dtype"
)

// SNode is one node of the layout tree: a structural container (dense,
// pointer, hash, bitmasked, dynamic, bit_struct, bit_array) or a place leaf
// holding one field. The exported fields describe the declared shape and are
// read-only for callers; mutate the tree only through the constructors,
// Place and Freeze.
type SNode struct {
	// ID is unique and dense within the owning tree, in creation order.
	ID    int64
	Depth int
	Kind  NodeKind

	// Name is the bound field identifier on place nodes, "" elsewhere.
	Name string

	Children []*SNode

	// Extractors hold the per axis coordinate bit decomposition, indexed by
	// Axis.
	Extractors [MaxAxes]Extractor

	// N is the flattened cell count of the container, the product of the
	// promoted axis extents.
	N int64

	// DType is the element type of a place node, dtype.Gen elsewhere.
	DType dtype.Type

	// PhysicalType is the backing word type of bit_struct and bit_array
	// containers.
	PhysicalType dtype.Type

	// ChunkSize is the allocation granularity of dynamic nodes.
	ChunkSize int

	// ExpNode points at the place node storing the exponent when the element
	// type stores its exponent separately. ExponentUsers is the reverse
	// relation, held by the exponent node itself.
	ExpNode       *SNode
	ExponentUsers []*SNode

	// OwnsSharedExponent marks place nodes created during a shared exponent
	// placement session.
	OwnsSharedExponent bool

	// IndexOffsets biases the coordinates used to address this place node,
	// one entry per axis of the access.
	IndexOffsets []int

	// HasAmbient and AmbientValue record the declared fill value cells take
	// on activation.
	HasAmbient   bool
	AmbientValue any

	// PathAllDense is true when no node from the root down to and including
	// this one needs activation.
	PathAllDense bool

	// BitLevel is true for nodes addressed below machine word granularity,
	// that is nodes under a bit_struct or bit_array container.
	BitLevel bool

	// BitOffset is the position of a place node inside its bit_struct word,
	// assigned by Freeze.
	BitOffset int

	// Field is the bound field of a place node. It is nil for structural
	// nodes, and for exponent nodes the tree creates on a field's behalf.
	Field Field

	tree   *Tree
	parent *SNode

	activeAxes            int
	physicalIndexPosition [MaxAxes]int

	// creation order of the activated axes, innermost last
	orderedAxes []Axis
}

// TypeName returns the canonical node name, "S<id>".
func (sn *SNode) TypeName() string {
	return fmt.Sprintf("S%d", sn.ID)
}

// HintedTypeName extends TypeName with the node kind and, for typed nodes,
// the element or word type, e.g. "S3place<f32>".
func (sn *SNode) HintedTypeName() string {
	var suffix string
	switch sn.Kind {
	case KindPlace:
		suffix = fmt.Sprintf("<%s>", sn.DType)
	case KindBitStruct, KindBitArray:
		if sn.PhysicalType != nil {
			suffix = fmt.Sprintf("<%s>", sn.PhysicalType)
		}
	}
	if sn.BitLevel {
		suffix += "<bit>"
	}
	return fmt.Sprintf("S%d%s%s", sn.ID, sn.Kind, suffix)
}

// IsPlace reports whether this is a place leaf.
func (sn *SNode) IsPlace() bool { return sn.Kind == KindPlace }

// IsScalar reports whether this is a place leaf addressed by no axes at all,
// a zero dimensional field. Meaningful once the tree is frozen.
func (sn *SNode) IsScalar() bool { return sn.IsPlace() && sn.activeAxes == 0 }

// NeedsActivation reports whether cells of this node are lazily allocated.
func (sn *SNode) NeedsActivation() bool { return sn.Kind.NeedsActivation() }

// NumActiveAxes is the number of axes active anywhere on the path from the
// root to this node. Resolved by Freeze, 0 before.
func (sn *SNode) NumActiveAxes() int { return sn.activeAxes }
