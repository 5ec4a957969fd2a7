package snode

import (
	"sync/atomic"

	"github.com/forestrie/go-snodetree/dtype"
)

// Tree owns one layout tree under construction and issues the node ids for
// it. Ids are unique and dense within a tree, starting at 0 for the root, so
// two trees built from the same declarations are structurally identical.
//
// A tree has two phases. While building, nodes are added with the
// constructors on SNode and fields are bound with Place; the tree is not safe
// for concurrent mutation. Freeze ends the building phase: it resolves parent
// links, accumulates extractor totals and packs the bit containers. A frozen
// tree is immutable and safe for concurrent reads, and only a frozen tree
// answers the structural queries that depend on the resolved layout.
type Tree struct {
	Root *SNode

	nextID atomic.Int64
	frozen bool

	// shared exponent placement session, see BeginSharedExpPlacement
	placingSharedExp bool
	sharedExpNode    *SNode
	sharedExpType    dtype.Type
}

func NewTree() *Tree {
	t := &Tree{}
	t.Root = t.newNode(0, KindRoot)
	return t
}

// Frozen reports whether Freeze has completed on this tree.
func (t *Tree) Frozen() bool { return t.frozen }

func (t *Tree) newNode(depth int, kind NodeKind) *SNode {
	sn := &SNode{
		ID:    t.nextID.Add(1) - 1,
		Depth: depth,
		Kind:  kind,
		DType: dtype.Gen,
		tree:  t,

		// the root path is trivially dense, InsertChild recomputes for children
		PathAllDense: true,
	}
	for i := range sn.Extractors {
		sn.Extractors[i].NumElements = 1
	}
	for i := range sn.physicalIndexPosition {
		sn.physicalIndexPosition[i] = -1
	}
	return sn
}

// BeginSharedExpPlacement opens a shared exponent placement session. Until
// the matching EndSharedExpPlacement, fields placed with an exponent bearing
// custom float type share a single stored exponent: the first such placement
// creates the exponent node and every subsequent one must carry exactly the
// same exponent type. Sessions do not nest.
func (t *Tree) BeginSharedExpPlacement() error {
	if t.frozen {
		return ErrTreeFrozen
	}
	if t.placingSharedExp {
		return ErrSharedExpActive
	}
	t.placingSharedExp = true
	return nil
}

// EndSharedExpPlacement closes the current shared exponent session. It fails
// if no session is active, or if the session placed no exponent bearing
// field (an empty session is always a declaration bug).
func (t *Tree) EndSharedExpPlacement() error {
	if !t.placingSharedExp {
		return ErrSharedExpInactive
	}
	if t.sharedExpNode == nil {
		return ErrSharedExpUnused
	}
	t.sharedExpNode = nil
	t.sharedExpType = nil
	t.placingSharedExp = false
	return nil
}
