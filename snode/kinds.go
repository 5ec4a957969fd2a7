package snode

// NodeKind is the structural role of a node in the layout tree.
type NodeKind uint8

const (
	KindUndefined NodeKind = iota
	KindRoot
	KindDense
	KindPointer
	KindHash
	KindBitmasked
	KindDynamic
	KindBitStruct
	KindBitArray
	KindPlace
)

var kindNames = map[NodeKind]string{
	KindUndefined: "undefined",
	KindRoot:      "root",
	KindDense:     "dense",
	KindPointer:   "pointer",
	KindHash:      "hash",
	KindBitmasked: "bitmasked",
	KindDynamic:   "dynamic",
	KindBitStruct: "bit_struct",
	KindBitArray:  "bit_array",
	KindPlace:     "place",
}

func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "undefined"
}

// NeedsActivation reports whether cells of this kind are allocated lazily
// and must be activated before use. Dense kinds are fully materialized up
// front and never need activation.
func (k NodeKind) NeedsActivation() bool {
	switch k {
	case KindPointer, KindHash, KindBitmasked, KindDynamic:
		return true
	}
	return false
}
