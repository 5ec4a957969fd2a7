// Package snapshot serializes frozen layout trees to a deterministic flat
// record format, for archival and for diffing layouts across builds.
package snapshot

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/forestrie/go-snodetree/dtype"
	"github.com/forestrie/go-snodetree/snode"
)

const (
	SnapshotMagic = "SNTREE"

	SnapshotVersion = uint8(1)
)

var (
	ErrBadMagic     = errors.New("snapshot: header magic invalid")
	ErrBadVersion   = errors.New("snapshot: header version invalid")
	ErrBadNodeCount = errors.New("snapshot: header node count invalid")
)

// Header identifies one captured snapshot. The identity and capture time
// vary per capture; everything under Nodes depends only on the tree.
type Header struct {
	Magic      string    `cbor:"1,keyasint"`
	Version    uint8     `cbor:"2,keyasint"`
	SnapshotID uuid.UUID `cbor:"3,keyasint"`
	CreatedMS  int64     `cbor:"4,keyasint"`
	NodeCount  uint32    `cbor:"5,keyasint"`
}

// ExtractorRecord captures one active extractor of a node.
type ExtractorRecord struct {
	Axis         uint8 `cbor:"1,keyasint"`
	NumBits      int   `cbor:"2,keyasint"`
	TrailingBits int   `cbor:"3,keyasint,omitempty"`
	NumElements  int   `cbor:"4,keyasint"`
}

// NodeRecord is one node of the frozen tree in flat form. References to
// other nodes are by id, -1 meaning none. Types are recorded by their
// canonical strings.
type NodeRecord struct {
	ID                 int64             `cbor:"1,keyasint"`
	ParentID           int64             `cbor:"2,keyasint"`
	Depth              int               `cbor:"3,keyasint"`
	Kind               uint8             `cbor:"4,keyasint"`
	Name               string            `cbor:"5,keyasint,omitempty"`
	N                  int64             `cbor:"6,keyasint"`
	DType              string            `cbor:"7,keyasint,omitempty"`
	PhysicalType       string            `cbor:"8,keyasint,omitempty"`
	ChunkSize          int               `cbor:"9,keyasint,omitempty"`
	ExpID              int64             `cbor:"10,keyasint"`
	BitOffset          int               `cbor:"11,keyasint,omitempty"`
	PathAllDense       bool              `cbor:"12,keyasint,omitempty"`
	BitLevel           bool              `cbor:"13,keyasint,omitempty"`
	OwnsSharedExponent bool              `cbor:"14,keyasint,omitempty"`
	IndexOffsets       []int             `cbor:"15,keyasint,omitempty"`
	Extractors         []ExtractorRecord `cbor:"16,keyasint,omitempty"`
}

// Snapshot is the codec root: a header and the node table in id order.
type Snapshot struct {
	Header Header       `cbor:"1,keyasint"`
	Nodes  []NodeRecord `cbor:"2,keyasint"`
}

// Build captures a frozen tree. Node ids are dense per tree, so the node
// table is complete and ordered by id.
func Build(t *snode.Tree) (*Snapshot, error) {
	if !t.Frozen() {
		return nil, snode.ErrTreeNotFrozen
	}
	var nodes []NodeRecord
	var walk func(sn *snode.SNode) error
	walk = func(sn *snode.SNode) error {
		rec, err := newNodeRecord(sn)
		if err != nil {
			return err
		}
		nodes = append(nodes, rec)
		for _, ch := range sn.Children {
			if err := walk(ch); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(t.Root); err != nil {
		return nil, err
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	return &Snapshot{
		Header: Header{
			Magic:      SnapshotMagic,
			Version:    SnapshotVersion,
			SnapshotID: uuid.New(),
			CreatedMS:  time.Now().UnixMilli(),
			NodeCount:  uint32(len(nodes)),
		},
		Nodes: nodes,
	}, nil
}

func newNodeRecord(sn *snode.SNode) (NodeRecord, error) {
	parent, err := sn.Parent()
	if err != nil {
		return NodeRecord{}, err
	}
	parentID := int64(-1)
	if parent != nil {
		parentID = parent.ID
	}
	expID := int64(-1)
	if sn.ExpNode != nil {
		expID = sn.ExpNode.ID
	}
	rec := NodeRecord{
		ID:                 sn.ID,
		ParentID:           parentID,
		Depth:              sn.Depth,
		Kind:               uint8(sn.Kind),
		Name:               sn.Name,
		N:                  sn.N,
		ExpID:              expID,
		ChunkSize:          sn.ChunkSize,
		BitOffset:          sn.BitOffset,
		PathAllDense:       sn.PathAllDense,
		BitLevel:           sn.BitLevel,
		OwnsSharedExponent: sn.OwnsSharedExponent,
	}
	if sn.DType != nil && sn.DType != dtype.Type(dtype.Gen) {
		rec.DType = sn.DType.String()
	}
	if sn.PhysicalType != nil {
		rec.PhysicalType = sn.PhysicalType.String()
	}
	if len(sn.IndexOffsets) > 0 {
		rec.IndexOffsets = append([]int(nil), sn.IndexOffsets...)
	}
	for a := 0; a < snode.MaxAxes; a++ {
		ext := sn.Extractors[a]
		if !ext.Active {
			continue
		}
		rec.Extractors = append(rec.Extractors, ExtractorRecord{
			Axis:         uint8(a),
			NumBits:      ext.NumBits,
			TrailingBits: ext.TrailingBits,
			NumElements:  ext.NumElements,
		})
	}
	return rec, nil
}
