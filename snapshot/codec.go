package snapshot

import (
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"

	"github.com/forestrie/go-snodetree/snode"
)

// Codec marshals snapshots with deterministic CBOR, so two captures of
// structurally identical trees differ only in the header identity fields.
type Codec struct {
	cbor dtcbor.CBORCodec
}

func NewCodec() (Codec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(), // unsigned int decodes to uint64
	)
	if err != nil {
		return Codec{}, err
	}
	return Codec{cbor: codec}, nil
}

// EncodeTree builds and marshals a snapshot of the frozen tree.
func (c *Codec) EncodeTree(t *snode.Tree) ([]byte, error) {
	s, err := Build(t)
	if err != nil {
		return nil, err
	}
	return c.Encode(s)
}

func (c *Codec) Encode(s *Snapshot) ([]byte, error) {
	return c.cbor.MarshalCBOR(s)
}

// Decode unmarshals a snapshot and validates its header.
func (c *Codec) Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := c.cbor.UnmarshalInto(data, &s); err != nil {
		return nil, err
	}
	if s.Header.Magic != SnapshotMagic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, s.Header.Magic)
	}
	if s.Header.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, s.Header.Version)
	}
	if int(s.Header.NodeCount) != len(s.Nodes) {
		return nil, fmt.Errorf("%w: header says %d, table has %d",
			ErrBadNodeCount, s.Header.NodeCount, len(s.Nodes))
	}
	return &s, nil
}
