package snode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-snodetree/dtype"
)

func TestNewTreeRoot(t *testing.T) {
	tr := NewTree()
	require.NotNil(t, tr.Root)
	require.Equal(t, int64(0), tr.Root.ID)
	require.Equal(t, 0, tr.Root.Depth)
	require.Equal(t, KindRoot, tr.Root.Kind)
	require.True(t, tr.Root.PathAllDense)
	require.False(t, tr.Root.BitLevel)
	require.False(t, tr.Frozen())

	for a := 0; a < MaxAxes; a++ {
		require.False(t, tr.Root.Extractors[a].Active)
		require.Equal(t, 1, tr.Root.Extractors[a].NumElements)
		require.Equal(t, 0, tr.Root.Extractors[a].NumBits)
	}
}

func TestNodeIDsAreDenseAndOrdered(t *testing.T) {
	tr := NewTree()

	a, err := tr.Root.Pointer([]Axis{0}, []int{4})
	require.NoError(t, err)
	b, err := a.Dense([]Axis{0}, []int{16})
	require.NoError(t, err)
	c, err := tr.Root.Dense([]Axis{1}, []int{8})
	require.NoError(t, err)

	require.Equal(t, int64(1), a.ID)
	require.Equal(t, int64(2), b.ID)
	require.Equal(t, int64(3), c.ID)

	require.Equal(t, 1, a.Depth)
	require.Equal(t, 2, b.Depth)
	require.Equal(t, 1, c.Depth)

	// sibling order is construction order
	require.Equal(t, []*SNode{a, c}, tr.Root.Children)
}

func TestSizePromotionRetainsRequestedExtent(t *testing.T) {
	tr := NewTree()

	n, err := tr.Root.Dense([]Axis{0}, []int{48})
	require.NoError(t, err)

	require.Equal(t, int64(64), n.N)
	ext := n.Extractors[0]
	require.True(t, ext.Active)
	require.Equal(t, 6, ext.NumBits)
	require.Equal(t, 48, ext.NumElements)
	require.Equal(t, 0, ext.TrailingBits)
}

func TestPowerOfTwoSizeIsNotPromoted(t *testing.T) {
	tr := NewTree()

	n, err := tr.Root.Dense([]Axis{0, 1}, []int{16, 16})
	require.NoError(t, err)

	require.Equal(t, int64(256), n.N)
	for _, a := range []Axis{0, 1} {
		require.True(t, n.Extractors[a].Active)
		require.Equal(t, 4, n.Extractors[a].NumBits)
		require.Equal(t, 16, n.Extractors[a].NumElements)
	}
}

func TestSingleSizeBroadcastsAcrossAxes(t *testing.T) {
	tr := NewTree()

	n, err := tr.Root.Dense([]Axis{0, 1, 2}, []int{4})
	require.NoError(t, err)

	require.Equal(t, int64(64), n.N)
	for _, a := range []Axis{0, 1, 2} {
		require.True(t, n.Extractors[a].Active)
		require.Equal(t, 2, n.Extractors[a].NumBits)
		require.Equal(t, 4, n.Extractors[a].NumElements)
	}
}

func TestCreateNodeValidation(t *testing.T) {
	tr := NewTree()

	_, err := tr.Root.Dense([]Axis{0, 1}, []int{4, 4, 4})
	require.ErrorIs(t, err, ErrAxisSizeMismatch)

	_, err = tr.Root.Dense([]Axis{MaxAxes}, []int{4})
	require.ErrorIs(t, err, ErrAxisRange)

	_, err = tr.Root.Dense([]Axis{0}, []int{0})
	require.ErrorIs(t, err, ErrSizeRange)

	_, err = tr.Root.Dense([]Axis{0}, []int{-3})
	require.ErrorIs(t, err, ErrSizeRange)

	// failed constructions must not leave part built children behind
	require.Empty(t, tr.Root.Children)
}

func TestHashOnlyDirectlyUnderRoot(t *testing.T) {
	tr := NewTree()

	h, err := tr.Root.Hash([]Axis{0}, []int{16})
	require.NoError(t, err)
	require.Equal(t, KindHash, h.Kind)

	d, err := tr.Root.Dense([]Axis{0}, []int{4})
	require.NoError(t, err)
	_, err = d.Hash([]Axis{1}, []int{16})
	require.ErrorIs(t, err, ErrHashNotUnderRoot)
}

func TestRootKindCannotBeInserted(t *testing.T) {
	tr := NewTree()

	_, err := tr.Root.InsertChild(KindRoot)
	require.ErrorIs(t, err, ErrRootChildKind)

	d, err := tr.Root.Dense([]Axis{0}, []int{4})
	require.NoError(t, err)
	_, err = d.CreateNode([]Axis{1}, []int{4}, KindRoot)
	require.ErrorIs(t, err, ErrRootChildKind)
}

func TestDensePathPropagation(t *testing.T) {
	tr := NewTree()

	d1, err := tr.Root.Dense([]Axis{0}, []int{4})
	require.NoError(t, err)
	require.True(t, d1.PathAllDense)

	d2, err := d1.Dense([]Axis{1}, []int{4})
	require.NoError(t, err)
	require.True(t, d2.PathAllDense)

	p, err := d1.Pointer([]Axis{1}, []int{4})
	require.NoError(t, err)
	require.False(t, p.PathAllDense)

	// once broken, density does not recover further down
	d3, err := p.Dense([]Axis{2}, []int{4})
	require.NoError(t, err)
	require.False(t, d3.PathAllDense)

	for _, mk := range []func() (*SNode, error){
		func() (*SNode, error) { return tr.Root.Bitmasked([]Axis{0}, []int{4}) },
		func() (*SNode, error) { return tr.Root.Dynamic(1, 64, 8) },
		func() (*SNode, error) { return tr.Root.Hash([]Axis{2}, []int{4}) },
	} {
		n, err := mk()
		require.NoError(t, err)
		require.True(t, n.NeedsActivation())
		require.False(t, n.PathAllDense)
	}
}

func TestNeedsActivationByKind(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want bool
	}{
		{KindRoot, false},
		{KindDense, false},
		{KindPointer, true},
		{KindHash, true},
		{KindBitmasked, true},
		{KindDynamic, true},
		{KindBitStruct, false},
		{KindBitArray, false},
		{KindPlace, false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, tc.kind.NeedsActivation(), tc.kind.String())
	}
}

func TestDynamicRecordsChunkSize(t *testing.T) {
	tr := NewTree()

	p, err := tr.Root.Pointer([]Axis{0}, []int{4})
	require.NoError(t, err)
	dyn, err := p.Dynamic(1, 100, 16)
	require.NoError(t, err)

	require.Equal(t, KindDynamic, dyn.Kind)
	require.Equal(t, 16, dyn.ChunkSize)
	require.Equal(t, int64(128), dyn.N)
	require.Equal(t, 100, dyn.Extractors[1].NumElements)
	require.Equal(t, 7, dyn.Extractors[1].NumBits)
}

func TestBitStructPhysicalType(t *testing.T) {
	tr := NewTree()

	d, err := tr.Root.Dense([]Axis{0}, []int{4})
	require.NoError(t, err)

	bs, err := d.BitStruct(32)
	require.NoError(t, err)
	require.Equal(t, KindBitStruct, bs.Kind)
	require.Equal(t, dtype.Type(dtype.U32), bs.PhysicalType)
	require.False(t, bs.BitLevel)

	_, err = d.BitStruct(24)
	require.ErrorIs(t, err, dtype.ErrBitWidth)
	// the failed construction added nothing
	require.Len(t, d.Children, 1)
}

func TestBitArrayPhysicalTypeAndExtractors(t *testing.T) {
	tr := NewTree()

	ba, err := tr.Root.BitArray([]Axis{0}, []int{32}, 32)
	require.NoError(t, err)
	require.Equal(t, KindBitArray, ba.Kind)
	require.Equal(t, dtype.Type(dtype.U32), ba.PhysicalType)
	require.Equal(t, int64(32), ba.N)
	require.Equal(t, 5, ba.Extractors[0].NumBits)
	require.Equal(t, 32, ba.Extractors[0].NumElements)
}

func TestBitLevelPropagation(t *testing.T) {
	tr := NewTree()

	d, err := tr.Root.Dense([]Axis{0}, []int{4})
	require.NoError(t, err)
	bs, err := d.BitStruct(32)
	require.NoError(t, err)

	leaf, err := bs.InsertChild(KindPlace)
	require.NoError(t, err)
	require.True(t, leaf.BitLevel)

	ba, err := d.BitArray([]Axis{1}, []int{32}, 32)
	require.NoError(t, err)
	cell, err := ba.InsertChild(KindPlace)
	require.NoError(t, err)
	require.True(t, cell.BitLevel)

	// word level nodes are not bit level
	require.False(t, d.BitLevel)
	require.False(t, bs.BitLevel)
	require.False(t, ba.BitLevel)
}

func TestZeroAxisDense(t *testing.T) {
	tr := NewTree()

	d, err := tr.Root.Dense(nil, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), d.N)
	for a := 0; a < MaxAxes; a++ {
		require.False(t, d.Extractors[a].Active)
	}
}
