package snode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpFormat(t *testing.T) {
	tr := NewTree()

	p, err := tr.Root.Pointer([]Axis{0}, []int{4})
	require.NoError(t, err)
	x := newTestField("x", cf16(6))
	_, err = p.Place(x)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tr.Root.Dump(&buf))

	want := "S0root\n" +
		"  S1pointer\n" +
		"    S2place<cu6>\n" +
		"    S3place<cf(ci10,cu6)> exp=S2\n"
	require.Equal(t, want, buf.String())

	require.Equal(t, want, tr.Root.TreeString())
}

func TestDumpWorksWhileBuildingAndAfterFreeze(t *testing.T) {
	tr := NewTree()

	d, err := tr.Root.Dense([]Axis{0}, []int{48})
	require.NoError(t, err)
	x := newTestField("x", cf16(6))
	_, err = d.Place(x)
	require.NoError(t, err)

	before := tr.Root.TreeString()
	require.NoError(t, tr.Freeze())
	require.Equal(t, before, tr.Root.TreeString())
}
