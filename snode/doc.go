package snode

/*

# SNode layout trees

This package builds compile time descriptions of how multi dimensional
fields are laid out in memory: a tree of structural containers whose leaves
(place nodes) hold the declared fields. The tree is pure description, no
cell storage is allocated here; code generators and runtimes walk the frozen
tree to materialize and address storage.

## Node kinds

  - root: the fixed tree entry, exactly one per tree
  - dense: fully materialized grid over one or more axes
  - pointer, hash, bitmasked, dynamic: sparse containers whose cells need
    activation before use
  - bit_struct, bit_array: containers packing sub word elements into one
    physical machine word
  - place: a leaf binding one declared field at a fixed position

## Coordinate bit accounting

Each node carries one Extractor per axis. Activating an axis at a node
consumes that node's share of the axis coordinate bits: a dense node of size
48 along an axis is promoted to 64 cells and consumes 6 bits there, while
the requested 48 is retained so shape queries never report padding. The full
coordinate of a cell is the concatenation of extractor bits down the path
from the root.

## Two phases

A tree is built through the constructors (`Dense`, `Pointer`, `BitStruct`,
...), `Place` and `LazyGrad`, and then frozen exactly once:

 1. building: nodes append children, fields bind to place leaves. Parent
    links do not exist yet and structural queries fail.
 2. frozen: `Tree.Freeze` resolves parent links, packs bit containers,
    accumulates extractor totals and the active axis set of every node.
    The tree is immutable from here on.

All mutations after `Freeze` fail with `ErrTreeFrozen`, and the queries that
depend on resolution (`Parent`, `NumBits`, `ShapeAlongAxis`,
`LeastSparseAncestor`, `ActiveAxis`) fail with `ErrTreeNotFrozen` before it.

## Concurrency

Building is single threaded by design: construction order determines node
ids and sibling order, both of which are meaningful to downstream layout.
A frozen tree is never written again and may be read from any number of
goroutines.

Violations are programmer errors in the embedding frontend, not runtime
conditions, so every operation surfaces them as errors built on the
package's sentinel values rather than attempting repair.

*/
