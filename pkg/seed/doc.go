// Package seed assigns starting positions to unpositioned nodes of a note
// graph.
//
// It is the lightweight alternative to the full layout engine: no backing
// tree structure, no incremental state, just a preorder walk in 2D Euclidean
// space. Nodes that already have a position keep it untouched; each
// unpositioned node is placed at a fixed radial offset from its parent, with
// siblings fanned out evenly away from the grandparent's direction. Useful
// for seeding freshly created notes before a proper relayout.
package seed
