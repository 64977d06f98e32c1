// Package tidy implements a persistent, incrementally updatable tidy tree
// layout keyed by dense integer ids.
//
// The tree is built once and then extended: nodes are inserted
// parent-before-child (enforced, see [Tree.AddNode]), dimensions can be
// updated in place, and layout can be recomputed either fully or partially.
// Partial layout re-walks only the ancestor paths of changed nodes; subtrees
// that did not change reuse their cached contours, so the expensive first
// walk costs O(depth × branching) instead of O(n).
//
// Coordinates are orientation-agnostic: x grows along the breadth axis
// (siblings), y along the depth axis (parent to child). Callers that need a
// different on-screen convention transform positions after extraction.
//
// Horizontal placement follows the classic Reingold–Tilford scheme extended
// to variable node widths: each subtree carries a per-level contour of its
// leftmost and rightmost extents, sibling subtrees are pushed apart until
// their contours clear the peer margin, and parents are centered over their
// first and last children. Vertical placement is layered: each depth level
// is as tall as its tallest node, and consecutive levels are separated by
// the parent-child margin.
package tidy
