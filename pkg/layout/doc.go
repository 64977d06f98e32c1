// Package layout computes 2D positions for note graphs using a persistent,
// incrementally updatable tidy tree.
//
// An [Engine] owns one backing [tidy.Tree] plus the bookkeeping around it:
// a bijection between stable string node ids and the dense integer ids the
// tree is keyed by, and a synthetic ghost root (dense id 0) that gives every
// real root a common ancestor, so the structure is always a single tree even
// when the input is a forest.
//
// The engine supports a full rebuild from a complete node set and an
// incremental extension that inserts only newly introduced nodes, leaving
// the rest of the tree in place. Positions come back in UI space: the
// engine's internal coordinates are mapped through the instance's
// [Orientation], which is fixed at construction.
//
// Engines are not safe for concurrent use; callers serialize access to a
// given instance.
package layout
