// Package tree resolves parent relationships for a flat set of note nodes
// and orders them parent-before-child.
//
// Nodes arrive as a flat collection: each carries an optional explicit
// parent id and an ordered list of linked ids (wikilink targets) that serve
// as fallback parent candidates. BuildParentMap chooses at most one parent
// per node; TopologicalSort produces an insertion order in which every
// parent precedes its children.
//
// Both functions are pure and deterministic for a fixed input ordering.
// Graph-shape anomalies (cycles, missing parents, self references) are
// normalized rather than reported as errors: a node that cannot resolve a
// parent is simply a root.
package tree
