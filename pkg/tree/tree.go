package tree

// Size is the semantic box size of a node, used for spacing during layout.
// Width and height are expected to be non-negative.
type Size struct {
	Width  float64
	Height float64
}

// NodeInfo describes one node in a layout request.
//
// ID must be unique within a single call. ParentID, when set and resolvable,
// takes priority over LinkedNodeIDs. LinkedNodeIDs are fallback parent
// candidates tried in order. A node must never list itself as a parent
// candidate; self references are skipped during resolution.
type NodeInfo struct {
	ID            string
	Size          Size
	ParentID      string
	LinkedNodeIDs []string
}

// BuildParentMap chooses a parent for every node that can resolve one.
//
// Resolution runs in two passes:
//
//  1. Explicit: a node's ParentID is accepted when it is not the node itself
//     and names another node present in nodes.
//  2. Linked fallback: for nodes still unmapped, LinkedNodeIDs are scanned in
//     order. A candidate is skipped when it is the node itself, absent from
//     nodes, or its own resolved parent is the current node (which would
//     close a two-node cycle). The first surviving candidate wins.
//
// Nodes absent from the returned map are roots.
func BuildParentMap(nodes []NodeInfo) map[string]string {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}

	parents := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if n.ParentID != "" && n.ParentID != n.ID && present[n.ParentID] {
			parents[n.ID] = n.ParentID
		}
	}

	for _, n := range nodes {
		if _, ok := parents[n.ID]; ok {
			continue
		}
		for _, candidate := range n.LinkedNodeIDs {
			if candidate == n.ID || !present[candidate] {
				continue
			}
			if parents[candidate] == n.ID {
				continue
			}
			parents[n.ID] = candidate
			break
		}
	}

	return parents
}

// TopologicalSort orders nodes so that every node appears after its parent.
//
// The traversal is breadth-first from the roots of this node set (nodes with
// no entry in parents). Children are visited in the order their nodes appear
// in the input slice, which keeps the result deterministic for a fixed input
// ordering.
//
// Nodes unreachable from any root are omitted from the result; the second
// return value reports how many were dropped. With a parent map produced by
// BuildParentMap over the same node set the count is always zero, but
// inconsistent input (a parent map from a different set) can lose nodes, and
// callers should surface a non-zero count.
func TopologicalSort(nodes []NodeInfo, parents map[string]string) ([]NodeInfo, int) {
	byID := make(map[string]NodeInfo, len(nodes))
	children := make(map[string][]string, len(nodes))
	var queue []string

	for _, n := range nodes {
		byID[n.ID] = n
		if p, ok := parents[n.ID]; ok {
			children[p] = append(children[p], n.ID)
		} else {
			queue = append(queue, n.ID)
		}
	}

	sorted := make([]NodeInfo, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, byID[id])
		queue = append(queue, children[id]...)
	}

	return sorted, len(nodes) - len(sorted)
}
