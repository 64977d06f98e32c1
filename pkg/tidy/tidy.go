package tidy

import "errors"

var (
	// ErrDuplicateNode is returned by [Tree.AddNode] when the id is already
	// present. Ids identify nodes for the lifetime of the tree and are never
	// reused.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrUnknownParent is returned by [Tree.AddNode] when the parent id has
	// not been inserted yet. Parent-before-child insertion order is a hard
	// precondition, not a convention: the layout walks assume every node's
	// parent already exists.
	ErrUnknownParent = errors.New("unknown parent id")

	// ErrMultipleRoots is returned by [Tree.AddNode] when a second parentless
	// node is inserted. The tree has exactly one root; callers that need a
	// forest insert a synthetic root first.
	ErrMultipleRoots = errors.New("tree already has a root")

	// ErrUnknownNode is returned by [Tree.SetDimensions] for ids that were
	// never inserted.
	ErrUnknownNode = errors.New("unknown node id")
)

// NoParent is the parent id passed to [Tree.AddNode] for the root node.
const NoParent = -1

// node is one vertex of the layout tree. left and right cache the subtree
// contour: entry l is the extreme x extent, relative to this node's center,
// over all descendants l levels below. A nil contour means the node has
// never been laid out.
type node struct {
	id       int
	width    float64
	height   float64
	parent   *node
	children []*node
	depth    int

	relX  float64 // center x relative to parent center
	x, y  float64 // absolute position after the second walk
	left  []float64
	right []float64
	dirty bool
}

// Tree is a persistent tidy tree layout. The zero value is not usable; call
// New. Tree is not safe for concurrent use without external synchronization.
type Tree struct {
	spacing Spacing
	nodes   map[int]*node
	root    *node
}

// New creates an empty tree with the given spacing between levels (parent to
// child) and siblings (peer to peer).
func New(spacing Spacing) *Tree {
	return &Tree{
		spacing: spacing,
		nodes:   make(map[int]*node),
	}
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Contains reports whether id has been inserted.
func (t *Tree) Contains(id int) bool {
	_, ok := t.nodes[id]
	return ok
}

// AddNode inserts a node under parentID, or as the root when parentID is
// NoParent. The parent must already be in the tree (ErrUnknownParent
// otherwise) and the id must be new (ErrDuplicateNode otherwise). The new
// node's positions are undefined until the next Layout or PartialLayout.
func (t *Tree) AddNode(id int, width, height float64, parentID int) error {
	if _, exists := t.nodes[id]; exists {
		return ErrDuplicateNode
	}

	n := &node{id: id, width: width, height: height, dirty: true}
	if parentID == NoParent {
		if t.root != nil {
			return ErrMultipleRoots
		}
		t.root = n
	} else {
		parent, ok := t.nodes[parentID]
		if !ok {
			return ErrUnknownParent
		}
		n.parent = parent
		n.depth = parent.depth + 1
		parent.children = append(parent.children, n)
	}

	t.nodes[id] = n
	t.markAncestors(n)
	return nil
}

// SetDimensions updates a node's box size. The change takes effect on the
// next Layout or PartialLayout.
func (t *Tree) SetDimensions(id int, width, height float64) error {
	n, ok := t.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	n.width = width
	n.height = height
	n.dirty = true
	t.markAncestors(n)
	return nil
}

// Layout recomputes positions for the whole tree from scratch.
func (t *Tree) Layout() {
	for _, n := range t.nodes {
		n.dirty = true
	}
	t.run()
}

// PartialLayout recomputes positions assuming only the given ids (and any
// nodes already marked by AddNode or SetDimensions) changed. Subtrees
// outside the changed ancestor paths keep their cached internal layout.
// Unknown ids are ignored.
func (t *Tree) PartialLayout(changed []int) {
	for _, id := range changed {
		if n, ok := t.nodes[id]; ok {
			n.dirty = true
			t.markAncestors(n)
		}
	}
	t.run()
}

// Position returns the computed position of id. The x coordinate is the
// node's center on the breadth axis; y is the top edge of its depth level.
// ok is false for unknown ids.
func (t *Tree) Position(id int) (x, y float64, ok bool) {
	n, found := t.nodes[id]
	if !found {
		return 0, 0, false
	}
	return n.x, n.y, true
}

// Each calls fn for every node with its current position.
// Iteration order is unspecified.
func (t *Tree) Each(fn func(id int, x, y float64)) {
	for id, n := range t.nodes {
		fn(id, n.x, n.y)
	}
}

// markAncestors flags the path from n's parent up to the root, so the first
// walk re-places every subtree the change can shift.
func (t *Tree) markAncestors(n *node) {
	for p := n.parent; p != nil && !p.dirty; p = p.parent {
		p.dirty = true
	}
}

// run executes the two layout walks. The first (post-order) walk computes
// relative child offsets and subtree contours, reusing caches of clean
// subtrees. The second (pre-order) walk accumulates absolute x and assigns
// layered y coordinates.
func (t *Tree) run() {
	if t.root == nil {
		return
	}

	t.firstWalk(t.root)

	levelY := t.levelOffsets()
	var second func(n *node, accX float64)
	second = func(n *node, accX float64) {
		n.x = accX + n.relX
		n.y = levelY[n.depth]
		for _, c := range n.children {
			second(c, n.x)
		}
	}
	t.root.relX = 0
	second(t.root, 0)
}

// levelOffsets computes the y coordinate of each depth level: levels are
// separated by the tallest node of the level above plus the parent-child
// margin.
func (t *Tree) levelOffsets() []float64 {
	maxDepth := 0
	for _, n := range t.nodes {
		if n.depth > maxDepth {
			maxDepth = n.depth
		}
	}

	maxHeight := make([]float64, maxDepth+1)
	for _, n := range t.nodes {
		if n.height > maxHeight[n.depth] {
			maxHeight[n.depth] = n.height
		}
	}

	offsets := make([]float64, maxDepth+1)
	for d := 1; d <= maxDepth; d++ {
		offsets[d] = offsets[d-1] + maxHeight[d-1] + t.spacing.ParentChildMargin
	}
	return offsets
}

// firstWalk computes n's subtree contour and the relative offsets of its
// children. Clean subtrees with a cached contour are returned as-is; any
// mutation marks the full ancestor path dirty, so a clean node's descendants
// are guaranteed unchanged.
func (t *Tree) firstWalk(n *node) {
	if !n.dirty && n.left != nil {
		return
	}

	for _, c := range n.children {
		t.firstWalk(c)
	}

	if len(n.children) == 0 {
		n.left = []float64{-n.width / 2}
		n.right = []float64{n.width / 2}
		n.dirty = false
		return
	}

	offsets := make([]float64, len(n.children))
	accLeft := append([]float64(nil), n.children[0].left...)
	accRight := append([]float64(nil), n.children[0].right...)

	for i := 1; i < len(n.children); i++ {
		c := n.children[i]

		// Push c right until its left contour clears the accumulated right
		// contour by the peer margin on every shared level.
		var off float64
		overlap := min(len(accRight), len(c.left))
		for l := 0; l < overlap; l++ {
			if need := accRight[l] + t.spacing.PeerMargin - c.left[l]; need > off {
				off = need
			}
		}
		offsets[i] = off

		for l, x := range c.right {
			if l < len(accRight) {
				accRight[l] = x + off
			} else {
				accRight = append(accRight, x+off)
			}
		}
		for l := len(accLeft); l < len(c.left); l++ {
			accLeft = append(accLeft, c.left[l]+off)
		}
	}

	// Center the parent over its first and last children.
	mid := offsets[len(offsets)-1] / 2
	for i, c := range n.children {
		c.relX = offsets[i] - mid
	}

	n.left = make([]float64, 0, len(accLeft)+1)
	n.right = make([]float64, 0, len(accRight)+1)
	n.left = append(n.left, -n.width/2)
	n.right = append(n.right, n.width/2)
	for _, x := range accLeft {
		n.left = append(n.left, x-mid)
	}
	for _, x := range accRight {
		n.right = append(n.right, x-mid)
	}
	n.dirty = false
}
