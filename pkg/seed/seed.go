package seed

import (
	"math"
	"time"

	"github.com/canopyhq/canopy/pkg/layout"
	"github.com/canopyhq/canopy/pkg/observability"
)

// SpawnRadius is the distance between a newly seeded node and its parent,
// in UI units.
const SpawnRadius = 200.0

// Node is one vertex of a seed graph. A nil Position marks the node as
// unpositioned.
type Node struct {
	ID       string           `json:"id"`
	Position *layout.Position `json:"position,omitempty"`
}

// Edge is a parent-to-child edge of a seed graph. Edges are expected to be
// resolved parent edges (one per child at most), matching the parent
// resolution contract of package tree; extra edges are tolerated, the first
// visit wins.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the input and output of Apply.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Apply returns a copy of g in which every node has a position.
//
// Roots (nodes with no incoming edge within the graph) hang off a synthetic
// origin-anchored ghost root that never appears in the result. The walk is
// preorder depth-first, children in edge order, with a seen-set so re-visits
// through cycles are silent no-ops. An unpositioned node is placed at
// SpawnRadius from its parent's position, at an angle derived from the
// parent's own incoming angle and the child's index among its siblings, so
// subtrees fan out away from the grandparent. Positioned nodes are left
// untouched, which makes Apply idempotent.
//
// Nodes unreachable from any root (pure cycles) are rescued in a second
// sweep and placed around the origin like extra roots.
func Apply(g Graph) Graph {
	start := time.Now()
	defer func() { observability.Layout().OnSeed(len(g.Nodes), time.Since(start)) }()

	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: append([]Edge(nil), g.Edges...),
	}
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		out.Nodes[i] = n
		if n.Position != nil {
			p := *n.Position
			out.Nodes[i].Position = &p
		}
		idx[n.ID] = i
	}

	children := make(map[string][]string, len(g.Nodes))
	hasParent := make(map[string]bool, len(g.Nodes))
	for _, e := range g.Edges {
		if e.Source == e.Target {
			continue // self edges are never parent edges
		}
		if _, ok := idx[e.Source]; !ok {
			continue
		}
		if _, ok := idx[e.Target]; !ok {
			continue
		}
		children[e.Source] = append(children[e.Source], e.Target)
		hasParent[e.Target] = true
	}

	seen := make(map[string]bool, len(g.Nodes))

	// place positions child at slot k of n siblings and recurses. The fan is
	// centered on the parent's incoming angle and spans less than a full
	// turn, so children spread evenly without doubling back onto the
	// grandparent.
	var place func(childID string, parentPos layout.Position, inAngle float64, k, n int)
	var visit func(id string, pos layout.Position, inAngle float64)

	place = func(childID string, parentPos layout.Position, inAngle float64, k, n int) {
		if seen[childID] {
			return
		}
		seen[childID] = true

		child := &out.Nodes[idx[childID]]
		angle := inAngle + (float64(k)-float64(n-1)/2)*(2*math.Pi/float64(n+1))
		if child.Position == nil {
			child.Position = &layout.Position{
				X: parentPos.X + SpawnRadius*math.Cos(angle),
				Y: parentPos.Y + SpawnRadius*math.Sin(angle),
			}
		} else {
			// An already-positioned node propagates its real incoming
			// direction so its children fan out from where it actually is.
			angle = math.Atan2(child.Position.Y-parentPos.Y, child.Position.X-parentPos.X)
		}
		visit(childID, *child.Position, angle)
	}

	visit = func(id string, pos layout.Position, inAngle float64) {
		kids := children[id]
		for k, kid := range kids {
			place(kid, pos, inAngle, k, len(kids))
		}
	}

	// The ghost root anchors all real roots at the origin.
	origin := layout.Position{}
	var roots []string
	for _, n := range g.Nodes {
		if !hasParent[n.ID] {
			roots = append(roots, n.ID)
		}
	}
	for k, r := range roots {
		place(r, origin, 0, k, len(roots))
	}

	// Rescue sweep: components with no root (cycles) are unreachable from
	// the ghost root; treat their first nodes as extra roots.
	rescued := len(roots)
	for _, n := range g.Nodes {
		if !seen[n.ID] {
			place(n.ID, origin, 0, rescued, len(g.Nodes))
			rescued++
		}
	}

	return out
}
