package layout

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/canopyhq/canopy/pkg/observability"
	"github.com/canopyhq/canopy/pkg/tidy"
	"github.com/canopyhq/canopy/pkg/tree"
)

// GhostRootID is the string id of the synthetic root that unifies all real
// roots under one ancestor. It never appears in returned position maps.
const GhostRootID = "__GHOST_ROOT__"

// ghostDenseID is permanently reserved for the ghost root.
const ghostDenseID = 0

// Request is the input to [Engine.Position]. Nodes is the complete current
// node set; NewNodes holds only the nodes introduced since the last call.
type Request struct {
	Nodes    []tree.NodeInfo
	NewNodes []tree.NodeInfo
}

// Engine maintains a persistent tree layout across calls. Create one with
// New and keep it for the lifetime of the graph view; FullBuild resets it,
// AddNodes and UpdateNodeDimensions extend it in place.
type Engine struct {
	orientation Orientation
	spacing     tidy.Spacing
	spacingSet  bool
	logger      *log.Logger

	tree   *tidy.Tree
	dense  map[string]int // string id -> dense id
	names  map[int]string // dense id -> string id
	nextID int
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithOrientation fixes the engine's coordinate orientation.
// The default is TopDown.
func WithOrientation(o Orientation) Option {
	return func(e *Engine) { e.orientation = o }
}

// WithSpacing overrides the default spacing profile.
func WithSpacing(s tidy.Spacing) Option {
	return func(e *Engine) {
		e.spacing = s
		e.spacingSet = true
	}
}

// WithLogger sets the logger used for diagnostic notices (dropped nodes,
// degraded incremental calls). The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an empty engine. Without WithSpacing, the process-wide default
// spacing profile is loaded lazily; a failed load is returned as an
// initialization error.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		orientation: TopDown,
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.spacingSet {
		sp, err := tidy.DefaultSpacing()
		if err != nil {
			return nil, fmt.Errorf("initialize layout engine: %w", err)
		}
		e.spacing = sp
	}
	e.reset()
	return e, nil
}

// Orientation returns the orientation fixed at construction.
func (e *Engine) Orientation() Orientation { return e.orientation }

// built reports whether the engine holds any real nodes (more than just the
// ghost root).
func (e *Engine) built() bool {
	return e.tree != nil && e.tree.Len() > 1
}

// reset discards all persistent state: the backing tree, both id maps, and
// the dense id counter.
func (e *Engine) reset() {
	e.tree = nil
	e.dense = make(map[string]int)
	e.names = make(map[int]string)
	e.nextID = ghostDenseID + 1
}

// assign returns the dense id for a string id, allocating the next integer
// on first sight. Once assigned, an id never changes for this engine
// instance (until a FullBuild reset).
func (e *Engine) assign(id string) int {
	if d, ok := e.dense[id]; ok {
		return d
	}
	d := e.nextID
	e.nextID++
	e.dense[id] = d
	e.names[d] = id
	return d
}

// Position dispatches on engine state: the first call with nodes performs a
// full build over Nodes plus NewNodes; later calls with a non-empty NewNodes
// extend the tree incrementally; anything else is a no-op returning an empty
// map.
func (e *Engine) Position(req Request) (map[string]Position, error) {
	switch {
	case !e.built():
		all := make([]tree.NodeInfo, 0, len(req.Nodes)+len(req.NewNodes))
		all = append(all, req.Nodes...)
		all = append(all, req.NewNodes...)
		return e.FullBuild(all)
	case len(req.NewNodes) > 0:
		return e.AddNodes(req.NewNodes)
	default:
		return map[string]Position{}, nil
	}
}

// FullBuild resets the engine and lays out the given node set from scratch.
// An empty node set resets state and returns an empty map without creating
// a backing tree.
func (e *Engine) FullBuild(nodes []tree.NodeInfo) (map[string]Position, error) {
	start := time.Now()
	positions, err := e.fullBuild(nodes)
	observability.Layout().OnFullBuild(len(nodes), time.Since(start), err)
	return positions, err
}

func (e *Engine) fullBuild(nodes []tree.NodeInfo) (map[string]Position, error) {
	e.reset()
	if len(nodes) == 0 {
		return map[string]Position{}, nil
	}

	tr := tidy.New(e.spacing)
	if err := tr.AddNode(ghostDenseID, 0, 0, tidy.NoParent); err != nil {
		return nil, fmt.Errorf("insert ghost root: %w", err)
	}
	e.names[ghostDenseID] = GhostRootID

	for _, n := range nodes {
		e.assign(n.ID)
	}

	parents := tree.BuildParentMap(nodes)
	sorted, dropped := tree.TopologicalSort(nodes, parents)
	if dropped > 0 {
		e.logger.Warn("full build dropped unreachable nodes", "count", dropped)
	}

	for _, n := range sorted {
		id := e.dense[n.ID]
		if tr.Contains(id) {
			continue
		}
		parentID := ghostDenseID
		if p, ok := parents[n.ID]; ok {
			parentID = e.dense[p]
		}
		w, h := e.orientation.engineSize(n.Size)
		if err := tr.AddNode(id, w, h, parentID); err != nil {
			return nil, fmt.Errorf("insert node %q: %w", n.ID, err)
		}
	}

	tr.Layout()
	e.tree = tr
	return e.extract(), nil
}

// AddNodes extends the existing tree with only the given nodes. Nodes whose
// ids are already tracked are skipped. Calling AddNodes before any full
// build degrades to FullBuild over just the new nodes, with a diagnostic
// notice; the caller is expected to supply the complete node set on its next
// full build.
func (e *Engine) AddNodes(newNodes []tree.NodeInfo) (map[string]Position, error) {
	if !e.built() {
		e.logger.Warn("incremental add before full build; rebuilding from new nodes only",
			"count", len(newNodes))
		return e.FullBuild(newNodes)
	}

	start := time.Now()
	positions, err := e.addNodes(newNodes)
	observability.Layout().OnAddNodes(len(newNodes), time.Since(start), err)
	return positions, err
}

func (e *Engine) addNodes(newNodes []tree.NodeInfo) (map[string]Position, error) {
	if len(newNodes) == 0 {
		return map[string]Position{}, nil
	}

	for _, n := range newNodes {
		e.assign(n.ID)
	}

	// The restricted parent map only orders nodes against parents in the
	// same batch; nodes whose real parent is already in the tree have no
	// ordering dependency and sort as roots of the batch.
	restricted := tree.BuildParentMap(newNodes)
	sorted, dropped := tree.TopologicalSort(newNodes, restricted)
	if dropped > 0 {
		e.logger.Warn("incremental add dropped unreachable nodes", "count", dropped)
	}

	var inserted []int
	for _, n := range sorted {
		id := e.dense[n.ID]
		if e.tree.Contains(id) {
			continue
		}
		w, h := e.orientation.engineSize(n.Size)
		if err := e.tree.AddNode(id, w, h, e.resolveParent(n)); err != nil {
			return nil, fmt.Errorf("insert node %q: %w", n.ID, err)
		}
		inserted = append(inserted, id)
	}

	if len(inserted) == 0 {
		return map[string]Position{}, nil
	}

	e.tree.PartialLayout(inserted)
	return e.extract(), nil
}

// resolveParent picks a node's true parent dense id against everything the
// tree currently holds: the explicit parent when known, else the first known
// linked id, else the ghost root.
func (e *Engine) resolveParent(n tree.NodeInfo) int {
	if n.ParentID != "" && n.ParentID != n.ID {
		if d, ok := e.dense[n.ParentID]; ok && e.tree.Contains(d) {
			return d
		}
	}
	for _, linked := range n.LinkedNodeIDs {
		if linked == n.ID {
			continue
		}
		if d, ok := e.dense[linked]; ok && e.tree.Contains(d) {
			return d
		}
	}
	return ghostDenseID
}

// UpdateNodeDimensions pushes new box sizes for the given ids into the tree
// and relays out the affected paths. Ids without a dense mapping and ids
// missing from sizes are ignored. Returns an empty map when nothing changed.
func (e *Engine) UpdateNodeDimensions(ids []string, sizes map[string]tree.Size) (map[string]Position, error) {
	if !e.built() {
		return map[string]Position{}, nil
	}

	var changed []int
	for _, id := range ids {
		d, ok := e.dense[id]
		if !ok || !e.tree.Contains(d) {
			continue
		}
		size, ok := sizes[id]
		if !ok {
			continue
		}
		w, h := e.orientation.engineSize(size)
		if err := e.tree.SetDimensions(d, w, h); err != nil {
			return nil, fmt.Errorf("resize node %q: %w", id, err)
		}
		changed = append(changed, d)
	}

	if len(changed) == 0 {
		return map[string]Position{}, nil
	}

	e.tree.PartialLayout(changed)
	return e.extract(), nil
}

// extract translates every current position except the ghost root's into UI
// space.
func (e *Engine) extract() map[string]Position {
	out := make(map[string]Position, e.tree.Len()-1)
	e.tree.Each(func(id int, x, y float64) {
		if id == ghostDenseID {
			return
		}
		out[e.names[id]] = e.orientation.uiPosition(x, y)
	})
	return out
}

// Bounds returns the min and max extents of a position map. ok is false for
// an empty map.
func Bounds(positions map[string]Position) (minPos, maxPos Position, ok bool) {
	for _, p := range positions {
		if !ok {
			minPos, maxPos, ok = p, p, true
			continue
		}
		if p.X < minPos.X {
			minPos.X = p.X
		}
		if p.Y < minPos.Y {
			minPos.Y = p.Y
		}
		if p.X > maxPos.X {
			maxPos.X = p.X
		}
		if p.Y > maxPos.Y {
			maxPos.Y = p.Y
		}
	}
	return minPos, maxPos, ok
}
