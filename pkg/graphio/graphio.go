// Package graphio reads and writes the JSON interchange formats used by the
// CLI and the HTTP service.
//
// Two formats exist: a node set (layout input: ids, sizes, parent and link
// references) and a seed graph (nodes with optional positions plus edges).
// Position output is sorted by id for deterministic, diffable files. These
// formats are transport plumbing for the tooling around the engine, not a
// persistence format for notes.
package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/canopyhq/canopy/pkg/layout"
	"github.com/canopyhq/canopy/pkg/seed"
	"github.com/canopyhq/canopy/pkg/tree"
)

// NodeJSON is the serialized form of one layout input node.
type NodeJSON struct {
	ID       string   `json:"id"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	ParentID string   `json:"parent_id,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// NodeSet is the serialized layout input: the complete node set plus any
// newly introduced nodes for incremental calls.
type NodeSet struct {
	Nodes    []NodeJSON `json:"nodes"`
	NewNodes []NodeJSON `json:"new_nodes,omitempty"`
}

// PositionJSON is one entry of a serialized position map.
type PositionJSON struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// PositionList is the serialized output of a layout run.
type PositionList struct {
	Positions []PositionJSON `json:"positions"`
}

// ToNodeInfos converts serialized nodes to the layout input type.
func ToNodeInfos(nodes []NodeJSON) []tree.NodeInfo {
	out := make([]tree.NodeInfo, len(nodes))
	for i, n := range nodes {
		out[i] = tree.NodeInfo{
			ID:            n.ID,
			Size:          tree.Size{Width: n.Width, Height: n.Height},
			ParentID:      n.ParentID,
			LinkedNodeIDs: n.Links,
		}
	}
	return out
}

// FromPositions converts a position map to its serialization format.
// Entries are sorted by ID for deterministic output.
func FromPositions(positions map[string]layout.Position) PositionList {
	out := PositionList{Positions: make([]PositionJSON, 0, len(positions))}
	for id, p := range positions {
		out.Positions = append(out.Positions, PositionJSON{ID: id, X: p.X, Y: p.Y})
	}
	slices.SortFunc(out.Positions, func(a, b PositionJSON) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// ToPositions converts a serialized position list back into a map.
func ToPositions(list PositionList) map[string]layout.Position {
	out := make(map[string]layout.Position, len(list.Positions))
	for _, p := range list.Positions {
		out[p.ID] = layout.Position{X: p.X, Y: p.Y}
	}
	return out
}

// ReadNodeSet decodes a node set from r.
func ReadNodeSet(r io.Reader) (NodeSet, error) {
	var ns NodeSet
	if err := json.NewDecoder(r).Decode(&ns); err != nil {
		return NodeSet{}, fmt.Errorf("decode node set: %w", err)
	}
	return ns, nil
}

// ReadNodeSetFile reads a node set from a JSON file.
func ReadNodeSetFile(path string) (NodeSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return NodeSet{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadNodeSet(f)
}

// WritePositions writes a position map as indented JSON to w.
func WritePositions(positions map[string]layout.Position, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromPositions(positions)); err != nil {
		return fmt.Errorf("encode positions: %w", err)
	}
	return nil
}

// WritePositionsFile writes a position map to a JSON file.
// The file is created with 0644 permissions.
func WritePositionsFile(positions map[string]layout.Position, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePositions(positions, f)
}

// MarshalPositions converts a position map to JSON bytes.
func MarshalPositions(positions map[string]layout.Position) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePositions(positions, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadSeedGraph decodes a seed graph from r.
func ReadSeedGraph(r io.Reader) (seed.Graph, error) {
	var g seed.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return seed.Graph{}, fmt.Errorf("decode seed graph: %w", err)
	}
	return g, nil
}

// ReadSeedGraphFile reads a seed graph from a JSON file.
func ReadSeedGraphFile(path string) (seed.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return seed.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSeedGraph(f)
}

// WriteSeedGraph writes a seed graph as indented JSON to w.
func WriteSeedGraph(g seed.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode seed graph: %w", err)
	}
	return nil
}

// WriteSeedGraphFile writes a seed graph to a JSON file.
// The file is created with 0644 permissions.
func WriteSeedGraphFile(g seed.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSeedGraph(g, f)
}
