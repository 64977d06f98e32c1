// Package pkg provides the core libraries for canopy tree layout.
//
// # Overview
//
// Canopy computes 2D positions for graphs of linked notes. The pkg directory
// is organized into a small set of layers:
//
//  1. [tree] - Input model, parent resolution, topological ordering
//  2. [tidy] - The tidy tree layout algorithm (coordinates only)
//  3. [layout] - The incremental engine: id mapping, orientations, dispatch
//  4. [seed] - Radial initial placement for unpositioned graphs
//  5. [graphio] - JSON interchange formats for the CLI and HTTP service
//  6. [cache], [errors], [observability], [buildinfo] - Supporting concerns
//
// # Architecture
//
// The typical data flow through canopy:
//
//	Note graph (ids, sizes, parent/link references)
//	         ↓
//	    [tree] package (resolve parents, order nodes)
//	         ↓
//	    [layout] package (dense ids, ghost root, orientation)
//	         ↓
//	    [tidy] package (tidy tree coordinates)
//	         ↓
//	    Position map (JSON via [graphio])
//
// # Quick Start
//
// Lay out a small tree:
//
//	import (
//	    "github.com/canopyhq/canopy/pkg/layout"
//	    "github.com/canopyhq/canopy/pkg/tree"
//	)
//
//	engine, err := layout.New()
//	if err != nil {
//	    return err
//	}
//	positions, err := engine.Position(layout.Request{
//	    Nodes: []tree.NodeInfo{
//	        {ID: "root", Size: tree.Size{Width: 100, Height: 50}},
//	        {ID: "child", Size: tree.Size{Width: 100, Height: 50}, ParentID: "root"},
//	    },
//	})
//
// Later batches go through the same engine with Request.NewNodes, which
// extends the existing tree instead of rebuilding it.
package pkg
