package layout_test

import (
	"fmt"

	"github.com/canopyhq/canopy/pkg/layout"
	"github.com/canopyhq/canopy/pkg/tidy"
	"github.com/canopyhq/canopy/pkg/tree"
)

// Build a small note tree, then extend it incrementally as a new note
// appears.
func Example() {
	engine, err := layout.New(
		layout.WithOrientation(layout.TopDown),
		layout.WithSpacing(tidy.Spacing{ParentChildMargin: 40, PeerMargin: 10}),
	)
	if err != nil {
		panic(err)
	}

	positions, err := engine.FullBuild([]tree.NodeInfo{
		{ID: "inbox", Size: tree.Size{Width: 80, Height: 40}},
		{ID: "ideas", Size: tree.Size{Width: 80, Height: 40}, ParentID: "inbox"},
	})
	if err != nil {
		panic(err)
	}
	fmt.Println("after full build:", len(positions), "notes placed")

	positions, err = engine.AddNodes([]tree.NodeInfo{
		{ID: "reading-list", Size: tree.Size{Width: 80, Height: 40}, LinkedNodeIDs: []string{"ideas"}},
	})
	if err != nil {
		panic(err)
	}
	fmt.Println("after incremental add:", len(positions), "notes placed")

	// Output:
	// after full build: 2 notes placed
	// after incremental add: 3 notes placed
}
