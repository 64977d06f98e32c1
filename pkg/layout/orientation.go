package layout

import (
	"fmt"
	"math"

	"github.com/canopyhq/canopy/pkg/tree"
)

// Position is a point in UI space. The origin and axis directions are
// caller-defined; the engine only swaps or rotates axes per orientation.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Orientation controls how the backing tree's breadth and depth axes map to
// on-screen x and y. It is fixed per engine instance.
type Orientation int

const (
	// TopDown grows the tree downward: depth maps to y, breadth to x.
	TopDown Orientation = iota
	// LeftRight grows the tree rightward: depth maps to x, breadth to y.
	LeftRight
	// Diagonal45 grows the tree toward the lower right along the diagonal.
	Diagonal45
)

// cos45 rotates engine coordinates by 45° for the diagonal orientation.
var cos45 = math.Sqrt2 / 2

// String returns the name used in configuration files and CLI flags.
func (o Orientation) String() string {
	switch o {
	case LeftRight:
		return "left-right"
	case Diagonal45:
		return "diagonal"
	default:
		return "top-down"
	}
}

// ParseOrientation converts a configuration name to an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "top-down", "":
		return TopDown, nil
	case "left-right":
		return LeftRight, nil
	case "diagonal":
		return Diagonal45, nil
	default:
		return TopDown, fmt.Errorf("unknown orientation %q (must be one of: top-down, left-right, diagonal)", s)
	}
}

// engineSize maps a node's UI-space box onto the axes the backing tree
// expects. For LeftRight and Diagonal45, siblings stack along what the tree
// considers its depth-orthogonal axis, so width and height swap. This is the
// single swap point shared by insertion and dimension updates.
func (o Orientation) engineSize(s tree.Size) (width, height float64) {
	if o == LeftRight || o == Diagonal45 {
		return s.Height, s.Width
	}
	return s.Width, s.Height
}

// uiPosition maps an engine-space position into UI space.
func (o Orientation) uiPosition(x, y float64) Position {
	switch o {
	case LeftRight:
		return Position{X: y, Y: x}
	case Diagonal45:
		return Position{X: cos45 * (x + y), Y: cos45 * (y - x)}
	default:
		return Position{X: x, Y: y}
	}
}
