package layout

import (
	"math"
	"testing"

	"github.com/canopyhq/canopy/pkg/tree"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{in: "top-down", want: TopDown},
		{in: "", want: TopDown},
		{in: "left-right", want: LeftRight},
		{in: "diagonal", want: Diagonal45},
		{in: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrientation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseOrientation(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrientationRoundTrip(t *testing.T) {
	size := tree.Size{Width: 30, Height: 70}

	// TopDown passes axes through unchanged.
	if w, h := TopDown.engineSize(size); w != 30 || h != 70 {
		t.Errorf("TopDown.engineSize = (%v, %v), want (30, 70)", w, h)
	}
	if p := TopDown.uiPosition(3, 7); p.X != 3 || p.Y != 7 {
		t.Errorf("TopDown.uiPosition = %+v, want {3 7}", p)
	}

	// LeftRight swaps axes; applying the swap twice restores the original
	// assignment.
	w, h := LeftRight.engineSize(size)
	if w != 70 || h != 30 {
		t.Errorf("LeftRight.engineSize = (%v, %v), want (70, 30)", w, h)
	}
	w2, h2 := LeftRight.engineSize(tree.Size{Width: w, Height: h})
	if w2 != size.Width || h2 != size.Height {
		t.Errorf("double swap = (%v, %v), want original (%v, %v)", w2, h2, size.Width, size.Height)
	}
	p := LeftRight.uiPosition(3, 7)
	back := LeftRight.uiPosition(p.X, p.Y)
	if back.X != 3 || back.Y != 7 {
		t.Errorf("LeftRight transpose applied twice = %+v, want {3 7}", back)
	}
}

func TestDiagonalRotation(t *testing.T) {
	c := math.Sqrt2 / 2

	tests := []struct {
		name string
		x, y float64
		want Position
	}{
		{name: "origin", x: 0, y: 0, want: Position{0, 0}},
		{name: "depth axis", x: 0, y: 10, want: Position{c * 10, c * 10}},
		{name: "breadth axis", x: 10, y: 0, want: Position{c * 10, -c * 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diagonal45.uiPosition(tt.x, tt.y)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("uiPosition(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	// Rotation preserves distances.
	p := Diagonal45.uiPosition(3, 4)
	if d := math.Hypot(p.X, p.Y); math.Abs(d-5) > 1e-9 {
		t.Errorf("rotated distance = %v, want 5", d)
	}
}
