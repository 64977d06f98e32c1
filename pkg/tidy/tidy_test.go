package tidy

import (
	"errors"
	"math"
	"testing"
)

func testSpacing() Spacing {
	return Spacing{ParentChildMargin: 40, PeerMargin: 10}
}

func TestAddNodePreconditions(t *testing.T) {
	tr := New(testSpacing())

	if err := tr.AddNode(0, 10, 10, NoParent); err != nil {
		t.Fatalf("add root: %v", err)
	}

	tests := []struct {
		name    string
		id      int
		parent  int
		wantErr error
	}{
		{name: "duplicate id", id: 0, parent: NoParent, wantErr: ErrDuplicateNode},
		{name: "unknown parent", id: 1, parent: 99, wantErr: ErrUnknownParent},
		{name: "second root", id: 1, parent: NoParent, wantErr: ErrMultipleRoots},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tr.AddNode(tt.id, 10, 10, tt.parent); !errors.Is(err, tt.wantErr) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetDimensionsUnknownNode(t *testing.T) {
	tr := New(testSpacing())
	if err := tr.SetDimensions(5, 1, 1); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("SetDimensions() error = %v, want ErrUnknownNode", err)
	}
}

func TestLayoutSingleNode(t *testing.T) {
	tr := New(testSpacing())
	if err := tr.AddNode(0, 40, 40, NoParent); err != nil {
		t.Fatal(err)
	}
	tr.Layout()

	x, y, ok := tr.Position(0)
	if !ok {
		t.Fatal("root position missing")
	}
	if x != 0 || y != 0 {
		t.Errorf("root at (%v, %v), want origin", x, y)
	}
}

func TestLayoutParentChildMargin(t *testing.T) {
	sp := testSpacing()
	tr := New(sp)
	mustAdd(t, tr, 0, 40, 30, NoParent)
	mustAdd(t, tr, 1, 40, 20, 0)
	tr.Layout()

	_, py, _ := tr.Position(0)
	_, cy, _ := tr.Position(1)
	if gap := cy - py; gap < sp.ParentChildMargin {
		t.Errorf("depth gap = %v, want at least %v", gap, sp.ParentChildMargin)
	}
	// Level separation is parent height plus margin.
	if want := 30 + sp.ParentChildMargin; cy-py != want {
		t.Errorf("depth gap = %v, want %v", cy-py, want)
	}
}

func TestLayoutSiblingSeparation(t *testing.T) {
	sp := testSpacing()
	tr := New(sp)
	mustAdd(t, tr, 0, 10, 10, NoParent)
	mustAdd(t, tr, 1, 60, 10, 0)
	mustAdd(t, tr, 2, 20, 10, 0)
	mustAdd(t, tr, 3, 40, 10, 0)
	tr.Layout()

	x1, _, _ := tr.Position(1)
	x2, _, _ := tr.Position(2)
	x3, _, _ := tr.Position(3)

	// Siblings keep insertion order left to right with at least the peer
	// margin between their boxes.
	if gap := (x2 - 20.0/2) - (x1 + 60.0/2); gap < sp.PeerMargin {
		t.Errorf("gap between 1 and 2 = %v, want >= %v", gap, sp.PeerMargin)
	}
	if gap := (x3 - 40.0/2) - (x2 + 20.0/2); gap < sp.PeerMargin {
		t.Errorf("gap between 2 and 3 = %v, want >= %v", gap, sp.PeerMargin)
	}

	// Parent centered over first and last child centers.
	x0, _, _ := tr.Position(0)
	if want := (x1 + x3) / 2; math.Abs(x0-want) > 1e-9 {
		t.Errorf("parent x = %v, want %v", x0, want)
	}
}

func TestSubtreesDoNotOverlap(t *testing.T) {
	sp := testSpacing()
	tr := New(sp)
	mustAdd(t, tr, 0, 10, 10, NoParent)
	// Two sibling subtrees, each with wide grandchildren that would collide
	// if separation only looked at the direct children.
	mustAdd(t, tr, 1, 10, 10, 0)
	mustAdd(t, tr, 2, 10, 10, 0)
	mustAdd(t, tr, 3, 100, 10, 1)
	mustAdd(t, tr, 4, 100, 10, 2)
	tr.Layout()

	x3, _, _ := tr.Position(3)
	x4, _, _ := tr.Position(4)
	if gap := (x4 - 50) - (x3 + 50); gap < sp.PeerMargin {
		t.Errorf("grandchild gap = %v, want >= %v", gap, sp.PeerMargin)
	}
}

func TestPartialLayoutMatchesFullLayout(t *testing.T) {
	build := func() *Tree {
		tr := New(testSpacing())
		mustAdd(t, tr, 0, 10, 10, NoParent)
		mustAdd(t, tr, 1, 30, 10, 0)
		mustAdd(t, tr, 2, 30, 10, 0)
		mustAdd(t, tr, 3, 30, 10, 1)
		tr.Layout()
		return tr
	}

	// Incremental: extend an already laid out tree partially.
	incr := build()
	mustAdd(t, incr, 4, 50, 20, 1)
	mustAdd(t, incr, 5, 50, 20, 2)
	incr.PartialLayout([]int{4, 5})

	// Reference: same tree laid out from scratch.
	full := build()
	mustAdd(t, full, 4, 50, 20, 1)
	mustAdd(t, full, 5, 50, 20, 2)
	full.Layout()

	for id := 0; id <= 5; id++ {
		ix, iy, _ := incr.Position(id)
		fx, fy, _ := full.Position(id)
		if math.Abs(ix-fx) > 1e-9 || math.Abs(iy-fy) > 1e-9 {
			t.Errorf("node %d: partial (%v, %v) != full (%v, %v)", id, ix, iy, fx, fy)
		}
	}
}

func TestSetDimensionsTriggersReflow(t *testing.T) {
	sp := testSpacing()
	tr := New(sp)
	mustAdd(t, tr, 0, 10, 10, NoParent)
	mustAdd(t, tr, 1, 10, 10, 0)
	mustAdd(t, tr, 2, 10, 10, 0)
	tr.Layout()

	if err := tr.SetDimensions(1, 200, 10); err != nil {
		t.Fatal(err)
	}
	tr.PartialLayout([]int{1})

	x1, _, _ := tr.Position(1)
	x2, _, _ := tr.Position(2)
	if gap := (x2 - 5) - (x1 + 100); gap < sp.PeerMargin {
		t.Errorf("gap after resize = %v, want >= %v", gap, sp.PeerMargin)
	}
}

func TestDefaultSpacing(t *testing.T) {
	s, err := DefaultSpacing()
	if err != nil {
		t.Fatalf("DefaultSpacing() error = %v", err)
	}
	if s.ParentChildMargin <= 0 || s.PeerMargin <= 0 {
		t.Errorf("default spacing not positive: %+v", s)
	}

	// Loaded once: repeated calls return the identical profile.
	again, err := DefaultSpacing()
	if err != nil || again != s {
		t.Errorf("second DefaultSpacing() = %+v, %v; want %+v, nil", again, err, s)
	}
}

func mustAdd(t *testing.T, tr *Tree, id int, w, h float64, parent int) {
	t.Helper()
	if err := tr.AddNode(id, w, h, parent); err != nil {
		t.Fatalf("add node %d: %v", id, err)
	}
}
