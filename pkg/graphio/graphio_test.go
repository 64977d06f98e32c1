package graphio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/canopyhq/canopy/pkg/layout"
)

func TestToNodeInfos(t *testing.T) {
	ns := []NodeJSON{
		{ID: "a", Width: 40, Height: 20},
		{ID: "b", ParentID: "a", Links: []string{"a", "c"}},
	}
	infos := ToNodeInfos(ns)

	if len(infos) != 2 {
		t.Fatalf("len = %d, want 2", len(infos))
	}
	if infos[0].Size.Width != 40 || infos[0].Size.Height != 20 {
		t.Errorf("size not carried over: %+v", infos[0].Size)
	}
	if infos[1].ParentID != "a" || len(infos[1].LinkedNodeIDs) != 2 {
		t.Errorf("references not carried over: %+v", infos[1])
	}
}

func TestPositionsSortedByID(t *testing.T) {
	positions := map[string]layout.Position{
		"zed":   {X: 1, Y: 2},
		"alpha": {X: 3, Y: 4},
		"mid":   {X: 5, Y: 6},
	}
	list := FromPositions(positions)

	got := make([]string, len(list.Positions))
	for i, p := range list.Positions {
		got[i] = p.ID
	}
	want := []string{"alpha", "mid", "zed"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	back := ToPositions(list)
	if len(back) != len(positions) {
		t.Errorf("round trip lost entries: %v", back)
	}
	if back["zed"] != positions["zed"] {
		t.Errorf("round trip changed zed: %+v", back["zed"])
	}
}

func TestReadNodeSet(t *testing.T) {
	input := `{
		"nodes": [
			{"id": "root", "width": 40, "height": 40},
			{"id": "child", "parent_id": "root", "links": ["root"]}
		],
		"new_nodes": [{"id": "fresh"}]
	}`
	ns, err := ReadNodeSet(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(ns.Nodes) != 2 || len(ns.NewNodes) != 1 {
		t.Errorf("node set = %+v", ns)
	}
	if ns.Nodes[1].ParentID != "root" {
		t.Errorf("parent_id not decoded: %+v", ns.Nodes[1])
	}
}

func TestReadNodeSetMalformed(t *testing.T) {
	if _, err := ReadNodeSet(strings.NewReader(`{"nodes": [`)); err == nil {
		t.Errorf("malformed input should error")
	}
}

func TestPositionsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")
	positions := map[string]layout.Position{"a": {X: 1.5, Y: -2.5}}

	if err := WritePositionsFile(positions, path); err != nil {
		t.Fatal(err)
	}

	data, err := MarshalPositions(positions)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"id": "a"`)) {
		t.Errorf("marshaled output missing entry: %s", data)
	}
}

func TestSeedGraphRoundTrip(t *testing.T) {
	input := `{
		"nodes": [
			{"id": "a", "position": {"x": 10, "y": 20}},
			{"id": "b"}
		],
		"edges": [{"source": "a", "target": "b"}]
	}`
	g, err := ReadSeedGraph(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if g.Nodes[0].Position == nil || g.Nodes[0].Position.X != 10 {
		t.Errorf("position not decoded: %+v", g.Nodes[0])
	}
	if g.Nodes[1].Position != nil {
		t.Errorf("missing position decoded as %+v, want nil", g.Nodes[1].Position)
	}

	var buf bytes.Buffer
	if err := WriteSeedGraph(g, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"source": "a"`) {
		t.Errorf("edge missing from output: %s", buf.String())
	}
}
