package classify

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"pgregory.net/rapid"
)

func TestTransformSample(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "uniclass_sample.json"))
	if err != nil {
		t.Fatalf("reading sample: %v", err)
	}

	exp, err := Transform(data)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if exp.System.Name != "Uniclass" {
		t.Errorf("system name = %q, want Uniclass", exp.System.Name)
	}
	if exp.System.Version != "2015 v1.24" {
		t.Errorf("system version = %q", exp.System.Version)
	}
	if len(exp.Forest) != 2 {
		t.Fatalf("top-level = %d, want 2", len(exp.Forest))
	}

	ss := exp.Forest[0]
	if ss.ID != "Ss" || ss.Description != "Systems table." {
		t.Errorf("root = %+v", ss)
	}
	if len(ss.Children) != 2 {
		t.Fatalf("Ss children = %d, want 2", len(ss.Children))
	}

	ss20 := ss.Children[0]
	if ss20.Description != "Structural systems classification item." {
		t.Errorf("default description = %q", ss20.Description)
	}
	beam := ss20.Children[1]
	if beam.ID != "Ss_20_20" {
		t.Errorf("normalized id = %q, want Ss_20_20", beam.ID)
	}
	if beam.DisplayID != "Ss 20-20" {
		t.Errorf("display id = %q, want original code", beam.DisplayID)
	}
	if beam.Name != "Beam systems" {
		t.Errorf("name should be trimmed, got %q", beam.Name)
	}

	stats := exp.Stats()
	if stats.Total != 6 || stats.TopLevel != 2 || stats.MaxDepth != 3 {
		t.Errorf("stats = %+v, want total 6, top 2, depth 3", stats)
	}
}

func TestTransformMissingFieldsDefault(t *testing.T) {
	data := []byte(`{"System": {"Items": {"Item": [{}, {"ID": "X-1", "Name": 42}]}}}`)
	exp, err := Transform(data)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if len(exp.Forest) != 2 {
		t.Fatalf("forest = %d, want 2", len(exp.Forest))
	}
	empty := exp.Forest[0]
	if empty.ID != "" || empty.Name != "" || empty.Description != " classification item." {
		t.Errorf("empty item = %+v", empty)
	}
	bare := exp.Forest[1]
	if bare.ID != "X_1" || bare.DisplayID != "X-1" || bare.Name != "" {
		t.Errorf("bare item = %+v", bare)
	}
}

func TestTransformStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no system", `{"Classification": {"Other": []}}`},
		{"empty system array", `{"System": []}`},
		{"no items", `{"System": [{"Name": ["X"]}]}`},
		{"no item array", `{"System": [{"Items": [{}]}]}`},
		{"item not array", `{"System": [{"Items": [{"Item": "nope"}]}]}`},
		{"null document", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Transform([]byte(tt.data))
			if !errors.Is(err, ErrStructure) {
				t.Fatalf("err = %v, want ErrStructure", err)
			}
			var se *StructureError
			if !errors.As(err, &se) || se.Path == "" {
				t.Errorf("expected StructureError with a path, got %v", err)
			}
		})
	}
}

func TestTransformInvalidJSON(t *testing.T) {
	_, err := Transform([]byte(`{"System": `))
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if errors.Is(err, ErrStructure) {
		t.Error("decode failure should not be reported as a structure error")
	}
}

func TestTransformSkipsMalformedChildren(t *testing.T) {
	data := []byte(`{"System": [{"Items": [{"Item": [
		{"ID": ["A"], "Children": [{"Item": [{"ID": ["A1"]}, "junk", {"ID": ["A2"]}]}, {"Item": [{"ID": ["A3"]}]}]},
		{"ID": ["B"], "Children": ""}
	]}]}]}`)
	exp, err := Transform(data)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	a := exp.Forest[0]
	var ids []NodeID
	for _, c := range a.Children {
		ids = append(ids, c.ID)
	}
	if len(ids) != 3 || ids[0] != "A1" || ids[1] != "A2" || ids[2] != "A3" {
		t.Errorf("A children = %v, want [A1 A2 A3]", ids)
	}
	if len(exp.Forest[1].Children) != 0 {
		t.Errorf("B should have no children")
	}
}

func TestTransformBareObjectItems(t *testing.T) {
	data := []byte(`{"System": [{"Items": [{"Item": {"ID": ["A"], "Name": ["a"],
		"Children": [{"Item": {"ID": ["A1"], "Name": ["child"],
			"Children": {"Item": [{"ID": ["A1a"], "Name": ["grandchild"]}]}}}]}}]}]}`)
	exp, err := Transform(data)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got := exp.Stats(); got != (Stats{Total: 3, TopLevel: 1, MaxDepth: 3}) {
		t.Fatalf("stats = %+v, want 3 items over 3 levels", got)
	}
	a1 := exp.Forest[0].Children[0]
	if a1.ID != "A1" || a1.Name != "child" {
		t.Errorf("child = %+v", a1)
	}
	if len(a1.Children) != 1 || a1.Children[0].ID != "A1a" {
		t.Errorf("A1 children = %+v", a1.Children)
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		input string
		want  NodeID
	}{
		{"Ss_20_10", "Ss_20_10"},
		{"Ss 20 10", "Ss_20_10"},
		{"Ss-20-10", "Ss_20_10"},
		{"Ss - 20\t10", "Ss_20_10"},
		{"  Pr  ", "Pr"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeID(tt.input); got != tt.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// genForest draws a random forest with unique ids.
func genForest(t *rapid.T) []*Node {
	next := 0
	var gen func(depth int) *Node
	gen = func(depth int) *Node {
		next++
		n := &Node{ID: NodeID(rapid.StringMatching(`[A-Z]{1,2}`).Draw(t, "prefix") + "_" + strconv.Itoa(next))}
		if depth < 4 {
			kids := rapid.IntRange(0, 3).Draw(t, "kids")
			for i := 0; i < kids; i++ {
				n.Children = append(n.Children, gen(depth+1))
			}
		}
		return n
	}
	roots := rapid.IntRange(0, 4).Draw(t, "roots")
	forest := make([]*Node, 0, roots)
	for i := 0; i < roots; i++ {
		forest = append(forest, gen(1))
	}
	return forest
}

func TestCountDescendantsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		forest := genForest(t)
		total := 0
		Walk(forest, func(n, _ *Node, _ int) bool {
			sum := 0
			for _, c := range n.Children {
				sum += 1 + CountDescendants(c)
			}
			if got := CountDescendants(n); got != sum {
				t.Fatalf("CountDescendants(%s) = %d, want %d", n.ID, got, sum)
			}
			total++
			return true
		})
		if got := CountItems(forest); got != total {
			t.Fatalf("CountItems = %d, walked %d", got, total)
		}
		stats := ForestStats(forest)
		if stats.Total != total || stats.TopLevel != len(forest) {
			t.Fatalf("stats = %+v, total %d, roots %d", stats, total, len(forest))
		}
	})
}
