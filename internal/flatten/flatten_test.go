package flatten

import (
	"reflect"
	"testing"
)

func TestDFSAndBFSAgreeOnDeepNesting(t *testing.T) {
	input := `{"a":{"b":{"c":{"d":1}},"e":2},"f":"x","g":{"h":true,"i":null}}`
	parsed, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	dfs := DFS(parsed)
	bfs := BFS(parsed)

	want := map[string]interface{}{
		"a.b.c.d": float64(1),
		"a.e":     float64(2),
		"f":       "x",
		"g.h":     true,
		"g.i":     nil,
	}
	if !reflect.DeepEqual(dfs, want) {
		t.Errorf("DFS mapping = %v, want %v", dfs, want)
	}
	if !reflect.DeepEqual(bfs, want) {
		t.Errorf("BFS mapping = %v, want %v", bfs, want)
	}
	if !reflect.DeepEqual(dfs, bfs) {
		t.Errorf("DFS and BFS disagree: %v vs %v", dfs, bfs)
	}
}

func TestArraysStayOpaque(t *testing.T) {
	parsed, err := Parse(`{"a":{"list":[1,{"b":2},3]},"top":[true]}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	dfs := DFS(parsed)
	if _, ok := dfs["a.list"]; !ok {
		t.Fatalf("expected a.list as an opaque key, got keys %v", keys(dfs))
	}
	if _, ok := dfs["a.list.1.b"]; ok {
		t.Error("array elements must not be descended into")
	}
	list, ok := dfs["a.list"].([]interface{})
	if !ok {
		t.Fatalf("a.list should decode as a slice, got %T", dfs["a.list"])
	}
	if len(list) != 3 {
		t.Errorf("a.list length = %d, want 3", len(list))
	}
}

func TestEmptyObject(t *testing.T) {
	parsed, err := Parse(`{}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := DFS(parsed); len(got) != 0 {
		t.Errorf("DFS of empty object = %v, want empty", got)
	}
	if got := BFS(parsed); len(got) != 0 {
		t.Errorf("BFS of empty object = %v, want empty", got)
	}
}

func TestParseRejectsNonObjects(t *testing.T) {
	cases := []string{`[1,2,3]`, `"hello"`, `42`, `true`, `not json at all`, ``}
	for _, input := range cases {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
