package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/justify/pkg/justified"
)

func TestRenderJSON(t *testing.T) {
	res := justified.Result{
		Boxes:           []justified.Box{{Left: 0, Top: 0, Width: 480, Height: 320}},
		ContainerHeight: 320,
	}
	data, err := RenderJSON(res)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	want := `{"boxes":[{"left":0,"top":0,"width":480,"height":320}],"containerHeight":320}`
	if string(data) != want {
		t.Errorf("RenderJSON() = %s, want %s", data, want)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(justified.Result{})
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if string(data) != `{"boxes":[],"containerHeight":0}` {
		t.Errorf("RenderJSON() = %s", data)
	}
}

func TestRenderJSONWithGallery(t *testing.T) {
	g := testGallery()
	data, err := RenderJSON(testLayout(g), WithJSONGallery(g), WithJSONConfig(testConfig), WithJSONIndent())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"boxes\"") {
		t.Error("WithJSONIndent() output not indented")
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if len(out.Items) != 4 || out.Items[2].Kind != "video" || out.Items[2].Poster != "clips/c.jpg" {
		t.Errorf("Items = %+v", out.Items)
	}
	if !out.Items[0].Head || out.Items[1].Head {
		t.Errorf("head flags = %v %v, want true false", out.Items[0].Head, out.Items[1].Head)
	}
	if len(out.Groups) != 2 {
		t.Errorf("Groups = %d, want 2", len(out.Groups))
	}
	if diff := cmp.Diff(&testConfig, out.Config); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(justified.Partition(g.Items(), testConfig), out.Rows); diff != "" {
		t.Errorf("Rows mismatch (-want +got):\n%s", diff)
	}
}
