package pipeline

import (
	"context"
	"reflect"
	"testing"

	"github.com/dsai-cliques/cliques/pkg/cache"
	"github.com/dsai-cliques/cliques/pkg/dataset"
	"github.com/dsai-cliques/cliques/pkg/errors"
	"github.com/dsai-cliques/cliques/pkg/network"
	"github.com/dsai-cliques/cliques/pkg/render/nodelink"
	"github.com/dsai-cliques/cliques/pkg/scene"
	"github.com/dsai-cliques/cliques/pkg/selection"
)

func annAndBo(t *testing.T) *network.Network {
	t.Helper()
	net, err := network.FromDataset(&dataset.Dataset{
		People: []dataset.Person{{ID: "a", Name: "Ann"}, {ID: "b", Name: "Bo"}},
		Relationships: []dataset.Relationship{
			{Source: "a", Target: "b", Type: "mentor", Weight: 2},
		},
	})
	if err != nil {
		t.Fatalf("FromDataset: %v", err)
	}
	return net
}

func snapshot(t *testing.T, net *network.Network) Snapshot {
	t.Helper()
	snap, err := NewSnapshot(net)
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	return snap
}

func TestRenderPassSelected(t *testing.T) {
	net := annAndBo(t)

	res, err := RenderPass(net, selection.Selected("a"), scene.DefaultOptions())
	if err != nil {
		t.Fatalf("RenderPass: %v", err)
	}

	if res.Selection != "Ann" || res.SelectedID != "a" {
		t.Errorf("Selection = %q/%q, want Ann/a", res.Selection, res.SelectedID)
	}
	p := res.Panel
	if p.Name != "Ann" || p.Origin != "" || p.Language != "" {
		t.Errorf("panel = %+v", p)
	}
	if len(p.Connections) != 1 || p.Connections[0].Name != "Bo" || p.Connections[0].Type != "mentor" {
		t.Errorf("Connections = %+v, want [(Bo, mentor)]", p.Connections)
	}

	sizes := map[string]int{}
	for _, n := range res.Scene.Nodes {
		sizes[n.ID] = n.Size
	}
	if sizes["a"] != 16 || sizes["b"] != 10 {
		t.Errorf("sizes = %v, want a:16 b:10", sizes)
	}
	if len(res.Scene.Edges) != 1 || res.Scene.Edges[0].Value != 2 {
		t.Errorf("Edges = %+v", res.Scene.Edges)
	}
}

func TestRenderPassUnselected(t *testing.T) {
	res, err := RenderPass(annAndBo(t), selection.Unselected, scene.Options{})
	if err != nil {
		t.Fatalf("RenderPass: %v", err)
	}
	if !res.Panel.Empty() {
		t.Errorf("panel = %+v, want empty", res.Panel)
	}
	if res.Selection != selection.None {
		t.Errorf("Selection = %q, want %q", res.Selection, selection.None)
	}
	if _, ok := res.Scene.Emphasized(); ok {
		t.Error("unselected scene should emphasize nothing")
	}
}

func TestRenderPassIdempotent(t *testing.T) {
	net := annAndBo(t)
	first, err := RenderPass(net, selection.Selected("b"), scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	second, err := RenderPass(net, selection.Selected("b"), scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("RenderPass not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestRenderPassUnknownSelection(t *testing.T) {
	_, err := RenderPass(annAndBo(t), selection.Selected("zed"), scene.DefaultOptions())
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestNetworkHash(t *testing.T) {
	h1, err := NetworkHash(annAndBo(t))
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := NetworkHash(annAndBo(t))
	if h1 != h2 {
		t.Error("equal datasets should hash the same")
	}

	other, _ := network.FromDataset(&dataset.Dataset{People: []dataset.Person{{ID: "a", Name: "Ann"}}})
	h3, _ := NetworkHash(other)
	if h1 == h3 {
		t.Error("different datasets should hash differently")
	}
}

func TestRunnerCaches(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(0), nil, nil)
	defer r.Close()
	snap := snapshot(t, annAndBo(t))

	first, hit, err := r.RenderWithCacheInfo(ctx, snap, selection.Selected("a"), scene.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first pass should miss")
	}

	second, hit, err := r.RenderWithCacheInfo(ctx, snap, selection.Selected("a"), scene.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second pass should hit")
	}
	if first.ID == second.ID || second.ID == "" {
		t.Errorf("each pass needs its own ID: %q, %q", first.ID, second.ID)
	}
	if second.Panel.Name != "Ann" || len(second.Panel.Connections) != 1 {
		t.Errorf("cached panel = %+v", second.Panel)
	}
	if !reflect.DeepEqual(first.Scene, second.Scene) {
		t.Error("cached scene differs from computed scene")
	}

	// A different selection is a different entry.
	_, hit, _ = r.RenderWithCacheInfo(ctx, snap, selection.Selected("b"), scene.Options{})
	if hit {
		t.Error("different selection should miss")
	}
}

func TestRunnerSelect(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	snap := snapshot(t, annAndBo(t))

	tests := []struct {
		input    string
		code     errors.Code
		selected string
	}{
		{"Ann", "", "a"},
		{"(none)", "", ""},
		{"", "", ""},
		{"Zed", errors.ErrCodeNotFound, ""},
		{"bad\x00name", errors.ErrCodeInvalidInput, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := r.Select(ctx, snap, tt.input, scene.Options{})
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("err = %v, want %s", err, tt.code)
				}
				if res.Panel.Message == "" {
					t.Error("failed selection should carry an error panel")
				}
				if len(res.Scene.Nodes) != 0 {
					t.Error("failed selection should not carry a scene")
				}
				return
			}
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			if res.SelectedID != tt.selected {
				t.Errorf("SelectedID = %q, want %q", res.SelectedID, tt.selected)
			}
		})
	}
}

func TestRunnerExportUsesCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(0)
	r := NewRunner(c, nil, nil)

	res, err := RenderPass(annAndBo(t), selection.Unselected, scene.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	key := r.Keyer.ExportKey(cache.Hash([]byte(nodelink.ToDOT(res.Scene))), "svg")
	if err := c.Set(ctx, key, []byte("<svg/>"), 0); err != nil {
		t.Fatal(err)
	}

	svg, err := r.Export(ctx, res.Scene, "svg")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if string(svg) != "<svg/>" {
		t.Errorf("Export = %q, want cached entry", svg)
	}
}

func TestRunnerExportUnsupportedFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Export(context.Background(), scene.Scene{}, "pdf")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Export(pdf) error = %v, want UNSUPPORTED", err)
	}
}

func TestRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil)
	if _, err := r.Render(ctx, snapshot(t, annAndBo(t)), selection.Unselected, scene.Options{}); err == nil {
		t.Error("Render with cancelled context should fail")
	}
}

func TestSessionSelect(t *testing.T) {
	ctx := context.Background()
	s, err := NewSession(ctx, nil, snapshot(t, annAndBo(t)), scene.Options{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if got := s.Current(); !got.Panel.Empty() || got.Selection != selection.None {
		t.Fatalf("initial result = %+v, want unselected", got)
	}

	var changes []string
	s.OnChange(func(old, new selection.Selection) {
		changes = append(changes, old.String()+"->"+new.String())
	})

	res, err := s.Select(ctx, "Ann")
	if err != nil {
		t.Fatalf("Select(Ann): %v", err)
	}
	if res.Panel.Name != "Ann" {
		t.Errorf("panel name = %q, want Ann", res.Panel.Name)
	}
	annScene := res.Scene

	res, err = s.Select(ctx, "Zed")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("Select(Zed) err = %v, want NOT_FOUND", err)
	}
	if res.Panel.Message == "" {
		t.Error("Select(Zed) should return an error panel")
	}
	if !reflect.DeepEqual(res.Scene, annScene) {
		t.Error("Select(Zed) should keep the previous scene")
	}
	if !reflect.DeepEqual(s.Current().Scene, annScene) {
		t.Error("current scene changed after failed selection")
	}
	if id, _ := s.Selection().ID(); id != "a" {
		t.Errorf("selection = %q after failure, want a", id)
	}

	if _, err := s.Select(ctx, "(none)"); err != nil {
		t.Fatalf("Select(none): %v", err)
	}
	if s.Selection().IsSelected() {
		t.Error("selection should be cleared")
	}

	want := []string{"(none)->a", "a->(none)"}
	if !reflect.DeepEqual(changes, want) {
		t.Errorf("changes = %v, want %v", changes, want)
	}
}

func TestSessionOptions(t *testing.T) {
	s, err := NewSession(context.Background(), nil, snapshot(t, annAndBo(t)), scene.Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"(none)", "Ann", "Bo"}
	if got := s.Options(); !reflect.DeepEqual(got, want) {
		t.Errorf("Options() = %v, want %v", got, want)
	}
}
