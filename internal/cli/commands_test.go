package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsai-cliques/cliques/pkg/errors"
	"github.com/dsai-cliques/cliques/pkg/panel"
	"github.com/dsai-cliques/cliques/pkg/pipeline"
)

const testDataset = `{
  "people": [
    {"id": "a", "name": "Ann", "origin": "Oslo"},
    {"id": "b", "name": "Bo"}
  ],
  "relationships": [
    {"source": "a", "target": "b", "type": "mentor", "weight": 2}
  ]
}`

// runCommand executes the root command with args and returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func datasetFile(t *testing.T, content string) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "network.json", content)
}

func TestInspectCommand(t *testing.T) {
	path := datasetFile(t, testDataset)

	t.Run("markdown", func(t *testing.T) {
		out, err := runCommand(t, "inspect", "Ann", "-d", path, "--format", "markdown")
		if err != nil {
			t.Fatalf("inspect: %v", err)
		}
		want := "## Ann\n**Origin:** Oslo\n**Native language:** \n**Connections**\n- Bo (mentor)\n"
		if out != want {
			t.Errorf("output = %q, want %q", out, want)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCommand(t, "inspect", "Bo", "-d", path, "--format", "json")
		if err != nil {
			t.Fatalf("inspect: %v", err)
		}
		var p panel.Panel
		if err := json.Unmarshal([]byte(out), &p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if p.Name != "Bo" || len(p.Connections) != 1 || p.Connections[0].Name != "Ann" {
			t.Errorf("panel = %+v", p)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		out, err := runCommand(t, "inspect", "Zed", "-d", path, "--format", "markdown")
		if !errors.Is(err, errors.ErrCodeNotFound) {
			t.Errorf("err = %v, want NOT_FOUND", err)
		}
		if !strings.HasPrefix(out, "**Error:**") {
			t.Errorf("output = %q, want error panel", out)
		}
	})
}

func TestInspectReferentialError(t *testing.T) {
	path := datasetFile(t, `{"people":[{"id":"a","name":"Ann"}],"relationships":[{"source":"a","target":"x"}]}`)
	_, err := runCommand(t, "inspect", "Ann", "-d", path)
	if !errors.Is(err, errors.ErrCodeReferential) {
		t.Errorf("err = %v, want REFERENTIAL", err)
	}
}

func TestPeopleCommand(t *testing.T) {
	path := datasetFile(t, testDataset)

	out, err := runCommand(t, "people", "-d", path, "--json")
	if err != nil {
		t.Fatalf("people: %v", err)
	}
	var body struct {
		Options []string `json:"options"`
	}
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatal(err)
	}
	if strings.Join(body.Options, ",") != "(none),Ann,Bo" {
		t.Errorf("options = %v", body.Options)
	}

	out, err = runCommand(t, "people", "-d", path)
	if err != nil {
		t.Fatalf("people: %v", err)
	}
	for _, want := range []string{"Ann", "Bo", "Oslo"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestExportCommand(t *testing.T) {
	path := datasetFile(t, testDataset)

	t.Run("json", func(t *testing.T) {
		out, err := runCommand(t, "export", "-d", path, "--person", "Ann")
		if err != nil {
			t.Fatalf("export: %v", err)
		}
		var res pipeline.Result
		if err := json.Unmarshal([]byte(out), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if id, _ := res.Scene.Emphasized(); id != "a" {
			t.Errorf("emphasized = %q, want a", id)
		}
		if res.Panel.Name != "Ann" {
			t.Errorf("panel = %+v", res.Panel)
		}
	})

	t.Run("dot to file", func(t *testing.T) {
		outPath := filepath.Join(t.TempDir(), "sub", "graph.dot")
		if _, err := runCommand(t, "export", "-d", path, "--format", "dot", "-o", outPath); err != nil {
			t.Fatalf("export: %v", err)
		}
		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), "graph G {") || !strings.Contains(string(data), `"a" -- "b"`) {
			t.Errorf("dot = %s", data)
		}
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := runCommand(t, "export", "-d", path, "--format", "pdf")
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("err = %v, want UNSUPPORTED", err)
		}
	})
}

func TestConfigFileSuppliesDataset(t *testing.T) {
	path := datasetFile(t, testDataset)
	cfgPath := writeFile(t, t.TempDir(), "config.toml", "dataset = \""+filepath.ToSlash(path)+"\"\n")

	out, err := runCommand(t, "--config", cfgPath, "inspect", "Ann", "--format", "markdown")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.HasPrefix(out, "## Ann") {
		t.Errorf("output = %q", out)
	}
}

func TestMissingDataset(t *testing.T) {
	_, err := runCommand(t, "people", "-d", filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}
