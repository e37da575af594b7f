package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/syntower/pkg/core/synteny"
	"github.com/matzehuels/syntower/pkg/core/view"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "dot", []string{"dot"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and empties", " svg, ,json ", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "groups.json", "groups"},
		{"", "data/groups.json", "data/groups"},
		{"", "-", "diagram"},
		{"", "https://backend.example.org/groups/42/graph", "graph"},
		{"", "https://backend.example.org/groups/42/", "42"},
		{"out.svg", "groups.json", "out"},
		{"out.png", "groups.json", "out"},
		{"out", "groups.json", "out"},
		{"out.v2", "groups.json", "out.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	got := outputPaths("dnaA.svg", "groups.json", []string{"svg"})
	if got["svg"] != "dnaA.svg" {
		t.Errorf("single format with explicit file = %v", got)
	}

	got = outputPaths("", "groups.json", []string{"svg", "png"})
	want := map[string]string{"svg": "groups.svg", "png": "groups.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("outputPaths() = %v, want %v", got, want)
	}

	got = outputPaths("out/diagram", "groups.json", []string{"dot"})
	if got["dot"] != "out/diagram.dot" {
		t.Errorf("base path without extension = %v", got)
	}
}

func TestApplyHide(t *testing.T) {
	f := view.DefaultFilter()
	if err := applyHide(&f, []string{"inconsistent", "non-reciprocal"}); err != nil {
		t.Fatal(err)
	}
	if f.ShowInconsistent || f.ShowNonReciprocal {
		t.Errorf("hidden kinds still shown: %+v", f)
	}
	if !f.ShowReciprocal || !f.ShowConsistent || !f.ShowPartiallyConsistent {
		t.Errorf("other kinds should stay visible: %+v", f)
	}

	if err := applyHide(&f, []string{"dotted"}); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestSelection(t *testing.T) {
	viewFile := filepath.Join(t.TempDir(), "v.json")
	if err := os.WriteFile(viewFile, []byte(`{"nodes":["a"],"edges":[{"source":"a","target":"b"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	sel, err := selection(&renderOpts{
		viewFile: viewFile,
		selNodes: []string{"a", "c"},
		selEdges: []string{"c:d"},
		focus:    true,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := view.Selection{
		Focus: true,
		Nodes: []string{"a", "c"},
		Edges: []synteny.Key{{Source: "a", Target: "b"}, {Source: "c", Target: "d"}},
	}
	if !reflect.DeepEqual(sel, want) {
		t.Errorf("selection() = %+v, want %+v", sel, want)
	}

	if _, err := selection(&renderOpts{selEdges: []string{"nocolon"}}); err == nil {
		t.Error("malformed --select-link should fail")
	}
}

func TestRenderOptionsPrecedence(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Filter.Cutoff = 40
	c.Config.Render.Formats = []string{"dot"}
	c.Config.Render.RowHeight = 90

	cmd := c.renderCommand()
	if err := cmd.ParseFlags([]string{"--cutoff", "60", "--hide", "partial"}); err != nil {
		t.Fatal(err)
	}
	var opts renderOpts
	// ParseFlags bound the values into the command's own renderOpts; rebuild
	// them here from the parsed flags.
	opts.cutoff, _ = cmd.Flags().GetFloat64("cutoff")
	opts.hide, _ = cmd.Flags().GetStringSlice("hide")

	p, err := c.renderOptions(cmd, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if p.Filter.Cutoff != 60 {
		t.Errorf("flag cutoff should win, got %v", p.Filter.Cutoff)
	}
	if p.Filter.ShowPartiallyConsistent {
		t.Error("--hide partial not applied")
	}
	if !reflect.DeepEqual(p.Formats, []string{"dot"}) {
		t.Errorf("configured formats should be kept, got %v", p.Formats)
	}
	if p.RowHeight != 90 {
		t.Errorf("configured row height should be kept, got %v", p.RowHeight)
	}
	if c.Config.Filter.Cutoff != 40 {
		t.Error("renderOptions must not modify the config")
	}
}
