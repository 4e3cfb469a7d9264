package scene

import (
	"github.com/dsai-cliques/cliques/pkg/network"
	"github.com/dsai-cliques/cliques/pkg/selection"
)

// Default visual settings of the viewer page.
const (
	DefaultNodeSize     = 10
	DefaultEmphasisSize = 16
	DefaultBackground   = "#242222EC"
	DefaultFontColor    = "#FFFFFF"
	DefaultHeight       = "100vh"
	DefaultWidth        = "100%"
)

// Options configures scene construction.
type Options struct {
	NodeSize     int    `json:"node_size" toml:"node_size"`
	EmphasisSize int    `json:"emphasis_size" toml:"emphasis_size"`
	Background   string `json:"background" toml:"background"`
	FontColor    string `json:"font_color" toml:"font_color"`
}

// DefaultOptions returns the default node sizes and colours.
func DefaultOptions() Options {
	return Options{
		NodeSize:     DefaultNodeSize,
		EmphasisSize: DefaultEmphasisSize,
		Background:   DefaultBackground,
		FontColor:    DefaultFontColor,
	}
}

// WithDefaults fills zero fields from [DefaultOptions].
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.NodeSize <= 0 {
		o.NodeSize = d.NodeSize
	}
	if o.EmphasisSize <= 0 {
		o.EmphasisSize = d.EmphasisSize
	}
	if o.Background == "" {
		o.Background = d.Background
	}
	if o.FontColor == "" {
		o.FontColor = d.FontColor
	}
	return o
}

// Node is a person as drawn by the renderer.
type Node struct {
	ID         string `json:"id" msgpack:"id"`
	Label      string `json:"label" msgpack:"label"`
	Title      string `json:"title,omitempty" msgpack:"title"`
	Origin     string `json:"origin,omitempty" msgpack:"origin"`
	Size       int    `json:"size" msgpack:"size"`
	Emphasized bool   `json:"emphasized,omitempty" msgpack:"emphasized"`
}

// Edge is a relationship as drawn by the renderer.
type Edge struct {
	From  string  `json:"from" msgpack:"from"`
	To    string  `json:"to" msgpack:"to"`
	Label string  `json:"label,omitempty" msgpack:"label"`
	Title string  `json:"title,omitempty" msgpack:"title"`
	Value float64 `json:"value" msgpack:"value"`
}

// Scene is the full renderer input.
type Scene struct {
	Nodes      []Node `json:"nodes" msgpack:"nodes"`
	Edges      []Edge `json:"edges" msgpack:"edges"`
	Physics    bool   `json:"physics" msgpack:"physics"`
	Background string `json:"background" msgpack:"background"`
	FontColor  string `json:"font_color" msgpack:"font_color"`
	Height     string `json:"height" msgpack:"height"`
	Width      string `json:"width" msgpack:"width"`
}

// Build translates net into a scene and applies the emphasis rule for sel.
// A selection that names no person in net emphasizes nothing.
func Build(net *network.Network, sel selection.Selection, opts Options) Scene {
	opts = opts.WithDefaults()
	selectedID, selected := sel.ID()

	people := net.People()
	rels := net.Relationships()

	s := Scene{
		Nodes:      make([]Node, len(people)),
		Edges:      make([]Edge, len(rels)),
		Physics:    true,
		Background: opts.Background,
		FontColor:  opts.FontColor,
		Height:     DefaultHeight,
		Width:      DefaultWidth,
	}

	for i, p := range people {
		n := Node{
			ID:     p.ID,
			Label:  p.Name,
			Title:  p.Origin,
			Origin: p.Origin,
			Size:   opts.NodeSize,
		}
		if selected && p.ID == selectedID {
			n.Size = opts.EmphasisSize
			n.Emphasized = true
		}
		s.Nodes[i] = n
	}

	for i, r := range rels {
		s.Edges[i] = Edge{
			From:  r.Source,
			To:    r.Target,
			Label: r.Type,
			Title: r.Type,
			Value: r.Weight,
		}
	}
	return s
}

// Emphasized returns the ID of the emphasized node, if any.
func (s Scene) Emphasized() (string, bool) {
	for _, n := range s.Nodes {
		if n.Emphasized {
			return n.ID, true
		}
	}
	return "", false
}
