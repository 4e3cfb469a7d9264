// Package panel renders the detail panel shown next to the graph.
//
// [Render] is a pure function of a network and a selection: it reads the
// selected person's attributes and direct connections and never mutates
// either input, so calling it repeatedly yields identical panels.
package panel

import (
	"fmt"
	"strings"

	"github.com/dsai-cliques/cliques/pkg/errors"
	"github.com/dsai-cliques/cliques/pkg/network"
	"github.com/dsai-cliques/cliques/pkg/selection"
)

// Connection is one neighbor of the selected person.
type Connection struct {
	ID   string `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
	Type string `json:"type" msgpack:"type"`
}

// Panel is the structured sidebar content. The zero value is the empty panel
// shown when nobody is selected.
type Panel struct {
	ID          string       `json:"id,omitempty" msgpack:"id"`
	Name        string       `json:"name,omitempty" msgpack:"name"`
	Origin      string       `json:"origin" msgpack:"origin"`
	Language    string       `json:"language" msgpack:"language"`
	Connections []Connection `json:"connections,omitempty" msgpack:"connections"`
	// Message is a user-visible error, set only on error panels.
	Message string `json:"message,omitempty" msgpack:"message"`
}

// Empty reports whether the panel has nothing to show.
func (p Panel) Empty() bool {
	return p.ID == "" && p.Message == ""
}

// Render builds the panel for sel. Unselected yields the empty panel. A
// selected person with no relationships yields a panel with no connections.
// A selection that does not exist in net is a NOT_FOUND error.
func Render(net *network.Network, sel selection.Selection) (Panel, error) {
	id, ok := sel.ID()
	if !ok {
		return Panel{}, nil
	}
	person, err := net.AttributesOf(id)
	if err != nil {
		return Panel{}, err
	}
	seq, err := net.NeighborsOf(id)
	if err != nil {
		return Panel{}, err
	}

	p := Panel{
		ID:          person.ID,
		Name:        person.Name,
		Origin:      person.Origin,
		Language:    person.Language,
		Connections: []Connection{},
	}
	for nbr := range seq {
		rel, err := net.EdgeAttributes(id, nbr)
		if err != nil {
			return Panel{}, fmt.Errorf("connection %s-%s: %w", id, nbr, err)
		}
		other, err := net.AttributesOf(nbr)
		if err != nil {
			return Panel{}, err
		}
		p.Connections = append(p.Connections, Connection{ID: nbr, Name: other.Name, Type: rel.Type})
	}
	return p, nil
}

// ErrorPanel returns a panel that only carries the user message of err.
func ErrorPanel(err error) Panel {
	return Panel{Message: errors.UserMessage(err)}
}

// Markdown renders the panel as sidebar markdown:
//
//	## Ann
//	**Origin:** Oslo
//	**Native language:**
//	**Connections**
//	- Bo (mentor)
//
// The empty panel renders as the empty string.
func (p Panel) Markdown() string {
	if p.Message != "" {
		return "**Error:** " + p.Message + "\n"
	}
	if p.ID == "" {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", p.Name)
	fmt.Fprintf(&b, "**Origin:** %s\n", p.Origin)
	fmt.Fprintf(&b, "**Native language:** %s\n", p.Language)
	b.WriteString("**Connections**\n")
	for _, c := range p.Connections {
		fmt.Fprintf(&b, "- %s (%s)\n", c.Name, c.Type)
	}
	return b.String()
}
