package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dsai-cliques/cliques/pkg/dataset"
	"github.com/dsai-cliques/cliques/pkg/network"
	"github.com/dsai-cliques/cliques/pkg/panel"
	"github.com/dsai-cliques/cliques/pkg/pipeline"
	"github.com/dsai-cliques/cliques/pkg/scene"
)

func testSession(t *testing.T) *pipeline.Session {
	t.Helper()
	net, err := network.FromDataset(&dataset.Dataset{
		People: []dataset.Person{{ID: "a", Name: "Ann", Origin: "Oslo"}, {ID: "b", Name: "Bo"}},
		Relationships: []dataset.Relationship{
			{Source: "a", Target: "b", Type: "mentor", Weight: 2},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	snap, err := pipeline.NewSnapshot(net)
	if err != nil {
		t.Fatal(err)
	}
	s, err := pipeline.NewSession(context.Background(), nil, snap, scene.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestPickModelSelects(t *testing.T) {
	m := NewPickModel(context.Background(), testSession(t))
	if got := strings.Join(m.Options, ","); got != "(none),Ann,Bo" {
		t.Fatalf("Options = %s", got)
	}

	pm := press(m, keyDown, keyEnter).(PickModel)
	if pm.result.Panel.Name != "Ann" {
		t.Errorf("panel name = %q, want Ann", pm.result.Panel.Name)
	}
	if !strings.Contains(pm.View(), "mentor") {
		t.Error("view should show Ann's connections")
	}

	pm = press(pm, keyUp, keyEnter).(PickModel)
	if !pm.result.Panel.Empty() {
		t.Errorf("panel = %+v, want empty after (none)", pm.result.Panel)
	}
	if pm.Session.Selection().IsSelected() {
		t.Error("selection should be cleared")
	}
}

func TestPickModelCursorBounds(t *testing.T) {
	m := NewPickModel(context.Background(), testSession(t))

	pm := press(m, keyUp).(PickModel)
	if pm.Cursor != 0 {
		t.Errorf("Cursor = %d after up at top, want 0", pm.Cursor)
	}
	pm = press(pm, keyDown, keyDown, keyDown, keyDown).(PickModel)
	if pm.Cursor != 2 {
		t.Errorf("Cursor = %d after moving past end, want 2", pm.Cursor)
	}
}

func TestPickModelResizeKeepsCursorVisible(t *testing.T) {
	opts := make([]string, 20)
	for i := range opts {
		opts[i] = fmt.Sprintf("Person %02d", i)
	}
	m := PickModel{Options: opts, Cursor: 14, Height: 15}

	tests := []struct {
		name       string
		termHeight int
		wantHeight int
		wantOffset int
	}{
		{"shrink scrolls to cursor", 11, 5, 10},
		{"shrink below minimum", 3, 5, 10},
		{"grow past list pulls back to top", 40, 34, 0},
		{"shrink again", 12, 6, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: tt.termHeight})
			m = next.(PickModel)
			if m.Height != tt.wantHeight || m.Offset != tt.wantOffset {
				t.Errorf("Height, Offset = %d, %d, want %d, %d", m.Height, m.Offset, tt.wantHeight, tt.wantOffset)
			}
			if m.Cursor < m.Offset || m.Cursor >= m.Offset+m.Height {
				t.Errorf("Cursor %d outside [%d, %d)", m.Cursor, m.Offset, m.Offset+m.Height)
			}
		})
	}
}

func TestPickModelQuit(t *testing.T) {
	m := NewPickModel(context.Background(), testSession(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestRenderPanel(t *testing.T) {
	tests := []struct {
		name  string
		panel panel.Panel
		want  []string
	}{
		{"empty", panel.Panel{}, []string{"Nobody selected"}},
		{"error", panel.Panel{Message: "unknown person \"Zed\""}, []string{"Zed"}},
		{"person", panel.Panel{ID: "a", Name: "Ann", Origin: "Oslo", Connections: []panel.Connection{{Name: "Bo", Type: "mentor"}}},
			[]string{"Ann", "Origin:", "Oslo", "Native language:", "Connections", "Bo", "(mentor)"}},
		{"no connections", panel.Panel{ID: "c", Name: "Cy"}, []string{"Cy", "none"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderPanel(tt.panel)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("renderPanel() missing %q:\n%s", w, out)
				}
			}
		})
	}
}
