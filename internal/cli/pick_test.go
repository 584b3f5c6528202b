package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m PickModel, keys ...string) (PickModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(PickModel)
	}
	return m, cmd
}

func TestPickModelToggle(t *testing.T) {
	_, chain := testGraph(t)
	m := NewPickModel(chain)

	m, _ = press(m, " ", "down", "down", "x")
	picked := m.Picked()
	if len(picked) != 2 || picked[0] != chain[0] || picked[1] != chain[2] {
		t.Errorf("Picked() = %v", picked)
	}

	m, _ = press(m, "x")
	if len(m.Picked()) != 1 {
		t.Errorf("toggle off: Picked() = %v", m.Picked())
	}
}

func TestPickModelSelectAll(t *testing.T) {
	_, chain := testGraph(t)
	m := NewPickModel(chain)

	m, _ = press(m, "a")
	if len(m.Picked()) != len(chain) {
		t.Errorf("a: picked %d, want %d", len(m.Picked()), len(chain))
	}
	m, _ = press(m, "a")
	if len(m.Picked()) != 0 {
		t.Errorf("second a: picked %d, want 0", len(m.Picked()))
	}
}

func TestPickModelCursorBounds(t *testing.T) {
	_, chain := testGraph(t)
	m := NewPickModel(chain)

	m, _ = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the list: %d", m.Cursor)
	}
	m, _ = press(m, "down", "down", "down", "down")
	if m.Cursor != len(chain)-1 {
		t.Errorf("cursor = %d, want %d", m.Cursor, len(chain)-1)
	}
}

func TestPickModelQuit(t *testing.T) {
	_, chain := testGraph(t)

	m, cmd := press(NewPickModel(chain), "c")
	if !m.Copy || cmd == nil {
		t.Error("c should confirm and quit")
	}
	m, cmd = press(NewPickModel(chain), "q")
	if m.Copy || cmd == nil {
		t.Error("q should quit without copying")
	}
}

func TestPickModelPreselected(t *testing.T) {
	_, chain := testGraph(t)
	chain[1].SetSelected(true)

	m := NewPickModel(chain)
	if picked := m.Picked(); len(picked) != 1 || picked[0] != chain[1] {
		t.Errorf("Picked() = %v, want the selected node", picked)
	}
	if view := m.View(); !strings.Contains(view, "1 selected") {
		t.Errorf("view does not show the count:\n%s", view)
	}
}
