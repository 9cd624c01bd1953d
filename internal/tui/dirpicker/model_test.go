package dirpicker

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (*Model, string) {
	t.Helper()
	root := makeTree(t)
	m := NewModel(root)
	m.SetSize(80, 20)
	return m, root
}

func TestSelectCurrentDirectory(t *testing.T) {
	m, root := newTestModel(t)

	_, cmd := m.Update(key("."))
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", cmd())
	}
	if msg.Path != root {
		t.Errorf("Path = %q, want %q", msg.Path, root)
	}
}

func TestSelectHighlightedDirectory(t *testing.T) {
	m, root := newTestModel(t)

	m.Update(key("down"))
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", cmd())
	}
	if msg.Path != filepath.Join(root, "A") {
		t.Errorf("Path = %q", msg.Path)
	}
}

func TestEnterAndLeave(t *testing.T) {
	m, root := newTestModel(t)

	m.Update(key("down"))
	m.Update(key("right"))
	if m.CurrentPath() != filepath.Join(root, "A") {
		t.Fatalf("CurrentPath = %q", m.CurrentPath())
	}
	if !strings.Contains(m.View(), "inner") {
		t.Error("view should list inner dir")
	}

	m.Update(key("left"))
	if m.CurrentPath() != root {
		t.Errorf("CurrentPath = %q, want %q", m.CurrentPath(), root)
	}

	// Enter на ".." поднимается на уровень выше
	m.Update(key("enter"))
	if m.CurrentPath() != filepath.Dir(root) {
		t.Errorf("CurrentPath = %q, want %q", m.CurrentPath(), filepath.Dir(root))
	}
}

func TestCancel(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(key("esc"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Errorf("expected CancelledMsg, got %T", cmd())
	}
}
