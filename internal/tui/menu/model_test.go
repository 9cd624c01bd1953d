package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-tunes/internal/track"
)

func TestChooseAction(t *testing.T) {
	tr := track.Track{Title: "Song", FilePath: "/music/song.mp3"}

	tests := []struct {
		name  string
		downs int
		want  Action
	}{
		{"play now", 0, ActionPlayNow},
		{"remove", 1, ActionRemove},
		{"copy path", 2, ActionCopyPath},
		{"stays on last", 5, ActionCopyPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(3, tr)
			for range tt.downs {
				m.Update(tea.KeyMsg{Type: tea.KeyDown})
			}
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("expected command")
			}
			msg, ok := cmd().(ChosenMsg)
			if !ok {
				t.Fatalf("expected ChosenMsg, got %T", cmd())
			}
			if msg.Action != tt.want {
				t.Errorf("Action = %v, want %v", msg.Action, tt.want)
			}
			if msg.Index != 3 || msg.Track.FilePath != tr.FilePath {
				t.Errorf("unexpected target: %+v", msg)
			}
		})
	}
}

func TestCloseMenu(t *testing.T) {
	m := NewModel(0, track.Track{Title: "Song"})

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != ActionPlayNow {
		t.Errorf("Cursor = %v, want %v", m.Cursor(), ActionPlayNow)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(ClosedMsg); !ok {
		t.Errorf("expected ClosedMsg, got %T", cmd())
	}
}

func TestView(t *testing.T) {
	view := NewModel(0, track.Track{Title: "Song"}).View()
	for _, want := range []string{"Song", "> Play Now", "Remove from Queue", "Copy path"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
