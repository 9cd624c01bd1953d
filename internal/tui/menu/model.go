// Package menu содержит контекстное меню строки очереди
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-tunes/internal/track"
)

// Action - пункт контекстного меню
type Action int

// Пункты меню
const (
	// ActionPlayNow переводит курсор на строку и запускает ее
	ActionPlayNow Action = iota
	// ActionRemove удаляет строку из очереди
	ActionRemove
	// ActionCopyPath копирует путь к файлу в буфер обмена
	ActionCopyPath
)

func (a Action) String() string {
	switch a {
	case ActionPlayNow:
		return "Play Now"
	case ActionRemove:
		return "Remove from Queue"
	case ActionCopyPath:
		return "Copy path"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Actions - пункты в порядке отображения
var Actions = []Action{ActionPlayNow, ActionRemove, ActionCopyPath}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("170")).
			Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
)

// ChosenMsg отправляется при выборе пункта меню
type ChosenMsg struct {
	Action Action
	Index  int
	Track  track.Track
}

// ClosedMsg отправляется при закрытии меню без выбора
type ClosedMsg struct{}

// Model - открытое меню для строки очереди
type Model struct {
	index  int
	track  track.Track
	cursor int
}

// NewModel открывает меню для строки index
func NewModel(index int, t track.Track) *Model {
	return &Model{index: index, track: t}
}

// Index возвращает строку очереди, для которой открыто меню
func (m *Model) Index() int {
	return m.index
}

// Cursor возвращает выделенный пункт
func (m *Model) Cursor() Action {
	return Actions[m.cursor]
}

// Update обрабатывает клавиши меню
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(Actions)-1 {
			m.cursor++
		}
	case "enter":
		chosen := ChosenMsg{Action: Actions[m.cursor], Index: m.index, Track: m.track}
		return m, func() tea.Msg { return chosen }
	case "esc", "q", "m":
		return m, func() tea.Msg { return ClosedMsg{} }
	}
	return m, nil
}

// View отображает меню
func (m *Model) View() string {
	lines := []string{titleStyle.Render(m.track.DisplayTitle())}
	for i, action := range Actions {
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+action.String()))
			continue
		}
		lines = append(lines, itemStyle.Render(action.String()))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
