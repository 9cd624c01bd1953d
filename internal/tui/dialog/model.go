// Package dialog содержит модальное окно с сообщением
package dialog

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff5f87")).
			Padding(1, 3).
			Width(50)
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).MarginTop(1)
)

// ClosedMsg отправляется при закрытии окна
type ClosedMsg struct{}

// Model - окно с заголовком и текстом
type Model struct {
	Title   string
	Message string

	width  int
	height int
}

// New создает окно
func New(title, message string) *Model {
	return &Model{Title: title, Message: message}
}

// SetSize задает размеры области, в центре которой рисуется окно
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update закрывает окно по Enter, Esc или пробелу
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", " ", "q":
			return m, func() tea.Msg { return ClosedMsg{} }
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, func() tea.Msg { return ClosedMsg{} }
		}
	}
	return m, nil
}

// View отображает окно по центру
func (m *Model) View() string {
	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.Title),
		m.Message,
		hintStyle.Render("Enter: закрыть"),
	))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
