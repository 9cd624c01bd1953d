// Package dirpicker содержит обозреватель папок для выбора медиатеки
package dirpicker

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).PaddingLeft(4)
)

// SelectedMsg отправляется при выборе папки
type SelectedMsg struct {
	Path string
}

// CancelledMsg отправляется при отмене выбора
type CancelledMsg struct{}

// dirItem реализует интерфейс list.Item для папки
type dirItem struct {
	entry Entry
}

func (i dirItem) FilterValue() string {
	return i.entry.Name
}

// dirItemDelegate реализует отображение элементов списка
type dirItemDelegate struct{}

func (d dirItemDelegate) Height() int                             { return 1 }
func (d dirItemDelegate) Spacing() int                            { return 0 }
func (d dirItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d dirItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(dirItem)
	if !ok {
		return
	}

	str := "📁 " + i.entry.Name
	if i.entry.Name == ParentName {
		str = "⬆ " + i.entry.Name
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет экран выбора папки
type Model struct {
	list     list.Model
	explorer *Explorer
}

// NewModel создает обозреватель, открытый на папке startPath
func NewModel(startPath string) *Model {
	l := list.New(nil, dirItemDelegate{}, 0, 0)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	m := &Model{
		list:     l,
		explorer: NewExplorer(startPath),
	}
	m.refresh()
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// CurrentPath возвращает открытую папку
func (m *Model) CurrentPath() string {
	return m.explorer.CurrentPath
}

// SetSize задает размеры списка
func (m *Model) SetSize(width, height int) {
	m.list.SetWidth(width)
	m.list.SetHeight(max(height-2, 3))
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return CancelledMsg{} }

		case "enter":
			entry, ok := m.selected()
			if !ok {
				return m, nil
			}
			if entry.Name == ParentName {
				m.explorer.Parent()
				m.refresh()
				return m, nil
			}
			path := entry.Path
			return m, func() tea.Msg { return SelectedMsg{Path: path} }

		case ".":
			path := m.explorer.CurrentPath
			return m, func() tea.Msg { return SelectedMsg{Path: path} }

		case "right", "l":
			m.explorer.Enter(m.list.Index())
			m.refresh()
			return m, nil

		case "left", "h", "backspace":
			m.explorer.Parent()
			m.refresh()
			return m, nil

		case "H":
			m.explorer.ToggleHidden()
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	view := m.list.View()
	if m.explorer.Error != nil {
		view += "\n" + errorStyle.Render(m.explorer.Error.Error())
	}
	extraHelp := helpStyle.Render("Enter: выбрать • →: открыть • ←: назад • .: выбрать текущую • H: скрытые • Esc: отмена")
	return view + "\n" + extraHelp
}

func (m *Model) refresh() {
	items := make([]list.Item, len(m.explorer.Entries))
	for i, e := range m.explorer.Entries {
		items[i] = dirItem{entry: e}
	}
	m.list.SetItems(items)
	m.list.Select(0)
	m.list.Title = "Выберите папку с музыкой: " + m.explorer.CurrentPath
}

func (m *Model) selected() (Entry, bool) {
	item, ok := m.list.SelectedItem().(dirItem)
	if !ok {
		return Entry{}, false
	}
	return item.entry, true
}
