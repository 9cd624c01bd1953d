// Package tracklist содержит таблицу очереди с поиском для TUI
package tracklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-tunes/internal/queue"
	"github.com/hazadus/go-tunes/internal/utils"
)

// SearchDebounce - пауза после последнего нажатия, после которой применяется поиск
const SearchDebounce = 500 * time.Millisecond

// headerLines - строка поиска и заголовок колонок над строками таблицы
const headerLines = 2

var (
	headerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#888888"))
	itemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	playingItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f87ff")).Bold(true)
	searchStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	emptyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).PaddingLeft(2)
)

// PlayMsg отправляется при выборе строки для воспроизведения
type PlayMsg struct {
	Index int
}

// MenuMsg отправляется для открытия контекстного меню строки
type MenuMsg struct {
	Index int
}

// RemoveMsg отправляется для удаления строки из очереди
type RemoveMsg struct {
	Index int
}

// searchTickMsg приходит по истечении паузы поиска; применяется только последний
type searchTickMsg struct {
	seq int
}

// Model представляет таблицу очереди
type Model struct {
	queue   *queue.Queue
	entries []queue.Entry
	playing int

	selected int
	offset   int
	rows     int
	width    int

	search    textinput.Model
	searching bool
	term      string
	seq       int
}

// NewModel создает таблицу для очереди q
func NewModel(q *queue.Queue) *Model {
	ti := textinput.New()
	ti.Placeholder = "название, исполнитель или альбом"
	ti.Prompt = "/ "
	ti.CharLimit = 100

	m := &Model{
		queue:   q,
		playing: -1,
		rows:    10,
		width:   80,
		search:  ti,
	}
	m.Refresh(-1)
	return m
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetSize задает ширину и число видимых строк таблицы
func (m *Model) SetSize(width, rows int) {
	m.width = width
	m.rows = max(rows, 1)
	m.search.Width = max(width-4, 10)
	m.clampOffset()
}

// Height возвращает высоту таблицы в строках
func (m *Model) Height() int {
	return headerLines + m.rows
}

// Refresh перестраивает строки по текущей очереди и поисковому запросу.
// playing - индекс загруженного трека в очереди или -1.
func (m *Model) Refresh(playing int) {
	m.playing = playing

	keep := -1
	if e, ok := m.selectedEntry(); ok {
		keep = e.Index
	}
	prev := m.selected

	m.entries = m.queue.Search(m.term)

	if !m.Select(keep) {
		m.selected = max(min(prev, len(m.entries)-1), 0)
		m.clampOffset()
	}
}

// Entries возвращает отображаемые строки
func (m *Model) Entries() []queue.Entry {
	return m.entries
}

// Searching сообщает, активна ли строка поиска
func (m *Model) Searching() bool {
	return m.searching
}

// Term возвращает примененный поисковый запрос
func (m *Model) Term() string {
	return m.term
}

// Selected возвращает индекс выбранной строки в очереди
func (m *Model) Selected() (int, bool) {
	e, ok := m.selectedEntry()
	return e.Index, ok
}

// Select выделяет строку с индексом очереди index
func (m *Model) Select(index int) bool {
	for i, e := range m.entries {
		if e.Index == index {
			m.selected = i
			m.clampOffset()
			return true
		}
	}
	return false
}

// RowAt возвращает индекс очереди для строки экрана y относительно верха таблицы
func (m *Model) RowAt(y int) (int, bool) {
	if y < headerLines || y >= headerLines+m.rows {
		return 0, false
	}
	i := m.offset + y - headerLines
	if i >= len(m.entries) {
		return 0, false
	}
	return m.entries[i].Index, true
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchTickMsg:
		if msg.seq == m.seq {
			m.applySearch(m.search.Value())
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CancelSearch()
		return m, nil
	case "enter":
		m.seq++
		m.searching = false
		m.search.Blur()
		m.applySearch(m.search.Value())
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	m.seq++
	seq := m.seq
	debounce := tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

func (m *Model) updateTable(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "pgup":
		m.move(-m.rows)
	case "pgdown":
		m.move(m.rows)
	case "home", "g":
		m.move(-len(m.entries))
	case "end", "G":
		m.move(len(m.entries))
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "esc":
		if m.term != "" {
			m.CancelSearch()
		}
	case "enter":
		return m, m.emit(func(i int) tea.Msg { return PlayMsg{Index: i} })
	case "m":
		return m, m.emit(func(i int) tea.Msg { return MenuMsg{Index: i} })
	case "d", "delete":
		return m, m.emit(func(i int) tea.Msg { return RemoveMsg{Index: i} })
	}
	return m, nil
}

// CancelSearch сбрасывает запрос и возвращает полный список
func (m *Model) CancelSearch() {
	m.seq++
	m.searching = false
	m.search.Blur()
	m.search.SetValue("")
	m.applySearch("")
}

// View отображает таблицу
func (m *Model) View() string {
	lines := make([]string, 0, m.Height())
	lines = append(lines, m.searchLine(), headerStyle.Render(m.formatRow("#", "Название", "Исполнитель", "Альбом", "Время")))

	if len(m.entries) == 0 {
		if m.term != "" {
			lines = append(lines, emptyStyle.Render("Ничего не найдено"))
		} else {
			lines = append(lines, emptyStyle.Render("Очередь пуста. o: выбрать папку"))
		}
	}

	end := min(m.offset+m.rows, len(m.entries))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderEntry(i))
	}
	for len(lines) < m.Height() {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) searchLine() string {
	switch {
	case m.searching:
		return m.search.View()
	case m.term != "":
		return searchStyle.Render(fmt.Sprintf("Поиск: %s (%d из %d) · esc: сбросить", m.term, len(m.entries), m.queue.Len()))
	default:
		return searchStyle.Render(fmt.Sprintf("Треков: %d · /: поиск", m.queue.Len()))
	}
}

func (m *Model) renderEntry(i int) string {
	e := m.entries[i]
	t := e.Track
	row := m.formatRow(
		fmt.Sprintf("%d", e.Index+1),
		t.DisplayTitle(),
		t.DisplayArtist(),
		t.DisplayAlbum(),
		utils.FormatTime(t.Duration),
	)

	marker := "  "
	if e.Index == m.playing {
		marker = "▶ "
	}
	if i == m.selected {
		marker = "> "
	}

	switch {
	case i == m.selected:
		return selectedItemStyle.Render(marker + row)
	case e.Index == m.playing:
		return playingItemStyle.Render(marker + row)
	default:
		return itemStyle.Render(row)
	}
}

// formatRow раскладывает колонки: номер, название, исполнитель, альбом, время
func (m *Model) formatRow(num, title, artist, album, duration string) string {
	const numWidth, timeWidth = 5, 6
	rest := max(m.width-numWidth-timeWidth-2-3, 30)
	titleWidth := rest * 2 / 5
	artistWidth := rest * 3 / 10
	albumWidth := rest - titleWidth - artistWidth

	return strings.Join([]string{
		utils.PadRight(num, numWidth),
		utils.PadRight(title, titleWidth),
		utils.PadRight(artist, artistWidth),
		utils.PadRight(album, albumWidth),
		utils.TruncateString(duration, timeWidth),
	}, " ")
}

func (m *Model) applySearch(term string) {
	m.term = strings.TrimSpace(term)
	m.Refresh(m.playing)
}

func (m *Model) emit(build func(int) tea.Msg) tea.Cmd {
	e, ok := m.selectedEntry()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return build(e.Index)
	}
}

func (m *Model) selectedEntry() (queue.Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return queue.Entry{}, false
	}
	return m.entries[m.selected], true
}

func (m *Model) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), len(m.entries)-1)
	m.clampOffset()
}

func (m *Model) clampOffset() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.rows {
		m.offset = m.selected - m.rows + 1
	}
	m.offset = max(min(m.offset, len(m.entries)-m.rows), 0)
}
