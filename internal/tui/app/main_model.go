// Package app содержит основную логику TUI приложения
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-tunes/internal/library"
	"github.com/hazadus/go-tunes/internal/playback"
	"github.com/hazadus/go-tunes/internal/profile"
	"github.com/hazadus/go-tunes/internal/track"
	"github.com/hazadus/go-tunes/internal/tui/dialog"
	"github.com/hazadus/go-tunes/internal/tui/dirpicker"
	"github.com/hazadus/go-tunes/internal/tui/menu"
	tuiPlayer "github.com/hazadus/go-tunes/internal/tui/player"
	"github.com/hazadus/go-tunes/internal/tui/tracklist"
	"github.com/hazadus/go-tunes/internal/watcher"
)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// PlayerScreen - панель воспроизведения и очередь
	PlayerScreen ScreenType = iota
	// DirPickerScreen - выбор папки с музыкой
	DirPickerScreen
	// DialogScreen - модальное окно с сообщением
	DialogScreen
)

// Заголовки и тексты окон
const (
	NoTracksTitle   = "Треки не найдены"
	NoTracksMessage = "В выбранной папке нет mp3-файлов, которые удалось прочитать. Нажмите o, чтобы выбрать другую папку."
	ReadErrorTitle  = "Не удалось открыть папку"
)

// TickInterval - период обновления позиции воспроизведения
const TickInterval = time.Second

// DefaultSeekStep - шаг перемотки стрелками по умолчанию (доля длительности)
const DefaultSeekStep = 0.05

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5f87ff"))
	dirStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00"))
)

// Scanner собирает треки из папки
type Scanner interface {
	Scan(ctx context.Context, dir string) ([]track.Track, error)
}

// Options - зависимости главной модели
type Options struct {
	Controller *playback.Controller
	// Context ограничивает сканирование папок; по умолчанию context.Background()
	Context context.Context
	// Ended - сигналы окончания трека с поколением потока; nil отключает ожидание
	Ended <-chan uint64
	// Generation возвращает поколение текущего потока; nil отключает проверку
	Generation func() uint64
	Scanner    Scanner
	// Profile сохраняет последнюю выбранную папку; nil отключает сохранение
	Profile *profile.Store
	// Watch запускает наблюдение за папкой; nil отключает наблюдение
	Watch func(dir string) (*watcher.Watcher, error)
	// Clipboard копирует текст в буфер обмена; по умолчанию clipboard.WriteAll
	Clipboard func(string) error
	// Dir - папка, открываемая при запуске; если пусто, берется из профиля
	Dir        string
	CoverWidth int
	SeekStep   float64
	Logger     *log.Logger
}

// tickMsg - периодический опрос позиции
type tickMsg time.Time

// endedMsg - медиаресурс доиграл поток поколения generation
type endedMsg struct {
	generation uint64
}

// libraryLoadedMsg - результат сканирования папки
type libraryLoadedMsg struct {
	seq    uint64
	dir    string
	tracks []track.Track
	err    error
}

// libraryChangedMsg - в папке появились или пропали mp3-файлы
type libraryChangedMsg struct {
	dir string
}

// MainModel представляет главную модель TUI
type MainModel struct {
	opts       Options
	controller *playback.Controller
	logger     *log.Logger

	currentScreen  ScreenType
	playerModel    *tuiPlayer.Model
	tracklistModel *tracklist.Model
	pickerModel    *dirpicker.Model
	dialogModel    *dialog.Model
	menuModel      *menu.Model

	keys keyMap
	help help.Model

	dir     string
	status  string
	loading bool
	watcher *watcher.Watcher

	// scanSeq - номер последнего запущенного сканирования; результаты прежних отбрасываются
	scanSeq    uint64
	cancelScan context.CancelFunc

	width  int
	height int
}

// NewMainModel создает новую главную модель
func NewMainModel(opts Options) *MainModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.SeekStep <= 0 {
		opts.SeekStep = DefaultSeekStep
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	m := &MainModel{
		opts:           opts,
		controller:     opts.Controller,
		logger:         opts.Logger,
		currentScreen:  PlayerScreen,
		playerModel:    tuiPlayer.NewModel(opts.CoverWidth),
		tracklistModel: tracklist.NewModel(opts.Controller.Queue()),
		keys:           defaultKeyMap(),
		help:           help.New(),
		dir:            opts.Dir,
		width:          80,
		height:         24,
	}

	if m.dir == "" && opts.Profile != nil {
		if dir, ok := opts.Profile.Load(); ok {
			m.dir = dir
		}
	}
	if m.dir == "" {
		m.openPicker()
	} else {
		m.loading = true
	}

	m.sync()
	m.layout()
	return m
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(), m.waitForEnded()}
	if m.loading {
		cmds = append(cmds, m.loadLibrary(m.dir))
	}
	return tea.Batch(cmds...)
}

// Screen возвращает текущий экран
func (m *MainModel) Screen() ScreenType {
	return m.currentScreen
}

// Dir возвращает открытую папку
func (m *MainModel) Dir() string {
	return m.dir
}

// Status возвращает текст строки состояния
func (m *MainModel) Status() string {
	return m.status
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if m.pickerModel != nil {
			m.pickerModel.SetSize(msg.Width, msg.Height)
		}
		if m.dialogModel != nil {
			m.dialogModel.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tickMsg:
		_ = m.controller.Dispatch(playback.Do(playback.CmdTick))
		m.sync()
		return m, tick()

	case endedMsg:
		// После чтения сигнала мог загрузиться другой трек
		if m.opts.Generation != nil && msg.generation != m.opts.Generation() {
			m.logger.Printf("Сигнал конца устаревшего потока %d пропущен", msg.generation)
			return m, m.waitForEnded()
		}
		m.dispatch(playback.Do(playback.CmdEnded))
		return m, m.waitForEnded()

	case libraryLoadedMsg:
		return m, m.handleLoaded(msg)

	case libraryChangedMsg:
		if m.watcher == nil || msg.dir != m.watcher.Dir() {
			return m, nil
		}
		m.status = "Содержимое папки изменилось. u: обновить"
		return m, m.waitForChange(m.watcher)

	case dirpicker.SelectedMsg:
		m.pickerModel = nil
		m.currentScreen = PlayerScreen
		m.status = ""
		return m, m.loadLibrary(msg.Path)

	case dirpicker.CancelledMsg:
		m.pickerModel = nil
		m.currentScreen = PlayerScreen
		return m, nil

	case dialog.ClosedMsg:
		m.dialogModel = nil
		m.currentScreen = PlayerScreen
		return m, nil

	case menu.ChosenMsg:
		m.menuModel = nil
		m.handleMenu(msg)
		return m, nil

	case menu.ClosedMsg:
		m.menuModel = nil
		return m, nil

	case tracklist.PlayMsg:
		m.dispatch(playback.PlayAt(msg.Index))
		return m, nil

	case tracklist.RemoveMsg:
		m.dispatch(playback.RemoveAt(msg.Index))
		return m, nil

	case tracklist.MenuMsg:
		m.openMenu(msg.Index)
		return m, nil
	}

	// Передаем сообщение активному экрану
	switch m.currentScreen {
	case DirPickerScreen:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.pickerModel, cmd = m.pickerModel.Update(msg)
		return m, cmd

	case DialogScreen:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.dialogModel, cmd = m.dialogModel.Update(msg)
		return m, cmd
	}

	if m.menuModel != nil {
		var cmd tea.Cmd
		m.menuModel, cmd = m.menuModel.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.tracklistModel, cmd = m.tracklistModel.Update(msg)
	return m, cmd
}

func (m *MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Во время ввода запроса все клавиши, кроме ctrl+c, уходят в строку поиска
	if m.tracklistModel.Searching() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PlayPause):
		m.dispatch(playback.Do(playback.CmdPlayPause))
	case key.Matches(msg, m.keys.Next):
		m.dispatch(playback.Do(playback.CmdNext))
	case key.Matches(msg, m.keys.Previous):
		m.dispatch(playback.Do(playback.CmdPrevious))
	case key.Matches(msg, m.keys.Repeat):
		m.dispatch(playback.Do(playback.CmdCycleRepeat))
	case key.Matches(msg, m.keys.Shuffle):
		m.dispatch(playback.Do(playback.CmdShuffle))
	case key.Matches(msg, m.keys.SeekBack):
		m.seekBy(-m.opts.SeekStep)
	case key.Matches(msg, m.keys.SeekFwd):
		m.seekBy(m.opts.SeekStep)
	case key.Matches(msg, m.keys.TimeMode):
		m.playerModel.ToggleTimeMode()
	case key.Matches(msg, m.keys.Open):
		m.openPicker()
	case key.Matches(msg, m.keys.Rescan):
		if m.dir == "" || m.loading {
			return m, nil
		}
		return m, m.loadLibrary(m.dir)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	default:
		var cmd tea.Cmd
		m.tracklistModel, cmd = m.tracklistModel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *MainModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.tracklistModel, _ = m.tracklistModel.Update(tea.KeyMsg{Type: tea.KeyUp})
		return m, nil
	case tea.MouseButtonWheelDown:
		m.tracklistModel, _ = m.tracklistModel.Update(tea.KeyMsg{Type: tea.KeyDown})
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	panelTop := m.panelTop()
	if msg.Button == tea.MouseButtonLeft {
		if position, ok := m.playerModel.ProgressHit(msg.X, msg.Y-panelTop); ok {
			m.dispatch(playback.SeekTo(position))
			return m, nil
		}
	}

	index, ok := m.tracklistModel.RowAt(msg.Y - m.tableTop())
	if !ok {
		return m, nil
	}
	m.tracklistModel.Select(index)
	if msg.Button == tea.MouseButtonRight {
		m.openMenu(index)
	}
	return m, nil
}

func (m *MainModel) handleMenu(msg menu.ChosenMsg) {
	switch msg.Action {
	case menu.ActionPlayNow:
		m.dispatch(playback.PlayAt(msg.Index))
	case menu.ActionRemove:
		m.dispatch(playback.RemoveAt(msg.Index))
	case menu.ActionCopyPath:
		if err := m.opts.Clipboard(msg.Track.FilePath); err != nil {
			m.logger.Printf("Ошибка копирования в буфер обмена: %v", err)
			m.status = fmt.Sprintf("Не удалось скопировать путь: %v", err)
			return
		}
		m.status = "Путь скопирован: " + msg.Track.FilePath
	}
}

func (m *MainModel) handleLoaded(msg libraryLoadedMsg) tea.Cmd {
	if msg.seq != m.scanSeq {
		m.logger.Printf("Результат прежнего сканирования %s отброшен", msg.dir)
		return nil
	}
	m.loading = false
	m.stopScan()

	switch {
	case errors.Is(msg.err, context.Canceled):
		return nil

	case errors.Is(msg.err, library.ErrNoTracks):
		m.dir = msg.dir
		m.controller.Load(nil)
		m.tracklistModel.CancelSearch()
		m.status = playback.ErrNoTracks.Error()
		m.openDialog(NoTracksTitle, NoTracksMessage)

	case msg.err != nil:
		// Прежняя очередь остается нетронутой
		m.logger.Printf("Ошибка сканирования %s: %v", msg.dir, msg.err)
		m.openDialog(ReadErrorTitle, msg.err.Error())
		m.sync()
		return nil

	default:
		m.dir = msg.dir
		m.controller.Load(msg.tracks)
		m.tracklistModel.CancelSearch()
		m.status = fmt.Sprintf("Загружено треков: %d", len(msg.tracks))
		if m.opts.Profile != nil {
			if err := m.opts.Profile.Save(msg.dir); err != nil {
				m.logger.Printf("Ошибка сохранения профиля: %v", err)
			}
		}
	}

	m.sync()
	return m.watch(msg.dir)
}

func (m *MainModel) dispatch(cmd playback.Command) {
	if err := m.controller.Dispatch(cmd); err != nil {
		m.status = err.Error()
	} else {
		m.status = ""
	}
	m.sync()
}

func (m *MainModel) seekBy(delta float64) {
	s := m.controller.Snapshot()
	if s.Duration <= 0 {
		m.dispatch(playback.SeekTo(0))
		return
	}
	m.dispatch(playback.SeekTo(s.Progress() + delta))
}

// sync переносит состояние контроллера в панель и таблицу
func (m *MainModel) sync() {
	m.playerModel.SetSnapshot(m.controller.Snapshot())
	playing := -1
	if m.controller.State().Loaded() {
		playing = m.controller.Queue().Cursor()
	}
	m.tracklistModel.Refresh(playing)
}

func (m *MainModel) openPicker() {
	m.pickerModel = dirpicker.NewModel(m.dir)
	m.pickerModel.SetSize(m.width, m.height)
	m.currentScreen = DirPickerScreen
}

func (m *MainModel) openDialog(title, message string) {
	m.dialogModel = dialog.New(title, message)
	m.dialogModel.SetSize(m.width, m.height)
	m.currentScreen = DialogScreen
}

func (m *MainModel) openMenu(index int) {
	t, ok := m.controller.Queue().At(index)
	if !ok {
		return
	}
	m.menuModel = menu.NewModel(index, t)
}

// watch переключает наблюдение на папку dir
func (m *MainModel) watch(dir string) tea.Cmd {
	if m.opts.Watch == nil {
		return nil
	}
	if m.watcher != nil {
		if m.watcher.Dir() == dir {
			return nil
		}
		_ = m.watcher.Close()
		m.watcher = nil
	}

	w, err := m.opts.Watch(dir)
	if err != nil {
		m.logger.Printf("Наблюдение за папкой недоступно: %v", err)
		return nil
	}
	m.watcher = w
	return m.waitForChange(w)
}

// Close освобождает ресурсы модели
func (m *MainModel) Close() {
	m.stopScan()
	if m.watcher != nil {
		_ = m.watcher.Close()
		m.watcher = nil
	}
}

// Команды

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *MainModel) waitForEnded() tea.Cmd {
	ended := m.opts.Ended
	if ended == nil {
		return nil
	}
	return func() tea.Msg {
		generation, ok := <-ended
		if !ok {
			return nil
		}
		return endedMsg{generation: generation}
	}
}

func (m *MainModel) waitForChange(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		dir, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return libraryChangedMsg{dir: dir}
	}
}

// loadLibrary запускает сканирование dir, отменяя незавершенное прежнее
func (m *MainModel) loadLibrary(dir string) tea.Cmd {
	m.stopScan()
	ctx, cancel := context.WithCancel(m.opts.Context)
	m.cancelScan = cancel
	m.scanSeq++
	m.loading = true

	seq := m.scanSeq
	scanner := m.opts.Scanner
	return func() tea.Msg {
		defer cancel()
		tracks, err := scanner.Scan(ctx, dir)
		return libraryLoadedMsg{seq: seq, dir: dir, tracks: tracks, err: err}
	}
}

func (m *MainModel) stopScan() {
	if m.cancelScan != nil {
		m.cancelScan()
		m.cancelScan = nil
	}
}

// Разметка экрана: заголовок, панель, пустая строка, таблица, строка состояния, справка

func (m *MainModel) panelTop() int {
	return 1
}

func (m *MainModel) tableTop() int {
	return m.panelTop() + m.playerModel.Height() + 1
}

func (m *MainModel) footerHeight() int {
	return 1 + lipgloss.Height(m.help.View(m.keys))
}

func (m *MainModel) layout() {
	m.playerModel.SetWidth(m.width)
	m.help.Width = m.width
	rows := m.height - m.tableTop() - m.footerHeight() - 2
	m.tracklistModel.SetSize(m.width, rows)
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case DirPickerScreen:
		if m.pickerModel != nil {
			return m.pickerModel.View()
		}
	case DialogScreen:
		if m.dialogModel != nil {
			return m.dialogModel.View()
		}
	}

	if m.menuModel != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.menuModel.View())
	}

	dir := m.dir
	if dir == "" {
		dir = "папка не выбрана"
	}
	header := headerStyle.Render("♫ tunes") + dirStyle.Render("  "+dir)

	status := m.status
	if m.loading {
		status = "Сканирование папки..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.playerModel.View(),
		"",
		m.tracklistModel.View(),
		statusStyle.Render(status),
		m.help.View(m.keys),
	)
}
