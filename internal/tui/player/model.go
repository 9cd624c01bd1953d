// Package player содержит панель "сейчас играет" для TUI
package player

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-tunes/internal/playback"
	"github.com/hazadus/go-tunes/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5f87ff"))

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	statusStyle = lipgloss.NewStyle().
			Bold(true)

	upNextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	coverPlaceholderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#444444")).
				Align(lipgloss.Center, lipgloss.Center)
)

// Строки информационного блока
const (
	statusLine = iota
	titleLine
	artistLine
	albumLine
	_
	progressLine
	timeLine
	_
	upNextLine
	infoLines
)

const (
	coverGap         = 2
	upNextCoverWidth = 2
	minProgressWidth = 10
	maxProgressWidth = 60
)

// NoTrackTitle - заглушка названия, когда ничего не загружено
const NoTrackTitle = "Ничего не играет"

// Model представляет панель воспроизведения
type Model struct {
	snapshot      playback.Snapshot
	progressBar   progress.Model
	coverWidth    int
	cover         string
	coverFor      string
	upNextCover   string
	upNextFor     string
	upNextReady   bool
	showRemaining bool
}

// NewModel создает панель; coverWidth - ширина обложки в символах, 0 отключает обложку
func NewModel(coverWidth int) *Model {
	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	prog.Width = 40

	m := &Model{
		progressBar: prog,
		coverWidth:  max(coverWidth, 0),
	}
	m.cover = m.renderCover()
	return m
}

// SetSnapshot обновляет данные панели; обложка перерисовывается только при смене трека
func (m *Model) SetSnapshot(s playback.Snapshot) {
	m.snapshot = s
	if key := s.NowPlaying.FilePath; key != m.coverFor {
		m.coverFor = key
		m.cover = m.renderCover()
	}
	if s.UpNextKind == playback.UpNextTrack {
		if key := s.UpNext.FilePath; !m.upNextReady || key != m.upNextFor {
			m.upNextFor = key
			m.upNextReady = true
			m.upNextCover = m.renderUpNextCover()
		}
	}
}

// Snapshot возвращает последние отображенные данные
func (m *Model) Snapshot() playback.Snapshot {
	return m.snapshot
}

// SetWidth подгоняет ширину прогресс-бара под ширину окна
func (m *Model) SetWidth(width int) {
	available := width - m.infoX() - 2
	m.progressBar.Width = min(max(available, minProgressWidth), maxProgressWidth)
}

// ToggleTimeMode переключает показ прошедшего и оставшегося времени
func (m *Model) ToggleTimeMode() {
	m.showRemaining = !m.showRemaining
}

// ShowRemaining сообщает, показывается ли оставшееся время
func (m *Model) ShowRemaining() bool {
	return m.showRemaining
}

// Height возвращает высоту панели в строках
func (m *Model) Height() int {
	if m.coverWidth == 0 {
		return infoLines
	}
	return max(infoLines, coverRows(m.coverWidth))
}

// ProgressHit переводит клик по панели в позицию перемотки (0.0-1.0).
// Координаты задаются относительно левого верхнего угла панели.
func (m *Model) ProgressHit(x, y int) (float64, bool) {
	if y != progressLine {
		return 0, false
	}
	x -= m.infoX()
	if x < 0 || x >= m.progressBar.Width {
		return 0, false
	}
	return float64(x) / float64(m.progressBar.Width), true
}

// View отображает панель
func (m *Model) View() string {
	info := strings.Join(m.infoBlock(), "\n")
	if m.coverWidth == 0 {
		return info
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.cover, strings.Repeat(" ", coverGap), info)
}

// TimeText возвращает строку времени в текущем режиме
func (m *Model) TimeText() string {
	s := m.snapshot
	if m.showRemaining {
		return fmt.Sprintf("-%s / %s", utils.FormatTime(s.Remaining()), utils.FormatTime(s.Duration))
	}
	return fmt.Sprintf("%s / %s", utils.FormatTime(s.Elapsed), utils.FormatTime(s.Duration))
}

func (m *Model) infoX() int {
	if m.coverWidth == 0 {
		return 0
	}
	return m.coverWidth + coverGap
}

func (m *Model) infoBlock() []string {
	s := m.snapshot
	lines := make([]string, infoLines)

	lines[statusLine] = statusStyle.Render(fmt.Sprintf("%s %s", formatStatusIcon(s.State), formatStatus(s.State))) +
		trackInfoStyle.Render(fmt.Sprintf("  повтор: %s", formatRepeat(s.Repeat)))

	if s.HasTrack {
		lines[titleLine] = titleStyle.Render(s.NowPlaying.DisplayTitle())
		lines[artistLine] = trackInfoStyle.Render(s.NowPlaying.DisplayArtist())
		lines[albumLine] = trackInfoStyle.Render(s.NowPlaying.DisplayAlbum())
	} else {
		lines[titleLine] = titleStyle.Render(NoTrackTitle)
		lines[artistLine] = trackInfoStyle.Render("-")
		lines[albumLine] = trackInfoStyle.Render("-")
	}

	lines[progressLine] = m.progressBar.ViewAs(s.Progress())
	lines[timeLine] = m.TimeText()
	lines[upNextLine] = upNextStyle.Render(formatUpNext(s))
	if s.UpNextKind == playback.UpNextTrack {
		lines[upNextLine] = m.upNextCover + lines[upNextLine]
	}
	return lines
}

func (m *Model) renderCover() string {
	if m.coverWidth == 0 {
		return ""
	}
	if m.snapshot.HasTrack {
		if img, err := m.snapshot.NowPlaying.Cover(); err == nil {
			return renderCover(img, m.coverWidth)
		}
	}
	return placeholderCover(m.coverWidth)
}

// renderUpNextCover рисует миниатюру следующего трека в одну строку
func (m *Model) renderUpNextCover() string {
	if m.coverWidth == 0 {
		return ""
	}
	img, err := m.snapshot.UpNext.Cover()
	if err != nil {
		return upNextStyle.Render("♪ ")
	}
	return renderCover(img, upNextCoverWidth) + " "
}

// Вспомогательные функции

func formatStatus(state playback.State) string {
	switch state {
	case playback.StatePlaying:
		return "Воспроизведение"
	case playback.StatePaused:
		return "Пауза"
	case playback.StateStopped:
		return "Остановлено"
	default:
		return "Очередь пуста"
	}
}

func formatStatusIcon(state playback.State) string {
	switch state {
	case playback.StatePlaying:
		return "▶"
	case playback.StatePaused:
		return "⏸"
	default:
		return "■"
	}
}

func formatRepeat(mode playback.RepeatMode) string {
	switch mode {
	case playback.RepeatOne:
		return "трек"
	case playback.RepeatLoop:
		return "очередь"
	default:
		return "выкл"
	}
}

func formatUpNext(s playback.Snapshot) string {
	switch s.UpNextKind {
	case playback.UpNextTrack:
		return fmt.Sprintf("Далее: %s · %s", s.UpNext.DisplayTitle(), s.UpNext.DisplayArtist())
	case playback.UpNextEnd:
		return "Далее: конец очереди"
	default:
		return ""
	}
}
