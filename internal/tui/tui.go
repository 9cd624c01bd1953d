// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-tunes/internal/notify"
	"github.com/hazadus/go-tunes/internal/track"
	"github.com/hazadus/go-tunes/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	options app.Options
	media   io.Closer
}

// NewApp создает новый экземпляр TUI приложения.
// media закрывается после завершения программы; notifier может быть nil.
func NewApp(media io.Closer, options app.Options, notifier *notify.Notifier) *App {
	if notifier != nil && notifier.Enabled() {
		// Уведомление отправляется в фоне, чтобы не задерживать цикл интерфейса
		options.Controller.OnTrackChange(func(t track.Track) {
			go notifier.TrackChanged(t)
		})
	}
	return &App{options: options, media: media}
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	// Создаем модель для Bubble Tea
	model := app.NewMainModel(tuiApp.options)

	// Создаем программу Bubble Tea
	programOptions := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if tuiApp.options.Context != nil {
		programOptions = append(programOptions, tea.WithContext(tuiApp.options.Context))
	}
	p := tea.NewProgram(model, programOptions...)

	// Запускаем программу
	_, err := p.Run()

	// Закрываем наблюдение и плеер после завершения программы
	model.Close()
	if tuiApp.media != nil {
		if closeErr := tuiApp.media.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}

	return err
}
