package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-tunes/internal/notify"
	"github.com/hazadus/go-tunes/internal/playback"
	"github.com/hazadus/go-tunes/internal/player"
	"github.com/hazadus/go-tunes/internal/tui"
	tuiapp "github.com/hazadus/go-tunes/internal/tui/app"
	"github.com/hazadus/go-tunes/internal/watcher"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [music dir]",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch the interactive player. Without arguments the folder saved in the profile is opened.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.launchTUI(ctx, args)
		},
	}
}

func (app *Application) launchTUI(ctx context.Context, args []string) error {
	dir := ""
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("ошибка разбора пути %s: %w", args[0], err)
		}
		dir = abs
	}

	repeat, err := playback.ParseRepeatMode(app.Config.Repeat)
	if err != nil {
		return err
	}

	// Интерфейс занимает терминал, поэтому журнал пишется в файл
	if err := os.MkdirAll(filepath.Dir(app.Config.LogFile), 0755); err != nil {
		return fmt.Errorf("ошибка создания папки журнала: %w", err)
	}
	logFile, err := tea.LogToFile(app.Config.LogFile, "tunes")
	if err != nil {
		return fmt.Errorf("ошибка открытия журнала: %w", err)
	}
	defer logFile.Close()

	mediaPlayer := player.NewPlayer()
	controller := playback.NewController(mediaPlayer, playback.WithRepeat(repeat), playback.WithLogger(app.Logger))

	options := app.tuiOptions(ctx, controller, dir)
	options.Ended = mediaPlayer.Ended()
	options.Generation = mediaPlayer.Generation

	tuiApp := tui.NewApp(mediaPlayer, options, notify.New(app.Config.Notifications, app.Logger))
	return tuiApp.Run()
}

func (app *Application) tuiOptions(ctx context.Context, controller *playback.Controller, dir string) tuiapp.Options {
	options := tuiapp.Options{
		Context:    ctx,
		Controller: controller,
		Scanner:    app.newScanner(),
		Profile:    app.profileStore(),
		Dir:        dir,
		CoverWidth: app.Config.CoverWidth,
		SeekStep:   app.Config.SeekStep,
		Logger:     app.Logger,
	}
	if app.Config.WatchLibrary {
		logger := app.Logger
		options.Watch = func(dir string) (*watcher.Watcher, error) {
			return watcher.New(dir, watcher.DefaultDebounce, logger)
		}
	}
	return options
}
