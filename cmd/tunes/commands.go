package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tunes [music dir]",
		Short: "A terminal music player for a folder of mp3 files",
		Long: `A terminal music player: scans a folder of mp3 files, reads their tags and cover art,
and plays them through a queue with shuffle, repeat and search.
Without arguments the last used folder is opened.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return app.launchTUI(ctx, args)
		},
	}

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createTUICommand(ctx))
	rootCmd.AddCommand(app.createListCommand(ctx))
	rootCmd.AddCommand(app.createExportCommand(ctx))
	rootCmd.AddCommand(app.createProfileCommand())

	return rootCmd
}
