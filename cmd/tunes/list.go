package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-tunes/internal/track"
	"github.com/hazadus/go-tunes/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "list [music dir]",
		Short: "List tracks found in the music folder",
		Long:  `Scan the music folder (or the one saved in the profile) and print its tracks as a table.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.resolveDir(args)
			if err != nil {
				return err
			}
			return app.listTracks(ctx, cmd.OutOrStdout(), dir)
		},
	}
}

func (app *Application) listTracks(ctx context.Context, out io.Writer, dir string) error {
	tracks, err := app.newScanner().Scan(ctx, dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "📚 %s: найдено треков %d\n\n", dir, len(tracks))
	renderTracks(out, tracks)
	return nil
}

func renderTracks(out io.Writer, tracks []track.Track) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"#", "Исполнитель", "Название", "Альбом", "Время", "Обложка"})

	var total time.Duration
	for i, tr := range tracks {
		cover := ""
		if tr.HasCover() {
			cover = "✓"
		}
		t.AppendRow(table.Row{
			i + 1,
			utils.TruncateString(tr.DisplayArtist(), 28),
			utils.TruncateString(tr.DisplayTitle(), 40),
			utils.TruncateString(tr.DisplayAlbum(), 28),
			utils.FormatTime(tr.Duration),
			cover,
		})
		total += tr.Duration
	}

	t.AppendFooter(table.Row{"", "", "Всего", "", utils.FormatDuration(total), ""})
	t.Render()
}
