package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-tunes/internal/playlist"
	"github.com/hazadus/go-tunes/internal/track"
	"github.com/hazadus/go-tunes/internal/uploader"
)

// exportOptions - флаги команды export
type exportOptions struct {
	out       string
	upload    bool
	withAudio bool
}

// createExportCommand создает команду export с привязкой к экземпляру приложения
func (app *Application) createExportCommand(ctx context.Context) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [music dir]",
		Short: "Export the music folder as an M3U playlist",
		Long: `Scan the music folder and write an extended M3U playlist.
With --upload the playlist is published to the S3 bucket from the config;
--with-audio uploads the mp3 files too and points the playlist at them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.resolveDir(args)
			if err != nil {
				return err
			}

			// Загрузка треков может быть долгой, ограничиваем ее таймаутом (30 минут)
			exportCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
			defer cancel()
			return app.exportPlaylist(exportCtx, cmd.OutOrStdout(), dir, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "playlist file (default: <dir>/<dir name>.m3u, \"-\" for stdout)")
	cmd.Flags().BoolVar(&opts.upload, "upload", false, "publish the playlist to S3")
	cmd.Flags().BoolVar(&opts.withAudio, "with-audio", false, "upload mp3 files together with the playlist")

	return cmd
}

func (app *Application) exportPlaylist(ctx context.Context, out io.Writer, dir string, opts *exportOptions) error {
	tracks, err := app.newScanner().Scan(ctx, dir)
	if err != nil {
		return err
	}

	if opts.upload {
		return app.publishPlaylist(ctx, out, dir, tracks, opts.withAudio)
	}

	if opts.out == "-" {
		return playlist.WriteM3U(out, tracks)
	}

	path := opts.out
	if path == "" {
		path = filepath.Join(dir, playlist.FileName(dir))
	}
	if err := playlist.Save(path, tracks); err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ Плейлист сохранен: %s (треков: %d)\n", path, len(tracks))
	return nil
}

func (app *Application) publishPlaylist(ctx context.Context, out io.Writer, dir string, tracks []track.Track, withAudio bool) error {
	store, err := app.objectStore()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "📤 Публикуем %s (треков: %d)\n", dir, len(tracks))

	result, err := uploader.NewService(store).Publish(ctx, dir, tracks, uploader.Options{
		WithAudio: withAudio,
		Progress: func(name string, sent, total int64) {
			if sent == total {
				fmt.Fprintf(out, "   %s: %s\n", name, uploader.FormatFileSize(total))
			}
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ Плейлист опубликован: %s\n", result.PlaylistURL)
	fmt.Fprintf(out, "   Всего загружено: %s\n", uploader.FormatFileSize(result.Bytes))
	return nil
}
