// Package playlist экспортирует очередь в формате M3U
package playlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/hazadus/go-tunes/internal/track"
)

// Header - первая строка расширенного M3U
const Header = "#EXTM3U"

// WriteM3U пишет треки в расширенном формате M3U
func WriteM3U(w io.Writer, tracks []track.Track) error {
	bw := bufio.NewWriter(w)

	lines := lo.FlatMap(tracks, func(t track.Track, _ int) []string {
		return []string{
			fmt.Sprintf("#EXTINF:%d,%s - %s", int(t.Duration.Seconds()), t.DisplayArtist(), t.DisplayTitle()),
			t.FilePath,
		}
	})

	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Render возвращает плейлист строкой
func Render(tracks []track.Track) string {
	var sb strings.Builder
	_ = WriteM3U(&sb, tracks)
	return sb.String()
}

// Save сохраняет плейлист в файл
func Save(path string, tracks []track.Track) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("ошибка создания папки: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания плейлиста: %w", err)
	}
	return writeAndClose(f, tracks)
}

// writeAndClose записывает плейлист и закрывает w, не теряя ошибку закрытия
func writeAndClose(w io.WriteCloser, tracks []track.Track) error {
	if err := WriteM3U(w, tracks); err != nil {
		_ = w.Close()
		return fmt.Errorf("ошибка записи плейлиста: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("ошибка сохранения плейлиста: %w", err)
	}
	return nil
}

// FileName возвращает имя файла плейлиста для папки с музыкой
func FileName(dir string) string {
	name := filepath.Base(filepath.Clean(dir))
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "library"
	}
	return name + ".m3u"
}
