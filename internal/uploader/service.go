// Package uploader публикует плейлист медиатеки (и при желании сами треки) в хранилище
package uploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/hazadus/go-tunes/internal/playlist"
	"github.com/hazadus/go-tunes/internal/s3"
	"github.com/hazadus/go-tunes/internal/track"
)

// AudioContentType - MIME тип загружаемых треков
const AudioContentType = "audio/mpeg"

// ObjectStore сохраняет объект под ключом и возвращает его URL
type ObjectStore interface {
	UploadFile(ctx context.Context, reader io.Reader, key, contentType string) (string, error)
}

// ProgressFunc получает имя загружаемого объекта, число отправленных байт и размер
type ProgressFunc func(name string, sent, total int64)

// Service управляет процессом публикации
type Service struct {
	store ObjectStore
}

// NewService создает новый сервис загрузки
func NewService(store ObjectStore) *Service {
	return &Service{store: store}
}

// Options - параметры публикации
type Options struct {
	// WithAudio загружает mp3-файлы, и плейлист ссылается на их URL
	WithAudio bool
	Progress  ProgressFunc
}

// Result содержит результат публикации
type Result struct {
	PlaylistKey string
	PlaylistURL string
	Tracks      []track.Track
	Bytes       int64
}

// Publish загружает плейлист папки dir. Ключи объектов начинаются с имени папки.
func (s *Service) Publish(ctx context.Context, dir string, tracks []track.Track, opts Options) (*Result, error) {
	prefix := filepath.Base(filepath.Clean(dir))
	result := &Result{Tracks: tracks}

	if opts.WithAudio {
		uploaded := make([]track.Track, 0, len(tracks))
		for _, t := range tracks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			url, size, err := s.uploadTrack(ctx, prefix, t, opts.Progress)
			if err != nil {
				return nil, err
			}
			t.FilePath = url
			uploaded = append(uploaded, t)
			result.Bytes += size
		}
		result.Tracks = uploaded
	}

	body := []byte(playlist.Render(result.Tracks))
	key := path.Join(prefix, playlist.FileName(dir))

	url, err := s.store.UploadFile(ctx, newProgressReader(bytes.NewReader(body), key, int64(len(body)), opts.Progress), key, s3.PlaylistContentType)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки плейлиста: %w", err)
	}

	result.PlaylistKey = key
	result.PlaylistURL = url
	result.Bytes += int64(len(body))
	return result, nil
}

func (s *Service) uploadTrack(ctx context.Context, prefix string, t track.Track, progress ProgressFunc) (string, int64, error) {
	file, err := os.Open(t.FilePath)
	if err != nil {
		return "", 0, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	key := path.Join(prefix, filepath.Base(t.FilePath))
	url, err := s.store.UploadFile(ctx, newProgressReader(file, key, info.Size(), progress), key, AudioContentType)
	if err != nil {
		return "", 0, fmt.Errorf("ошибка загрузки %s: %w", t.FilePath, err)
	}
	return url, info.Size(), nil
}

// ProgressReader структура для отслеживания прогресса чтения
type ProgressReader struct {
	io.Reader
	Name       string
	Size       int64
	OnProgress ProgressFunc
	bytesRead  int64
}

func newProgressReader(r io.Reader, name string, size int64, progress ProgressFunc) io.Reader {
	if progress == nil {
		return r
	}
	return &ProgressReader{Reader: r, Name: name, Size: size, OnProgress: progress}
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if n > 0 && pr.OnProgress != nil {
		pr.OnProgress(pr.Name, pr.bytesRead, pr.Size)
	}
	return n, err
}

// FormatFileSize форматирует размер файла в читаемом виде
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
