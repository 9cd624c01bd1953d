// Package library сканирует папку с музыкой и собирает из нее очередь треков
package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/hazadus/go-tunes/internal/metadata"
	"github.com/hazadus/go-tunes/internal/track"
)

// AudioExtension - расширение файлов, которые считаются треками
const AudioExtension = ".mp3"

var (
	// ErrReadDir возвращается, если папку не удалось прочитать
	ErrReadDir = errors.New("не удалось прочитать папку")
	// ErrNoTracks возвращается, если в папке не нашлось ни одного трека
	ErrNoTracks = errors.New("в выбранной папке нет треков")
)

// IsAudioFile сообщает, является ли файл кандидатом в треки
func IsAudioFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), AudioExtension)
}

// ListAudioFiles возвращает пути к mp3-файлам папки в порядке листинга.
// Вложенные папки не просматриваются.
func ListAudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrReadDir, dir, err)
	}

	files := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return !e.IsDir() && IsAudioFile(e.Name())
	})
	return lo.Map(files, func(e os.DirEntry, _ int) string {
		return filepath.Join(dir, e.Name())
	}), nil
}

// Scanner объединяет листинг папки и извлечение метаданных
type Scanner struct {
	extractor *metadata.Extractor
}

// NewScanner создает сканер
func NewScanner(extractor *metadata.Extractor) *Scanner {
	return &Scanner{extractor: extractor}
}

// Scan читает папку и возвращает треки. Если ни один файл не удалось
// прочитать, возвращает ErrNoTracks.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]track.Track, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrReadDir, dir, err)
	}

	paths, err := ListAudioFiles(abs)
	if err != nil {
		return nil, err
	}

	tracks, err := s.extractor.Extract(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}
	return tracks, nil
}
