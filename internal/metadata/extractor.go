// Package metadata предоставляет функционал для извлечения метаданных из аудио файлов
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"github.com/gopxl/beep/mp3"

	"github.com/hazadus/go-tunes/internal/track"
)

// ErrParse возвращается, когда теги файла повреждены и файл не может быть прочитан
var ErrParse = errors.New("ошибка чтения тегов")

// TrackMetadata хранит текстовые теги трека
type TrackMetadata struct {
	Artist string
	Title  string
	Album  string
}

// Extractor извлекает метаданные из аудио файлов
type Extractor struct {
	logger *log.Logger
}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor(logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{logger: logger}
}

// Extract последовательно обрабатывает файлы. Файлы с поврежденными тегами
// пропускаются, порядок остальных сохраняется. При отмене контекста
// возвращает уже обработанные треки и ошибку контекста.
func (e *Extractor) Extract(ctx context.Context, paths []string) ([]track.Track, error) {
	tracks := make([]track.Track, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return tracks, err
		}

		t, err := e.ExtractFile(path)
		if err != nil {
			e.logger.Printf("Пропускаем файл %s: %v", path, err)
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// ExtractFile читает теги, обложку и длительность одного файла
func (e *Extractor) ExtractFile(path string) (track.Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return track.Track{}, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	meta, container, err := e.ExtractFromReader(file, path)
	if err != nil {
		return track.Track{}, err
	}

	t := track.Track{
		Title:    meta.Title,
		Artist:   meta.Artist,
		Album:    meta.Album,
		FilePath: path,
	}

	if data, mime, ok := readCover(path, container); ok {
		t = t.WithCover(data, mime)
	}

	duration, err := e.GetDuration(path)
	if err != nil {
		e.logger.Printf("Не удалось определить длительность %s: %v", path, err)
	}
	t.Duration = duration

	return t, nil
}

// ExtractFromReader извлекает текстовые теги из io.ReadSeeker.
// Файл без тегов не считается ошибкой: название берется из имени файла.
func (e *Extractor) ExtractFromReader(reader io.ReadSeeker, source string) (TrackMetadata, tag.Metadata, error) {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return TrackMetadata{}, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	metadata, err := tag.ReadFrom(reader)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return getDefaultMetadata(source), nil, nil
	}
	if err != nil {
		return TrackMetadata{}, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	result := TrackMetadata{
		Artist: strings.TrimSpace(metadata.Artist()),
		Title:  strings.TrimSpace(metadata.Title()),
		Album:  strings.TrimSpace(metadata.Album()),
	}
	if result.Title == "" {
		fallback := getDefaultMetadata(source)
		result.Title = fallback.Title
		if result.Artist == "" {
			result.Artist = fallback.Artist
		}
	}
	return result, metadata, nil
}

// GetDuration получает длительность MP3 файла
func (e *Extractor) GetDuration(filePath string) (time.Duration, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия файла: %w", err)
	}

	streamer, format, err := mp3.Decode(file)
	if err != nil {
		file.Close()
		return 0, fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// readCover ищет обложку: сначала APIC "front cover", затем любой APIC,
// затем картинку, которую нашел разборщик контейнера
func readCover(path string, container tag.Metadata) ([]byte, string, bool) {
	if data, mime, ok := readAttachedPicture(path); ok {
		return data, mime, true
	}
	if container == nil {
		return nil, "", false
	}
	if pic := container.Picture(); pic != nil && len(pic.Data) > 0 {
		return pic.Data, pic.MIMEType, true
	}
	return nil, "", false
}

func readAttachedPicture(path string) ([]byte, string, bool) {
	id3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, "", false
	}
	defer id3.Close()

	var fallback *id3v2.PictureFrame
	for _, frame := range id3.GetFrames(id3.CommonID("Attached picture")) {
		pic, ok := frame.(id3v2.PictureFrame)
		if !ok || len(pic.Picture) == 0 {
			continue
		}
		if pic.PictureType == id3v2.PTFrontCover {
			return pic.Picture, pic.MimeType, true
		}
		if fallback == nil {
			fallback = &pic
		}
	}
	if fallback != nil {
		return fallback.Picture, fallback.MimeType, true
	}
	return nil, "", false
}

// getDefaultMetadata возвращает метаданные по умолчанию на основе имени файла
func getDefaultMetadata(source string) TrackMetadata {
	fileName := filepath.Base(source)
	nameWithoutExt := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	// Пытаемся разобрать имя файла в формате "Artist - Title"
	parts := strings.Split(nameWithoutExt, " - ")
	if len(parts) >= 2 {
		return TrackMetadata{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(strings.Join(parts[1:], " - ")),
		}
	}

	return TrackMetadata{Title: nameWithoutExt}
}
