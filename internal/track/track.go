// Package track описывает трек медиатеки и операции над его метаданными
package track

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // декодеры обложек
	_ "image/png"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoCover возвращается, если у трека нет встроенной обложки
var ErrNoCover = errors.New("у трека нет обложки")

// Заглушки для пустых полей при отображении
const (
	UnknownArtist = "Неизвестный исполнитель"
	UnknownAlbum  = "Неизвестный альбом"
)

// Track хранит метаданные одного трека.
// После извлечения трек не изменяется.
type Track struct {
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
	FilePath string

	cover     []byte
	coverMIME string
}

// WithCover возвращает копию трека с встроенной обложкой
func (t Track) WithCover(data []byte, mime string) Track {
	if len(data) == 0 {
		t.cover, t.coverMIME = nil, ""
		return t
	}
	t.cover = append([]byte(nil), data...)
	t.coverMIME = mime
	return t
}

// HasCover сообщает, есть ли у трека обложка
func (t Track) HasCover() bool {
	return len(t.cover) > 0
}

// CoverData возвращает сырые байты обложки и ее MIME-тип
func (t Track) CoverData() ([]byte, string) {
	return t.cover, t.coverMIME
}

// Cover декодирует обложку по запросу
func (t Track) Cover() (image.Image, error) {
	if !t.HasCover() {
		return nil, ErrNoCover
	}
	img, _, err := image.Decode(bytes.NewReader(t.cover))
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования обложки %s: %w", t.FilePath, err)
	}
	return img, nil
}

// Seconds возвращает длительность в секундах
func (t Track) Seconds() float64 {
	return t.Duration.Seconds()
}

// DisplayTitle возвращает название или имя файла без расширения
func (t Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	base := filepath.Base(t.FilePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DisplayArtist возвращает исполнителя или заглушку
func (t Track) DisplayArtist() string {
	if t.Artist != "" {
		return t.Artist
	}
	return UnknownArtist
}

// DisplayAlbum возвращает альбом или заглушку
func (t Track) DisplayAlbum() string {
	if t.Album != "" {
		return t.Album
	}
	return UnknownAlbum
}

// Matches проверяет, содержит ли название, исполнитель или альбом искомую строку.
// Сравнение без учета регистра, пустая строка подходит любому треку.
func (t Track) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{t.Title, t.Artist, t.Album} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
