// Package playbacktest содержит медиаресурс-заглушку для тестов без звуковой карты
package playbacktest

import (
	"time"

	"github.com/hazadus/go-tunes/internal/track"
)

// Media записывает вызовы и имитирует воспроизведение
type Media struct {
	Loaded   []string
	Source   string
	Playing  bool
	IsPaused bool
	Pos      time.Duration
	Length   time.Duration
	LoadErr  error
	SeekErr  error

	Calls         []string
	PositionCalls int
}

// New создает заглушку с длительностью трека по умолчанию
func New() *Media {
	return &Media{Length: 3 * time.Minute}
}

// Load запоминает источник
func (m *Media) Load(t track.Track) error {
	m.Calls = append(m.Calls, "load")
	if m.LoadErr != nil {
		return m.LoadErr
	}
	m.Loaded = append(m.Loaded, t.FilePath)
	m.Source = t.FilePath
	m.Pos = 0
	m.Playing = false
	m.IsPaused = false
	if t.Duration > 0 {
		m.Length = t.Duration
	}
	return nil
}

// Play запускает или возобновляет воспроизведение
func (m *Media) Play() {
	m.Calls = append(m.Calls, "play")
	m.Playing = true
	m.IsPaused = false
}

// Pause ставит на паузу
func (m *Media) Pause() {
	m.Calls = append(m.Calls, "pause")
	m.IsPaused = true
}

// Stop выгружает источник
func (m *Media) Stop() {
	m.Calls = append(m.Calls, "stop")
	m.Source = ""
	m.Playing = false
	m.IsPaused = false
	m.Pos = 0
}

// Seek меняет позицию
func (m *Media) Seek(d time.Duration) error {
	m.Calls = append(m.Calls, "seek")
	if m.SeekErr != nil {
		return m.SeekErr
	}
	m.Pos = d
	return nil
}

// Position возвращает позицию
func (m *Media) Position() time.Duration {
	m.PositionCalls++
	return m.Pos
}

// Duration возвращает длительность
func (m *Media) Duration() time.Duration {
	if m.Source == "" {
		return 0
	}
	return m.Length
}

// Paused сообщает о паузе
func (m *Media) Paused() bool {
	return m.IsPaused
}

// Reset очищает журнал вызовов
func (m *Media) Reset() {
	m.Calls = nil
	m.PositionCalls = 0
}
