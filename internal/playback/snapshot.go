package playback

import (
	"time"

	"github.com/hazadus/go-tunes/internal/track"
)

// UpNextKind описывает, что показывать в блоке "далее"
type UpNextKind int

// Варианты блока "далее"
const (
	// UpNextNone - блок не показывается (повтор одного трека или ничего не играет)
	UpNextNone UpNextKind = iota
	// UpNextTrack - показывается следующий трек
	UpNextTrack
	// UpNextEnd - показывается заглушка конца очереди
	UpNextEnd
)

// Snapshot - данные для отрисовки панели воспроизведения
type Snapshot struct {
	State      State
	Repeat     RepeatMode
	NowPlaying track.Track
	HasTrack   bool
	UpNext     track.Track
	UpNextKind UpNextKind
	Elapsed    time.Duration
	Duration   time.Duration
	Cursor     int
	Length     int
}

// Progress возвращает долю проигранного (0.0-1.0)
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(max(float64(s.Elapsed)/float64(s.Duration), 0), 1)
}

// Remaining возвращает оставшееся время трека
func (s Snapshot) Remaining() time.Duration {
	return max(s.Duration-s.Elapsed, 0)
}

// Snapshot собирает состояние сессии для представления.
// Без загруженного трека панель показывает заглушки и нулевой прогресс.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		State:  c.state,
		Repeat: c.repeat,
		Cursor: c.queue.Cursor(),
		Length: c.queue.Len(),
	}
	if !c.state.Loaded() {
		return s
	}

	s.NowPlaying, s.HasTrack = c.queue.Current()
	s.Elapsed = c.elapsed
	s.Duration = c.duration()

	switch c.repeat {
	case RepeatOne:
		s.UpNextKind = UpNextNone
	case RepeatLoop:
		if idx, ok := c.queue.PeekNext(true); ok {
			s.UpNext, _ = c.queue.At(idx)
			s.UpNextKind = UpNextTrack
		}
	default:
		if idx, ok := c.queue.PeekNext(false); ok {
			s.UpNext, _ = c.queue.At(idx)
			s.UpNextKind = UpNextTrack
		} else {
			s.UpNextKind = UpNextEnd
		}
	}
	return s
}
