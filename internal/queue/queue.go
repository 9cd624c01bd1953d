// Package queue содержит модель очереди воспроизведения с курсором текущего трека
package queue

import (
	"errors"
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/hazadus/go-tunes/internal/track"
)

// ErrIndexOutOfRange возвращается при обращении к несуществующей позиции очереди
var ErrIndexOutOfRange = errors.New("индекс вне диапазона очереди")

// Entry - элемент отфильтрованного представления очереди.
// Index указывает на позицию трека в исходной очереди.
type Entry struct {
	Index int
	Track track.Track
}

// item хранит трек вместе с порядковым номером, уникальным в пределах сессии.
// По номеру курсор находит тот же трек после перемешивания.
type item struct {
	serial uint64
	track  track.Track
}

// Queue - упорядоченный список треков и курсор на текущий из них
type Queue struct {
	items  []item
	cursor int
	serial uint64
	rnd    *rand.Rand
}

// Option настраивает очередь
type Option func(*Queue)

// WithRand задает источник случайности для перемешивания
func WithRand(r *rand.Rand) Option {
	return func(q *Queue) {
		q.rnd = r
	}
}

// New создает пустую очередь
func New(opts ...Option) *Queue {
	q := &Queue{}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Load заменяет содержимое очереди и сбрасывает курсор на начало
func (q *Queue) Load(tracks []track.Track) {
	q.items = make([]item, len(tracks))
	for i, t := range tracks {
		q.serial++
		q.items[i] = item{serial: q.serial, track: t}
	}
	q.cursor = 0
}

// Len возвращает количество треков
func (q *Queue) Len() int {
	return len(q.items)
}

// IsEmpty сообщает, пуста ли очередь
func (q *Queue) IsEmpty() bool {
	return len(q.items) == 0
}

// Cursor возвращает позицию текущего трека
func (q *Queue) Cursor() int {
	return q.cursor
}

// Current возвращает текущий трек
func (q *Queue) Current() (track.Track, bool) {
	return q.At(q.cursor)
}

// At возвращает трек по индексу
func (q *Queue) At(index int) (track.Track, bool) {
	if index < 0 || index >= len(q.items) {
		return track.Track{}, false
	}
	return q.items[index].track, true
}

// Tracks возвращает копию списка треков в порядке очереди
func (q *Queue) Tracks() []track.Track {
	return lo.Map(q.items, func(it item, _ int) track.Track {
		return it.track
	})
}

// SetCursor перемещает курсор на указанную позицию
func (q *Queue) SetCursor(index int) error {
	if index < 0 || index >= len(q.items) {
		return ErrIndexOutOfRange
	}
	q.cursor = index
	return nil
}

// IsLast сообщает, стоит ли курсор на последнем треке
func (q *Queue) IsLast() bool {
	return len(q.items) > 0 && q.cursor == len(q.items)-1
}

// PeekNext возвращает индекс следующего трека, не двигая курсор.
// Без wrap на последнем треке возвращает false.
func (q *Queue) PeekNext(wrap bool) (int, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	if q.IsLast() && !wrap {
		return 0, false
	}
	return (q.cursor + 1) % len(q.items), true
}

// Next передвигает курсор вперед
func (q *Queue) Next(wrap bool) bool {
	next, ok := q.PeekNext(wrap)
	if !ok {
		return false
	}
	q.cursor = next
	return true
}

// Prev передвигает курсор назад с переходом в конец очереди
func (q *Queue) Prev() bool {
	if len(q.items) == 0 {
		return false
	}
	q.cursor = (q.cursor - 1 + len(q.items)) % len(q.items)
	return true
}

// Shuffle перемешивает очередь (Фишер-Йетс), курсор остается на том же треке
func (q *Queue) Shuffle() {
	if len(q.items) < 2 {
		return
	}
	current := q.items[q.cursor].serial

	shuffle := rand.Shuffle
	if q.rnd != nil {
		shuffle = q.rnd.Shuffle
	}
	shuffle(len(q.items), func(i, j int) {
		q.items[i], q.items[j] = q.items[j], q.items[i]
	})

	_, idx, _ := lo.FindIndexOf(q.items, func(it item) bool {
		return it.serial == current
	})
	q.cursor = idx
}

// RemoveAt удаляет трек по индексу, последующие треки сдвигаются на одну позицию
func (q *Queue) RemoveAt(index int) error {
	if index < 0 || index >= len(q.items) {
		return ErrIndexOutOfRange
	}
	q.items = append(q.items[:index], q.items[index+1:]...)

	switch {
	case len(q.items) == 0:
		q.cursor = 0
	case index < q.cursor:
		q.cursor--
	case q.cursor >= len(q.items):
		q.cursor = len(q.items) - 1
	}
	return nil
}

// Filter возвращает треки, подходящие под условие, не изменяя очередь
func (q *Queue) Filter(pred func(track.Track) bool) []Entry {
	entries := make([]Entry, 0, len(q.items))
	for i, it := range q.items {
		if pred(it.track) {
			entries = append(entries, Entry{Index: i, Track: it.track})
		}
	}
	return entries
}

// Matches возвращает условие поиска по названию, исполнителю и альбому
func Matches(term string) func(track.Track) bool {
	return func(t track.Track) bool {
		return t.Matches(term)
	}
}

// Search возвращает треки, в названии, исполнителе или альбоме которых есть term
func (q *Queue) Search(term string) []Entry {
	return q.Filter(Matches(term))
}
