// Package playback содержит контроллер воспроизведения: состояние сессии,
// очередь и единственный медиаресурс, которым он управляет
package playback

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hazadus/go-tunes/internal/queue"
	"github.com/hazadus/go-tunes/internal/track"
)

// DoublePressWindow - окно, в котором повторное "previous" переключает на предыдущий трек
const DoublePressWindow = 2 * time.Second

var (
	// ErrNoTracks возвращается транспортными командами при пустой очереди
	ErrNoTracks = errors.New("папка не выбрана или в ней нет треков")
	// ErrNotLoaded возвращается при перемотке, когда трек не загружен
	ErrNotLoaded = errors.New("трек не загружен")
	// ErrUnknownCommand возвращается для неизвестного типа команды
	ErrUnknownCommand = errors.New("неизвестная команда")
)

// Media - внешний медиаресурс (аудиодвижок)
type Media interface {
	Load(t track.Track) error
	Play()
	Pause()
	Stop()
	Seek(d time.Duration) error
	Position() time.Duration
	Duration() time.Duration
	Paused() bool
}

// Controller управляет очередью и медиаресурсом, переводя команды в переходы состояний
type Controller struct {
	queue  *queue.Queue
	media  Media
	logger *log.Logger
	now    func() time.Time

	state        State
	repeat       RepeatMode
	elapsed      time.Duration
	lastPrevious time.Time

	onTrackChange []func(track.Track)
}

// Option настраивает контроллер
type Option func(*Controller)

// WithClock подменяет источник времени (для проверки двойного нажатия)
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithQueue задает очередь вместо созданной по умолчанию
func WithQueue(q *queue.Queue) Option {
	return func(c *Controller) {
		c.queue = q
	}
}

// WithRepeat задает начальный режим повтора
func WithRepeat(mode RepeatMode) Option {
	return func(c *Controller) {
		c.repeat = mode
	}
}

// WithLogger задает логгер
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController создает контроллер с пустой очередью
func NewController(media Media, opts ...Option) *Controller {
	c := &Controller{
		media:  media,
		logger: log.Default(),
		now:    time.Now,
		state:  StateEmpty,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.queue == nil {
		c.queue = queue.New()
	}
	if !c.queue.IsEmpty() {
		c.state = StateStopped
	}
	return c
}

// OnTrackChange регистрирует обработчик, вызываемый после загрузки каждого нового трека
func (c *Controller) OnTrackChange(fn func(track.Track)) {
	c.onTrackChange = append(c.onTrackChange, fn)
}

// Queue возвращает очередь для чтения представлением
func (c *Controller) Queue() *queue.Queue {
	return c.queue
}

// State возвращает текущее состояние
func (c *Controller) State() State {
	return c.state
}

// Repeat возвращает текущий режим повтора
func (c *Controller) Repeat() RepeatMode {
	return c.repeat
}

// Elapsed возвращает позицию воспроизведения на момент последнего опроса
func (c *Controller) Elapsed() time.Duration {
	return c.elapsed
}

// Load заменяет очередь новым списком треков и останавливает воспроизведение
func (c *Controller) Load(tracks []track.Track) {
	if c.state.Loaded() {
		c.media.Stop()
	}
	c.queue.Load(tracks)
	c.elapsed = 0
	c.lastPrevious = time.Time{}
	if c.queue.IsEmpty() {
		c.state = StateEmpty
		return
	}
	c.state = StateStopped
}

// Dispatch применяет команду к текущему состоянию
func (c *Controller) Dispatch(cmd Command) error {
	switch cmd.Kind {
	case CmdCycleRepeat:
		c.repeat = c.repeat.Next()
		return nil
	case CmdTick:
		c.tick()
		return nil
	}

	if c.queue.IsEmpty() {
		c.state = StateEmpty
		if cmd.Kind == CmdEnded {
			return nil
		}
		return ErrNoTracks
	}

	switch cmd.Kind {
	case CmdPlayPause:
		return c.playPause()
	case CmdNext:
		return c.next()
	case CmdPrevious:
		return c.previous()
	case CmdEnded:
		return c.ended()
	case CmdSeek:
		return c.seek(cmd.Position)
	case CmdShuffle:
		c.queue.Shuffle()
		return nil
	case CmdPlayAt:
		if err := c.queue.SetCursor(cmd.Index); err != nil {
			return err
		}
		return c.loadAndPlay()
	case CmdRemoveAt:
		return c.removeAt(cmd.Index)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownCommand, cmd.Kind)
	}
}

func (c *Controller) playPause() error {
	switch c.state {
	case StatePlaying:
		c.media.Pause()
		c.state = StatePaused
	case StatePaused:
		c.media.Play()
		c.state = StatePlaying
	default:
		return c.loadAndPlay()
	}
	return nil
}

// next на последнем треке без повтора останавливает воспроизведение
func (c *Controller) next() error {
	if c.repeat == RepeatOff && c.queue.IsLast() {
		c.stop()
		return nil
	}
	c.queue.Next(true)
	return c.loadAndPlay()
}

func (c *Controller) previous() error {
	now := c.now()
	double := !c.lastPrevious.IsZero() && now.Sub(c.lastPrevious) < DoublePressWindow
	c.lastPrevious = now

	if double {
		c.queue.Prev()
		return c.loadAndPlay()
	}
	if !c.state.Loaded() {
		return c.loadAndPlay()
	}
	return c.restart()
}

func (c *Controller) ended() error {
	if c.state != StatePlaying {
		return nil
	}

	switch c.repeat {
	case RepeatOne:
		return c.restart()
	case RepeatLoop:
		c.queue.Next(true)
	default:
		if c.queue.IsLast() {
			c.stop()
			return nil
		}
		c.queue.Next(false)
	}
	return c.loadAndPlay()
}

func (c *Controller) seek(position float64) error {
	if !c.state.Loaded() {
		return ErrNotLoaded
	}
	position = min(max(position, 0), 1)

	target := time.Duration(position * float64(c.duration()))
	if err := c.media.Seek(target); err != nil {
		return fmt.Errorf("ошибка перемотки: %w", err)
	}
	c.elapsed = target
	return nil
}

func (c *Controller) removeAt(index int) error {
	removingLoaded := c.state.Loaded() && index == c.queue.Cursor()

	if err := c.queue.RemoveAt(index); err != nil {
		return err
	}

	switch {
	case c.queue.IsEmpty():
		if c.state.Loaded() {
			c.media.Stop()
		}
		c.state = StateEmpty
		c.elapsed = 0
	case removingLoaded:
		c.stop()
	}
	return nil
}

// restart перематывает загруженный трек в начало и продолжает воспроизведение
func (c *Controller) restart() error {
	if err := c.media.Seek(0); err != nil {
		return fmt.Errorf("ошибка перемотки: %w", err)
	}
	c.elapsed = 0
	c.media.Play()
	c.state = StatePlaying
	return nil
}

// loadAndPlay загружает трек под курсором и запускает его
func (c *Controller) loadAndPlay() error {
	t, ok := c.queue.Current()
	if !ok {
		c.state = StateEmpty
		return ErrNoTracks
	}

	if err := c.media.Load(t); err != nil {
		c.media.Stop()
		c.state = StateStopped
		c.elapsed = 0
		c.logger.Printf("Ошибка загрузки трека %s: %v", t.FilePath, err)
		return fmt.Errorf("ошибка загрузки трека %s: %w", t.FilePath, err)
	}
	c.media.Play()
	c.state = StatePlaying
	c.elapsed = 0

	for _, fn := range c.onTrackChange {
		fn(t)
	}
	return nil
}

func (c *Controller) stop() {
	c.media.Stop()
	c.state = StateStopped
	c.elapsed = 0
}

// tick обновляет позицию воспроизведения; на паузе медиаресурс не опрашивается
func (c *Controller) tick() bool {
	if c.state != StatePlaying || c.media.Paused() {
		return false
	}
	c.elapsed = c.media.Position()
	return true
}

func (c *Controller) duration() time.Duration {
	if d := c.media.Duration(); d > 0 {
		return d
	}
	if t, ok := c.queue.Current(); ok {
		return t.Duration
	}
	return 0
}
