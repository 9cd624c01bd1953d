// Package player содержит компоненты для воспроизведения локальных mp3-файлов
package player

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/hazadus/go-tunes/internal/track"
)

// SampleRate - частота динамиков; потоки с другой частотой передискретизируются
const SampleRate = beep.SampleRate(44100)

// ErrNoTrack возвращается при перемотке без загруженного трека
var ErrNoTrack = errors.New("трек не загружен")

// Player управляет воспроизведением одного трека за раз
type Player struct {
	mutex         sync.Mutex
	isInitialized bool
	closed        bool

	// Канал конца трека; передает поколение доигранного потока
	ended chan uint64

	// Компоненты для воспроизведения
	source   string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl

	// generation отличает текущий поток от замененных при новой загрузке
	generation uint64
	queued     bool
}

// NewPlayer создает новый экземпляр плеера
func NewPlayer() *Player {
	return &Player{
		ended: make(chan uint64, 1),
	}
}

// Ended возвращает канал, в который приходит поколение потока при его естественном конце
func (p *Player) Ended() <-chan uint64 {
	return p.ended
}

// Generation возвращает поколение текущего потока
func (p *Player) Generation() uint64 {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.generation
}

// Load открывает и декодирует трек, воспроизведение не начинается
func (p *Player) Load(t track.Track) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// Останавливаем текущее воспроизведение, если есть
	p.stopInternal()

	file, err := os.Open(t.FilePath)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла: %w", err)
	}

	streamer, format, err := mp3.Decode(file)
	if err != nil {
		file.Close()
		return fmt.Errorf("ошибка декодирования MP3: %w", err)
	}

	// Инициализируем speaker (только один раз)
	if !p.isInitialized {
		if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
		p.isInitialized = true
	}

	p.source = t.FilePath
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{
		Streamer: beep.Resample(4, format.SampleRate, SampleRate, streamer),
		Paused:   true,
	}
	p.generation++
	p.drainEnded()

	return nil
}

// Play запускает или возобновляет воспроизведение.
// Если поток уже доигран, он снова ставится в очередь динамиков.
func (p *Player) Play() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl == nil {
		return
	}

	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()

	if !p.queued {
		p.queued = true
		gen := p.generation
		speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
			// Колбэк вызывается под блокировкой динамиков
			go p.finish(gen)
		})))
	}
}

// Pause приостанавливает воспроизведение
func (p *Player) Pause() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
	}
}

// Stop останавливает воспроизведение и выгружает трек
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.stopInternal()
}

// Seek перематывает трек на позицию d
func (p *Player) Seek(d time.Duration) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.streamer == nil {
		return ErrNoTrack
	}

	speaker.Lock()
	defer speaker.Unlock()

	samples := min(max(p.format.SampleRate.N(d), 0), max(p.streamer.Len()-1, 0))
	if err := p.streamer.Seek(samples); err != nil {
		return fmt.Errorf("ошибка перемотки: %w", err)
	}
	return nil
}

// Position возвращает текущую позицию воспроизведения
func (p *Player) Position() time.Duration {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.streamer == nil {
		return 0
	}

	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()

	return p.format.SampleRate.D(pos)
}

// Duration возвращает длительность загруженного трека
func (p *Player) Duration() time.Duration {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Paused сообщает, стоит ли трек на паузе
func (p *Player) Paused() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.ctrl == nil {
		return false
	}

	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

// IsPlaying возвращает true, если трек воспроизводится
func (p *Player) IsPlaying() bool {
	return p.Source() != "" && !p.Paused()
}

// Source возвращает путь к загруженному файлу
func (p *Player) Source() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.source
}

// Close закрывает плеер и освобождает ресурсы
func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return nil
	}
	p.stopInternal()
	p.closed = true
	close(p.ended)
	return nil
}

// finish отправляет сигнал конца трека, если поток не был заменен
func (p *Player) finish(gen uint64) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed || gen != p.generation {
		return
	}
	p.queued = false

	select {
	case p.ended <- gen:
	default:
	}
}

// stopInternal внутренний метод остановки (должен вызываться под мьютексом)
func (p *Player) stopInternal() {
	if p.ctrl != nil {
		speaker.Clear()
		p.ctrl = nil
	}

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}

	p.source = ""
	p.queued = false
	p.generation++
	p.drainEnded()
}

// drainEnded убирает сигнал, оставшийся от предыдущего потока
func (p *Player) drainEnded() {
	if p.closed {
		return
	}
	select {
	case <-p.ended:
	default:
	}
}
