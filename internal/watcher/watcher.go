// Package watcher следит за папкой медиатеки и сообщает о появлении или удалении треков
package watcher

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hazadus/go-tunes/internal/library"
)

// DefaultDebounce - пауза, после которой серия событий считается одним изменением
const DefaultDebounce = time.Second

// Watcher сворачивает события файловой системы в сигналы изменения папки
type Watcher struct {
	dir      string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger

	changes chan string
	done    chan struct{}
	once    sync.Once
}

// New начинает слежение за папкой dir
func New(dir string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ошибка создания наблюдателя: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("ошибка слежения за папкой %s: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		fsw:      fsw,
		debounce: debounce,
		logger:   logger,
		changes:  make(chan string, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Dir возвращает папку, за которой идет слежение
func (w *Watcher) Dir() string {
	return w.dir
}

// Changes возвращает канал сигналов об изменении набора треков.
// Канал закрывается после Close.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close останавливает слежение
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

// loop закрывает канал изменений при выходе
func (w *Watcher) loop() {
	defer close(w.changes)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Printf("Ошибка наблюдателя папки %s: %v", w.dir, err)
		case <-fire:
			fire = nil
			select {
			case w.changes <- w.dir:
			default:
			}
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant отбирает события, меняющие набор mp3-файлов
func relevant(event fsnotify.Event) bool {
	if !library.IsAudioFile(event.Name) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
