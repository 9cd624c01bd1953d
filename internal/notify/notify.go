// Package notify показывает уведомления рабочего стола о смене трека
package notify

import (
	"fmt"
	"log"

	"github.com/gen2brain/beeep"

	"github.com/hazadus/go-tunes/internal/track"
)

// AppName - заголовок приложения в уведомлениях
const AppName = "tunes"

// SendFunc отправляет уведомление
type SendFunc func(title, message string, icon any) error

// Notifier отправляет уведомление при начале нового трека
type Notifier struct {
	enabled bool
	send    SendFunc
	logger  *log.Logger
}

// New создает уведомитель; при enabled == false уведомления не отправляются
func New(enabled bool, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	beeep.AppName = AppName
	return &Notifier{enabled: enabled, send: beeep.Notify, logger: logger}
}

// WithSender подменяет способ отправки
func (n *Notifier) WithSender(send SendFunc) *Notifier {
	n.send = send
	return n
}

// Enabled сообщает, включены ли уведомления
func (n *Notifier) Enabled() bool {
	return n.enabled
}

// Message формирует текст уведомления для трека
func Message(t track.Track) (string, string) {
	return t.DisplayTitle(), fmt.Sprintf("%s · %s", t.DisplayArtist(), t.DisplayAlbum())
}

// TrackChanged уведомляет о начале трека. Ошибки только логируются.
func (n *Notifier) TrackChanged(t track.Track) {
	if !n.enabled {
		return
	}
	title, message := Message(t)
	if err := n.send(title, message, ""); err != nil {
		n.logger.Printf("Не удалось отправить уведомление: %v", err)
	}
}
