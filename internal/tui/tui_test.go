package tui

import (
	"testing"
	"time"

	"github.com/hazadus/go-tunes/internal/notify"
	"github.com/hazadus/go-tunes/internal/playback"
	"github.com/hazadus/go-tunes/internal/playback/playbacktest"
	"github.com/hazadus/go-tunes/internal/track"
	"github.com/hazadus/go-tunes/internal/tui/app"
)

func TestNewAppSendsNotifications(t *testing.T) {
	controller := playback.NewController(playbacktest.New())
	controller.Load([]track.Track{{Title: "Song", Artist: "Band", FilePath: "/music/song.mp3"}})

	sent := make(chan string, 1)
	notifier := notify.New(true, nil).WithSender(func(title, _ string, _ any) error {
		sent <- title
		return nil
	})

	NewApp(nil, app.Options{Controller: controller}, notifier)

	if err := controller.Dispatch(playback.Do(playback.CmdPlayPause)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	select {
	case title := <-sent:
		if title != "Song" {
			t.Errorf("title = %q, want %q", title, "Song")
		}
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}
}

func TestNewAppDisabledNotifications(t *testing.T) {
	controller := playback.NewController(playbacktest.New())
	controller.Load([]track.Track{{Title: "Song", FilePath: "/music/song.mp3"}})

	sent := make(chan string, 1)
	notifier := notify.New(false, nil).WithSender(func(title, _ string, _ any) error {
		sent <- title
		return nil
	})

	NewApp(nil, app.Options{Controller: controller}, notifier)
	NewApp(nil, app.Options{Controller: controller}, nil)

	if err := controller.Dispatch(playback.Do(playback.CmdPlayPause)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	select {
	case title := <-sent:
		t.Errorf("unexpected notification %q", title)
	case <-time.After(50 * time.Millisecond):
	}
}
