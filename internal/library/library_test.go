package library

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/hazadus/go-tunes/internal/metadata"
)

func touch(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatalf("Ошибка создания файла %s: %v", path, err)
	}
}

func TestListAudioFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.mp3"), 10)
	touch(t, filepath.Join(dir, "a.MP3"), 10)
	touch(t, filepath.Join(dir, "cover.jpg"), 10)
	touch(t, filepath.Join(dir, "notes.txt"), 10)
	if err := os.Mkdir(filepath.Join(dir, "nested.mp3"), 0755); err != nil {
		t.Fatalf("Ошибка создания папки: %v", err)
	}

	files, err := ListAudioFiles(dir)
	if err != nil {
		t.Fatalf("Ошибка листинга: %v", err)
	}

	want := []string{filepath.Join(dir, "a.MP3"), filepath.Join(dir, "b.mp3")}
	if len(files) != len(want) {
		t.Fatalf("Ожидалось %d файлов, получено %v", len(want), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("Файл %d: ожидался %s, получено %s", i, want[i], files[i])
		}
	}
}

func TestListAudioFilesMissingDir(t *testing.T) {
	_, err := ListAudioFiles("/non/existent/dir")
	if !errors.Is(err, ErrReadDir) {
		t.Errorf("Ожидалась ErrReadDir, получено %v", err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Artist - First.mp3"), 512)
	touch(t, filepath.Join(dir, "Artist - Second.mp3"), 512)

	scanner := NewScanner(metadata.NewExtractor(log.New(io.Discard, "", 0)))
	tracks, err := scanner.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Ошибка сканирования: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("Ожидалось 2 трека, получено %d", len(tracks))
	}
	if tracks[0].Title != "First" || tracks[1].Title != "Second" {
		t.Errorf("Нарушен порядок треков: %s, %s", tracks[0].Title, tracks[1].Title)
	}
	if !filepath.IsAbs(tracks[0].FilePath) {
		t.Errorf("Путь должен быть абсолютным: %s", tracks[0].FilePath)
	}
}

func TestScanEmptyDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "readme.txt"), 10)

	scanner := NewScanner(metadata.NewExtractor(log.New(io.Discard, "", 0)))
	_, err := scanner.Scan(context.Background(), dir)
	if !errors.Is(err, ErrNoTracks) {
		t.Errorf("Ожидалась ErrNoTracks, получено %v", err)
	}
}

func TestIsAudioFile(t *testing.T) {
	tests := map[string]bool{
		"song.mp3":  true,
		"SONG.Mp3":  true,
		"song.flac": false,
		"mp3":       false,
	}
	for name, want := range tests {
		if got := IsAudioFile(name); got != want {
			t.Errorf("IsAudioFile(%q) = %v, ожидалось %v", name, got, want)
		}
	}
}
