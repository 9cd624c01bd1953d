package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-tunes/internal/config"
	"github.com/hazadus/go-tunes/internal/library"
	"github.com/hazadus/go-tunes/internal/playback"
	"github.com/hazadus/go-tunes/internal/playback/playbacktest"
	"github.com/hazadus/go-tunes/internal/playlist"
)

// MockObjectStore мок хранилища для команды export
type MockObjectStore struct {
	keys []string
}

func (m *MockObjectStore) UploadFile(_ context.Context, reader io.Reader, key, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	m.keys = append(m.keys, key)
	return "https://s3.example.com/bucket/" + key, nil
}

// createTestApplication создает тестовое приложение с временным профилем
func createTestApplication(t *testing.T) *Application {
	t.Helper()

	testConfig := config.Default()
	testConfig.ProfilePath = filepath.Join(t.TempDir(), "profile")
	testConfig.LogFile = filepath.Join(t.TempDir(), "tunes.log")

	return &Application{
		Config: testConfig,
		Logger: log.New(io.Discard, "", 0),
	}
}

// createMusicDir создает папку с двумя тегированными файлами и одним лишним файлом
func createMusicDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Favourites")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	for _, f := range []struct{ name, title, artist string }{
		{"a.mp3", "First Song", "Test Artist"},
		{"b.MP3", "Second Song", "Other Artist"},
	} {
		tag := id3v2.NewEmptyTag()
		tag.SetTitle(f.title)
		tag.SetArtist(f.artist)
		tag.SetAlbum("Test Album")

		file, err := os.Create(filepath.Join(dir, f.name))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := tag.WriteTo(file); err != nil {
			t.Fatal(err)
		}
		if _, err := file.Write(make([]byte, 256)); err != nil {
			t.Fatal(err)
		}
		file.Close()
	}

	if err := os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// execute запускает команду с аргументами и возвращает ее вывод
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// TestCmdList проверяет, что команда `list` выводит треки папки
func TestCmdList(t *testing.T) {
	app := createTestApplication(t)
	dir := createMusicDir(t)

	output, err := execute(t, app.createListCommand(context.Background()), dir)
	if err != nil {
		t.Fatalf("Ошибка выполнения команды list: %v", err)
	}

	for _, expected := range []string{"найдено треков 2", "First Song", "Test Artist", "Second Song", "Test Album"} {
		if !strings.Contains(output, expected) {
			t.Errorf("Вывод команды list не содержит ожидаемую строку '%s': %s", expected, output)
		}
	}
	if strings.Contains(output, "cover") {
		t.Errorf("Вывод команды list содержит файл, не являющийся треком: %s", output)
	}
}

// TestCmdListUsesProfile проверяет, что без аргумента берется папка из профиля
func TestCmdListUsesProfile(t *testing.T) {
	app := createTestApplication(t)
	dir := createMusicDir(t)
	if err := app.profileStore().Save(dir); err != nil {
		t.Fatal(err)
	}

	output, err := execute(t, app.createListCommand(context.Background()))
	if err != nil {
		t.Fatalf("Ошибка выполнения команды list: %v", err)
	}
	if !strings.Contains(output, "First Song") {
		t.Errorf("Вывод команды list не содержит трек из профиля: %s", output)
	}
}

// TestCmdListErrors проверяет ошибки команды list
func TestCmdListErrors(t *testing.T) {
	t.Run("no directory", func(t *testing.T) {
		app := createTestApplication(t)
		_, err := execute(t, app.createListCommand(context.Background()))
		if !errors.Is(err, errNoDirectory) {
			t.Errorf("Ожидалась ошибка errNoDirectory, получено: %v", err)
		}
	})

	t.Run("empty folder", func(t *testing.T) {
		app := createTestApplication(t)
		_, err := execute(t, app.createListCommand(context.Background()), t.TempDir())
		if !errors.Is(err, library.ErrNoTracks) {
			t.Errorf("Ожидалась ошибка ErrNoTracks, получено: %v", err)
		}
	})

	t.Run("missing folder", func(t *testing.T) {
		app := createTestApplication(t)
		_, err := execute(t, app.createListCommand(context.Background()), filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, library.ErrReadDir) {
			t.Errorf("Ожидалась ошибка ErrReadDir, получено: %v", err)
		}
	})
}

// TestCmdExport проверяет сохранение плейлиста рядом с музыкой
func TestCmdExport(t *testing.T) {
	app := createTestApplication(t)
	dir := createMusicDir(t)

	output, err := execute(t, app.createExportCommand(context.Background()), dir)
	if err != nil {
		t.Fatalf("Ошибка выполнения команды export: %v", err)
	}

	path := filepath.Join(dir, "Favourites.m3u")
	if !strings.Contains(output, path) {
		t.Errorf("Вывод команды export не содержит путь к плейлисту: %s", output)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Плейлист не создан: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, playlist.Header) {
		t.Errorf("Плейлист должен начинаться с %s: %s", playlist.Header, content)
	}
	if !strings.Contains(content, filepath.Join(dir, "a.mp3")) || !strings.Contains(content, "Test Artist - First Song") {
		t.Errorf("Плейлист не содержит трек: %s", content)
	}
}

// TestCmdExportStdout проверяет вывод плейлиста в stdout
func TestCmdExportStdout(t *testing.T) {
	app := createTestApplication(t)
	dir := createMusicDir(t)

	output, err := execute(t, app.createExportCommand(context.Background()), dir, "--out", "-")
	if err != nil {
		t.Fatalf("Ошибка выполнения команды export: %v", err)
	}
	if !strings.HasPrefix(output, playlist.Header) {
		t.Errorf("Ожидался плейлист в выводе: %s", output)
	}
	if _, err := os.Stat(filepath.Join(dir, "Favourites.m3u")); !os.IsNotExist(err) {
		t.Error("Файл плейлиста не должен создаваться при --out -")
	}
}

// TestCmdExportUpload проверяет публикацию плейлиста
func TestCmdExportUpload(t *testing.T) {
	app := createTestApplication(t)
	store := &MockObjectStore{}
	app.Store = store
	dir := createMusicDir(t)

	output, err := execute(t, app.createExportCommand(context.Background()), dir, "--upload", "--with-audio")
	if err != nil {
		t.Fatalf("Ошибка выполнения команды export: %v", err)
	}

	want := []string{"Favourites/a.mp3", "Favourites/b.MP3", "Favourites/Favourites.m3u"}
	if strings.Join(store.keys, ",") != strings.Join(want, ",") {
		t.Errorf("Загружены ключи %v, ожидались %v", store.keys, want)
	}
	if !strings.Contains(output, "https://s3.example.com/bucket/Favourites/Favourites.m3u") {
		t.Errorf("Вывод команды export не содержит URL плейлиста: %s", output)
	}
}

// TestCmdExportUploadWithoutConfig проверяет ошибку при отсутствии настроек S3
func TestCmdExportUploadWithoutConfig(t *testing.T) {
	app := createTestApplication(t)
	dir := createMusicDir(t)

	_, err := execute(t, app.createExportCommand(context.Background()), dir, "--upload")
	if err == nil || !strings.Contains(err.Error(), "S3") {
		t.Errorf("Ожидалась ошибка о параметрах S3, получено: %v", err)
	}
}

// TestCmdProfile проверяет вывод сохраненной папки
func TestCmdProfile(t *testing.T) {
	app := createTestApplication(t)

	output, err := execute(t, app.createProfileCommand())
	if err != nil {
		t.Fatalf("Ошибка выполнения команды profile: %v", err)
	}
	if !strings.Contains(output, "Папка еще не выбрана") {
		t.Errorf("Неожиданный вывод для пустого профиля: %s", output)
	}

	if err := app.profileStore().Save("/music/jazz"); err != nil {
		t.Fatal(err)
	}
	output, err = execute(t, app.createProfileCommand())
	if err != nil {
		t.Fatalf("Ошибка выполнения команды profile: %v", err)
	}
	if strings.TrimSpace(output) != "/music/jazz" {
		t.Errorf("Ожидалось /music/jazz, получено: %q", output)
	}
}

// TestCmdRootInvalidArgs проверяет обработку лишних аргументов
func TestCmdRootInvalidArgs(t *testing.T) {
	app := createTestApplication(t)

	output, err := execute(t, app.createRootCommand(context.Background()), "one", "two")
	if err == nil {
		t.Fatal("Ожидалась ошибка при двух аргументах")
	}
	if !strings.Contains(output, "accepts at most 1 arg") {
		t.Errorf("Команда не отобразила ошибку о неверных аргументах: %s", output)
	}
}

// TestCmdRootInvalidRepeat проверяет, что неверный режим повтора из конфигурации отклоняется до запуска интерфейса
func TestCmdRootInvalidRepeat(t *testing.T) {
	app := createTestApplication(t)
	app.Config.Repeat = "sometimes"

	if _, err := execute(t, app.createTUICommand(context.Background()), t.TempDir()); err == nil {
		t.Error("Ожидалась ошибка для неизвестного режима повтора")
	}
}

// TestTUIOptions проверяет сборку зависимостей интерфейса из конфигурации
func TestTUIOptions(t *testing.T) {
	app := createTestApplication(t)
	app.Config.CoverWidth = 16
	app.Config.SeekStep = 0.1

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller := playback.NewController(playbacktest.New())
	options := app.tuiOptions(ctx, controller, "/music")

	if options.Controller != controller || options.Dir != "/music" {
		t.Error("Контроллер и папка не переданы")
	}
	if options.Context != ctx {
		t.Error("Контекст команды не передан в интерфейс")
	}
	if options.CoverWidth != 16 || options.SeekStep != 0.1 {
		t.Errorf("Неверные параметры отображения: %d, %v", options.CoverWidth, options.SeekStep)
	}
	if options.Scanner == nil || options.Profile == nil {
		t.Error("Сканер и профиль должны быть заданы")
	}
	if options.Watch == nil {
		t.Error("Наблюдение за папкой включено по умолчанию")
	}

	app.Config.WatchLibrary = false
	if app.tuiOptions(ctx, controller, "").Watch != nil {
		t.Error("Наблюдение за папкой должно отключаться")
	}
}
