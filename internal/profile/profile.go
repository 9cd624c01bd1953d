// Package profile хранит последнюю выбранную папку с музыкой
package profile

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const key = "music-dir"

// Store читает и перезаписывает файл профиля
type Store struct {
	path string
}

// NewStore создает хранилище профиля по указанному пути
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path возвращает путь к файлу профиля
func (s *Store) Path() string {
	return s.path
}

// Save перезаписывает профиль абсолютным путем к папке
func (s *Store) Save(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("ошибка определения пути: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("ошибка создания папки профиля: %w", err)
	}

	line := fmt.Sprintf("%s %s\n", key, abs)
	if err := os.WriteFile(s.path, []byte(line), 0644); err != nil {
		return fmt.Errorf("ошибка записи профиля: %w", err)
	}
	return nil
}

// Load возвращает сохраненную папку. Отсутствующий, пустой или
// поврежденный профиль означает, что папка еще не выбиралась.
func (s *Store) Load() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		name, value, found := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		if !found || name != key {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" || !filepath.IsAbs(value) {
			return "", false
		}
		return value, true
	}
	return "", false
}
