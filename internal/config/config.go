// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath - путь к файлу конфигурации по умолчанию
const DefaultPath = "~/.tunes.yaml"

// Значения по умолчанию
const (
	DefaultProfilePath = "~/.config/tunes/profile"
	DefaultLogFile     = "~/.config/tunes/tunes.log"
	DefaultCoverWidth  = 24
	DefaultSeekStep    = 0.05
)

// Config структура для хранения конфигурации приложения
type Config struct {
	ProfilePath   string  `yaml:"profile_path"`
	LogFile       string  `yaml:"log_file"`
	Repeat        string  `yaml:"repeat"`
	Notifications bool    `yaml:"notifications"`
	CoverWidth    int     `yaml:"cover_width"`
	WatchLibrary  bool    `yaml:"watch_library"`
	SeekStep      float64 `yaml:"seek_step"`

	AwsBucketName string `yaml:"aws_bucket_name"`
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
	AwsRegion     string `yaml:"aws_region"`
	AwsEndpoint   string `yaml:"aws_endpoint"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		ProfilePath:  DefaultProfilePath,
		LogFile:      DefaultLogFile,
		Repeat:       "off",
		CoverWidth:   DefaultCoverWidth,
		WatchLibrary: true,
		SeekStep:     DefaultSeekStep,
	}
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Отсутствующий файл не является ошибкой: используются значения по умолчанию.
// Переменные TUNES_AWS_* (в том числе из .env) переопределяют параметры S3.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("ошибка разбора %s: %w", path, err)
		}
	}

	_ = godotenv.Load()
	config.applyEnv()

	// Устанавливаем значения по умолчанию, если они не заданы
	if config.ProfilePath == "" {
		config.ProfilePath = DefaultProfilePath
	}
	if config.LogFile == "" {
		config.LogFile = DefaultLogFile
	}
	if config.CoverWidth <= 0 {
		config.CoverWidth = DefaultCoverWidth
	}
	if config.SeekStep <= 0 || config.SeekStep > 1 {
		config.SeekStep = DefaultSeekStep
	}

	// Раскрываем тильду в путях
	config.ProfilePath = strings.Replace(config.ProfilePath, "~", home, 1)
	config.LogFile = strings.Replace(config.LogFile, "~", home, 1)

	return config, nil
}

// HasS3 сообщает, заданы ли параметры для загрузки в S3
func (c *Config) HasS3() bool {
	return c.AwsBucketName != "" && c.AwsAccessKey != "" && c.AwsSecretKey != ""
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"TUNES_AWS_BUCKET_NAME": &c.AwsBucketName,
		"TUNES_AWS_ACCESS_KEY":  &c.AwsAccessKey,
		"TUNES_AWS_SECRET_KEY":  &c.AwsSecretKey,
		"TUNES_AWS_REGION":      &c.AwsRegion,
		"TUNES_AWS_ENDPOINT":    &c.AwsEndpoint,
	}
	for name, field := range overrides {
		if value := os.Getenv(name); value != "" {
			*field = value
		}
	}
}
