package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hazadus/go-tunes/internal/config"
	"github.com/hazadus/go-tunes/internal/library"
	"github.com/hazadus/go-tunes/internal/metadata"
	"github.com/hazadus/go-tunes/internal/profile"
	"github.com/hazadus/go-tunes/internal/s3"
	"github.com/hazadus/go-tunes/internal/uploader"
)

var errNoDirectory = errors.New("папка с музыкой не указана и не сохранена в профиле")

// Application хранит зависимости, общие для всех команд
type Application struct {
	Config *config.Config
	Logger *log.Logger
	// Store подменяет хранилище для публикации; по умолчанию создается S3 uploader
	Store uploader.ObjectStore
}

func main() {
	cfg, err := config.LoadConfig(config.DefaultPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	app := &Application{Config: cfg, Logger: log.Default()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.createRootCommand(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}

func (app *Application) profileStore() *profile.Store {
	return profile.NewStore(app.Config.ProfilePath)
}

func (app *Application) newScanner() *library.Scanner {
	return library.NewScanner(metadata.NewExtractor(app.Logger))
}

// resolveDir возвращает папку из аргументов команды или из профиля
func (app *Application) resolveDir(args []string) (string, error) {
	if len(args) > 0 {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("ошибка разбора пути %s: %w", args[0], err)
		}
		return dir, nil
	}
	if dir, ok := app.profileStore().Load(); ok {
		return dir, nil
	}
	return "", errNoDirectory
}

func (app *Application) objectStore() (uploader.ObjectStore, error) {
	if app.Store != nil {
		return app.Store, nil
	}
	if !app.Config.HasS3() {
		return nil, errors.New("не заданы параметры S3: aws_bucket_name, aws_access_key, aws_secret_key")
	}

	s3Uploader, err := s3.NewUploader(&s3.Config{
		Region:     app.Config.AwsRegion,
		AccessKey:  app.Config.AwsAccessKey,
		SecretKey:  app.Config.AwsSecretKey,
		Endpoint:   app.Config.AwsEndpoint,
		BucketName: app.Config.AwsBucketName,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания S3 uploader: %w", err)
	}
	return s3Uploader, nil
}
