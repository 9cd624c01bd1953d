// Package s3 предоставляет функционал для публикации плейлистов в Amazon S3
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// PlaylistContentType - MIME тип загружаемых плейлистов
const PlaylistContentType = "audio/x-mpegurl"

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

// uploadAPI - часть s3manager.Uploader, которой пользуется Uploader
type uploadAPI interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// Uploader обертка для S3 uploader
type Uploader struct {
	api    uploadAPI
	config *Config
}

// NewUploader создает новый S3 uploader
func NewUploader(config *Config) (*Uploader, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return newUploader(config, s3manager.NewUploader(sess)), nil
}

func newUploader(config *Config, api uploadAPI) *Uploader {
	return &Uploader{api: api, config: config}
}

// UploadFile загружает содержимое reader под ключом key и возвращает URL объекта
func (u *Uploader) UploadFile(ctx context.Context, reader io.Reader, key, contentType string) (string, error) {
	input := &s3manager.UploadInput{
		Bucket: aws.String(u.config.BucketName),
		Key:    aws.String(key),
		Body:   reader,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	out, err := u.api.UploadWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}

	if u.config.Endpoint == "" && out != nil && out.Location != "" {
		return out.Location, nil
	}
	return u.ObjectURL(key), nil
}

// ObjectURL формирует URL объекта для endpoint с адресацией по пути
func (u *Uploader) ObjectURL(key string) string {
	endpoint := strings.TrimSuffix(u.config.Endpoint, "/")
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", u.config.Region)
	}
	return fmt.Sprintf("%s/%s/%s", endpoint, u.config.BucketName, key)
}
