package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// MockS3Uploader мок для S3 uploader
type MockS3Uploader struct {
	uploadFunc func(input *s3manager.UploadInput) (*s3manager.UploadOutput, error)
}

func (m *MockS3Uploader) UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	return m.uploadFunc(input)
}

func testConfig() *Config {
	return &Config{
		Region:     "us-east-1",
		AccessKey:  "test-access-key",
		SecretKey:  "test-secret-key",
		Endpoint:   "https://s3.example.com",
		BucketName: "test-bucket",
	}
}

// TestSuccessfulUpload тестирует успешную загрузку плейлиста
func TestSuccessfulUpload(t *testing.T) {
	var received *s3manager.UploadInput
	var body string
	mock := &MockS3Uploader{
		uploadFunc: func(input *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
			received = input
			data, _ := io.ReadAll(input.Body)
			body = string(data)
			return &s3manager.UploadOutput{Location: "ignored"}, nil
		},
	}

	uploader := newUploader(testConfig(), mock)
	url, err := uploader.UploadFile(context.Background(), strings.NewReader("#EXTM3U\n"), "playlists/rock.m3u", PlaylistContentType)
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}

	if aws.StringValue(received.Bucket) != "test-bucket" {
		t.Errorf("Ожидался bucket test-bucket, получено: %s", aws.StringValue(received.Bucket))
	}
	if aws.StringValue(received.ContentType) != PlaylistContentType {
		t.Errorf("Ожидался ContentType %s, получено: %s", PlaylistContentType, aws.StringValue(received.ContentType))
	}
	if body != "#EXTM3U\n" {
		t.Errorf("Неожиданное содержимое: %q", body)
	}

	expectedURL := "https://s3.example.com/test-bucket/playlists/rock.m3u"
	if url != expectedURL {
		t.Errorf("Ожидался URL: %s, получено: %s", expectedURL, url)
	}
}

// TestUploadErrorHandling тестирует обработку ошибок при загрузке
func TestUploadErrorHandling(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{"InvalidCredentials", awserr.New("InvalidAccessKeyId", "The AWS Access Key Id you provided does not exist in our records.", nil)},
		{"NetworkError", awserr.New("RequestTimeout", "Request timeout", nil)},
		{"BucketAccessError", awserr.New("AccessDenied", "Access Denied", nil)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &MockS3Uploader{
				uploadFunc: func(input *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
					return nil, tc.err
				},
			}

			uploader := newUploader(testConfig(), mock)
			_, err := uploader.UploadFile(context.Background(), strings.NewReader("x"), "a.m3u", "")
			if err == nil {
				t.Fatal("Ожидалась ошибка загрузки")
			}
			if !strings.Contains(err.Error(), "ошибка загрузки") {
				t.Errorf("Неожиданное сообщение об ошибке: %v", err)
			}
		})
	}
}

// TestObjectKeyFormation тестирует передачу ключа объекта без изменений
func TestObjectKeyFormation(t *testing.T) {
	keys := []string{
		"rock.m3u",
		"playlists/artist/rock.m3u",
		"mix (remix) [2024].m3u",
		"my mix.m3u",
		"плейлист.m3u",
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			var receivedKey string
			mock := &MockS3Uploader{
				uploadFunc: func(input *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
					receivedKey = aws.StringValue(input.Key)
					return &s3manager.UploadOutput{}, nil
				},
			}

			uploader := newUploader(testConfig(), mock)
			if _, err := uploader.UploadFile(context.Background(), strings.NewReader("x"), key, ""); err != nil {
				t.Fatalf("Ошибка при загрузке: %v", err)
			}
			if receivedKey != key {
				t.Errorf("Ожидался ключ: %s, получено: %s", key, receivedKey)
			}
		})
	}
}

// TestObjectURLWithoutEndpoint тестирует URL для стандартного S3
func TestObjectURLWithoutEndpoint(t *testing.T) {
	config := testConfig()
	config.Endpoint = ""

	mock := &MockS3Uploader{
		uploadFunc: func(input *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
			return &s3manager.UploadOutput{Location: "https://test-bucket.s3.amazonaws.com/a.m3u"}, nil
		},
	}

	uploader := newUploader(config, mock)
	url, err := uploader.UploadFile(context.Background(), strings.NewReader("x"), "a.m3u", "")
	if err != nil {
		t.Fatalf("Ошибка при загрузке: %v", err)
	}
	if url != "https://test-bucket.s3.amazonaws.com/a.m3u" {
		t.Errorf("Ожидался адрес из ответа S3, получено: %s", url)
	}

	if got := uploader.ObjectURL("b.m3u"); got != "https://s3.us-east-1.amazonaws.com/test-bucket/b.m3u" {
		t.Errorf("Неожиданный URL: %s", got)
	}
}

// TestNewUploader тестирует создание нового uploader
func TestNewUploader(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		config := testConfig()
		config.Endpoint = ""

		uploader, err := NewUploader(config)
		if err != nil {
			t.Fatalf("Неожиданная ошибка при создании uploader: %v", err)
		}
		if uploader.config != config {
			t.Error("Конфигурация должна быть сохранена")
		}
	})

	t.Run("ConfigWithEndpoint", func(t *testing.T) {
		uploader, err := NewUploader(testConfig())
		if err != nil {
			t.Fatalf("Неожиданная ошибка при создании uploader с endpoint: %v", err)
		}
		if uploader == nil {
			t.Error("Uploader не должен быть nil")
		}
	})
}

// TestUploadFileWithContext тестирует передачу контекста
func TestUploadFileWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &MockS3Uploader{
		uploadFunc: func(input *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
			return nil, context.Canceled
		},
	}

	uploader := newUploader(testConfig(), mock)
	if _, err := uploader.UploadFile(ctx, strings.NewReader("x"), "a.m3u", ""); err == nil {
		t.Error("Ожидалась ошибка при отмененном контексте")
	}
}
