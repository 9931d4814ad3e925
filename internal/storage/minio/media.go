package minio

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/storage"
)

// Store сохраняет изображение в бакет.
// Ключ объекта: "<folder>/<uuid><ext>", id медиа: "<folder>/<uuid>",
// публичный URL: "<public_base_url>/v<unix>/<folder>/<uuid><ext>".
// Размер и тип проверяются по конфигу — иначе storage.ErrInvalidArgument.
func (s *MediaStorage) Store(ctx context.Context, up models.Upload, folder string) (*models.Media, error) {
	const op = "storage/minio/media/Store"

	size := int64(len(up.Data))
	if size == 0 || size > s.cfg.Media.MaxSizeBytes {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	if !isAllowedContentType(s.cfg.Media.AllowedContentTypes, up.ContentType) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	folder = strings.Trim(folder, "/")
	id := path.Join(folder, uuid.NewString())
	key := id + extFor(up.ContentType)

	_, err := s.client.PutObject(ctx, s.cfg.S3.Bucket, key, bytes.NewReader(up.Data), size,
		mclient.PutObjectOptions{ContentType: up.ContentType})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Media{
		URL: s.publicURL(key, time.Now()),
		ID:  id,
	}, nil
}

// Delete удаляет все объекты под id (расширение в id не входит).
// Отсутствие объекта ошибкой не считается.
func (s *MediaStorage) Delete(ctx context.Context, id string) error {
	const op = "storage/minio/media/Delete"

	id = strings.Trim(id, "/")
	if id == "" || strings.Contains(id, "..") {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	if err := s.removePrefix(ctx, id+".", false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteFolder удаляет все объекты папки, включая вложенные.
// Пустая папка — не ошибка.
func (s *MediaStorage) DeleteFolder(ctx context.Context, folder string) error {
	const op = "storage/minio/media/DeleteFolder"

	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" || strings.Contains(folder, "..") {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidArgument)
	}

	if err := s.removePrefix(ctx, folder+"/", true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *MediaStorage) removePrefix(ctx context.Context, prefix string, recursive bool) error {
	opts := mclient.ListObjectsOptions{Prefix: prefix, Recursive: recursive}

	for obj := range s.client.ListObjects(ctx, s.cfg.S3.Bucket, opts) {
		if obj.Err != nil {
			return fmt.Errorf("list: %w", obj.Err)
		}

		if err := s.client.RemoveObject(ctx, s.cfg.S3.Bucket, obj.Key, mclient.RemoveObjectOptions{}); err != nil {
			errResp := mclient.ToErrorResponse(err)
			if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
				continue
			}

			return err
		}
	}

	return nil
}

// publicURL собирает версионированный публичный адрес объекта.
func (s *MediaStorage) publicURL(key string, now time.Time) string {
	base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/")

	return fmt.Sprintf("%s/v%d/%s", base, now.Unix(), key)
}

// isAllowedContentType проверяет, что тип содержимого входит в allow-list.
func isAllowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}

func extFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
