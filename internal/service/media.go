package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/metrics"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/pkg/log"
	"github.com/pribylovaa/go-blog-service/internal/storage"
)

// Папки в хранилище медиа. К каждой дописывается id владельца.
const (
	folderCovers  = "blog/covers"
	folderImages  = "blog/images"
	folderAvatars = "blog/avatars"
)

func ownerFolder(base string, owner uuid.UUID) string {
	return base + "/" + owner.String()
}

// UploadImage загружает изображение для вставки в тело материала.
// payload — data URI ("data:image/png;base64,...") или «голый» base64.
func (s *Service) UploadImage(ctx context.Context, caller uuid.UUID, payload string) (*models.Media, error) {
	const op = "service/media/UploadImage"

	lg := log.From(ctx).With("op", op, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	up, err := decodeImage(payload)
	if err != nil {
		lg.Warn("invalid argument: image payload", "err", err)
		return nil, fmt.Errorf("%s: %w", op, invalid("image", err.Error()))
	}

	media, err := s.media.Store(ctx, *up, ownerFolder(folderImages, caller))
	if err != nil {
		return nil, s.mapMediaStoreErr(lg, op, "image", err)
	}

	return media, nil
}

// DeleteImage удаляет ранее загруженный объект. Удалять можно только свои объекты.
func (s *Service) DeleteImage(ctx context.Context, caller uuid.UUID, id string) error {
	const op = "service/media/DeleteImage"

	lg := log.From(ctx).With("op", op, "user_id", caller.String(), "media_id", id)

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	id = strings.Trim(strings.TrimSpace(id), "/")
	if id == "" {
		lg.Warn("invalid argument: empty media id")
		return fmt.Errorf("%s: %w", op, invalid("id", "is required"))
	}

	if !ownsMedia(caller, id) {
		lg.Warn("forbidden: foreign media")
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if err := s.media.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrInvalidArgument) {
			lg.Warn("invalid argument: media id")
			return fmt.Errorf("%s: %w", op, invalid("id", "is malformed"))
		}

		lg.Error("storage error on DeleteImage", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}

func ownsMedia(owner uuid.UUID, id string) bool {
	for _, base := range []string{folderImages, folderCovers, folderAvatars} {
		if strings.HasPrefix(id, ownerFolder(base, owner)+"/") {
			return true
		}
	}

	return false
}

// ownedMedia оставляет только id из папок owner. Материал может ссылаться
// на чужой объект по URL; такие объекты при зачистке не трогаются.
func ownedMedia(lg *slog.Logger, owner uuid.UUID, ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.Trim(strings.TrimSpace(id), "/")
		if id == "" {
			continue
		}

		if !ownsMedia(owner, id) {
			lg.Info("media cleanup skipped: foreign object", "media_id", id)
			continue
		}

		out = append(out, id)
	}

	return out
}

// resolveMedia превращает пользовательский ввод в ссылку на медиа:
// data URI загружается в хранилище, обычный URL сохраняется как есть.
// uploaded == true, если объект был создан этим вызовом.
func (s *Service) resolveMedia(ctx context.Context, raw, folder, field string) (media *models.Media, uploaded bool, err error) {
	const op = "service/media/resolveMedia"

	lg := log.From(ctx).With("op", op, "field", field)

	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "data:") {
		if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
			lg.Warn("invalid argument: media reference")
			return nil, false, invalid(field, "must be an http(s) URL or a data URI")
		}

		return &models.Media{URL: raw, ID: models.MediaIDFromURL(raw)}, false, nil
	}

	up, err := decodeImage(raw)
	if err != nil {
		lg.Warn("invalid argument: media payload", "err", err)
		return nil, false, invalid(field, err.Error())
	}

	media, err = s.media.Store(ctx, *up, folder)
	if err != nil {
		return nil, false, s.mapMediaStoreErr(lg, op, field, err)
	}

	return media, true, nil
}

func (s *Service) mapMediaStoreErr(lg *slog.Logger, op, field string, err error) error {
	if errors.Is(err, storage.ErrInvalidArgument) {
		lg.Warn("invalid argument: media rejected by storage", "err", err)
		return fmt.Errorf("%s: %w", op, invalid(field, "unsupported image type or size"))
	}

	lg.Error("storage error on media Store", "err", err)
	return fmt.Errorf("%s: %w", op, ErrInternal)
}

// deleteMediaAsync удаляет объекты в фоне, каждый независимо.
func (s *Service) deleteMediaAsync(ctx context.Context, ids ...string) {
	var todo []string
	for _, id := range ids {
		if id != "" {
			todo = append(todo, id)
		}
	}

	if len(todo) == 0 {
		return
	}

	s.bg.Add(1)
	go func() {
		defer s.bg.Done()

		bctx := log.Detached(ctx)
		for _, id := range todo {
			dctx, cancel := context.WithTimeout(bctx, s.backgroundTimeout())
			if err := s.media.Delete(dctx, id); err != nil {
				s.secondaryFailure(dctx, metrics.EffectMediaCleanup, fmt.Errorf("delete %s: %w", id, err))
			}
			cancel()
		}
	}()
}

// decodeImage разбирает data URI или base64 в Upload.
func decodeImage(payload string) (*models.Upload, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, errors.New("is required")
	}

	contentType := ""
	data := payload

	if strings.HasPrefix(payload, "data:") {
		header, body, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, errors.New("malformed data URI")
		}

		meta := strings.TrimPrefix(header, "data:")
		mime, enc, _ := strings.Cut(meta, ";")
		if enc != "base64" {
			return nil, errors.New("data URI must be base64-encoded")
		}

		contentType = strings.ToLower(mime)
		data = body
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, errors.New("malformed base64")
	}

	if len(raw) == 0 {
		return nil, errors.New("is empty")
	}

	if contentType == "" {
		contentType = http.DetectContentType(raw)
	}

	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.New("must be an image")
	}

	return &models.Upload{Data: raw, ContentType: contentType}, nil
}
