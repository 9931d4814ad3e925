package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/pkg/log"
	"github.com/pribylovaa/go-blog-service/internal/storage"
)

// toggle переключает связь (kind, user, target) и возвращает true, если связь теперь есть.
// Гонка двух одинаковых вызовов не ошибка: ErrAlreadyExists/ErrNotFound от стоража
// означают, что связь уже в нужном состоянии.
func (s *Service) toggle(ctx context.Context, kind models.RelationKind, userID uuid.UUID, targetID string) (bool, error) {
	const op = "service/engagement/toggle"

	has, err := s.ledger.HasRelation(ctx, kind, userID, targetID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if has {
		err := s.ledger.RemoveRelation(ctx, kind, userID, targetID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return false, fmt.Errorf("%s: %w", op, err)
		}

		return false, nil
	}

	err = s.ledger.AddRelation(ctx, models.Relation{
		Kind:      kind,
		UserID:    userID,
		TargetID:  targetID,
		CreatedAt: s.now(),
	})
	if err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

// ToggleBookmark добавляет материал в закладки или убирает его оттуда.
func (s *Service) ToggleBookmark(ctx context.Context, caller uuid.UUID, contentID string) (*models.BookmarkState, error) {
	const op = "service/engagement/ToggleBookmark"

	lg := log.From(ctx).With("op", op, "content_id", contentID, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	item, err := s.loadContent(ctx, lg, contentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !canView(item, caller) {
		lg.Warn("content not visible")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	bookmarked, err := s.toggle(ctx, models.RelationBookmark, caller, item.ID)
	if err != nil {
		lg.Error("storage error on toggle", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return &models.BookmarkState{Bookmarked: bookmarked}, nil
}

// IsBookmarked сообщает, есть ли материал в закладках вызывающего.
func (s *Service) IsBookmarked(ctx context.Context, caller uuid.UUID, contentID string) (bool, error) {
	const op = "service/engagement/IsBookmarked"

	lg := log.From(ctx).With("op", op, "content_id", contentID, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return false, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	has, err := s.ledger.HasRelation(ctx, models.RelationBookmark, caller, contentID)
	if err != nil {
		lg.Error("storage error on HasRelation", "err", err)
		return false, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return has, nil
}

// RemoveBookmark явно удаляет закладку. Закладки нет -> ErrNotFound.
func (s *Service) RemoveBookmark(ctx context.Context, caller uuid.UUID, contentID string) error {
	const op = "service/engagement/RemoveBookmark"

	lg := log.From(ctx).With("op", op, "content_id", contentID, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if err := s.ledger.RemoveRelation(ctx, models.RelationBookmark, caller, contentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("bookmark not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on RemoveRelation", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}

// ListBookmarks — закладки вызывающего, новые сверху.
// Закладки на уже удалённые материалы пропускаются.
func (s *Service) ListBookmarks(ctx context.Context, caller uuid.UUID, p models.PageParams) (*models.BookmarkPage, error) {
	const op = "service/engagement/ListBookmarks"

	lg := log.From(ctx).With("op", op, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	p = s.pageParams(p)

	rels, total, err := s.ledger.ListByUser(ctx, models.RelationBookmark, caller, p)
	if err != nil {
		lg.Error("storage error on ListByUser", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	ids := make([]string, 0, len(rels))
	for _, r := range rels {
		ids = append(ids, r.TargetID)
	}

	items := map[string]models.ContentItem{}
	if len(ids) > 0 {
		items, err = s.contents.ContentByIDs(ctx, ids)
		if err != nil {
			lg.Error("storage error on ContentByIDs", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	page := &models.BookmarkPage{
		Items:    make([]models.Bookmark, 0, len(rels)),
		PageInfo: models.PageInfo{Page: p.Page, Limit: p.Limit, Total: total},
	}

	for _, r := range rels {
		item, ok := items[r.TargetID]
		if !ok {
			continue
		}

		page.Items = append(page.Items, models.Bookmark{Content: item, CreatedAt: r.CreatedAt})
	}

	return page, nil
}
