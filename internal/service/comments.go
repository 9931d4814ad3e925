package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/metrics"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/pkg/log"
	"github.com/pribylovaa/go-blog-service/internal/storage"
)

const maxCommentRunes = 1000

// CreateCommentInput — создание комментария верхнего уровня или ответа.
// Правила:
//   - если ParentID пуст, создаётся комментарий верхнего уровня;
//   - если ParentID не пуст, родитель должен быть на том же материале;
//   - всегда обязательны: ContentID, AuthorID, Text.
type CreateCommentInput struct {
	ContentID string
	ParentID  string
	AuthorID  uuid.UUID
	Text      string
}

// CreateComment — бизнес-операция создания комментария.
//
// Поведение/ошибки:
//   - ErrNotFound — материала нет или он не виден вызывающему;
//   - ErrParentNotFound — родитель отсутствует (запись не создаётся);
//   - ErrMaxDepthExceeded — превышена максимальная глубина;
//   - ErrInternal — прочие ошибки стораджа/БД/контекста.
//
// После создания счётчик комментариев материала пересчитывается.
func (s *Service) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const op = "service/comments/CreateComment"

	lg := log.From(ctx).With(
		"op", op,
		"user_id", in.AuthorID.String(),
		"content_id", in.ContentID,
		"parent_id", in.ParentID,
	)

	if in.AuthorID == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	text, err := validateCommentText(in.Text)
	if err != nil {
		lg.Warn("invalid argument: text")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.loadContent(ctx, lg, in.ContentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !canView(item, in.AuthorID) {
		lg.Warn("content not visible")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	now := s.now()
	comm := models.Comment{
		ContentID: item.ID,
		ParentID:  strings.TrimSpace(in.ParentID),
		AuthorID:  in.AuthorID,
		Text:      text,
		Status:    models.CommentNormal,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := s.comments.CreateComment(ctx, comm)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrParentNotFound):
			lg.Warn("parent not found")
			return nil, fmt.Errorf("%s: %w", op, ErrParentNotFound)
		case errors.Is(err, storage.ErrMaxDepthExceeded):
			lg.Warn("max depth exceeded")
			return nil, fmt.Errorf("%s: %w", op, ErrMaxDepthExceeded)
		default:
			lg.Error("storage error on CreateComment", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	// Счётчик ответов родителя вторичен: видимость ветки от него не зависит.
	if result.ParentID != "" {
		if _, err := s.comments.SyncRepliesCount(ctx, result.ParentID); err != nil {
			s.secondaryFailure(ctx, metrics.EffectRecount, fmt.Errorf("%s: %w", op, err))
		}
	}

	s.syncCommentsCount(ctx, item.ID)

	return result, nil
}

// ListComments — ветки верхнего уровня (новые сверху) с ответами (старые сверху).
// Удалённый корень остаётся в выдаче, пока у него есть ответы.
func (s *Service) ListComments(ctx context.Context, caller uuid.UUID, contentID string, p models.ListParams) (*models.ThreadPage, error) {
	const op = "service/comments/ListComments"

	lg := log.From(ctx).With("op", op, "content_id", contentID)

	item, err := s.loadContent(ctx, lg, contentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !canView(item, caller) {
		lg.Warn("content not visible")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if p.PageSize <= 0 {
		p.PageSize = s.cfg.Limits.Default
	}
	if s.cfg.Limits.Max > 0 && p.PageSize > s.cfg.Limits.Max {
		p.PageSize = s.cfg.Limits.Max
	}

	roots, err := s.comments.ListRoots(ctx, item.ID, p)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCursor) {
			lg.Warn("invalid cursor")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		}

		lg.Error("storage error on ListRoots", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	ids := make([]string, 0, len(roots.Items))
	for _, c := range roots.Items {
		ids = append(ids, c.ID)
	}

	replies := map[string][]models.Comment{}
	if len(ids) > 0 {
		replies, err = s.comments.RepliesOf(ctx, ids)
		if err != nil {
			lg.Error("storage error on RepliesOf", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	page := &models.ThreadPage{
		Items:         make([]models.Thread, 0, len(roots.Items)),
		NextPageToken: roots.NextPageToken,
		PageSize:      p.PageSize,
	}

	for _, c := range roots.Items {
		rs := replies[c.ID]
		if rs == nil {
			rs = []models.Comment{}
		}

		page.Items = append(page.Items, models.Thread{Comment: c, Replies: rs})
	}

	return page, nil
}

// CommentByID возвращает комментарий, в том числе удалённый (с текстом-заглушкой).
// Комментарии материала, который вызывающему не виден, не отдаются: ErrNotFound.
func (s *Service) CommentByID(ctx context.Context, caller uuid.UUID, id string) (*models.Comment, error) {
	const op = "service/comments/CommentByID"

	lg := log.From(ctx).With("op", op, "comment_id", id, "user_id", caller.String())

	comm, err := s.loadComment(ctx, lg, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.loadContent(ctx, lg, comm.ContentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !canView(item, caller) {
		lg.Warn("content not visible")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return comm, nil
}

// UpdateComment меняет текст комментария. Только автор; удалённые не редактируются.
func (s *Service) UpdateComment(ctx context.Context, caller uuid.UUID, id, text string) (*models.Comment, error) {
	const op = "service/comments/UpdateComment"

	lg := log.From(ctx).With("op", op, "comment_id", id, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	text, err := validateCommentText(text)
	if err != nil {
		lg.Warn("invalid argument: text")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comm, err := s.loadComment(ctx, lg, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if comm.IsDeleted() {
		lg.Warn("comment deleted")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if comm.AuthorID != caller {
		lg.Warn("forbidden: not the author")
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	updated, err := s.comments.UpdateCommentText(ctx, comm.ID, text)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UpdateCommentText", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return updated, nil
}

// DeleteComment мягко удаляет комментарий: статус deleted, текст-заглушка.
// Удалять может автор комментария или автор материала. Повторное удаление не ошибка.
// Ответы не затрагиваются.
func (s *Service) DeleteComment(ctx context.Context, caller uuid.UUID, id string) (*models.Comment, error) {
	const op = "service/comments/DeleteComment"

	lg := log.From(ctx).With("op", op, "comment_id", id, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	comm, err := s.loadComment(ctx, lg, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if comm.AuthorID != caller {
		item, err := s.contents.ContentByID(ctx, comm.ContentID)
		switch {
		case err == nil && item.AuthorID == caller:
		case err == nil, errors.Is(err, storage.ErrNotFound):
			lg.Warn("forbidden: neither comment nor content author")
			return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
		default:
			lg.Error("storage error on ContentByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	changed, err := s.comments.SoftDeleteComment(ctx, comm.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on SoftDeleteComment", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if changed {
		s.syncCommentsCount(ctx, comm.ContentID)
	}

	comm.Status = models.CommentDeleted
	comm.Text = models.TombstoneText

	return comm, nil
}

// ToggleCommentLike переключает лайк комментария.
func (s *Service) ToggleCommentLike(ctx context.Context, caller uuid.UUID, id string) (*models.LikeState, error) {
	const op = "service/comments/ToggleCommentLike"

	lg := log.From(ctx).With("op", op, "comment_id", id, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	comm, err := s.loadComment(ctx, lg, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if comm.IsDeleted() {
		lg.Warn("comment deleted")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	liked, err := s.toggle(ctx, models.RelationCommentLike, caller, comm.ID)
	if err != nil {
		lg.Error("storage error on toggle", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	n, err := s.ledger.CountRelations(ctx, models.RelationCommentLike, comm.ID)
	if err != nil {
		lg.Error("storage error on CountRelations", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.comments.SetCommentLikesCount(ctx, comm.ID, n); err != nil {
		s.secondaryFailure(ctx, metrics.EffectRecount, fmt.Errorf("%s: %w", op, err))
	}

	return &models.LikeState{Liked: liked, LikesCount: n}, nil
}

// RecountComments пересчитывает неудалённые комментарии материала
// и записывает результат в comments_count.
func (s *Service) RecountComments(ctx context.Context, contentID string) (int64, error) {
	const op = "service/comments/RecountComments"

	lg := log.From(ctx).With("op", op, "content_id", contentID)

	n, err := s.comments.CountActive(ctx, contentID)
	if err != nil {
		lg.Error("storage error on CountActive", "err", err)
		return 0, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.contents.SetCommentsCount(ctx, contentID, n); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("content not found")
			return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on SetCommentsCount", "err", err)
		return 0, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return n, nil
}

// syncCommentsCount — пересчёт после create/delete. Комментарий уже сохранён,
// поэтому сбой пересчёта не отменяет операцию: счётчик восстановится следующим пересчётом.
func (s *Service) syncCommentsCount(ctx context.Context, contentID string) {
	if _, err := s.RecountComments(ctx, contentID); err != nil {
		s.secondaryFailure(ctx, metrics.EffectRecount, err)
	}
}

func (s *Service) loadComment(ctx context.Context, lg *slog.Logger, id string) (*models.Comment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		lg.Warn("invalid argument: empty comment id")
		return nil, invalid("id", "is required")
	}

	comm, err := s.comments.CommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, ErrNotFound
		}

		lg.Error("storage error on CommentByID", "err", err)
		return nil, ErrInternal
	}

	return comm, nil
}

func validateCommentText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", invalid("text", "is required")
	}

	if utf8.RuneCountInString(text) > maxCommentRunes {
		return "", invalid("text", fmt.Sprintf("must be at most %d characters", maxCommentRunes))
	}

	return text, nil
}
