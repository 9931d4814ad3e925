package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/metrics"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/pkg/log"
	"github.com/pribylovaa/go-blog-service/internal/storage"
)

const (
	maxTitleArticle    = 200
	maxTitlePost       = 150
	maxMetaDescription = 160
	maxCategory        = 50
	maxTags            = 20
	maxTagLen          = 50
	maxSlugAttempts    = 5
	defaultFeatured    = 5
)

// Входные структуры сервисного слоя.

// CreateContentInput — создание статьи или поста.
// Cover — data URI (будет загружен в хранилище медиа) или URL уже загруженного файла.
type CreateContentInput struct {
	AuthorID        uuid.UUID
	Kind            models.Kind
	Title           string
	Body            models.Body
	Cover           string
	Status          models.Status
	Tags            []string
	Category        string
	MetaDescription string
	Excerpt         string
	Featured        bool
}

// UpdateContentInput — частичное обновление: nil означает «не менять».
// Cover == "" снимает обложку.
type UpdateContentInput struct {
	Title           *string
	Body            *models.Body
	Cover           *string
	Status          *models.Status
	Tags            *[]string
	Category        *string
	MetaDescription *string
	Excerpt         *string
	Featured        *bool
}

// CreateContent — бизнес-операция создания материала.
//
// Валидация:
//   - AuthorID обязателен (uuid.Nil -> ErrUnauthenticated);
//   - Title обязателен, не длиннее 200 символов (пост: 150);
//   - тело статьи задаётся блоками, тело поста непустым текстом.
//
// Производные поля (slug, время чтения, анонс, publishedAt) вычисляются здесь один раз.
// Slug уникален: при коллизии пробуем свежую метку времени.
func (s *Service) CreateContent(ctx context.Context, in CreateContentInput) (*models.ContentItem, error) {
	const op = "service/content/CreateContent"

	lg := log.From(ctx).With("op", op, "author_id", in.AuthorID.String(), "kind", string(in.Kind))

	if in.AuthorID == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if in.Kind == "" {
		in.Kind = models.KindArticle
	}
	if !in.Kind.Valid() {
		lg.Warn("invalid argument: kind")
		return nil, fmt.Errorf("%s: %w", op, invalid("kind", "must be article or post"))
	}

	if in.Status == "" {
		in.Status = models.StatusDraft
	}
	if !in.Status.Valid() {
		lg.Warn("invalid argument: status")
		return nil, fmt.Errorf("%s: %w", op, invalid("status", "must be draft, published or archived"))
	}

	title, err := validateTitle(in.Kind, in.Title)
	if err != nil {
		lg.Warn("invalid argument: title")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateBody(in.Kind, in.Body); err != nil {
		lg.Warn("invalid argument: body")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tags, err := normalizeTags(in.Tags)
	if err != nil {
		lg.Warn("invalid argument: tags")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	category, meta, excerpt, err := validateMeta(in.Category, in.MetaDescription, in.Excerpt)
	if err != nil {
		lg.Warn("invalid argument: meta")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()

	item := models.ContentItem{
		Kind:            in.Kind,
		AuthorID:        in.AuthorID,
		Title:           title,
		Body:            in.Body,
		Status:          in.Status,
		Tags:            tags,
		Category:        category,
		MetaDescription: meta,
		Excerpt:         excerpt,
		ReadingTime:     ReadingTime(in.Body),
		Featured:        in.Featured,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if item.Excerpt == "" {
		item.Excerpt = Excerpt(in.Body)
	}

	if item.Status == models.StatusPublished {
		item.PublishedAt = &now
	}

	uploaded := false
	if strings.TrimSpace(in.Cover) != "" {
		item.Cover, uploaded, err = s.resolveMedia(ctx, in.Cover, ownerFolder(folderCovers, in.AuthorID), "cover")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	var created *models.ContentItem
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		item.Slug = Slugify(title, in.Kind, s.now().Add(time.Duration(attempt)*time.Millisecond))

		created, err = s.contents.CreateContent(ctx, item)
		if err == nil || !errors.Is(err, storage.ErrAlreadyExists) {
			break
		}

		lg.Warn("slug collision, retrying", "slug", item.Slug, "attempt", attempt+1)
	}

	if err != nil {
		if uploaded {
			s.deleteMediaAsync(ctx, item.Cover.ID)
		}

		lg.Error("storage error on CreateContent", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if created.Featured {
		s.invalidateFeatured(ctx)
	}

	return created, nil
}

// ContentBySlug — публичное чтение. Черновики видны только автору.
// Счётчик просмотров увеличивается в фоне и не задерживает ответ.
func (s *Service) ContentBySlug(ctx context.Context, caller uuid.UUID, slug string) (*models.ContentItem, error) {
	const op = "service/content/ContentBySlug"

	lg := log.From(ctx).With("op", op, "slug", slug)

	slug = strings.TrimSpace(slug)
	if slug == "" {
		lg.Warn("invalid argument: empty slug")
		return nil, fmt.Errorf("%s: %w", op, invalid("slug", "is required"))
	}

	item, err := s.contents.ContentBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("content not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on ContentBySlug", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if !canView(item, caller) {
		lg.Warn("content not visible")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	id := item.ID
	s.goBackground(ctx, metrics.EffectViewIncrement, func(ctx context.Context) error {
		return s.contents.IncrementViews(ctx, id)
	})

	return item, nil
}

// ContentByID — чтение для редактирования, доступно только автору.
func (s *Service) ContentByID(ctx context.Context, caller uuid.UUID, id string) (*models.ContentItem, error) {
	const op = "service/content/ContentByID"

	lg := log.From(ctx).With("op", op, "content_id", id, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	item, err := s.loadContent(ctx, lg, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if item.AuthorID != caller {
		lg.Warn("forbidden: not the author")
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return item, nil
}

// UpdateContent — частичное обновление материала автором.
//
// Slug не меняется. Новое тело пересчитывает время чтения, анонс заполняется,
// только если он пуст. Смена обложки: загрузка новой -> сохранение -> удаление
// старой в фоне; ошибка удаления только логируется.
func (s *Service) UpdateContent(ctx context.Context, caller uuid.UUID, id string, in UpdateContentInput) (*models.ContentItem, error) {
	const op = "service/content/UpdateContent"

	lg := log.From(ctx).With("op", op, "content_id", id, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	cur, err := s.loadContent(ctx, lg, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cur.AuthorID != caller {
		lg.Warn("forbidden: not the author")
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	upd, err := s.buildContentUpdate(cur, in)
	if err != nil {
		lg.Warn("invalid argument", "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		newCover   *models.Media
		uploaded   bool
		oldCoverID string
	)

	if in.Cover != nil {
		raw := strings.TrimSpace(*in.Cover)

		switch {
		case raw == "":
			if cur.Cover != nil {
				upd.Cover = &models.Media{}
				oldCoverID = mediaID(cur.Cover)
			}
		case cur.Cover != nil && raw == cur.Cover.URL:
			// Обложка не изменилась.
		default:
			newCover, uploaded, err = s.resolveMedia(ctx, raw, ownerFolder(folderCovers, caller), "cover")
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}

			upd.Cover = newCover
			if cur.Cover != nil {
				oldCoverID = mediaID(cur.Cover)
			}
		}
	}

	updated, err := s.contents.UpdateContent(ctx, cur.ID, upd)
	if err != nil {
		if uploaded {
			s.deleteMediaAsync(ctx, newCover.ID)
		}

		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("content not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UpdateContent", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if oldCoverID != "" && (newCover == nil || newCover.ID != oldCoverID) {
		s.deleteMediaAsync(ctx, ownedMedia(lg, cur.AuthorID, oldCoverID)...)
	}

	if cur.Featured || updated.Featured {
		s.invalidateFeatured(ctx)
	}

	return updated, nil
}

func (s *Service) buildContentUpdate(cur *models.ContentItem, in UpdateContentInput) (models.ContentUpdate, error) {
	var upd models.ContentUpdate

	if in.Title != nil {
		title, err := validateTitle(cur.Kind, *in.Title)
		if err != nil {
			return upd, err
		}
		upd.Title = &title
	}

	if in.Body != nil {
		if err := validateBody(cur.Kind, *in.Body); err != nil {
			return upd, err
		}

		body := *in.Body
		rt := ReadingTime(body)
		upd.Body = &body
		upd.ReadingTime = &rt

		if in.Excerpt == nil && cur.Excerpt == "" {
			if ex := Excerpt(body); ex != "" {
				upd.Excerpt = &ex
			}
		}
	}

	category, meta, excerpt := "", "", ""
	if in.Category != nil {
		category = *in.Category
	}
	if in.MetaDescription != nil {
		meta = *in.MetaDescription
	}
	if in.Excerpt != nil {
		excerpt = *in.Excerpt
	}

	category, meta, excerpt, err := validateMeta(category, meta, excerpt)
	if err != nil {
		return upd, err
	}

	if in.Category != nil {
		upd.Category = &category
	}
	if in.MetaDescription != nil {
		upd.MetaDescription = &meta
	}
	if in.Excerpt != nil {
		upd.Excerpt = &excerpt
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			return upd, invalid("status", "must be draft, published or archived")
		}

		st := *in.Status
		upd.Status = &st

		if st == models.StatusPublished && cur.PublishedAt == nil {
			now := s.now()
			upd.PublishedAt = &now
		}
	}

	if in.Tags != nil {
		tags, err := normalizeTags(*in.Tags)
		if err != nil {
			return upd, err
		}
		upd.Tags = &tags
	}

	if in.Featured != nil {
		f := *in.Featured
		upd.Featured = &f
	}

	return upd, nil
}

// DeleteContent удаляет материал автором. Запись удаляется сразу; обложка,
// встроенные изображения, комментарии, лайки и закладки зачищаются в фоне,
// каждая часть независимо от других.
func (s *Service) DeleteContent(ctx context.Context, caller uuid.UUID, id string) error {
	const op = "service/content/DeleteContent"

	lg := log.From(ctx).With("op", op, "content_id", id, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	item, err := s.loadContent(ctx, lg, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if item.AuthorID != caller {
		lg.Warn("forbidden: not the author")
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if err := s.contents.DeleteContent(ctx, item.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("content not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on DeleteContent", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	var media []string
	if item.Cover != nil {
		media = append(media, mediaID(item.Cover))
	}
	for _, u := range item.Body.ImageURLs() {
		media = append(media, models.MediaIDFromURL(u))
	}
	s.deleteMediaAsync(ctx, ownedMedia(lg, item.AuthorID, media...)...)

	contentID := item.ID
	s.goBackground(ctx, metrics.EffectCascade, func(ctx context.Context) error {
		return s.cascadeContent(ctx, contentID)
	})

	if item.Featured {
		s.invalidateFeatured(ctx)
	}

	return nil
}

// cascadeContent зачищает комментарии и связи удалённого материала.
// Все шаги выполняются, даже если предыдущий завершился ошибкой.
func (s *Service) cascadeContent(ctx context.Context, contentID string) error {
	var errs []error

	commentIDs, err := s.comments.DeleteByContent(ctx, contentID)
	if err != nil {
		errs = append(errs, fmt.Errorf("comments: %w", err))
	}

	if len(commentIDs) > 0 {
		if _, err := s.ledger.DeleteByTargets(ctx, models.RelationCommentLike, commentIDs); err != nil {
			errs = append(errs, fmt.Errorf("comment likes: %w", err))
		}
	}

	for _, kind := range []models.RelationKind{models.RelationContentLike, models.RelationBookmark} {
		if _, err := s.ledger.DeleteByTargets(ctx, kind, []string{contentID}); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
		}
	}

	return errors.Join(errs...)
}

// ToggleContentLike переключает лайк вызывающего и возвращает новое состояние.
func (s *Service) ToggleContentLike(ctx context.Context, caller uuid.UUID, id string) (*models.LikeState, error) {
	const op = "service/content/ToggleContentLike"

	lg := log.From(ctx).With("op", op, "content_id", id, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	item, err := s.loadContent(ctx, lg, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !canView(item, caller) {
		lg.Warn("content not visible")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	liked, err := s.toggle(ctx, models.RelationContentLike, caller, item.ID)
	if err != nil {
		lg.Error("storage error on toggle", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	n, err := s.ledger.CountRelations(ctx, models.RelationContentLike, item.ID)
	if err != nil {
		lg.Error("storage error on CountRelations", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.contents.SetLikesCount(ctx, item.ID, n); err != nil {
		s.secondaryFailure(ctx, metrics.EffectRecount, fmt.Errorf("%s: %w", op, err))
	}

	return &models.LikeState{Liked: liked, LikesCount: n}, nil
}

// ListContent — публичная лента опубликованных материалов, новые сверху.
func (s *Service) ListContent(ctx context.Context, f models.ContentFilter, p models.PageParams) (*models.ContentPage, error) {
	const op = "service/content/ListContent"

	lg := log.From(ctx).With("op", op)

	f.Tag = strings.TrimSpace(f.Tag)
	f.Category = strings.TrimSpace(f.Category)
	f.Search = strings.TrimSpace(f.Search)

	page, err := s.contents.ListPublished(ctx, f, s.pageParams(p))
	if err != nil {
		lg.Error("storage error on ListPublished", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return page, nil
}

// ListMyContent — материалы автора в любом статусе.
func (s *Service) ListMyContent(ctx context.Context, caller uuid.UUID, p models.PageParams) (*models.ContentPage, error) {
	const op = "service/content/ListMyContent"

	lg := log.From(ctx).With("op", op, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	page, err := s.contents.ListByAuthor(ctx, caller, s.pageParams(p))
	if err != nil {
		lg.Error("storage error on ListByAuthor", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return page, nil
}

// ListFeatured — небольшая подборка избранного. Читается из кэша, если он подключён.
func (s *Service) ListFeatured(ctx context.Context) ([]models.ContentItem, error) {
	const op = "service/content/ListFeatured"

	lg := log.From(ctx).With("op", op)

	if s.featured != nil {
		items, ok, err := s.featured.Get(ctx)
		if err != nil {
			s.secondaryFailure(ctx, metrics.EffectCache, fmt.Errorf("%s: %w", op, err))
		} else if ok {
			return items, nil
		}
	}

	limit := s.cfg.Limits.Featured
	if limit <= 0 {
		limit = defaultFeatured
	}

	items, err := s.contents.ListFeatured(ctx, limit)
	if err != nil {
		lg.Error("storage error on ListFeatured", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if s.featured != nil {
		if err := s.featured.Set(ctx, items, s.cfg.Redis.FeaturedTTL); err != nil {
			s.secondaryFailure(ctx, metrics.EffectCache, fmt.Errorf("%s: %w", op, err))
		}
	}

	return items, nil
}

func (s *Service) invalidateFeatured(ctx context.Context) {
	if s.featured == nil {
		return
	}

	if err := s.featured.Invalidate(ctx); err != nil {
		s.secondaryFailure(ctx, metrics.EffectCache, err)
	}
}

// loadContent читает материал и переводит ошибки стоража в сервисные.
func (s *Service) loadContent(ctx context.Context, lg *slog.Logger, id string) (*models.ContentItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		lg.Warn("invalid argument: empty content id")
		return nil, invalid("id", "is required")
	}

	item, err := s.contents.ContentByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("content not found")
			return nil, ErrNotFound
		}

		lg.Error("storage error on ContentByID", "err", err)
		return nil, ErrInternal
	}

	return item, nil
}

// canView: опубликованное видно всем, остальное только автору.
func canView(item *models.ContentItem, caller uuid.UUID) bool {
	return item.IsPublished() || (caller != uuid.Nil && item.AuthorID == caller)
}

func mediaID(m *models.Media) string {
	if m.ID != "" {
		return m.ID
	}

	return models.MediaIDFromURL(m.URL)
}

func validateTitle(kind models.Kind, raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", invalid("title", "is required")
	}

	limit := maxTitleArticle
	if kind == models.KindPost {
		limit = maxTitlePost
	}

	if utf8.RuneCountInString(title) > limit {
		return "", invalid("title", fmt.Sprintf("must be at most %d characters", limit))
	}

	return title, nil
}

func validateBody(kind models.Kind, b models.Body) error {
	if kind == models.KindPost {
		if b.IsRich() {
			return invalid("body", "must be plain text for a post")
		}

		if strings.TrimSpace(b.Text) == "" {
			return invalid("body", "is required")
		}

		return nil
	}

	if !b.IsRich() {
		return invalid("body", "must contain a blocks array")
	}

	if len(b.Blocks) == 0 {
		return invalid("body", "is required")
	}

	for i, bl := range b.Blocks {
		if strings.TrimSpace(bl.Type) == "" {
			return invalid("body", fmt.Sprintf("block %d has no type", i))
		}
	}

	return nil
}

func validateMeta(category, meta, excerpt string) (string, string, string, error) {
	category = strings.TrimSpace(category)
	if utf8.RuneCountInString(category) > maxCategory {
		return "", "", "", invalid("category", fmt.Sprintf("must be at most %d characters", maxCategory))
	}

	meta = strings.TrimSpace(meta)
	if utf8.RuneCountInString(meta) > maxMetaDescription {
		return "", "", "", invalid("metaDescription", fmt.Sprintf("must be at most %d characters", maxMetaDescription))
	}

	excerpt = strings.TrimSpace(excerpt)
	if utf8.RuneCountInString(excerpt) > excerptRunes {
		return "", "", "", invalid("excerpt", fmt.Sprintf("must be at most %d characters", excerptRunes))
	}

	return category, meta, excerpt, nil
}

// normalizeTags обрезает пробелы, убирает пустые и повторяющиеся теги.
func normalizeTags(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))

	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}

		if utf8.RuneCountInString(t) > maxTagLen {
			return nil, invalid("tags", fmt.Sprintf("tag must be at most %d characters", maxTagLen))
		}

		if _, ok := seen[t]; ok {
			continue
		}

		seen[t] = struct{}{}
		out = append(out, t)
	}

	if len(out) > maxTags {
		return nil, invalid("tags", fmt.Sprintf("at most %d tags allowed", maxTags))
	}

	return out, nil
}
