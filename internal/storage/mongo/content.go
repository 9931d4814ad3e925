package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateContent сохраняет материал. Дубликат slug — storage.ErrAlreadyExists.
func (m *Mongo) CreateContent(ctx context.Context, item models.ContentItem) (*models.ContentItem, error) {
	const op = "storage/mongo/CreateContent"

	now := toMS(time.Now())
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.PublishedAt != nil {
		t := toMS(*item.PublishedAt)
		item.PublishedAt = &t
	}

	res, err := m.contents.InsertOne(ctx, contentToDoc(item))
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	item.ID = oid.Hex()
	return &item, nil
}

// ContentByID возвращает материал по идентификатору.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) ContentByID(ctx context.Context, id string) (*models.ContentItem, error) {
	const op = "storage/mongo/ContentByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return m.findContent(ctx, op, bson.D{{Key: "_id", Value: oid}})
}

// ContentBySlug возвращает материал по slug.
func (m *Mongo) ContentBySlug(ctx context.Context, slug string) (*models.ContentItem, error) {
	const op = "storage/mongo/ContentBySlug"

	return m.findContent(ctx, op, bson.D{{Key: "slug", Value: strings.TrimSpace(slug)}})
}

func (m *Mongo) findContent(ctx context.Context, op string, filter bson.D) (*models.ContentItem, error) {
	var doc contentDoc
	if err := m.contents.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := contentFromDoc(doc)
	return &out, nil
}

// ContentByIDs возвращает найденные материалы; битые и отсутствующие id пропускаются.
func (m *Mongo) ContentByIDs(ctx context.Context, ids []string) (map[string]models.ContentItem, error) {
	const op = "storage/mongo/ContentByIDs"

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id)); err == nil {
			oids = append(oids, oid)
		}
	}

	out := make(map[string]models.ContentItem, len(oids))
	if len(oids) == 0 {
		return out, nil
	}

	items, err := m.findContents(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}}, options.Find())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, it := range items {
		out[it.ID] = it
	}

	return out, nil
}

// UpdateContent применяет частичное обновление ($set только заданных полей).
// Cover с пустым URL снимает обложку.
func (m *Mongo) UpdateContent(ctx context.Context, id string, upd models.ContentUpdate) (*models.ContentItem, error) {
	const op = "storage/mongo/UpdateContent"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	set := bson.D{{Key: "updated_at", Value: toMS(time.Now())}}
	unset := bson.D{}

	if upd.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *upd.Title})
	}
	if upd.Body != nil {
		set = append(set, bson.E{Key: "body", Value: bodyToDoc(*upd.Body)})
	}
	if upd.Cover != nil {
		if upd.Cover.URL == "" {
			unset = append(unset, bson.E{Key: "cover", Value: ""})
		} else {
			set = append(set, bson.E{Key: "cover", Value: mediaDoc{URL: upd.Cover.URL, ID: upd.Cover.ID}})
		}
	}
	if upd.Status != nil {
		set = append(set, bson.E{Key: "status", Value: string(*upd.Status)})
	}
	if upd.PublishedAt != nil {
		set = append(set, bson.E{Key: "published_at", Value: toMS(*upd.PublishedAt)})
	}
	if upd.Tags != nil {
		tags := *upd.Tags
		if tags == nil {
			tags = []string{}
		}
		set = append(set, bson.E{Key: "tags", Value: tags})
	}
	if upd.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *upd.Category})
	}
	if upd.MetaDescription != nil {
		set = append(set, bson.E{Key: "meta_description", Value: *upd.MetaDescription})
	}
	if upd.Excerpt != nil {
		set = append(set, bson.E{Key: "excerpt", Value: *upd.Excerpt})
	}
	if upd.ReadingTime != nil {
		set = append(set, bson.E{Key: "reading_time", Value: *upd.ReadingTime})
	}
	if upd.Featured != nil {
		set = append(set, bson.E{Key: "featured", Value: *upd.Featured})
	}

	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}

	var doc contentDoc
	err = m.contents.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := contentFromDoc(doc)
	return &out, nil
}

// DeleteContent физически удаляет материал. Нет записи — storage.ErrNotFound.
func (m *Mongo) DeleteContent(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteContent"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.contents.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// IncrementViews — атомарный $inc просмотров.
func (m *Mongo) IncrementViews(ctx context.Context, id string) error {
	const op = "storage/mongo/IncrementViews"

	return m.updateContentByID(ctx, op, id, bson.D{
		{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}},
	})
}

// SetLikesCount записывает пересчитанный счётчик лайков.
func (m *Mongo) SetLikesCount(ctx context.Context, id string, n int64) error {
	const op = "storage/mongo/SetLikesCount"

	return m.updateContentByID(ctx, op, id, bson.D{
		{Key: "$set", Value: bson.D{{Key: "likes_count", Value: n}}},
	})
}

// SetCommentsCount записывает пересчитанный счётчик комментариев.
func (m *Mongo) SetCommentsCount(ctx context.Context, id string, n int64) error {
	const op = "storage/mongo/SetCommentsCount"

	return m.updateContentByID(ctx, op, id, bson.D{
		{Key: "$set", Value: bson.D{{Key: "comments_count", Value: n}}},
	})
}

func (m *Mongo) updateContentByID(ctx context.Context, op, id string, update bson.D) error {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.contents.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListPublished — публичная лента: status=published, фильтры по тегу/категории/подстроке заголовка.
// Сортировка: published_at DESC, _id DESC.
func (m *Mongo) ListPublished(ctx context.Context, f models.ContentFilter, p models.PageParams) (*models.ContentPage, error) {
	const op = "storage/mongo/ListPublished"

	filter := bson.D{{Key: "status", Value: string(models.StatusPublished)}}
	if tag := strings.TrimSpace(f.Tag); tag != "" {
		filter = append(filter, bson.E{Key: "tags", Value: tag})
	}
	if cat := strings.TrimSpace(f.Category); cat != "" {
		filter = append(filter, bson.E{Key: "category", Value: cat})
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		filter = append(filter, bson.E{Key: "title", Value: primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}})
	}

	page, err := m.pageContents(ctx, filter, bson.D{{Key: "published_at", Value: -1}, {Key: "_id", Value: -1}}, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// ListByAuthor — материалы автора в любом статусе. Сортировка: created_at DESC.
func (m *Mongo) ListByAuthor(ctx context.Context, authorID uuid.UUID, p models.PageParams) (*models.ContentPage, error) {
	const op = "storage/mongo/ListByAuthor"

	filter := bson.D{{Key: "author_id", Value: authorID.String()}}

	page, err := m.pageContents(ctx, filter, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// ListFeatured — published + featured, новые сначала.
func (m *Mongo) ListFeatured(ctx context.Context, limit int32) ([]models.ContentItem, error) {
	const op = "storage/mongo/ListFeatured"

	filter := bson.D{
		{Key: "status", Value: string(models.StatusPublished)},
		{Key: "featured", Value: true},
	}

	items, err := m.findContents(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limitOrDefault(m.cfg, limit)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// CountPublishedByAuthor — число опубликованных материалов автора.
func (m *Mongo) CountPublishedByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	const op = "storage/mongo/CountPublishedByAuthor"

	n, err := m.contents.CountDocuments(ctx, bson.D{
		{Key: "author_id", Value: authorID.String()},
		{Key: "status", Value: string(models.StatusPublished)},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (m *Mongo) pageContents(ctx context.Context, filter, sort bson.D, p models.PageParams) (*models.ContentPage, error) {
	p = pageOrDefault(m.cfg, p)

	total, err := m.contents.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	items, err := m.findContents(ctx, filter, options.Find().
		SetSort(sort).
		SetSkip(p.Offset()).
		SetLimit(int64(p.Limit)))
	if err != nil {
		return nil, err
	}

	return &models.ContentPage{
		Items:    items,
		PageInfo: models.PageInfo{Page: p.Page, Limit: p.Limit, Total: total},
	}, nil
}

// DeleteByAuthor удаляет все материалы автора и возвращает удалённые записи,
// чтобы вызывающий мог зачистить их медиа, комментарии и связи.
// Удаляются только найденные записи: материал, созданный параллельно, останется.
func (m *Mongo) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.ContentItem, error) {
	const op = "storage/mongo/DeleteByAuthor"

	items, err := m.findContents(ctx, bson.D{{Key: "author_id", Value: authorID.String()}}, options.Find())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(items) == 0 {
		return nil, nil
	}

	oids := make(bson.A, 0, len(items))
	for _, it := range items {
		oid, err := primitive.ObjectIDFromHex(it.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: id %q: %w", op, it.ID, err)
		}
		oids = append(oids, oid)
	}

	if _, err := m.contents.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func (m *Mongo) findContents(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]models.ContentItem, error) {
	cur, err := m.contents.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]models.ContentItem, 0)
	for cur.Next(ctx) {
		var doc contentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}

		items = append(items, contentFromDoc(doc))
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}

	return items, nil
}
