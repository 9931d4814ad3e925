package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateComment создаёт комментарий (корневой или ответ).
//   - Для корня выставляет Level=0.
//   - Для ответа проверяет, что родитель существует и принадлежит тому же материалу,
//     Level = parent.Level + 1 с ограничением cfg.Limits.MaxDepth.
//
// Вставка — единственная запись: replies_count родителя пересчитывает SyncRepliesCount.
func (m *Mongo) CreateComment(ctx context.Context, comm models.Comment) (*models.Comment, error) {
	const op = "storage/mongo/CreateComment"

	now := toMS(time.Now())
	comm.CreatedAt = now
	comm.UpdatedAt = now
	comm.RepliesCount = 0
	comm.LikesCount = 0
	comm.Status = models.CommentNormal
	comm.ParentID = strings.TrimSpace(comm.ParentID)

	if comm.ParentID == "" {
		comm.Level = 0
	} else {
		oid, err := primitive.ObjectIDFromHex(comm.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
		}

		var parent commentDoc
		if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&parent); err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
			}

			return nil, fmt.Errorf("%s: find parent: %w", op, err)
		}

		// Родитель из другого материала для этого материала не существует.
		if parent.ContentID != comm.ContentID {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
		}

		if parent.Level+1 > m.cfg.Limits.MaxDepth {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrMaxDepthExceeded)
		}

		comm.Level = parent.Level + 1
	}

	res, err := m.comments.InsertOne(ctx, commentToDoc(comm))
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	comm.ID = oid.Hex()
	return &comm, nil
}

// CommentByID возвращает комментарий по идентификатору, в том числе удалённый.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc commentDoc
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := commentFromDoc(doc)
	return &out, nil
}

// UpdateCommentText меняет текст только у неудалённого комментария.
func (m *Mongo) UpdateCommentText(ctx context.Context, id, text string) (*models.Comment, error) {
	const op = "storage/mongo/UpdateCommentText"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc commentDoc
	err = m.comments.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "status", Value: string(models.CommentNormal)}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "text", Value: text},
			{Key: "updated_at", Value: toMS(time.Now())},
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := commentFromDoc(doc)
	return &out, nil
}

// SoftDeleteComment помечает комментарий как удалённый и заменяет текст надгробием.
// Повторное удаление не ошибка: возвращается false.
func (m *Mongo) SoftDeleteComment(ctx context.Context, id string) (bool, error) {
	const op = "storage/mongo/SoftDeleteComment"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.comments.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "status", Value: string(models.CommentNormal)}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: string(models.CommentDeleted)},
			{Key: "text", Value: models.TombstoneText},
			{Key: "updated_at", Value: toMS(time.Now())},
		}}},
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount > 0 {
		return true, nil
	}

	n, err := m.comments.CountDocuments(ctx, bson.D{{Key: "_id", Value: oid}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return false, nil
}

// ListRoots возвращает страницу видимых корневых комментариев материала:
// неудалённые, а также удалённые, у которых есть ответы.
// Сортировка: created_at DESC, _id DESC.
// При некорректном page_token — storage.ErrInvalidCursor.
func (m *Mongo) ListRoots(ctx context.Context, contentID string, param models.ListParams) (*models.CommentPage, error) {
	const op = "storage/mongo/ListRoots"

	limit := limitOrDefault(m.cfg, param.PageSize)

	and := bson.A{
		bson.D{{Key: "content_id", Value: strings.TrimSpace(contentID)}},
		bson.D{{Key: "parent_id", Value: ""}},
	}

	// Удалённый корень виден, пока у него есть ответы. Решение принимается
	// по самим ответам: кэш replies_count может отставать.
	parents, err := m.parentsWithReplies(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	visible := bson.A{bson.D{{Key: "status", Value: string(models.CommentNormal)}}}
	if len(parents) > 0 {
		visible = append(visible, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: parents}}}})
	}
	and = append(and, bson.D{{Key: "$or", Value: visible}})

	// Курсор "меньше" для DESC сортировки.
	if strings.TrimSpace(param.PageToken) != "" {
		t, oid, decErr := decodeCursor(param.PageToken)
		if decErr != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCursor)
		}

		and = append(and, bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "created_at", Value: bson.D{{Key: "$lt", Value: t}}}},
			bson.D{
				{Key: "created_at", Value: t},
				{Key: "_id", Value: bson.D{{Key: "$lt", Value: oid}}},
			},
		}}})
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	docs, err := m.findComments(ctx, bson.D{{Key: "$and", Value: and}}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]models.Comment, 0, len(docs))
	for _, d := range docs {
		items = append(items, commentFromDoc(d))
	}

	// Следующая страница возможна только если текущая заполнена целиком.
	var next string
	if n := len(docs); n > 0 && int64(n) == limit {
		last := docs[n-1]
		next = encodeCursor(last.CreatedAt, last.ID)
	}

	return &models.CommentPage{
		Items:         items,
		NextPageToken: next,
	}, nil
}

// RepliesOf возвращает ответы на перечисленные комментарии, включая удалённые.
// Внутри родителя: created_at ASC, _id ASC.
func (m *Mongo) RepliesOf(ctx context.Context, parentIDs []string) (map[string][]models.Comment, error) {
	const op = "storage/mongo/RepliesOf"

	out := make(map[string][]models.Comment, len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	docs, err := m.findComments(ctx, bson.D{{Key: "parent_id", Value: bson.D{{Key: "$in", Value: parentIDs}}}}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, d := range docs {
		out[d.ParentID] = append(out[d.ParentID], commentFromDoc(d))
	}

	return out, nil
}

// SyncRepliesCount считает ответы комментария (включая удалённые)
// и записывает результат в replies_count.
func (m *Mongo) SyncRepliesCount(ctx context.Context, parentID string) (int64, error) {
	const op = "storage/mongo/SyncRepliesCount"

	parentID = strings.TrimSpace(parentID)
	oid, err := primitive.ObjectIDFromHex(parentID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	n, err := m.comments.CountDocuments(ctx, bson.D{{Key: "parent_id", Value: parentID}})
	if err != nil {
		return 0, fmt.Errorf("%s: count: %w", op, err)
	}

	res, err := m.comments.UpdateByID(ctx, oid, bson.D{
		{Key: "$set", Value: bson.D{{Key: "replies_count", Value: n}}},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return n, nil
}

// parentsWithReplies — ObjectID комментариев материала, у которых есть ответы.
func (m *Mongo) parentsWithReplies(ctx context.Context, contentID string) (bson.A, error) {
	raw, err := m.comments.Distinct(ctx, "parent_id", bson.D{
		{Key: "content_id", Value: strings.TrimSpace(contentID)},
		{Key: "parent_id", Value: bson.D{{Key: "$ne", Value: ""}}},
	})
	if err != nil {
		return nil, fmt.Errorf("distinct parents: %w", err)
	}

	out := make(bson.A, 0, len(raw))
	for _, v := range raw {
		hex, ok := v.(string)
		if !ok {
			continue
		}

		if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
			out = append(out, oid)
		}
	}

	return out, nil
}

// CountActive считает неудалённые комментарии материала.
func (m *Mongo) CountActive(ctx context.Context, contentID string) (int64, error) {
	const op = "storage/mongo/CountActive"

	n, err := m.comments.CountDocuments(ctx, bson.D{
		{Key: "content_id", Value: strings.TrimSpace(contentID)},
		{Key: "status", Value: string(models.CommentNormal)},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// SetCommentLikesCount записывает пересчитанный счётчик лайков комментария.
func (m *Mongo) SetCommentLikesCount(ctx context.Context, id string, n int64) error {
	const op = "storage/mongo/SetCommentLikesCount"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.comments.UpdateByID(ctx, oid, bson.D{
		{Key: "$set", Value: bson.D{{Key: "likes_count", Value: n}}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteByContent физически удаляет все комментарии материала и возвращает их id.
func (m *Mongo) DeleteByContent(ctx context.Context, contentID string) ([]string, error) {
	const op = "storage/mongo/DeleteByContent"

	filter := bson.D{{Key: "content_id", Value: strings.TrimSpace(contentID)}}

	docs, err := m.findComments(ctx, filter, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(docs) == 0 {
		return nil, nil
	}

	if _, err := m.comments.DeleteMany(ctx, filter); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID.Hex())
	}

	return ids, nil
}

func (m *Mongo) findComments(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]commentDoc, error) {
	cur, err := m.comments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	var docs []commentDoc
	for cur.Next(ctx) {
		var d commentDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}

		docs = append(docs, d)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}

	return docs, nil
}
