package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddRelation вставляет отношение. Уникальный индекс (kind, user_id, target_id)
// превращает повторную вставку в storage.ErrAlreadyExists.
func (m *Mongo) AddRelation(ctx context.Context, r models.Relation) error {
	const op = "storage/mongo/AddRelation"

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := m.relations.InsertOne(ctx, relationDoc{
		Kind:      string(r.Kind),
		UserID:    r.UserID.String(),
		TargetID:  r.TargetID,
		CreatedAt: toMS(r.CreatedAt),
	})
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RemoveRelation удаляет отношение. Нет отношения — storage.ErrNotFound.
func (m *Mongo) RemoveRelation(ctx context.Context, kind models.RelationKind, userID uuid.UUID, targetID string) error {
	const op = "storage/mongo/RemoveRelation"

	res, err := m.relations.DeleteOne(ctx, relationKey(kind, userID, targetID))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (m *Mongo) HasRelation(ctx context.Context, kind models.RelationKind, userID uuid.UUID, targetID string) (bool, error) {
	const op = "storage/mongo/HasRelation"

	n, err := m.relations.CountDocuments(ctx, relationKey(kind, userID, targetID), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n > 0, nil
}

// CountRelations — свежий подсчёт отношений к цели; источник истины для кэш-счётчиков.
func (m *Mongo) CountRelations(ctx context.Context, kind models.RelationKind, targetID string) (int64, error) {
	const op = "storage/mongo/CountRelations"

	n, err := m.relations.CountDocuments(ctx, bson.D{
		{Key: "kind", Value: string(kind)},
		{Key: "target_id", Value: targetID},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// ListByUser — отношения пользователя, created_at DESC, и их общее число.
func (m *Mongo) ListByUser(ctx context.Context, kind models.RelationKind, userID uuid.UUID, p models.PageParams) ([]models.Relation, int64, error) {
	const op = "storage/mongo/ListByUser"

	p = pageOrDefault(m.cfg, p)
	filter := bson.D{
		{Key: "kind", Value: string(kind)},
		{Key: "user_id", Value: userID.String()},
	}

	total, err := m.relations.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	cur, err := m.relations.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(p.Offset()).
		SetLimit(int64(p.Limit)))
	if err != nil {
		return nil, 0, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]models.Relation, 0)
	for cur.Next(ctx) {
		var d relationDoc
		if err := cur.Decode(&d); err != nil {
			return nil, 0, fmt.Errorf("%s: decode: %w", op, err)
		}

		out = append(out, relationFromDoc(d))
	}

	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return out, total, nil
}

// DeleteByTargets удаляет все отношения данного типа к перечисленным целям.
func (m *Mongo) DeleteByTargets(ctx context.Context, kind models.RelationKind, targetIDs []string) (int64, error) {
	const op = "storage/mongo/DeleteByTargets"

	if len(targetIDs) == 0 {
		return 0, nil
	}

	res, err := m.relations.DeleteMany(ctx, bson.D{
		{Key: "kind", Value: string(kind)},
		{Key: "target_id", Value: bson.D{{Key: "$in", Value: targetIDs}}},
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return res.DeletedCount, nil
}

func relationKey(kind models.RelationKind, userID uuid.UUID, targetID string) bson.D {
	return bson.D{
		{Key: "kind", Value: string(kind)},
		{Key: "user_id", Value: userID.String()},
		{Key: "target_id", Value: targetID},
	}
}
