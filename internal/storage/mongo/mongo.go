// Package mongo реализует хранилища контента, комментариев и реестра вовлечённости на MongoDB.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/go-blog-service/internal/config"
	"github.com/pribylovaa/go-blog-service/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	contentsCollection  = "contents"
	commentsCollection  = "comments"
	relationsCollection = "relations"
	defaultDBName       = "blog"
)

// Mongo - тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg       *config.Config
	client    *mongodriver.Client
	db        *mongodriver.Database
	contents  *mongodriver.Collection
	comments  *mongodriver.Collection
	relations *mongodriver.Collection
}

var (
	_ storage.ContentStorage    = (*Mongo)(nil)
	_ storage.CommentsStorage   = (*Mongo)(nil)
	_ storage.EngagementStorage = (*Mongo)(nil)
)

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.Mongo.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.Mongo.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(cfg.Mongo.URL))

	m := &Mongo{
		cfg:       cfg,
		client:    cli,
		db:        db,
		contents:  db.Collection(contentsCollection),
		comments:  db.Collection(commentsCollection),
		relations: db.Collection(relationsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping используется readiness-пробой.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes создаёт индексы всех коллекций.
// contents:
//   - уникальный slug;
//   - публичная лента: status + published_at(desc);
//   - материалы автора: author_id + created_at(desc);
//   - избранное: status + featured + published_at(desc).
//
// comments:
//   - корни материала: content_id + parent_id + created_at(desc);
//   - ответы в ветке: parent_id + created_at(asc);
//   - пересчёт: content_id + status.
//
// relations:
//   - уникальность отношения: kind + user_id + target_id;
//   - подсчёт по цели: kind + target_id;
//   - списки пользователя: kind + user_id + created_at(desc).
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	plan := []struct {
		coll   *mongodriver.Collection
		models []mongodriver.IndexModel
	}{
		{m.contents, []mongodriver.IndexModel{
			{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetName("slug_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}},
				Options: options.Index().SetName("status_published_desc"),
			},
			{
				Keys:    bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("author_created_desc"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "featured", Value: 1}, {Key: "published_at", Value: -1}},
				Options: options.Index().SetName("status_featured_published_desc"),
			},
		}},
		{m.comments, []mongodriver.IndexModel{
			{
				Keys:    bson.D{{Key: "content_id", Value: 1}, {Key: "parent_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("content_parent_created_desc"),
			},
			{
				Keys:    bson.D{{Key: "parent_id", Value: 1}, {Key: "created_at", Value: 1}},
				Options: options.Index().SetName("parent_created_asc"),
			},
			{
				Keys:    bson.D{{Key: "content_id", Value: 1}, {Key: "status", Value: 1}},
				Options: options.Index().SetName("content_status"),
			},
		}},
		{m.relations, []mongodriver.IndexModel{
			{
				Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "user_id", Value: 1}, {Key: "target_id", Value: 1}},
				Options: options.Index().SetName("kind_user_target_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "target_id", Value: 1}},
				Options: options.Index().SetName("kind_target"),
			},
			{
				Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("kind_user_created_desc"),
			},
		}},
	}

	for _, p := range plan {
		if _, err := p.coll.Indexes().CreateMany(ctx, p.models); err != nil {
			return fmt.Errorf("mongo ensure indexes (%s): %w", p.coll.Name(), err)
		}
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает разумное значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
