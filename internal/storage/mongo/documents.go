package mongo

import (
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Документы коллекций. Доменные модели не знают про bson,
// поэтому адаптер конвертирует их сам.

type mediaDoc struct {
	URL string `bson:"url"`
	ID  string `bson:"id"`
}

type blockDoc struct {
	Type string `bson:"type"`
	Data bson.M `bson:"data,omitempty"`
}

// bodyDoc хранит оба варианта тела; Rich отличает пустой массив блоков от простого текста.
type bodyDoc struct {
	Rich   bool       `bson:"rich"`
	Text   string     `bson:"text,omitempty"`
	Blocks []blockDoc `bson:"blocks,omitempty"`
}

type contentDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Kind            string             `bson:"kind"`
	AuthorID        string             `bson:"author_id"`
	Title           string             `bson:"title"`
	Slug            string             `bson:"slug"`
	Body            bodyDoc            `bson:"body"`
	Cover           *mediaDoc          `bson:"cover,omitempty"`
	Status          string             `bson:"status"`
	PublishedAt     *time.Time         `bson:"published_at,omitempty"`
	Tags            []string           `bson:"tags"`
	Category        string             `bson:"category"`
	MetaDescription string             `bson:"meta_description"`
	Excerpt         string             `bson:"excerpt"`
	ReadingTime     int32              `bson:"reading_time"`
	Views           int64              `bson:"views"`
	LikesCount      int64              `bson:"likes_count"`
	CommentsCount   int64              `bson:"comments_count"`
	Featured        bool               `bson:"featured"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

type commentDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ContentID    string             `bson:"content_id"`
	ParentID     string             `bson:"parent_id"`
	AuthorID     string             `bson:"author_id"`
	Text         string             `bson:"text"`
	Level        int32              `bson:"level"`
	RepliesCount int32              `bson:"replies_count"`
	LikesCount   int64              `bson:"likes_count"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type relationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Kind      string             `bson:"kind"`
	UserID    string             `bson:"user_id"`
	TargetID  string             `bson:"target_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func bodyToDoc(b models.Body) bodyDoc {
	if !b.IsRich() {
		return bodyDoc{Text: b.Text}
	}

	out := bodyDoc{Rich: true, Blocks: make([]blockDoc, 0, len(b.Blocks))}
	for _, bl := range b.Blocks {
		out.Blocks = append(out.Blocks, blockDoc{Type: bl.Type, Data: bson.M(bl.Data)})
	}

	return out
}

func bodyFromDoc(d bodyDoc) models.Body {
	if !d.Rich {
		return models.Body{Text: d.Text}
	}

	out := models.Body{Blocks: make([]models.Block, 0, len(d.Blocks))}
	for _, bl := range d.Blocks {
		data, _ := normalize(bl.Data).(map[string]any)
		out.Blocks = append(out.Blocks, models.Block{Type: bl.Type, Data: data})
	}

	return out
}

// normalize приводит значения, декодированные драйвером в interface{},
// к обычным map[string]any / []any, чтобы их можно было отдать в JSON и разобрать сервисом.
func normalize(v any) any {
	switch x := v.(type) {
	case bson.M:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = normalize(vv)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = normalize(vv)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, 0, len(x))
		for _, vv := range x {
			out = append(out, normalize(vv))
		}
		return out
	case []any:
		out := make([]any, 0, len(x))
		for _, vv := range x {
			out = append(out, normalize(vv))
		}
		return out
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case primitive.DateTime:
		return x.Time().UTC()
	default:
		return v
	}
}

func contentToDoc(c models.ContentItem) contentDoc {
	d := contentDoc{
		Kind:            string(c.Kind),
		AuthorID:        c.AuthorID.String(),
		Title:           c.Title,
		Slug:            c.Slug,
		Body:            bodyToDoc(c.Body),
		Status:          string(c.Status),
		PublishedAt:     c.PublishedAt,
		Tags:            c.Tags,
		Category:        c.Category,
		MetaDescription: c.MetaDescription,
		Excerpt:         c.Excerpt,
		ReadingTime:     c.ReadingTime,
		Views:           c.Views,
		LikesCount:      c.LikesCount,
		CommentsCount:   c.CommentsCount,
		Featured:        c.Featured,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}

	if d.Tags == nil {
		d.Tags = []string{}
	}

	if c.Cover != nil {
		d.Cover = &mediaDoc{URL: c.Cover.URL, ID: c.Cover.ID}
	}

	return d
}

func contentFromDoc(d contentDoc) models.ContentItem {
	c := models.ContentItem{
		ID:              d.ID.Hex(),
		Kind:            models.Kind(d.Kind),
		AuthorID:        parseUUID(d.AuthorID),
		Title:           d.Title,
		Slug:            d.Slug,
		Body:            bodyFromDoc(d.Body),
		Status:          models.Status(d.Status),
		Tags:            d.Tags,
		Category:        d.Category,
		MetaDescription: d.MetaDescription,
		Excerpt:         d.Excerpt,
		ReadingTime:     d.ReadingTime,
		Views:           d.Views,
		LikesCount:      d.LikesCount,
		CommentsCount:   d.CommentsCount,
		Featured:        d.Featured,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}

	if d.PublishedAt != nil {
		t := d.PublishedAt.UTC()
		c.PublishedAt = &t
	}

	if d.Cover != nil {
		c.Cover = &models.Media{URL: d.Cover.URL, ID: d.Cover.ID}
	}

	return c
}

func commentToDoc(c models.Comment) commentDoc {
	return commentDoc{
		ContentID:    c.ContentID,
		ParentID:     c.ParentID,
		AuthorID:     c.AuthorID.String(),
		Text:         c.Text,
		Level:        c.Level,
		RepliesCount: c.RepliesCount,
		LikesCount:   c.LikesCount,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func commentFromDoc(d commentDoc) models.Comment {
	return models.Comment{
		ID:           d.ID.Hex(),
		ContentID:    d.ContentID,
		ParentID:     d.ParentID,
		AuthorID:     parseUUID(d.AuthorID),
		Text:         d.Text,
		Level:        d.Level,
		RepliesCount: d.RepliesCount,
		LikesCount:   d.LikesCount,
		Status:       models.CommentStatus(d.Status),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

func relationFromDoc(d relationDoc) models.Relation {
	return models.Relation{
		Kind:      models.RelationKind(d.Kind),
		UserID:    parseUUID(d.UserID),
		TargetID:  d.TargetID,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// parseUUID — в коллекциях UUID хранится строкой; битое значение даёт uuid.Nil.
func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}

	return id
}
