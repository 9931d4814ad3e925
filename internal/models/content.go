package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind — вариант материала. Статья и пост — один агрегат с тегом.
type Kind string

const (
	KindArticle Kind = "article"
	KindPost    Kind = "post"
)

// Valid проверяет, что вариант известен.
func (k Kind) Valid() bool {
	return k == KindArticle || k == KindPost
}

// Status — жизненный цикл материала.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

// ContentItem — внутренняя доменная модель материала (MongoDB).
// Важно:
//   - ID — ObjectID MongoDB в hex-виде;
//   - AuthorID неизменен после создания;
//   - Slug генерируется один раз при создании и больше не меняется;
//   - Excerpt/ReadingTime/PublishedAt — производные поля, считает сервис;
//   - LikesCount/CommentsCount — кэш, пересчитывается из реестра и комментариев;
//     клиент записать их не может.
type ContentItem struct {
	ID              string
	Kind            Kind
	AuthorID        uuid.UUID
	Title           string
	Slug            string
	Body            Body
	Cover           *Media
	Status          Status
	PublishedAt     *time.Time
	Tags            []string
	Category        string
	MetaDescription string
	Excerpt         string
	ReadingTime     int32
	Views           int64
	LikesCount      int64
	CommentsCount   int64
	Featured        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPublished — виден ли материал публично.
func (c *ContentItem) IsPublished() bool {
	return c.Status == StatusPublished
}

// ContentUpdate — частичное обновление материала: nil-поле не меняется.
// Cover здесь — уже сохранённое медиа; загрузку выполняет сервис.
type ContentUpdate struct {
	Title           *string
	Body            *Body
	Cover           *Media
	Status          *Status
	PublishedAt     *time.Time
	Tags            *[]string
	Category        *string
	MetaDescription *string
	Excerpt         *string
	ReadingTime     *int32
	Featured        *bool
}

// ContentFilter — фильтры публичной ленты.
// Search — подстрока заголовка без учёта регистра.
type ContentFilter struct {
	Tag      string
	Category string
	Search   string
}

// ContentPage — страница материалов.
type ContentPage struct {
	Items []ContentItem
	PageInfo
}

// LikeState — результат переключения лайка.
type LikeState struct {
	Liked      bool
	LikesCount int64
}
