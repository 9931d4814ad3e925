package models

import (
	"time"

	"github.com/google/uuid"
)

// CommentStatus — состояние комментария. Удаление мягкое.
type CommentStatus string

const (
	CommentNormal  CommentStatus = "normal"
	CommentDeleted CommentStatus = "deleted"
)

// TombstoneText заменяет текст удалённого комментария.
const TombstoneText = "[Comment deleted]"

// Comment — внутренняя доменная модель комментария (MongoDB).
// Важно:
//   - ID/ContentID/ParentID — ObjectID в hex-виде; ParentID == "" у корня;
//   - Level — глубина (корень = 0), ограничивается cfg.Limits.MaxDepth;
//   - RepliesCount — количество прямых ответов, включая удалённые;
//   - удалённый комментарий сохраняет id и позицию в ветке, текст — TombstoneText.
type Comment struct {
	ID           string
	ContentID    string
	ParentID     string
	AuthorID     uuid.UUID
	Text         string
	Level        int32
	RepliesCount int32
	LikesCount   int64
	Status       CommentStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDeleted — комментарий мягко удалён.
func (c *Comment) IsDeleted() bool {
	return c.Status == CommentDeleted
}

// Thread — корневой комментарий с ответами (от старых к новым).
type Thread struct {
	Comment
	Replies []Comment
}

// ThreadPage — курсорная страница веток.
type ThreadPage struct {
	Items         []Thread
	NextPageToken string
	// PageSize — применённый размер страницы (после умолчания и ограничения).
	PageSize int32
}

// CommentPage — курсорная страница плоского списка комментариев.
type CommentPage struct {
	Items         []Comment
	NextPageToken string
}
