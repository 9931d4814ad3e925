package models

import (
	"time"

	"github.com/google/uuid"
)

// RelationKind — тип отношения в реестре вовлечённости.
type RelationKind string

const (
	RelationContentLike RelationKind = "content_like"
	RelationCommentLike RelationKind = "comment_like"
	RelationBookmark    RelationKind = "bookmark"
)

// Relation — пара (пользователь, цель) заданного типа. Уникальна по (Kind, UserID, TargetID).
type Relation struct {
	Kind      RelationKind
	UserID    uuid.UUID
	TargetID  string
	CreatedAt time.Time
}

// Bookmark — закладка вместе с материалом, на который она указывает.
type Bookmark struct {
	Content   ContentItem
	CreatedAt time.Time
}

// BookmarkPage — страница закладок (новые сначала).
type BookmarkPage struct {
	Items []Bookmark
	PageInfo
}

// BookmarkState — результат переключения закладки.
type BookmarkState struct {
	Bookmarked bool
}
