// dto описывает JSON-представление запросов и ответов REST API blog-service.
package dto

import (
	"time"

	"github.com/pribylovaa/go-blog-service/internal/models"
)

// Auth.

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,notblank,max=50"`
	Password string `json:"password" validate:"required,min=5,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest — смена пароля; длина нового проверяется сервисом.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

type AuthResponse struct {
	User        User      `json:"user"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Users.

// User — профиль пользователя. Email отдаётся только владельцу.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email,omitempty"`
	Name           string    `json:"name"`
	Bio            string    `json:"bio"`
	Avatar         string    `json:"avatar"`
	FollowersCount int64     `json:"followersCount"`
	FollowingCount int64     `json:"followingCount"`
	PublishedCount *int64    `json:"publishedCount,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UpdateProfileRequest — поля опциональные; "avatar": "" снимает аватар.
type UpdateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,notblank,max=50"`
	Bio    *string `json:"bio" validate:"omitempty,max=500"`
	Avatar *string `json:"avatar"`
}

type FollowResponse struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
}

type IsFollowingResponse struct {
	Following bool `json:"following"`
}

// Contents.

type Media struct {
	URL string `json:"url"`
	ID  string `json:"id,omitempty"`
}

type Content struct {
	ID              string      `json:"id"`
	Kind            string      `json:"kind"`
	AuthorID        string      `json:"authorId"`
	Title           string      `json:"title"`
	Slug            string      `json:"slug"`
	Body            models.Body `json:"body"`
	CoverImage      *Media      `json:"coverImage,omitempty"`
	Status          string      `json:"status"`
	PublishedAt     *time.Time  `json:"publishedAt,omitempty"`
	Tags            []string    `json:"tags"`
	Category        string      `json:"category,omitempty"`
	MetaDescription string      `json:"metaDescription,omitempty"`
	Excerpt         string      `json:"excerpt"`
	ReadingTime     int32       `json:"readingTime"`
	Views           int64       `json:"views"`
	LikesCount      int64       `json:"likesCount"`
	CommentsCount   int64       `json:"commentsCount"`
	Featured        bool        `json:"featured"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// CreateContentRequest — coverImage: data URI (загружается) или http(s) URL.
type CreateContentRequest struct {
	Kind            string      `json:"kind" validate:"omitempty,oneof=article post"`
	Title           string      `json:"title" validate:"required,notblank"`
	Body            models.Body `json:"body"`
	CoverImage      string      `json:"coverImage"`
	Status          string      `json:"status" validate:"omitempty,oneof=draft published archived"`
	Tags            []string    `json:"tags" validate:"max=20"`
	Category        string      `json:"category" validate:"max=50"`
	MetaDescription string      `json:"metaDescription" validate:"max=160"`
	Excerpt         string      `json:"excerpt"`
	Featured        bool        `json:"featured"`
}

// UpdateContentRequest — частичное обновление; отсутствующее поле не меняется.
type UpdateContentRequest struct {
	Title           *string      `json:"title" validate:"omitempty,notblank"`
	Body            *models.Body `json:"body"`
	CoverImage      *string      `json:"coverImage"`
	Status          *string      `json:"status" validate:"omitempty,oneof=draft published archived"`
	Tags            *[]string    `json:"tags" validate:"omitempty,max=20"`
	Category        *string      `json:"category" validate:"omitempty,max=50"`
	MetaDescription *string      `json:"metaDescription" validate:"omitempty,max=160"`
	Excerpt         *string      `json:"excerpt"`
	Featured        *bool        `json:"featured"`
}

type LikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

// Comments.

type Comment struct {
	ID           string    `json:"id"`
	ContentID    string    `json:"contentId"`
	ParentID     string    `json:"parentId,omitempty"`
	AuthorID     string    `json:"authorId"`
	Text         string    `json:"text"`
	Level        int32     `json:"level"`
	RepliesCount int32     `json:"repliesCount"`
	LikesCount   int64     `json:"likesCount"`
	IsDeleted    bool      `json:"isDeleted"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Thread struct {
	Comment
	Replies []Comment `json:"replies"`
}

type CreateCommentRequest struct {
	Text     string `json:"text" validate:"required,notblank,max=1000"`
	ParentID string `json:"parentId" validate:"omitempty,hexadecimal,len=24"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,notblank,max=1000"`
}

// Bookmarks.

type BookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type Bookmark struct {
	Content      Content   `json:"content"`
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}

// Uploads.

// UploadImageRequest — JSON-вариант загрузки: data URI или base64.
type UploadImageRequest struct {
	Image string `json:"image" validate:"required"`
}
