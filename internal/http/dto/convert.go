package dto

import (
	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/service"
)

// UserFromDomain конвертирует пользователя; withEmail — ответ владельцу.
func UserFromDomain(u *models.User, withEmail bool) User {
	out := User{
		ID:             u.ID.String(),
		Name:           u.Name,
		Bio:            u.Bio,
		Avatar:         u.Avatar,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		CreatedAt:      u.CreatedAt,
	}

	if withEmail {
		out.Email = u.Email
	}

	return out
}

func ProfileFromDomain(p *models.Profile, withEmail bool) User {
	out := UserFromDomain(&p.User, withEmail)
	published := p.PublishedCount
	out.PublishedCount = &published

	return out
}

func UsersFromDomain(items []models.User) []User {
	out := make([]User, 0, len(items))
	for i := range items {
		out = append(out, UserFromDomain(&items[i], false))
	}

	return out
}

func AuthFromDomain(u *models.User, t *models.Token) AuthResponse {
	return AuthResponse{
		User:        UserFromDomain(u, true),
		AccessToken: t.AccessToken,
		ExpiresAt:   t.ExpiresAt,
	}
}

func (r *UpdateProfileRequest) ToInput() service.UpdateProfileInput {
	return service.UpdateProfileInput{Name: r.Name, Bio: r.Bio, Avatar: r.Avatar}
}

func FollowFromDomain(following bool, c *models.FollowCounts) FollowResponse {
	return FollowResponse{
		Following:      following,
		FollowersCount: c.FollowersCount,
		FollowingCount: c.FollowingCount,
	}
}

func MediaFromDomain(m *models.Media) *Media {
	if m == nil || m.URL == "" {
		return nil
	}

	return &Media{URL: m.URL, ID: m.ID}
}

func ContentFromDomain(c *models.ContentItem) Content {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}

	return Content{
		ID:              c.ID,
		Kind:            string(c.Kind),
		AuthorID:        c.AuthorID.String(),
		Title:           c.Title,
		Slug:            c.Slug,
		Body:            c.Body,
		CoverImage:      MediaFromDomain(c.Cover),
		Status:          string(c.Status),
		PublishedAt:     c.PublishedAt,
		Tags:            tags,
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
}

func ContentsFromDomain(items []models.ContentItem) []Content {
	out := make([]Content, 0, len(items))
	for i := range items {
		out = append(out, ContentFromDomain(&items[i]))
	}

	return out
}

// ToInput переносит запрос в сервисный ввод; автор берётся из токена.
func (r *CreateContentRequest) ToInput(author uuid.UUID) service.CreateContentInput {
	return service.CreateContentInput{
		AuthorID:        author,
		Kind:            models.Kind(r.Kind),
		Title:           r.Title,
		Body:            r.Body,
		Cover:           r.CoverImage,
		Status:          models.Status(r.Status),
		Tags:            r.Tags,
		Category:        r.Category,
		MetaDescription: r.MetaDescription,
		Excerpt:         r.Excerpt,
		Featured:        r.Featured,
	}
}

func (r *UpdateContentRequest) ToInput() service.UpdateContentInput {
	in := service.UpdateContentInput{
		Title:           r.Title,
		Body:            r.Body,
		Cover:           r.CoverImage,
		Tags:            r.Tags,
		Category:        r.Category,
		MetaDescription: r.MetaDescription,
		Excerpt:         r.Excerpt,
		Featured:        r.Featured,
	}

	if r.Status != nil {
		st := models.Status(*r.Status)
		in.Status = &st
	}

	return in
}

func LikeFromDomain(l *models.LikeState) LikeResponse {
	return LikeResponse{Liked: l.Liked, LikesCount: l.LikesCount}
}

func CommentFromDomain(c *models.Comment) Comment {
	return Comment{
		ID:           c.ID,
		ContentID:    c.ContentID,
		ParentID:     c.ParentID,
		AuthorID:     c.AuthorID.String(),
		Text:         c.Text,
		Level:        c.Level,
		RepliesCount: c.RepliesCount,
		LikesCount:   c.LikesCount,
		IsDeleted:    c.IsDeleted(),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func ThreadsFromDomain(items []models.Thread) []Thread {
	out := make([]Thread, 0, len(items))
	for i := range items {
		th := Thread{
			Comment: CommentFromDomain(&items[i].Comment),
			Replies: make([]Comment, 0, len(items[i].Replies)),
		}

		for j := range items[i].Replies {
			th.Replies = append(th.Replies, CommentFromDomain(&items[i].Replies[j]))
		}

		out = append(out, th)
	}

	return out
}

func BookmarksFromDomain(items []models.Bookmark) []Bookmark {
	out := make([]Bookmark, 0, len(items))
	for i := range items {
		out = append(out, Bookmark{
			Content:      ContentFromDomain(&items[i].Content),
			BookmarkedAt: items[i].CreatedAt,
		})
	}

	return out
}
