// Package storage задаёт контракты хранилищ blog-service и их ошибки.
// Реализации: mongo (контент, комментарии, реестр вовлечённости),
// postgres (пользователи и граф подписок), minio (медиа).
package storage

//go:generate mockgen -source=storage.go -destination=../../mocks/storage.go -package=mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email, slug, отношение, ребро подписки).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCursor — битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrParentNotFound — указан parent_id, но родитель не найден в этом материале.
	ErrParentNotFound = errors.New("parent not found")
	// ErrMaxDepthExceeded — превышена максимально допустимая глубина ответа.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")
	// ErrSelfReference — ребро подписки на самого себя.
	ErrSelfReference = errors.New("self reference")
	// ErrInvalidArgument — данные не проходят ограничения хранилища (тип/размер медиа).
	ErrInvalidArgument = errors.New("invalid argument")
)

// ContentStorage описывает операции над материалами.
type ContentStorage interface {
	// CreateContent сохраняет материал. Производные поля уже посчитаны сервисом.
	// Дубликат slug — ErrAlreadyExists.
	CreateContent(ctx context.Context, item models.ContentItem) (*models.ContentItem, error)
	// ContentByID / ContentBySlug — ErrNotFound при отсутствии.
	ContentByID(ctx context.Context, id string) (*models.ContentItem, error)
	ContentBySlug(ctx context.Context, slug string) (*models.ContentItem, error)
	// ContentByIDs возвращает найденные материалы по id; отсутствующие просто пропускаются.
	ContentByIDs(ctx context.Context, ids []string) (map[string]models.ContentItem, error)
	// UpdateContent применяет частичное обновление и возвращает актуальную запись.
	UpdateContent(ctx context.Context, id string, upd models.ContentUpdate) (*models.ContentItem, error)
	// DeleteContent физически удаляет материал.
	DeleteContent(ctx context.Context, id string) error
	// IncrementViews — атомарный $inc счётчика просмотров.
	IncrementViews(ctx context.Context, id string) error
	// SetLikesCount / SetCommentsCount записывают пересчитанные кэш-счётчики.
	SetLikesCount(ctx context.Context, id string, n int64) error
	SetCommentsCount(ctx context.Context, id string, n int64) error
	// ListPublished — публичная лента: только published, published_at DESC.
	ListPublished(ctx context.Context, f models.ContentFilter, p models.PageParams) (*models.ContentPage, error)
	// ListByAuthor — материалы автора в любом статусе, created_at DESC.
	ListByAuthor(ctx context.Context, authorID uuid.UUID, p models.PageParams) (*models.ContentPage, error)
	// ListFeatured — published + featured, новые сначала, не более limit.
	ListFeatured(ctx context.Context, limit int32) ([]models.ContentItem, error)
	// CountPublishedByAuthor — число опубликованных материалов автора.
	CountPublishedByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	// DeleteByAuthor физически удаляет все материалы автора и возвращает удалённые записи.
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.ContentItem, error)
}

// CommentsStorage описывает операции над комментариями.
type CommentsStorage interface {
	// CreateComment создаёт корневой комментарий или ответ.
	// Для ответа проверяет родителя (тот же материал) и глубину.
	// Счётчик ответов родителя не трогает: см. SyncRepliesCount.
	// Возможные ошибки: ErrParentNotFound, ErrMaxDepthExceeded.
	CreateComment(ctx context.Context, c models.Comment) (*models.Comment, error)
	// CommentByID возвращает комментарий, в том числе удалённый.
	CommentByID(ctx context.Context, id string) (*models.Comment, error)
	// UpdateCommentText меняет текст неудалённого комментария; иначе — ErrNotFound.
	UpdateCommentText(ctx context.Context, id, text string) (*models.Comment, error)
	// SoftDeleteComment переводит комментарий в deleted с текстом-надгробием.
	// Возвращает false, если комментарий уже был удалён.
	SoftDeleteComment(ctx context.Context, id string) (bool, error)
	// ListRoots — видимые корневые комментарии материала: normal, либо deleted,
	// у которых есть хотя бы один ответ (проверяется по самим ответам, не по счётчику).
	// Сортировка: created_at DESC. При некорректном page_token — ErrInvalidCursor.
	ListRoots(ctx context.Context, contentID string, p models.ListParams) (*models.CommentPage, error)
	// RepliesOf — все ответы на указанные комментарии, сгруппированные по родителю, created_at ASC.
	RepliesOf(ctx context.Context, parentIDs []string) (map[string][]models.Comment, error)
	// SyncRepliesCount пересчитывает ответы комментария и записывает replies_count.
	SyncRepliesCount(ctx context.Context, parentID string) (int64, error)
	// CountActive — число неудалённых комментариев материала (корни и ответы).
	CountActive(ctx context.Context, contentID string) (int64, error)
	// SetCommentLikesCount записывает пересчитанный счётчик лайков.
	SetCommentLikesCount(ctx context.Context, id string, n int64) error
	// DeleteByContent физически удаляет комментарии материала и возвращает их id.
	DeleteByContent(ctx context.Context, contentID string) ([]string, error)
}

// EngagementStorage — реестр отношений (лайки, закладки).
// Уникальность (kind, user_id, target_id) обеспечивает хранилище.
type EngagementStorage interface {
	// AddRelation — дубликат возвращает ErrAlreadyExists.
	AddRelation(ctx context.Context, r models.Relation) error
	// RemoveRelation — отсутствие отношения возвращает ErrNotFound.
	RemoveRelation(ctx context.Context, kind models.RelationKind, userID uuid.UUID, targetID string) error
	HasRelation(ctx context.Context, kind models.RelationKind, userID uuid.UUID, targetID string) (bool, error)
	// CountRelations — число отношений данного типа к цели.
	CountRelations(ctx context.Context, kind models.RelationKind, targetID string) (int64, error)
	// ListByUser — отношения пользователя, новые сначала, и их общее число.
	ListByUser(ctx context.Context, kind models.RelationKind, userID uuid.UUID, p models.PageParams) ([]models.Relation, int64, error)
	// DeleteByTargets удаляет все отношения данного типа к перечисленным целям.
	DeleteByTargets(ctx context.Context, kind models.RelationKind, targetIDs []string) (int64, error)
}

// UsersStorage — пользователи и граф подписок.
type UsersStorage interface {
	// CreateUser — дубликат email возвращает ErrAlreadyExists.
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UpdateUser — частичное обновление профиля; updated_at сдвигается всегда.
	UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error)
	// UpdatePassword заменяет хэш пароля. Нет пользователя — ErrNotFound.
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	// DeleteUser удаляет пользователя вместе с его рёбрами подписок и в той же
	// транзакции пересчитывает счётчики затронутых пользователей.
	// Нет пользователя — ErrNotFound.
	DeleteUser(ctx context.Context, id uuid.UUID) error
	// Follow создаёт ребро и пересчитывает счётчики обеих сторон в одной транзакции.
	// Ошибки: ErrNotFound (нет цели), ErrAlreadyExists (ребро есть), ErrSelfReference.
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) (*models.FollowCounts, error)
	// Unfollow удаляет ребро в той же форме транзакции; нет ребра — ErrNotFound.
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) (*models.FollowCounts, error)
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	// Followers / Following — страницы связанных пользователей, новые рёбра сначала.
	Followers(ctx context.Context, userID uuid.UUID, p models.PageParams) (*models.UserPage, error)
	Following(ctx context.Context, userID uuid.UUID, p models.PageParams) (*models.UserPage, error)
}

// MediaStorage — внешнее хранилище изображений.
type MediaStorage interface {
	// Store сохраняет объект в папку folder и возвращает URL и непрозрачный id.
	Store(ctx context.Context, up models.Upload, folder string) (*models.Media, error)
	// Delete удаляет объект по id. Отсутствие объекта ошибкой не считается.
	Delete(ctx context.Context, id string) error
	// DeleteFolder удаляет все объекты папки.
	DeleteFolder(ctx context.Context, folder string) error
}
