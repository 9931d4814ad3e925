package service

// Тесты сервисного слоя комментариев (internal/service/comments.go).
//
//  Проверяем:
//  - валидацию входов (Create/Update);
//  - маппинг ошибок storage -> service (NotFound / ParentNotFound / MaxDepthExceeded / InvalidCursor / Internal);
//  - права на удаление: автор комментария или автор материала;
//  - синхронный пересчёт comments_count после create/delete и его отсутствие при повторном удалении;
//  - сбой пересчёта replies_count не роняет создание ответа.

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/storage"
	"github.com/stretchr/testify/require"
)

func publishedItem(author uuid.UUID) *models.ContentItem {
	return &models.ContentItem{ID: "item", AuthorID: author, Status: models.StatusPublished}
}

func TestService_CreateComment_Validation(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()

	_, err := s.CreateComment(ctx, CreateCommentInput{ContentID: "item", Text: "x"})
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = s.CreateComment(ctx, CreateCommentInput{ContentID: "item", AuthorID: uuid.New(), Text: "   "})
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Equal(t, "text", fieldOf(t, err))

	_, err = s.CreateComment(ctx, CreateCommentInput{ContentID: "item", AuthorID: uuid.New(), Text: strings.Repeat("a", 1001)})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.CreateComment(ctx, CreateCommentInput{ContentID: " ", AuthorID: uuid.New(), Text: "x"})
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Equal(t, "id", fieldOf(t, err))
}

func TestService_CreateComment_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		storErr error
		want    error
	}{
		{"parent not found", storage.ErrParentNotFound, ErrParentNotFound},
		{"max depth", storage.ErrMaxDepthExceeded, ErrMaxDepthExceeded},
		{"internal", errors.New("db"), ErrInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, m, ctrl := newServiceWithMocks(t)
			defer ctrl.Finish()

			m.contents.EXPECT().ContentByID(gomock.Any(), "item").Return(publishedItem(uuid.New()), nil)
			m.comments.EXPECT().CreateComment(gomock.Any(), gomock.Any()).Return(nil, tc.storErr)

			_, err := s.CreateComment(context.Background(), CreateCommentInput{
				ContentID: "item", ParentID: "p", AuthorID: uuid.New(), Text: "x",
			})
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_CreateComment_ContentMissingOrHidden(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()

	m.contents.EXPECT().ContentByID(gomock.Any(), "gone").Return(nil, storage.ErrNotFound)
	_, err := s.CreateComment(ctx, CreateCommentInput{ContentID: "gone", AuthorID: uuid.New(), Text: "x"})
	require.ErrorIs(t, err, ErrNotFound)

	draft := &models.ContentItem{ID: "d", AuthorID: uuid.New(), Status: models.StatusDraft}
	m.contents.EXPECT().ContentByID(gomock.Any(), "d").Return(draft, nil)
	_, err = s.CreateComment(ctx, CreateCommentInput{ContentID: "d", AuthorID: uuid.New(), Text: "x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_CreateComment_RecountsSynchronously(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	author := uuid.New()

	m.contents.EXPECT().ContentByID(gomock.Any(), "item").Return(publishedItem(uuid.New()), nil)
	m.comments.EXPECT().
		CreateComment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
			require.Equal(t, "item", c.ContentID)
			require.Equal(t, "hello", c.Text)
			require.Equal(t, author, c.AuthorID)
			c.ID = "c1"
			return &c, nil
		})
	gomock.InOrder(
		m.comments.EXPECT().CountActive(gomock.Any(), "item").Return(int64(3), nil),
		m.contents.EXPECT().SetCommentsCount(gomock.Any(), "item", int64(3)).Return(nil),
	)

	got, err := s.CreateComment(context.Background(), CreateCommentInput{ContentID: "item", AuthorID: author, Text: "  hello "})
	require.NoError(t, err)
	require.Equal(t, "c1", got.ID)
}

func TestService_CreateComment_RecountFailureIsNotFatal(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	m.contents.EXPECT().ContentByID(gomock.Any(), "item").Return(publishedItem(uuid.New()), nil)
	m.comments.EXPECT().CreateComment(gomock.Any(), gomock.Any()).Return(&models.Comment{ID: "c1"}, nil)
	m.comments.EXPECT().CountActive(gomock.Any(), "item").Return(int64(0), errors.New("db"))

	_, err := s.CreateComment(context.Background(), CreateCommentInput{ContentID: "item", AuthorID: uuid.New(), Text: "x"})
	require.NoError(t, err)
}

func TestService_CreateComment_ReplyCountFailureIsNotFatal(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	m.contents.EXPECT().ContentByID(gomock.Any(), "item").Return(publishedItem(uuid.New()), nil)
	m.comments.EXPECT().
		CreateComment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Comment) (*models.Comment, error) {
			c.ID = "r1"
			c.Level = 1
			return &c, nil
		})
	gomock.InOrder(
		m.comments.EXPECT().SyncRepliesCount(gomock.Any(), "root").Return(int64(0), errors.New("db")),
		m.comments.EXPECT().CountActive(gomock.Any(), "item").Return(int64(2), nil),
		m.contents.EXPECT().SetCommentsCount(gomock.Any(), "item", int64(2)).Return(nil),
	)

	got, err := s.CreateComment(context.Background(), CreateCommentInput{ContentID: "item", ParentID: "root", AuthorID: uuid.New(), Text: "x"})
	require.NoError(t, err)
	require.Equal(t, "r1", got.ID)
	require.Equal(t, "root", got.ParentID)
}

func TestService_ListComments(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()

	m.contents.EXPECT().ContentByID(gomock.Any(), "item").Return(publishedItem(uuid.New()), nil).Times(2)

	m.comments.EXPECT().ListRoots(gomock.Any(), "item", models.ListParams{PageSize: 10, PageToken: "bad"}).Return(nil, storage.ErrInvalidCursor)
	_, err := s.ListComments(ctx, uuid.Nil, "item", models.ListParams{PageToken: "bad"})
	require.ErrorIs(t, err, ErrInvalidCursor)

	roots := &models.CommentPage{
		Items:         []models.Comment{{ID: "r2"}, {ID: "r1", Status: models.CommentDeleted, Text: models.TombstoneText, RepliesCount: 1}},
		NextPageToken: "next",
	}
	m.comments.EXPECT().ListRoots(gomock.Any(), "item", models.ListParams{PageSize: 2}).Return(roots, nil)
	m.comments.EXPECT().RepliesOf(gomock.Any(), []string{"r2", "r1"}).Return(map[string][]models.Comment{
		"r1": {{ID: "x1", ParentID: "r1"}},
	}, nil)

	page, err := s.ListComments(ctx, uuid.Nil, "item", models.ListParams{PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, "next", page.NextPageToken)
	require.Len(t, page.Items, 2)
	require.Empty(t, page.Items[0].Replies)
	require.NotNil(t, page.Items[0].Replies)
	require.Equal(t, "x1", page.Items[1].Replies[0].ID)
}

func TestService_UpdateComment(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()
	author := uuid.New()

	_, err := s.UpdateComment(ctx, author, "c", " ")
	require.ErrorIs(t, err, ErrInvalidArgument)

	deleted := &models.Comment{ID: "c", AuthorID: author, Status: models.CommentDeleted}
	m.comments.EXPECT().CommentByID(gomock.Any(), "c").Return(deleted, nil)
	_, err = s.UpdateComment(ctx, author, "c", "new")
	require.ErrorIs(t, err, ErrNotFound)

	live := &models.Comment{ID: "c", AuthorID: author, Status: models.CommentNormal}
	m.comments.EXPECT().CommentByID(gomock.Any(), "c").Return(live, nil).Times(2)
	_, err = s.UpdateComment(ctx, uuid.New(), "c", "new")
	require.ErrorIs(t, err, ErrForbidden)

	m.comments.EXPECT().UpdateCommentText(gomock.Any(), "c", "new").Return(&models.Comment{ID: "c", Text: "new"}, nil)
	got, err := s.UpdateComment(ctx, author, "c", " new ")
	require.NoError(t, err)
	require.Equal(t, "new", got.Text)
}

func TestService_DeleteComment_Permissions(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()

	commentAuthor := uuid.New()
	contentAuthor := uuid.New()
	comm := &models.Comment{ID: "c", ContentID: "item", AuthorID: commentAuthor, Text: "hi", Status: models.CommentNormal}

	// Посторонний.
	m.comments.EXPECT().CommentByID(gomock.Any(), "c").Return(comm, nil)
	m.contents.EXPECT().ContentByID(gomock.Any(), "item").Return(publishedItem(contentAuthor), nil)
	_, err := s.DeleteComment(ctx, uuid.New(), "c")
	require.ErrorIs(t, err, ErrForbidden)

	// Автор материала.
	m.comments.EXPECT().CommentByID(gomock.Any(), "c").Return(comm, nil)
	m.contents.EXPECT().ContentByID(gomock.Any(), "item").Return(publishedItem(contentAuthor), nil)
	m.comments.EXPECT().SoftDeleteComment(gomock.Any(), "c").Return(true, nil)
	m.comments.EXPECT().CountActive(gomock.Any(), "item").Return(int64(0), nil)
	m.contents.EXPECT().SetCommentsCount(gomock.Any(), "item", int64(0)).Return(nil)

	got, err := s.DeleteComment(ctx, contentAuthor, "c")
	require.NoError(t, err)
	require.True(t, got.IsDeleted())
	require.Equal(t, models.TombstoneText, got.Text)

	// Повторное удаление автором комментария: без пересчёта.
	m.comments.EXPECT().CommentByID(gomock.Any(), "c").Return(comm, nil)
	m.comments.EXPECT().SoftDeleteComment(gomock.Any(), "c").Return(false, nil)

	_, err = s.DeleteComment(ctx, commentAuthor, "c")
	require.NoError(t, err)
}

func TestService_DeleteComment_Errors(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()
	author := uuid.New()

	_, err := s.DeleteComment(ctx, uuid.Nil, "c")
	require.ErrorIs(t, err, ErrUnauthenticated)

	m.comments.EXPECT().CommentByID(gomock.Any(), "gone").Return(nil, storage.ErrNotFound)
	_, err = s.DeleteComment(ctx, author, "gone")
	require.ErrorIs(t, err, ErrNotFound)

	comm := &models.Comment{ID: "c", ContentID: "item", AuthorID: author}
	m.comments.EXPECT().CommentByID(gomock.Any(), "c").Return(comm, nil)
	m.comments.EXPECT().SoftDeleteComment(gomock.Any(), "c").Return(false, errors.New("db"))
	_, err = s.DeleteComment(ctx, author, "c")
	require.ErrorIs(t, err, ErrInternal)

	// Материал удалён: чужой комментарий удалять нельзя.
	m.comments.EXPECT().CommentByID(gomock.Any(), "c").Return(comm, nil)
	m.contents.EXPECT().ContentByID(gomock.Any(), "item").Return(nil, storage.ErrNotFound)
	_, err = s.DeleteComment(ctx, uuid.New(), "c")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestService_ToggleCommentLike(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()
	user := uuid.New()

	m.comments.EXPECT().CommentByID(gomock.Any(), "dead").Return(&models.Comment{ID: "dead", Status: models.CommentDeleted}, nil)
	_, err := s.ToggleCommentLike(ctx, user, "dead")
	require.ErrorIs(t, err, ErrNotFound)

	m.comments.EXPECT().CommentByID(gomock.Any(), "c").Return(&models.Comment{ID: "c", Status: models.CommentNormal}, nil)
	m.ledger.EXPECT().HasRelation(gomock.Any(), models.RelationCommentLike, user, "c").Return(false, nil)
	m.ledger.EXPECT().
		AddRelation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r models.Relation) error {
			require.Equal(t, models.RelationCommentLike, r.Kind)
			require.Equal(t, user, r.UserID)
			require.Equal(t, "c", r.TargetID)
			return nil
		})
	m.ledger.EXPECT().CountRelations(gomock.Any(), models.RelationCommentLike, "c").Return(int64(1), nil)
	m.comments.EXPECT().SetCommentLikesCount(gomock.Any(), "c", int64(1)).Return(nil)

	st, err := s.ToggleCommentLike(ctx, user, "c")
	require.NoError(t, err)
	require.Equal(t, models.LikeState{Liked: true, LikesCount: 1}, *st)
}

func TestService_RecountComments(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()

	m.comments.EXPECT().CountActive(gomock.Any(), "gone").Return(int64(0), nil)
	m.contents.EXPECT().SetCommentsCount(gomock.Any(), "gone", int64(0)).Return(storage.ErrNotFound)
	_, err := s.RecountComments(ctx, "gone")
	require.ErrorIs(t, err, ErrNotFound)

	m.comments.EXPECT().CountActive(gomock.Any(), "item").Return(int64(5), nil)
	m.contents.EXPECT().SetCommentsCount(gomock.Any(), "item", int64(5)).Return(nil)
	n, err := s.RecountComments(ctx, "item")
	require.NoError(t, err)
	require.EqualValues(t, 5, n)
}
