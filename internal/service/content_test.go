package service

// Тесты сервисного слоя материалов (internal/service/content.go).
//
//  Проверяем:
//  - валидацию входов CreateContent/UpdateContent;
//  - производные поля (slug, время чтения, анонс, publishedAt) и повтор slug при коллизии;
//  - маппинг ошибок storage -> service (NotFound / Forbidden / Internal);
//  - смену обложки и фоновое удаление старой;
//  - каскад при удалении: сбой одного шага не отменяет остальные и не возвращается вызывающему;
//  - подборку избранного через кэш.
//
// Подготовка окружения:
//   # 1) Сгенерировать моки интерфейсов хранилища и кэша:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks
//   mockgen -source=./internal/cache/cache.go -destination=./mocks/cache.go -package=mocks
//
//   # 2) Запустить тесты:
//   go test ./internal/service -v -race -count=1

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/storage"
	"github.com/pribylovaa/go-blog-service/mocks"
	"github.com/stretchr/testify/require"
)

type mockSet struct {
	contents *mocks.MockContentStorage
	comments *mocks.MockCommentsStorage
	ledger   *mocks.MockEngagementStorage
	users    *mocks.MockUsersStorage
	media    *mocks.MockMediaStorage
}

// newServiceWithMocks — поднимает сервис с моками стораджа.
func newServiceWithMocks(t *testing.T) (*Service, *mockSet, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &mockSet{
		contents: mocks.NewMockContentStorage(ctrl),
		comments: mocks.NewMockCommentsStorage(ctrl),
		ledger:   mocks.NewMockEngagementStorage(ctrl),
		users:    mocks.NewMockUsersStorage(ctrl),
		media:    mocks.NewMockMediaStorage(ctrl),
	}

	s := New(Deps{
		Contents:   m.contents,
		Comments:   m.comments,
		Engagement: m.ledger,
		Users:      m.users,
		Media:      m.media,
	}, testConfig())

	return s, m, ctrl
}

func fixedNow(s *Service, at time.Time) {
	s.now = func() time.Time { return at }
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()

	var fe *FieldError
	require.True(t, errors.As(err, &fe), "expected FieldError, got %v", err)

	return fe.Field
}

const pngDataURI = "data:image/png;base64,iVBORw0KGgo="

func TestService_CreateContent_Validation(t *testing.T) {
	s, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()
	author := uuid.New()

	_, err := s.CreateContent(ctx, CreateContentInput{Title: "x", Body: richBody("x")})
	require.ErrorIs(t, err, ErrUnauthenticated)

	tests := []struct {
		name  string
		in    CreateContentInput
		field string
	}{
		{"empty title", CreateContentInput{Title: "   ", Body: richBody("x")}, "title"},
		{"long article title", CreateContentInput{Title: strings.Repeat("я", 201), Body: richBody("x")}, "title"},
		{"long post title", CreateContentInput{Kind: models.KindPost, Title: strings.Repeat("a", 151), Body: models.Body{Text: "x"}}, "title"},
		{"article plain body", CreateContentInput{Title: "t", Body: models.Body{Text: "plain"}}, "body"},
		{"article empty blocks", CreateContentInput{Title: "t", Body: models.Body{Blocks: []models.Block{}}}, "body"},
		{"post rich body", CreateContentInput{Kind: models.KindPost, Title: "t", Body: richBody("x")}, "body"},
		{"post blank body", CreateContentInput{Kind: models.KindPost, Title: "t", Body: models.Body{Text: "  "}}, "body"},
		{"bad kind", CreateContentInput{Kind: "video", Title: "t", Body: richBody("x")}, "kind"},
		{"bad status", CreateContentInput{Status: "hidden", Title: "t", Body: richBody("x")}, "status"},
		{"long meta", CreateContentInput{Title: "t", Body: richBody("x"), MetaDescription: strings.Repeat("m", 161)}, "metaDescription"},
		{"bad cover", CreateContentInput{Title: "t", Body: richBody("x"), Cover: "ftp://x"}, "cover"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.AuthorID = author
			_, err := s.CreateContent(ctx, tc.in)
			require.ErrorIs(t, err, ErrInvalidArgument)
			require.Equal(t, tc.field, fieldOf(t, err))
		})
	}
}

func TestService_CreateContent_DerivedFields(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fixedNow(s, at)
	author := uuid.New()

	m.contents.EXPECT().
		CreateContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item models.ContentItem) (*models.ContentItem, error) {
			item.ID = "64b7f0000000000000000001"
			return &item, nil
		})

	got, err := s.CreateContent(context.Background(), CreateContentInput{
		AuthorID: author,
		Title:    "  Hello, World!  ",
		Body:     richBody("<b>First</b> paragraph &amp; more", "second"),
		Status:   models.StatusPublished,
		Tags:     []string{" go ", "go", "", "blog"},
	})
	require.NoError(t, err)
	require.Equal(t, models.KindArticle, got.Kind)
	require.Equal(t, "Hello, World!", got.Title)
	require.Equal(t, fmt.Sprintf("hello-world-%d", at.UnixMilli()), got.Slug)
	require.Equal(t, "First paragraph & more", got.Excerpt)
	require.EqualValues(t, 1, got.ReadingTime)
	require.Equal(t, []string{"go", "blog"}, got.Tags)
	require.NotNil(t, got.PublishedAt)
	require.True(t, got.PublishedAt.Equal(at))
}

func TestService_CreateContent_KeepsUserExcerpt(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	m.contents.EXPECT().
		CreateContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item models.ContentItem) (*models.ContentItem, error) {
			return &item, nil
		})

	got, err := s.CreateContent(context.Background(), CreateContentInput{
		AuthorID: uuid.New(),
		Title:    "t",
		Body:     richBody("generated"),
		Excerpt:  "mine",
	})
	require.NoError(t, err)
	require.Equal(t, "mine", got.Excerpt)
	require.Equal(t, models.StatusDraft, got.Status)
	require.Nil(t, got.PublishedAt)
}

func TestService_CreateContent_SlugRetry(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	var slugs []string
	gomock.InOrder(
		m.contents.EXPECT().CreateContent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, item models.ContentItem) (*models.ContentItem, error) {
				slugs = append(slugs, item.Slug)
				return nil, storage.ErrAlreadyExists
			}),
		m.contents.EXPECT().CreateContent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, item models.ContentItem) (*models.ContentItem, error) {
				slugs = append(slugs, item.Slug)
				return &item, nil
			}),
	)

	fixedNow(s, time.UnixMilli(1_700_000_000_000).UTC())

	got, err := s.CreateContent(context.Background(), CreateContentInput{AuthorID: uuid.New(), Title: "Same", Body: richBody("x")})
	require.NoError(t, err)
	require.Len(t, slugs, 2)
	require.NotEqual(t, slugs[0], slugs[1])
	require.Equal(t, slugs[1], got.Slug)
}

func TestService_CreateContent_SlugRetryExhausted(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	m.contents.EXPECT().CreateContent(gomock.Any(), gomock.Any()).
		Return(nil, storage.ErrAlreadyExists).Times(maxSlugAttempts)

	_, err := s.CreateContent(context.Background(), CreateContentInput{AuthorID: uuid.New(), Title: "Same", Body: richBody("x")})
	require.ErrorIs(t, err, ErrInternal)
}

func TestService_CreateContent_CoverUploadRolledBackOnFailure(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	author := uuid.New()

	m.media.EXPECT().
		Store(gomock.Any(), gomock.Any(), "blog/covers/"+author.String()).
		DoAndReturn(func(_ context.Context, up models.Upload, folder string) (*models.Media, error) {
			require.Equal(t, "image/png", up.ContentType)
			return &models.Media{URL: "http://cdn/v1/" + folder + "/a.png", ID: folder + "/a"}, nil
		})
	m.contents.EXPECT().CreateContent(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
	m.media.EXPECT().Delete(gomock.Any(), "blog/covers/"+author.String()+"/a").Return(nil)

	_, err := s.CreateContent(context.Background(), CreateContentInput{
		AuthorID: author, Title: "t", Body: richBody("x"), Cover: pngDataURI,
	})
	require.ErrorIs(t, err, ErrInternal)
	s.Wait()
}

func TestService_CreateContent_CoverRejectedByStorage(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	m.media.EXPECT().Store(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storage.ErrInvalidArgument)

	_, err := s.CreateContent(context.Background(), CreateContentInput{
		AuthorID: uuid.New(), Title: "t", Body: richBody("x"), Cover: pngDataURI,
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Equal(t, "cover", fieldOf(t, err))
}

func TestService_ContentBySlug(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()
	author := uuid.New()

	m.contents.EXPECT().ContentBySlug(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)
	_, err := s.ContentBySlug(ctx, uuid.Nil, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	m.contents.EXPECT().ContentBySlug(gomock.Any(), "boom").Return(nil, errors.New("db"))
	_, err = s.ContentBySlug(ctx, uuid.Nil, "boom")
	require.ErrorIs(t, err, ErrInternal)

	draft := &models.ContentItem{ID: "d", AuthorID: author, Status: models.StatusDraft}
	m.contents.EXPECT().ContentBySlug(gomock.Any(), "draft").Return(draft, nil)
	_, err = s.ContentBySlug(ctx, uuid.New(), "draft")
	require.ErrorIs(t, err, ErrNotFound)

	// Опубликованный материал: ответ не зависит от сбоя инкремента просмотров.
	pub := &models.ContentItem{ID: "p", AuthorID: author, Status: models.StatusPublished, Views: 7}
	m.contents.EXPECT().ContentBySlug(gomock.Any(), "pub").Return(pub, nil)
	m.contents.EXPECT().IncrementViews(gomock.Any(), "p").Return(errors.New("timeout"))

	got, err := s.ContentBySlug(ctx, uuid.Nil, "pub")
	require.NoError(t, err)
	require.EqualValues(t, 7, got.Views)
	s.Wait()
}

func TestService_ContentByID_OwnerOnly(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()
	author := uuid.New()

	_, err := s.ContentByID(ctx, uuid.Nil, "x")
	require.ErrorIs(t, err, ErrUnauthenticated)

	item := &models.ContentItem{ID: "x", AuthorID: author, Status: models.StatusPublished}
	m.contents.EXPECT().ContentByID(gomock.Any(), "x").Return(item, nil).Times(2)

	_, err = s.ContentByID(ctx, uuid.New(), "x")
	require.ErrorIs(t, err, ErrForbidden)

	got, err := s.ContentByID(ctx, author, "x")
	require.NoError(t, err)
	require.Equal(t, "x", got.ID)

	m.contents.EXPECT().ContentByID(gomock.Any(), "gone").Return(nil, storage.ErrNotFound)
	_, err = s.ContentByID(ctx, author, "gone")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateContent_Fields(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	fixedNow(s, at)
	author := uuid.New()

	cur := &models.ContentItem{
		ID: "c", Kind: models.KindArticle, AuthorID: author, Slug: "old-1",
		Status: models.StatusDraft, Excerpt: "user excerpt",
	}
	m.contents.EXPECT().ContentByID(gomock.Any(), "c").Return(cur, nil)
	m.contents.EXPECT().
		UpdateContent(gomock.Any(), "c", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, upd models.ContentUpdate) (*models.ContentItem, error) {
			require.NotNil(t, upd.Title)
			require.Equal(t, "New", *upd.Title)
			require.NotNil(t, upd.Body)
			require.NotNil(t, upd.ReadingTime)
			require.Nil(t, upd.Excerpt, "user excerpt must survive body change")
			require.NotNil(t, upd.Status)
			require.NotNil(t, upd.PublishedAt)
			require.True(t, upd.PublishedAt.Equal(at))
			require.Nil(t, upd.Cover)

			out := *cur
			out.Title = *upd.Title
			out.Status = *upd.Status
			return &out, nil
		})

	title := "New"
	body := richBody("fresh words")
	st := models.StatusPublished

	got, err := s.UpdateContent(context.Background(), author, "c", UpdateContentInput{Title: &title, Body: &body, Status: &st})
	require.NoError(t, err)
	require.Equal(t, "old-1", got.Slug)
}

func TestService_UpdateContent_Errors(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()
	author := uuid.New()
	cur := &models.ContentItem{ID: "c", Kind: models.KindPost, AuthorID: author}

	m.contents.EXPECT().ContentByID(gomock.Any(), "c").Return(cur, nil).Times(3)

	_, err := s.UpdateContent(ctx, uuid.New(), "c", UpdateContentInput{})
	require.ErrorIs(t, err, ErrForbidden)

	rich := richBody("x")
	_, err = s.UpdateContent(ctx, author, "c", UpdateContentInput{Body: &rich})
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Equal(t, "body", fieldOf(t, err))

	m.contents.EXPECT().UpdateContent(gomock.Any(), "c", gomock.Any()).Return(nil, errors.New("db"))
	_, err = s.UpdateContent(ctx, author, "c", UpdateContentInput{})
	require.ErrorIs(t, err, ErrInternal)
}

func TestService_UpdateContent_CoverSwap(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	author := uuid.New()
	folder := "blog/covers/" + author.String()

	cur := &models.ContentItem{
		ID: "c", Kind: models.KindArticle, AuthorID: author,
		Cover: &models.Media{URL: "http://cdn/v1/" + folder + "/old.png", ID: folder + "/old"},
	}
	newMedia := &models.Media{URL: "http://cdn/v2/" + folder + "/new.png", ID: folder + "/new"}

	m.contents.EXPECT().ContentByID(gomock.Any(), "c").Return(cur, nil)
	m.media.EXPECT().Store(gomock.Any(), gomock.Any(), folder).Return(newMedia, nil)
	m.contents.EXPECT().
		UpdateContent(gomock.Any(), "c", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, upd models.ContentUpdate) (*models.ContentItem, error) {
			require.Equal(t, newMedia, upd.Cover)
			out := *cur
			out.Cover = upd.Cover
			return &out, nil
		})
	// Сбой удаления старой обложки не влияет на результат.
	m.media.EXPECT().Delete(gomock.Any(), folder+"/old").Return(errors.New("s3 down"))

	cover := pngDataURI
	got, err := s.UpdateContent(context.Background(), author, "c", UpdateContentInput{Cover: &cover})
	require.NoError(t, err)
	require.Equal(t, newMedia.URL, got.Cover.URL)
	s.Wait()
}

func TestService_UpdateContent_ForeignCoverKept(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	author := uuid.New()

	// Обложка ссылается на объект другого пользователя.
	cur := &models.ContentItem{
		ID: "c", Kind: models.KindArticle, AuthorID: author,
		Cover: &models.Media{URL: "http://cdn/v3/blog/images/" + uuid.NewString() + "/pic.png"},
	}
	cur.Cover.ID = models.MediaIDFromURL(cur.Cover.URL)

	m.contents.EXPECT().ContentByID(gomock.Any(), "c").Return(cur, nil)
	m.contents.EXPECT().
		UpdateContent(gomock.Any(), "c", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ models.ContentUpdate) (*models.ContentItem, error) {
			out := *cur
			out.Cover = nil
			return &out, nil
		})
	// media.Delete не ожидается.

	empty := ""
	_, err := s.UpdateContent(context.Background(), author, "c", UpdateContentInput{Cover: &empty})
	require.NoError(t, err)
	s.Wait()
}

func TestService_UpdateContent_CoverRemoved(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	author := uuid.New()

	old := "blog/covers/" + author.String() + "/old"
	cur := &models.ContentItem{
		ID: "c", Kind: models.KindArticle, AuthorID: author,
		Cover: &models.Media{URL: "http://cdn/v3/" + old + ".jpg"},
	}

	m.contents.EXPECT().ContentByID(gomock.Any(), "c").Return(cur, nil)
	m.contents.EXPECT().
		UpdateContent(gomock.Any(), "c", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, upd models.ContentUpdate) (*models.ContentItem, error) {
			require.NotNil(t, upd.Cover)
			require.Empty(t, upd.Cover.URL)
			out := *cur
			out.Cover = nil
			return &out, nil
		})
	m.media.EXPECT().Delete(gomock.Any(), old).Return(nil)

	empty := ""
	got, err := s.UpdateContent(context.Background(), author, "c", UpdateContentInput{Cover: &empty})
	require.NoError(t, err)
	require.Nil(t, got.Cover)
	s.Wait()
}

func TestService_DeleteContent_BestEffortCascade(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	author := uuid.New()
	images := "blog/images/" + author.String()
	covers := "blog/covers/" + author.String()

	body := richBody("text")
	body.Blocks = append(body.Blocks,
		models.Block{Type: "image", Data: map[string]any{"file": map[string]any{"url": "http://cdn/v5/" + images + "/one.png"}}},
		models.Block{Type: "image", Data: map[string]any{"file": map[string]any{"url": "http://cdn/v6/" + images + "/two.webp"}}},
		// Чужое изображение: только ссылка, удалять нельзя.
		models.Block{Type: "image", Data: map[string]any{"file": map[string]any{"url": "http://cdn/v7/blog/images/" + uuid.NewString() + "/x.png"}}},
	)

	item := &models.ContentItem{
		ID: "c", AuthorID: author, Body: body,
		Cover: &models.Media{URL: "http://cdn/v4/" + covers + "/cov.png", ID: covers + "/cov"},
	}

	m.contents.EXPECT().ContentByID(gomock.Any(), "c").Return(item, nil)
	m.contents.EXPECT().DeleteContent(gomock.Any(), "c").Return(nil)

	m.media.EXPECT().Delete(gomock.Any(), covers+"/cov").Return(errors.New("s3 down"))
	m.media.EXPECT().Delete(gomock.Any(), images+"/one").Return(nil)
	m.media.EXPECT().Delete(gomock.Any(), images+"/two").Return(nil)

	m.comments.EXPECT().DeleteByContent(gomock.Any(), "c").Return([]string{"k1", "k2"}, nil)
	m.ledger.EXPECT().DeleteByTargets(gomock.Any(), models.RelationCommentLike, []string{"k1", "k2"}).Return(int64(3), nil)
	m.ledger.EXPECT().DeleteByTargets(gomock.Any(), models.RelationContentLike, []string{"c"}).Return(int64(0), errors.New("mongo down"))
	m.ledger.EXPECT().DeleteByTargets(gomock.Any(), models.RelationBookmark, []string{"c"}).Return(int64(1), nil)

	require.NoError(t, s.DeleteContent(context.Background(), author, "c"))
	s.Wait()
}

func TestService_DeleteContent_Errors(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()
	author := uuid.New()

	require.ErrorIs(t, s.DeleteContent(ctx, uuid.Nil, "c"), ErrUnauthenticated)

	m.contents.EXPECT().ContentByID(gomock.Any(), "gone").Return(nil, storage.ErrNotFound)
	require.ErrorIs(t, s.DeleteContent(ctx, author, "gone"), ErrNotFound)

	item := &models.ContentItem{ID: "c", AuthorID: author}
	m.contents.EXPECT().ContentByID(gomock.Any(), "c").Return(item, nil).Times(2)
	require.ErrorIs(t, s.DeleteContent(ctx, uuid.New(), "c"), ErrForbidden)

	m.contents.EXPECT().DeleteContent(gomock.Any(), "c").Return(errors.New("db"))
	require.ErrorIs(t, s.DeleteContent(ctx, author, "c"), ErrInternal)
}

func TestService_ToggleContentLike(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()
	user := uuid.New()
	item := &models.ContentItem{ID: "c", AuthorID: uuid.New(), Status: models.StatusPublished}

	// Параллельный вызов уже добавил лайк: ErrAlreadyExists — не ошибка.
	m.contents.EXPECT().ContentByID(gomock.Any(), "c").Return(item, nil)
	m.ledger.EXPECT().HasRelation(gomock.Any(), models.RelationContentLike, user, "c").Return(false, nil)
	m.ledger.EXPECT().AddRelation(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)
	m.ledger.EXPECT().CountRelations(gomock.Any(), models.RelationContentLike, "c").Return(int64(4), nil)
	m.contents.EXPECT().SetLikesCount(gomock.Any(), "c", int64(4)).Return(nil)

	st, err := s.ToggleContentLike(ctx, user, "c")
	require.NoError(t, err)
	require.Equal(t, models.LikeState{Liked: true, LikesCount: 4}, *st)

	// Снятие лайка, которого уже нет: ErrNotFound — не ошибка.
	m.contents.EXPECT().ContentByID(gomock.Any(), "c").Return(item, nil)
	m.ledger.EXPECT().HasRelation(gomock.Any(), models.RelationContentLike, user, "c").Return(true, nil)
	m.ledger.EXPECT().RemoveRelation(gomock.Any(), models.RelationContentLike, user, "c").Return(storage.ErrNotFound)
	m.ledger.EXPECT().CountRelations(gomock.Any(), models.RelationContentLike, "c").Return(int64(3), nil)
	m.contents.EXPECT().SetLikesCount(gomock.Any(), "c", int64(3)).Return(errors.New("write failed"))

	st, err = s.ToggleContentLike(ctx, user, "c")
	require.NoError(t, err)
	require.Equal(t, models.LikeState{Liked: false, LikesCount: 3}, *st)

	m.contents.EXPECT().ContentByID(gomock.Any(), "c").Return(item, nil)
	m.ledger.EXPECT().HasRelation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("db"))
	_, err = s.ToggleContentLike(ctx, user, "c")
	require.ErrorIs(t, err, ErrInternal)
}

func TestService_ListContent_NormalizesPaging(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	m.contents.EXPECT().
		ListPublished(gomock.Any(), models.ContentFilter{Tag: "go", Search: "hello"}, models.PageParams{Page: 1, Limit: 100}).
		Return(&models.ContentPage{}, nil)

	_, err := s.ListContent(context.Background(), models.ContentFilter{Tag: " go ", Search: " hello "}, models.PageParams{Page: -3, Limit: 1000})
	require.NoError(t, err)

	m.contents.EXPECT().ListPublished(gomock.Any(), gomock.Any(), models.PageParams{Page: 2, Limit: 10}).Return(nil, errors.New("db"))
	_, err = s.ListContent(context.Background(), models.ContentFilter{}, models.PageParams{Page: 2})
	require.ErrorIs(t, err, ErrInternal)
}

func TestService_ListFeatured_Cache(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()

	fc := mocks.NewMockFeaturedCache(ctrl)
	s.SetFeaturedCache(fc)

	cached := []models.ContentItem{{ID: "a"}}
	fc.EXPECT().Get(gomock.Any()).Return(cached, true, nil)

	got, err := s.ListFeatured(ctx)
	require.NoError(t, err)
	require.Equal(t, cached, got)

	fresh := []models.ContentItem{{ID: "b"}}
	fc.EXPECT().Get(gomock.Any()).Return(nil, false, nil)
	m.contents.EXPECT().ListFeatured(gomock.Any(), int32(5)).Return(fresh, nil)
	fc.EXPECT().Set(gomock.Any(), fresh, time.Minute).Return(nil)

	got, err = s.ListFeatured(ctx)
	require.NoError(t, err)
	require.Equal(t, fresh, got)

	// Сбой кэша не ломает выдачу.
	fc.EXPECT().Get(gomock.Any()).Return(nil, false, errors.New("redis down"))
	m.contents.EXPECT().ListFeatured(gomock.Any(), int32(5)).Return(fresh, nil)
	fc.EXPECT().Set(gomock.Any(), fresh, time.Minute).Return(errors.New("redis down"))

	got, err = s.ListFeatured(ctx)
	require.NoError(t, err)
	require.Equal(t, fresh, got)
}

func TestService_CreateContent_FeaturedInvalidatesCache(t *testing.T) {
	s, m, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	fc := mocks.NewMockFeaturedCache(ctrl)
	s.SetFeaturedCache(fc)

	m.contents.EXPECT().CreateContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item models.ContentItem) (*models.ContentItem, error) {
			return &item, nil
		})
	fc.EXPECT().Invalidate(gomock.Any()).Return(nil)

	_, err := s.CreateContent(context.Background(), CreateContentInput{
		AuthorID: uuid.New(), Title: "t", Body: richBody("x"), Featured: true, Status: models.StatusPublished,
	})
	require.NoError(t, err)
}
