package service

// In-memory реализации контрактов storage для сценарных тестов сервиса.
// Семантика повторяет MongoDB/PostgreSQL-реализации в той мере,
// в какой на неё опирается сервис: уникальность slug и связей,
// проверка родителя и глубины, мягкое удаление, пересчёт счётчиков.

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/config"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/storage"
)

func testConfig() config.Config {
	return config.Config{
		Env: "local",
		Redis: config.RedisConfig{
			FeaturedTTL: time.Minute,
		},
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-0123456789",
			AccessTokenTTL: time.Hour,
			Issuer:         "blog-service",
			Audience:       []string{"blog-web"},
		},
		Limits: config.LimitsConfig{
			Default:  10,
			Max:      100,
			MaxDepth: 1,
			Featured: 5,
		},
		Timeouts: config.TimeoutConfig{
			Service:    5 * time.Second,
			Background: 5 * time.Second,
		},
	}
}

type fakes struct {
	contents *fakeContents
	comments *fakeComments
	ledger   *fakeLedger
	users    *fakeUsers
	media    *fakeMedia
}

// newServiceWithFakes — сервис поверх in-memory хранилищ.
func newServiceWithFakes(t *testing.T) (*Service, *fakes) {
	t.Helper()

	cfg := testConfig()
	f := &fakes{
		contents: &fakeContents{items: map[string]*models.ContentItem{}},
		comments: &fakeComments{items: map[string]*models.Comment{}, maxDepth: cfg.Limits.MaxDepth},
		ledger:   &fakeLedger{rels: map[string]models.Relation{}},
		users:    &fakeUsers{users: map[uuid.UUID]*models.User{}, edges: map[[2]uuid.UUID]time.Time{}},
		media:    &fakeMedia{objects: map[string]models.Upload{}},
	}

	s := New(Deps{
		Contents:   f.contents,
		Comments:   f.comments,
		Engagement: f.ledger,
		Users:      f.users,
		Media:      f.media,
	}, cfg)
	t.Cleanup(s.Wait)

	return s, f
}

var (
	_ storage.ContentStorage    = (*fakeContents)(nil)
	_ storage.CommentsStorage   = (*fakeComments)(nil)
	_ storage.EngagementStorage = (*fakeLedger)(nil)
	_ storage.UsersStorage      = (*fakeUsers)(nil)
	_ storage.MediaStorage      = (*fakeMedia)(nil)
)

// --- contents ---

type fakeContents struct {
	mu    sync.Mutex
	seq   int
	items map[string]*models.ContentItem
}

func (f *fakeContents) CreateContent(_ context.Context, item models.ContentItem) (*models.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, it := range f.items {
		if it.Slug == item.Slug {
			return nil, storage.ErrAlreadyExists
		}
	}

	f.seq++
	item.ID = fmt.Sprintf("%024x", f.seq)
	cp := item
	f.items[item.ID] = &cp

	return &item, nil
}

func (f *fakeContents) ContentByID(_ context.Context, id string) (*models.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	it, ok := f.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	cp := *it
	return &cp, nil
}

func (f *fakeContents) ContentBySlug(_ context.Context, slug string) (*models.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, it := range f.items {
		if it.Slug == slug {
			cp := *it
			return &cp, nil
		}
	}

	return nil, storage.ErrNotFound
}

func (f *fakeContents) ContentByIDs(_ context.Context, ids []string) (map[string]models.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]models.ContentItem, len(ids))
	for _, id := range ids {
		if it, ok := f.items[id]; ok {
			out[id] = *it
		}
	}

	return out, nil
}

func (f *fakeContents) UpdateContent(_ context.Context, id string, upd models.ContentUpdate) (*models.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	it, ok := f.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	if upd.Title != nil {
		it.Title = *upd.Title
	}
	if upd.Body != nil {
		it.Body = *upd.Body
	}
	if upd.Cover != nil {
		if upd.Cover.URL == "" {
			it.Cover = nil
		} else {
			c := *upd.Cover
			it.Cover = &c
		}
	}
	if upd.Status != nil {
		it.Status = *upd.Status
	}
	if upd.PublishedAt != nil {
		t := *upd.PublishedAt
		it.PublishedAt = &t
	}
	if upd.Tags != nil {
		it.Tags = *upd.Tags
	}
	if upd.Category != nil {
		it.Category = *upd.Category
	}
	if upd.MetaDescription != nil {
		it.MetaDescription = *upd.MetaDescription
	}
	if upd.Excerpt != nil {
		it.Excerpt = *upd.Excerpt
	}
	if upd.ReadingTime != nil {
		it.ReadingTime = *upd.ReadingTime
	}
	if upd.Featured != nil {
		it.Featured = *upd.Featured
	}

	cp := *it
	return &cp, nil
}

func (f *fakeContents) DeleteContent(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.items[id]; !ok {
		return storage.ErrNotFound
	}

	delete(f.items, id)
	return nil
}

func (f *fakeContents) IncrementViews(_ context.Context, id string) error {
	return f.mutate(id, func(it *models.ContentItem) { it.Views++ })
}

func (f *fakeContents) SetLikesCount(_ context.Context, id string, n int64) error {
	return f.mutate(id, func(it *models.ContentItem) { it.LikesCount = n })
}

func (f *fakeContents) SetCommentsCount(_ context.Context, id string, n int64) error {
	return f.mutate(id, func(it *models.ContentItem) { it.CommentsCount = n })
}

func (f *fakeContents) mutate(id string, fn func(*models.ContentItem)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	it, ok := f.items[id]
	if !ok {
		return storage.ErrNotFound
	}

	fn(it)
	return nil
}

func (f *fakeContents) ListPublished(_ context.Context, flt models.ContentFilter, p models.PageParams) (*models.ContentPage, error) {
	return f.list(p, func(it *models.ContentItem) bool {
		if !it.IsPublished() {
			return false
		}
		if flt.Category != "" && it.Category != flt.Category {
			return false
		}
		if flt.Search != "" && !strings.Contains(strings.ToLower(it.Title), strings.ToLower(flt.Search)) {
			return false
		}
		if flt.Tag != "" {
			for _, t := range it.Tags {
				if t == flt.Tag {
					return true
				}
			}
			return false
		}
		return true
	}), nil
}

func (f *fakeContents) ListByAuthor(_ context.Context, authorID uuid.UUID, p models.PageParams) (*models.ContentPage, error) {
	return f.list(p, func(it *models.ContentItem) bool { return it.AuthorID == authorID }), nil
}

func (f *fakeContents) ListFeatured(_ context.Context, limit int32) ([]models.ContentItem, error) {
	page := f.list(models.PageParams{Page: 1, Limit: limit}, func(it *models.ContentItem) bool {
		return it.IsPublished() && it.Featured
	})

	return page.Items, nil
}

func (f *fakeContents) CountPublishedByAuthor(_ context.Context, authorID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, it := range f.items {
		if it.AuthorID == authorID && it.IsPublished() {
			n++
		}
	}

	return n, nil
}

func (f *fakeContents) DeleteByAuthor(_ context.Context, authorID uuid.UUID) ([]models.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.ContentItem
	for id, it := range f.items {
		if it.AuthorID == authorID {
			out = append(out, *it)
			delete(f.items, id)
		}
	}

	return out, nil
}

// list сортирует по id (порядок вставки) от новых к старым.
func (f *fakeContents) list(p models.PageParams, keep func(*models.ContentItem) bool) *models.ContentPage {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []models.ContentItem
	for _, it := range f.items {
		if keep(it) {
			all = append(all, *it)
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	page := &models.ContentPage{PageInfo: models.PageInfo{Page: p.Page, Limit: p.Limit, Total: int64(len(all))}}

	start := int(p.Offset())
	if start > len(all) {
		start = len(all)
	}
	end := start + int(p.Limit)
	if end > len(all) {
		end = len(all)
	}

	page.Items = all[start:end]

	return page
}

// --- comments ---

type fakeComments struct {
	mu       sync.Mutex
	seq      int
	maxDepth int32
	items    map[string]*models.Comment
	// syncErr — ошибка, которую вернёт SyncRepliesCount.
	syncErr error
}

func (f *fakeComments) CreateComment(_ context.Context, c models.Comment) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c.ParentID != "" {
		p, ok := f.items[c.ParentID]
		if !ok || p.ContentID != c.ContentID {
			return nil, storage.ErrParentNotFound
		}

		if p.Level+1 > f.maxDepth {
			return nil, storage.ErrMaxDepthExceeded
		}

		c.Level = p.Level + 1
	}

	f.seq++
	c.ID = fmt.Sprintf("%024x", f.seq)
	cp := c
	f.items[c.ID] = &cp

	return &c, nil
}

func (f *fakeComments) CommentByID(_ context.Context, id string) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	cp := *c
	return &cp, nil
}

func (f *fakeComments) UpdateCommentText(_ context.Context, id, text string) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.items[id]
	if !ok || c.IsDeleted() {
		return nil, storage.ErrNotFound
	}

	c.Text = text
	cp := *c
	return &cp, nil
}

func (f *fakeComments) SoftDeleteComment(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.items[id]
	if !ok {
		return false, storage.ErrNotFound
	}

	if c.IsDeleted() {
		return false, nil
	}

	c.Status = models.CommentDeleted
	c.Text = models.TombstoneText
	return true, nil
}

// ListRoots: page_token — id последнего элемента предыдущей страницы.
func (f *fakeComments) ListRoots(_ context.Context, contentID string, p models.ListParams) (*models.CommentPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var before int64 = -1
	if p.PageToken != "" {
		v, err := strconv.ParseInt(p.PageToken, 16, 64)
		if err != nil {
			return nil, storage.ErrInvalidCursor
		}
		before = v
	}

	hasReplies := map[string]bool{}
	for _, c := range f.items {
		if c.ParentID != "" {
			hasReplies[c.ParentID] = true
		}
	}

	var roots []models.Comment
	for _, c := range f.items {
		if c.ContentID != contentID || c.ParentID != "" {
			continue
		}
		if c.IsDeleted() && !hasReplies[c.ID] {
			continue
		}
		if before >= 0 {
			v, _ := strconv.ParseInt(c.ID, 16, 64)
			if v >= before {
				continue
			}
		}
		roots = append(roots, *c)
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].ID > roots[j].ID })

	page := &models.CommentPage{}
	if int32(len(roots)) > p.PageSize {
		roots = roots[:p.PageSize]
	}
	page.Items = roots

	if int32(len(roots)) == p.PageSize && len(roots) > 0 {
		page.NextPageToken = roots[len(roots)-1].ID
	}

	return page, nil
}

func (f *fakeComments) RepliesOf(_ context.Context, parentIDs []string) (map[string][]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	want := make(map[string]bool, len(parentIDs))
	for _, id := range parentIDs {
		want[id] = true
	}

	out := map[string][]models.Comment{}
	for _, c := range f.items {
		if want[c.ParentID] {
			out[c.ParentID] = append(out[c.ParentID], *c)
		}
	}

	for k := range out {
		rs := out[k]
		sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
	}

	return out, nil
}

func (f *fakeComments) SyncRepliesCount(_ context.Context, parentID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.syncErr != nil {
		return 0, f.syncErr
	}

	p, ok := f.items[parentID]
	if !ok {
		return 0, storage.ErrNotFound
	}

	var n int64
	for _, c := range f.items {
		if c.ParentID == parentID {
			n++
		}
	}

	p.RepliesCount = n
	return n, nil
}

func (f *fakeComments) CountActive(_ context.Context, contentID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, c := range f.items {
		if c.ContentID == contentID && !c.IsDeleted() {
			n++
		}
	}

	return n, nil
}

func (f *fakeComments) SetCommentLikesCount(_ context.Context, id string, n int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.items[id]
	if !ok {
		return storage.ErrNotFound
	}

	c.LikesCount = n
	return nil
}

func (f *fakeComments) DeleteByContent(_ context.Context, contentID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ids []string
	for id, c := range f.items {
		if c.ContentID == contentID {
			ids = append(ids, id)
			delete(f.items, id)
		}
	}

	return ids, nil
}

func (f *fakeComments) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.items)
}

// --- ledger ---

type fakeLedger struct {
	mu   sync.Mutex
	rels map[string]models.Relation
}

func relKey(kind models.RelationKind, userID uuid.UUID, targetID string) string {
	return string(kind) + "|" + userID.String() + "|" + targetID
}

func (f *fakeLedger) AddRelation(_ context.Context, r models.Relation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	k := relKey(r.Kind, r.UserID, r.TargetID)
	if _, ok := f.rels[k]; ok {
		return storage.ErrAlreadyExists
	}

	f.rels[k] = r
	return nil
}

func (f *fakeLedger) RemoveRelation(_ context.Context, kind models.RelationKind, userID uuid.UUID, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	k := relKey(kind, userID, targetID)
	if _, ok := f.rels[k]; !ok {
		return storage.ErrNotFound
	}

	delete(f.rels, k)
	return nil
}

func (f *fakeLedger) HasRelation(_ context.Context, kind models.RelationKind, userID uuid.UUID, targetID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.rels[relKey(kind, userID, targetID)]
	return ok, nil
}

func (f *fakeLedger) CountRelations(_ context.Context, kind models.RelationKind, targetID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, r := range f.rels {
		if r.Kind == kind && r.TargetID == targetID {
			n++
		}
	}

	return n, nil
}

func (f *fakeLedger) ListByUser(_ context.Context, kind models.RelationKind, userID uuid.UUID, p models.PageParams) ([]models.Relation, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var all []models.Relation
	for _, r := range f.rels {
		if r.Kind == kind && r.UserID == userID {
			all = append(all, r)
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].TargetID > all[j].TargetID })

	start := int(p.Offset())
	if start > len(all) {
		start = len(all)
	}
	end := start + int(p.Limit)
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], int64(len(all)), nil
}

func (f *fakeLedger) DeleteByTargets(_ context.Context, kind models.RelationKind, targetIDs []string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	want := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		want[id] = true
	}

	var n int64
	for k, r := range f.rels {
		if r.Kind == kind && want[r.TargetID] {
			delete(f.rels, k)
			n++
		}
	}

	return n, nil
}

func (f *fakeLedger) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.rels)
}

// --- users ---

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
	edges map[[2]uuid.UUID]time.Time
}

func (f *fakeUsers) CreateUser(_ context.Context, u models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, x := range f.users {
		if x.Email == u.Email {
			return nil, storage.ErrAlreadyExists
		}
	}

	cp := u
	f.users[u.ID] = &cp
	return &u, nil
}

func (f *fakeUsers) UserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}

	return nil, storage.ErrNotFound
}

func (f *fakeUsers) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdateUser(_ context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}

	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return storage.ErrNotFound
	}

	u.PasswordHash = hash
	return nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return storage.ErrNotFound
	}

	delete(f.users, id)
	for k := range f.edges {
		if k[0] == id || k[1] == id {
			delete(f.edges, k)
		}
	}

	for uid, u := range f.users {
		u.FollowersCount = f.count(func(k [2]uuid.UUID) bool { return k[1] == uid })
		u.FollowingCount = f.count(func(k [2]uuid.UUID) bool { return k[0] == uid })
	}

	return nil
}

func (f *fakeUsers) Follow(_ context.Context, follower, followee uuid.UUID) (*models.FollowCounts, error) {
	return f.mutateEdge(follower, followee, func(k [2]uuid.UUID) error {
		if _, ok := f.edges[k]; ok {
			return storage.ErrAlreadyExists
		}
		f.edges[k] = time.Now()
		return nil
	})
}

func (f *fakeUsers) Unfollow(_ context.Context, follower, followee uuid.UUID) (*models.FollowCounts, error) {
	return f.mutateEdge(follower, followee, func(k [2]uuid.UUID) error {
		if _, ok := f.edges[k]; !ok {
			return storage.ErrNotFound
		}
		delete(f.edges, k)
		return nil
	})
}

func (f *fakeUsers) mutateEdge(follower, followee uuid.UUID, fn func([2]uuid.UUID) error) (*models.FollowCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if follower == followee {
		return nil, storage.ErrSelfReference
	}

	a, okA := f.users[follower]
	b, okB := f.users[followee]
	if !okA || !okB {
		return nil, storage.ErrNotFound
	}

	if err := fn([2]uuid.UUID{follower, followee}); err != nil {
		return nil, err
	}

	a.FollowingCount = f.count(func(k [2]uuid.UUID) bool { return k[0] == follower })
	b.FollowersCount = f.count(func(k [2]uuid.UUID) bool { return k[1] == followee })

	return &models.FollowCounts{FollowingCount: a.FollowingCount, FollowersCount: b.FollowersCount}, nil
}

func (f *fakeUsers) count(match func([2]uuid.UUID) bool) int64 {
	var n int64
	for k := range f.edges {
		if match(k) {
			n++
		}
	}
	return n
}

func (f *fakeUsers) IsFollowing(_ context.Context, follower, followee uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.edges[[2]uuid.UUID{follower, followee}]
	return ok, nil
}

func (f *fakeUsers) Followers(_ context.Context, id uuid.UUID, p models.PageParams) (*models.UserPage, error) {
	return f.edgePage(p, func(k [2]uuid.UUID) (uuid.UUID, bool) { return k[0], k[1] == id })
}

func (f *fakeUsers) Following(_ context.Context, id uuid.UUID, p models.PageParams) (*models.UserPage, error) {
	return f.edgePage(p, func(k [2]uuid.UUID) (uuid.UUID, bool) { return k[1], k[0] == id })
}

func (f *fakeUsers) edgePage(p models.PageParams, pick func([2]uuid.UUID) (uuid.UUID, bool)) (*models.UserPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	page := &models.UserPage{PageInfo: models.PageInfo{Page: p.Page, Limit: p.Limit}}
	for k := range f.edges {
		if other, ok := pick(k); ok {
			page.Items = append(page.Items, *f.users[other])
		}
	}

	page.Total = int64(len(page.Items))
	return page, nil
}

// --- media ---

type fakeMedia struct {
	mu      sync.Mutex
	seq     int
	objects map[string]models.Upload
	deleted []string
	folders []string
}

func (f *fakeMedia) Store(_ context.Context, up models.Upload, folder string) (*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	id := fmt.Sprintf("%s/obj%d", folder, f.seq)
	f.objects[id] = up

	return &models.Media{ID: id, URL: "http://cdn.local/media/v1/" + id + ".png"}, nil
}

func (f *fakeMedia) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.objects, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeMedia) DeleteFolder(_ context.Context, folder string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id := range f.objects {
		if strings.HasPrefix(id, folder+"/") {
			delete(f.objects, id)
		}
	}
	f.folders = append(f.folders, folder)
	return nil
}

func (f *fakeMedia) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.objects[id]
	return ok
}

func (f *fakeMedia) deletedFolders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.folders...)
}

func (f *fakeMedia) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.deleted...)
}
