package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/storage"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты пакета postgres:
// — поднимают реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// — применяют встроенные миграции goose (Storage.Migrate);
// — проверяют пользователей, частичное обновление и транзакционный граф подписок.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// startPostgres — поднимает PostgreSQL, применяет миграции и возвращает хранилище.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startPostgres(t *testing.T) *Storage {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "docker.io/postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		ProviderType:     tc.ProviderDocker,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	// Порт открывается раньше, чем postgres готов принимать запросы.
	var st *Storage
	require.Eventually(t, func() bool {
		st, err = New(ctx, dsn)
		return err == nil
	}, 30*time.Second, 500*time.Millisecond)
	t.Cleanup(st.Close)

	require.NoError(t, st.Migrate(ctx))
	// Повторный прогон миграций — no-op.
	require.NoError(t, st.Migrate(ctx))

	return st
}

func mustCreateUser(t *testing.T, st *Storage, email string) *models.User {
	t.Helper()
	u, err := st.CreateUser(context.Background(), models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "name " + email,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return u
}

func TestIntegration_Users_CreateReadUpdate(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	u := mustCreateUser(t, st, "alice@example.com")
	require.WithinDuration(t, time.Now().UTC(), u.CreatedAt, 5*time.Second)
	require.Zero(t, u.FollowersCount)

	_, err := st.CreateUser(ctx, models.User{ID: uuid.New(), Email: "alice@example.com", Name: "dup", PasswordHash: "h"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	byEmail, err := st.UserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.Equal(t, "hash", byEmail.PasswordHash)

	_, err = st.UserByID(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)

	bio := "gopher"
	upd, err := st.UpdateUser(ctx, u.ID, models.UserUpdate{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, "gopher", upd.Bio)
	require.Equal(t, u.Name, upd.Name)
	require.True(t, !upd.UpdatedAt.Before(u.UpdatedAt))

	_, err = st.UpdateUser(ctx, uuid.New(), models.UserUpdate{Bio: &bio})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_FollowGraph(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	a := mustCreateUser(t, st, "a@example.com")
	b := mustCreateUser(t, st, "b@example.com")

	counts, err := st.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, models.FollowCounts{FollowingCount: 1, FollowersCount: 1}, *counts)

	_, err = st.Follow(ctx, a.ID, b.ID)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = st.Follow(ctx, a.ID, a.ID)
	require.ErrorIs(t, err, storage.ErrSelfReference)

	_, err = st.Follow(ctx, a.ID, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)

	ok, err := st.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.True(t, ok)

	followers, err := st.Followers(ctx, b.ID, models.PageParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, followers.Total)
	require.Equal(t, a.ID, followers.Items[0].ID)

	following, err := st.Following(ctx, a.ID, models.PageParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, b.ID, following.Items[0].ID)

	// Повторный follow не изменил счётчики.
	gotB, err := st.UserByID(ctx, b.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, gotB.FollowersCount)

	counts, err = st.Unfollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, models.FollowCounts{}, *counts)

	_, err = st.Unfollow(ctx, a.ID, b.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_DeleteUser_RecountsCounterparts(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	gone := mustCreateUser(t, st, "gone@example.com")
	fan := mustCreateUser(t, st, "fan@example.com")
	idol := mustCreateUser(t, st, "idol@example.com")

	_, err := st.Follow(ctx, fan.ID, gone.ID)
	require.NoError(t, err)
	_, err = st.Follow(ctx, gone.ID, idol.ID)
	require.NoError(t, err)
	_, err = st.Follow(ctx, fan.ID, idol.ID)
	require.NoError(t, err)

	require.NoError(t, st.DeleteUser(ctx, gone.ID))
	require.ErrorIs(t, st.DeleteUser(ctx, gone.ID), storage.ErrNotFound)

	_, err = st.UserByID(ctx, gone.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	gotFan, err := st.UserByID(ctx, fan.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, gotFan.FollowingCount)

	gotIdol, err := st.UserByID(ctx, idol.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, gotIdol.FollowersCount)

	ok, err := st.IsFollowing(ctx, fan.ID, gone.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIntegration_UpdatePassword(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	u := mustCreateUser(t, st, "pw@example.com")

	require.NoError(t, st.UpdatePassword(ctx, u.ID, "new-hash"))

	got, err := st.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)

	require.ErrorIs(t, st.UpdatePassword(ctx, uuid.New(), "x"), storage.ErrNotFound)
}

func TestIntegration_FollowGraph_ConcurrentFollowersCountIsExact(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	target := mustCreateUser(t, st, "target@example.com")
	const n = 8
	users := make([]*models.User, n)
	for i := range users {
		users[i] = mustCreateUser(t, st, fmt.Sprintf("u%d@example.com", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, u := range users {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := st.Follow(ctx, id, target.ID)
			errs <- err
		}(u.ID)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := st.UserByID(ctx, target.ID)
	require.NoError(t, err)
	require.EqualValues(t, n, got.FollowersCount)
}
