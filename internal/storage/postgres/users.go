package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/storage"
)

// userColumns — единый список колонок таблицы users,
// используемый в SELECT/RETURNING, чтобы гарантировать одинаковый порядок сканирования.
const userColumns = `
id, email, name, bio, avatar, password_hash, followers_count, following_count, created_at, updated_at
`

// prefixedUserColumns — те же колонки с алиасом u для запросов с JOIN.
const prefixedUserColumns = `
u.id, u.email, u.name, u.bio, u.avatar, u.password_hash, u.followers_count, u.following_count, u.created_at, u.updated_at
`

// scanUser сканирует одну строку пользователя в доменную модель.
func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Bio,
		&u.Avatar,
		&u.PasswordHash,
		&u.FollowersCount,
		&u.FollowingCount,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()

	return &u, nil
}

// CreateUser вставляет нового пользователя.
// Ошибки: storage.ErrAlreadyExists при конфликте уникальности (id/email).
func (s *Storage) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	const op = "storage/postgres/users/CreateUser"

	q := `
	INSERT INTO users (id, email, name, bio, avatar, password_hash)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING
	` + userColumns

	out, err := scanUser(s.db.QueryRow(ctx, q, u.ID, u.Email, u.Name, u.Bio, u.Avatar, u.PasswordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UserByEmail находит пользователя по email.
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage/postgres/users/UserByEmail"

	return s.userBy(ctx, op, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// UserByID находит пользователя по ID.
func (s *Storage) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage/postgres/users/UserByID"

	return s.userBy(ctx, op, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *Storage) userBy(ctx context.Context, op, q string, arg any) (*models.User, error) {
	out, err := scanUser(s.db.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdateUser выполняет частичный апдейт: обновляет только поля,
// указанные непустыми pointer-полями, и всегда сдвигает updated_at = now().
// Ошибки: storage.ErrNotFound при отсутствии записи.
func (s *Storage) UpdateUser(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	const op = "storage/postgres/users/UpdateUser"

	sets := []string{"updated_at = now()"}
	args := make([]any, 0, 4)
	count := 0

	add := func(col string, v *string) {
		if v == nil {
			return
		}
		count++
		sets = append(sets, fmt.Sprintf("%s = $%d", col, count))
		args = append(args, *v)
	}

	add("name", upd.Name)
	add("bio", upd.Bio)
	add("avatar", upd.Avatar)

	count++
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), count, userColumns)

	out, err := scanUser(s.db.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdatePassword заменяет хэш пароля и сдвигает updated_at.
// Ошибки: storage.ErrNotFound при отсутствии записи.
func (s *Storage) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	const op = "storage/postgres/users/UpdatePassword"

	tag, err := s.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`,
		hash, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteUser удаляет пользователя в одной транзакции:
//  1. блокирует строку пользователя и запоминает обе стороны его рёбер;
//  2. удаляет пользователя (рёбра follows уходят каскадом);
//  3. пересчитывает followers_count тех, на кого он был подписан,
//     и following_count его подписчиков.
//
// Ошибки: storage.ErrNotFound при отсутствии записи.
func (s *Storage) DeleteUser(ctx context.Context, id uuid.UUID) error {
	const op = "storage/postgres/users/DeleteUser"

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: lock: %w", op, err)
	}

	followees, err := collectIDs(ctx, tx, `SELECT followee_id FROM follows WHERE follower_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: followees: %w", op, err)
	}

	followers, err := collectIDs(ctx, tx, `SELECT follower_id FROM follows WHERE followee_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: followers: %w", op, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: delete: %w", op, err)
	}

	if len(followees) > 0 {
		if _, err := tx.Exec(ctx, `
		UPDATE users u
		SET followers_count = (SELECT count(*) FROM follows f WHERE f.followee_id = u.id), updated_at = now()
		WHERE u.id = ANY($1)`, followees); err != nil {
			return fmt.Errorf("%s: recount followers: %w", op, err)
		}
	}

	if len(followers) > 0 {
		if _, err := tx.Exec(ctx, `
		UPDATE users u
		SET following_count = (SELECT count(*) FROM follows f WHERE f.follower_id = u.id), updated_at = now()
		WHERE u.id = ANY($1)`, followers); err != nil {
			return fmt.Errorf("%s: recount following: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func collectIDs(ctx context.Context, tx pgx.Tx, q string, arg uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}
