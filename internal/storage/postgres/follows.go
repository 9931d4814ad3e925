package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/storage"
)

// Follow создаёт ребро follower -> followee и пересчитывает
// following_count подписчика и followers_count цели в одной транзакции.
// Ошибки: storage.ErrSelfReference, storage.ErrNotFound (нет одной из сторон),
// storage.ErrAlreadyExists (ребро уже есть).
func (s *Storage) Follow(ctx context.Context, followerID, followeeID uuid.UUID) (*models.FollowCounts, error) {
	const op = "storage/postgres/follows/Follow"

	return s.mutateEdge(ctx, op, followerID, followeeID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)`,
			followerID, followeeID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case pgerrcode.UniqueViolation:
					return storage.ErrAlreadyExists
				case pgerrcode.ForeignKeyViolation:
					return storage.ErrNotFound
				case pgerrcode.CheckViolation:
					return storage.ErrSelfReference
				}
			}

			return err
		}

		return nil
	})
}

// Unfollow удаляет ребро и пересчитывает счётчики в той же форме транзакции.
// Нет ребра — storage.ErrNotFound.
func (s *Storage) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) (*models.FollowCounts, error) {
	const op = "storage/postgres/follows/Unfollow"

	return s.mutateEdge(ctx, op, followerID, followeeID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
			followerID, followeeID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return storage.ErrNotFound
		}

		return nil
	})
}

// mutateEdge — общий каркас follow/unfollow:
//  1. блокирует строки обеих сторон в детерминированном порядке (без дедлоков);
//  2. выполняет изменение ребра;
//  3. пересчитывает оба кэш-счётчика из follows и коммитит.
func (s *Storage) mutateEdge(ctx context.Context, op string, followerID, followeeID uuid.UUID, mutate func(pgx.Tx) error) (*models.FollowCounts, error) {
	if followerID == followeeID {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrSelfReference)
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx,
		`SELECT id FROM users WHERE id IN ($1, $2) ORDER BY id FOR UPDATE`,
		followerID, followeeID)
	if err != nil {
		return nil, fmt.Errorf("%s: lock: %w", op, err)
	}

	locked := 0
	for rows.Next() {
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: lock: %w", op, err)
	}

	if locked != 2 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if err := mutate(tx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var counts models.FollowCounts
	if err := tx.QueryRow(ctx, `
	UPDATE users
	SET following_count = (SELECT count(*) FROM follows WHERE follower_id = $1), updated_at = now()
	WHERE id = $1
	RETURNING following_count`, followerID).Scan(&counts.FollowingCount); err != nil {
		return nil, fmt.Errorf("%s: recount following: %w", op, err)
	}

	if err := tx.QueryRow(ctx, `
	UPDATE users
	SET followers_count = (SELECT count(*) FROM follows WHERE followee_id = $1), updated_at = now()
	WHERE id = $1
	RETURNING followers_count`, followeeID).Scan(&counts.FollowersCount); err != nil {
		return nil, fmt.Errorf("%s: recount followers: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	return &counts, nil
}

// IsFollowing — есть ли ребро follower -> followee.
func (s *Storage) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	const op = "storage/postgres/follows/IsFollowing"

	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerID, followeeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// Followers — подписчики пользователя, новые рёбра сначала.
func (s *Storage) Followers(ctx context.Context, userID uuid.UUID, p models.PageParams) (*models.UserPage, error) {
	const op = "storage/postgres/follows/Followers"

	page, err := s.edgePage(ctx, "follower_id", "followee_id", userID, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// Following — на кого подписан пользователь, новые рёбра сначала.
func (s *Storage) Following(ctx context.Context, userID uuid.UUID, p models.PageParams) (*models.UserPage, error) {
	const op = "storage/postgres/follows/Following"

	page, err := s.edgePage(ctx, "followee_id", "follower_id", userID, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// edgePage выбирает пользователей из колонки pick по рёбрам, где колонка by = userID.
// Имена колонок — константы вызывающих функций, не пользовательский ввод.
func (s *Storage) edgePage(ctx context.Context, pick, by string, userID uuid.UUID, p models.PageParams) (*models.UserPage, error) {
	var total int64
	if err := s.db.QueryRow(ctx,
		`SELECT count(*) FROM follows WHERE `+by+` = $1`, userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	q := `
	SELECT ` + prefixedUserColumns + `
	FROM follows f
	JOIN users u ON u.id = f.` + pick + `
	WHERE f.` + by + ` = $1
	ORDER BY f.created_at DESC, u.id
	LIMIT $2 OFFSET $3`

	rows, err := s.db.Query(ctx, q, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	items := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		items = append(items, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return &models.UserPage{
		Items:    items,
		PageInfo: models.PageInfo{Page: p.Page, Limit: p.Limit, Total: total},
	}, nil
}
