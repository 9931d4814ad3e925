// Package models содержит доменные сущности blog-service.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User — модель пользователя в системе.
// PasswordHash наружу не отдаётся никогда: транспорт конвертирует User в DTO без этого поля.
type User struct {
	ID             uuid.UUID
	Email          string
	Name           string
	Bio            string
	Avatar         string
	PasswordHash   string
	FollowersCount int64
	FollowingCount int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Profile — публичное представление пользователя с числом опубликованных материалов.
type Profile struct {
	User
	PublishedCount int64
}

// FollowCounts — счётчики обеих сторон ребра подписки после follow/unfollow.
//   - FollowingCount — сколько подписок у подписчика;
//   - FollowersCount — сколько подписчиков у цели.
type FollowCounts struct {
	FollowingCount int64
	FollowersCount int64
}

// UserPage — страница пользователей (подписчики/подписки).
type UserPage struct {
	Items []User
	PageInfo
}

// Token — выданный access-токен.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// UserUpdate — частичное обновление профиля: nil-поле не меняется.
type UserUpdate struct {
	Name   *string
	Bio    *string
	Avatar *string
}
