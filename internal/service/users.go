package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-blog-service/internal/metrics"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/pkg/log"
	"github.com/pribylovaa/go-blog-service/internal/pkg/redact"
	"github.com/pribylovaa/go-blog-service/internal/storage"
)

const (
	minPasswordLen = 5
	// bcrypt не принимает пароли длиннее 72 байт.
	maxPasswordBytes = 72
	maxNameLen       = 50
	maxBioLen        = 500
)

// RegisterInput — данные регистрации.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// UpdateProfileInput — частичное обновление профиля: nil означает «не менять».
// Avatar — data URI (загружается в хранилище), URL или "" (снять аватар).
type UpdateProfileInput struct {
	Name   *string
	Bio    *string
	Avatar *string
}

// Register регистрирует пользователя и сразу выдаёт access-токен.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, *models.Token, error) {
	const op = "service/users/Register"

	lg := log.From(ctx).With("op", op, "email", redact.Email(in.Email))

	email, err := validateEmail(in.Email)
	if err != nil {
		lg.Warn("invalid argument: email")
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	name, err := validateName(in.Name)
	if err != nil {
		lg.Warn("invalid argument: name")
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validatePassword(in.Password); err != nil {
		lg.Warn("invalid argument: password")
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		lg.Error("password hashing failed", "err", err)
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			lg.Warn("email already registered")
			return nil, nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}

		lg.Error("storage error on CreateUser", "err", err)
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	token, err := s.issueAccessToken(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, token, nil
}

// Login выполняет вход по email+пароль.
// Неизвестный email и неверный пароль неразличимы: ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, *models.Token, error) {
	const op = "service/users/Login"

	lg := log.From(ctx).With("op", op, "email", redact.Email(email))

	normEmail, err := validateEmail(email)
	if err != nil || password == "" {
		lg.Warn("invalid credentials: malformed input")
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.users.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("invalid credentials: unknown email")
			return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		lg.Error("storage error on UserByEmail", "err", err)
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if !checkPassword(user.PasswordHash, password) {
		lg.Warn("invalid credentials: wrong password")
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.issueAccessToken(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, token, nil
}

// UserByID — публичный профиль со счётчиками подписок и числом опубликованных материалов.
func (s *Service) UserByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	const op = "service/users/UserByID"

	lg := log.From(ctx).With("op", op, "target_id", id.String())

	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	published, err := s.contents.CountPublishedByAuthor(ctx, user.ID)
	if err != nil {
		lg.Error("storage error on CountPublishedByAuthor", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return &models.Profile{User: *user, PublishedCount: published}, nil
}

// UpdateProfile меняет имя, описание и аватар вызывающего.
// Старый загруженный аватар удаляется в фоне после успешного сохранения.
func (s *Service) UpdateProfile(ctx context.Context, caller uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	const op = "service/users/UpdateProfile"

	lg := log.From(ctx).With("op", op, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	var upd models.UserUpdate

	if in.Name != nil {
		name, err := validateName(*in.Name)
		if err != nil {
			lg.Warn("invalid argument: name")
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upd.Name = &name
	}

	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if utf8.RuneCountInString(bio) > maxBioLen {
			lg.Warn("invalid argument: bio")
			return nil, fmt.Errorf("%s: %w", op, invalid("bio", fmt.Sprintf("must be at most %d characters", maxBioLen)))
		}
		upd.Bio = &bio
	}

	cur, err := s.loadUser(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		newAvatar *models.Media
		uploaded  bool
	)

	if in.Avatar != nil {
		raw := strings.TrimSpace(*in.Avatar)
		switch {
		case raw == "":
			upd.Avatar = &raw
		case raw == cur.Avatar:
		default:
			newAvatar, uploaded, err = s.resolveMedia(ctx, raw, ownerFolder(folderAvatars, caller), "avatar")
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			upd.Avatar = &newAvatar.URL
		}
	}

	user, err := s.users.UpdateUser(ctx, caller, upd)
	if err != nil {
		if uploaded {
			s.deleteMediaAsync(ctx, newAvatar.ID)
		}

		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("user not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UpdateUser", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if upd.Avatar != nil && cur.Avatar != "" && cur.Avatar != user.Avatar {
		s.deleteMediaAsync(ctx, ownedMedia(lg, caller, models.MediaIDFromURL(cur.Avatar))...)
	}

	return user, nil
}

// UpdatePassword меняет пароль вызывающего после проверки текущего
// и выдаёт новый access-токен.
func (s *Service) UpdatePassword(ctx context.Context, caller uuid.UUID, current, next string) (*models.User, *models.Token, error) {
	const op = "service/users/UpdatePassword"

	lg := log.From(ctx).With("op", op, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	user, err := s.loadUser(ctx, caller)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if current == "" || !checkPassword(user.PasswordHash, current) {
		lg.Warn("invalid credentials: wrong current password")
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := validatePassword(next); err != nil {
		lg.Warn("invalid argument: password")
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := hashPassword(next)
	if err != nil {
		lg.Error("password hashing failed", "err", err)
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.users.UpdatePassword(ctx, caller, hash); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("user not found")
			return nil, nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on UpdatePassword", "err", err)
		return nil, nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	token, err := s.issueAccessToken(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, token, nil
}

// DeleteAccount удаляет учётную запись вызывающего.
//
// Сначала удаляются его материалы, затем сам пользователь вместе с подписками
// (счётчики второй стороны пересчитываются в той же транзакции). Повтор после
// частичного сбоя безопасен. Комментарии, лайки и закладки удалённых материалов,
// а также папки медиа пользователя зачищаются в фоне.
func (s *Service) DeleteAccount(ctx context.Context, caller uuid.UUID) error {
	const op = "service/users/DeleteAccount"

	lg := log.From(ctx).With("op", op, "user_id", caller.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if _, err := s.loadUser(ctx, caller); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.contents.DeleteByAuthor(ctx, caller)
	if err != nil {
		lg.Error("storage error on DeleteByAuthor", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.users.DeleteUser(ctx, caller); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("user not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on DeleteUser", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Info("account deleted", "contents", len(items))

	featured := false
	for i := range items {
		contentID := items[i].ID
		s.goBackground(ctx, metrics.EffectCascade, func(ctx context.Context) error {
			return s.cascadeContent(ctx, contentID)
		})
		featured = featured || items[i].Featured
	}

	for _, base := range []string{folderImages, folderCovers, folderAvatars} {
		folder := ownerFolder(base, caller)
		s.goBackground(ctx, metrics.EffectMediaCleanup, func(ctx context.Context) error {
			return s.media.DeleteFolder(ctx, folder)
		})
	}

	if featured {
		s.invalidateFeatured(ctx)
	}

	return nil
}

// Follow подписывает вызывающего на target.
// Обе стороны (ребро и оба счётчика) пишутся одной транзакцией стоража.
func (s *Service) Follow(ctx context.Context, caller, target uuid.UUID) (*models.FollowCounts, error) {
	const op = "service/users/Follow"

	lg := log.From(ctx).With("op", op, "user_id", caller.String(), "target_id", target.String())

	if err := checkEdge(caller, target); err != nil {
		lg.Warn("invalid edge", "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts, err := s.users.Follow(ctx, caller, target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapEdgeErr(lg, "Follow", err))
	}

	return counts, nil
}

// Unfollow снимает подписку. Подписки нет -> ErrNotFound.
func (s *Service) Unfollow(ctx context.Context, caller, target uuid.UUID) (*models.FollowCounts, error) {
	const op = "service/users/Unfollow"

	lg := log.From(ctx).With("op", op, "user_id", caller.String(), "target_id", target.String())

	if err := checkEdge(caller, target); err != nil {
		lg.Warn("invalid edge", "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts, err := s.users.Unfollow(ctx, caller, target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapEdgeErr(lg, "Unfollow", err))
	}

	return counts, nil
}

// IsFollowing сообщает, подписан ли вызывающий на target.
func (s *Service) IsFollowing(ctx context.Context, caller, target uuid.UUID) (bool, error) {
	const op = "service/users/IsFollowing"

	lg := log.From(ctx).With("op", op, "user_id", caller.String(), "target_id", target.String())

	if caller == uuid.Nil {
		lg.Warn("unauthenticated")
		return false, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	ok, err := s.users.IsFollowing(ctx, caller, target)
	if err != nil {
		lg.Error("storage error on IsFollowing", "err", err)
		return false, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return ok, nil
}

// Followers — подписчики пользователя, новые сверху.
func (s *Service) Followers(ctx context.Context, id uuid.UUID, p models.PageParams) (*models.UserPage, error) {
	return s.edgeList(ctx, "service/users/Followers", id, p, s.users.Followers)
}

// Following — подписки пользователя, новые сверху.
func (s *Service) Following(ctx context.Context, id uuid.UUID, p models.PageParams) (*models.UserPage, error) {
	return s.edgeList(ctx, "service/users/Following", id, p, s.users.Following)
}

func (s *Service) edgeList(
	ctx context.Context,
	op string,
	id uuid.UUID,
	p models.PageParams,
	list func(context.Context, uuid.UUID, models.PageParams) (*models.UserPage, error),
) (*models.UserPage, error) {
	lg := log.From(ctx).With("op", op, "target_id", id.String())

	if _, err := s.loadUser(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, err := list(ctx, id, s.pageParams(p))
	if err != nil {
		lg.Error("storage error on edge list", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return page, nil
}

func (s *Service) loadUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	lg := log.From(ctx).With("target_id", id.String())

	if id == uuid.Nil {
		lg.Warn("invalid argument: empty user id")
		return nil, invalid("id", "is required")
	}

	user, err := s.users.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("user not found")
			return nil, ErrNotFound
		}

		lg.Error("storage error on UserByID", "err", err)
		return nil, ErrInternal
	}

	return user, nil
}

func checkEdge(caller, target uuid.UUID) error {
	if caller == uuid.Nil {
		return ErrUnauthenticated
	}

	if target == uuid.Nil {
		return invalid("id", "is required")
	}

	if caller == target {
		return invalid("id", "cannot follow yourself")
	}

	return nil
}

func mapEdgeErr(lg *slog.Logger, method string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		lg.Warn("user or edge not found")
		return ErrNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		lg.Warn("already following")
		return ErrAlreadyExists
	case errors.Is(err, storage.ErrSelfReference):
		lg.Warn("self follow")
		return invalid("id", "cannot follow yourself")
	default:
		lg.Error("storage error on "+method, "err", err)
		return ErrInternal
	}
}

// validateEmail проверяет базовый формат email и приводит его к нижнему регистру.
func validateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", invalid("email", "is required")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("email", "is malformed")
	}

	return strings.ToLower(email), nil
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", invalid("name", "is required")
	}

	if utf8.RuneCountInString(name) > maxNameLen {
		return "", invalid("name", fmt.Sprintf("must be at most %d characters", maxNameLen))
	}

	return name, nil
}

func validatePassword(pw string) error {
	if pw == "" {
		return invalid("password", "is required")
	}

	if utf8.RuneCountInString(pw) < minPasswordLen {
		return invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}

	if len(pw) > maxPasswordBytes {
		return invalid("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}

	return nil
}
