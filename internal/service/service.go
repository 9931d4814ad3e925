// service содержит бизнес-логику blog-service: материалы, комментарии,
// реестр вовлечённости (лайки, закладки) и граф подписок.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pribylovaa/go-blog-service/internal/cache"
	"github.com/pribylovaa/go-blog-service/internal/config"
	"github.com/pribylovaa/go-blog-service/internal/metrics"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/pkg/log"
	"github.com/pribylovaa/go-blog-service/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — сущность отсутствует (или не видна вызывающему).
	ErrNotFound = errors.New("not found")
	// ErrForbidden — вызывающий не владелец ресурса.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated — нет проверенной личности вызывающего.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials — неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken — токен не прошёл проверку.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
	// ErrAlreadyExists — конфликт уникальности (email, подписка).
	ErrAlreadyExists = errors.New("already exists")
	// ErrParentNotFound — родительский комментарий не найден.
	ErrParentNotFound = errors.New("parent not found")
	// ErrMaxDepthExceeded — превышена максимально допустимая глубина.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")
	// ErrInvalidCursor — битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInternal — внутренняя ошибка (стораж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// FieldError — ошибка валидации с именем поля. errors.Is(err, ErrInvalidArgument) == true.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidArgument }

func invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// Deps — хранилища, с которыми работает сервис.
type Deps struct {
	Contents   storage.ContentStorage
	Comments   storage.CommentsStorage
	Engagement storage.EngagementStorage
	Users      storage.UsersStorage
	Media      storage.MediaStorage
}

// Service — описывает бизнес-логику blog-service.
type Service struct {
	contents storage.ContentStorage
	comments storage.CommentsStorage
	ledger   storage.EngagementStorage
	users    storage.UsersStorage
	media    storage.MediaStorage
	cfg      config.Config

	featured cache.FeaturedCache
	metrics  *metrics.Metrics

	bg  sync.WaitGroup
	now func() time.Time
}

// New создает новый экземпляр Service.
func New(deps Deps, cfg config.Config) *Service {
	return &Service{
		contents: deps.Contents,
		comments: deps.Comments,
		ledger:   deps.Engagement,
		users:    deps.Users,
		media:    deps.Media,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetFeaturedCache подключает кэш подборки избранного (nil отключает).
func (s *Service) SetFeaturedCache(c cache.FeaturedCache) {
	s.featured = c
}

// SetMetrics подключает коллекторы Prometheus.
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Wait дожидается фоновых задач (инкремент просмотров, очистка медиа).
// Вызывается при graceful shutdown после остановки HTTP-сервера.
func (s *Service) Wait() {
	s.bg.Wait()
}

// goBackground запускает побочный эффект вне запроса.
// Ошибка эффекта логируется и считается, но не возвращается вызывающему.
func (s *Service) goBackground(ctx context.Context, effect string, fn func(ctx context.Context) error) {
	s.bg.Add(1)

	go func() {
		defer s.bg.Done()

		bctx, cancel := context.WithTimeout(log.Detached(ctx), s.backgroundTimeout())
		defer cancel()

		if err := fn(bctx); err != nil {
			s.secondaryFailure(bctx, effect, err)
		}
	}()
}

func (s *Service) secondaryFailure(ctx context.Context, effect string, err error) {
	log.From(ctx).Warn("secondary effect failed", "effect", effect, "err", err)
	s.metrics.SecondaryFailure(effect)
}

func (s *Service) backgroundTimeout() time.Duration {
	if s.cfg.Timeouts.Background > 0 {
		return s.cfg.Timeouts.Background
	}

	return 10 * time.Second
}

// pageParams нормализует page/limit по лимитам конфигурации.
func (s *Service) pageParams(p models.PageParams) models.PageParams {
	if p.Page <= 0 {
		p.Page = 1
	}

	if p.Limit <= 0 {
		p.Limit = s.cfg.Limits.Default
	}

	if s.cfg.Limits.Max > 0 && p.Limit > s.cfg.Limits.Max {
		p.Limit = s.cfg.Limits.Max
	}

	if p.Limit <= 0 {
		p.Limit = 10
	}

	return p
}
