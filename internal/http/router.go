package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-blog-service/internal/errors"
	"github.com/pribylovaa/go-blog-service/internal/http/handlers"
	"github.com/pribylovaa/go-blog-service/internal/http/middleware"
	"github.com/pribylovaa/go-blog-service/internal/metrics"
	"github.com/pribylovaa/go-blog-service/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(opts.Metrics),
		middleware.Authenticate(svc), // Bearer -> id пользователя в контексте
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, r, service.ErrNotFound)
	})
	root.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteJSON(w, http.StatusMethodNotAllowed, apierrors.Envelope{
			Error: &apierrors.APIError{
				Code:      "method_not_allowed",
				Message:   "method not allowed",
				RequestID: r.Header.Get("X-Request-Id"),
			},
		})
	})

	h := handlers.New(svc)

	if opts.BasePath != "" {
		root.Route(opts.BasePath, func(r chi.Router) {
			registerRoutes(r, h)
		})
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// auth
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Get("/auth/me", h.Me)
	r.Put("/auth/password", h.UpdatePassword)
	r.Delete("/auth/account", h.DeleteAccount)

	// users
	r.Patch("/users/me", h.UpdateMe)
	r.Get("/users/{id}", h.GetUser)
	r.Get("/users/{id}/followers", h.Followers)
	r.Get("/users/{id}/following", h.Following)
	r.Put("/users/{id}/follow", h.Follow)
	r.Put("/users/{id}/unfollow", h.Unfollow)
	r.Get("/users/{id}/is-following", h.IsFollowing)

	// contents
	r.Get("/contents", h.ListContents)
	r.Post("/contents", h.CreateContent)
	r.Get("/contents/featured", h.ListFeatured)
	r.Get("/contents/me", h.ListMine)
	r.Get("/contents/slug/{slug}", h.GetBySlug)
	r.Get("/contents/{id}", h.GetByID)
	r.Patch("/contents/{id}", h.UpdateContent)
	r.Delete("/contents/{id}", h.DeleteContent)
	r.Put("/contents/{id}/like", h.LikeContent)

	// comments
	r.Get("/contents/{id}/comments", h.ListComments)
	r.Post("/contents/{id}/comments", h.CreateComment)
	r.Get("/comments/{id}", h.GetComment)
	r.Patch("/comments/{id}", h.UpdateComment)
	r.Delete("/comments/{id}", h.DeleteComment)
	r.Put("/comments/{id}/like", h.LikeComment)

	// bookmarks
	r.Put("/contents/{id}/bookmark", h.ToggleBookmark)
	r.Get("/contents/{id}/is-bookmarked", h.IsBookmarked)
	r.Delete("/contents/{id}/bookmark", h.RemoveBookmark)
	r.Get("/bookmarks", h.ListBookmarks)

	// uploads
	r.Post("/uploads/image", h.UploadImage)
	r.Post("/uploads/images", h.UploadImages)
	r.Delete("/uploads/image/*", h.DeleteImage)
}
