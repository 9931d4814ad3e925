package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	apierrors "github.com/pribylovaa/go-blog-service/internal/errors"
	logctx "github.com/pribylovaa/go-blog-service/internal/pkg/log"
	"github.com/pribylovaa/go-blog-service/internal/service"
)

// TokenVerifier проверяет access-токен и возвращает id пользователя.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate извлекает Bearer-токен из Authorization и кладёт id пользователя в контекст.
// Без заголовка запрос идёт дальше анонимно: решение о доступе принимает сервис.
// Битый или просроченный токен сразу даёт 401.
func Authenticate(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			token := ""
			if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
				token = strings.TrimSpace(auth[len(prefix):])
			}

			if token == "" {
				apierrors.WriteError(w, r, fmt.Errorf("middleware/Authenticate: %w", service.ErrInvalidToken))
				return
			}

			uid, err := v.VerifyAccessToken(r.Context(), token)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := WithUserID(r.Context(), uid)
			ctx = logctx.With(ctx, "user_id", uid.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
