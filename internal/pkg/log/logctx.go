// log переносит request-scoped *slog.Logger через context.Context.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into кладёт логгер в контекст.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From достаёт логгер из контекста (или возвращает slog.Default()).
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}

	return slog.Default()
}

// With дописывает атрибуты к логгеру из контекста и кладёт результат обратно.
// Используется мидлварами, когда в запросе появляется новый контекст (например, user_id).
func With(ctx context.Context, args ...any) context.Context {
	return Into(ctx, From(ctx).With(args...))
}

// Detached возвращает новый фоновый контекст, в котором сохранён логгер исходного.
// Нужен для fire-and-forget задач, переживающих запрос.
func Detached(ctx context.Context) context.Context {
	return Into(context.Background(), From(ctx))
}
