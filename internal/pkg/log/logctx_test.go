package log

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Тесты для internal/pkg/log.
//
// Важно: тесты меняют slog.Default(), поэтому намеренно НЕ используют t.Parallel().

func newSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// capHandler — slog.Handler, запоминающий атрибуты последней записи.
type capHandler struct {
	base  []slog.Attr
	attrs map[string]any
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+4)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &capHandler{base: append(append([]slog.Attr{}, h.base...), attrs...)}
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func TestFrom_ReturnsDefault_WhenNoLoggerInContext(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	require.Equal(t, def, From(context.Background()))
}

func TestIntoAndFrom_RoundTrip(t *testing.T) {
	l := newSilent()
	ctx := Into(context.Background(), l)

	require.Equal(t, l, From(ctx))
}

// From устойчив к «мусорным» значениям по нашему ключу и к *slog.Logger(nil).
func TestFrom_ReturnsDefault_WhenStoredValueIsWrongTypeOrNil(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	def := newSilent()
	slog.SetDefault(def)

	ctxWrong := context.WithValue(context.Background(), ctxKey{}, "not-a-logger")
	require.Equal(t, def, From(ctxWrong))

	var nilLogger *slog.Logger
	ctxNil := context.WithValue(context.Background(), ctxKey{}, nilLogger)
	require.Equal(t, def, From(ctxNil))
}

// With добавляет атрибуты, не трогая логгер родительского контекста.
func TestWith_AddsAttrs(t *testing.T) {
	h := &capHandler{}
	parent := Into(context.Background(), slog.New(h))

	child := With(parent, "user_id", "u-1")
	From(child).Info("hello")

	// Атрибуты дочернего логгера живут в его копии хендлера.
	childHandler, ok := From(child).Handler().(*capHandler)
	require.True(t, ok)
	require.Equal(t, "u-1", childHandler.attrs["user_id"])

	From(parent).Info("parent")
	_, has := h.attrs["user_id"]
	require.False(t, has)
}

// Detached сохраняет логгер, но отвязывает отмену и дедлайн.
func TestDetached_KeepsLoggerDropsDeadline(t *testing.T) {
	l := newSilent()
	ctx, cancel := context.WithTimeout(Into(context.Background(), l), 10*time.Millisecond)
	cancel()

	bg := Detached(ctx)
	require.Equal(t, l, From(bg))
	require.NoError(t, bg.Err())

	_, ok := bg.Deadline()
	require.False(t, ok)
}
