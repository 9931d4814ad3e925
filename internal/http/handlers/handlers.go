package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	apierrors "github.com/pribylovaa/go-blog-service/internal/errors"
	"github.com/pribylovaa/go-blog-service/internal/http/middleware"
	"github.com/pribylovaa/go-blog-service/internal/models"
	"github.com/pribylovaa/go-blog-service/internal/service"
)

// Тела запросов больше этого размера отклоняются (data URI обложек входят сюда же).
const maxBodyBytes = 12 << 20

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	svc      *service.Service
	validate *validator.Validate
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc, validate: newValidator()}
}

// writeOK — успешный ответ в конверте.
func writeOK(w http.ResponseWriter, status int, data any) {
	apierrors.WriteJSON(w, status, apierrors.Envelope{Success: true, Data: data})
}

// writePage — успешный ответ со страницей по номеру.
func writePage(w http.ResponseWriter, data any, info models.PageInfo) {
	apierrors.WriteJSON(w, http.StatusOK, apierrors.Envelope{
		Success: true,
		Data:    data,
		Pagination: &apierrors.Pagination{
			Page:       info.Page,
			Limit:      info.Limit,
			Total:      info.Total,
			TotalPages: info.TotalPages(),
			HasMore:    info.HasMore(),
		},
	})
}

// writeCursorPage — успешный ответ с курсорной страницей.
func writeCursorPage(w http.ResponseWriter, data any, limit int32, next string) {
	apierrors.WriteJSON(w, http.StatusOK, apierrors.Envelope{
		Success: true,
		Data:    data,
		Pagination: &apierrors.Pagination{
			Limit:         limit,
			HasMore:       next != "",
			NextPageToken: next,
		},
	})
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля и хвост после объекта.
// Прошедший декодирование запрос проверяется validator-ом.
func (h *Handlers) decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		if errors.Is(err, models.ErrInvalidBody) {
			return &service.FieldError{Field: "body", Reason: "must be a string or an object with blocks"}
		}

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &service.FieldError{Field: "request", Reason: "body too large"}
		}

		return &service.FieldError{Field: "request", Reason: "malformed JSON"}
	}

	if dec.More() {
		return &service.FieldError{Field: "request", Reason: "unexpected data after JSON object"}
	}

	return h.validateStruct(value)
}

// caller — id аутентифицированного пользователя; аноним -> ErrUnauthenticated.
func caller(r *http.Request) (uuid.UUID, error) {
	id := middleware.UserIDFrom(r.Context())
	if id == uuid.Nil {
		return uuid.Nil, service.ErrUnauthenticated
	}

	return id, nil
}

// pathUUID достаёт UUID из параметра пути.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, &service.FieldError{Field: name, Reason: "must be a valid UUID"}
	}

	return id, nil
}

// pathID достаёт непустой строковый id из параметра пути.
func pathID(r *http.Request, name string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, name))
	if id == "" {
		return "", &service.FieldError{Field: name, Reason: "is required"}
	}

	return id, nil
}

// queryInt32 читает неотрицательное целое из query; отсутствие -> 0.
func queryInt32(r *http.Request, name string) (int32, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 0 {
		return 0, &service.FieldError{Field: name, Reason: "must be a non-negative integer"}
	}

	return int32(n), nil
}

// pageParams — page/limit из query.
func pageParams(r *http.Request) (models.PageParams, error) {
	page, err := queryInt32(r, "page")
	if err != nil {
		return models.PageParams{}, err
	}

	limit, err := queryInt32(r, "limit")
	if err != nil {
		return models.PageParams{}, err
	}

	return models.PageParams{Page: page, Limit: limit}, nil
}
