// errors стандартизирует ответы HTTP-слоя blog-service.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей;
//   - единый конверт ответа {success, data, error, pagination}.
//
// Источник истинности по ошибкам: sentinel-ошибки internal/service.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/go-blog-service/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат ошибки для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Pagination — метаданные страницы списка.
type Pagination struct {
	Page          int32  `json:"page,omitempty"`
	Limit         int32  `json:"limit,omitempty"`
	Total         int64  `json:"total"`
	TotalPages    int64  `json:"totalPages"`
	HasMore       bool   `json:"hasMore"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

// Envelope — корневой объект любого ответа API.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Error      *APIError   `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и APIError.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
//   - *service.FieldError - 400, message называет поле и причину.
//   - sentinel-ошибки сервиса маппятся через baseFromService().
//   - отмена/таймаут контекста - 499/504.
//   - прочее - 500/internal (без утечки деталей).
func ToHTTP(err error) (int, APIError) {
	if err == nil {
		return http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"}
	}

	var fe *service.FieldError
	if stderrors.As(err, &fe) {
		return http.StatusBadRequest, APIError{Code: "invalid_argument", Message: fe.Error()}
	}

	status, code, msg := baseFromService(err)

	return status, APIError{Code: code, Message: msg}
}

// WriteError — хелпер для HTTP-хендлеров и мидлваров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, apiErr := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		apiErr.RequestID = rid
	}

	WriteJSON(w, status, Envelope{Success: false, Error: &apiErr})
}

// WriteJSON — единый ответ JSON с нужным Content-Type.
func WriteJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// baseFromService — базовый маппинг ошибок сервиса -> HTTP/FE-код/сообщение:
//   - InvalidArgument / InvalidCursor -> 400
//   - Unauthenticated / InvalidToken / TokenExpired / InvalidCredentials -> 401
//   - Forbidden -> 403
//   - NotFound / ParentNotFound -> 404
//   - AlreadyExists -> 409
//   - MaxDepthExceeded -> 412
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504
//   - прочее -> 500/internal
func baseFromService(err error) (int, string, string) {
	switch {
	case stderrors.Is(err, service.ErrInvalidCursor):
		return http.StatusBadRequest, "invalid_argument", "invalid page token"
	case stderrors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case stderrors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, "token_expired", "token expired"
	case stderrors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid_token", "invalid token"
	case stderrors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid email or password"
	case stderrors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case stderrors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "permission_denied", "permission denied"
	case stderrors.Is(err, service.ErrParentNotFound):
		return http.StatusNotFound, "parent_not_found", "parent comment not found"
	case stderrors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case stderrors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict, "already_exists", "already exists"
	case stderrors.Is(err, service.ErrMaxDepthExceeded):
		return http.StatusPreconditionFailed, "failed_precondition", "max reply depth exceeded"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
