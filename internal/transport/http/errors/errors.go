// errors стандартизирует ответы об ошибках HTTP-слоя story-reader.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Ожидаемые исходы чтения (not_found, offline_missing, redirect) ошибками
// не являются: их кодируют хендлеры через WriteCode/ответ с kind.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/story-reader/internal/service"
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ для фронта.
//
// Маппинг:
//   - service.ErrInvalidArgument -> 400;
//   - service.ErrUpstreamUnavailable -> 502 (origin недоступен/офлайн);
//   - context.DeadlineExceeded -> 504;
//   - прочее (включая err == nil — программная ошибка вызова) -> 500/internal.
func ToHTTP(err error) (int, ErrorResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, response("internal", "internal error")
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, response("invalid_argument", "invalid argument")
	case errors.Is(err, service.ErrUpstreamUnavailable):
		return http.StatusBadGateway, response("upstream_unavailable", "content origin unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, response("deadline_exceeded", "deadline exceeded")
	default:
		return http.StatusInternalServerError, response("internal", "internal error")
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	write(w, r, status, resp)
}

// WriteCode — явный ответ-ошибка с заданным статусом и кодом: хендлеры
// используют его для первоклассных исходов, не являющихся ошибками
// сервисного слоя (not_found, offline_missing).
func WriteCode(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	write(w, r, status, response(code, message))
}

func response(code, message string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: message}}
}

func write(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
