// httperr стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку доменного слоя (service), а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Маппинг сентинельных ошибок service:
//   - ErrInvalidUsername/ErrInvalidEmail/ErrWeakPassword/ErrEmptyPassword/
//     ErrInvalidProfile -> 400;
//   - ErrInvalidCredentials/ErrInvalidToken/ErrTokenExpired/
//     ErrWrongTokenType/ErrTokenRevoked -> 401;
//   - ErrUserNotFound -> 404;
//   - ErrUsernameTaken/ErrEmailTaken -> 409;
//   - прочее -> 500/internal (детали остаются в логах).
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grocerly/auth-service/internal/service"
)

// APIError — единый формат ошибки для клиента.
// Code — короткий стабильный код для машиночитаемой обработки.
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

// ErrBadRequest — локальная ошибка разбора запроса (битый JSON,
// неизвестные поля). Не принадлежит доменному слою.
var ErrBadRequest = errors.New("bad request")

// ToHTTP конвертирует ошибку доменного слоя в HTTP-статус
// и унифицированный ответ.
//
// err == nil — это программная ошибка вызова: возвращаем 500/internal,
// чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{
			Error: APIError{Code: "internal", Message: "internal error"},
		}
	}

	status, code, msg := base(err)
	return status, ErrorResponse{
		Error: APIError{Code: code, Message: msg},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// base — таблица маппинга доменных ошибок на HTTP/код/сообщение.
func base(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrInvalidProfile):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"

	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "incorrect username or password"

	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, "token_expired", "token expired"

	case errors.Is(err, service.ErrWrongTokenType):
		return http.StatusUnauthorized, "wrong_token_type", "invalid token type"

	case errors.Is(err, service.ErrTokenRevoked):
		return http.StatusUnauthorized, "token_revoked", "token revoked"

	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid_token", "could not validate credentials"

	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "not_found", "user not found"

	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict, "username_taken", "username already registered"

	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "email_taken", "email already registered"

	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
