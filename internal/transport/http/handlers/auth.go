// handlers реализует REST-эндпоинты auth-сервиса.
// Здесь выполняется только разбор запросов и маппинг данных/ошибок
// доменного слоя (service) в HTTP. Вся валидация и бизнес-логика — в service.
package handlers

import (
	"net/http"

	"github.com/grocerly/auth-service/internal/service"
	"github.com/grocerly/auth-service/internal/transport/http/httperr"
	"github.com/grocerly/auth-service/internal/transport/http/middleware"
	"github.com/grocerly/auth-service/internal/transport/http/models"
)

// RegisterUser регистрирует пользователя и возвращает публичное представление.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	user, err := h.Service.RegisterUser(r.Context(), in.ToRegisterParams())
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.UserPublicFrom(user))
}

// LoginUser аутентифицирует пользователя и возвращает пару токенов.
func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var in models.LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	pair, err := h.Service.LoginUser(r.Context(), in.Username, in.Password)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponseFrom(pair))
}

// RefreshToken выпускает новый access-токен по refresh-токену.
// Строка refresh-токена в ответе совпадает с присланной (ротации нет).
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var in models.RefreshRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	pair, err := h.Service.RefreshTokens(r.Context(), in.RefreshToken)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponseFrom(pair))
}

// LogoutUser отзывает refresh-токен.
func (h *Handlers) LogoutUser(w http.ResponseWriter, r *http.Request) {
	var in models.LogoutRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrBadRequest)
		return
	}

	if err := h.Service.LogoutUser(r.Context(), in.RefreshToken); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.LogoutResponse{Detail: "successfully logged out"})
}

// CurrentUser возвращает учётную запись владельца Bearer-токена.
func (h *Handlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		httperr.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	user, err := h.Service.CurrentUser(r.Context(), token)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.UserPublicFrom(user))
}
