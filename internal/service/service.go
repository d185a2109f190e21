// service содержит бизнес-логику auth-сервиса:
// регистрацию/аутентификацию пользователей, выпуск/проверку токенов
// и работу с хранилищем через интерфейсы из пакета storage.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Ошибки возвращаются и далее маппятся
//     транспортом на HTTP-статусы (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/grocerly/auth-service/internal/cache"
	"github.com/grocerly/auth-service/internal/config"
	"github.com/grocerly/auth-service/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Транспорт: HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен (access/refresh) некорректен по формату/подписи
	// или не содержит subject. Транспорт: HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Транспорт: HTTP 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrWrongTokenType — предъявлен токен не того вида (например, access
	// вместо refresh). Транспорт: HTTP 401.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrTokenRevoked — refresh-токен находится в чёрном списке (logout)
	// и недействителен независимо от срока. Транспорт: HTTP 401.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrUsernameTaken — username уже занят другим пользователем.
	// Транспорт: HTTP 409.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken — e-mail уже занят другим пользователем.
	// Транспорт: HTTP 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrUserNotFound — учётная запись из subject токена отсутствует
	// (например, была удалена). Транспорт: HTTP 404.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidUsername — username пустой или длиннее 50 символов.
	// Транспорт: HTTP 400.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidEmail — e-mail имеет некорректный формат или длиннее 100 символов.
	// Транспорт: HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль короче минимальной длины.
	// Транспорт: HTTP 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. Транспорт: HTTP 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidProfile — профильные атрибуты вне допустимых границ
	// (housing_size 1..100, budget_pref >= 0, лимиты длин). Транспорт: HTTP 400.
	ErrInvalidProfile = errors.New("invalid profile attributes")
)

// Service описывает бизнес-логику auth-сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	rcache  cache.RevocationCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// SetRevocationCache устанавливает кэш отозванных токенов (опционально).
func (s *Service) SetRevocationCache(c cache.RevocationCache) {
	s.rcache = c
}
