package storage

import (
	"context"
	"errors"

	"github.com/grocerly/auth-service/internal/models"
)

var (
	// ErrNotFound — запись не найдена (пользователь/токен).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (username/email/token).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создает нового пользователя в БД.
	// Уникальность username и email обеспечивается ограничениями БД;
	// при нарушении возвращается ErrAlreadyExists.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByUsername находит пользователя по username.
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

// BlacklistStorage выполняет операции над чёрным списком refresh-токенов.
type BlacklistStorage interface {
	// SaveRevokedToken добавляет токен в чёрный список.
	// Повторная попытка для того же токена возвращает ErrAlreadyExists.
	SaveRevokedToken(ctx context.Context, token *models.RevokedToken) error
	// IsTokenRevoked проверяет присутствие токена в чёрном списке.
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	BlacklistStorage
	Close()
}
