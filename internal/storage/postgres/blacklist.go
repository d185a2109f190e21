package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/grocerly/auth-service/internal/models"
	"github.com/grocerly/auth-service/internal/storage"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// SaveRevokedToken добавляет refresh-токен в чёрный список.
// Уникальность token гарантирует, что токен попадает в список не более
// одного раза; дубликат возвращается как storage.ErrAlreadyExists.
func (s *Storage) SaveRevokedToken(ctx context.Context, token *models.RevokedToken) error {
	const op = "storage.postgres.SaveRevokedToken"

	query := `
		INSERT INTO token_blacklist(id, token)
		VALUES ($1, $2)
	`

	_, err := s.db.Exec(ctx, query, token.ID, token.Token)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// IsTokenRevoked проверяет присутствие токена в чёрном списке.
func (s *Storage) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	const op = "storage.postgres.IsTokenRevoked"

	query := `
		SELECT EXISTS(
			SELECT 1 FROM token_blacklist WHERE token = $1
		)
	`

	var revoked bool
	if err := s.db.QueryRow(ctx, query, token).Scan(&revoked); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return revoked, nil
}
