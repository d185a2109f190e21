package postgres

import (
	"context"
	"testing"

	"github.com/grocerly/auth-service/internal/models"
	"github.com/grocerly/auth-service/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Интеграционные тесты репозитория blacklist.go; инфраструктура
// (testcontainers, миграции) — в user_test.go.

func TestSaveRevokedToken_And_Membership(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	const token = "header.payload.signature-1"

	revoked, err := st.IsTokenRevoked(ctx, token)
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, st.SaveRevokedToken(ctx, &models.RevokedToken{
		ID:    uuid.New(),
		Token: token,
	}))

	revoked, err = st.IsTokenRevoked(ctx, token)
	require.NoError(t, err)
	require.True(t, revoked)

	// Другой токен остаётся незатронутым.
	revoked, err = st.IsTokenRevoked(ctx, "header.payload.signature-2")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestSaveRevokedToken_Duplicate(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	const token = "header.payload.signature-dup"

	require.NoError(t, st.SaveRevokedToken(ctx, &models.RevokedToken{
		ID:    uuid.New(),
		Token: token,
	}))

	// Токен попадает в список не более одного раза.
	err := st.SaveRevokedToken(ctx, &models.RevokedToken{
		ID:    uuid.New(),
		Token: token,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}
