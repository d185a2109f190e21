package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grocerly/auth-service/internal/config"
	"github.com/grocerly/auth-service/internal/models"
	"github.com/grocerly/auth-service/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func testAuthCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "unit-test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "auth-service",
	}
}

func newServiceWithMock(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockSt := mocks.NewMockStorage(ctrl)
	svc := New(mockSt, testAuthCfg())
	return svc, mockSt, ctrl
}

func TestIssueToken_AndDecode_RoundTrip(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	ctx := context.Background()
	now := time.Now().UTC()

	for _, tokenType := range []string{models.TokenTypeAccess, models.TokenTypeRefresh} {
		tok, err := svc.issueToken(ctx, "alice", tokenType, time.Hour, now)
		require.NoError(t, err)
		require.NotEmpty(t, tok)

		claims, err := svc.decodeToken(tok)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Subject)
		require.Equal(t, tokenType, claims.TokenType)
		require.True(t, claims.ExpiresAt.After(now), "expiry must be in the future")
		require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt, 2*time.Second)
	}
}

func TestDecodeToken_Expired(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	now := time.Now().UTC()
	tok, err := svc.issueToken(context.Background(), "alice", models.TokenTypeRefresh, -time.Minute, now)
	require.NoError(t, err)

	_, err = svc.decodeToken(tok)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeToken_WrongSecret(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	other := New(nil, config.AuthConfig{
		JWTSecret:       "another-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "auth-service",
	})

	tok, err := other.issueToken(context.Background(), "alice", models.TokenTypeAccess, time.Hour, time.Now().UTC())
	require.NoError(t, err)

	_, err = svc.decodeToken(tok)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeToken_Garbage(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	for _, tok := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := svc.decodeToken(tok)
		require.Error(t, err)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestDecodeToken_WrongAlgRejected(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	// Токен с alg=none не должен приниматься даже с "валидными" claims.
	claims := tokenClaims{
		TokenType: models.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			Issuer:    "auth-service",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.decodeToken(signed)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeToken_WrongIssuerRejected(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	other := New(nil, config.AuthConfig{
		JWTSecret:       "unit-test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "someone-else",
	})

	tok, err := other.issueToken(context.Background(), "alice", models.TokenTypeAccess, time.Hour, time.Now().UTC())
	require.NoError(t, err)

	_, err = svc.decodeToken(tok)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueTokenPair_TypesAndExpiry(t *testing.T) {
	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pair, err := svc.issueTokenPair(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	ac, err := svc.decodeToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, models.TokenTypeAccess, ac.TokenType)
	require.Equal(t, "alice", ac.Subject)

	rc, err := svc.decodeToken(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, models.TokenTypeRefresh, rc.TokenType)
	require.Equal(t, "alice", rc.Subject)

	require.True(t, rc.ExpiresAt.After(ac.ExpiresAt), "refresh must outlive access")
	require.WithinDuration(t, time.Now().Add(svc.cfg.AccessTokenTTL), pair.AccessExpiresAt, 2*time.Second)
}

func TestIsTokenRevoked_StorageFallback(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	st.EXPECT().IsTokenRevoked(gomock.Any(), "some-token").Return(true, nil)

	revoked, err := svc.isTokenRevoked(context.Background(), "some-token")
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestIsTokenRevoked_StorageError(t *testing.T) {
	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	st.EXPECT().IsTokenRevoked(gomock.Any(), "some-token").Return(false, errors.New("db down"))

	_, err := svc.isTokenRevoked(context.Background(), "some-token")
	require.Error(t, err)
}
