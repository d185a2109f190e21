package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/grocerly/auth-service/internal/models"
	"github.com/grocerly/auth-service/internal/pkg/log"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims — формат claims обоих видов токенов. Access и refresh
// структурно идентичны и различаются только полем "type" и TTL.
type tokenClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// issueToken выпускает подписанный токен с subject, видом и сроком now+ttl.
func (s *Service) issueToken(ctx context.Context, subject, tokenType string, ttl time.Duration, now time.Time) (string, error) {
	const op = "service.token.issueToken"

	lg := log.From(ctx)

	claims := tokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		lg.Error("token_sign_failed",
			slog.String("op", op),
			slog.String("type", tokenType),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// decodeToken проверяет подпись и срок действия токена.
// Различает ErrTokenExpired (просрочен) и ErrInvalidToken (подпись/формат),
// чтобы вызывающая сторона могла реагировать по-разному.
func (s *Service) decodeToken(tokenStr string) (*models.TokenClaims, error) {
	const op = "service.token.decodeToken"

	token, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time.UTC()
	}

	return &models.TokenClaims{
		Subject:   claims.Subject,
		TokenType: claims.TokenType,
		ExpiresAt: expiresAt,
	}, nil
}

// issueTokenPair выпускает пару access+refresh токенов для username.
func (s *Service) issueTokenPair(ctx context.Context, username string) (*models.TokenPair, error) {
	const op = "service.token.issueTokenPair"

	now := time.Now().UTC()

	accessToken, err := s.issueToken(ctx, username, models.TokenTypeAccess, s.cfg.AccessTokenTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.issueToken(ctx, username, models.TokenTypeRefresh, s.cfg.RefreshTokenTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// isTokenRevoked проверяет refresh-токен по чёрному списку.
// Сначала опрашивается кэш (если сконфигурирован), затем БД.
func (s *Service) isTokenRevoked(ctx context.Context, tokenStr string) (bool, error) {
	const op = "service.token.isTokenRevoked"

	if s.rcache != nil {
		revoked, found, err := s.rcache.IsRevoked(ctx, tokenStr)
		if err != nil {
			// Кэш — ускорение, не источник истины: при его недоступности
			// идем в БД.
			log.From(ctx).Warn("revocation_cache_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		} else if found {
			return revoked, nil
		}
	}

	revoked, err := s.storage.IsTokenRevoked(ctx, tokenStr)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return revoked, nil
}
