package models

import "time"

// Виды токенов. Значение попадает в claim "type" и различает
// короткоживущий access-токен и долгоживущий refresh-токен.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenPair — пара токенов, выдаваемая при входе и обновлении.
//
// Описание:
//   - AccessToken — короткоживущий JWT для доступа к API;
//   - RefreshToken — долгоживущий JWT для выпуска новых access-токенов;
//   - AccessExpiresAt — момент истечения access-токена (UTC).
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}

// TokenClaims — расшифрованное содержимое токена.
type TokenClaims struct {
	// Subject — username владельца токена.
	Subject string
	// TokenType — TokenTypeAccess или TokenTypeRefresh.
	TokenType string
	// ExpiresAt — абсолютное время истечения (UTC).
	ExpiresAt time.Time
}
