package models

import "github.com/google/uuid"

// RevokedToken - запись чёрного списка refresh-токенов.
//
// Наличие записи означает, что токен недействителен для обновления пары,
// даже если его подпись и срок действия в порядке. Записи создаются при
// logout и не удаляются (чистка просроченных - вне текущего объёма).
type RevokedToken struct {
	ID    uuid.UUID
	Token string
}
