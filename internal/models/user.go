package models

import (
	"time"

	"github.com/google/uuid"
)

// User - модель учётной записи пользователя.
//
// PasswordHash хранится только внутри сервиса и никогда не попадает
// в публичные представления (см. transport/http/models).
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string

	// Профильные атрибуты (опциональные, задаются при регистрации).
	FullName            string
	IsActive            bool
	IsSuperuser         bool
	AccountType         string
	HousingSize         int
	BudgetPref          float64
	DietaryPref         string
	DietaryRestrictions string
	Location            string

	CreatedAt time.Time
	UpdatedAt time.Time
}
