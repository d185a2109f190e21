package models

import (
	"github.com/grocerly/auth-service/internal/models"
	"github.com/grocerly/auth-service/internal/service"
)

// ToRegisterParams переносит поля запроса во входные данные сервиса.
func (r RegisterRequest) ToRegisterParams() service.RegisterParams {
	return service.RegisterParams{
		Username:            r.Username,
		Email:               r.Email,
		Password:            r.Password,
		FullName:            r.FullName,
		AccountType:         r.AccountType,
		HousingSize:         r.HousingSize,
		BudgetPref:          r.BudgetPref,
		DietaryPref:         r.DietaryPref,
		DietaryRestrictions: r.DietaryRestrictions,
		Location:            r.Location,
	}
}

// UserPublicFrom строит публичное представление учётной записи.
// Хэш пароля сюда не попадает намеренно.
func UserPublicFrom(u *models.User) UserPublic {
	return UserPublic{
		ID:                  u.ID.String(),
		Username:            u.Username,
		Email:               u.Email,
		FullName:            u.FullName,
		IsActive:            u.IsActive,
		IsSuperuser:         u.IsSuperuser,
		AccountType:         u.AccountType,
		HousingSize:         u.HousingSize,
		BudgetPref:          u.BudgetPref,
		DietaryPref:         u.DietaryPref,
		DietaryRestrictions: u.DietaryRestrictions,
		Location:            u.Location,
	}
}

// TokenResponseFrom строит ответ с парой токенов.
func TokenResponseFrom(tp *models.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  tp.AccessToken,
		RefreshToken: tp.RefreshToken,
		TokenType:    "bearer",
	}
}
