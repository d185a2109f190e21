// Входные/выходные модели REST-слоя. Публичное представление пользователя
// никогда не содержит хэш пароля.
package models

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`

	FullName            string  `json:"full_name,omitempty"`
	AccountType         string  `json:"account_type,omitempty"`
	HousingSize         int     `json:"housing_size,omitempty"`
	BudgetPref          float64 `json:"budget_pref,omitempty"`
	DietaryPref         string  `json:"dietary_pref,omitempty"`
	DietaryRestrictions string  `json:"dietary_restrictions,omitempty"`
	Location            string  `json:"location,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutResponse struct {
	Detail string `json:"detail"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type UserPublic struct {
	ID                  string  `json:"id"`
	Username            string  `json:"username"`
	Email               string  `json:"email"`
	FullName            string  `json:"full_name,omitempty"`
	IsActive            bool    `json:"is_active"`
	IsSuperuser         bool    `json:"is_superuser"`
	AccountType         string  `json:"account_type,omitempty"`
	HousingSize         int     `json:"housing_size"`
	BudgetPref          float64 `json:"budget_pref"`
	DietaryPref         string  `json:"dietary_pref,omitempty"`
	DietaryRestrictions string  `json:"dietary_restrictions,omitempty"`
	Location            string  `json:"location,omitempty"`
}
