package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/grocerly/auth-service/internal/models"
	"github.com/grocerly/auth-service/internal/pkg/log"
	"github.com/grocerly/auth-service/internal/pkg/redact"
	"github.com/grocerly/auth-service/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Лимиты полей учётной записи (повторяют ограничения схемы БД).
const (
	maxUsernameLen = 50
	maxEmailLen    = 100
	maxPasswordLen = 256
	minPasswordLen = 8

	maxFullNameLen     = 100
	maxAccountTypeLen  = 50
	maxDietaryPrefLen  = 50
	maxRestrictionsLen = 100
	maxLocationLen     = 100

	minHousingSize = 1
	maxHousingSize = 100
)

// dummyPasswordHash — валидный bcrypt-хэш заведомо неизвестного пароля.
// Используется при логине с несуществующим username, чтобы время ответа
// не отличало "нет такого пользователя" от "неверный пароль".
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// RegisterParams — входные данные регистрации.
// Профильные атрибуты опциональны; нулевой HousingSize трактуется
// как значение по умолчанию (1).
type RegisterParams struct {
	Username string
	Email    string
	Password string

	FullName            string
	AccountType         string
	HousingSize         int
	BudgetPref          float64
	DietaryPref         string
	DietaryRestrictions string
	Location            string
}

// RegisterUser регистрирует нового пользователя и возвращает созданную запись.
// Флаги IsActive/IsSuperuser клиентом не задаются: новая учётная запись
// всегда активна и никогда не суперпользователь.
func (s *Service) RegisterUser(ctx context.Context, params RegisterParams) (*models.User, error) {
	const op = "service.auth.RegisterUser"

	lg := log.From(ctx)

	username, err := validateUsername(params.Username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	normEmail, err := validateEmail(params.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validatePassword(params.Password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateProfile(&params); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.storage.UserByUsername(ctx, username)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.storage.UserByEmail(ctx, normEmail)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := hashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        normEmail,
		PasswordHash: hashedPassword,

		FullName:            params.FullName,
		IsActive:            true,
		IsSuperuser:         false,
		AccountType:         params.AccountType,
		HousingSize:         params.HousingSize,
		BudgetPref:          params.BudgetPref,
		DietaryPref:         params.DietaryPref,
		DietaryRestrictions: params.DietaryRestrictions,
		Location:            params.Location,

		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			// Гонка с параллельной регистрацией: ограничение уникальности
			// в БД сработало после наших предварительных проверок.
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("user_registered",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
		slog.String("email", redact.Email(user.Email)),
	)

	return user, nil
}

// LoginUser выполняет вход по username+пароль и выдает пару токенов.
func (s *Service) LoginUser(ctx context.Context, username, password string) (*models.TokenPair, error) {
	const op = "service.auth.LoginUser"

	lg := log.From(ctx)

	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Холостое сравнение выравнивает время ответа с веткой
			// "пользователь найден, пароль неверен".
			checkPassword(dummyPasswordHash, password)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		lg.Warn("login_wrong_password",
			slog.String("op", op),
			slog.String("user_id", user.ID.String()),
			slog.String("password", redact.Password()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return s.issueTokenPair(ctx, user.Username)
}

// RefreshTokens выпускает новый access-токен по валидному refresh-токену.
// Refresh-токен намеренно переиспользуется (ротация вне текущего объёма):
// клиент получает ту же строку refresh-токена обратно.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "service.auth.RefreshTokens"

	claims, err := s.decodeToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if claims.TokenType != models.TokenTypeRefresh {
		return nil, fmt.Errorf("%s: %w", op, ErrWrongTokenType)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	revoked, err := s.isTokenRevoked(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		log.From(ctx).Warn("refresh_revoked",
			slog.String("op", op),
			slog.String("subject", claims.Subject),
			slog.String("token", redact.Token()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrTokenRevoked)
	}

	now := time.Now().UTC()
	accessToken, err := s.issueToken(ctx, claims.Subject, models.TokenTypeAccess, s.cfg.AccessTokenTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// LogoutUser отзывает refresh-токен, помещая его в чёрный список.
// Повторный logout того же токена — no-op (идемпотентность за счёт
// уникальности token в token_blacklist).
func (s *Service) LogoutUser(ctx context.Context, refreshToken string) error {
	const op = "service.auth.LogoutUser"

	lg := log.From(ctx)

	// Претензии из токена дальше не используются; важна только валидность.
	claims, err := s.decodeToken(refreshToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	record := &models.RevokedToken{
		ID:    uuid.New(),
		Token: refreshToken,
	}

	if err := s.storage.SaveRevokedToken(ctx, record); err != nil {
		if !errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if s.rcache != nil {
		ttl := time.Until(claims.ExpiresAt)
		if cerr := s.rcache.MarkRevoked(ctx, refreshToken, ttl); cerr != nil {
			// Кэш не является источником истины; запись в БД уже сделана.
			lg.Warn("revocation_cache_mark_failed",
				slog.String("op", op),
				slog.String("err", cerr.Error()),
			)
		}
	}

	lg.Info("user_logged_out",
		slog.String("op", op),
		slog.String("subject", claims.Subject),
	)

	return nil
}

// CurrentUser возвращает учётную запись владельца access-токена.
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	const op = "service.auth.CurrentUser"

	claims, err := s.decodeToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if claims.TokenType != models.TokenTypeAccess || claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	user, err := s.storage.UserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "service.auth.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// checkPassword сравнивает пароль с хэшем. Битый хэш — это просто
// неуспех проверки, а не ошибка наружу.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validateUsername проверяет username и обрезает пробелы снаружи.
func validateUsername(raw string) (string, error) {
	const op = "service.auth.validateUsername"

	username := strings.TrimSpace(raw)
	if username == "" || len([]rune(username)) > maxUsernameLen {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidUsername)
	}

	return username, nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" || len(email) > maxEmailLen {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	// ParseAddress принимает и формы с display-name ("Bob <bob@x.com>");
	// нам нужен голый addr-spec, поэтому строка должна совпадать с ним.
	if addr.Address != email {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(addr.Address), nil
}

// validatePassword проверяет минимальные требования к паролю.
func validatePassword(pw string) error {
	const op = "service.auth.validatePassword"

	if len(pw) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	if len([]rune(pw)) < minPasswordLen || len(pw) > maxPasswordLen {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}

// validateProfile нормализует и проверяет профильные атрибуты.
func validateProfile(p *RegisterParams) error {
	const op = "service.auth.validateProfile"

	if p.HousingSize == 0 {
		p.HousingSize = minHousingSize
	}

	switch {
	case p.HousingSize < minHousingSize || p.HousingSize > maxHousingSize:
		return fmt.Errorf("%s: %w", op, ErrInvalidProfile)
	case p.BudgetPref < 0:
		return fmt.Errorf("%s: %w", op, ErrInvalidProfile)
	case len([]rune(p.FullName)) > maxFullNameLen:
		return fmt.Errorf("%s: %w", op, ErrInvalidProfile)
	case len([]rune(p.AccountType)) > maxAccountTypeLen:
		return fmt.Errorf("%s: %w", op, ErrInvalidProfile)
	case len([]rune(p.DietaryPref)) > maxDietaryPrefLen:
		return fmt.Errorf("%s: %w", op, ErrInvalidProfile)
	case len([]rune(p.DietaryRestrictions)) > maxRestrictionsLen:
		return fmt.Errorf("%s: %w", op, ErrInvalidProfile)
	case len([]rune(p.Location)) > maxLocationLen:
		return fmt.Errorf("%s: %w", op, ErrInvalidProfile)
	}

	return nil
}
