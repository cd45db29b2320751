package service

import (
	"errors"
	"strings"

	"bitport/internal/auth"
	"bitport/internal/models"
	"bitport/internal/repository"
	"bitport/pkg/crypto"
	"bitport/pkg/utils"
)

// Ошибки сервиса аутентификации
var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthResult - результат регистрации или входа
type AuthResult struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user"`
}

// AuthService предоставляет регистрацию и вход пользователей.
//
// Отвечает за:
// - Валидацию email и пароля
// - Хеширование пароля (bcrypt)
// - Выпуск JWT токена доступа
type AuthService struct {
	users  UserRepositoryInterface
	tokens *auth.TokenManager
	logger *utils.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepositoryInterface, tokens *auth.TokenManager, logger *utils.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger.WithComponent("auth_service"),
	}
}

// Register создает нового пользователя и возвращает токен доступа.
//
// Возвращает:
// - utils.ErrEmptyEmail / utils.ErrInvalidEmail при некорректном email
// - utils.ErrPasswordTooShort при коротком пароле
// - ErrEmailTaken при занятом email
func (s *AuthService) Register(name, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)

	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(email),
		PasswordHash: hash,
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", utils.UserID(user.ID))

	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login аутентифицирует пользователя и возвращает токен доступа.
// Неизвестный email и неверный пароль дают одну и ту же ошибку.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := crypto.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", utils.UserID(user.ID))

	return &AuthResult{Token: token, User: user.Public()}, nil
}
