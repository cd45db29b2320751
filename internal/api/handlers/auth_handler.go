package handlers

import (
	"errors"
	"net/http"

	"bitport/internal/service"
	"bitport/pkg/utils"
)

// RegisterRequest - тело запроса регистрации
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest - тело запроса входа
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler отвечает за регистрацию и вход пользователей
//
// Endpoints:
// - POST /api/auth/register - создание аккаунта
// - POST /api/auth/login - вход по email и паролю
//
// Оба endpoint публичные и возвращают JWT токен вместе с профилем.
type AuthHandler struct {
	authService service.AuthServiceInterface
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register создает нового пользователя
// POST /api/auth/register
//
// Ответы:
// - 201 Created: {token, user}
// - 400 Bad Request: некорректный email, короткий пароль, email занят
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrEmptyEmail),
			errors.Is(err, utils.ErrInvalidEmail),
			errors.Is(err, utils.ErrPasswordTooShort):
			respondWithError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusBadRequest, "User with this email already exists", "")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// Login аутентифицирует пользователя по email и паролю
// POST /api/auth/login
//
// Ответы:
//   - 200 OK: {token, user}
//   - 400 Bad Request: неверные учетные данные
//     (не раскрывается, что именно неверно - email или пароль)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusBadRequest, "Invalid credentials", "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
