package handlers

import (
	"errors"
	"net/http"

	"bitport/internal/repository"
	"bitport/internal/service"
	"bitport/pkg/utils"
)

// ProfileUpdateRequest - тело запроса обновления профиля.
// Все поля опциональны, но хотя бы одно должно присутствовать.
type ProfileUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ProfileHandler отвечает за просмотр и изменение профиля пользователя
//
// Endpoints:
// - GET /api/profile - текущий профиль
// - PUT /api/profile - частичное обновление (name/email/password)
type ProfileHandler struct {
	profileService service.ProfileServiceInterface
}

// NewProfileHandler создает новый ProfileHandler
func NewProfileHandler(profileService service.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile возвращает профиль авторизованного пользователя
// GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.profileService.Get(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found", "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile частично обновляет профиль
// PUT /api/profile
//
// Ответы:
// - 200 OK: обновленный профиль
// - 400 Bad Request: пустое обновление, некорректное поле, email занят
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ProfileUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	user, err := h.profileService.Update(userID, service.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpdate),
			errors.Is(err, utils.ErrEmptyEmail),
			errors.Is(err, utils.ErrInvalidEmail),
			errors.Is(err, utils.ErrPasswordTooShort):
			respondWithError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusBadRequest, "User with this email already exists", "")
		case errors.Is(err, repository.ErrUserNotFound):
			respondWithError(w, http.StatusNotFound, "User not found", "")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
