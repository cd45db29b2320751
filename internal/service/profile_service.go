package service

import (
	"errors"
	"strings"

	"bitport/internal/models"
	"bitport/pkg/crypto"
	"bitport/pkg/utils"
)

// Ошибки сервиса профиля
var (
	ErrEmptyUpdate = errors.New("no fields to update")
)

// ProfileUpdate - частичное обновление профиля (nil-поля не трогаются)
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// ProfileService предоставляет доступ к профилю текущего пользователя.
type ProfileService struct {
	users UserRepositoryInterface
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(users UserRepositoryInterface) *ProfileService {
	return &ProfileService{users: users}
}

// Get возвращает публичный профиль пользователя
func (s *ProfileService) Get(userID int) (*models.PublicUser, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	return user.Public(), nil
}

// Update выполняет частичное обновление профиля.
//
// Возвращает:
// - ErrEmptyUpdate если не передано ни одного поля
// - utils.ErrInvalidEmail / utils.ErrPasswordTooShort при невалидных значениях
// - ErrEmailTaken если новый email занят другим пользователем
func (s *ProfileService) Update(userID int, update ProfileUpdate) (*models.PublicUser, error) {
	if update.Name == nil && update.Email == nil && update.Password == nil {
		return nil, ErrEmptyUpdate
	}

	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if err := utils.ValidateEmail(email); err != nil {
			return nil, err
		}

		// Проверка занятости исключает самого пользователя
		taken, err := s.users.EmailTaken(email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}

		update.Email = &email
	}

	var passwordHash *string
	if update.Password != nil {
		if err := utils.ValidatePassword(*update.Password); err != nil {
			return nil, err
		}

		hash, err := crypto.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}

	user, err := s.users.Update(userID, update.Name, update.Email, passwordHash)
	if err != nil {
		return nil, err
	}

	return user.Public(), nil
}
