package models

import "time"

// User представляет зарегистрированного пользователя BitPort
//
// Пароль хранится только в виде bcrypt-хеша и никогда не сериализуется
// в JSON ответы API (json:"-").
type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"` // уникальный
	PasswordHash string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// PublicUser - представление пользователя для API ответов (без пароля)
type PublicUser struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public возвращает безопасное для выдачи наружу представление пользователя
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
