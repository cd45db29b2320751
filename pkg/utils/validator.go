package utils

import (
	"errors"
	"regexp"
	"strings"
)

// validator.go - валидация входных данных API
//
// Назначение:
// Проверка корректности пользовательского ввода до обращения к БД.
// Возвращает error с описанием проблемы или nil.

// Ошибки валидации
var (
	ErrEmptyEmail       = errors.New("email is required")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrEmptySymbol      = errors.New("symbol is required")
	ErrSymbolTooLong    = errors.New("symbol is too long")
)

// emailRegex - формат email как в оригинальном фронтенде: непустая
// локальная часть, @, домен с точкой, без пробелов
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinPasswordLength - минимальная длина пароля при регистрации
const MinPasswordLength = 6

// MaxSymbolLength - максимальная длина идентификатора актива
// (CoinGecko id вроде "matic-network" укладывается с запасом)
const MaxSymbolLength = 64

// ValidateEmail проверяет формат email адреса
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword проверяет минимальную длину пароля
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateSymbol проверяет идентификатор актива (тикер или CoinGecko id)
func ValidateSymbol(symbol string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ErrEmptySymbol
	}
	if len(symbol) > MaxSymbolLength {
		return ErrSymbolTooLong
	}
	return nil
}

// NormalizeSymbol приводит идентификатор к каноническому виду для
// хранения: верхний регистр без окружающих пробелов
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
