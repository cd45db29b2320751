package middleware

import (
	"context"
	"net/http"
	"strings"

	"bitport/internal/auth"
)

// contextKey - приватный тип для ключей request context
// Исключает коллизии с ключами других пакетов
type contextKey string

const (
	userIDKey    contextKey = "userID"
	userEmailKey contextKey = "userEmail"
)

// UserIDFromContext извлекает id авторизованного пользователя из context.
// Второе значение false если запрос прошел без Auth middleware.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// UserEmailFromContext извлекает email авторизованного пользователя из context
func UserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailKey).(string)
	return email, ok
}

// WithUserID кладет id пользователя в context.
// Используется в тестах handlers для симуляции авторизованного запроса.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Auth - middleware для аутентификации запросов
//
// Назначение:
// Проверяет JWT токен из заголовка Authorization: Bearer <token>.
// Защищает API endpoints от неавторизованного доступа.
// Извлекает id и email пользователя из claims и кладет в request context.
//
// Ответы:
// - 401 Unauthorized: токен отсутствует, невалиден или истек
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "No token provided")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				unauthorized(w, "Invalid authorization header")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, userEmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized отправляет 401 с JSON телом ошибки
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
