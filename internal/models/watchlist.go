package models

import "time"

// WatchlistItem представляет отслеживаемую монету пользователя.
//
// Инвариант уникальности: пара (user_id, symbol) не может повторяться.
// Символ всегда хранится в верхнем регистре.
type WatchlistItem struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"userId" db:"user_id"`
	Symbol    string    `json:"symbol" db:"symbol"` // BTC
	CoinName  string    `json:"coinName" db:"coin_name"`
	Note      *string   `json:"note" db:"note"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
