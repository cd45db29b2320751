package models

import "time"

// Условия срабатывания ценового алерта
const (
	AlertConditionAbove = "above" // цена выше целевой
	AlertConditionBelow = "below" // цена ниже целевой
)

// PriceAlert представляет сохраненное ценовое условие пользователя.
//
// Алерты хранятся, но автоматически НЕ проверяются против живых цен -
// фонового обработчика в системе нет. TriggeredAt заполняется только
// если алерт был помечен сработавшим вручную через API.
type PriceAlert struct {
	ID          int        `json:"id" db:"id"`
	UserID      int        `json:"userId" db:"user_id"`
	Symbol      string     `json:"symbol" db:"symbol"` // BTC
	CoinName    string     `json:"coinName" db:"coin_name"`
	TargetPrice float64    `json:"targetPrice" db:"target_price"` // > 0
	Condition   string     `json:"condition" db:"condition"`      // above | below
	IsActive    bool       `json:"isActive" db:"is_active"`
	TriggeredAt *time.Time `json:"triggeredAt" db:"triggered_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// IsValidAlertCondition проверяет, является ли строка допустимым условием
func IsValidAlertCondition(condition string) bool {
	return condition == AlertConditionAbove || condition == AlertConditionBelow
}
