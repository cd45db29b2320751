package models

import "time"

// SwapRecord представляет одну выполненную (симулированную) конвертацию.
//
// Запись иммутабельна после создания, кроме поля Note - пользователь
// может добавить заметку к прошедшему свопу. Хранится в таблице history.
//
// AmountTo хранится БЕЗ округления - каноническое значение лежит в БД,
// округление до 8 знаков выполняется только при формировании API ответа.
type SwapRecord struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"userId" db:"user_id"`
	FromSymbol string    `json:"fromSymbol" db:"from_symbol"` // BITCOIN
	ToSymbol   string    `json:"toSymbol" db:"to_symbol"`     // ETHEREUM
	AmountFrom float64   `json:"amountFrom" db:"amount_from"`
	AmountTo   float64   `json:"amountTo" db:"amount_to"`
	PriceUSD   float64   `json:"priceUsd" db:"price_usd"` // спот-цена исходного актива на момент свопа
	Note       *string   `json:"note" db:"note"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
