package websocket

import (
	"time"

	"bitport/internal/pricefeed"
)

// MessageType определяет тип WebSocket сообщения
type MessageType string

// Типы WebSocket сообщений
const (
	// MessageTypePriceUpdate - обновление котировок
	// Отправляется каждый раз когда сервер получает свежие цены от CoinGecko
	MessageTypePriceUpdate MessageType = "priceUpdate"
)

// PriceUpdateMessage - сообщение с актуальными котировками
//
// Содержит полную карту цен последнего успешного запроса:
// ключ - идентификатор монеты (bitcoin, ethereum, ...), значение - цена в USD.
// Клиент получает всю карту целиком, diff-ы не отправляются.
type PriceUpdateMessage struct {
	Type      MessageType                `json:"type"`
	Timestamp time.Time                  `json:"timestamp"`
	Prices    map[string]pricefeed.Price `json:"prices"`
}

// NewPriceUpdateMessage создает сообщение с котировками
func NewPriceUpdateMessage(prices map[string]pricefeed.Price) *PriceUpdateMessage {
	return &PriceUpdateMessage{
		Type:      MessageTypePriceUpdate,
		Timestamp: time.Now().UTC(),
		Prices:    prices,
	}
}
