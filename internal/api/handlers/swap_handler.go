package handlers

import (
	"errors"
	"net/http"

	"bitport/internal/pricefeed"
	"bitport/internal/service"
)

// SwapRequest - тело запроса исполнения свопа
type SwapRequest struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// SwapHandler отвечает за котировки и симулированные обмены
//
// Endpoints:
// - GET /api/swap/prices - спот-цены набора активов по умолчанию (публичный)
// - POST /api/swap/execute - исполнение свопа с записью в историю
type SwapHandler struct {
	swapService service.SwapServiceInterface
}

// NewSwapHandler создает новый SwapHandler
func NewSwapHandler(swapService service.SwapServiceInterface) *SwapHandler {
	return &SwapHandler{swapService: swapService}
}

// GetPrices возвращает цены набора активов по умолчанию
// GET /api/swap/prices
//
// Формат ответа повторяет CoinGecko simple/price:
//
//	{ "bitcoin": {"usd": 64250.12}, "ethereum": {"usd": 3120.5}, ... }
//
// Ответы:
// - 200 OK: карта цен
// - 500 Internal Server Error: источник цен недоступен
func (h *SwapHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.swapService.GetPrices(r.Context())
	if err != nil {
		PriceFetchFailures.Inc()
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch prices", "")
		return
	}

	respondWithJSON(w, http.StatusOK, prices)
}

// ExecuteSwap исполняет симулированный обмен
// POST /api/swap/execute
//
// Тело запроса:
//
//	{"from": "bitcoin", "to": "ethereum", "amount": 1.5}
//
// Ответы:
//   - 200 OK: {success, from, to, amountFrom, amountTo, exchangeRate, priceUsd, swapId}
//   - 400 Bad Request: отсутствующие поля, неположительная сумма,
//     цена недоступна для одного из активов
//   - 500 Internal Server Error: источник цен или БД недоступны
func (h *SwapHandler) ExecuteSwap(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SwapRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.swapService.Execute(r.Context(), userID, req.From, req.To, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingAsset),
			errors.Is(err, service.ErrInvalidAmount),
			errors.Is(err, service.ErrPriceUnavailable):
			respondWithError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, pricefeed.ErrUnavailable):
			PriceFetchFailures.Inc()
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch prices", "")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		}
		return
	}

	SwapsExecuted.Inc()
	respondWithJSON(w, http.StatusOK, result)
}
