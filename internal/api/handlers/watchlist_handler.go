package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"bitport/internal/repository"
	"bitport/internal/service"
	"bitport/pkg/utils"
)

// WatchlistCreateRequest - тело запроса добавления в watchlist
type WatchlistCreateRequest struct {
	Symbol   string  `json:"symbol"`
	CoinName string  `json:"coinName"`
	Note     *string `json:"note"`
}

// WatchlistUpdateRequest - тело запроса обновления элемента watchlist
type WatchlistUpdateRequest struct {
	CoinName *string `json:"coinName"`
	Note     *string `json:"note"`
}

// WatchlistHandler отвечает за список отслеживаемых монет
//
// Endpoints:
// - GET /api/watchlist - список с фильтрацией/сортировкой/пагинацией
// - POST /api/watchlist - добавление монеты
// - GET /api/watchlist/{id} - один элемент
// - PUT /api/watchlist/{id} - обновление coinName/note
// - DELETE /api/watchlist/{id} - удаление
type WatchlistHandler struct {
	watchlistService service.WatchlistServiceInterface
}

// NewWatchlistHandler создает новый WatchlistHandler
func NewWatchlistHandler(watchlistService service.WatchlistServiceInterface) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// GetWatchlist возвращает страницу watchlist
// GET /api/watchlist?page=&limit=&search=&sortBy=&sortOrder=&dateFrom=&dateTo=&symbol=
func (h *WatchlistHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	params, err := parseListParams(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	filter := repository.WatchlistFilter{
		ListParams: params,
		Symbol:     strings.TrimSpace(r.URL.Query().Get("symbol")),
	}

	list, err := h.watchlistService.List(userID, filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, list)
}

// AddToWatchlist добавляет монету в watchlist
// POST /api/watchlist
//
// Ответы:
// - 201 Created: созданный элемент
// - 400 Bad Request: отсутствует symbol/coinName, символ уже в списке
func (h *WatchlistHandler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req WatchlistCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	item, err := h.watchlistService.Add(userID, req.Symbol, req.CoinName, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrEmptySymbol),
			errors.Is(err, utils.ErrSymbolTooLong),
			errors.Is(err, service.ErrCoinNameRequired):
			respondWithError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, service.ErrSymbolInWatchlist):
			respondWithError(w, http.StatusBadRequest, "Symbol already in watchlist", "")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, item)
}

// GetItem возвращает один элемент watchlist
// GET /api/watchlist/{id}
func (h *WatchlistHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(mux.Vars(r))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id", "")
		return
	}

	item, err := h.watchlistService.Get(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrWatchlistItemMiss) {
			respondWithError(w, http.StatusNotFound, "Watchlist item not found", "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

// UpdateItem обновляет элемент watchlist
// PUT /api/watchlist/{id}
func (h *WatchlistHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(mux.Vars(r))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id", "")
		return
	}

	var req WatchlistUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	item, err := h.watchlistService.Update(id, userID, req.CoinName, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpdate),
			errors.Is(err, service.ErrCoinNameRequired):
			respondWithError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, service.ErrWatchlistItemMiss):
			respondWithError(w, http.StatusNotFound, "Watchlist item not found", "")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, item)
}

// RemoveItem удаляет элемент watchlist
// DELETE /api/watchlist/{id}
func (h *WatchlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(mux.Vars(r))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id", "")
		return
	}

	if err := h.watchlistService.Remove(id, userID); err != nil {
		if errors.Is(err, service.ErrWatchlistItemMiss) {
			respondWithError(w, http.StatusNotFound, "Watchlist item not found", "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, OkResponse{Ok: true})
}
