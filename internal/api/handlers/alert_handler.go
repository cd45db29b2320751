package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"bitport/internal/repository"
	"bitport/internal/service"
	"bitport/pkg/utils"
)

// AlertCreateRequest - тело запроса создания ценового алерта
type AlertCreateRequest struct {
	Symbol      string  `json:"symbol"`
	CoinName    string  `json:"coinName"`
	TargetPrice float64 `json:"targetPrice"`
	Condition   string  `json:"condition"`
}

// AlertUpdateRequest - тело запроса обновления алерта.
// Все поля опциональны, но хотя бы одно должно присутствовать.
type AlertUpdateRequest struct {
	Symbol      *string  `json:"symbol"`
	CoinName    *string  `json:"coinName"`
	TargetPrice *float64 `json:"targetPrice"`
	Condition   *string  `json:"condition"`
	IsActive    *bool    `json:"isActive"`
}

// AlertHandler отвечает за ценовые алерты
//
// Endpoints:
// - GET /api/alerts - список с фильтрацией/сортировкой/пагинацией
// - POST /api/alerts - создание алерта
// - GET /api/alerts/{id} - один алерт
// - PUT /api/alerts/{id} - частичное обновление
// - DELETE /api/alerts/{id} - удаление
type AlertHandler struct {
	alertService service.AlertServiceInterface
}

// NewAlertHandler создает новый AlertHandler
func NewAlertHandler(alertService service.AlertServiceInterface) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// GetAlerts возвращает страницу алертов
// GET /api/alerts?page=&limit=&search=&sortBy=&sortOrder=&dateFrom=&dateTo=&symbol=&condition=&isActive=
func (h *AlertHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	params, err := parseListParams(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	q := r.URL.Query()
	filter := repository.AlertFilter{
		ListParams: params,
		Symbol:     strings.TrimSpace(q.Get("symbol")),
		Condition:  strings.TrimSpace(q.Get("condition")),
	}
	if raw := q.Get("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid isActive value", "")
			return
		}
		filter.IsActive = &active
	}

	list, err := h.alertService.List(userID, filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCondition) {
			respondWithError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, list)
}

// CreateAlert создает новый ценовой алерт
// POST /api/alerts
//
// Ответы:
//   - 201 Created: созданный алерт (isActive=true)
//   - 400 Bad Request: отсутствующие поля, targetPrice <= 0,
//     condition вне {above, below}
func (h *AlertHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AlertCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	alert, err := h.alertService.Create(userID, req.Symbol, req.CoinName, req.TargetPrice, req.Condition)
	if err != nil {
		if isAlertValidationError(err) {
			respondWithError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusCreated, alert)
}

// GetAlert возвращает один алерт
// GET /api/alerts/{id}
func (h *AlertHandler) GetAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(mux.Vars(r))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id", "")
		return
	}

	alert, err := h.alertService.Get(id, userID)
	if err != nil {
		if errors.Is(err, service.ErrAlertMiss) {
			respondWithError(w, http.StatusNotFound, "Alert not found", "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, alert)
}

// UpdateAlert частично обновляет алерт
// PUT /api/alerts/{id}
func (h *AlertHandler) UpdateAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(mux.Vars(r))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id", "")
		return
	}

	var req AlertUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	alert, err := h.alertService.Update(id, userID, repository.AlertUpdate{
		Symbol:      req.Symbol,
		CoinName:    req.CoinName,
		TargetPrice: req.TargetPrice,
		Condition:   req.Condition,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpdate), isAlertValidationError(err):
			respondWithError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, service.ErrAlertMiss):
			respondWithError(w, http.StatusNotFound, "Alert not found", "")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, alert)
}

// DeleteAlert удаляет алерт
// DELETE /api/alerts/{id}
func (h *AlertHandler) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(mux.Vars(r))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id", "")
		return
	}

	if err := h.alertService.Remove(id, userID); err != nil {
		if errors.Is(err, service.ErrAlertMiss) {
			respondWithError(w, http.StatusNotFound, "Alert not found", "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, OkResponse{Ok: true})
}

// isAlertValidationError группирует пользовательские ошибки валидации алертов
func isAlertValidationError(err error) bool {
	return errors.Is(err, utils.ErrEmptySymbol) ||
		errors.Is(err, utils.ErrSymbolTooLong) ||
		errors.Is(err, service.ErrCoinNameRequired) ||
		errors.Is(err, service.ErrInvalidTargetPrice) ||
		errors.Is(err, service.ErrInvalidCondition)
}
