package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"bitport/internal/repository"
	"bitport/internal/service"
)

// HistoryNoteRequest - тело запроса обновления заметки
type HistoryNoteRequest struct {
	Note *string `json:"note"`
}

// HistoryHandler отвечает за историю исполненных свопов
//
// Endpoints:
// - GET /api/history - список с фильтрацией/сортировкой/пагинацией
// - GET /api/history/{id} - одна запись
// - PUT /api/history/{id} - обновление заметки
// - DELETE /api/history/{id} - удаление записи
//
// Все операции ограничены записями владельца; чужой или
// несуществующий id неразличимо дает 404.
type HistoryHandler struct {
	historyService service.HistoryServiceInterface
}

// NewHistoryHandler создает новый HistoryHandler
func NewHistoryHandler(historyService service.HistoryServiceInterface) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// GetHistory возвращает страницу истории свопов
// GET /api/history?page=&limit=&search=&sortBy=&sortOrder=&dateFrom=&dateTo=&from=&to=
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	params, err := parseListParams(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	filter := repository.HistoryFilter{
		ListParams: params,
		FromSymbol: strings.TrimSpace(r.URL.Query().Get("from")),
		ToSymbol:   strings.TrimSpace(r.URL.Query().Get("to")),
	}

	list, err := h.historyService.List(userID, filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, list)
}

// GetRecord возвращает одну запись истории
// GET /api/history/{id}
func (h *HistoryHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(mux.Vars(r))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id", "")
		return
	}

	record, err := h.historyService.Get(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapRecordNotFound) {
			respondWithError(w, http.StatusNotFound, "Record not found", "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// UpdateNote обновляет заметку записи истории
// PUT /api/history/{id}
func (h *HistoryHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(mux.Vars(r))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id", "")
		return
	}

	var req HistoryNoteRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.historyService.UpdateNote(id, userID, req.Note); err != nil {
		if errors.Is(err, repository.ErrSwapRecordNotFound) {
			respondWithError(w, http.StatusNotFound, "Record not found", "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, OkResponse{Ok: true})
}

// DeleteRecord удаляет запись истории
// DELETE /api/history/{id}
func (h *HistoryHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(mux.Vars(r))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id", "")
		return
	}

	if err := h.historyService.Delete(id, userID); err != nil {
		if errors.Is(err, repository.ErrSwapRecordNotFound) {
			respondWithError(w, http.StatusNotFound, "Record not found", "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	respondWithJSON(w, http.StatusOK, OkResponse{Ok: true})
}
