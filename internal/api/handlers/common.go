// Package handlers содержит HTTP handlers REST API.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"bitport/internal/api/middleware"
	"bitport/internal/repository"
	"bitport/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MaxRequestBodySize ограничение размера тела запроса (1 MB)
const MaxRequestBodySize = 1 << 20

// ErrorResponse стандартный формат ответа об ошибке для всех API endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// OkResponse стандартный ответ успешной мутации без тела
type OkResponse struct {
	Ok bool `json:"ok"`
}

// respondWithJSON отправляет JSON ответ с указанным статусом
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError отправляет JSON ответ с ошибкой
func respondWithError(w http.ResponseWriter, code int, message string, details string) {
	respondWithJSON(w, code, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// decodeJSONBody декодирует тело запроса с ограничением размера
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(dst)
}

// requireUserID извлекает id пользователя из context запроса.
// Отвечает 401 и возвращает false если Auth middleware не отработал.
func requireUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No token provided", "")
		return 0, false
	}
	return userID, true
}

// pathID извлекает числовой {id} из URL
func pathID(vars map[string]string) (int, error) {
	id, err := strconv.Atoi(vars["id"])
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parseListParams разбирает общие query-параметры списочных endpoints:
// page, limit, search, sortBy, sortOrder, dateFrom, dateTo.
// Невалидные page/limit молча заменяются значениями по умолчанию,
// невалидные даты - ошибка 400.
func parseListParams(r *http.Request) (repository.ListParams, error) {
	q := r.URL.Query()

	params := repository.ListParams{
		Search:    strings.TrimSpace(q.Get("search")),
		SortBy:    strings.TrimSpace(q.Get("sortBy")),
		SortOrder: strings.TrimSpace(q.Get("sortOrder")),
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		params.Limit = limit
	}

	if raw := strings.TrimSpace(q.Get("dateFrom")); raw != "" {
		from, err := utils.ParseDateParam(raw)
		if err != nil {
			return params, errors.New("invalid dateFrom")
		}
		params.DateFrom = &from
	}
	if raw := strings.TrimSpace(q.Get("dateTo")); raw != "" {
		to, err := utils.ParseDateParamEnd(raw)
		if err != nil {
			return params, errors.New("invalid dateTo")
		}
		params.DateTo = &to
	}

	return params.Normalized(), nil
}
