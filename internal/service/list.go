package service

import (
	"bitport/internal/repository"
)

// ListMeta - метаданные пагинации списочных ответов
type ListMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// newListMeta собирает метаданные из нормализованных параметров
func newListMeta(params repository.ListParams, total int) ListMeta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	return ListMeta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
