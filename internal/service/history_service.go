package service

import (
	"strings"

	"bitport/internal/models"
	"bitport/internal/repository"
)

// HistoryList - страница истории обменов с метаданными
type HistoryList struct {
	Items []*models.SwapRecord `json:"items"`
	Meta  ListMeta             `json:"meta"`
}

// HistoryService предоставляет доступ к истории обменов пользователя.
// Все операции ограничены владельцем: чужая запись неотличима
// от несуществующей.
type HistoryService struct {
	history HistoryRepositoryInterface
}

// NewHistoryService создает новый экземпляр HistoryService.
func NewHistoryService(history HistoryRepositoryInterface) *HistoryService {
	return &HistoryService{history: history}
}

// List возвращает страницу истории по фильтру
func (s *HistoryService) List(userID int, filter repository.HistoryFilter) (*HistoryList, error) {
	filter.ListParams = filter.ListParams.Normalized()
	filter.FromSymbol = strings.ToUpper(strings.TrimSpace(filter.FromSymbol))
	filter.ToSymbol = strings.ToUpper(strings.TrimSpace(filter.ToSymbol))

	items, total, err := s.history.List(userID, filter)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []*models.SwapRecord{}
	}

	return &HistoryList{
		Items: items,
		Meta:  newListMeta(filter.ListParams, total),
	}, nil
}

// Get возвращает запись пользователя по ID
func (s *HistoryService) Get(id, userID int) (*models.SwapRecord, error) {
	return s.history.GetByID(id, userID)
}

// UpdateNote обновляет комментарий записи
func (s *HistoryService) UpdateNote(id, userID int, note *string) error {
	return s.history.UpdateNote(id, userID, note)
}

// Delete удаляет запись пользователя
func (s *HistoryService) Delete(id, userID int) error {
	return s.history.Delete(id, userID)
}
