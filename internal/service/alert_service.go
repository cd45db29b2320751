package service

import (
	"errors"
	"strings"

	"bitport/internal/models"
	"bitport/internal/repository"
	"bitport/pkg/utils"
)

// Ошибки сервиса ценовых алертов
var (
	ErrInvalidCondition   = errors.New("condition must be 'above' or 'below'")
	ErrInvalidTargetPrice = errors.New("target price must be greater than zero")
	ErrAlertMiss          = errors.New("price alert not found")
)

// AlertList - страница алертов с метаданными
type AlertList struct {
	Items []*models.PriceAlert `json:"items"`
	Meta  ListMeta             `json:"meta"`
}

// AlertService управляет ценовыми алертами пользователя.
//
// Алерты хранятся и выводятся, но НЕ исполняются: фонового
// вычислителя условий в системе нет.
type AlertService struct {
	alerts AlertRepositoryInterface
}

// NewAlertService создает новый экземпляр AlertService.
func NewAlertService(alerts AlertRepositoryInterface) *AlertService {
	return &AlertService{alerts: alerts}
}

// Create создает алерт с isActive=true.
//
// Возвращает:
// - utils.ErrEmptySymbol / utils.ErrSymbolTooLong при невалидном символе
// - ErrCoinNameRequired при пустом имени монеты
// - ErrInvalidTargetPrice при цене <= 0
// - ErrInvalidCondition при условии вне {above, below}
func (s *AlertService) Create(userID int, symbol, coinName string, targetPrice float64, condition string) (*models.PriceAlert, error) {
	if err := utils.ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	coinName = strings.TrimSpace(coinName)
	if coinName == "" {
		return nil, ErrCoinNameRequired
	}

	if targetPrice <= 0 {
		return nil, ErrInvalidTargetPrice
	}
	if !models.IsValidAlertCondition(condition) {
		return nil, ErrInvalidCondition
	}

	alert := &models.PriceAlert{
		UserID:      userID,
		Symbol:      utils.NormalizeSymbol(symbol),
		CoinName:    coinName,
		TargetPrice: targetPrice,
		Condition:   condition,
		IsActive:    true,
	}

	if err := s.alerts.Create(alert); err != nil {
		return nil, err
	}

	return alert, nil
}

// List возвращает страницу алертов по фильтру.
// Невалидное значение фильтра condition - ошибка.
func (s *AlertService) List(userID int, filter repository.AlertFilter) (*AlertList, error) {
	filter.ListParams = filter.ListParams.Normalized()

	if filter.Condition != "" && !models.IsValidAlertCondition(filter.Condition) {
		return nil, ErrInvalidCondition
	}

	items, total, err := s.alerts.List(userID, filter)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []*models.PriceAlert{}
	}

	return &AlertList{
		Items: items,
		Meta:  newListMeta(filter.ListParams, total),
	}, nil
}

// Get возвращает алерт пользователя по ID
func (s *AlertService) Get(id, userID int) (*models.PriceAlert, error) {
	alert, err := s.alerts.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return nil, ErrAlertMiss
		}
		return nil, err
	}

	return alert, nil
}

// Update выполняет частичное обновление алерта.
// Каждое переданное поле валидируется по тем же правилам, что при создании.
func (s *AlertService) Update(id, userID int, update repository.AlertUpdate) (*models.PriceAlert, error) {
	if update.Symbol == nil && update.CoinName == nil && update.TargetPrice == nil &&
		update.Condition == nil && update.IsActive == nil {
		return nil, ErrEmptyUpdate
	}

	if update.Symbol != nil {
		if err := utils.ValidateSymbol(*update.Symbol); err != nil {
			return nil, err
		}
		normalized := utils.NormalizeSymbol(*update.Symbol)
		update.Symbol = &normalized
	}
	if update.CoinName != nil {
		trimmed := strings.TrimSpace(*update.CoinName)
		if trimmed == "" {
			return nil, ErrCoinNameRequired
		}
		update.CoinName = &trimmed
	}
	if update.TargetPrice != nil && *update.TargetPrice <= 0 {
		return nil, ErrInvalidTargetPrice
	}
	if update.Condition != nil && !models.IsValidAlertCondition(*update.Condition) {
		return nil, ErrInvalidCondition
	}

	alert, err := s.alerts.Update(id, userID, update)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return nil, ErrAlertMiss
		}
		return nil, err
	}

	return alert, nil
}

// Remove удаляет алерт пользователя
func (s *AlertService) Remove(id, userID int) error {
	err := s.alerts.Delete(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return ErrAlertMiss
		}
		return err
	}

	return nil
}
