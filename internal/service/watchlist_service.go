package service

import (
	"errors"
	"strings"

	"bitport/internal/models"
	"bitport/internal/repository"
	"bitport/pkg/utils"
)

// Ошибки сервиса watchlist
var (
	ErrCoinNameRequired  = errors.New("coin name is required")
	ErrSymbolInWatchlist = errors.New("symbol already in watchlist")
	ErrWatchlistItemMiss = errors.New("watchlist item not found")
)

// WatchlistList - страница watchlist с метаданными
type WatchlistList struct {
	Items []*models.WatchlistItem `json:"items"`
	Meta  ListMeta                `json:"meta"`
}

// WatchlistService управляет списком отслеживаемых монет пользователя.
//
// Символ уникален в пределах пользователя; дубль отбивается
// предварительной проверкой плюс UNIQUE constraint на случай гонки.
type WatchlistService struct {
	watchlist WatchlistRepositoryInterface
}

// NewWatchlistService создает новый экземпляр WatchlistService.
func NewWatchlistService(watchlist WatchlistRepositoryInterface) *WatchlistService {
	return &WatchlistService{watchlist: watchlist}
}

// Add добавляет монету в watchlist пользователя.
//
// Возвращает:
// - utils.ErrEmptySymbol / utils.ErrSymbolTooLong при невалидном символе
// - ErrCoinNameRequired при пустом имени монеты
// - ErrSymbolInWatchlist при дубле
func (s *WatchlistService) Add(userID int, symbol, coinName string, note *string) (*models.WatchlistItem, error) {
	if err := utils.ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	coinName = strings.TrimSpace(coinName)
	if coinName == "" {
		return nil, ErrCoinNameRequired
	}

	symbol = utils.NormalizeSymbol(symbol)

	exists, err := s.watchlist.ExistsSymbol(userID, symbol)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSymbolInWatchlist
	}

	item := &models.WatchlistItem{
		UserID:   userID,
		Symbol:   symbol,
		CoinName: coinName,
		Note:     note,
	}

	if err := s.watchlist.Create(item); err != nil {
		// Гонка двух одновременных добавлений
		if errors.Is(err, repository.ErrWatchlistItemExists) {
			return nil, ErrSymbolInWatchlist
		}
		return nil, err
	}

	return item, nil
}

// List возвращает страницу watchlist по фильтру
func (s *WatchlistService) List(userID int, filter repository.WatchlistFilter) (*WatchlistList, error) {
	filter.ListParams = filter.ListParams.Normalized()

	items, total, err := s.watchlist.List(userID, filter)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []*models.WatchlistItem{}
	}

	return &WatchlistList{
		Items: items,
		Meta:  newListMeta(filter.ListParams, total),
	}, nil
}

// Get возвращает позицию пользователя по ID
func (s *WatchlistService) Get(id, userID int) (*models.WatchlistItem, error) {
	item, err := s.watchlist.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrWatchlistItemNotFound) {
			return nil, ErrWatchlistItemMiss
		}
		return nil, err
	}

	return item, nil
}

// Update выполняет частичное обновление позиции.
// Пустой набор полей - ошибка ErrEmptyUpdate.
func (s *WatchlistService) Update(id, userID int, coinName, note *string) (*models.WatchlistItem, error) {
	if coinName == nil && note == nil {
		return nil, ErrEmptyUpdate
	}

	if coinName != nil {
		trimmed := strings.TrimSpace(*coinName)
		if trimmed == "" {
			return nil, ErrCoinNameRequired
		}
		coinName = &trimmed
	}

	item, err := s.watchlist.Update(id, userID, coinName, note)
	if err != nil {
		if errors.Is(err, repository.ErrWatchlistItemNotFound) {
			return nil, ErrWatchlistItemMiss
		}
		return nil, err
	}

	return item, nil
}

// Remove удаляет позицию пользователя
func (s *WatchlistService) Remove(id, userID int) error {
	err := s.watchlist.Delete(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrWatchlistItemNotFound) {
			return ErrWatchlistItemMiss
		}
		return err
	}

	return nil
}
