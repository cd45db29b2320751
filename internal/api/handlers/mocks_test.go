package handlers

import (
	"context"
	"errors"
	"sync"

	"bitport/internal/models"
	"bitport/internal/pricefeed"
	"bitport/internal/repository"
	"bitport/internal/service"
)

// ErrMockDatabase имитирует недоступность БД
var ErrMockDatabase = errors.New("mock database error")

// ============ Mock Auth Service ============

// MockAuthService мок для AuthServiceInterface
type MockAuthService struct {
	result      *service.AuthResult
	registerErr error
	loginErr    error

	lastName     string
	lastEmail    string
	lastPassword string
	mu           sync.Mutex
}

func (m *MockAuthService) Register(name, email, password string) (*service.AuthResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastName, m.lastEmail, m.lastPassword = name, email, password
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return m.result, nil
}

func (m *MockAuthService) Login(email, password string) (*service.AuthResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastEmail, m.lastPassword = email, password
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.result, nil
}

// ============ Mock Profile Service ============

// MockProfileService мок для ProfileServiceInterface
type MockProfileService struct {
	user      *models.PublicUser
	getErr    error
	updateErr error

	lastUserID int
	lastUpdate service.ProfileUpdate
}

func (m *MockProfileService) Get(userID int) (*models.PublicUser, error) {
	m.lastUserID = userID
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *MockProfileService) Update(userID int, update service.ProfileUpdate) (*models.PublicUser, error) {
	m.lastUserID = userID
	m.lastUpdate = update
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.user, nil
}

// ============ Mock Swap Service ============

// MockSwapService мок для SwapServiceInterface
type MockSwapService struct {
	prices    map[string]pricefeed.Price
	pricesErr error
	result    *service.SwapResult
	execErr   error

	lastUserID int
	lastFrom   string
	lastTo     string
	lastAmount float64
}

func (m *MockSwapService) GetPrices(ctx context.Context) (map[string]pricefeed.Price, error) {
	if m.pricesErr != nil {
		return nil, m.pricesErr
	}
	return m.prices, nil
}

func (m *MockSwapService) Execute(ctx context.Context, userID int, from, to string, amount float64) (*service.SwapResult, error) {
	m.lastUserID = userID
	m.lastFrom, m.lastTo, m.lastAmount = from, to, amount
	if m.execErr != nil {
		return nil, m.execErr
	}
	return m.result, nil
}

// ============ Mock History Service ============

// MockHistoryService мок для HistoryServiceInterface
type MockHistoryService struct {
	list      *service.HistoryList
	record    *models.SwapRecord
	listErr   error
	getErr    error
	updateErr error
	deleteErr error

	lastUserID int
	lastID     int
	lastFilter repository.HistoryFilter
	lastNote   *string
}

func (m *MockHistoryService) List(userID int, filter repository.HistoryFilter) (*service.HistoryList, error) {
	m.lastUserID = userID
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *MockHistoryService) Get(id, userID int) (*models.SwapRecord, error) {
	m.lastID, m.lastUserID = id, userID
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.record, nil
}

func (m *MockHistoryService) UpdateNote(id, userID int, note *string) error {
	m.lastID, m.lastUserID, m.lastNote = id, userID, note
	return m.updateErr
}

func (m *MockHistoryService) Delete(id, userID int) error {
	m.lastID, m.lastUserID = id, userID
	return m.deleteErr
}

// ============ Mock Watchlist Service ============

// MockWatchlistService мок для WatchlistServiceInterface
type MockWatchlistService struct {
	item      *models.WatchlistItem
	list      *service.WatchlistList
	addErr    error
	listErr   error
	getErr    error
	updateErr error
	removeErr error

	lastUserID   int
	lastID       int
	lastSymbol   string
	lastCoinName string
	lastFilter   repository.WatchlistFilter
}

func (m *MockWatchlistService) Add(userID int, symbol, coinName string, note *string) (*models.WatchlistItem, error) {
	m.lastUserID, m.lastSymbol, m.lastCoinName = userID, symbol, coinName
	if m.addErr != nil {
		return nil, m.addErr
	}
	return m.item, nil
}

func (m *MockWatchlistService) List(userID int, filter repository.WatchlistFilter) (*service.WatchlistList, error) {
	m.lastUserID = userID
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *MockWatchlistService) Get(id, userID int) (*models.WatchlistItem, error) {
	m.lastID, m.lastUserID = id, userID
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.item, nil
}

func (m *MockWatchlistService) Update(id, userID int, coinName, note *string) (*models.WatchlistItem, error) {
	m.lastID, m.lastUserID = id, userID
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.item, nil
}

func (m *MockWatchlistService) Remove(id, userID int) error {
	m.lastID, m.lastUserID = id, userID
	return m.removeErr
}

// ============ Mock Alert Service ============

// MockAlertService мок для AlertServiceInterface
type MockAlertService struct {
	alert     *models.PriceAlert
	list      *service.AlertList
	createErr error
	listErr   error
	getErr    error
	updateErr error
	removeErr error

	lastUserID int
	lastID     int
	lastFilter repository.AlertFilter
	lastUpdate repository.AlertUpdate
}

func (m *MockAlertService) Create(userID int, symbol, coinName string, targetPrice float64, condition string) (*models.PriceAlert, error) {
	m.lastUserID = userID
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.alert, nil
}

func (m *MockAlertService) List(userID int, filter repository.AlertFilter) (*service.AlertList, error) {
	m.lastUserID = userID
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *MockAlertService) Get(id, userID int) (*models.PriceAlert, error) {
	m.lastID, m.lastUserID = id, userID
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.alert, nil
}

func (m *MockAlertService) Update(id, userID int, update repository.AlertUpdate) (*models.PriceAlert, error) {
	m.lastID, m.lastUserID = id, userID
	m.lastUpdate = update
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.alert, nil
}

func (m *MockAlertService) Remove(id, userID int) error {
	m.lastID, m.lastUserID = id, userID
	return m.removeErr
}

// Проверяем соответствие моков интерфейсам сервисов
var _ service.AuthServiceInterface = (*MockAuthService)(nil)
var _ service.ProfileServiceInterface = (*MockProfileService)(nil)
var _ service.SwapServiceInterface = (*MockSwapService)(nil)
var _ service.HistoryServiceInterface = (*MockHistoryService)(nil)
var _ service.WatchlistServiceInterface = (*MockWatchlistService)(nil)
var _ service.AlertServiceInterface = (*MockAlertService)(nil)
