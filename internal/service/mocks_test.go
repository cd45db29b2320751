package service

import (
	"context"
	"strings"
	"time"

	"bitport/internal/auth"
	"bitport/internal/models"
	"bitport/internal/pricefeed"
	"bitport/internal/repository"
	"bitport/pkg/utils"
)

// ============ Mock UserRepository ============

type MockUserRepository struct {
	users     map[int]*models.User
	createErr error
	getErr    error
	updateErr error
	nextID    int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[int]*models.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrUserExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(id int) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	email = strings.ToLower(email)
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *MockUserRepository) EmailTaken(email string, excludeID int) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	email = strings.ToLower(email)
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) Update(id int, name, email, passwordHash *string) (*models.User, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if name != nil {
		user.Name = *name
	}
	if email != nil {
		user.Email = strings.ToLower(*email)
	}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	return user, nil
}

// ============ Mock HistoryRepository ============

type MockHistoryRepository struct {
	records   map[int]*models.SwapRecord
	createErr error
	listErr   error
	nextID    int
}

func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{
		records: make(map[int]*models.SwapRecord),
		nextID:  1,
	}
}

func (m *MockHistoryRepository) Create(record *models.SwapRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record.ID = m.nextID
	m.nextID++
	record.CreatedAt = time.Now()
	m.records[record.ID] = record
	return nil
}

func (m *MockHistoryRepository) GetByID(id, userID int) (*models.SwapRecord, error) {
	if record, ok := m.records[id]; ok && record.UserID == userID {
		return record, nil
	}
	return nil, repository.ErrSwapRecordNotFound
}

func (m *MockHistoryRepository) List(userID int, filter repository.HistoryFilter) ([]*models.SwapRecord, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var all []*models.SwapRecord
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		if filter.FromSymbol != "" && r.FromSymbol != filter.FromSymbol {
			continue
		}
		if filter.ToSymbol != "" && r.ToSymbol != filter.ToSymbol {
			continue
		}
		all = append(all, r)
	}
	return paginate(all, filter.ListParams), len(all), nil
}

func (m *MockHistoryRepository) UpdateNote(id, userID int, note *string) error {
	record, ok := m.records[id]
	if !ok || record.UserID != userID {
		return repository.ErrSwapRecordNotFound
	}
	record.Note = note
	return nil
}

func (m *MockHistoryRepository) Delete(id, userID int) error {
	record, ok := m.records[id]
	if !ok || record.UserID != userID {
		return repository.ErrSwapRecordNotFound
	}
	delete(m.records, id)
	return nil
}

// ============ Mock WatchlistRepository ============

type MockWatchlistRepository struct {
	items     map[int]*models.WatchlistItem
	createErr error
	listErr   error
	nextID    int
}

func NewMockWatchlistRepository() *MockWatchlistRepository {
	return &MockWatchlistRepository{
		items:  make(map[int]*models.WatchlistItem),
		nextID: 1,
	}
}

func (m *MockWatchlistRepository) Create(item *models.WatchlistItem) error {
	if m.createErr != nil {
		return m.createErr
	}
	item.Symbol = strings.ToUpper(item.Symbol)
	for _, existing := range m.items {
		if existing.UserID == item.UserID && existing.Symbol == item.Symbol {
			return repository.ErrWatchlistItemExists
		}
	}
	item.ID = m.nextID
	m.nextID++
	item.CreatedAt = time.Now()
	m.items[item.ID] = item
	return nil
}

func (m *MockWatchlistRepository) GetByID(id, userID int) (*models.WatchlistItem, error) {
	if item, ok := m.items[id]; ok && item.UserID == userID {
		return item, nil
	}
	return nil, repository.ErrWatchlistItemNotFound
}

func (m *MockWatchlistRepository) ExistsSymbol(userID int, symbol string) (bool, error) {
	symbol = strings.ToUpper(symbol)
	for _, item := range m.items {
		if item.UserID == userID && item.Symbol == symbol {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockWatchlistRepository) List(userID int, filter repository.WatchlistFilter) ([]*models.WatchlistItem, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var all []*models.WatchlistItem
	for _, item := range m.items {
		if item.UserID != userID {
			continue
		}
		if filter.Symbol != "" && item.Symbol != strings.ToUpper(filter.Symbol) {
			continue
		}
		all = append(all, item)
	}
	return paginate(all, filter.ListParams), len(all), nil
}

func (m *MockWatchlistRepository) Update(id, userID int, coinName, note *string) (*models.WatchlistItem, error) {
	item, ok := m.items[id]
	if !ok || item.UserID != userID {
		return nil, repository.ErrWatchlistItemNotFound
	}
	if coinName != nil {
		item.CoinName = *coinName
	}
	if note != nil {
		item.Note = note
	}
	return item, nil
}

func (m *MockWatchlistRepository) Delete(id, userID int) error {
	item, ok := m.items[id]
	if !ok || item.UserID != userID {
		return repository.ErrWatchlistItemNotFound
	}
	delete(m.items, id)
	return nil
}

// ============ Mock AlertRepository ============

type MockAlertRepository struct {
	alerts    map[int]*models.PriceAlert
	createErr error
	listErr   error
	nextID    int
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{
		alerts: make(map[int]*models.PriceAlert),
		nextID: 1,
	}
}

func (m *MockAlertRepository) Create(alert *models.PriceAlert) error {
	if m.createErr != nil {
		return m.createErr
	}
	alert.Symbol = strings.ToUpper(alert.Symbol)
	alert.ID = m.nextID
	m.nextID++
	alert.CreatedAt = time.Now()
	m.alerts[alert.ID] = alert
	return nil
}

func (m *MockAlertRepository) GetByID(id, userID int) (*models.PriceAlert, error) {
	if alert, ok := m.alerts[id]; ok && alert.UserID == userID {
		return alert, nil
	}
	return nil, repository.ErrAlertNotFound
}

func (m *MockAlertRepository) List(userID int, filter repository.AlertFilter) ([]*models.PriceAlert, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var all []*models.PriceAlert
	for _, alert := range m.alerts {
		if alert.UserID != userID {
			continue
		}
		if filter.Symbol != "" && alert.Symbol != strings.ToUpper(filter.Symbol) {
			continue
		}
		if filter.Condition != "" && alert.Condition != filter.Condition {
			continue
		}
		if filter.IsActive != nil && alert.IsActive != *filter.IsActive {
			continue
		}
		all = append(all, alert)
	}
	return paginate(all, filter.ListParams), len(all), nil
}

func (m *MockAlertRepository) Update(id, userID int, update repository.AlertUpdate) (*models.PriceAlert, error) {
	alert, ok := m.alerts[id]
	if !ok || alert.UserID != userID {
		return nil, repository.ErrAlertNotFound
	}
	if update.Symbol != nil {
		alert.Symbol = strings.ToUpper(*update.Symbol)
	}
	if update.CoinName != nil {
		alert.CoinName = *update.CoinName
	}
	if update.TargetPrice != nil {
		alert.TargetPrice = *update.TargetPrice
	}
	if update.Condition != nil {
		alert.Condition = *update.Condition
	}
	if update.IsActive != nil {
		alert.IsActive = *update.IsActive
	}
	return alert, nil
}

func (m *MockAlertRepository) Delete(id, userID int) error {
	alert, ok := m.alerts[id]
	if !ok || alert.UserID != userID {
		return repository.ErrAlertNotFound
	}
	delete(m.alerts, id)
	return nil
}

// ============ Mock PriceSource ============

type MockPriceSource struct {
	prices   map[string]pricefeed.Price
	err      error
	lastIDs  []string
	numCalls int
}

func NewMockPriceSource(prices map[string]pricefeed.Price) *MockPriceSource {
	return &MockPriceSource{prices: prices}
}

func (m *MockPriceSource) SimplePrices(ctx context.Context, ids []string) (map[string]pricefeed.Price, error) {
	m.numCalls++
	m.lastIDs = ids
	if m.err != nil {
		return nil, m.err
	}
	result := make(map[string]pricefeed.Price)
	for _, id := range ids {
		if price, ok := m.prices[id]; ok {
			result[id] = price
		}
	}
	return result, nil
}

// ============ Recording PriceBroadcaster ============

type RecordingBroadcaster struct {
	broadcasts []map[string]pricefeed.Price
}

func (b *RecordingBroadcaster) BroadcastPrices(prices map[string]pricefeed.Price) {
	b.broadcasts = append(b.broadcasts, prices)
}

// paginate применяет Normalized-параметры к выборке мока
func paginate[T any](all []T, params repository.ListParams) []T {
	params = params.Normalized()
	start := (params.Page - 1) * params.Limit
	if start >= len(all) {
		return []T{}
	}
	end := start + params.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

// ============ Test helpers ============

func newTestLogger() *utils.Logger {
	return utils.InitLogger(utils.LogConfig{Level: "error", Format: "console", Output: "stderr"})
}

func newTestTokens() *auth.TokenManager {
	tokens, err := auth.NewTokenManager("service-test-secret-0123456789abcdef", time.Hour)
	if err != nil {
		panic(err)
	}
	return tokens
}
