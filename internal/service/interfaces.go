// Package service содержит бизнес-логику поверх репозиториев.
package service

import (
	"context"

	"bitport/internal/models"
	"bitport/internal/pricefeed"
	"bitport/internal/repository"
)

// UserRepositoryInterface определяет интерфейс репозитория пользователей
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailTaken(email string, excludeID int) (bool, error)
	Update(id int, name, email, passwordHash *string) (*models.User, error)
}

// HistoryRepositoryInterface определяет интерфейс репозитория истории обменов
type HistoryRepositoryInterface interface {
	Create(record *models.SwapRecord) error
	GetByID(id, userID int) (*models.SwapRecord, error)
	List(userID int, filter repository.HistoryFilter) ([]*models.SwapRecord, int, error)
	UpdateNote(id, userID int, note *string) error
	Delete(id, userID int) error
}

// WatchlistRepositoryInterface определяет интерфейс репозитория watchlist
type WatchlistRepositoryInterface interface {
	Create(item *models.WatchlistItem) error
	GetByID(id, userID int) (*models.WatchlistItem, error)
	ExistsSymbol(userID int, symbol string) (bool, error)
	List(userID int, filter repository.WatchlistFilter) ([]*models.WatchlistItem, int, error)
	Update(id, userID int, coinName, note *string) (*models.WatchlistItem, error)
	Delete(id, userID int) error
}

// AlertRepositoryInterface определяет интерфейс репозитория ценовых алертов
type AlertRepositoryInterface interface {
	Create(alert *models.PriceAlert) error
	GetByID(id, userID int) (*models.PriceAlert, error)
	List(userID int, filter repository.AlertFilter) ([]*models.PriceAlert, int, error)
	Update(id, userID int, update repository.AlertUpdate) (*models.PriceAlert, error)
	Delete(id, userID int) error
}

// PriceSource определяет интерфейс источника спот-цен
type PriceSource interface {
	SimplePrices(ctx context.Context, ids []string) (map[string]pricefeed.Price, error)
}

// PriceBroadcaster получает свежие цены для рассылки подписчикам.
// Реализуется websocket-хабом; nil-безопасная заглушка - NopBroadcaster.
type PriceBroadcaster interface {
	BroadcastPrices(prices map[string]pricefeed.Price)
}

// NopBroadcaster - заглушка без подписчиков
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastPrices(map[string]pricefeed.Price) {}

// ============ Интерфейсы сервисов (для API handlers) ============

// AuthServiceInterface определяет интерфейс сервиса аутентификации
type AuthServiceInterface interface {
	Register(name, email, password string) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
}

// ProfileServiceInterface определяет интерфейс сервиса профиля
type ProfileServiceInterface interface {
	Get(userID int) (*models.PublicUser, error)
	Update(userID int, update ProfileUpdate) (*models.PublicUser, error)
}

// SwapServiceInterface определяет интерфейс сервиса обменов
type SwapServiceInterface interface {
	GetPrices(ctx context.Context) (map[string]pricefeed.Price, error)
	Execute(ctx context.Context, userID int, from, to string, amount float64) (*SwapResult, error)
}

// HistoryServiceInterface определяет интерфейс сервиса истории обменов
type HistoryServiceInterface interface {
	List(userID int, filter repository.HistoryFilter) (*HistoryList, error)
	Get(id, userID int) (*models.SwapRecord, error)
	UpdateNote(id, userID int, note *string) error
	Delete(id, userID int) error
}

// WatchlistServiceInterface определяет интерфейс сервиса watchlist
type WatchlistServiceInterface interface {
	Add(userID int, symbol, coinName string, note *string) (*models.WatchlistItem, error)
	List(userID int, filter repository.WatchlistFilter) (*WatchlistList, error)
	Get(id, userID int) (*models.WatchlistItem, error)
	Update(id, userID int, coinName, note *string) (*models.WatchlistItem, error)
	Remove(id, userID int) error
}

// AlertServiceInterface определяет интерфейс сервиса ценовых алертов
type AlertServiceInterface interface {
	Create(userID int, symbol, coinName string, targetPrice float64, condition string) (*models.PriceAlert, error)
	List(userID int, filter repository.AlertFilter) (*AlertList, error)
	Get(id, userID int) (*models.PriceAlert, error)
	Update(id, userID int, update repository.AlertUpdate) (*models.PriceAlert, error)
	Remove(id, userID int) error
}

// Проверяем, что реальные реализации соответствуют интерфейсам
var _ UserRepositoryInterface = (*repository.UserRepository)(nil)
var _ HistoryRepositoryInterface = (*repository.HistoryRepository)(nil)
var _ WatchlistRepositoryInterface = (*repository.WatchlistRepository)(nil)
var _ AlertRepositoryInterface = (*repository.AlertRepository)(nil)
var _ PriceSource = (*pricefeed.Client)(nil)

var _ AuthServiceInterface = (*AuthService)(nil)
var _ ProfileServiceInterface = (*ProfileService)(nil)
var _ SwapServiceInterface = (*SwapService)(nil)
var _ HistoryServiceInterface = (*HistoryService)(nil)
var _ WatchlistServiceInterface = (*WatchlistService)(nil)
var _ AlertServiceInterface = (*AlertService)(nil)
