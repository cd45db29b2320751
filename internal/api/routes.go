// Package api собирает HTTP маршруты и метрики сервера.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bitport/internal/api/handlers"
	"bitport/internal/api/middleware"
	"bitport/internal/auth"
	"bitport/internal/service"
	"bitport/internal/websocket"
)

// Dependencies содержит все зависимости для API handlers
type Dependencies struct {
	AuthService      service.AuthServiceInterface
	ProfileService   service.ProfileServiceInterface
	SwapService      service.SwapServiceInterface
	HistoryService   service.HistoryServiceInterface
	WatchlistService service.WatchlistServiceInterface
	AlertService     service.AlertServiceInterface
	Tokens           *auth.TokenManager
	Hub              *websocket.Hub
}

// SetupRoutes настраивает все HTTP маршруты приложения
//
// Назначение:
// Центральное место для определения всех API endpoints.
// Регистрирует handlers для каждого маршрута и применяет middleware.
//
// Структура маршрутов:
//
// /api/
//
//	├── /auth/
//	│   ├── POST /register - регистрация
//	│   └── POST /login - вход
//	├── /profile
//	│   ├── GET - текущий профиль        (auth)
//	│   └── PUT - обновление профиля     (auth)
//	├── /swap/
//	│   ├── GET /prices - спот-цены
//	│   └── POST /execute - исполнение свопа (auth)
//	├── /history/                        (auth)
//	│   ├── GET / - список свопов
//	│   ├── GET /{id} - одна запись
//	│   ├── PUT /{id} - обновление заметки
//	│   └── DELETE /{id} - удаление
//	├── /watchlist/                      (auth)
//	│   ├── GET /, POST /
//	│   └── GET/PUT/DELETE /{id}
//	├── /alerts/                         (auth)
//	│   ├── GET /, POST /
//	│   └── GET/PUT/DELETE /{id}
//	└── GET /health - проверка живости
//
// /ws/prices - WebSocket поток котировок
// /metrics   - Prometheus метрики
// /          - информация о сервисе
//
// Middleware порядок (снаружи внутрь):
// Recovery → Logging → CORS → router (Metrics) → Auth (защищенные маршруты).
// CORS стоит вне router, чтобы preflight OPTIONS запросы к POST/PUT/DELETE
// маршрутам не проваливались в 405 до установки заголовков.
func SetupRoutes(deps *Dependencies) http.Handler {
	router := mux.NewRouter()
	router.Use(Metrics)

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService)
	swapHandler := handlers.NewSwapHandler(deps.SwapService)
	historyHandler := handlers.NewHistoryHandler(deps.HistoryService)
	watchlistHandler := handlers.NewWatchlistHandler(deps.WatchlistService)
	alertHandler := handlers.NewAlertHandler(deps.AlertService)

	api := router.PathPrefix("/api").Subrouter()

	// Публичные маршруты
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/swap/prices", swapHandler.GetPrices).Methods("GET")
	api.HandleFunc("/health", healthHandler).Methods("GET")

	// Защищенные маршруты
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(deps.Tokens))

	protected.HandleFunc("/profile", profileHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", profileHandler.UpdateProfile).Methods("PUT")

	protected.HandleFunc("/swap/execute", swapHandler.ExecuteSwap).Methods("POST")

	protected.HandleFunc("/history", historyHandler.GetHistory).Methods("GET")
	protected.HandleFunc("/history/{id}", historyHandler.GetRecord).Methods("GET")
	protected.HandleFunc("/history/{id}", historyHandler.UpdateNote).Methods("PUT")
	protected.HandleFunc("/history/{id}", historyHandler.DeleteRecord).Methods("DELETE")

	protected.HandleFunc("/watchlist", watchlistHandler.GetWatchlist).Methods("GET")
	protected.HandleFunc("/watchlist", watchlistHandler.AddToWatchlist).Methods("POST")
	protected.HandleFunc("/watchlist/{id}", watchlistHandler.GetItem).Methods("GET")
	protected.HandleFunc("/watchlist/{id}", watchlistHandler.UpdateItem).Methods("PUT")
	protected.HandleFunc("/watchlist/{id}", watchlistHandler.RemoveItem).Methods("DELETE")

	protected.HandleFunc("/alerts", alertHandler.GetAlerts).Methods("GET")
	protected.HandleFunc("/alerts", alertHandler.CreateAlert).Methods("POST")
	protected.HandleFunc("/alerts/{id}", alertHandler.GetAlert).Methods("GET")
	protected.HandleFunc("/alerts/{id}", alertHandler.UpdateAlert).Methods("PUT")
	protected.HandleFunc("/alerts/{id}", alertHandler.DeleteAlert).Methods("DELETE")

	// WebSocket поток котировок
	if deps.Hub != nil {
		router.HandleFunc("/ws/prices", func(w http.ResponseWriter, r *http.Request) {
			websocket.ServeWS(deps.Hub, w, r)
		})
	}

	// Prometheus метрики
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Информация о сервисе
	router.HandleFunc("/", indexHandler).Methods("GET")

	return middleware.Recovery(middleware.Logging(middleware.CORS(router)))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

// indexHandler возвращает карту endpoint-ов сервиса
func indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{
  "name": "BitPort API",
  "endpoints": {
    "auth": "/api/auth/register, /api/auth/login",
    "profile": "/api/profile",
    "swap": "/api/swap/prices, /api/swap/execute",
    "history": "/api/history",
    "watchlist": "/api/watchlist",
    "alerts": "/api/alerts",
    "prices_stream": "/ws/prices",
    "health": "/api/health",
    "metrics": "/metrics"
  }
}`))
}
