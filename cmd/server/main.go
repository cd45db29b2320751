package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitport/internal/api"
	"bitport/internal/auth"
	"bitport/internal/config"
	"bitport/internal/pricefeed"
	"bitport/internal/repository"
	"bitport/internal/service"
	"bitport/internal/websocket"
	"bitport/pkg/utils"

	_ "github.com/lib/pq"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера
	logger := utils.InitGlobalLogger(utils.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	defer func() { _ = logger.Sync() }()

	// Инициализация базы данных
	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database",
			utils.Err(err),
			utils.String("dsn", cfg.Database.DSNWithoutPassword()),
		)
	}
	defer db.Close()

	logger.Info("Connected to database", utils.String("dsn", cfg.Database.DSNWithoutPassword()))

	// Инициализация репозиториев
	userRepo := repository.NewUserRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	// JWT токены
	tokens, err := auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	if err != nil {
		logger.Fatal("Failed to create token manager", utils.Err(err))
	}

	// Источник спот-цен
	priceClient := pricefeed.NewClient(cfg.Pricefeed, logger)
	defer pricefeed.CloseGlobalClient()

	// WebSocket hub для трансляции котировок
	hub := websocket.NewHub()
	go hub.Run()

	// Инициализация сервисов
	authService := service.NewAuthService(userRepo, tokens, logger)
	profileService := service.NewProfileService(userRepo)
	swapService := service.NewSwapService(priceClient, historyRepo, hub, cfg.Pricefeed.DefaultIDs, logger)
	historyService := service.NewHistoryService(historyRepo)
	watchlistService := service.NewWatchlistService(watchlistRepo)
	alertService := service.NewAlertService(alertRepo)

	// Настройка HTTP роутера
	handler := api.SetupRoutes(&api.Dependencies{
		AuthService:      authService,
		ProfileService:   profileService,
		SwapService:      swapService,
		HistoryService:   historyService,
		WatchlistService: watchlistService,
		AlertService:     alertService,
		Tokens:           tokens,
		Hub:              hub,
	})

	// HTTP сервер
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запуск сервера в отдельной горутине
	go func() {
		logger.Info("Starting server", utils.String("addr", server.Addr))
		if cfg.Server.UseHTTPS {
			if err := server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile); err != nil && err != http.ErrServerClosed {
				logger.Fatal("Server failed", utils.Err(err))
			}
		} else {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("Server failed", utils.Err(err))
			}
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", utils.Err(err))
	}

	logger.Info("Server exited")
}

// initDatabase создает подключение к базе данных
func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Проверка подключения
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
