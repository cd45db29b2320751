package service

import (
	"context"
	"errors"
	"strings"

	"bitport/internal/models"
	"bitport/internal/pricefeed"
	"bitport/pkg/utils"
)

// Ошибки сервиса обменов
var (
	ErrMissingAsset     = errors.New("both assets must be specified")
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrPriceUnavailable = errors.New("price unavailable for requested asset")
)

// SwapResult - результат симулированного обмена.
// AmountTo и ExchangeRate округлены до 8 знаков; в истории
// хранится неокругленное значение.
type SwapResult struct {
	Success      bool    `json:"success"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	AmountFrom   float64 `json:"amountFrom"`
	AmountTo     float64 `json:"amountTo"`
	ExchangeRate float64 `json:"exchangeRate"`
	PriceUSD     float64 `json:"priceUSD"`
	SwapID       int     `json:"swapId"`
}

// SwapService выполняет симулированные обмены по текущим спот-ценам.
//
// Отвечает за:
// - Получение цен из внешнего источника (один запрос, без ретраев)
// - Конвертацию через USD-кросс
// - Запись результата в историю пользователя
// - Рассылку свежих цен подписчикам price-stream
//
// Обмен НЕ атомарен относительно получения цены: два конкурентных
// обмена могут увидеть разные цены.
type SwapService struct {
	prices      PriceSource
	history     HistoryRepositoryInterface
	broadcaster PriceBroadcaster
	defaultIDs  []string
	logger      *utils.Logger
}

// NewSwapService создает новый экземпляр SwapService.
func NewSwapService(prices PriceSource, history HistoryRepositoryInterface, broadcaster PriceBroadcaster, defaultIDs []string, logger *utils.Logger) *SwapService {
	if broadcaster == nil {
		broadcaster = NopBroadcaster{}
	}

	return &SwapService{
		prices:      prices,
		history:     history,
		broadcaster: broadcaster,
		defaultIDs:  defaultIDs,
		logger:      logger.WithComponent("swap_service"),
	}
}

// GetPrices возвращает USD цены набора активов по умолчанию.
// Успешный ответ рассылается подписчикам price-stream.
func (s *SwapService) GetPrices(ctx context.Context) (map[string]pricefeed.Price, error) {
	prices, err := s.prices.SimplePrices(ctx, s.defaultIDs)
	if err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastPrices(prices)

	return prices, nil
}

// Execute выполняет симулированный обмен from -> to.
//
// from и to - идентификаторы активов источника цен (например "bitcoin").
// В историю символы записываются в верхнем регистре, amountTo - без
// округления; в ответе amountTo и курс округлены до 8 знаков.
//
// Возвращает:
// - ErrMissingAsset / ErrInvalidAmount при невалидном запросе
// - ErrPriceUnavailable если источник не знает один из активов
// - pricefeed.ErrUnavailable при недоступности источника
func (s *SwapService) Execute(ctx context.Context, userID int, from, to string, amount float64) (*SwapResult, error) {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))

	if from == "" || to == "" {
		return nil, ErrMissingAsset
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	prices, err := s.prices.SimplePrices(ctx, []string{from, to})
	if err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastPrices(prices)

	priceFrom, okFrom := prices[from]
	priceTo, okTo := prices[to]
	if !okFrom || !okTo {
		return nil, ErrPriceUnavailable
	}

	result, err := utils.Convert(amount, priceFrom.USD, priceTo.USD)
	if err != nil {
		if errors.Is(err, utils.ErrNonPositivePrice) {
			return nil, ErrPriceUnavailable
		}
		return nil, err
	}

	record := &models.SwapRecord{
		UserID:     userID,
		FromSymbol: strings.ToUpper(from),
		ToSymbol:   strings.ToUpper(to),
		AmountFrom: amount,
		AmountTo:   result.AmountTo,
		PriceUSD:   priceFrom.USD,
	}

	if err := s.history.Create(record); err != nil {
		return nil, err
	}

	s.logger.Info("swap executed",
		utils.UserID(userID),
		utils.String("from", record.FromSymbol),
		utils.String("to", record.ToSymbol),
		utils.Amount(amount),
		utils.RecordID(record.ID))

	return &SwapResult{
		Success:      true,
		From:         record.FromSymbol,
		To:           record.ToSymbol,
		AmountFrom:   amount,
		AmountTo:     utils.Round8(result.AmountTo),
		ExchangeRate: utils.Round8(result.Rate),
		PriceUSD:     priceFrom.USD,
		SwapID:       record.ID,
	}, nil
}
