package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"bitport/internal/pricefeed"
)

var testPrices = map[string]pricefeed.Price{
	"bitcoin":  {USD: 50000},
	"ethereum": {USD: 2500},
	"solana":   {USD: 150},
}

func newSwapService(source PriceSource, history HistoryRepositoryInterface, broadcaster PriceBroadcaster) *SwapService {
	return NewSwapService(source, history, broadcaster, []string{"bitcoin", "ethereum", "solana"}, newTestLogger())
}

func TestSwapServiceGetPrices(t *testing.T) {
	source := NewMockPriceSource(testPrices)
	broadcaster := &RecordingBroadcaster{}
	svc := newSwapService(source, NewMockHistoryRepository(), broadcaster)

	prices, err := svc.GetPrices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(prices) != 3 {
		t.Errorf("got %d prices, want 3", len(prices))
	}
	if prices["bitcoin"].USD != 50000 {
		t.Errorf("bitcoin = %v", prices["bitcoin"])
	}

	// Успешный запрос рассылается подписчикам
	if len(broadcaster.broadcasts) != 1 {
		t.Errorf("got %d broadcasts, want 1", len(broadcaster.broadcasts))
	}
}

func TestSwapServiceGetPrices_UpstreamFailure(t *testing.T) {
	source := NewMockPriceSource(testPrices)
	source.err = pricefeed.ErrUnavailable
	broadcaster := &RecordingBroadcaster{}
	svc := newSwapService(source, NewMockHistoryRepository(), broadcaster)

	if _, err := svc.GetPrices(context.Background()); !errors.Is(err, pricefeed.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if len(broadcaster.broadcasts) != 0 {
		t.Error("failed fetch must not broadcast")
	}
}

func TestSwapServiceExecute(t *testing.T) {
	history := NewMockHistoryRepository()
	svc := newSwapService(NewMockPriceSource(testPrices), history, nil)

	// Опорный сценарий: 1 BTC -> ETH при 50000/2500
	result, err := svc.Execute(context.Background(), 1, "Bitcoin", "ethereum", 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Error("expected Success=true")
	}
	if result.From != "BITCOIN" || result.To != "ETHEREUM" {
		t.Errorf("symbols = %s/%s", result.From, result.To)
	}
	if result.AmountTo != 20.0 {
		t.Errorf("amountTo = %v, want 20", result.AmountTo)
	}
	if result.ExchangeRate != 20.0 {
		t.Errorf("exchangeRate = %v, want 20", result.ExchangeRate)
	}
	if result.PriceUSD != 50000 {
		t.Errorf("priceUsd = %v, want 50000", result.PriceUSD)
	}
	if result.SwapID == 0 {
		t.Error("expected non-zero swapId")
	}

	// Записано в историю с символами в верхнем регистре
	record, err := history.GetByID(result.SwapID, 1)
	if err != nil {
		t.Fatalf("history record missing: %v", err)
	}
	if record.FromSymbol != "BITCOIN" || record.ToSymbol != "ETHEREUM" {
		t.Errorf("stored symbols = %s/%s", record.FromSymbol, record.ToSymbol)
	}
	if record.AmountTo != 20.0 {
		t.Errorf("stored amountTo = %v", record.AmountTo)
	}
}

func TestSwapServiceExecute_UnroundedPersisted(t *testing.T) {
	// 1/3 дает бесконечную дробь: в истории полное значение,
	// в ответе округление до 8 знаков
	prices := map[string]pricefeed.Price{
		"bitcoin": {USD: 1},
		"solana":  {USD: 3},
	}
	history := NewMockHistoryRepository()
	svc := newSwapService(NewMockPriceSource(prices), history, nil)

	result, err := svc.Execute(context.Background(), 1, "bitcoin", "solana", 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, _ := history.GetByID(result.SwapID, 1)
	if record.AmountTo != 1.0/3.0 {
		t.Errorf("stored amountTo = %v, want unrounded %v", record.AmountTo, 1.0/3.0)
	}
	if math.Abs(result.AmountTo-0.33333333) > 1e-12 {
		t.Errorf("response amountTo = %v, want 0.33333333", result.AmountTo)
	}
}

func TestSwapServiceExecute_Errors(t *testing.T) {
	tests := []struct {
		name        string
		from        string
		to          string
		amount      float64
		sourceErr   error
		expectError error
	}{
		{name: "missing from", from: "", to: "ethereum", amount: 1, expectError: ErrMissingAsset},
		{name: "missing to", from: "bitcoin", to: "  ", amount: 1, expectError: ErrMissingAsset},
		{name: "zero amount", from: "bitcoin", to: "ethereum", amount: 0, expectError: ErrInvalidAmount},
		{name: "negative amount", from: "bitcoin", to: "ethereum", amount: -5, expectError: ErrInvalidAmount},
		{name: "unknown asset", from: "bitcoin", to: "nosuchcoin", amount: 1, expectError: ErrPriceUnavailable},
		{name: "upstream down", from: "bitcoin", to: "ethereum", amount: 1, sourceErr: pricefeed.ErrUnavailable, expectError: pricefeed.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := NewMockPriceSource(testPrices)
			source.err = tt.sourceErr
			history := NewMockHistoryRepository()
			svc := newSwapService(source, history, nil)

			_, err := svc.Execute(context.Background(), 1, tt.from, tt.to, tt.amount)
			if !errors.Is(err, tt.expectError) {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}

			// Неудачный обмен не оставляет следов в истории
			if len(history.records) != 0 {
				t.Error("failed swap must not write history")
			}
		})
	}
}

func TestSwapServiceExecute_ZeroPrice(t *testing.T) {
	prices := map[string]pricefeed.Price{
		"bitcoin":  {USD: 50000},
		"deadcoin": {USD: 0},
	}
	svc := newSwapService(NewMockPriceSource(prices), NewMockHistoryRepository(), nil)

	if _, err := svc.Execute(context.Background(), 1, "bitcoin", "deadcoin", 1.0); !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("expected ErrPriceUnavailable, got %v", err)
	}
}

func TestSwapServiceExecute_FetchesBothInOneCall(t *testing.T) {
	source := NewMockPriceSource(testPrices)
	svc := newSwapService(source, NewMockHistoryRepository(), nil)

	if _, err := svc.Execute(context.Background(), 1, "bitcoin", "ethereum", 2.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if source.numCalls != 1 {
		t.Errorf("numCalls = %d, want 1", source.numCalls)
	}
	if len(source.lastIDs) != 2 || source.lastIDs[0] != "bitcoin" || source.lastIDs[1] != "ethereum" {
		t.Errorf("lastIDs = %v", source.lastIDs)
	}
}
