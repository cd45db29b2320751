package service

import (
	"errors"
	"testing"

	"bitport/internal/models"
	"bitport/internal/repository"
)

func seedHistory(t *testing.T, history *MockHistoryRepository, userID int, from, to string) *models.SwapRecord {
	t.Helper()

	record := &models.SwapRecord{
		UserID:     userID,
		FromSymbol: from,
		ToSymbol:   to,
		AmountFrom: 1,
		AmountTo:   20,
		PriceUSD:   50000,
	}
	if err := history.Create(record); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return record
}

func TestHistoryServiceList(t *testing.T) {
	history := NewMockHistoryRepository()
	seedHistory(t, history, 1, "BTC", "ETH")
	seedHistory(t, history, 1, "ETH", "SOL")
	seedHistory(t, history, 2, "BTC", "SOL")

	svc := NewHistoryService(history)

	t.Run("only own records", func(t *testing.T) {
		list, err := svc.List(1, repository.HistoryFilter{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if list.Meta.Total != 2 || len(list.Items) != 2 {
			t.Errorf("total=%d len=%d, want 2/2", list.Meta.Total, len(list.Items))
		}
		if list.Meta.Page != 1 || list.Meta.Limit != 10 || list.Meta.TotalPages != 1 {
			t.Errorf("meta = %+v", list.Meta)
		}
	})

	t.Run("symbol filter uppercased", func(t *testing.T) {
		list, err := svc.List(1, repository.HistoryFilter{FromSymbol: "btc"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if list.Meta.Total != 1 {
			t.Errorf("total = %d, want 1", list.Meta.Total)
		}
	})

	t.Run("empty page yields empty non-nil items", func(t *testing.T) {
		list, err := svc.List(1, repository.HistoryFilter{
			ListParams: repository.ListParams{Page: 5},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if list.Items == nil {
			t.Fatal("items must not be nil")
		}
		if len(list.Items) != 0 {
			t.Errorf("len = %d, want 0", len(list.Items))
		}
		// total не зависит от пагинации
		if list.Meta.Total != 2 {
			t.Errorf("total = %d, want 2", list.Meta.Total)
		}
	})
}

func TestHistoryServiceListMeta_TotalPages(t *testing.T) {
	history := NewMockHistoryRepository()
	for i := 0; i < 7; i++ {
		seedHistory(t, history, 1, "BTC", "ETH")
	}

	svc := NewHistoryService(history)

	list, err := svc.List(1, repository.HistoryFilter{
		ListParams: repository.ListParams{Limit: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if list.Meta.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", list.Meta.TotalPages)
	}
	if len(list.Items) > 3 {
		t.Errorf("len(items) = %d exceeds limit", len(list.Items))
	}
}

func TestHistoryServiceUpdateNote(t *testing.T) {
	history := NewMockHistoryRepository()
	record := seedHistory(t, history, 1, "BTC", "ETH")

	svc := NewHistoryService(history)
	note := "my first swap"

	if err := svc.UpdateNote(record.ID, 1, &note); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := svc.Get(record.ID, 1)
	if got.Note == nil || *got.Note != note {
		t.Errorf("note = %v", got.Note)
	}

	// Чужая запись неотличима от несуществующей
	if err := svc.UpdateNote(record.ID, 2, &note); !errors.Is(err, repository.ErrSwapRecordNotFound) {
		t.Errorf("expected ErrSwapRecordNotFound, got %v", err)
	}
}

func TestHistoryServiceDelete(t *testing.T) {
	history := NewMockHistoryRepository()
	record := seedHistory(t, history, 1, "BTC", "ETH")

	svc := NewHistoryService(history)

	if err := svc.Delete(record.ID, 2); !errors.Is(err, repository.ErrSwapRecordNotFound) {
		t.Errorf("foreign delete: expected ErrSwapRecordNotFound, got %v", err)
	}

	if err := svc.Delete(record.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Get(record.ID, 1); !errors.Is(err, repository.ErrSwapRecordNotFound) {
		t.Errorf("expected record gone, got %v", err)
	}
}
