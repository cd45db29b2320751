package pricefeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bitport/internal/config"
	"bitport/pkg/utils"
)

func newTestLogger(t *testing.T) *utils.Logger {
	t.Helper()
	return utils.InitLogger(utils.LogConfig{Level: "error", Format: "console", Output: "stderr"})
}

func newTestClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()
	return NewClient(config.PricefeedConfig{
		BaseURL: baseURL,
		Timeout: timeout,
	}, newTestLogger(t))
}

func TestClient_SimplePrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("vs_currencies"); got != "usd" {
			t.Errorf("vs_currencies = %q, want usd", got)
		}
		if got := r.URL.Query().Get("ids"); got != "bitcoin,ethereum" {
			t.Errorf("ids = %q, want bitcoin,ethereum", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bitcoin":{"usd":50000},"ethereum":{"usd":2500.5}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 5*time.Second)

	prices, err := client.SimplePrices(context.Background(), []string{"bitcoin", "ethereum"})
	if err != nil {
		t.Fatalf("SimplePrices() error = %v", err)
	}

	if len(prices) != 2 {
		t.Fatalf("got %d prices, want 2", len(prices))
	}
	if prices["bitcoin"].USD != 50000 {
		t.Errorf("bitcoin price = %v, want 50000", prices["bitcoin"].USD)
	}
	if prices["ethereum"].USD != 2500.5 {
		t.Errorf("ethereum price = %v, want 2500.5", prices["ethereum"].USD)
	}
}

func TestClient_SimplePrices_UnknownAssetMissing(t *testing.T) {
	// CoinGecko молча пропускает неизвестные идентификаторы
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bitcoin":{"usd":50000}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 5*time.Second)

	prices, err := client.SimplePrices(context.Background(), []string{"bitcoin", "nosuchcoin"})
	if err != nil {
		t.Fatalf("SimplePrices() error = %v", err)
	}

	if _, ok := prices["nosuchcoin"]; ok {
		t.Error("nosuchcoin should be absent from the response")
	}
	if _, ok := prices["bitcoin"]; !ok {
		t.Error("bitcoin should be present in the response")
	}
}

func TestClient_SimplePrices_Errors(t *testing.T) {
	t.Run("empty ids", func(t *testing.T) {
		client := newTestClient(t, "http://localhost:0", time.Second)
		if _, err := client.SimplePrices(context.Background(), nil); !errors.Is(err, ErrNoAssets) {
			t.Errorf("error = %v, want ErrNoAssets", err)
		}
	})

	t.Run("upstream 500", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, 5*time.Second)
		if _, err := client.SimplePrices(context.Background(), []string{"bitcoin"}); !errors.Is(err, ErrUnavailable) {
			t.Errorf("error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("upstream 429 rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, 5*time.Second)
		if _, err := client.SimplePrices(context.Background(), []string{"bitcoin"}); !errors.Is(err, ErrUnavailable) {
			t.Errorf("error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, 5*time.Second)
		if _, err := client.SimplePrices(context.Background(), []string{"bitcoin"}); !errors.Is(err, ErrUnavailable) {
			t.Errorf("error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, 50*time.Millisecond)
		if _, err := client.SimplePrices(context.Background(), []string{"bitcoin"}); !errors.Is(err, ErrUnavailable) {
			t.Errorf("error = %v, want ErrUnavailable", err)
		}
	})
}
