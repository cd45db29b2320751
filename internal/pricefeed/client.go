package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"bitport/internal/config"
	"bitport/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Ошибки источника цен.
var (
	ErrNoAssets    = errors.New("no asset ids requested")
	ErrUnavailable = errors.New("price source unavailable")
)

// Price - спот-цена актива в USD
type Price struct {
	USD float64 `json:"usd"`
}

// Client - клиент CoinGecko simple/price.
// Без ретраев и кэширования: каждый вызов = один исходящий запрос.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *utils.Logger
}

// NewClient создает клиент источника цен
// Использует глобальный HTTP клиент с connection pooling
func NewClient(cfg config.PricefeedConfig, logger *utils.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: GetGlobalHTTPClient().GetClient(),
		timeout:    cfg.Timeout,
		logger:     logger.WithComponent("pricefeed"),
	}
}

// SimplePrices запрашивает USD цены для набора идентификаторов активов.
// Возвращает map по идентификатору; активы, неизвестные источнику,
// в ответе просто отсутствуют.
func (c *Client) SimplePrices(ctx context.Context, ids []string) (map[string]Price, error) {
	if len(ids) == 0 {
		return nil, ErrNoAssets
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", "usd")

	reqURL := c.baseURL + "/simple/price?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building price request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("price request failed",
			utils.String("ids", strings.Join(ids, ",")),
			utils.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("price source returned non-200",
			utils.Int("status", resp.StatusCode),
			utils.String("ids", strings.Join(ids, ",")))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	prices := make(map[string]Price)
	if err := json.Unmarshal(body, &prices); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	c.logger.Debug("prices fetched",
		utils.Int("requested", len(ids)),
		utils.Int("received", len(prices)),
		utils.Latency(float64(time.Since(start).Microseconds())/1000.0))

	return prices, nil
}
