// Package prices — клиент котировок CoinGecko с кэшем и запасными
// ценами. Публичный API без ключа, поэтому кэшируем агрессивно,
// а при недоступности отдаём статичные цены.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/config"
)

// fallbackPrices — запасные цены на случай недоступности API.
// Порядок величины важнее точности: игра считает проценты.
var fallbackPrices = map[string]float64{
	"ethereum":    3500.0,
	"bitcoin":     95000.0,
	"solana":      180.0,
	"cardano":     0.85,
	"polygon":     0.45,
	"avalanche-2": 35.0,
	"chainlink":   22.0,
	"polkadot":    6.5,
}

type cacheEntry struct {
	price     float64
	fetchedAt time.Time
}

// Client получает цены валют через CoinGecko simple/price.
type Client struct {
	baseURL string
	ttl     time.Duration
	http    *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewClient создаёт клиент котировок.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.PriceAPIBaseURL,
		ttl:     cfg.PriceCacheTTL,
		http:    &http.Client{Timeout: cfg.PriceTimeout},
		cache:   make(map[string]cacheEntry),
	}
}

// GetPrice возвращает цену валюты в USD. Сначала кэш, затем API,
// затем запасная цена. Ошибка возвращается только для неизвестной
// валюты без запасной цены.
func (c *Client) GetPrice(ctx context.Context, currency string) (float64, error) {
	c.mu.Lock()
	entry, ok := c.cache[currency]
	c.mu.Unlock()
	if ok && time.Since(entry.fetchedAt) < c.ttl {
		return entry.price, nil
	}

	price, err := c.fetch(ctx, currency)
	if err != nil {
		log.WithError(err).WithField("currency", currency).Warn("Котировка недоступна, используем запасную цену")
		if fallback, ok := fallbackPrices[currency]; ok {
			return fallback, nil
		}
		if ok {
			// Просроченный кэш лучше, чем ничего.
			return entry.price, nil
		}
		return 0, fmt.Errorf("нет цены для валюты %q: %w", currency, err)
	}

	c.mu.Lock()
	c.cache[currency] = cacheEntry{price: price, fetchedAt: time.Now()}
	c.mu.Unlock()
	return price, nil
}

func (c *Client) fetch(ctx context.Context, currency string) (float64, error) {
	u := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(currency))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("CoinGecko ответил статусом %d", resp.StatusCode)
	}

	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("ошибка разбора ответа: %w", err)
	}

	price, ok := payload[currency]["usd"]
	if !ok || price <= 0 {
		return 0, fmt.Errorf("в ответе нет цены для %q", currency)
	}
	return price, nil
}
