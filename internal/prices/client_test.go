package prices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baitpond.ru/fishing-bot/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		PriceAPIBaseURL: baseURL,
		PriceCacheTTL:   time.Minute,
		PriceTimeout:    2 * time.Second,
	}
}

func TestGetPrice_FetchesAndCaches(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "ethereum", r.URL.Query().Get("ids"))
		w.Write([]byte(`{"ethereum":{"usd":3456.78}}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))

	price, err := c.GetPrice(context.Background(), "ethereum")
	require.NoError(t, err)
	assert.InDelta(t, 3456.78, price, 1e-9)

	// Повторный запрос в пределах TTL идёт из кэша.
	price, err = c.GetPrice(context.Background(), "ethereum")
	require.NoError(t, err)
	assert.InDelta(t, 3456.78, price, 1e-9)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetPrice_FallbackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))

	price, err := c.GetPrice(context.Background(), "bitcoin")
	require.NoError(t, err)
	assert.Equal(t, fallbackPrices["bitcoin"], price)
}

func TestGetPrice_UnknownCurrencyNoFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))

	_, err := c.GetPrice(context.Background(), "dogecoin")
	assert.Error(t, err)
}

func TestGetPrice_RejectsZeroPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"solana":{"usd":0}}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))

	// Нулевая цена из API бракуется, в дело идёт запасная.
	price, err := c.GetPrice(context.Background(), "solana")
	require.NoError(t, err)
	assert.Equal(t, fallbackPrices["solana"], price)
}
