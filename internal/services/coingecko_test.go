package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geckoServer(t *testing.T) *CoinGeckoClient {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "uniswap", r.URL.Query().Get("query"))
		w.Write([]byte(`{"coins":[{"id":"uniswap","name":"Uniswap","symbol":"uni"}]}`))
	})

	mux.HandleFunc("/coins/uniswap", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "uniswap",
			"name": "Uniswap",
			"symbol": "uni",
			"market_cap_rank": 22,
			"asset_platform_id": "ethereum",
			"categories": ["Decentralized Exchange", "DeFi"],
			"market_data": {
				"current_price": {"usd": 10.84},
				"market_cap": {"usd": 6500000000},
				"total_volume": {"usd": 182000000},
				"price_change_percentage_24h": 0.9,
				"price_change_percentage_7d": 4.2,
				"price_change_percentage_30d": -3.8,
				"circulating_supply": 600000000
			},
			"links": {
				"homepage": ["", "https://uniswap.org"],
				"twitter_screen_name": "Uniswap"
			}
		}`))
	})

	mux.HandleFunc("/coins/markets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "decentralized-exchange", r.URL.Query().Get("category"))
		w.Write([]byte(`[{"id":"uniswap","name":"Uniswap"},{"id":"sushiswap","name":"SushiSwap"}]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewCoinGeckoClient("")
	client.baseURL = srv.URL
	return client
}

func TestQuoteResolvesViaSearch(t *testing.T) {
	client := geckoServer(t)

	quote, err := client.Quote(context.Background(), "Uniswap")
	require.NoError(t, err)

	assert.Equal(t, "Uniswap", quote.Name)
	assert.Equal(t, 22, quote.Rank)
	assert.Equal(t, 10.84, quote.PriceUSD)
	assert.Equal(t, 6.5e9, quote.MarketCapUSD)
	// First non-empty homepage entry wins.
	assert.Equal(t, "https://uniswap.org", quote.Homepage)
	assert.Equal(t, "Uniswap", quote.Twitter)
}

func TestProfileCarriesCategoriesAndPlatform(t *testing.T) {
	client := geckoServer(t)

	profile, err := client.Profile(context.Background(), "Uniswap")
	require.NoError(t, err)

	assert.Equal(t, "uniswap", profile.ID)
	assert.Equal(t, []string{"Decentralized Exchange", "DeFi"}, profile.Categories)
	assert.Equal(t, "ethereum", profile.Platform)
}

func TestCategoryPeerExcludesSelf(t *testing.T) {
	client := geckoServer(t)

	peer, err := client.CategoryPeer(context.Background(), "Decentralized Exchange", "uniswap")
	require.NoError(t, err)
	assert.Equal(t, "SushiSwap", peer)
}

func TestQuoteUnknownCoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"coins":[]}`))
	}))
	t.Cleanup(srv.Close)

	client := NewCoinGeckoClient("")
	client.baseURL = srv.URL

	_, err := client.Quote(context.Background(), "Obscurium")
	assert.ErrorContains(t, err, "no coin found")
}

func TestCategorySlug(t *testing.T) {
	assert.Equal(t, "decentralized-exchange", categorySlug("Decentralized Exchange"))
	assert.Equal(t, "decentralized-finance", categorySlug("Decentralized Finance (DeFi)"))
	assert.Equal(t, "defi", categorySlug("DeFi"))
}
