package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"decryptify/internal/agents"
)

const coinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoClient resolves coin names to live market data and metadata.
// It implements agents.QuoteSource and agents.ProfileSource.
type CoinGeckoClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewCoinGeckoClient(apiKey string) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: coinGeckoBaseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type searchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"coins"`
}

type coinResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Symbol          string   `json:"symbol"`
	MarketCapRank   int      `json:"market_cap_rank"`
	AssetPlatformID string   `json:"asset_platform_id"`
	Categories      []string `json:"categories"`
	MarketData      struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		MarketCap                map[string]float64 `json:"market_cap"`
		TotalVolume              map[string]float64 `json:"total_volume"`
		PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
		PriceChangePercentage7d  float64            `json:"price_change_percentage_7d"`
		PriceChangePercentage30d float64            `json:"price_change_percentage_30d"`
		CirculatingSupply        float64            `json:"circulating_supply"`
	} `json:"market_data"`
	Links struct {
		Homepage          []string `json:"homepage"`
		TwitterScreenName string   `json:"twitter_screen_name"`
	} `json:"links"`
}

type marketsResponse []struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Quote resolves a coin name via search, then fetches its market data.
func (c *CoinGeckoClient) Quote(ctx context.Context, name string) (*agents.Quote, error) {
	coin, err := c.resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	return &agents.Quote{
		Name:              coin.Name,
		Symbol:            coin.Symbol,
		Rank:              coin.MarketCapRank,
		PriceUSD:          coin.MarketData.CurrentPrice["usd"],
		MarketCapUSD:      coin.MarketData.MarketCap["usd"],
		Volume24hUSD:      coin.MarketData.TotalVolume["usd"],
		Change24h:         coin.MarketData.PriceChangePercentage24h,
		Change7d:          coin.MarketData.PriceChangePercentage7d,
		Change30d:         coin.MarketData.PriceChangePercentage30d,
		CirculatingSupply: coin.MarketData.CirculatingSupply,
		Homepage:          firstNonEmpty(coin.Links.Homepage),
		Twitter:           coin.Links.TwitterScreenName,
	}, nil
}

// Profile returns the metadata slice the related finder works from.
func (c *CoinGeckoClient) Profile(ctx context.Context, name string) (*agents.CoinProfile, error) {
	coin, err := c.resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	return &agents.CoinProfile{
		ID:         coin.ID,
		Name:       coin.Name,
		Categories: coin.Categories,
		Platform:   coin.AssetPlatformID,
		Homepage:   firstNonEmpty(coin.Links.Homepage),
		Twitter:    coin.Links.TwitterScreenName,
	}, nil
}

// CategoryPeer returns one other top coin in the given category.
func (c *CoinGeckoClient) CategoryPeer(ctx context.Context, category, excludeID string) (string, error) {
	params := url.Values{
		"vs_currency": {"usd"},
		"category":    {categorySlug(category)},
		"order":       {"market_cap_desc"},
		"per_page":    {"5"},
		"page":        {"1"},
	}

	var markets marketsResponse
	if err := c.get(ctx, "/coins/markets?"+params.Encode(), &markets); err != nil {
		return "", err
	}

	for _, coin := range markets {
		if coin.ID != excludeID {
			return coin.Name, nil
		}
	}
	return "", fmt.Errorf("no peer found in category %q", category)
}

// resolve maps a free-form coin name to its detail record via /search.
func (c *CoinGeckoClient) resolve(ctx context.Context, name string) (*coinResponse, error) {
	var search searchResponse
	if err := c.get(ctx, "/search?query="+url.QueryEscape(strings.TrimSpace(name)), &search); err != nil {
		return nil, err
	}
	if len(search.Coins) == 0 {
		return nil, fmt.Errorf("no coin found for %q", name)
	}

	path := fmt.Sprintf("/coins/%s?localization=false&tickers=false&community_data=false&developer_data=false",
		url.PathEscape(search.Coins[0].ID))

	var coin coinResponse
	if err := c.get(ctx, path, &coin); err != nil {
		return nil, err
	}
	return &coin, nil
}

func (c *CoinGeckoClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call CoinGecko API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("CoinGecko API error (status %d)", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// categorySlug converts a display category like "Decentralized Finance (DeFi)"
// into the API's slug form.
func categorySlug(category string) string {
	slug := strings.ToLower(category)
	if i := strings.IndexByte(slug, '('); i >= 0 {
		slug = slug[:i]
	}
	slug = strings.TrimSpace(slug)
	return strings.ReplaceAll(slug, " ", "-")
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
