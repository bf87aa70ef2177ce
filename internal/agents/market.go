package agents

import (
	"context"
	"fmt"
	"strings"
)

// Quote is the structured form of a market-data section. The rendered text
// stays the display contract; downstream code that still parses labels out
// of the text can migrate to these fields without behavior change.
type Quote struct {
	Name              string
	Symbol            string
	Rank              int
	PriceUSD          float64
	MarketCapUSD      float64
	Volume24hUSD      float64
	Change24h         float64
	Change7d          float64
	Change30d         float64
	CirculatingSupply float64
	Homepage          string
	Twitter           string
}

// QuoteSource supplies live market data. Implemented by the CoinGecko
// client; the embedded table is the fallback when no source is configured
// or the source fails.
type QuoteSource interface {
	Quote(ctx context.Context, name string) (*Quote, error)
}

// MarketAgent reports market data and token metrics for a coin.
type MarketAgent struct {
	source QuoteSource
}

func NewMarketAgent(source QuoteSource) *MarketAgent {
	return &MarketAgent{source: source}
}

func (a *MarketAgent) Name() string { return "Market Data" }

// StructuredQuote returns the quote the text report is rendered from, or
// nil when neither the live source nor the seed table knows the coin.
func (a *MarketAgent) StructuredQuote(ctx context.Context, query string) *Quote {
	if a.source != nil {
		if q, err := a.source.Quote(ctx, strings.TrimSpace(query)); err == nil && q != nil {
			return q
		}
	}
	if rec, ok := loadSeed().Markets[normalizeKey(query)]; ok {
		q := quoteFromRecord(rec)
		return &q
	}
	return nil
}

func (a *MarketAgent) Lookup(ctx context.Context, query string) string {
	q := a.StructuredQuote(ctx, query)
	if q == nil {
		return marketFallback(query)
	}
	return renderQuote(q)
}

func quoteFromRecord(rec MarketRecord) Quote {
	return Quote{
		Name:              rec.Name,
		Symbol:            rec.Symbol,
		Rank:              rec.Rank,
		PriceUSD:          rec.PriceUSD,
		MarketCapUSD:      rec.MarketCapUSD,
		Volume24hUSD:      rec.Volume24hUSD,
		Change24h:         rec.Change24h,
		Change7d:          rec.Change7d,
		Change30d:         rec.Change30d,
		CirculatingSupply: rec.CirculatingSupply,
		Homepage:          rec.Homepage,
		Twitter:           rec.Twitter,
	}
}

func renderQuote(q *Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s) Market Data:\n\n", q.Name, strings.ToUpper(q.Symbol))
	fmt.Fprintf(&b, "Market Cap Rank: #%d\n", q.Rank)
	fmt.Fprintf(&b, "Price: $%s USD\n", formatAmount(q.PriceUSD, 2))
	fmt.Fprintf(&b, "Market Cap: $%s USD\n", formatCompact(q.MarketCapUSD))
	fmt.Fprintf(&b, "24h Volume: $%s USD\n", formatCompact(q.Volume24hUSD))

	b.WriteString("\nPrice Changes:\n")
	fmt.Fprintf(&b, "- 24h: %.2f%%\n", q.Change24h)
	fmt.Fprintf(&b, "- 7d: %.2f%%\n", q.Change7d)
	fmt.Fprintf(&b, "- 30d: %.2f%%\n", q.Change30d)

	if q.CirculatingSupply > 0 {
		fmt.Fprintf(&b, "\nCirculating Supply: %s %s\n", formatAmount(q.CirculatingSupply, 0), strings.ToUpper(q.Symbol))
	}

	if q.Homepage != "" || q.Twitter != "" {
		b.WriteString("\nProject Links:\n")
		if q.Homepage != "" {
			fmt.Fprintf(&b, "- Website: %s\n", q.Homepage)
		}
		if q.Twitter != "" {
			fmt.Fprintf(&b, "- Twitter: @%s\n", q.Twitter)
		}
	}

	return b.String()
}

func marketFallback(query string) string {
	return fmt.Sprintf(`No market data found for '%s'.

How to Check Market Fundamentals:
1. Verify the token is listed on CoinGecko or CoinMarketCap
2. Check trading volume against market cap - thin volume means easy manipulation
3. Review the circulating vs. total supply ratio
4. Look at holder distribution - a few wallets holding most supply is a red flag
5. Confirm the token contract address from official channels only

Unlisted or extremely low-cap tokens carry substantially higher risk.`, strings.TrimSpace(query))
}
