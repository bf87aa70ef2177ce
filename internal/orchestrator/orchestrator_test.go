package orchestrator

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decryptify/internal/agents"
)

func newTestOrchestrator(opts Options) *Orchestrator {
	if opts.Logger == nil {
		log := logrus.New()
		log.SetLevel(logrus.PanicLevel)
		opts.Logger = log
	}
	return New(opts)
}

func TestAnalyzeUniswapEndToEnd(t *testing.T) {
	o := newTestOrchestrator(Options{})
	report := o.Analyze(context.Background(), "Uniswap")

	// Header and summary block.
	require.Contains(t, report, "DECRYPTIFY ANALYSIS: UNISWAP")
	assert.Contains(t, report, "Price: $10.84")
	assert.Contains(t, report, "Market Cap: $6.5B")

	// Audit table hit surfaces the top verdict.
	assert.Contains(t, report, "Security Score: 95/100")
	assert.Contains(t, report, "EXCELLENT:")

	// Not an exchange query.
	assert.Contains(t, report, ExchangeSkippedMarker)

	// No completer configured: the heuristic verdict applies, and the scam
	// section heading itself carries the "scam" trigger.
	assert.Contains(t, report, "Overall Trust Score: 3/10")
	assert.Contains(t, report, "Trust Level: LOW")

	// Every section and the disclaimer are present.
	for _, heading := range []string{
		"MARKET DATA & METRICS",
		"SCAM RISK ASSESSMENT",
		"SECURITY AUDIT STATUS",
		"EXCHANGE ANALYSIS",
		"FOUNDER & TEAM ANALYSIS",
		"PROJECT INFORMATION",
		"RELATED PROJECTS",
	} {
		assert.Contains(t, report, heading)
	}
	assert.Contains(t, report, "DISCLAIMER:")
}

func TestAnalyzeBinancePopulatesExchangeSection(t *testing.T) {
	o := newTestOrchestrator(Options{})
	report := o.Analyze(context.Background(), "Binance")

	assert.NotContains(t, report, ExchangeSkippedMarker)
	assert.Contains(t, report, "Exchange Analysis: Binance")
	assert.Contains(t, report, "Trust Score: 9.5/10")
}

func TestAnalyzeExchangeKeywordTriggersExchangeAgent(t *testing.T) {
	o := newTestOrchestrator(Options{})
	report := o.Analyze(context.Background(), "some exchange")

	assert.NotContains(t, report, ExchangeSkippedMarker)
	assert.Contains(t, report, "EXCHANGE ANALYSIS")
}

func TestAnalyzeUnknownProjectIsStructurallyComplete(t *testing.T) {
	o := newTestOrchestrator(Options{})
	report := o.Analyze(context.Background(), "Obscurium")

	assert.Contains(t, report, "DECRYPTIFY ANALYSIS: OBSCURIUM")
	assert.Contains(t, report, "Price: Not available")
	assert.Contains(t, report, "Market Cap: Not available")
	assert.Contains(t, report, "No directly related projects identified.")
	assert.Contains(t, report, "DISCLAIMER:")
}

type panickingQuoteSource struct{}

func (panickingQuoteSource) Quote(ctx context.Context, name string) (*agents.Quote, error) {
	panic("quote source exploded")
}

func TestAnalyzeSurvivesPanickingProvider(t *testing.T) {
	o := newTestOrchestrator(Options{Quotes: panickingQuoteSource{}})

	report := o.Analyze(context.Background(), "Obscurium")

	assert.Contains(t, report, "Market data unavailable:")
	assert.Contains(t, report, "DECRYPTIFY ANALYSIS: OBSCURIUM")
	// The other sections are unaffected.
	assert.Contains(t, report, "SCAM RISK ASSESSMENT")
}

type flakyCompleter struct{}

func (flakyCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	panic("completer exploded")
}

func TestAnalyzePanicInScoringBecomesErrorReport(t *testing.T) {
	o := newTestOrchestrator(Options{Completer: flakyCompleter{}})

	report := o.Analyze(context.Background(), "Bitcoin")

	assert.True(t, strings.HasPrefix(report, "Error performing analysis: "), "got: %q", report)
}

func TestIsExchangeQuery(t *testing.T) {
	assert.True(t, isExchangeQuery("Binance"))
	assert.True(t, isExchangeQuery("is coinbase safe"))
	assert.True(t, isExchangeQuery("some EXCHANGE"))
	assert.False(t, isExchangeQuery("Uniswap"))
	assert.False(t, isExchangeQuery("Bitcoin"))
}

func TestExtractPrice(t *testing.T) {
	market := "Bitcoin (BTC) Market Data:\nPrice: $67,412.50 USD\nMarket Cap: $1.33T USD"

	assert.Equal(t, "$67,412.50", extractPrice(market))
	assert.Equal(t, "$1.33T", extractMarketCap(market))
	assert.Equal(t, priceNotAvailable, extractPrice("no price here"))
	assert.Equal(t, marketCapNotAvailable, extractMarketCap(""))
}

func TestFounderExcerpt(t *testing.T) {
	founder := "Founder Analysis: Vitalik Buterin\n\nRole: Co-founder of Ethereum\nCredibility Score: 10/10"

	excerpt := founderExcerpt(founder)
	assert.Contains(t, excerpt, "Founder Analysis: Vitalik Buterin")
	assert.Contains(t, excerpt, "Role: Co-founder of Ethereum")
	assert.NotContains(t, excerpt, "Credibility Score")

	assert.Equal(t, founderNotAvailable, founderExcerpt("nothing relevant here"))
}

func TestFirstNonEmptyLine(t *testing.T) {
	assert.Equal(t, "first", firstNonEmptyLine("\n\n  first\nsecond", "fallback"))
	assert.Equal(t, "fallback", firstNonEmptyLine("   \n  ", "fallback"))
}

func TestStructuredQuoteMatchesTextExtraction(t *testing.T) {
	// The structured seam and the legacy text extraction must agree on the
	// same coin.
	agent := agents.NewMarketAgent(nil)
	q := agent.StructuredQuote(context.Background(), "Uniswap")
	require.NotNil(t, q)

	rendered := agent.Lookup(context.Background(), "Uniswap")
	assert.Equal(t, "$10.84", extractPrice(rendered))
	assert.Equal(t, 10.84, q.PriceUSD)
}
