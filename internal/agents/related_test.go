package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfileSource struct {
	profile *CoinProfile
	peer    string
	err     error
	peerErr error
}

func (s *stubProfileSource) Profile(ctx context.Context, name string) (*CoinProfile, error) {
	return s.profile, s.err
}

func (s *stubProfileSource) CategoryPeer(ctx context.Context, category, excludeID string) (string, error) {
	return s.peer, s.peerErr
}

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestFindFromProfileMetadata(t *testing.T) {
	profiles := &stubProfileSource{
		profile: &CoinProfile{
			ID:         "uniswap",
			Name:       "Uniswap",
			Categories: []string{"Decentralized Exchange", "DeFi", "Ethereum Ecosystem"},
			Platform:   "ethereum",
			Homepage:   "https://uniswap.org/about",
			Twitter:    "Uniswap",
		},
		peer: "SushiSwap",
	}

	finder := NewRelatedFinder(profiles, nil)
	related := finder.Find(context.Background(), "Uniswap")

	require.Equal(t, []string{
		"Category: Decentralized Exchange",
		"Category: DeFi",
		"SushiSwap (Same Decentralized Exchange category)",
		"Built on Ethereum",
		"Website: uniswap.org",
		"Twitter: @Uniswap",
	}, related)
}

func TestFindPeerFailureIsSwallowed(t *testing.T) {
	profiles := &stubProfileSource{
		profile: &CoinProfile{
			ID:         "uniswap",
			Categories: []string{"DeFi"},
			Twitter:    "Uniswap",
		},
		peerErr: errors.New("api down"),
	}

	finder := NewRelatedFinder(profiles, nil)
	related := finder.Find(context.Background(), "Uniswap")

	assert.Equal(t, []string{"Category: DeFi", "Twitter: @Uniswap"}, related)
}

func TestFindBackfillsWithOneCompletionCall(t *testing.T) {
	completer := &stubCompleter{reply: `Here are related projects:
Arbitrum (Ethereum L2 scaling solution)
Optimism (Ethereum L2 rollup)
no parentheses on this line
Polygon (Ethereum sidechain)`}

	finder := NewRelatedFinder(nil, completer)
	related := finder.Find(context.Background(), "Ethereum")

	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, []string{
		"Arbitrum (Ethereum L2 scaling solution)",
		"Optimism (Ethereum L2 rollup)",
		"Polygon (Ethereum sidechain)",
	}, related)
}

func TestFindSkipsCompletionWhenMetadataSuffices(t *testing.T) {
	profiles := &stubProfileSource{
		profile: &CoinProfile{
			ID:         "uniswap",
			Categories: []string{"DEX", "DeFi"},
			Platform:   "ethereum",
		},
		peer: "SushiSwap",
	}
	completer := &stubCompleter{reply: "Aave (lending)"}

	finder := NewRelatedFinder(profiles, completer)
	related := finder.Find(context.Background(), "Uniswap")

	assert.Equal(t, 0, completer.calls)
	assert.Len(t, related, 4)
}

func TestFindDeduplicatesAndCaps(t *testing.T) {
	var lines string
	for i := 0; i < 2; i++ {
		lines += `Alpha (a)
Beta (b)
Gamma (c)
Delta (d)
Epsilon (e)
Zeta (f)
Eta (g)
Theta (h)
Iota (i)
`
	}
	finder := NewRelatedFinder(nil, &stubCompleter{reply: lines})
	related := finder.Find(context.Background(), "Example")

	require.Len(t, related, 8)
	assert.Equal(t, "Alpha (a)", related[0])
	assert.Equal(t, "Theta (h)", related[7])
}

func TestFindTotalFailureIsEmpty(t *testing.T) {
	profiles := &stubProfileSource{err: errors.New("api down")}
	completer := &stubCompleter{err: errors.New("model down")}

	finder := NewRelatedFinder(profiles, completer)
	related := finder.Find(context.Background(), "Obscurium")

	assert.Empty(t, related)
}

func TestFindNoSourcesConfigured(t *testing.T) {
	finder := NewRelatedFinder(nil, nil)
	assert.Empty(t, finder.Find(context.Background(), "Bitcoin"))
}

func TestHomepageDomain(t *testing.T) {
	assert.Equal(t, "uniswap.org", homepageDomain("https://uniswap.org/about"))
	assert.Equal(t, "bitcoin.org", homepageDomain("http://bitcoin.org"))
	assert.Equal(t, "chain.link", homepageDomain("chain.link"))
}
