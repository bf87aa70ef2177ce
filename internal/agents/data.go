package agents

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var seedYAML []byte

// MarketRecord is a static market quote for a known coin.
type MarketRecord struct {
	Name              string  `yaml:"name"`
	Symbol            string  `yaml:"symbol"`
	Rank              int     `yaml:"rank"`
	PriceUSD          float64 `yaml:"price_usd"`
	MarketCapUSD      float64 `yaml:"market_cap_usd"`
	Volume24hUSD      float64 `yaml:"volume_24h_usd"`
	Change24h         float64 `yaml:"change_24h"`
	Change7d          float64 `yaml:"change_7d"`
	Change30d         float64 `yaml:"change_30d"`
	CirculatingSupply float64 `yaml:"circulating_supply"`
	Homepage          string  `yaml:"homepage"`
	Twitter           string  `yaml:"twitter"`
}

// AuditRecord is a known security-audit summary.
type AuditRecord struct {
	Score           int            `yaml:"score"`
	Date            string         `yaml:"date"`
	Verified        bool           `yaml:"verified"`
	Vulnerabilities map[string]int `yaml:"vulnerabilities"`
	Findings        []string       `yaml:"findings"`
}

// ExchangeRecord is a known exchange reputation entry.
type ExchangeRecord struct {
	Name             string   `yaml:"name"`
	TrustScore       float64  `yaml:"trust_score"`
	Volume24hUSD     float64  `yaml:"volume_24h_usd"`
	Established      int      `yaml:"established"`
	Regulation       []string `yaml:"regulation"`
	SecurityFeatures []string `yaml:"security_features"`
	UserRating       float64  `yaml:"user_rating"`
	MakerFee         float64  `yaml:"maker_fee"`
	TakerFee         float64  `yaml:"taker_fee"`
	SupportedCoins   int      `yaml:"supported_coins"`
	Incidents        []string `yaml:"incidents"`
}

// FounderRecord is a known founder credibility entry.
type FounderRecord struct {
	Name             string   `yaml:"name"`
	Role             string   `yaml:"role"`
	CredibilityScore int      `yaml:"credibility_score"`
	Education        string   `yaml:"education"`
	Background       []string `yaml:"background"`
	PreviousProjects []string `yaml:"previous_projects"`
	Twitter          string   `yaml:"twitter"`
	Verified         bool     `yaml:"verified"`
	RedFlags         []string `yaml:"red_flags"`
	Achievements     []string `yaml:"achievements"`
}

// ProjectRecord is a known project metadata entry.
type ProjectRecord struct {
	Name          string   `yaml:"name"`
	Category      string   `yaml:"category"`
	Description   string   `yaml:"description"`
	Founded       int      `yaml:"founded"`
	MainnetLaunch string   `yaml:"mainnet_launch"`
	Consensus     string   `yaml:"consensus"`
	Token         string   `yaml:"token"`
	UseCases      []string `yaml:"use_cases"`
	Partnerships  []string `yaml:"partnerships"`
	GitHubOrg     string   `yaml:"github_org"`
	Website       string   `yaml:"website"`
}

type seedData struct {
	Markets   map[string]MarketRecord   `yaml:"markets"`
	Audits    map[string]AuditRecord    `yaml:"audits"`
	Exchanges map[string]ExchangeRecord `yaml:"exchanges"`
	Founders  map[string]FounderRecord  `yaml:"founders"`
	Projects  map[string]ProjectRecord  `yaml:"projects"`
}

var (
	seedOnce sync.Once
	seed     seedData
	seedErr  error
)

// loadSeed parses the embedded tables once. The file ships inside the
// binary, so a parse failure is a build defect and panics at first use.
func loadSeed() seedData {
	seedOnce.Do(func() {
		seedErr = yaml.Unmarshal(seedYAML, &seed)
	})
	if seedErr != nil {
		panic(fmt.Sprintf("agents: invalid embedded data.yaml: %v", seedErr))
	}
	return seed
}
