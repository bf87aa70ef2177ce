package agents

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Fixed indicator lists. The weights and band thresholds below are part of
// the documented scoring contract and must not drift.
var scamKeywords = []string{
	"guaranteed returns",
	"risk-free",
	"double your money",
	"act now",
	"limited time",
	"get rich quick",
	"pyramid",
	"ponzi",
	"mlm",
	"multi-level",
	"referral bonus",
	"exclusive opportunity",
	"secret method",
	"insider information",
	"pump and dump",
}

var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`guaranteed.*\d+%.*returns?`),
	regexp.MustCompile(`earn.*\d+%.*daily`),
	regexp.MustCompile(`minimum.*investment.*required`),
	regexp.MustCompile(`recruit.*friends.*earn`),
	regexp.MustCompile(`no.*risk.*investment`),
}

var memeTerms = []string{"elon", "musk", "doge", "shiba", "moon", "safe"}

var urgencyPhrases = []string{"hurry", "last chance", "ending soon", "act fast", "now or never"}

var bigPercentPattern = regexp.MustCompile(`\d{3,}%`)

// ScamAgent scores a project name (plus optional free-text context) against
// a fixed list of scam indicators.
type ScamAgent struct{}

func NewScamAgent() *ScamAgent { return &ScamAgent{} }

func (a *ScamAgent) Name() string { return "Scam Analysis" }

// RiskScore computes the indicator score and the list of matched risk
// factors for a name plus optional context. Weights:
//
//	+10 per matched keyword
//	+15 per matched regex pattern
//	 +5 if the name contains a commonly exploited meme term
//	+20 if a 3+ digit percentage appears
//	+10 if urgency language appears
//	+15 if "anonymous" appears or "doxxed" does not
//
// The last rule penalizes virtually every query that doesn't literally say
// "doxxed". Kept as documented behavior; see DESIGN.md before reusing this
// heuristic anywhere that matters.
func RiskScore(name, context string) (int, []string) {
	text := strings.ToLower(name + " " + context)
	nameLower := strings.ToLower(name)

	score := 0
	var factors []string

	var foundKeywords []string
	for _, kw := range scamKeywords {
		if strings.Contains(text, kw) {
			foundKeywords = append(foundKeywords, kw)
			score += 10
		}
	}
	if len(foundKeywords) > 0 {
		factors = append(factors, "Suspicious keywords detected: "+strings.Join(foundKeywords, ", "))
	}

	patternHits := 0
	for _, p := range suspiciousPatterns {
		if p.MatchString(text) {
			patternHits++
			score += 15
		}
	}
	if patternHits > 0 {
		factors = append(factors, fmt.Sprintf("Suspicious patterns detected: %d patterns", patternHits))
	}

	for _, term := range memeTerms {
		if strings.Contains(nameLower, term) {
			factors = append(factors, "Project name contains commonly exploited terms")
			score += 5
			break
		}
	}

	if bigPercentPattern.MatchString(text) {
		factors = append(factors, "Unrealistic return promises detected")
		score += 20
	}

	for _, phrase := range urgencyPhrases {
		if strings.Contains(text, phrase) {
			factors = append(factors, "Urgency tactics detected")
			score += 10
			break
		}
	}

	if strings.Contains(text, "anonymous") || !strings.Contains(text, "doxxed") {
		factors = append(factors, "Potentially anonymous team")
		score += 15
	}

	return score, factors
}

// RiskBand maps a score onto its risk band label.
func RiskBand(score int) string {
	switch {
	case score >= 50:
		return "HIGH RISK"
	case score >= 30:
		return "MEDIUM-HIGH RISK"
	case score >= 15:
		return "MEDIUM RISK"
	case score > 0:
		return "LOW-MEDIUM RISK"
	default:
		return "LOW RISK"
	}
}

func riskRecommendation(score int) string {
	switch {
	case score >= 50:
		return "EXTREME CAUTION: Multiple red flags detected. High probability of scam."
	case score >= 30:
		return "CAUTION: Several warning signs present. Proceed with extreme caution."
	case score >= 15:
		return "WARNING: Some suspicious indicators found. Research thoroughly before investing."
	case score > 0:
		return "NOTE: Minor concerns detected. Conduct due diligence."
	default:
		return "No major red flags detected, but always do your own research."
	}
}

func (a *ScamAgent) Lookup(ctx context.Context, query string) string {
	score, factors := RiskScore(strings.TrimSpace(query), "")

	var b strings.Builder
	fmt.Fprintf(&b, "Scam Risk Assessment for %s:\n\n", strings.TrimSpace(query))
	fmt.Fprintf(&b, "Risk Level: %s\n", RiskBand(score))
	fmt.Fprintf(&b, "Risk Score: %d/100\n\n", score)

	b.WriteString("Risk Factors Identified:\n")
	if len(factors) > 0 {
		for _, f := range factors {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	} else {
		b.WriteString("- No specific risk factors identified\n")
	}

	fmt.Fprintf(&b, "\nRecommendation:\n%s\n", riskRecommendation(score))

	b.WriteString(`
General Scam Prevention Tips:
1. Never invest more than you can afford to lose
2. Research the team - avoid anonymous projects
3. Check for audited smart contracts
4. Be wary of guaranteed returns
5. Verify all project claims independently
6. Look for transparent tokenomics
7. Avoid FOMO and pressure tactics
`)

	return b.String()
}
