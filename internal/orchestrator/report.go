package orchestrator

import (
	"fmt"
	"regexp"
	"strings"

	"decryptify/internal/trust"
)

// Placeholders for extracted display fields that found no match.
const (
	priceNotAvailable     = "Not available"
	marketCapNotAvailable = "Not available"
	founderNotAvailable   = "Founder information not available"
	remarkNotAvailable    = "No remarks available"
)

const reportDivider = "---"

const reportDisclaimer = "DISCLAIMER: This analysis is for informational purposes only and should not be " +
	"considered financial advice. Cryptocurrency investments carry significant risk."

var (
	pricePattern     = regexp.MustCompile(`Price:\s*\$([0-9][0-9,.]*)`)
	marketCapPattern = regexp.MustCompile(`Market Cap:\s*\$([0-9][0-9,.]*[A-Za-z]?)`)
)

// assembleReport renders the final report: the extracted summary block
// first, then every section in fixed order. The layout is structurally
// complete regardless of which providers succeeded.
func assembleReport(query string, sections sectionSet, verdict trust.Verdict) string {
	header := "DECRYPTIFY ANALYSIS: " + strings.ToUpper(query)

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("=", len(header)) + "\n\n")

	fmt.Fprintf(&b, "Overall Trust Score: %s/10\n", verdict.Score)
	fmt.Fprintf(&b, "Trust Level: %s\n\n", verdict.Level)

	fmt.Fprintf(&b, "Price: %s\n", extractPrice(sections.market))
	fmt.Fprintf(&b, "Market Cap: %s\n\n", extractMarketCap(sections.market))

	b.WriteString("Founder & Team:\n")
	b.WriteString(founderExcerpt(sections.founder) + "\n\n")

	b.WriteString("Key Remarks:\n")
	fmt.Fprintf(&b, "- %s\n", firstNonEmptyLine(sections.project, remarkNotAvailable))
	fmt.Fprintf(&b, "- %s\n\n", firstNonEmptyLine(sections.scam, remarkNotAvailable))

	fmt.Fprintf(&b, "Reasoning: %s\n", verdict.Reason)

	appendSection(&b, "MARKET DATA & METRICS", sections.market)
	appendSection(&b, "SCAM RISK ASSESSMENT", sections.scam)
	appendSection(&b, "SECURITY AUDIT STATUS", sections.audit)
	appendSection(&b, "EXCHANGE ANALYSIS", sections.exchange)
	appendSection(&b, "FOUNDER & TEAM ANALYSIS", sections.founder)
	appendSection(&b, "PROJECT INFORMATION", sections.project)

	fmt.Fprintf(&b, "\n%s\n\nRELATED PROJECTS\n", reportDivider)
	if len(sections.related) > 0 {
		for _, item := range sections.related {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	} else {
		b.WriteString("No directly related projects identified.\n")
	}

	fmt.Fprintf(&b, "\n%s\n\n%s\n", reportDivider, reportDisclaimer)

	return b.String()
}

func appendSection(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "\n%s\n\n%s\n%s\n", reportDivider, title, strings.TrimSpace(body))
}

// extractPrice pulls the dollar price token out of rendered market text.
func extractPrice(marketText string) string {
	if m := pricePattern.FindStringSubmatch(marketText); m != nil {
		return "$" + m[1]
	}
	return priceNotAvailable
}

// extractMarketCap pulls the market-cap token (with its optional unit
// letter, e.g. "$1.33T") out of rendered market text.
func extractMarketCap(marketText string) string {
	if m := marketCapPattern.FindStringSubmatch(marketText); m != nil {
		return "$" + m[1]
	}
	return marketCapNotAvailable
}

// founderExcerpt returns the first line mentioning Founder, Team or CEO
// plus the two lines following it.
func founderExcerpt(founderText string) string {
	lines := strings.Split(founderText, "\n")
	for i, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "founder") || strings.Contains(lower, "team") || strings.Contains(lower, "ceo") {
			end := i + 3
			if end > len(lines) {
				end = len(lines)
			}
			return strings.TrimSpace(strings.Join(lines[i:end], "\n"))
		}
	}
	return founderNotAvailable
}

// firstNonEmptyLine returns the first non-blank line of a section, or the
// fallback when the section is empty.
func firstNonEmptyLine(text, fallback string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
