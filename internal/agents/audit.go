package agents

import (
	"context"
	"fmt"
	"strings"
)

// AuditAgent reports smart-contract security audit status for a project.
type AuditAgent struct{}

func NewAuditAgent() *AuditAgent { return &AuditAgent{} }

func (a *AuditAgent) Name() string { return "Security Audit" }

func (a *AuditAgent) Lookup(ctx context.Context, query string) string {
	name := strings.TrimSpace(query)
	audit, ok := loadSeed().Audits[normalizeKey(query)]
	if !ok {
		return auditFallback(name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Security Audit for %s:\n\n", name)
	fmt.Fprintf(&b, "Security Score: %d/100\n", audit.Score)
	fmt.Fprintf(&b, "Audit Date: %s\n", audit.Date)
	verified := "No"
	if audit.Verified {
		verified = "Yes"
	}
	fmt.Fprintf(&b, "Contract Verified: %s\n", verified)

	b.WriteString("\nVulnerability Summary:\n")
	for _, severity := range []string{"Critical", "Major", "Medium", "Minor", "Informational"} {
		fmt.Fprintf(&b, "- %s: %d\n", severity, audit.Vulnerabilities[strings.ToLower(severity)])
	}

	b.WriteString("\nKey Findings:\n")
	for _, finding := range audit.Findings {
		fmt.Fprintf(&b, "- %s\n", finding)
	}

	b.WriteString("\nSecurity Assessment:\n")
	switch verdict := scoreVerdict(audit.Score); verdict {
	case "EXCELLENT":
		b.WriteString("EXCELLENT: This project demonstrates strong security practices with minimal vulnerabilities.")
	case "GOOD":
		b.WriteString("GOOD: Security is well-implemented with some minor issues to address.")
	case "FAIR":
		b.WriteString("FAIR: Several security concerns that should be addressed.")
	default:
		b.WriteString("POOR: Significant security vulnerabilities detected. High risk.")
	}

	return b.String()
}

func auditFallback(name string) string {
	return fmt.Sprintf(`Security Audit for %s:

No audit found for this project.

Security Recommendations:
1. Check if the project has been audited by other reputable firms
2. Review the smart contract code on Etherscan/BSCScan
3. Look for bug bounty programs
4. Check if the contracts are verified and open-source
5. Assess the project's security practices and transparency

Red Flags:
- Unaudited smart contracts
- Closed-source code
- No bug bounty program
- Recent deployment with no security track record
- Upgradeable contracts without proper governance

Always prioritize projects with comprehensive security audits from reputable firms.`, name)
}
