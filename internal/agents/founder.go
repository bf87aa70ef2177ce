package agents

import (
	"context"
	"fmt"
	"strings"
)

// FounderAgent reports founder/team credibility. Table keys are full names
// in lower case, so project-name queries usually land on the fallback
// checklist, which is the useful output for unknown teams anyway.
type FounderAgent struct{}

func NewFounderAgent() *FounderAgent { return &FounderAgent{} }

func (a *FounderAgent) Name() string { return "Founder Analysis" }

func (a *FounderAgent) Lookup(ctx context.Context, query string) string {
	name := strings.TrimSpace(query)
	founder, ok := loadSeed().Founders[normalizeName(query)]
	if !ok {
		return founderFallback(name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Founder Analysis: %s\n\n", founder.Name)
	fmt.Fprintf(&b, "Role: %s\n", founder.Role)
	fmt.Fprintf(&b, "Credibility Score: %d/10\n", founder.CredibilityScore)
	fmt.Fprintf(&b, "Education: %s\n", founder.Education)

	b.WriteString("\nProfessional Background:\n")
	for _, item := range founder.Background {
		fmt.Fprintf(&b, "- %s\n", item)
	}

	b.WriteString("\nPrevious Projects:\n")
	for _, project := range founder.PreviousProjects {
		fmt.Fprintf(&b, "- %s\n", project)
	}

	b.WriteString("\nAchievements:\n")
	for _, achievement := range founder.Achievements {
		fmt.Fprintf(&b, "- %s\n", achievement)
	}

	verified := "No"
	if founder.Verified {
		verified = "Yes"
	}
	fmt.Fprintf(&b, "\nSocial Media Presence:\n- Twitter: @%s\n- Verified Account: %s\n", founder.Twitter, verified)

	if len(founder.RedFlags) > 0 {
		b.WriteString("\nPotential Concerns:\n")
		for _, flag := range founder.RedFlags {
			fmt.Fprintf(&b, "- %s\n", flag)
		}
	}

	b.WriteString("\nAssessment:\n")
	switch {
	case founder.CredibilityScore >= 8:
		b.WriteString("HIGHLY CREDIBLE: Well-established figure with proven track record")
	case founder.CredibilityScore >= 6:
		b.WriteString("CREDIBLE: Legitimate background with some accomplishments")
	default:
		b.WriteString("QUESTIONABLE: Limited track record or concerning factors")
	}

	return b.String()
}

func founderFallback(name string) string {
	return fmt.Sprintf(`Founder Analysis: %s

No specific information found for this founder.

How to Research Unknown Founders:
1. Verify identity - LinkedIn profile, verified social accounts, press mentions
2. Assess track record - previous projects, technical contributions, industry recognition
3. Check the entire team, not just the founder, and verify advisor relationships
4. Confirm the team is doxxed (publicly known) rather than pseudonymous only

Red Flags to Watch For:
- No public presence or social media
- Stock photos or fake profiles
- Unverifiable claims or no previous work history
- Involvement in previous failed or scam projects

Positive Indicators:
- Real name and photos with verifiable work history
- Active in the crypto community
- Transparent communication and regular updates`, name)
}
