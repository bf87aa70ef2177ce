package agents

import (
	"context"
	"fmt"
	"strings"
)

// RepoStats summarizes a project's public code footprint.
type RepoStats struct {
	FullName   string
	Stars      int
	RepoCount  int
	Language   string
	LastPushed string
}

// StatsSource supplies repository statistics for a project name.
// Implemented by the GitHub client; optional.
type StatsSource interface {
	Stats(ctx context.Context, name string) (*RepoStats, error)
}

// ProjectAgent reports project fundamentals: category, launch, use cases,
// partnerships. When a stats source is configured, known projects get a
// development-activity footer on top of the table data.
type ProjectAgent struct {
	stats StatsSource
}

func NewProjectAgent(stats StatsSource) *ProjectAgent {
	return &ProjectAgent{stats: stats}
}

func (a *ProjectAgent) Name() string { return "Project Analysis" }

func (a *ProjectAgent) Lookup(ctx context.Context, query string) string {
	name := strings.TrimSpace(query)
	project, ok := loadSeed().Projects[normalizeKey(query)]
	if !ok {
		return projectFallback(name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Project Analysis: %s\n\n", project.Name)
	fmt.Fprintf(&b, "Category: %s\n", project.Category)
	fmt.Fprintf(&b, "Founded: %d\n", project.Founded)
	fmt.Fprintf(&b, "Mainnet Launch: %s\n", project.MainnetLaunch)
	fmt.Fprintf(&b, "Consensus: %s\n", project.Consensus)
	fmt.Fprintf(&b, "Token: %s\n", project.Token)
	fmt.Fprintf(&b, "\nDescription:\n%s\n", project.Description)

	b.WriteString("\nUse Cases:\n")
	for _, useCase := range project.UseCases {
		fmt.Fprintf(&b, "- %s\n", useCase)
	}

	b.WriteString("\nKey Partnerships:\n")
	for _, partner := range project.Partnerships {
		fmt.Fprintf(&b, "- %s\n", partner)
	}

	fmt.Fprintf(&b, "\nWebsite: %s\n", project.Website)

	// Best effort: a failed stats fetch just skips the footer.
	if a.stats != nil && project.GitHubOrg != "" {
		if stats, err := a.stats.Stats(ctx, project.GitHubOrg); err == nil && stats != nil {
			b.WriteString("\nDevelopment Activity:\n")
			fmt.Fprintf(&b, "- Public repositories: %d\n", stats.RepoCount)
			fmt.Fprintf(&b, "- Top repository: %s (%d stars)\n", stats.FullName, stats.Stars)
			if stats.Language != "" {
				fmt.Fprintf(&b, "- Primary language: %s\n", stats.Language)
			}
		}
	}

	b.WriteString("\nProject Assessment:\n")
	switch {
	case len(project.Partnerships) > 3:
		b.WriteString("ESTABLISHED: Mature project with strong ecosystem and partnerships")
	case project.MainnetLaunch != "" && len(project.UseCases) > 2:
		b.WriteString("DEVELOPING: Active project with clear use cases and growing adoption")
	default:
		b.WriteString("EARLY STAGE: Project still in development phase")
	}

	return b.String()
}

func projectFallback(name string) string {
	return fmt.Sprintf(`Project Analysis: %s

No specific data available for this project.

How to Research Crypto Projects:
1. Fundamental analysis - whitepaper, technology, use case, tokenomics, team
2. Technical evaluation - GitHub activity, code quality, audits, mainnet status
3. Ecosystem assessment - developer activity, user adoption, partnership quality

Red Flags to Avoid:
- No whitepaper or technical documentation
- Closed-source code or no development activity
- No clear use case
- Unrealistic promises
- Anonymous team
- Fake partnerships

Key Questions to Ask:
- What problem does it solve?
- Who are the competitors?
- What is the token utility?
- Is there real adoption?`, name)
}
