package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"decryptify/internal/agents"
)

// GitHubClient answers development-activity questions about a project's
// organization. It implements agents.StatsSource.
type GitHubClient struct {
	client *github.Client
}

func NewGitHubClient(token string) *GitHubClient {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(context.Background(), ts)
		client = github.NewClient(tc)
	} else {
		// Unauthenticated requests work but hit a much lower rate limit.
		client = github.NewClient(nil)
	}
	return &GitHubClient{client: client}
}

// Stats searches the organization's repositories and summarizes the most
// starred one plus the overall repository count.
func (c *GitHubClient) Stats(ctx context.Context, org string) (*agents.RepoStats, error) {
	org = strings.TrimSpace(org)
	if org == "" {
		return nil, fmt.Errorf("empty organization name")
	}

	result, _, err := c.client.Search.Repositories(ctx, "org:"+org, &github.SearchOptions{
		Sort:  "stars",
		Order: "desc",
		ListOptions: github.ListOptions{
			PerPage: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search repositories: %w", err)
	}
	if len(result.Repositories) == 0 {
		return nil, fmt.Errorf("no repositories found for org %q", org)
	}

	top := result.Repositories[0]
	stats := &agents.RepoStats{
		FullName:  top.GetFullName(),
		Stars:     top.GetStargazersCount(),
		RepoCount: result.GetTotal(),
		Language:  top.GetLanguage(),
	}
	if pushed := top.GetPushedAt(); !pushed.IsZero() {
		stats.LastPushed = pushed.Format("2006-01-02")
	}
	return stats, nil
}
