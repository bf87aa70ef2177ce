package agents

import (
	"context"
	"fmt"
	"strings"
)

// maxRelated bounds the related-projects list.
const maxRelated = 8

// CoinProfile is the metadata slice the related finder works from.
type CoinProfile struct {
	ID         string
	Name       string
	Categories []string
	Platform   string
	Homepage   string
	Twitter    string
}

// ProfileSource supplies coin metadata and category peers.
// Implemented by the CoinGecko client; optional.
type ProfileSource interface {
	Profile(ctx context.Context, name string) (*CoinProfile, error)
	// CategoryPeer returns the name of one other coin in the category,
	// excluding the coin with the given id.
	CategoryPeer(ctx context.Context, category, excludeID string) (string, error)
}

// Completer is the text-completion contract the finder uses as a fallback
// when metadata alone yields too few entries.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RelatedFinder assembles a short cross-reference list for a project:
// metadata first, one completion call as backfill. Every step is best
// effort; total failure yields an empty list, never an error.
type RelatedFinder struct {
	profiles  ProfileSource
	completer Completer
}

func NewRelatedFinder(profiles ProfileSource, completer Completer) *RelatedFinder {
	return &RelatedFinder{profiles: profiles, completer: completer}
}

// Find returns up to 8 related entries, de-duplicated, in discovery order.
func (f *RelatedFinder) Find(ctx context.Context, name string) []string {
	var related []string

	if f.profiles != nil {
		related = append(related, f.fromProfile(ctx, name)...)
	}

	// The metadata phase often comes up short for small or unlisted
	// projects; one completion call backfills.
	if len(related) < 3 && f.completer != nil {
		related = append(related, f.fromCompletion(ctx, name)...)
	}

	return dedupe(related, maxRelated)
}

func (f *RelatedFinder) fromProfile(ctx context.Context, name string) []string {
	profile, err := f.profiles.Profile(ctx, name)
	if err != nil || profile == nil {
		return nil
	}

	var related []string

	categories := profile.Categories
	if len(categories) > 2 {
		categories = categories[:2]
	}
	for _, category := range categories {
		related = append(related, "Category: "+category)
	}

	if len(profile.Categories) > 0 {
		// Peer lookup failure is swallowed like every other sub-step here.
		peer, err := f.profiles.CategoryPeer(ctx, profile.Categories[0], profile.ID)
		if err == nil && peer != "" {
			related = append(related, fmt.Sprintf("%s (Same %s category)", peer, profile.Categories[0]))
		}
	}

	if profile.Platform != "" {
		related = append(related, "Built on "+titleWord(profile.Platform))
	}

	if profile.Homepage != "" {
		related = append(related, "Website: "+homepageDomain(profile.Homepage))
	}

	if profile.Twitter != "" {
		related = append(related, "Twitter: @"+profile.Twitter)
	}

	return related
}

func (f *RelatedFinder) fromCompletion(ctx context.Context, name string) []string {
	prompt := fmt.Sprintf(`Based on your knowledge, list 5 cryptocurrency projects that are related to %s.
For each one, include a very brief explanation of how they're related in parentheses.
Format each as a single line like this: "Project Name (explanation of relationship)"
Example: "Arbitrum (Ethereum L2 scaling solution)"`, name)

	reply, err := f.completer.Complete(ctx, prompt)
	if err != nil {
		return nil
	}

	var related []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && strings.Contains(line, "(") && strings.Contains(line, ")") {
			related = append(related, line)
		}
	}
	return related
}

// dedupe keeps first occurrences in order, capped at limit.
func dedupe(items []string, limit int) []string {
	seen := make(map[string]bool, len(items))
	unique := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		unique = append(unique, item)
		if len(unique) == limit {
			break
		}
	}
	return unique
}

// homepageDomain strips scheme and path from a homepage URL.
func homepageDomain(url string) string {
	domain := strings.TrimPrefix(url, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	return domain
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
