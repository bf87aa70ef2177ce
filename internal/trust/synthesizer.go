// Package trust produces the final trust verdict for an analysis run,
// either by asking a completion model to score the aggregated sections or,
// when no model is available, by a deterministic substring heuristic.
package trust

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Verdict is the (score, level, reasoning) triple a scoring pass produces.
// Score is kept as a string: it is either a number out of 10 or the "N/A"
// placeholder when even the supplementary extraction failed.
type Verdict struct {
	Score  string
	Level  string
	Reason string
}

// Trust levels. Level is always one of these.
const (
	LevelHigh   = "HIGH"
	LevelMedium = "MEDIUM"
	LevelLow    = "LOW"
)

// Sections holds the five provider sections that are in scope for scoring.
// Exchange analysis is deliberately excluded from the scoring prompt.
type Sections struct {
	Market  string
	Scam    string
	Audit   string
	Founder string
	Project string
}

// Completer is the black-box text-completion contract.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Synthesizer is stateless per call; it only carries the optional model.
type Synthesizer struct {
	completer Completer
}

func NewSynthesizer(completer Completer) *Synthesizer {
	return &Synthesizer{completer: completer}
}

const (
	scoreLabel  = "Overall Trust Score:"
	levelLabel  = "Trust Level:"
	reasonLabel = "Reason:"
)

var scoreTokenPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*10`)

// Score produces a verdict for the query given its section texts.
// It never returns an error: model failures downgrade to a synthesized
// verdict and an absent model means the deterministic fallback.
func (s *Synthesizer) Score(ctx context.Context, query string, sections Sections) Verdict {
	if s.completer == nil {
		return fallbackVerdict(sections)
	}

	reply, err := s.completer.Complete(ctx, scoringPrompt(query, sections))
	if err != nil {
		return Verdict{Score: "5", Level: LevelMedium, Reason: err.Error()}
	}
	if strings.TrimSpace(reply) == "" {
		return fallbackVerdict(sections)
	}

	return s.parseVerdict(ctx, reply)
}

func scoringPrompt(query string, sections Sections) string {
	combined := fmt.Sprintf(`Market Data: %s
Scam Analysis: %s
Security Audit: %s
Founder Analysis: %s
Project Analysis: %s`,
		sections.Market, sections.Scam, sections.Audit, sections.Founder, sections.Project)

	return fmt.Sprintf(`Based on the following analysis of the cryptocurrency project %s,
calculate a trust score from 0-10 and provide a brief explanation.
Higher scores indicate higher trustworthiness. Consider security, tokenomics,
team credibility, code audits, and other risk factors.

%s

Return only a trust score section in exactly this format:
Overall Trust Score: [SCORE]/10
Trust Level: [HIGH/MEDIUM/LOW]
Reason: [Brief explanation of the score in 2-3 sentences]`, query, combined)
}

// parseVerdict extracts the three labeled fields from a model reply.
// Deviations from the template are treated as "label absent", never as a
// hard error.
func (s *Synthesizer) parseVerdict(ctx context.Context, reply string) Verdict {
	verdict := Verdict{
		Score:  "N/A",
		Level:  LevelMedium,
		Reason: "Assessment based on available project data.",
	}

	if raw, ok := labelValue(reply, scoreLabel); ok {
		if m := scoreTokenPattern.FindStringSubmatch(raw); m != nil {
			verdict.Score = m[1]
		} else if raw != "" {
			verdict.Score = strings.TrimSuffix(raw, "/10")
		}
	} else {
		// The model ignored the template. One supplementary call asking it
		// to restate just the numeric token usually recovers the score.
		verdict.Score = s.extractScoreToken(ctx, reply)
	}

	if raw, ok := labelValue(reply, levelLabel); ok {
		verdict.Level = normalizeLevel(raw)
	}

	if raw, ok := labelValue(reply, reasonLabel); ok && raw != "" {
		verdict.Reason = raw
	}

	return verdict
}

func (s *Synthesizer) extractScoreToken(ctx context.Context, reply string) string {
	prompt := fmt.Sprintf(`The following text contains a trust assessment. Restate ONLY the overall
trust score as a single token of the form N/10 and nothing else.

%s`, reply)

	extracted, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "N/A"
	}
	if m := scoreTokenPattern.FindStringSubmatch(extracted); m != nil {
		return m[1]
	}
	return "N/A"
}

// labelValue returns the text after the first occurrence of label up to the
// next newline, trimmed. Matching is case-insensitive.
func labelValue(text, label string) (string, bool) {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(label))
	if idx < 0 {
		return "", false
	}
	rest := text[idx+len(label):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest), true
}

func normalizeLevel(raw string) string {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(upper, LevelHigh):
		return LevelHigh
	case strings.Contains(upper, LevelLow):
		return LevelLow
	case strings.Contains(upper, LevelMedium):
		return LevelMedium
	default:
		return LevelMedium
	}
}

// fallbackVerdict derives a verdict from substring checks alone.
// Comparisons are case-insensitive like every other comparison site.
// The result is always one of exactly three (level, score) pairs.
func fallbackVerdict(sections Sections) Verdict {
	verdict := Verdict{Score: "5", Level: LevelMedium}

	scamLower := strings.ToLower(sections.Scam)
	if strings.Contains(scamLower, "scam") || strings.Contains(scamLower, "suspicious") {
		verdict.Score = "3"
		verdict.Level = LevelLow
	}

	auditLower := strings.ToLower(sections.Audit)
	if strings.Contains(auditLower, "audit") && strings.Contains(auditLower, "passed") {
		verdict.Score = "8"
		verdict.Level = LevelHigh
	}

	var contributed []string
	if sectionContributed(sections.Market) {
		contributed = append(contributed, "market data present")
	}
	if sectionContributed(sections.Founder) {
		contributed = append(contributed, "founder info present")
	}
	if len(contributed) == 0 {
		verdict.Reason = "Heuristic assessment: limited data available."
	} else {
		verdict.Reason = "Heuristic assessment: " + strings.Join(contributed, ", ") + "."
	}

	return verdict
}

// sectionContributed reports whether a section carries real provider output
// rather than a blank or an unavailable placeholder.
func sectionContributed(section string) bool {
	trimmed := strings.TrimSpace(section)
	return trimmed != "" && !strings.Contains(strings.ToLower(trimmed), "unavailable")
}
