package agents

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Agent is the uniform contract every analysis provider satisfies.
// Lookup must never panic or fail past its own boundary: any internal
// problem is converted into a formatted textual fallback section.
type Agent interface {
	Name() string
	Lookup(ctx context.Context, query string) string
}

// normalizeKey lowercases a query and strips surrounding and internal
// whitespace so "Pancake Swap" and "pancakeswap" hit the same table entry.
func normalizeKey(query string) string {
	key := strings.ToLower(strings.TrimSpace(query))
	key = strings.ReplaceAll(key, " ", "")
	return strings.Trim(key, "?.,!\"'")
}

// normalizeName lowercases and trims but keeps internal spaces.
// Used for people lookups where the key is a full name.
func normalizeName(query string) string {
	name := strings.ToLower(strings.TrimSpace(query))
	return strings.Trim(name, "?.,!\"'")
}

// scoreVerdict maps a 0-100 score onto the qualitative ladder shared by
// the score-bearing sections.
func scoreVerdict(score int) string {
	switch {
	case score >= 90:
		return "EXCELLENT"
	case score >= 80:
		return "GOOD"
	case score >= 70:
		return "FAIR"
	default:
		return "POOR"
	}
}

// formatAmount renders a dollar amount with thousands separators and the
// given number of decimals, e.g. 67412.5 -> "67,412.50".
func formatAmount(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}

	s := fmt.Sprintf("%.*f", decimals, v)
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// formatCompact abbreviates a dollar amount with a unit letter,
// e.g. 1.33e12 -> "1.33T", 4.5e8 -> "450M".
func formatCompact(v float64) string {
	type unit struct {
		div    float64
		letter string
	}
	units := []unit{
		{1e12, "T"},
		{1e9, "B"},
		{1e6, "M"},
		{1e3, "K"},
	}
	for _, u := range units {
		if v >= u.div {
			s := fmt.Sprintf("%.2f", v/u.div)
			s = strings.TrimRight(s, "0")
			s = strings.TrimRight(s, ".")
			return s + u.letter
		}
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
