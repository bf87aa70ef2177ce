// Package chatbot routes incoming chat messages: queries that look like a
// crypto trust question go to the analysis pipeline, everything else is
// answered as general conversation. Per-chat working memory lives in an
// in-process store with TTL eviction.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Analyzer runs the full analysis pipeline for one project query.
type Analyzer interface {
	Analyze(ctx context.Context, query string) string
}

// Completer is the optional model used for general conversation.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Bot dispatches one message per call. Safe for concurrent use; turns on
// the same chat serialize on the session lock.
type Bot struct {
	analyzer  Analyzer
	completer Completer
	store     *Store
	log       *logrus.Logger
}

func NewBot(analyzer Analyzer, completer Completer, store *Store, log *logrus.Logger) *Bot {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Bot{
		analyzer:  analyzer,
		completer: completer,
		store:     store,
		log:       log,
	}
}

// cryptoKeywords mark a message as an analysis request.
var cryptoKeywords = []string{
	"bitcoin", "btc", "ethereum", "eth", "crypto", "coin", "token",
	"trust", "score", "analysis", "check", "evaluate", "assess",
}

// stripPhrases are peeled off the front of an analysis request to leave
// the project name. Longer phrases first so prefixes don't shadow them.
var stripPhrases = []string{
	"what's the trust score for",
	"what is the trust score of",
	"tell me about",
	"analyze",
	"check",
	"evaluate",
	"assess",
}

const helpReply = `I can assess the trustworthiness of cryptocurrency projects. Try asking:
- "Analyze Uniswap"
- "What's the trust score for Bitcoin?"
- "Check SafeMoon"

I'll look at market data, scam indicators, security audits, the founding team, and related projects.`

// Respond handles one message for a chat and returns the reply text.
// It never returns an error; failures become apologetic replies.
func (b *Bot) Respond(ctx context.Context, chatID, message string) string {
	sess := b.store.session(chatID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	reply := b.dispatch(ctx, sess, message)

	sess.remember("user", message, b.store.maxTurns)
	sess.remember("assistant", reply, b.store.maxTurns)
	return reply
}

func (b *Bot) dispatch(ctx context.Context, sess *Session, message string) string {
	if name, ok := analysisTarget(message); ok {
		b.log.WithField("query", name).Debug("routing to analysis")
		return b.analyzer.Analyze(ctx, name)
	}
	return b.generalChat(ctx, sess, message)
}

func (b *Bot) generalChat(ctx context.Context, sess *Session, message string) string {
	if b.completer == nil {
		return helpReply
	}

	var prompt strings.Builder
	prompt.WriteString("You are Decryptify, an assistant that helps users assess cryptocurrency projects.\n")
	prompt.WriteString("Answer the user's message conversationally and briefly.\n\n")
	for _, turn := range sess.recent(6) {
		fmt.Fprintf(&prompt, "%s: %s\n", turn.Role, turn.Content)
	}
	fmt.Fprintf(&prompt, "user: %s\nassistant:", message)

	reply, err := b.completer.Complete(ctx, prompt.String())
	if err != nil {
		b.log.Warnf("general chat completion failed: %v", err)
		return fmt.Sprintf("I encountered an error processing your request: %v. Please try again.", err)
	}
	if strings.TrimSpace(reply) == "" {
		return helpReply
	}
	return strings.TrimSpace(reply)
}

// analysisTarget decides whether a message is an analysis request and, if
// so, extracts the project name. A request qualifies when it contains a
// crypto keyword and stripping the request phrasing leaves at most three
// words.
func analysisTarget(message string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(message))

	matched := false
	for _, keyword := range cryptoKeywords {
		if strings.Contains(lower, keyword) {
			matched = true
			break
		}
	}
	// Request phrasing alone also counts, so "analyze X" works for
	// projects whose names carry no crypto keyword.
	if !matched {
		for _, phrase := range stripPhrases {
			if strings.HasPrefix(lower, phrase) {
				matched = true
				break
			}
		}
	}
	if !matched {
		return "", false
	}

	residue := strings.TrimRight(lower, "?!. ")
	for _, phrase := range stripPhrases {
		residue = strings.ReplaceAll(residue, phrase, " ")
	}
	residue = strings.Join(strings.Fields(residue), " ")

	if residue == "" || len(strings.Fields(residue)) > 3 {
		return "", false
	}
	return residue, true
}
