package chatbot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	lastQuery string
	calls     int
}

func (s *stubAnalyzer) Analyze(ctx context.Context, query string) string {
	s.calls++
	s.lastQuery = query
	return "REPORT for " + query
}

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestAnalysisTarget(t *testing.T) {
	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{"Analyze Uniswap", "uniswap", true},
		{"What's the trust score for Bitcoin?", "bitcoin", true},
		{"what is the trust score of shiba inu", "shiba inu", true},
		{"Check SafeMoon token", "safemoon token", true},
		{"tell me about ethereum", "ethereum", true},
		{"evaluate the new DOGE coin", "the new doge coin", false},
		{"how does proof of stake work", "", false},
		{"what's the weather like today", "", false},
		{"crypto", "crypto", true},
	}
	for _, tt := range tests {
		got, ok := analysisTarget(tt.message)
		assert.Equal(t, tt.ok, ok, "message %q", tt.message)
		if tt.ok {
			assert.Equal(t, tt.want, got, "message %q", tt.message)
		}
	}
}

func TestRespondRoutesAnalysisRequests(t *testing.T) {
	analyzer := &stubAnalyzer{}
	store := NewStore(time.Minute, 10)
	defer store.Close()
	bot := NewBot(analyzer, nil, store, quietLogger())

	reply := bot.Respond(context.Background(), "chat-1", "Analyze Uniswap")

	assert.Equal(t, 1, analyzer.calls)
	assert.Equal(t, "uniswap", analyzer.lastQuery)
	assert.Equal(t, "REPORT for uniswap", reply)
}

func TestRespondWithoutModelReturnsHelp(t *testing.T) {
	store := NewStore(time.Minute, 10)
	defer store.Close()
	bot := NewBot(&stubAnalyzer{}, nil, store, quietLogger())

	reply := bot.Respond(context.Background(), "chat-1", "how does proof of stake work")

	assert.Equal(t, helpReply, reply)
}

func TestRespondGeneralChatUsesModel(t *testing.T) {
	completer := &stubCompleter{reply: "Proof of stake replaces miners with validators."}
	store := NewStore(time.Minute, 10)
	defer store.Close()
	bot := NewBot(&stubAnalyzer{}, completer, store, quietLogger())

	reply := bot.Respond(context.Background(), "chat-1", "how does proof of stake work")

	assert.Equal(t, 1, completer.calls)
	assert.Equal(t, "Proof of stake replaces miners with validators.", reply)
}

func TestRespondModelErrorBecomesApology(t *testing.T) {
	completer := &stubCompleter{err: errors.New("model down")}
	store := NewStore(time.Minute, 10)
	defer store.Close()
	bot := NewBot(&stubAnalyzer{}, completer, store, quietLogger())

	reply := bot.Respond(context.Background(), "chat-1", "how does proof of stake work")

	assert.Equal(t, "I encountered an error processing your request: model down. Please try again.", reply)
}

func TestRespondRemembersTurns(t *testing.T) {
	store := NewStore(time.Minute, 10)
	defer store.Close()
	bot := NewBot(&stubAnalyzer{}, nil, store, quietLogger())

	bot.Respond(context.Background(), "chat-1", "Analyze Bitcoin")

	sess := store.session("chat-1")
	turns := sess.recent(10)
	require.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "Analyze Bitcoin", turns[0].Content)
	assert.Equal(t, "assistant", turns[1].Role)
}

func TestSessionWindowTrims(t *testing.T) {
	sess := &Session{}
	for i := 0; i < 10; i++ {
		sess.remember("user", "msg", 4)
	}
	assert.Len(t, sess.turns, 4)
}

func TestStoreEvictsExpiredSessions(t *testing.T) {
	store := NewStore(time.Minute, 10)
	defer store.Close()

	store.session("old")
	store.session("fresh")
	store.sessions["old"].lastSeen = time.Now().Add(-2 * time.Minute)

	store.evictExpired(time.Now())

	assert.Equal(t, 1, store.Len())
	_, stale := store.sessions["old"]
	assert.False(t, stale)
}

func TestStoreSessionsAreIsolatedPerChat(t *testing.T) {
	store := NewStore(time.Minute, 10)
	defer store.Close()

	a := store.session("a")
	b := store.session("b")

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, store.Len())
	assert.Same(t, a, store.session("a"))
}
