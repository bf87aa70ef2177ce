package chatbot

import (
	"sync"
	"time"
)

// Turn is one in-memory conversation turn.
type Turn struct {
	Role    string
	Content string
}

// Session is the in-memory working state of one chat. Its mutex serializes
// turns on the same chat; different chats never contend.
type Session struct {
	mu       sync.Mutex
	turns    []Turn
	lastSeen time.Time
}

// Store keeps per-chat sessions with TTL eviction. It is the working
// memory of the bot; durable history lives in the database.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	maxTurns int
	done     chan struct{}
	stopOnce sync.Once
}

const (
	defaultSessionTTL = 30 * time.Minute
	defaultMaxTurns   = 20
	janitorInterval   = 1 * time.Minute
)

func NewStore(ttl time.Duration, maxTurns int) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		maxTurns: maxTurns,
		done:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// session returns the live session for a chat, creating it if needed.
func (s *Store) session(chatID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &Session{}
		s.sessions[chatID] = sess
	}
	sess.lastSeen = time.Now()
	return sess
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the eviction janitor. Safe to call more than once.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Store) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictExpired(time.Now())
		}
	}
}

func (s *Store) evictExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for chatID, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, chatID)
		}
	}
}

// recent returns a copy of the most recent turns, newest last.
func (sess *Session) recent(max int) []Turn {
	turns := sess.turns
	if len(turns) > max {
		turns = turns[len(turns)-max:]
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// remember appends a turn, trimming the window from the front.
func (sess *Session) remember(role, content string, max int) {
	sess.turns = append(sess.turns, Turn{Role: role, Content: content})
	if len(sess.turns) > max {
		sess.turns = sess.turns[len(sess.turns)-max:]
	}
}
