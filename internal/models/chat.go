package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
)

// Chat is one persisted conversation.
type Chat struct {
	ID        string    `json:"chat_id"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one turn of a chat. Role is "user" or "assistant".
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatService struct {
	DB *sql.DB
}

func NewChatService(db *sql.DB) *ChatService {
	return &ChatService{DB: db}
}

// Create inserts a new chat and returns it. The id is generated here so
// callers never pick their own.
func (cs *ChatService) Create(ctx context.Context, userID string) (*Chat, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	chat := Chat{
		ID:     uuid.NewString(),
		UserID: userID,
	}

	row := cs.DB.QueryRowContext(ctx, `
	INSERT INTO chats (id, user_id, created_at, updated_at)
	VALUES ($1, NULLIF($2, ''), NOW(), NOW())
	RETURNING created_at, updated_at
	`, chat.ID, userID)

	if err := row.Scan(&chat.CreatedAt, &chat.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrChatExists
		}
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return &chat, nil
}

// AddMessage appends one turn to a chat and bumps its updated_at.
func (cs *ChatService) AddMessage(ctx context.Context, chatID, role, content string) (*Message, error) {
	if role != RoleUser && role != RoleAssistant {
		return nil, ErrInvalidRole
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	msg := Message{Role: role, Content: content}

	row := cs.DB.QueryRowContext(ctx, `
	INSERT INTO messages (chat_id, role, content, created_at)
	VALUES ($1, $2, $3, NOW())
	RETURNING created_at
	`, chatID, role, content)

	if err := row.Scan(&msg.Timestamp); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to add message: %w", err)
	}

	// updated_at drift is tolerable if this update fails; the message is in.
	_, _ = cs.DB.ExecContext(ctx, `UPDATE chats SET updated_at = NOW() WHERE id = $1`, chatID)

	return &msg, nil
}

// History returns every message of a chat in insertion order.
func (cs *ChatService) History(ctx context.Context, chatID string) ([]Message, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var exists bool
	err := cs.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM chats WHERE id = $1)`, chatID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up chat: %w", err)
	}
	if !exists {
		return nil, ErrChatNotFound
	}

	rows, err := cs.DB.QueryContext(ctx, `
	SELECT role, content, created_at
	FROM messages
	WHERE chat_id = $1
	ORDER BY id ASC
	`, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return messages, nil
}
