package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddMessageValidatesBeforeTouchingDatabase(t *testing.T) {
	// Nil DB: these paths must reject input before any query runs.
	cs := NewChatService(nil)

	_, err := cs.AddMessage(context.Background(), "chat-1", "system", "hello")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = cs.AddMessage(context.Background(), "chat-1", RoleUser, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}
