package models

import "errors"

// Chat related errors
var (
	ErrChatNotFound = errors.New("chat not found")
	ErrChatExists   = errors.New("chat already exists")
	ErrEmptyMessage = errors.New("message content is empty")
	ErrInvalidRole  = errors.New("invalid message role")
)
