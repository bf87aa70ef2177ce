package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"decryptify/internal/models"
)

// Responder produces the bot reply for one chat message.
type Responder interface {
	Respond(ctx context.Context, chatID, message string) string
}

// ChatController handles chat creation, messaging and history.
type ChatController struct {
	chatService *models.ChatService
	bot         Responder
}

func NewChatController(chatService *models.ChatService, bot Responder) *ChatController {
	return &ChatController{
		chatService: chatService,
		bot:         bot,
	}
}

type createChatRequest struct {
	InitialMessage string `json:"initial_message"`
	UserID         string `json:"user_id"`
}

type messageRequest struct {
	ChatID  string `json:"chat_id"`
	Message string `json:"message"`
}

// PostCreate creates a chat and, when an initial message is supplied,
// runs the first turn immediately.
func (c *ChatController) PostCreate(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	chat, err := c.chatService.Create(r.Context(), req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create chat")
		return
	}

	body := map[string]interface{}{
		"chat_id": chat.ID,
		"status":  "success",
	}

	if strings.TrimSpace(req.InitialMessage) != "" {
		reply, err := c.runTurn(r.Context(), chat.ID, req.InitialMessage)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to process initial message")
			return
		}
		body["message"] = reply
	}

	respondJSON(w, http.StatusCreated, body)
}

// PostMessage appends one user turn and returns the assistant's reply.
func (c *ChatController) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ChatID == "" {
		respondError(w, http.StatusBadRequest, "chat_id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := c.runTurn(r.Context(), req.ChatID, req.Message)
	if err != nil {
		if errors.Is(err, models.ErrChatNotFound) {
			respondError(w, http.StatusNotFound, "chat not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"chat_id": req.ChatID,
		"message": reply,
		"status":  "success",
	})
}

// GetHistory returns every turn of a chat in order.
func (c *ChatController) GetHistory(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	messages, err := c.chatService.History(r.Context(), chatID)
	if err != nil {
		if errors.Is(err, models.ErrChatNotFound) {
			respondError(w, http.StatusNotFound, "chat not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"chat_id":  chatID,
		"messages": messages,
		"status":   "success",
	})
}

// runTurn persists the user message, produces the reply, and persists it.
// The user turn is stored first so a reply failure never loses input.
func (c *ChatController) runTurn(ctx context.Context, chatID, message string) (*models.Message, error) {
	if _, err := c.chatService.AddMessage(ctx, chatID, models.RoleUser, message); err != nil {
		return nil, err
	}

	reply := c.bot.Respond(ctx, chatID, message)

	stored, err := c.chatService.AddMessage(ctx, chatID, models.RoleAssistant, reply)
	if err != nil {
		return nil, err
	}
	return stored, nil
}
