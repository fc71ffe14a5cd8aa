package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jrnhq/jrn/internal/assistant"
	"github.com/jrnhq/jrn/internal/models"
	"github.com/jrnhq/jrn/internal/repository"
)

// historyDisplayLimit is how many turns the history endpoint returns.
const historyDisplayLimit = 50

// ChatHandler serves the /api/chat endpoints.
type ChatHandler struct {
	chat    *assistant.Service
	history *repository.ChatRepository
	log     zerolog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(chat *assistant.Service, history *repository.ChatRepository, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, history: history, log: log}
}

// ChatInput DTO for one user message
type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// HistoryMessage is the wire shape of one stored turn.
type HistoryMessage struct {
	Role    models.Role `json:"role"`
	Content string      `json:"content"`
}

// Send runs one chat exchange and returns the assistant reply.
func (h *ChatHandler) Send(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := h.chat.Send(c.Request.Context(), input.Message)
	if err != nil {
		writeError(c, h.log, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// History returns up to 50 turns in chronological order.
func (h *ChatHandler) History(c *gin.Context) {
	messages, err := h.history.Recent(c.Request.Context(), historyDisplayLimit)
	if err != nil {
		writeError(c, h.log, err, "Not found")
		return
	}

	out := make([]HistoryMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, HistoryMessage{Role: m.Role, Content: m.Content})
	}
	c.JSON(http.StatusOK, out)
}

// Clear wipes the whole chat history.
func (h *ChatHandler) Clear(c *gin.Context) {
	if err := h.history.Clear(c.Request.Context()); err != nil {
		writeError(c, h.log, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
