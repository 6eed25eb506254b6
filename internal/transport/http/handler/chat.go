package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsprep/internal/app"
	"newsprep/internal/transport/http/middleware"
	"newsprep/internal/transport/http/response"
)

type ChatHandler struct {
	chatService *app.ChatService
}

type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	Context   string `json:"context"`
	SessionID uint   `json:"sessionId"`
}

func NewChatHandler(chatService *app.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat serves POST /api/chat. The route runs behind optional auth: an
// anonymous caller gets user id 0 and an unowned session.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	userID, _ := middleware.UserID(c)
	result, err := h.chatService.Chat(c.Request.Context(), app.ChatInput{
		UserID:    userID,
		SessionID: req.SessionID,
		Message:   req.Message,
		Context:   req.Context,
	})
	if err != nil {
		h.writeChatError(c, err)
		return
	}

	response.OK(c, gin.H{
		"response":  result.Response,
		"sessionId": result.SessionID,
	})
}

// Stream serves POST /api/chat/stream, the same flow over SSE. Chunks
// arrive as data events; the final event carries the full reply and the
// session id as JSON.
func (h *ChatHandler) Stream(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "stream not supported")
		return
	}

	userID, _ := middleware.UserID(c)
	result, err := h.chatService.ChatStream(c.Request.Context(), app.ChatInput{
		UserID:    userID,
		SessionID: req.SessionID,
		Message:   req.Message,
		Context:   req.Context,
	}, func(chunk string) error {
		if _, writeErr := c.Writer.Write([]byte("data: " + sanitizeSSE(chunk) + "\n\n")); writeErr != nil {
			return writeErr
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		if _, writeErr := c.Writer.Write([]byte(fmt.Sprintf("event: error\ndata: %s\n\n", sanitizeSSE(err.Error())))); writeErr == nil {
			flusher.Flush()
		}
		return
	}

	payload, _ := json.Marshal(gin.H{
		"response":  result.Response,
		"sessionId": result.SessionID,
	})
	if _, writeErr := c.Writer.Write([]byte("event: done\ndata: " + string(payload) + "\n\n")); writeErr == nil {
		flusher.Flush()
	}
}

// ListSessions serves GET /api/chat/sessions for the authenticated user.
func (h *ChatHandler) ListSessions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	sessions, err := h.chatService.ListSessions(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list sessions failed")
		return
	}
	response.OK(c, gin.H{"sessions": sessions})
}

// GetSession serves GET /api/chat/sessions/:id with the stored messages.
func (h *ChatHandler) GetSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	sessionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	session, messages, err := h.chatService.GetSession(userID, sessionID)
	if err != nil {
		h.writeChatError(c, err)
		return
	}
	response.OK(c, gin.H{
		"session":  session,
		"messages": messages,
	})
}

func (h *ChatHandler) writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "session not found")
	case errors.Is(err, app.ErrAIUnavailable):
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "chat failed")
	}
}

func sanitizeSSE(input string) string {
	replaced := strings.ReplaceAll(input, "\r\n", "\\n")
	replaced = strings.ReplaceAll(replaced, "\n", "\\n")
	return replaced
}
