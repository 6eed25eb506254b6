package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"newsprep/internal/ai"
	"newsprep/internal/model"
	"newsprep/internal/storage"
)

// maxHistoryMessages bounds how much stored history goes into the prompt.
// The stored session keeps the full conversation.
const maxHistoryMessages = 20

const chatSystemPrompt = "You are a study assistant for TNPSC and other competitive exam aspirants. " +
	"Answer questions about current affairs, news and study topics clearly and briefly. " +
	"When you are unsure, say so instead of guessing."

// ChatService runs the assistant conversation loop. Sessions may belong to a
// user or be anonymous (user id 0); an anonymous session is continued by
// whoever holds its id.
type ChatService struct {
	store storage.Store
	llm   LLMClient
}

type ChatInput struct {
	UserID    uint // 0 = anonymous caller
	SessionID uint // 0 = start a new session
	Message   string
	Context   string // optional grounding text pasted by the caller
}

type ChatResult struct {
	Response  string
	SessionID uint
}

func NewChatService(store storage.Store, llm LLMClient) *ChatService {
	return &ChatService{
		store: store,
		llm:   llm,
	}
}

func (s *ChatService) Chat(ctx context.Context, input ChatInput) (*ChatResult, error) {
	session, prompt, err := s.prepare(input)
	if err != nil {
		return nil, err
	}

	reply, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	reply = strings.TrimSpace(reply)

	s.record(session, strings.TrimSpace(input.Message), reply)
	return &ChatResult{Response: reply, SessionID: session.ID}, nil
}

// ChatStream is Chat with the reply streamed through onChunk as it arrives.
func (s *ChatService) ChatStream(ctx context.Context, input ChatInput, onChunk func(chunk string) error) (*ChatResult, error) {
	session, prompt, err := s.prepare(input)
	if err != nil {
		return nil, err
	}

	reply, err := s.llm.StreamComplete(ctx, prompt, onChunk)
	if err != nil {
		return nil, fmt.Errorf("chat stream failed: %w", err)
	}
	reply = strings.TrimSpace(reply)

	s.record(session, strings.TrimSpace(input.Message), reply)
	return &ChatResult{Response: reply, SessionID: session.ID}, nil
}

func (s *ChatService) ListSessions(userID uint) ([]model.ChatSession, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.store.ListChatSessionsByUser(userID)
}

func (s *ChatService) GetSession(userID, sessionID uint) (*model.ChatSession, []model.ChatMessage, error) {
	if userID == 0 || sessionID == 0 {
		return nil, nil, ErrInvalidInput
	}
	session, err := s.store.GetChatSessionByID(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, nil, ErrNotFound
	}
	return session, session.MessageList(), nil
}

// prepare validates the input, loads or creates the session, and builds the
// prompt from the bounded history.
func (s *ChatService) prepare(input ChatInput) (*model.ChatSession, []ai.ChatMessage, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, nil, ErrInvalidInput
	}
	if s.llm == nil || !s.llm.Configured() {
		return nil, nil, ErrAIUnavailable
	}

	var session *model.ChatSession
	if input.SessionID != 0 {
		existing, err := s.store.GetChatSessionByID(input.SessionID)
		if err != nil {
			return nil, nil, err
		}
		// Sessions owned by someone else look like they do not exist.
		if existing == nil || (existing.UserID != 0 && existing.UserID != input.UserID) {
			return nil, nil, ErrNotFound
		}
		session = existing
	} else {
		session = &model.ChatSession{UserID: input.UserID}
		session.SetMessages(nil)
		if err := s.store.CreateChatSession(session); err != nil {
			return nil, nil, err
		}
	}

	history := session.MessageList()
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}

	prompt := make([]ai.ChatMessage, 0, len(history)+3)
	prompt = append(prompt, ai.ChatMessage{Role: "system", Content: chatSystemPrompt})
	if chatContext := strings.TrimSpace(input.Context); chatContext != "" {
		prompt = append(prompt, ai.ChatMessage{
			Role:    "system",
			Content: "Context provided by the user:\n" + truncate(chatContext, maxPromptChars/2),
		})
	}
	for _, m := range history {
		prompt = append(prompt, ai.ChatMessage{Role: m.Role, Content: m.Content})
	}
	prompt = append(prompt, ai.ChatMessage{Role: "user", Content: message})

	return session, prompt, nil
}

// record appends the exchange to the full stored history. The reply already
// reached the caller, so persistence failures are logged, not returned.
func (s *ChatService) record(session *model.ChatSession, message, reply string) {
	now := time.Now()
	updated := append(session.MessageList(),
		model.ChatMessage{Role: "user", Content: message, Timestamp: now},
		model.ChatMessage{Role: "assistant", Content: reply, Timestamp: now},
	)
	if err := s.store.ReplaceChatMessages(session.ID, updated); err != nil {
		log.Warn().Err(err).Uint("session_id", session.ID).Msg("persist chat history failed")
	}
}
