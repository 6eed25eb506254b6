package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Client talks to any OpenAI-compatible chat-completion endpoint. It is the
// single LLM dependency behind summarization, fake-news scoring and the
// chat assistant.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Configured reports whether the client has everything it needs to make a call.
func (c *Client) Configured() bool {
	return c.cfg.BaseURL != "" && c.cfg.APIKey != "" && c.cfg.Model != ""
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []ChatMessage `json:"messages"`
	Stream         bool          `json:"stream"`
	ResponseFormat *formatSpec   `json:"response_format,omitempty"`
}

type formatSpec struct {
	Type string `json:"type"`
}

type chatReply struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// send posts the request to the completions endpoint and hands back the raw
// response; the caller owns the body.
func (c *Client) send(ctx context.Context, body chatRequest) (*http.Response, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("llm client is not configured")
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode chat request failed: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("create chat request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call llm failed: %w", err)
	}
	return resp, nil
}

// Complete sends the messages and returns the assistant reply.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	return c.complete(ctx, messages, nil)
}

// CompleteJSON asks the model for a strict JSON object reply. Used where the
// answer is parsed, not shown.
func (c *Client) CompleteJSON(ctx context.Context, messages []ChatMessage) (string, error) {
	return c.complete(ctx, messages, &formatSpec{Type: "json_object"})
}

func (c *Client) complete(ctx context.Context, messages []ChatMessage, format *formatSpec) (string, error) {
	resp, err := c.send(ctx, chatRequest{
		Model:          c.cfg.Model,
		Messages:       messages,
		ResponseFormat: format,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm reply failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm returned status %d: %s", resp.StatusCode, string(raw))
	}

	var reply chatReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return "", fmt.Errorf("decode llm reply failed: %w", err)
	}
	if len(reply.Choices) == 0 {
		return "", fmt.Errorf("llm reply had no choices")
	}
	return reply.Choices[0].Message.Content, nil
}

// StreamComplete streams the assistant reply chunk by chunk through onChunk
// and returns the full concatenated text.
func (c *Client) StreamComplete(
	ctx context.Context,
	messages []ChatMessage,
	onChunk func(chunk string) error,
) (string, error) {
	resp, err := c.send(ctx, chatRequest{
		Model:    c.cfg.Model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm stream returned status %d: %s", resp.StatusCode, string(raw))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	var full strings.Builder
	for scanner.Scan() {
		text, done := streamDelta(scanner.Text())
		if done {
			break
		}
		if text == "" {
			continue
		}
		full.WriteString(text)
		if err := onChunk(text); err != nil {
			return "", err
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read llm stream failed: %w", err)
	}
	return full.String(), nil
}

// streamDelta pulls the content delta out of one SSE line. The second return
// is true on the [DONE] marker; non-data lines and unparseable payloads come
// back as empty text.
func streamDelta(line string) (text string, done bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "data:") {
		return "", false
	}
	payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	if payload == "[DONE]" {
		return "", true
	}

	var event struct {
		Choices []struct {
			Delta struct {
				Content string `json:"content"`
			} `json:"delta"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return "", false
	}
	if len(event.Choices) == 0 {
		return "", false
	}
	return event.Choices[0].Delta.Content, false
}
