package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"newsprep/internal/ai"
)

type FactCheckResult struct {
	IsReal            bool    `json:"is_real"`
	Confidence        float64 `json:"confidence"`
	Explanation       string  `json:"explanation"`
	SourceCredibility string  `json:"source_credibility"`
}

// FactCheckService scores content as likely real or fake using the LLM in
// strict-JSON mode. A small table of known outlets overrides the model's
// credibility guess when the caller names the source.
type FactCheckService struct {
	llm LLMClient
}

func NewFactCheckService(llm LLMClient) *FactCheckService {
	return &FactCheckService{llm: llm}
}

// knownOutlets maps normalized outlet names to a credibility label. The
// model still judges the content itself; this only pins the source field
// for outlets we recognize.
var knownOutlets = map[string]string{
	"the hindu":            "high",
	"the indian express":   "high",
	"indian express":       "high",
	"times of india":       "high",
	"the times of india":   "high",
	"hindustan times":      "high",
	"pti":                  "high",
	"press trust of india": "high",
	"ani":                  "medium",
	"reuters":              "high",
	"bbc":                  "high",
	"bbc news":             "high",
	"dinamalar":            "medium",
	"dinamani":             "medium",
	"daily thanthi":        "medium",
	"puthiya thalaimurai":  "medium",
}

const factCheckSystemPrompt = "You are a fact-checking assistant for news content. " +
	"Judge whether the given content is likely real or fabricated. " +
	`Respond with only a JSON object of the exact shape ` +
	`{"is_real": boolean, "confidence": number between 0 and 1, ` +
	`"explanation": string, "source_credibility": "high"|"medium"|"low"|"unknown"}.`

func (s *FactCheckService) Check(ctx context.Context, content, source string) (*FactCheckResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidInput
	}
	if s.llm == nil || !s.llm.Configured() {
		return nil, ErrAIUnavailable
	}

	prompt := "Content:\n" + truncate(content, maxPromptChars)
	if source = strings.TrimSpace(source); source != "" {
		prompt += "\n\nClaimed source: " + source
	}

	raw, err := s.llm.CompleteJSON(ctx, []ai.ChatMessage{
		{Role: "system", Content: factCheckSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("fact check completion failed: %w", err)
	}

	var result FactCheckResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("parse fact check reply failed: %w", err)
	}

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	if credibility, ok := knownOutlets[strings.ToLower(source)]; ok {
		result.SourceCredibility = credibility
	}
	if result.SourceCredibility == "" {
		result.SourceCredibility = "unknown"
	}
	return &result, nil
}
