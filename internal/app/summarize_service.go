package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"newsprep/internal/ai"
	"newsprep/internal/extract"
	"newsprep/internal/pkg/pdfextract"
)

var (
	ErrNoContent     = errors.New("no extractable text")
	ErrAIUnavailable = errors.New("ai provider is not configured")
)

// maxPromptChars bounds how much source text is sent to the model.
const maxPromptChars = 24000

// LLMClient is the completion surface the AI services consume.
type LLMClient interface {
	Configured() bool
	Complete(ctx context.Context, messages []ai.ChatMessage) (string, error)
	CompleteJSON(ctx context.Context, messages []ai.ChatMessage) (string, error)
	StreamComplete(ctx context.Context, messages []ai.ChatMessage, onChunk func(chunk string) error) (string, error)
}

// PageSource extracts readable text from a web page.
type PageSource interface {
	Extract(ctx context.Context, pageURL string) (*extract.Page, error)
}

// TranscriptSource fetches YouTube captions.
type TranscriptSource interface {
	Configured() bool
	Fetch(ctx context.Context, videoURL string) (string, error)
}

type SummaryResult struct {
	Summary       string
	ExtractedText string
	Title         string
}

// SummarizeService turns raw text, web pages, PDFs and YouTube videos into
// short summaries via the LLM.
type SummarizeService struct {
	llm         LLMClient
	pages       PageSource
	transcripts TranscriptSource
}

func NewSummarizeService(llm LLMClient, pages PageSource, transcripts TranscriptSource) *SummarizeService {
	return &SummarizeService{
		llm:         llm,
		pages:       pages,
		transcripts: transcripts,
	}
}

const summarySystemPrompt = "You summarize news articles and study material for competitive exam aspirants. " +
	"Write a concise summary of 3 to 5 sentences, then list the key points as short bullet lines."

func (s *SummarizeService) SummarizeText(ctx context.Context, text string) (*SummaryResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	summary, err := s.summarize(ctx, "", text)
	if err != nil {
		return nil, err
	}
	return &SummaryResult{Summary: summary}, nil
}

func (s *SummarizeService) SummarizeURL(ctx context.Context, pageURL string) (*SummaryResult, error) {
	pageURL = strings.TrimSpace(pageURL)
	if !validHTTPURL(pageURL) {
		return nil, ErrInvalidInput
	}

	page, err := s.pages.Extract(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract page failed: %w", err)
	}
	if strings.TrimSpace(page.Text) == "" {
		return nil, ErrNoContent
	}

	summary, err := s.summarize(ctx, page.Title, page.Text)
	if err != nil {
		return nil, err
	}
	return &SummaryResult{
		Summary:       summary,
		ExtractedText: page.Text,
		Title:         page.Title,
	}, nil
}

func (s *SummarizeService) SummarizePDF(ctx context.Context, r io.Reader) (*SummaryResult, error) {
	text, err := pdfextract.ExtractText(r)
	if err != nil {
		if errors.Is(err, pdfextract.ErrNoText) {
			return nil, ErrNoContent
		}
		if errors.Is(err, pdfextract.ErrTooLarge) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}

	summary, err := s.summarize(ctx, "", text)
	if err != nil {
		return nil, err
	}
	return &SummaryResult{
		Summary:       summary,
		ExtractedText: text,
	}, nil
}

func (s *SummarizeService) SummarizeYouTube(ctx context.Context, videoURL string) (*SummaryResult, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return nil, ErrInvalidInput
	}
	if s.transcripts == nil || !s.transcripts.Configured() {
		return nil, ErrAIUnavailable
	}

	text, err := s.transcripts.Fetch(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoContent
	}

	summary, err := s.summarize(ctx, "", text)
	if err != nil {
		return nil, err
	}
	return &SummaryResult{
		Summary:       summary,
		ExtractedText: text,
	}, nil
}

func (s *SummarizeService) summarize(ctx context.Context, title, text string) (string, error) {
	if s.llm == nil || !s.llm.Configured() {
		return "", ErrAIUnavailable
	}

	content := truncate(text, maxPromptChars)
	if title != "" {
		content = "Title: " + title + "\n\n" + content
	}

	summary, err := s.llm.Complete(ctx, []ai.ChatMessage{
		{Role: "system", Content: summarySystemPrompt},
		{Role: "user", Content: "Summarize the following:\n\n" + content},
	})
	if err != nil {
		return "", fmt.Errorf("summarize completion failed: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

func validHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > max/2 {
		cut = cut[:idx]
	}
	return cut
}
