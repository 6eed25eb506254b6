package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsprep/internal/model"
)

type Config struct {
	BaseURL string
	APIKey  string
	Country string
}

// Client fetches top headlines from a NewsAPI-compatible endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.cfg.BaseURL != "" && c.cfg.APIKey != ""
}

type headlinesResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		URLToImage  string    `json:"urlToImage"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

// TopHeadlines fetches one page of headlines for the category. An empty
// category requests the provider's general feed.
func (c *Client) TopHeadlines(ctx context.Context, category string, page, pageSize int) ([]model.Article, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("news client is not configured")
	}

	params := url.Values{}
	params.Set("country", c.cfg.Country)
	if category != "" {
		params.Set("category", category)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(pageSize))
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/top-headlines?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build headlines request failed: %w", err)
	}
	req.Header.Set("X-Api-Key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("headlines request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read headlines response failed: %w", err)
	}

	var parsed headlinesResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse headlines json failed: %w", err)
	}
	if resp.StatusCode >= 300 || parsed.Status != "ok" {
		return nil, fmt.Errorf("headlines provider error (status %d, code %q): %s", resp.StatusCode, parsed.Code, parsed.Message)
	}

	articles := make([]model.Article, 0, len(parsed.Articles))
	for _, item := range parsed.Articles {
		if item.Title == "" || item.URL == "" {
			continue
		}
		articles = append(articles, model.Article{
			Title:       item.Title,
			URL:         item.URL,
			Description: item.Description,
			Category:    normalizeCategory(category),
			Source:      item.Source.Name,
			ImageURL:    item.URLToImage,
			PublishedAt: item.PublishedAt,
		})
	}
	return articles, nil
}

func normalizeCategory(category string) string {
	if category == "" {
		return "general"
	}
	return strings.ToLower(category)
}
