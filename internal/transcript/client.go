package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Client fetches YouTube captions from a transcript API service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != ""
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)

// VideoID extracts the video identifier from the usual YouTube URL shapes:
// watch?v=, youtu.be/, embed/, shorts/ and live/.
func VideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse video url failed: %w", err)
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(parsed.Path, "/")
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if v := parsed.Query().Get("v"); v != "" {
			id = v
			break
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/"} {
			if strings.HasPrefix(parsed.Path, prefix) {
				id = strings.Trim(strings.TrimPrefix(parsed.Path, prefix), "/")
				break
			}
		}
	default:
		return "", fmt.Errorf("not a youtube url: %s", rawURL)
	}

	if id == "" || !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("no video id in url: %s", rawURL)
	}
	return id, nil
}

type transcriptResponse struct {
	VideoID  string `json:"video_id"`
	Segments []struct {
		Text     string  `json:"text"`
		Start    float64 `json:"start"`
		Duration float64 `json:"duration"`
	} `json:"segments"`
}

// Fetch returns the full caption text for the video, segments joined in order.
func (c *Client) Fetch(ctx context.Context, videoURL string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("transcript client is not configured")
	}

	videoID, err := VideoID(videoURL)
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + "/transcript?video_id=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build transcript request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcript request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcript response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("transcript service status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed transcriptResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse transcript json failed: %w", err)
	}

	var b strings.Builder
	for _, seg := range parsed.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("video %s has no captions", videoID)
	}
	return b.String(), nil
}
