package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxPageBytes caps how much of a remote page we are willing to read.
const maxPageBytes = 5 << 20

// Page is the readable content pulled out of an HTML document.
type Page struct {
	Title string
	Text  string
}

// PageExtractor fetches web pages and strips them down to readable text for
// summarization.
type PageExtractor struct {
	httpClient *http.Client
}

func NewPageExtractor() *PageExtractor {
	return &PageExtractor{
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Extract downloads the page and returns its title and article text.
func (e *PageExtractor) Extract(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build page request failed: %w", err)
	}
	req.Header.Set("User-Agent", "newsprep/1.0")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch page status %d for %s", resp.StatusCode, pageURL)
	}

	page, err := FromHTML(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, err
	}
	if page.Text == "" {
		return nil, fmt.Errorf("no readable text in %s", pageURL)
	}
	return page, nil
}

// FromHTML parses an HTML document and collects its readable text. Script,
// style and chrome elements are dropped; the <article> element wins over the
// whole body when present.
func FromHTML(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html failed: %w", err)
	}

	doc.Find("script, style, noscript, iframe, form, nav, header, footer, aside").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		title = strings.TrimSpace(og)
	}

	root := doc.Selection
	if article := doc.Find("article").First(); article.Length() > 0 {
		root = article
	}

	var parts []string
	root.Find("h1, h2, h3, p, li, blockquote").Each(func(_ int, s *goquery.Selection) {
		text := collapseWhitespace(s.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		if body := collapseWhitespace(doc.Find("body").Text()); body != "" {
			parts = append(parts, body)
		}
	}

	return &Page{
		Title: title,
		Text:  strings.Join(parts, "\n"),
	}, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
