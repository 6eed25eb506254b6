package news

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"newsprep/internal/model"
)

// RSSFetcher pulls headlines from configured RSS feeds. It backs up the
// headlines provider: one feed URL per category.
type RSSFetcher struct {
	feeds  map[string]string
	parser *gofeed.Parser
}

func NewRSSFetcher(feeds map[string]string) *RSSFetcher {
	return &RSSFetcher{
		feeds:  feeds,
		parser: gofeed.NewParser(),
	}
}

func (f *RSSFetcher) Configured() bool {
	return len(f.feeds) > 0
}

// Fetch parses the feed registered for the category and returns up to limit
// articles, newest first per the feed's own ordering.
func (f *RSSFetcher) Fetch(ctx context.Context, category string, limit int) ([]model.Article, error) {
	category = normalizeCategory(category)
	feedURL, ok := f.feeds[category]
	if !ok {
		return nil, fmt.Errorf("no rss feed for category %q", category)
	}

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s failed: %w", feedURL, err)
	}

	if limit <= 0 || limit > len(feed.Items) {
		limit = len(feed.Items)
	}

	articles := make([]model.Article, 0, limit)
	for _, item := range feed.Items[:limit] {
		if item.Title == "" || item.Link == "" {
			continue
		}
		publishedAt := time.Now()
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}
		articles = append(articles, model.Article{
			Title:       item.Title,
			URL:         item.Link,
			Description: item.Description,
			Category:    category,
			Source:      feed.Title,
			ImageURL:    itemImage(item),
			PublishedAt: publishedAt,
		})
	}
	return articles, nil
}

func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}
