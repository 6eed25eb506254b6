package app_test

import (
	"context"
	"testing"
	"time"

	"newsprep/internal/app"
	"newsprep/internal/model"
	"newsprep/internal/storage"
)

func headlineFixtures() []model.Article {
	return []model.Article{
		{Title: "First", URL: "https://example.com/1", Category: "general", PublishedAt: time.Now()},
		{Title: "Second", URL: "https://example.com/2", Category: "general", PublishedAt: time.Now()},
	}
}

func TestHeadlinesFromProviderArePersisted(t *testing.T) {
	store := storage.NewMemoryStore()
	provider := &fakeHeadlines{configured: true, articles: headlineFixtures()}
	svc := app.NewNewsService(store, provider, nil, nil, nil)

	articles, err := svc.GetHeadlines(context.Background(), "general", 1, 10)
	if err != nil {
		t.Fatalf("GetHeadlines failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	stored, err := store.ListArticles(storage.ArticleFilter{})
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 persisted articles, got %d", len(stored))
	}
}

func TestHeadlinesDuplicatePersistIsSkipped(t *testing.T) {
	store := storage.NewMemoryStore()
	seedArticle(t, store, "First", "https://example.com/1")

	provider := &fakeHeadlines{configured: true, articles: headlineFixtures()}
	svc := app.NewNewsService(store, provider, nil, nil, nil)

	if _, err := svc.GetHeadlines(context.Background(), "general", 1, 10); err != nil {
		t.Fatalf("GetHeadlines failed: %v", err)
	}

	stored, err := store.ListArticles(storage.ArticleFilter{})
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("duplicate should be skipped, expected 2 stored, got %d", len(stored))
	}
}

func TestHeadlinesProviderFailureFallsBackToRSS(t *testing.T) {
	store := storage.NewMemoryStore()
	provider := &fakeHeadlines{configured: true, err: context.DeadlineExceeded}
	rss := &fakeFeed{configured: true, articles: headlineFixtures()}
	svc := app.NewNewsService(store, provider, rss, nil, nil)

	articles, err := svc.GetHeadlines(context.Background(), "general", 1, 10)
	if err != nil {
		t.Fatalf("GetHeadlines failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected rss articles, got %d", len(articles))
	}
	if rss.calls != 1 {
		t.Fatalf("rss should be consulted once, got %d", rss.calls)
	}
}

func TestHeadlinesAllSourcesDownServeStored(t *testing.T) {
	store := storage.NewMemoryStore()
	seedArticle(t, store, "Stored", "https://example.com/stored")

	provider := &fakeHeadlines{configured: true, err: context.DeadlineExceeded}
	rss := &fakeFeed{configured: true, err: context.DeadlineExceeded}
	svc := app.NewNewsService(store, provider, rss, nil, nil)

	articles, err := svc.GetHeadlines(context.Background(), "", 1, 10)
	if err != nil {
		t.Fatalf("GetHeadlines failed: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "Stored" {
		t.Fatalf("expected the stored article, got %+v", articles)
	}
}

func TestHeadlinesCacheHitSkipsProvider(t *testing.T) {
	store := storage.NewMemoryStore()
	provider := &fakeHeadlines{configured: true, articles: headlineFixtures()}
	pageCache := newFakeCache()
	svc := app.NewNewsService(store, provider, nil, pageCache, nil)

	if _, err := svc.GetHeadlines(context.Background(), "general", 1, 10); err != nil {
		t.Fatalf("first GetHeadlines failed: %v", err)
	}
	if _, err := svc.GetHeadlines(context.Background(), "general", 1, 10); err != nil {
		t.Fatalf("second GetHeadlines failed: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("second call should hit the cache, provider called %d times", provider.calls)
	}
}

func TestHeadlinesQueuePublishesInsteadOfDirectWrite(t *testing.T) {
	store := storage.NewMemoryStore()
	provider := &fakeHeadlines{configured: true, articles: headlineFixtures()}
	queue := &fakeQueue{}
	svc := app.NewNewsService(store, provider, nil, nil, queue)

	if _, err := svc.GetHeadlines(context.Background(), "general", 1, 10); err != nil {
		t.Fatalf("GetHeadlines failed: %v", err)
	}

	if len(queue.published) != 2 {
		t.Fatalf("expected 2 queued articles, got %d", len(queue.published))
	}
	stored, err := store.ListArticles(storage.ArticleFilter{})
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("direct writes should be skipped when the queue is set, got %d", len(stored))
	}
}

func TestHeadlinesPagingClamped(t *testing.T) {
	store := storage.NewMemoryStore()
	provider := &fakeHeadlines{configured: true}
	svc := app.NewNewsService(store, provider, nil, nil, nil)

	// Zero and negative paging must not error, they normalize.
	if _, err := svc.GetHeadlines(context.Background(), "general", -1, -5); err != nil {
		t.Fatalf("GetHeadlines with bad paging failed: %v", err)
	}
}
