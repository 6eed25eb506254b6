package app_test

import (
	"context"
	"fmt"
	"testing"

	"newsprep/internal/ai"
	"newsprep/internal/app"
	"newsprep/internal/extract"
	"newsprep/internal/model"
	"newsprep/internal/storage"
)

// fakeLLM implements app.LLMClient and records the prompts it receives.
type fakeLLM struct {
	reply        string
	err          error
	configured   bool
	lastMessages []ai.ChatMessage
	calls        int
}

func newFakeLLM(reply string) *fakeLLM {
	return &fakeLLM{reply: reply, configured: true}
}

func (f *fakeLLM) Configured() bool { return f.configured }

func (f *fakeLLM) Complete(_ context.Context, messages []ai.ChatMessage) (string, error) {
	f.calls++
	f.lastMessages = messages
	return f.reply, f.err
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	return f.Complete(ctx, messages)
}

func (f *fakeLLM) StreamComplete(_ context.Context, messages []ai.ChatMessage, onChunk func(string) error) (string, error) {
	f.calls++
	f.lastMessages = messages
	if f.err != nil {
		return "", f.err
	}
	for _, r := range f.reply {
		if err := onChunk(string(r)); err != nil {
			return "", err
		}
	}
	return f.reply, nil
}

type fakeHeadlines struct {
	articles   []model.Article
	err        error
	configured bool
	calls      int
}

func (f *fakeHeadlines) Configured() bool { return f.configured }

func (f *fakeHeadlines) TopHeadlines(_ context.Context, _ string, _, _ int) ([]model.Article, error) {
	f.calls++
	return f.articles, f.err
}

type fakeFeed struct {
	articles   []model.Article
	err        error
	configured bool
	calls      int
}

func (f *fakeFeed) Configured() bool { return f.configured }

func (f *fakeFeed) Fetch(_ context.Context, _ string, _ int) ([]model.Article, error) {
	f.calls++
	return f.articles, f.err
}

type fakeQueue struct {
	published []model.Article
	err       error
}

func (f *fakeQueue) Publish(_ context.Context, article model.Article) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, article)
	return nil
}

// fakeCache keys entries the same way the Redis cache does.
type fakeCache struct {
	entries map[string][]model.Article
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]model.Article)}
}

func (f *fakeCache) cacheKey(category string, page, limit int) string {
	return fmt.Sprintf("%s:%d:%d", category, page, limit)
}

func (f *fakeCache) Get(_ context.Context, category string, page, limit int) ([]model.Article, bool, error) {
	articles, ok := f.entries[f.cacheKey(category, page, limit)]
	return articles, ok, nil
}

func (f *fakeCache) Set(_ context.Context, category string, page, limit int, articles []model.Article) error {
	f.entries[f.cacheKey(category, page, limit)] = articles
	return nil
}

type fakePages struct {
	page *extract.Page
	err  error
}

func (f *fakePages) Extract(_ context.Context, _ string) (*extract.Page, error) {
	return f.page, f.err
}

type fakeTranscripts struct {
	text       string
	err        error
	configured bool
}

func (f *fakeTranscripts) Configured() bool { return f.configured }

func (f *fakeTranscripts) Fetch(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

func seedUser(t *testing.T, store storage.Store, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedArticle(t *testing.T, store storage.Store, title, url string) *model.Article {
	t.Helper()
	article := &model.Article{
		Title:    title,
		URL:      url,
		Category: "general",
	}
	if err := store.CreateArticle(article); err != nil {
		t.Fatalf("seed article %s: %v", url, err)
	}
	return article
}

var _ app.LLMClient = (*fakeLLM)(nil)
var _ app.HeadlineSource = (*fakeHeadlines)(nil)
var _ app.FeedSource = (*fakeFeed)(nil)
var _ app.ArticleQueue = (*fakeQueue)(nil)
var _ app.HeadlinePageCache = (*fakeCache)(nil)
var _ app.PageSource = (*fakePages)(nil)
var _ app.TranscriptSource = (*fakeTranscripts)(nil)
