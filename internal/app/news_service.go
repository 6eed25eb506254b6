package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"newsprep/internal/model"
	"newsprep/internal/storage"
)

// HeadlineSource is the live news provider (NewsAPI-compatible).
type HeadlineSource interface {
	Configured() bool
	TopHeadlines(ctx context.Context, category string, page, pageSize int) ([]model.Article, error)
}

// FeedSource is the RSS fallback used when the provider is down or unset.
type FeedSource interface {
	Configured() bool
	Fetch(ctx context.Context, category string, limit int) ([]model.Article, error)
}

// HeadlinePageCache holds served headline pages for a short TTL.
type HeadlinePageCache interface {
	Get(ctx context.Context, category string, page, limit int) ([]model.Article, bool, error)
	Set(ctx context.Context, category string, page, limit int, articles []model.Article) error
}

// ArticleQueue hands fetched articles to the ingest worker.
type ArticleQueue interface {
	Publish(ctx context.Context, article model.Article) error
}

// NewsService serves headline pages. Lookup order is cache, live provider,
// RSS fallback, then whatever the store already holds. Fetched articles are
// persisted best-effort so the stored tier keeps filling up; persistence
// never fails a read.
type NewsService struct {
	store    storage.Store
	provider HeadlineSource
	rss      FeedSource
	cache    HeadlinePageCache
	queue    ArticleQueue
}

func NewNewsService(store storage.Store, provider HeadlineSource, rss FeedSource, cache HeadlinePageCache, queue ArticleQueue) *NewsService {
	return &NewsService{
		store:    store,
		provider: provider,
		rss:      rss,
		cache:    cache,
		queue:    queue,
	}
}

func (s *NewsService) GetHeadlines(ctx context.Context, category string, page, limit int) ([]model.Article, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = storage.DefaultArticleLimit
	}
	if limit > storage.MaxArticleLimit {
		limit = storage.MaxArticleLimit
	}

	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, category, page, limit)
		if err != nil {
			log.Warn().Err(err).Msg("headline cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	if s.provider != nil && s.provider.Configured() {
		articles, err := s.provider.TopHeadlines(ctx, category, page, limit)
		if err == nil {
			s.persist(ctx, articles)
			s.cacheSet(ctx, category, page, limit, articles)
			return articles, nil
		}
		log.Warn().Err(err).Str("category", category).Msg("headline provider failed, trying fallback")
	}

	if s.rss != nil && s.rss.Configured() {
		articles, err := s.rss.Fetch(ctx, category, limit)
		if err == nil {
			s.persist(ctx, articles)
			s.cacheSet(ctx, category, page, limit, articles)
			return articles, nil
		}
		log.Warn().Err(err).Str("category", category).Msg("rss fallback failed, serving stored articles")
	}

	stored, err := s.store.ListArticles(storage.ArticleFilter{
		Category: category,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *NewsService) persist(ctx context.Context, articles []model.Article) {
	for _, article := range articles {
		if s.queue != nil {
			if err := s.queue.Publish(ctx, article); err != nil {
				log.Warn().Err(err).Str("url", article.URL).Msg("enqueue article failed")
			}
			continue
		}

		a := article
		err := s.store.CreateArticle(&a)
		if err != nil && !errors.Is(err, storage.ErrDuplicate) {
			log.Warn().Err(err).Str("url", article.URL).Msg("persist article failed")
		}
	}
}

func (s *NewsService) cacheSet(ctx context.Context, category string, page, limit int, articles []model.Article) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, category, page, limit, articles); err != nil {
		log.Warn().Err(err).Msg("headline cache write failed")
	}
}
