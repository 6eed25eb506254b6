package app

import (
	"errors"
	"strings"

	"newsprep/internal/model"
	"newsprep/internal/storage"
)

const maxCommentLength = 2000

// ArticleService covers reader interactions on stored articles: comments
// and the per-user like toggle.
type ArticleService struct {
	store storage.Store
}

func NewArticleService(store storage.Store) *ArticleService {
	return &ArticleService{store: store}
}

func (s *ArticleService) ListArticles(category string, limit, offset int) ([]model.Article, error) {
	return s.store.ListArticles(storage.ArticleFilter{
		Category: strings.TrimSpace(category),
		Limit:    limit,
		Offset:   offset,
	})
}

func (s *ArticleService) GetArticle(id uint) (*model.Article, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	article, err := s.store.GetArticleByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return article, nil
}

func (s *ArticleService) AddComment(userID uint, username string, articleID uint, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if userID == 0 || articleID == 0 || content == "" || len(content) > maxCommentLength {
		return nil, ErrInvalidInput
	}

	article, err := s.store.GetArticleByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}

	comment := &model.Comment{
		ArticleID: articleID,
		UserID:    userID,
		Username:  username,
		Content:   content,
	}
	if err := s.store.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ArticleService) ListComments(articleID uint) ([]model.Comment, error) {
	if articleID == 0 {
		return nil, ErrInvalidInput
	}

	article, err := s.store.GetArticleByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrNotFound
	}
	return s.store.ListCommentsByArticle(articleID)
}

// ToggleLike flips the caller's like on an article. The conditional insert
// decides the direction: a fresh row means this call liked the article, a
// duplicate means it was already liked and we remove it. Returns the new
// state and the updated count.
func (s *ArticleService) ToggleLike(userID, articleID uint) (liked bool, likes int, err error) {
	if userID == 0 || articleID == 0 {
		return false, 0, ErrInvalidInput
	}

	article, err := s.store.GetArticleByID(articleID)
	if err != nil {
		return false, 0, err
	}
	if article == nil {
		return false, 0, ErrNotFound
	}

	createErr := s.store.CreateLike(&model.Like{UserID: userID, ArticleID: articleID})
	switch {
	case createErr == nil:
		if err := s.store.AddArticleLikes(articleID, 1); err != nil {
			return false, 0, err
		}
		liked = true
	case errors.Is(createErr, storage.ErrDuplicate):
		removed, err := s.store.DeleteLike(userID, articleID)
		if err != nil {
			return false, 0, err
		}
		if removed {
			if err := s.store.AddArticleLikes(articleID, -1); err != nil {
				return false, 0, err
			}
		}
		liked = false
	default:
		return false, 0, createErr
	}

	updated, err := s.store.GetArticleByID(articleID)
	if err != nil {
		return false, 0, err
	}
	if updated != nil {
		likes = updated.Likes
	}
	return liked, likes, nil
}
