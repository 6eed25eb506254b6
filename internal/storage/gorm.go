package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"newsprep/internal/model"
)

// GormStore is the durable Store implementation. Uniqueness is enforced by
// the unique indexes declared on the models; the database must be opened
// with gorm's error translation so duplicate-key violations surface as
// gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the schema for every persisted entity.
func (s *GormStore) Migrate() error {
	err := s.db.AutoMigrate(
		&model.User{},
		&model.Article{},
		&model.Comment{},
		&model.Like{},
		&model.Bookmark{},
		&model.StudyResource{},
		&model.ChatSession{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}
	return nil
}

func translateCreateErr(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return fmt.Errorf("create %s failed: %w", what, err)
}

func (s *GormStore) CreateUser(user *model.User) error {
	return translateCreateErr("user", s.db.Create(user).Error)
}

func (s *GormStore) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by username failed: %w", err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (s *GormStore) CreateArticle(article *model.Article) error {
	return translateCreateErr("article", s.db.Create(article).Error)
}

func (s *GormStore) GetArticleByID(id uint) (*model.Article, error) {
	var article model.Article
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query article by id failed: %w", err)
	}
	return &article, nil
}

func (s *GormStore) GetArticleByURL(url string) (*model.Article, error) {
	var article model.Article
	if err := s.db.Where("url = ?", url).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query article by url failed: %w", err)
	}
	return &article, nil
}

func (s *GormStore) ListArticles(filter ArticleFilter) ([]model.Article, error) {
	filter = normalizeArticleFilter(filter)

	query := s.db.Model(&model.Article{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var articles []model.Article
	err := query.
		Order("published_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("list articles failed: %w", err)
	}
	return articles, nil
}

func (s *GormStore) AddArticleLikes(articleID uint, delta int) error {
	err := s.db.Model(&model.Article{}).
		Where("id = ?", articleID).
		UpdateColumn("likes", gorm.Expr("GREATEST(likes + ?, 0)", delta)).Error
	if err != nil {
		return fmt.Errorf("update article likes failed: %w", err)
	}
	return nil
}

func (s *GormStore) CreateComment(comment *model.Comment) error {
	return translateCreateErr("comment", s.db.Create(comment).Error)
}

func (s *GormStore) ListCommentsByArticle(articleID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.db.Where("article_id = ?", articleID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	return comments, nil
}

func (s *GormStore) CreateLike(like *model.Like) error {
	return translateCreateErr("like", s.db.Create(like).Error)
}

func (s *GormStore) DeleteLike(userID, articleID uint) (bool, error) {
	result := s.db.Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, fmt.Errorf("delete like failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) GetLike(userID, articleID uint) (*model.Like, error) {
	var like model.Like
	err := s.db.Where("user_id = ? AND article_id = ?", userID, articleID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query like failed: %w", err)
	}
	return &like, nil
}

func (s *GormStore) CreateBookmark(bookmark *model.Bookmark) error {
	return translateCreateErr("bookmark", s.db.Create(bookmark).Error)
}

func (s *GormStore) DeleteBookmark(userID uint, resourceType, resourceID string) (bool, error) {
	result := s.db.Where(
		"user_id = ? AND resource_type = ? AND resource_id = ?",
		userID, resourceType, resourceID,
	).Delete(&model.Bookmark{})
	if result.Error != nil {
		return false, fmt.Errorf("delete bookmark failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) ListBookmarksByUser(userID uint) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, fmt.Errorf("list bookmarks failed: %w", err)
	}
	return bookmarks, nil
}

func (s *GormStore) CreateStudyResource(resource *model.StudyResource) error {
	return translateCreateErr("study resource", s.db.Create(resource).Error)
}

func (s *GormStore) ListStudyResources(filter StudyResourceFilter) ([]model.StudyResource, error) {
	query := s.db.Model(&model.StudyResource{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.ExamStage != "" {
		query = query.Where("exam_stage = ?", filter.ExamStage)
	}

	var resources []model.StudyResource
	if err := query.Order("created_at DESC").Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("list study resources failed: %w", err)
	}
	return resources, nil
}

func (s *GormStore) CreateChatSession(session *model.ChatSession) error {
	if session.Messages == "" {
		session.Messages = "[]"
	}
	return translateCreateErr("chat session", s.db.Create(session).Error)
}

func (s *GormStore) GetChatSessionByID(id uint) (*model.ChatSession, error) {
	var session model.ChatSession
	if err := s.db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query chat session failed: %w", err)
	}
	return &session, nil
}

func (s *GormStore) ListChatSessionsByUser(userID uint) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("list chat sessions failed: %w", err)
	}
	return sessions, nil
}

func (s *GormStore) ReplaceChatMessages(sessionID uint, messages []model.ChatMessage) error {
	var session model.ChatSession
	session.SetMessages(messages)
	err := s.db.Model(&model.ChatSession{}).
		Where("id = ?", sessionID).
		Update("messages", session.Messages).Error
	if err != nil {
		return fmt.Errorf("replace chat messages failed: %w", err)
	}
	return nil
}
