package storage

import (
	"errors"

	"newsprep/internal/model"
)

// ErrDuplicate is returned by conditional creates when a uniqueness rule
// (username, email, article URL, like, bookmark) already holds. Callers
// decide whether that is a conflict or a skip.
var ErrDuplicate = errors.New("duplicate record")

// DefaultArticleLimit applies when an article listing asks for no limit.
const DefaultArticleLimit = 20

// MaxArticleLimit caps a single article page.
const MaxArticleLimit = 100

type ArticleFilter struct {
	Category string
	Limit    int
	Offset   int
}

type StudyResourceFilter struct {
	Category  string
	Subject   string
	ExamStage string
}

// Store is the persistence contract. Two implementations exist: GormStore
// (MySQL) and MemoryStore (process-lifetime maps, dev/test fallback). Both
// behave identically: single lookups return (nil, nil) when the record is
// absent, lists come back newest-first, creates assign the ID and creation
// timestamp, and conditional creates report ErrDuplicate instead of racing.
type Store interface {
	CreateUser(user *model.User) error
	GetUserByID(id uint) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)

	CreateArticle(article *model.Article) error
	GetArticleByID(id uint) (*model.Article, error)
	GetArticleByURL(url string) (*model.Article, error)
	ListArticles(filter ArticleFilter) ([]model.Article, error)
	AddArticleLikes(articleID uint, delta int) error

	CreateComment(comment *model.Comment) error
	ListCommentsByArticle(articleID uint) ([]model.Comment, error)

	CreateLike(like *model.Like) error
	DeleteLike(userID, articleID uint) (bool, error)
	GetLike(userID, articleID uint) (*model.Like, error)

	CreateBookmark(bookmark *model.Bookmark) error
	DeleteBookmark(userID uint, resourceType, resourceID string) (bool, error)
	ListBookmarksByUser(userID uint) ([]model.Bookmark, error)

	CreateStudyResource(resource *model.StudyResource) error
	ListStudyResources(filter StudyResourceFilter) ([]model.StudyResource, error)

	CreateChatSession(session *model.ChatSession) error
	GetChatSessionByID(id uint) (*model.ChatSession, error)
	ListChatSessionsByUser(userID uint) ([]model.ChatSession, error)
	ReplaceChatMessages(sessionID uint, messages []model.ChatMessage) error
}

func normalizeArticleFilter(filter ArticleFilter) ArticleFilter {
	if filter.Limit <= 0 {
		filter.Limit = DefaultArticleLimit
	}
	if filter.Limit > MaxArticleLimit {
		filter.Limit = MaxArticleLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}
