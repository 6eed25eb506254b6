package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"newsprep/internal/model"
)

type likeKey struct {
	userID    uint
	articleID uint
}

type bookmarkKey struct {
	userID       uint
	resourceType string
	resourceID   string
}

// MemoryStore keeps every entity in process-lifetime maps guarded by a
// single RWMutex. It exists so the server and the tests run without any
// infrastructure; data disappears on restart. Three sample study resources
// are seeded at construction.
type MemoryStore struct {
	mu sync.RWMutex

	users          map[uint]model.User
	usersByName    map[string]uint
	usersByEmail   map[string]uint
	articles       map[uint]model.Article
	articlesByURL  map[string]uint
	comments       map[uint]model.Comment
	likes          map[uint]model.Like
	likesByKey     map[likeKey]uint
	bookmarks      map[uint]model.Bookmark
	bookmarksByKey map[bookmarkKey]uint
	studyResources map[uint]model.StudyResource
	chatSessions   map[uint]model.ChatSession

	nextUserID     uint
	nextArticleID  uint
	nextCommentID  uint
	nextLikeID     uint
	nextBookmarkID uint
	nextResourceID uint
	nextSessionID  uint
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		users:          make(map[uint]model.User),
		usersByName:    make(map[string]uint),
		usersByEmail:   make(map[string]uint),
		articles:       make(map[uint]model.Article),
		articlesByURL:  make(map[string]uint),
		comments:       make(map[uint]model.Comment),
		likes:          make(map[uint]model.Like),
		likesByKey:     make(map[likeKey]uint),
		bookmarks:      make(map[uint]model.Bookmark),
		bookmarksByKey: make(map[bookmarkKey]uint),
		studyResources: make(map[uint]model.StudyResource),
		chatSessions:   make(map[uint]model.ChatSession),
	}
	s.seedStudyResources()
	return s
}

func (s *MemoryStore) seedStudyResources() {
	seeds := []model.StudyResource{
		{
			Title:       "TNPSC Group 1 Prelims General Studies Notes",
			Category:    "tnpsc_material",
			Subject:     "general_studies",
			ExamStage:   "prelims",
			FileURL:     "https://example.org/materials/group1-prelims-gs.pdf",
			Description: "Condensed general studies notes covering polity, history and geography.",
		},
		{
			Title:       "Tamil Eligibility Test Practice Workbook",
			Category:    "tnpsc_material",
			Subject:     "tamil",
			ExamStage:   "prelims",
			FileURL:     "https://example.org/materials/tamil-eligibility-workbook.pdf",
			Description: "Practice questions for the compulsory Tamil eligibility paper.",
		},
		{
			Title:       "Indian Economy Mains Answer Writing Guide",
			Category:    "tnpsc_material",
			Subject:     "economy",
			ExamStage:   "mains",
			FileURL:     "https://example.org/materials/economy-mains-guide.pdf",
			Description: "Model answers and structure templates for mains economy questions.",
		},
	}
	for i := range seeds {
		_ = s.CreateStudyResource(&seeds[i])
	}
}

func nowIfZero(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func (s *MemoryStore) CreateUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByName[user.Username]; exists {
		return ErrDuplicate
	}
	if _, exists := s.usersByEmail[user.Email]; exists {
		return ErrDuplicate
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = nowIfZero(user.CreatedAt)

	s.users[user.ID] = *user
	s.usersByName[user.Username] = user.ID
	s.usersByEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryStore) GetUserByID(id uint) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemoryStore) GetUserByUsername(username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByName[username]
	if !ok {
		return nil, nil
	}
	user := s.users[id]
	return &user, nil
}

func (s *MemoryStore) GetUserByEmail(email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return nil, nil
	}
	user := s.users[id]
	return &user, nil
}

func (s *MemoryStore) CreateArticle(article *model.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.articlesByURL[article.URL]; exists {
		return ErrDuplicate
	}

	s.nextArticleID++
	article.ID = s.nextArticleID
	article.CreatedAt = nowIfZero(article.CreatedAt)
	article.PublishedAt = nowIfZero(article.PublishedAt)

	s.articles[article.ID] = *article
	s.articlesByURL[article.URL] = article.ID
	return nil
}

func (s *MemoryStore) GetArticleByID(id uint) (*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	article, ok := s.articles[id]
	if !ok {
		return nil, nil
	}
	return &article, nil
}

func (s *MemoryStore) GetArticleByURL(url string) (*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.articlesByURL[url]
	if !ok {
		return nil, nil
	}
	article := s.articles[id]
	return &article, nil
}

func (s *MemoryStore) ListArticles(filter ArticleFilter) ([]model.Article, error) {
	filter = normalizeArticleFilter(filter)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.Article, 0, len(s.articles))
	for _, article := range s.articles {
		if filter.Category != "" && article.Category != filter.Category {
			continue
		}
		matched = append(matched, article)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].PublishedAt.Equal(matched[j].PublishedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].PublishedAt.After(matched[j].PublishedAt)
	})

	if filter.Offset >= len(matched) {
		return []model.Article{}, nil
	}
	matched = matched[filter.Offset:]
	if len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (s *MemoryStore) AddArticleLikes(articleID uint, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	article, ok := s.articles[articleID]
	if !ok {
		return fmt.Errorf("update article likes failed: article %d not found", articleID)
	}
	article.Likes += delta
	if article.Likes < 0 {
		article.Likes = 0
	}
	s.articles[articleID] = article
	return nil
}

func (s *MemoryStore) CreateComment(comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCommentID++
	comment.ID = s.nextCommentID
	comment.CreatedAt = nowIfZero(comment.CreatedAt)
	s.comments[comment.ID] = *comment
	return nil
}

func (s *MemoryStore) ListCommentsByArticle(articleID uint) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.Comment, 0)
	for _, comment := range s.comments {
		if comment.ArticleID == articleID {
			matched = append(matched, comment)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *MemoryStore) CreateLike(like *model.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{userID: like.UserID, articleID: like.ArticleID}
	if _, exists := s.likesByKey[key]; exists {
		return ErrDuplicate
	}

	s.nextLikeID++
	like.ID = s.nextLikeID
	like.CreatedAt = nowIfZero(like.CreatedAt)
	s.likes[like.ID] = *like
	s.likesByKey[key] = like.ID
	return nil
}

func (s *MemoryStore) DeleteLike(userID, articleID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{userID: userID, articleID: articleID}
	id, exists := s.likesByKey[key]
	if !exists {
		return false, nil
	}
	delete(s.likes, id)
	delete(s.likesByKey, key)
	return true, nil
}

func (s *MemoryStore) GetLike(userID, articleID uint) (*model.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.likesByKey[likeKey{userID: userID, articleID: articleID}]
	if !exists {
		return nil, nil
	}
	like := s.likes[id]
	return &like, nil
}

func (s *MemoryStore) CreateBookmark(bookmark *model.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := bookmarkKey{
		userID:       bookmark.UserID,
		resourceType: bookmark.ResourceType,
		resourceID:   bookmark.ResourceID,
	}
	if _, exists := s.bookmarksByKey[key]; exists {
		return ErrDuplicate
	}

	s.nextBookmarkID++
	bookmark.ID = s.nextBookmarkID
	bookmark.CreatedAt = nowIfZero(bookmark.CreatedAt)
	s.bookmarks[bookmark.ID] = *bookmark
	s.bookmarksByKey[key] = bookmark.ID
	return nil
}

func (s *MemoryStore) DeleteBookmark(userID uint, resourceType, resourceID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := bookmarkKey{userID: userID, resourceType: resourceType, resourceID: resourceID}
	id, exists := s.bookmarksByKey[key]
	if !exists {
		return false, nil
	}
	delete(s.bookmarks, id)
	delete(s.bookmarksByKey, key)
	return true, nil
}

func (s *MemoryStore) ListBookmarksByUser(userID uint) ([]model.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.Bookmark, 0)
	for _, bookmark := range s.bookmarks {
		if bookmark.UserID == userID {
			matched = append(matched, bookmark)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *MemoryStore) CreateStudyResource(resource *model.StudyResource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextResourceID++
	resource.ID = s.nextResourceID
	resource.CreatedAt = nowIfZero(resource.CreatedAt)
	s.studyResources[resource.ID] = *resource
	return nil
}

func (s *MemoryStore) ListStudyResources(filter StudyResourceFilter) ([]model.StudyResource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.StudyResource, 0)
	for _, resource := range s.studyResources {
		if filter.Category != "" && resource.Category != filter.Category {
			continue
		}
		if filter.Subject != "" && resource.Subject != filter.Subject {
			continue
		}
		if filter.ExamStage != "" && resource.ExamStage != filter.ExamStage {
			continue
		}
		matched = append(matched, resource)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *MemoryStore) CreateChatSession(session *model.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSessionID++
	session.ID = s.nextSessionID
	session.CreatedAt = nowIfZero(session.CreatedAt)
	session.UpdatedAt = session.CreatedAt
	if session.Messages == "" {
		session.Messages = "[]"
	}
	s.chatSessions[session.ID] = *session
	return nil
}

func (s *MemoryStore) GetChatSessionByID(id uint) (*model.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.chatSessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *MemoryStore) ListChatSessionsByUser(userID uint) ([]model.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]model.ChatSession, 0)
	for _, session := range s.chatSessions {
		if session.UserID == userID {
			matched = append(matched, session)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *MemoryStore) ReplaceChatMessages(sessionID uint, messages []model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.chatSessions[sessionID]
	if !ok {
		return nil
	}
	session.SetMessages(messages)
	session.UpdatedAt = time.Now()
	s.chatSessions[sessionID] = session
	return nil
}
