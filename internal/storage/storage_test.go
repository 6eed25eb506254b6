package storage_test

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"newsprep/internal/model"
	"newsprep/internal/storage"
)

// runStoreTest executes the same contract test against every available Store
// implementation. The in-memory store always runs; the MySQL store runs only
// when NEWSPREP_TEST_MYSQL_DSN points at a disposable database.
func runStoreTest(t *testing.T, fn func(t *testing.T, s storage.Store)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		fn(t, storage.NewMemoryStore())
	})

	dsn := os.Getenv("NEWSPREP_TEST_MYSQL_DSN")
	if dsn == "" {
		return
	}
	t.Run("mysql", func(t *testing.T) {
		fn(t, newTestGormStore(t, dsn))
	})
}

func newTestGormStore(t *testing.T, dsn string) *storage.GormStore {
	t.Helper()

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test mysql: %v", err)
	}

	store := storage.NewGormStore(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}

	for _, table := range []string{
		"likes", "bookmarks", "comments", "chat_sessions",
		"study_resources", "articles", "users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
	return store
}

func mustCreateUser(t *testing.T, s storage.Store, username, email string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: email, PasswordHash: "x"}
	if err := s.CreateUser(user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustCreateArticle(t *testing.T, s storage.Store, title, url, category string, published time.Time) *model.Article {
	t.Helper()
	article := &model.Article{Title: title, URL: url, Category: category, PublishedAt: published}
	if err := s.CreateArticle(article); err != nil {
		t.Fatalf("create article %s: %v", url, err)
	}
	return article
}

func TestUserUniqueness(t *testing.T) {
	runStoreTest(t, func(t *testing.T, s storage.Store) {
		user := mustCreateUser(t, s, "asha", "asha@example.com")
		if user.ID == 0 {
			t.Fatal("expected created user to receive an id")
		}
		if user.CreatedAt.IsZero() {
			t.Fatal("expected created user to receive a creation timestamp")
		}

		err := s.CreateUser(&model.User{Username: "asha", Email: "other@example.com", PasswordHash: "x"})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate for reused username, got %v", err)
		}

		err = s.CreateUser(&model.User{Username: "other", Email: "asha@example.com", PasswordHash: "x"})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate for reused email, got %v", err)
		}

		byName, err := s.GetUserByUsername("asha")
		if err != nil || byName == nil || byName.ID != user.ID {
			t.Fatalf("lookup by username: got %v, %v", byName, err)
		}
		byEmail, err := s.GetUserByEmail("asha@example.com")
		if err != nil || byEmail == nil || byEmail.ID != user.ID {
			t.Fatalf("lookup by email: got %v, %v", byEmail, err)
		}

		missing, err := s.GetUserByUsername("nobody")
		if err != nil || missing != nil {
			t.Fatalf("absent user should be (nil, nil), got %v, %v", missing, err)
		}
	})
}

func TestArticleURLConflict(t *testing.T) {
	runStoreTest(t, func(t *testing.T, s storage.Store) {
		mustCreateArticle(t, s, "First", "https://news.example.com/a", "state", time.Now())

		err := s.CreateArticle(&model.Article{
			Title: "Same URL", URL: "https://news.example.com/a", Category: "state",
		})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate for reused url, got %v", err)
		}

		found, err := s.GetArticleByURL("https://news.example.com/a")
		if err != nil || found == nil || found.Title != "First" {
			t.Fatalf("lookup by url: got %v, %v", found, err)
		}
	})
}

func TestListArticlesFilterOrderAndPaging(t *testing.T) {
	runStoreTest(t, func(t *testing.T, s storage.Store) {
		base := time.Now().Add(-time.Hour).Truncate(time.Second)
		for i := 0; i < 25; i++ {
			category := "state"
			if i%5 == 0 {
				category = "national"
			}
			mustCreateArticle(t, s,
				fmt.Sprintf("Article %d", i),
				fmt.Sprintf("https://news.example.com/p/%d", i),
				category,
				base.Add(time.Duration(i)*time.Minute),
			)
		}

		page, err := s.ListArticles(storage.ArticleFilter{})
		if err != nil {
			t.Fatalf("list articles: %v", err)
		}
		if len(page) != storage.DefaultArticleLimit {
			t.Fatalf("expected default limit %d, got %d", storage.DefaultArticleLimit, len(page))
		}
		for i := 1; i < len(page); i++ {
			if page[i].PublishedAt.After(page[i-1].PublishedAt) {
				t.Fatal("articles not ordered newest-first")
			}
		}

		filtered, err := s.ListArticles(storage.ArticleFilter{Category: "national", Limit: 50})
		if err != nil {
			t.Fatalf("list filtered: %v", err)
		}
		if len(filtered) != 5 {
			t.Fatalf("expected 5 national articles, got %d", len(filtered))
		}
		for _, article := range filtered {
			if article.Category != "national" {
				t.Fatalf("filter leaked category %q", article.Category)
			}
		}

		second, err := s.ListArticles(storage.ArticleFilter{Limit: 10, Offset: 10})
		if err != nil {
			t.Fatalf("list offset page: %v", err)
		}
		if len(second) != 10 {
			t.Fatalf("expected 10 articles on second page, got %d", len(second))
		}
		if second[0].Title == page[0].Title {
			t.Fatal("offset page should not repeat the first page")
		}
	})
}

func TestLikeConditionalWrite(t *testing.T) {
	runStoreTest(t, func(t *testing.T, s storage.Store) {
		user := mustCreateUser(t, s, "liker", "liker@example.com")
		article := mustCreateArticle(t, s, "Likable", "https://news.example.com/like", "state", time.Now())

		if err := s.CreateLike(&model.Like{UserID: user.ID, ArticleID: article.ID}); err != nil {
			t.Fatalf("first like: %v", err)
		}
		err := s.CreateLike(&model.Like{UserID: user.ID, ArticleID: article.ID})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate on second like, got %v", err)
		}

		like, err := s.GetLike(user.ID, article.ID)
		if err != nil || like == nil {
			t.Fatalf("get like: %v, %v", like, err)
		}

		deleted, err := s.DeleteLike(user.ID, article.ID)
		if err != nil || !deleted {
			t.Fatalf("delete like: deleted=%v err=%v", deleted, err)
		}
		deleted, err = s.DeleteLike(user.ID, article.ID)
		if err != nil || deleted {
			t.Fatalf("second delete should be a no-op: deleted=%v err=%v", deleted, err)
		}
	})
}

func TestAddArticleLikesClampsAtZero(t *testing.T) {
	runStoreTest(t, func(t *testing.T, s storage.Store) {
		article := mustCreateArticle(t, s, "Counted", "https://news.example.com/count", "state", time.Now())

		if err := s.AddArticleLikes(article.ID, 1); err != nil {
			t.Fatalf("increment likes: %v", err)
		}
		if err := s.AddArticleLikes(article.ID, -1); err != nil {
			t.Fatalf("decrement likes: %v", err)
		}
		if err := s.AddArticleLikes(article.ID, -1); err != nil {
			t.Fatalf("decrement below zero: %v", err)
		}

		got, err := s.GetArticleByID(article.ID)
		if err != nil || got == nil {
			t.Fatalf("reload article: %v, %v", got, err)
		}
		if got.Likes != 0 {
			t.Fatalf("expected likes clamped at 0, got %d", got.Likes)
		}
	})
}

func TestCommentsNewestFirst(t *testing.T) {
	runStoreTest(t, func(t *testing.T, s storage.Store) {
		user := mustCreateUser(t, s, "commenter", "commenter@example.com")
		article := mustCreateArticle(t, s, "Discussed", "https://news.example.com/talk", "state", time.Now())

		base := time.Now().Add(-time.Hour).Truncate(time.Second)
		for i := 0; i < 3; i++ {
			err := s.CreateComment(&model.Comment{
				ArticleID: article.ID,
				UserID:    user.ID,
				Content:   fmt.Sprintf("comment %d", i),
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			})
			if err != nil {
				t.Fatalf("create comment %d: %v", i, err)
			}
		}

		comments, err := s.ListCommentsByArticle(article.ID)
		if err != nil {
			t.Fatalf("list comments: %v", err)
		}
		if len(comments) != 3 {
			t.Fatalf("expected 3 comments, got %d", len(comments))
		}
		if comments[0].Content != "comment 2" {
			t.Fatalf("expected newest comment first, got %q", comments[0].Content)
		}
	})
}

func TestBookmarkRoundTrip(t *testing.T) {
	runStoreTest(t, func(t *testing.T, s storage.Store) {
		user := mustCreateUser(t, s, "reader", "reader@example.com")

		bookmark := &model.Bookmark{
			UserID:       user.ID,
			ResourceType: "tnpsc_material",
			ResourceID:   "42",
			Title:        "Economy notes",
		}
		if err := s.CreateBookmark(bookmark); err != nil {
			t.Fatalf("create bookmark: %v", err)
		}
		err := s.CreateBookmark(&model.Bookmark{
			UserID: user.ID, ResourceType: "tnpsc_material", ResourceID: "42",
		})
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate for repeated bookmark, got %v", err)
		}

		list, err := s.ListBookmarksByUser(user.ID)
		if err != nil || len(list) != 1 {
			t.Fatalf("list bookmarks: %v items, err %v", len(list), err)
		}

		deleted, err := s.DeleteBookmark(user.ID, "tnpsc_material", "42")
		if err != nil || !deleted {
			t.Fatalf("delete bookmark: deleted=%v err=%v", deleted, err)
		}
		list, err = s.ListBookmarksByUser(user.ID)
		if err != nil || len(list) != 0 {
			t.Fatalf("bookmark list should be empty after delete, got %d err %v", len(list), err)
		}
		deleted, err = s.DeleteBookmark(user.ID, "tnpsc_material", "42")
		if err != nil || deleted {
			t.Fatalf("deleting a missing bookmark should report false, got %v err %v", deleted, err)
		}
	})
}

func TestStudyResourceFilters(t *testing.T) {
	runStoreTest(t, func(t *testing.T, s storage.Store) {
		resources := []model.StudyResource{
			{Title: "Polity Prelims", Category: "tnpsc_material", Subject: "polity", ExamStage: "prelims"},
			{Title: "Polity Mains", Category: "tnpsc_material", Subject: "polity", ExamStage: "mains"},
			{Title: "History Prelims", Category: "tnpsc_material", Subject: "history", ExamStage: "prelims"},
		}
		for i := range resources {
			if err := s.CreateStudyResource(&resources[i]); err != nil {
				t.Fatalf("create resource %d: %v", i, err)
			}
		}

		byStage, err := s.ListStudyResources(storage.StudyResourceFilter{Subject: "polity", ExamStage: "prelims"})
		if err != nil {
			t.Fatalf("list filtered resources: %v", err)
		}
		if len(byStage) != 1 || byStage[0].Title != "Polity Prelims" {
			t.Fatalf("expected exactly the polity prelims resource, got %+v", byStage)
		}

		all, err := s.ListStudyResources(storage.StudyResourceFilter{})
		if err != nil {
			t.Fatalf("list all resources: %v", err)
		}
		if len(all) < 3 {
			t.Fatalf("expected at least 3 resources, got %d", len(all))
		}
	})
}

func TestChatSessionReplaceMessages(t *testing.T) {
	runStoreTest(t, func(t *testing.T, s storage.Store) {
		session := &model.ChatSession{UserID: 0}
		if err := s.CreateChatSession(session); err != nil {
			t.Fatalf("create chat session: %v", err)
		}

		first := []model.ChatMessage{
			{Role: "user", Content: "hello", Timestamp: time.Now()},
			{Role: "assistant", Content: "hi there", Timestamp: time.Now()},
		}
		if err := s.ReplaceChatMessages(session.ID, first); err != nil {
			t.Fatalf("replace messages: %v", err)
		}

		got, err := s.GetChatSessionByID(session.ID)
		if err != nil || got == nil {
			t.Fatalf("get session: %v, %v", got, err)
		}
		if list := got.MessageList(); len(list) != 2 || list[1].Role != "assistant" {
			t.Fatalf("expected the stored list to be the replacement, got %+v", list)
		}

		second := append(first, model.ChatMessage{Role: "user", Content: "more", Timestamp: time.Now()})
		if err := s.ReplaceChatMessages(session.ID, second); err != nil {
			t.Fatalf("second replace: %v", err)
		}
		got, _ = s.GetChatSessionByID(session.ID)
		if list := got.MessageList(); len(list) != 3 {
			t.Fatalf("expected 3 messages after wholesale replace, got %d", len(list))
		}
	})
}

func TestListChatSessionsByUser(t *testing.T) {
	runStoreTest(t, func(t *testing.T, s storage.Store) {
		user := mustCreateUser(t, s, "chatter", "chatter@example.com")

		for i := 0; i < 2; i++ {
			if err := s.CreateChatSession(&model.ChatSession{UserID: user.ID}); err != nil {
				t.Fatalf("create session %d: %v", i, err)
			}
		}
		if err := s.CreateChatSession(&model.ChatSession{UserID: 0}); err != nil {
			t.Fatalf("create anonymous session: %v", err)
		}

		sessions, err := s.ListChatSessionsByUser(user.ID)
		if err != nil {
			t.Fatalf("list sessions: %v", err)
		}
		if len(sessions) != 2 {
			t.Fatalf("expected 2 sessions for user, got %d", len(sessions))
		}
	})
}
