package http

import (
	"github.com/gin-gonic/gin"

	"newsprep/internal/ai"
	appsvc "newsprep/internal/app"
	"newsprep/internal/bootstrap"
	"newsprep/internal/cache"
	"newsprep/internal/extract"
	"newsprep/internal/news"
	"newsprep/internal/transcript"
	"newsprep/internal/transport/http/handler"
	"newsprep/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	cfg := app.Config

	llmClient := ai.NewClient(ai.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	newsClient := news.NewClient(news.Config{
		BaseURL: cfg.News.BaseURL,
		APIKey:  cfg.News.APIKey,
		Country: cfg.News.Country,
	})
	rssFetcher := news.NewRSSFetcher(cfg.News.Feeds)

	// Optional collaborators stay nil interfaces when disabled; assigning a
	// nil concrete pointer would defeat the services' nil checks.
	var headlineCache appsvc.HeadlinePageCache
	if app.Redis != nil {
		headlineCache = cache.NewHeadlineCache(app.Redis, cfg.HeadlineTTL())
	}
	var articleQueue appsvc.ArticleQueue
	if app.ArticlePublisher != nil {
		articleQueue = app.ArticlePublisher
	}

	authService := appsvc.NewAuthService(app.Store, cfg.Auth.JWTSecret, cfg.JWTExpiry())
	newsService := appsvc.NewNewsService(app.Store, newsClient, rssFetcher, headlineCache, articleQueue)
	articleService := appsvc.NewArticleService(app.Store)
	summarizeService := appsvc.NewSummarizeService(llmClient, extract.NewPageExtractor(), transcript.NewClient(cfg.Transcript.BaseURL))
	factCheckService := appsvc.NewFactCheckService(llmClient)
	chatService := appsvc.NewChatService(app.Store, llmClient)
	bookmarkService := appsvc.NewBookmarkService(app.Store)
	studyService := appsvc.NewStudyService(app.Store)

	authHandler := handler.NewAuthHandler(authService)
	newsHandler := handler.NewNewsHandler(newsService)
	articleHandler := handler.NewArticleHandler(articleService)
	summarizeHandler := handler.NewSummarizeHandler(summarizeService)
	factCheckHandler := handler.NewFactCheckHandler(factCheckService)
	chatHandler := handler.NewChatHandler(chatService)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService)
	studyHandler := handler.NewStudyHandler(studyService)

	requireAuth := middleware.AuthJWT(cfg.Auth.JWTSecret)
	optionalAuth := middleware.OptionalAuthJWT(cfg.Auth.JWTSecret)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", requireAuth, authHandler.Me)

	api.GET("/news", newsHandler.GetHeadlines)

	articles := api.Group("/articles")
	articles.GET("", articleHandler.List)
	articles.GET("/:id", articleHandler.Get)
	articles.GET("/:id/comments", articleHandler.ListComments)
	articles.POST("/:id/comments", requireAuth, articleHandler.AddComment)
	articles.POST("/:id/like", requireAuth, articleHandler.ToggleLike)

	summarize := api.Group("/summarize")
	summarize.POST("/text", summarizeHandler.Text)
	summarize.POST("/url", summarizeHandler.URL)
	summarize.POST("/pdf", summarizeHandler.PDF)
	summarize.POST("/youtube", summarizeHandler.YouTube)

	api.POST("/fakecheck", factCheckHandler.Check)

	chat := api.Group("/chat")
	chat.POST("", optionalAuth, chatHandler.Chat)
	chat.POST("/stream", optionalAuth, chatHandler.Stream)
	chat.GET("/sessions", requireAuth, chatHandler.ListSessions)
	chat.GET("/sessions/:id", requireAuth, chatHandler.GetSession)

	bookmarks := api.Group("/bookmarks", requireAuth)
	bookmarks.GET("", bookmarkHandler.List)
	bookmarks.POST("", bookmarkHandler.Add)
	bookmarks.DELETE("", bookmarkHandler.Remove)

	tnpsc := api.Group("/tnpsc")
	tnpsc.GET("/resources", studyHandler.Resources)
	tnpsc.GET("/syllabus", studyHandler.Syllabus)

	return router
}
