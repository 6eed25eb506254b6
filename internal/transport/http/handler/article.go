package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"newsprep/internal/app"
	"newsprep/internal/transport/http/middleware"
	"newsprep/internal/transport/http/response"
)

type ArticleHandler struct {
	articleService *app.ArticleService
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func NewArticleHandler(articleService *app.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List serves GET /api/articles, the stored article catalog.
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.articleService.ListArticles(
		c.Query("category"),
		queryInt(c, "limit", 0),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list articles failed")
		return
	}
	response.OK(c, gin.H{"articles": articles})
}

func (h *ArticleHandler) Get(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	article, err := h.articleService.GetArticle(articleID)
	if err != nil {
		h.writeArticleError(c, err, "fetch article failed")
		return
	}
	response.OK(c, article)
}

func (h *ArticleHandler) ListComments(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	comments, err := h.articleService.ListComments(articleID)
	if err != nil {
		h.writeArticleError(c, err, "list comments failed")
		return
	}
	response.OK(c, gin.H{"comments": comments})
}

func (h *ArticleHandler) AddComment(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	userID, authed := middleware.UserID(c)
	if !authed {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	comment, err := h.articleService.AddComment(userID, middleware.Username(c), articleID, req.Content)
	if err != nil {
		h.writeArticleError(c, err, "add comment failed")
		return
	}
	response.OK(c, comment)
}

// ToggleLike serves POST /api/articles/:id/like and reports the resulting
// state: {liked, likes}.
func (h *ArticleHandler) ToggleLike(c *gin.Context) {
	articleID, ok := paramID(c, "id")
	if !ok {
		return
	}

	userID, authed := middleware.UserID(c)
	if !authed {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	liked, likes, err := h.articleService.ToggleLike(userID, articleID)
	if err != nil {
		h.writeArticleError(c, err, "toggle like failed")
		return
	}
	response.OK(c, gin.H{"liked": liked, "likes": likes})
}

func (h *ArticleHandler) writeArticleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "article not found")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
