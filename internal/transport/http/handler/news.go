package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"newsprep/internal/app"
	"newsprep/internal/transport/http/response"
)

type NewsHandler struct {
	newsService *app.NewsService
}

func NewNewsHandler(newsService *app.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// GetHeadlines serves GET /api/news?category&page&limit.
func (h *NewsHandler) GetHeadlines(c *gin.Context) {
	category := c.Query("category")
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 0)

	articles, err := h.newsService.GetHeadlines(c.Request.Context(), category, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch headlines failed")
		return
	}

	response.OK(c, gin.H{"articles": articles})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
