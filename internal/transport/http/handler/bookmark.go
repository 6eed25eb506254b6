package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsprep/internal/app"
	"newsprep/internal/transport/http/middleware"
	"newsprep/internal/transport/http/response"
)

type BookmarkHandler struct {
	bookmarkService *app.BookmarkService
}

type BookmarkRequest struct {
	ResourceType string `json:"resourceType" binding:"required,max=32"`
	ResourceID   string `json:"resourceId" binding:"required,max=128"`
	Title        string `json:"title" binding:"max=256"`
}

type BookmarkDeleteRequest struct {
	ResourceType string `json:"resourceType" binding:"required,max=32"`
	ResourceID   string `json:"resourceId" binding:"required,max=128"`
}

func NewBookmarkHandler(bookmarkService *app.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

func (h *BookmarkHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	bookmarks, err := h.bookmarkService.List(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list bookmarks failed")
		return
	}
	response.OK(c, gin.H{"bookmarks": bookmarks})
}

func (h *BookmarkHandler) Add(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	bookmark, err := h.bookmarkService.Add(userID, req.ResourceType, req.ResourceID, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrBookmarkExists):
			response.Error(c, http.StatusConflict, response.CodeBookmarkExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "add bookmark failed")
		}
		return
	}
	response.OK(c, bookmark)
}

func (h *BookmarkHandler) Remove(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	var req BookmarkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.bookmarkService.Remove(userID, req.ResourceType, req.ResourceID); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "bookmark not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "remove bookmark failed")
		}
		return
	}
	response.OK(c, nil)
}
