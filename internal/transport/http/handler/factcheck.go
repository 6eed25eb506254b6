package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsprep/internal/app"
	"newsprep/internal/transport/http/response"
)

type FactCheckHandler struct {
	factCheckService *app.FactCheckService
}

type FactCheckRequest struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source"`
}

func NewFactCheckHandler(factCheckService *app.FactCheckService) *FactCheckHandler {
	return &FactCheckHandler{factCheckService: factCheckService}
}

// Check serves POST /api/fakecheck.
func (h *FactCheckHandler) Check(c *gin.Context) {
	var req FactCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.factCheckService.Check(c.Request.Context(), req.Text, req.Source)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrAIUnavailable):
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fact check failed")
		}
		return
	}

	response.OK(c, gin.H{
		"isReal":            result.IsReal,
		"confidence":        result.Confidence,
		"explanation":       result.Explanation,
		"sourceCredibility": result.SourceCredibility,
	})
}
