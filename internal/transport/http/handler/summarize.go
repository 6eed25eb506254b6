package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsprep/internal/app"
	"newsprep/internal/transport/http/response"
)

type SummarizeHandler struct {
	summarizeService *app.SummarizeService
}

type SummarizeTextRequest struct {
	Text string `json:"text" binding:"required"`
}

type SummarizeURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

func NewSummarizeHandler(summarizeService *app.SummarizeService) *SummarizeHandler {
	return &SummarizeHandler{summarizeService: summarizeService}
}

func (h *SummarizeHandler) Text(c *gin.Context) {
	var req SummarizeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.summarizeService.SummarizeText(c.Request.Context(), req.Text)
	if err != nil {
		h.writeSummarizeError(c, err, "summarize text failed")
		return
	}
	response.OK(c, gin.H{"summary": result.Summary})
}

func (h *SummarizeHandler) URL(c *gin.Context) {
	var req SummarizeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.summarizeService.SummarizeURL(c.Request.Context(), req.URL)
	if err != nil {
		h.writeSummarizeError(c, err, "summarize url failed")
		return
	}
	response.OK(c, gin.H{
		"summary":       result.Summary,
		"extractedText": result.ExtractedText,
		"title":         result.Title,
	})
}

// PDF expects a multipart upload with the document in the "file" field.
func (h *SummarizeHandler) PDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing pdf file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "open uploaded file failed")
		return
	}
	defer file.Close()

	result, err := h.summarizeService.SummarizePDF(c.Request.Context(), file)
	if err != nil {
		h.writeSummarizeError(c, err, "summarize pdf failed")
		return
	}
	response.OK(c, gin.H{
		"summary":       result.Summary,
		"extractedText": result.ExtractedText,
	})
}

func (h *SummarizeHandler) YouTube(c *gin.Context) {
	var req SummarizeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.summarizeService.SummarizeYouTube(c.Request.Context(), req.URL)
	if err != nil {
		h.writeSummarizeError(c, err, "summarize youtube failed")
		return
	}
	response.OK(c, gin.H{
		"summary":       result.Summary,
		"extractedText": result.ExtractedText,
	})
}

func (h *SummarizeHandler) writeSummarizeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrNoContent):
		response.Error(c, http.StatusBadRequest, response.CodeNoContent, err.Error())
	case errors.Is(err, app.ErrAIUnavailable):
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
