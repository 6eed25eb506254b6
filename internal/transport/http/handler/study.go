package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsprep/internal/app"
	"newsprep/internal/transport/http/response"
)

type StudyHandler struct {
	studyService *app.StudyService
}

func NewStudyHandler(studyService *app.StudyService) *StudyHandler {
	return &StudyHandler{studyService: studyService}
}

// Resources serves GET /api/tnpsc/resources?category&subject&stage.
func (h *StudyHandler) Resources(c *gin.Context) {
	resources, err := h.studyService.ListResources(
		c.Query("category"),
		c.Query("subject"),
		c.Query("stage"),
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list resources failed")
		return
	}
	response.OK(c, gin.H{"resources": resources})
}

// Syllabus serves GET /api/tnpsc/syllabus.
func (h *StudyHandler) Syllabus(c *gin.Context) {
	response.OK(c, gin.H{"syllabus": h.studyService.Syllabus()})
}
