// Package response defines the JSON envelope every endpoint replies with.
// Business codes extend the HTTP status with one more digit of detail, so a
// 409 can say whether the conflict was a username, an email or a bookmark.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeUsernameExists     = 40001
	CodeEmailExists        = 40002
	CodeNoContent          = 40003
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodeForbidden          = 40300
	CodeNotFound           = 40400
	CodeBookmarkExists     = 40900
	CodeInternalServer     = 50000
)

// Envelope is the wire shape: code 0 plus data on success, a non-zero code
// plus a human-readable message on failure.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Code: CodeOK, Message: "ok", Data: data})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, Envelope{Code: code, Message: message})
}
