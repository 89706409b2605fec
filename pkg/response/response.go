package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/school-api/pkg/errors"
)

// ErrorBody is the unified error payload rendered to clients.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope represents the common response contract. Exactly one of the
// branches is populated per response.
type Envelope struct {
	Success bool                   `json:"success,omitempty"`
	Message string                 `json:"message,omitempty"`
	Data    interface{}            `json:"data,omitempty"`
	Error   *ErrorBody             `json:"error,omitempty"`
	Errors  []appErrors.FieldError `json:"errors,omitempty"`
}

// JSON sends a success response carrying data.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Message sends a `{success, message}` acknowledgement.
func Message(c *gin.Context, status int, message string) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Success: true, Message: message})
}

// Created responds with HTTP 201 plus an acknowledgement and the created row.
func Created(c *gin.Context, message string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Error renders the unified error envelope. Validation errors carry the
// per-field list; everything else reduces to a single error object.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	if len(appErr.Fields) > 0 {
		c.JSON(appErr.Status, Envelope{Errors: appErr.Fields})
		return
	}
	c.JSON(appErr.Status, Envelope{Error: &ErrorBody{Code: appErr.Code, Message: appErr.Message}})
}
