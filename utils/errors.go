package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is an error carrying the HTTP status it should be reported
// with. Handlers attach one to the gin context and abort; the ErrorHandler
// middleware turns it into the response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

func ErrMissingData() *APIError {
	return NewAPIError(http.StatusBadRequest, MsgMissingData)
}

func ErrTradeNotFound() *APIError {
	return NewAPIError(http.StatusNotFound, MsgTradeNotFound)
}

func ErrNotParticipant() *APIError {
	return NewAPIError(http.StatusForbidden, MsgNotParticipant)
}

func ErrInvalidStatus() *APIError {
	return NewAPIError(http.StatusBadRequest, MsgInvalidStatus)
}

// ErrorHandler funnels all handler errors through a single response shape.
// Known errors (APIError) answer with their own status code; anything else
// becomes a generic 500 and is only detailed in the server log.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if apiErr, ok := err.(*APIError); ok {
			c.JSON(apiErr.StatusCode, gin.H{"success": false, "error": apiErr.Message})
			return
		}

		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": MsgServerError})
	}
}
