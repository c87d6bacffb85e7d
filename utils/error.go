package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// APIError carries an HTTP status alongside the message so upstream
// failures (calendar, voice vendor) keep their original status code.
type APIError struct {
	Status  int
	Message string
	Hint    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError builds an APIError; a zero status maps to 502 since these
// errors originate from external collaborators.
func NewAPIError(status int, message string) *APIError {
	if status == 0 {
		status = http.StatusBadGateway
	}
	return &APIError{Status: status, Message: message}
}

// ErrorHandler is a middleware to catch panics and surface APIErrors as
// structured responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		GetLogger().Error("unhandled_error", zap.Error(err))

		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.Status, ErrorResponse{Message: apiErr.Message, Hint: apiErr.Hint})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
