package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorCode string

const (
	ErrorCodeValidation         ErrorCode = "VALIDATION"
	ErrorCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrorCodeUpstreamFailure    ErrorCode = "UPSTREAM_FAILURE"
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrorCodeInternalFailure    ErrorCode = "INTERNAL_FAILURE"
)

// AppError is a failure the HTTP layer can translate directly. Lookup-level
// failures never become AppErrors; they are absorbed with fallback values
// inside the resolvers.
type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: ErrorCodeValidation, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Code: ErrorCodeNotFound, Message: message}
}

func Upstream(message string, err error) *AppError {
	return &AppError{Status: http.StatusBadGateway, Code: ErrorCodeUpstreamFailure, Message: message, Err: err}
}

func Unavailable(message string, err error) *AppError {
	return &AppError{Status: http.StatusServiceUnavailable, Code: ErrorCodeServiceUnavailable, Message: message, Err: err}
}

// Send writes err as a JSON error response, defaulting to 500 for
// anything that is not an AppError.
func Send(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"code":    ErrorCodeInternalFailure,
		"details": err.Error(),
	})
}
