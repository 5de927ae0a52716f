package util

import (
	"errors"
	"humaniq_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	InternalServerError(c)
}

var statusByError = []struct {
	err    error
	status int
}{
	{ErrNotAvailable, http.StatusForbidden},
	{ErrPermissionDenied, http.StatusForbidden},
	{ErrNotFound, http.StatusNotFound},
	{ErrUnknownCourse, http.StatusNotFound},
	{ErrConflict, http.StatusConflict},
	{ErrMissingTotal, http.StatusBadRequest},
	{ErrInvalidModule, http.StatusBadRequest},
	{ErrModuleNotInCourse, http.StatusBadRequest},
	{ErrInvalidTotalQuestions, http.StatusBadRequest},
	{ErrInvalidScore, http.StatusBadRequest},
	{ErrIncompleteAnswers, http.StatusBadRequest},
	{ErrInvalidPeriodicity, http.StatusBadRequest},
	{ErrModulesIncomplete, http.StatusBadRequest},
	{ErrAttemptsExhausted, http.StatusBadRequest},
	{ErrAlreadyApproved, http.StatusBadRequest},
	{ErrNotApproved, http.StatusBadRequest},
	{ErrCourseIncomplete, http.StatusBadRequest},
	{ErrPurgeNotConfirmed, http.StatusBadRequest},
}

// StatusFor maps a service error onto an HTTP status. Unknown errors are 500.
func StatusFor(err error) int {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// HandleServiceError writes the client-facing error. Storage details never leave the process.
func HandleServiceError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		LogInternalError(c, err)
		return
	}
	Error(c, status, err.Error())
}
