package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/vibecast/pkg/errors"
)

const (
	codeInternal   = "internal_error"
	codeBadRequest = "invalid_request"
)

var statusByCode = map[string]int{
	apperrors.CodeInvalidInput: http.StatusBadRequest,
	apperrors.CodeNotFound:     http.StatusNotFound,
	apperrors.CodeBusy:         http.StatusConflict,
	apperrors.CodeNetwork:      http.StatusBadGateway,
}

// HTTPError is the response shape of a failed request: a status plus the
// {"error":{"code","message"}} body rendered by errorHandlingMiddleware.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func badRequest(message string, err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, codeBadRequest, message, err)
}

// domainError maps an AppError code to its status. Anything unrecognised is a 500 with a
// generic message so internals never leak to clients.
func domainError(err error) *HTTPError {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return NewHTTPError(http.StatusInternalServerError, codeInternal, "something went wrong", err)
	}
	status, ok := statusByCode[appErr.Code]
	if !ok {
		return NewHTTPError(http.StatusInternalServerError, codeInternal, "something went wrong", err)
	}
	return NewHTTPError(status, appErr.Code, appErr.Message, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return domainError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
