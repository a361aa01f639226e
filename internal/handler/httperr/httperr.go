package httperr

import (
	"errors"
	"net/http"

	"availability-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func newResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

func Internal() Response {
	return newResponse(http.StatusInternalServerError, "Internal server error", nil)
}

// StatusFor maps the error taxonomy to an HTTP status. ErrNotParty is checked before
// ErrInvalidState because it carries both kinds.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrNotParty), errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError keeps err on the gin context for logging and writes msg to the client.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := newResponse(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithKind picks the status from the error's kind. Internal errors never leak their text.
func AbortWithKind(c *gin.Context, err error, msg string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		AbortWithError(c, status, err, Internal().Error.Message, nil)
		return
	}
	AbortWithError(c, status, err, msg, err.Error())
}
