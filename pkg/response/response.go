package response

import (
	stderrors "errors"
	"net/http"

	"report-srv/pkg/errors"

	"github.com/gin-gonic/gin"
)

const (
	MessageSuccess      = "Success"
	MessageUnauthorized = "Unauthorized"
	MessageInternal     = "Something went wrong"
	MessageBadRequest   = "Bad request"
)

// OK writes a 200 with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	})
}

// Error writes err as a JSON error body.
// HTTPError and validation errors keep their status; anything else is a 500.
func Error(c *gin.Context, err error) {
	var httpErr *errors.HTTPError
	if stderrors.As(err, &httpErr) {
		c.JSON(httpErr.StatusCode, Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		})
		return
	}

	var validationErr *errors.ValidationErrorCollector
	if stderrors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, Resp{
			ErrorCode: http.StatusBadRequest,
			Message:   MessageBadRequest,
			Errors:    validationErr.Errors(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   MessageInternal,
	})
}

// ErrorWithMap looks err up in m before falling back to Error.
func ErrorWithMap(c *gin.Context, err error, m ErrorMapping) {
	for target, httpErr := range m {
		if stderrors.Is(err, target) {
			Error(c, httpErr)
			return
		}
	}
	Error(c, err)
}

// BadRequest writes a 400 with the binding error message.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Resp{
		ErrorCode: http.StatusBadRequest,
		Message:   err.Error(),
	})
}

func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{
		ErrorCode: http.StatusUnauthorized,
		Message:   MessageUnauthorized,
	})
}

// PanicError answers a recovered panic with a 500. The panic value is never echoed.
func PanicError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   MessageInternal,
	})
}
