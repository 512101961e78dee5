package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/smartinvest/internal/domain/dto"
)

// AbortWithError attaches err to the context and aborts with a standardized
// ErrorResponse body.
//
// Parameters:
//   - c: the request context.
//   - status: HTTP status to respond with.
//   - message: human readable summary.
//   - err: optional cause, rendered as error_details.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

// ErrorHandler renders errors attached with c.Error when the handler did not
// write a response itself. The status is kept when the handler set one,
// otherwise it is 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	last := c.Errors.Last()
	c.JSON(status, dto.NewErrorResponse(http.StatusText(status), last.Err))
}
