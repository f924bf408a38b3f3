package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is the user-visible failure of one API operation. Status is the
// HTTP class returned to the caller, Op names the operation that failed.
type Error struct {
	Message string
	Status  int
	Op      string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error without an underlying cause.
func New(message string, status int, op string) *Error {
	return &Error{Message: message, Status: status, Op: op}
}

// Wrap attaches an underlying cause. The cause is never serialized to the
// caller, only the message is.
func Wrap(err error, message string, status int, op string) *Error {
	return &Error{Message: message, Status: status, Op: op, Err: err}
}

// Respond writes err as the JSON error body. Errors that are not *Error
// are reported as a generic 500 without leaking internal detail.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message, "op": appErr.Op})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
