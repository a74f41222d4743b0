package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorCase maps a sentinel error to an API error code, HTTP status, and message.
type ErrorCase struct {
	Err     error
	Code    string
	Status  int
	Message string
}

// RespondWithMappedError resolves the provided error against known cases or
// falls back to a generic internal error. Internal error text never reaches
// the client.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	for _, cs := range cases {
		if cs.Err == nil {
			continue
		}
		if errors.Is(err, cs.Err) {
			c.JSON(cs.Status, NewErrorResponse(c, cs.Code, cs.Status, cs.Message))
			return
		}
	}

	c.JSON(http.StatusInternalServerError,
		NewErrorResponse(c, CodeInternalError, http.StatusInternalServerError, "internal error"))
}
