package response

import (
	"errors"
	"net/http"

	"equiptrack/internal/domain"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError writes the envelope for a command or query error. Internal errors
// are reported with a generic message.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", err.Error())
	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

type Warning struct {
	Op      string `json:"op"`
	Message string `json:"message"`
}

// Warnings renders persistence warnings for the data.warnings field. The result
// is never nil so clients always see an array.
func Warnings(ws []*domain.PersistenceError) []Warning {
	out := make([]Warning, 0, len(ws))
	for _, w := range ws {
		if w == nil {
			continue
		}
		out = append(out, Warning{Op: w.Op, Message: w.Error()})
	}
	return out
}
