package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse lists every violated rule per field so clients can
// tell field errors apart from a flat message.
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

func RespondWithFieldErrors(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Error:  HTTPStatusText(http.StatusBadRequest),
		Fields: fields,
	})
}
