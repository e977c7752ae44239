package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catsync/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that rejects request bodies larger
// than maxBytes. Streaming requests without a Content-Length are
// bounded through MaxBytesReader.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(
				"REQUEST_TOO_LARGE",
				"Request body exceeds maximum allowed size",
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
