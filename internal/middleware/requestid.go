// Package middleware holds cross-cutting gin middleware.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the request id.
const RequestIDHeader = "X-Request-ID"

// ContextRequestIDKey is the gin context key holding the request id.
const ContextRequestIDKey = "request_id"

// RequestID tags every request with an id, honoring one supplied by the
// caller, and echoes it on the response so log lines and responses can
// be correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
