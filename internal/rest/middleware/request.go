package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the request correlation header
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware assigns each request a correlation id, reusing
// the caller-provided one when present
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	c.Set(HeaderRequestID, requestID)
	c.Header(HeaderRequestID, requestID)

	c.Next()
}
