// Package middleware holds the request-scoped glue: request IDs for
// correlating stage logs with their request, access logging, panic
// recovery, and CORS.
package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags the request with an X-Request-ID, reusing the caller's
// value when one arrives so IDs stay stable across proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger writes one access line per request. The request ID leads the
// line in the same bracketed form the pipeline's own failure logs use,
// so a request can be traced across both.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID, _ := c.Get("request_id")
		log.Printf("[%s] %s %s -> %d (%s)",
			requestID,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// Recovery converts panics into 500 responses so one bad request cannot
// take the process down.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
