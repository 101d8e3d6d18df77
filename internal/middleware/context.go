package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/examhub/examhub/internal/constants"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestContext seeds every request with a correlation ID and tracking
// metadata. An incoming X-Request-ID is honored so IDs survive proxies;
// otherwise a fresh one is generated. The ID is echoed back in the response.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, ctxutil.RequestIDKey, requestID)
		ctx = context.WithValue(ctx, ctxutil.ClientIPKey, c.ClientIP())
		ctx = context.WithValue(ctx, ctxutil.UserAgentKey, c.GetHeader(constants.HeaderUserAgent))
		ctx = context.WithValue(ctx, ctxutil.StartTimeKey, time.Now())

		c.Header(constants.HeaderXRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)

		logger.InfoWithContext(ctx, "Request started").
			Method(c.Request.Method).
			Path(c.Request.URL.Path).
			Log()

		c.Next()

		logger.InfoWithContext(ctx, "Request completed").
			Method(c.Request.Method).
			Path(c.Request.URL.Path).
			StatusCode(c.Writer.Status()).
			Duration(ctxutil.GetDuration(ctx)).
			Log()
	}
}

// RequestTimeout bounds every request with a deadline
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := ctxutil.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		select {
		case <-ctx.Done():
			logger.WarnWithContext(ctx, "Request timeout before processing").
				Duration(timeout).
				Log()
			c.JSON(http.StatusRequestTimeout, gin.H{
				"message": "Request timeout",
			})
			c.Abort()
			return
		default:
			c.Next()
		}
	}
}
