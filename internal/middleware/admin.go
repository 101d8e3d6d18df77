package middleware

import (
	"net/http"

	"github.com/examhub/examhub/internal/constants"
	domainerrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/model"
	"github.com/examhub/examhub/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAdmin gates a route to admin accounts. It must run after
// RequireAuth, which loads the authenticated user.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := AuthUser(c)
		if user == nil || !user.IsAdmin() {
			logger.GetLogger().Warn("Admin access denied",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(domainerrors.ErrUnauthorized.Message, nil))
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthUser returns the authenticated user loaded by RequireAuth, or nil
func AuthUser(c *gin.Context) *model.User {
	value, exists := c.Get(constants.GinKeyAuthUser)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
