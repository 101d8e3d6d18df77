package middleware

import (
	"net/http"
	"strings"

	"github.com/examhub/examhub/internal/constants"
	domainerrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/repository"
	"github.com/examhub/examhub/internal/service"
	ctxutil "github.com/examhub/examhub/pkg/context"
	"github.com/examhub/examhub/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type JWTMiddleware struct {
	jwtService *service.JWTService
	userRepo   *repository.UserRepository
}

func NewJWTMiddleware(jwtService *service.JWTService, userRepo *repository.UserRepository) *JWTMiddleware {
	return &JWTMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// RequireAuth validates the bearer token and loads the account behind it.
// The user is re-read from the store on every request, so a deleted account
// loses access as soon as the flag is set.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			logger.GetLogger().Warn("Missing Authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			m.reject(c)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != constants.AuthSchemeBearer {
			logger.GetLogger().Warn("Invalid Authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			m.reject(c)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			m.reject(c)
			return
		}

		userID, ok := service.UserIDFromClaims(claims)
		if !ok {
			logger.GetLogger().Warn("Invalid user ID in token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			m.reject(c)
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			logger.GetLogger().Warn("Token user not found",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Uint("user_id", userID),
				zap.Error(err))
			m.reject(c)
			return
		}

		c.Set(constants.GinKeyAuthUser, user)
		c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), user.ID))

		logger.GetLogger().Debug("User authenticated successfully",
			zap.Uint("user_id", user.ID),
			zap.String("email", user.Email),
			zap.String("path", c.Request.URL.Path))

		c.Next()
	}
}

func (m *JWTMiddleware) reject(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(domainerrors.ErrUnauthorized.Message, nil))
	c.Abort()
}
