package router

import (
	"github.com/examhub/examhub/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	{
		// User administration requires an admin account
		users.Use(r.jwtMw.RequireAuth(), middleware.RequireAdmin())
		{
			// List users with pagination and search
			users.GET("", r.userHandler.ListUsers)

			// Get user by ID
			users.GET("/:id", r.userHandler.GetUser)

			// Update user name fields
			users.PATCH("/:id", r.userHandler.UpdateUser)

			// Soft delete user
			users.DELETE("/:id", r.userHandler.DeleteUser)
		}
	}
}
