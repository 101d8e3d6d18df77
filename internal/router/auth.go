package router

import "github.com/gin-gonic/gin"

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)
		auth.GET("/activate", r.authHandler.Activate)
		auth.PATCH("/forget", r.authHandler.Forget)
		auth.GET("/reset/:reset_password_code", r.authHandler.ActivateResetPassword)

		// Protected routes (JWT authentication required)
		protected := auth.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.GET("/me", r.userHandler.Me)
			protected.PATCH("/profile", r.userHandler.UpdateProfile)
			protected.PATCH("/password", r.authHandler.ResetPassword)
			protected.PATCH("/change", r.authHandler.ChangePassword)
			protected.POST("/avatar", r.authHandler.UploadAvatar)

			// Attempt records, always scoped to the caller
			records := protected.Group("/records")
			{
				records.POST("", r.recordHandler.CreateRecord)
				records.GET("", r.recordHandler.ListRecords)
				records.GET("/:id", r.recordHandler.GetRecord)
				records.PATCH("/:id", r.recordHandler.UpdateRecord)
			}
		}
	}
}
