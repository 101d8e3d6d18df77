package router

import (
	"github.com/examhub/examhub/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) questionRoutes(version *gin.RouterGroup) {
	// Paper retrieval for exam takers, filtered by taxonomy ids
	exams := version.Group("/exams")
	exams.Use(r.jwtMw.RequireAuth())
	exams.GET("/questions", r.questionHandler.ListQuestionsForPaper)

	// Question bank administration
	questions := version.Group("/questions")
	{
		questions.Use(r.jwtMw.RequireAuth())

		admin := questions.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", r.questionHandler.CreateQuestion)
			admin.GET("", r.questionHandler.ListQuestions)
			admin.GET("/:id", r.questionHandler.GetQuestion)
			admin.PATCH("/:id", r.questionHandler.UpdateQuestion)
			admin.DELETE("/:id", r.questionHandler.DeleteQuestion)
		}
	}
}
