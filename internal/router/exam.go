package router

import (
	"github.com/examhub/examhub/internal/handler"
	"github.com/examhub/examhub/internal/middleware"
	"github.com/examhub/examhub/internal/model"
	"github.com/gin-gonic/gin"
)

// examRoutes mounts one route group per exam classification. Listing is
// public so the paper picker can populate, everything else is admin only.
func (r *Router) examRoutes(version *gin.RouterGroup) {
	taxonomyRoutes(version, "/exam-names", r.examNameHandler, r.jwtMw)
	taxonomyRoutes(version, "/exam-types", r.examTypeHandler, r.jwtMw)
	taxonomyRoutes(version, "/exam-paper-types", r.examPaperTypeHandler, r.jwtMw)
	taxonomyRoutes(version, "/exam-years", r.examYearHandler, r.jwtMw)
	taxonomyRoutes(version, "/exam-subjects", r.examSubjectHandler, r.jwtMw)
}

func taxonomyRoutes[T model.Taxonomy, PT model.TaxonomyPtr[T]](version *gin.RouterGroup, path string, h *handler.TaxonomyHandler[T, PT], jwtMw *middleware.JWTMiddleware) {
	group := version.Group(path)
	{
		group.GET("", h.List)

		admin := group.Group("")
		admin.Use(jwtMw.RequireAuth(), middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.GET("/:id", h.Get)
			admin.PATCH("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}
