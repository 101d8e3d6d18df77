package router

import (
	"time"

	"github.com/examhub/examhub/config"
	"github.com/examhub/examhub/internal/handler"
	"github.com/examhub/examhub/internal/middleware"
	"github.com/examhub/examhub/internal/model"
	redisclient "github.com/examhub/examhub/pkg/redis"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	recordHandler   *handler.RecordHandler
	questionHandler *handler.QuestionHandler
	healthHandler   *handler.HealthHandler

	examNameHandler      *handler.TaxonomyHandler[model.ExamName, *model.ExamName]
	examTypeHandler      *handler.TaxonomyHandler[model.ExamType, *model.ExamType]
	examPaperTypeHandler *handler.TaxonomyHandler[model.ExamPaperType, *model.ExamPaperType]
	examYearHandler      *handler.TaxonomyHandler[model.ExamYear, *model.ExamYear]
	examSubjectHandler   *handler.TaxonomyHandler[model.ExamSubject, *model.ExamSubject]

	jwtMw       *middleware.JWTMiddleware
	redisClient *redisclient.Client
	Config      *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	record *handler.RecordHandler,
	question *handler.QuestionHandler,
	health *handler.HealthHandler,

	examName *handler.TaxonomyHandler[model.ExamName, *model.ExamName],
	examType *handler.TaxonomyHandler[model.ExamType, *model.ExamType],
	examPaperType *handler.TaxonomyHandler[model.ExamPaperType, *model.ExamPaperType],
	examYear *handler.TaxonomyHandler[model.ExamYear, *model.ExamYear],
	examSubject *handler.TaxonomyHandler[model.ExamSubject, *model.ExamSubject],

	jwtMw *middleware.JWTMiddleware,
	redisClient *redisclient.Client,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:     auth,
		userHandler:     user,
		recordHandler:   record,
		questionHandler: question,
		healthHandler:   health,

		examNameHandler:      examName,
		examTypeHandler:      examType,
		examPaperTypeHandler: examPaperType,
		examYearHandler:      examYear,
		examSubjectHandler:   examSubject,

		jwtMw:       jwtMw,
		redisClient: redisClient,
		Config:      cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestContext())
	router.Use(middleware.CORSMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.BasicHealth)
		api.GET("/health/detailed", r.healthHandler.HealthCheck)

		v1 := api.Group("/v1")
		{
			v1.Use(r.rateLimit())

			r.authRoutes(v1)
			r.userRoutes(v1)
			r.examRoutes(v1)
			r.questionRoutes(v1)
		}
	}

	return router
}

// rateLimit picks the shared redis counter when redis is configured and the
// in-memory sliding window otherwise.
func (r *Router) rateLimit() gin.HandlerFunc {
	maxRequest := r.Config.RateLimit.Request
	duration := time.Duration(r.Config.RateLimit.Duration) * time.Second

	if r.redisClient != nil {
		return middleware.RateLimitWithRedis(r.redisClient, maxRequest, duration)
	}
	return middleware.RateLimit(maxRequest, duration)
}
