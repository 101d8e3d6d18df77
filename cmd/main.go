package main

import (
	"os"
	"os/signal"
	"syscall"

	configs "github.com/examhub/examhub/config"
	"github.com/examhub/examhub/internal/constants"
	"github.com/examhub/examhub/internal/handler"
	"github.com/examhub/examhub/internal/middleware"
	"github.com/examhub/examhub/internal/model"
	"github.com/examhub/examhub/internal/repository"
	"github.com/examhub/examhub/internal/router"
	"github.com/examhub/examhub/internal/service"
	"github.com/examhub/examhub/pkg/database"
	"github.com/examhub/examhub/pkg/logger"
	"github.com/examhub/examhub/pkg/mailer"
	redisclient "github.com/examhub/examhub/pkg/redis"
	"github.com/examhub/examhub/pkg/uploader"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 10,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// Run auto migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Seed initial data, existing data is not an error
	if err := database.Seed(db); err != nil {
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	} else {
		logger.GetLogger().Info("Database seeded successfully")
	}

	// Optional redis backed rate limiting
	var redisClient *redisclient.Client
	if config.Redis.Enabled {
		redisClient, err = redisclient.NewClient(config)
		if err != nil {
			logger.GetLogger().Warn("Redis unavailable, falling back to in-memory rate limiting", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	examNameRepo := repository.NewTaxonomyRepository[model.ExamName](db, "exam name")
	examTypeRepo := repository.NewTaxonomyRepository[model.ExamType](db, "exam type")
	examPaperTypeRepo := repository.NewTaxonomyRepository[model.ExamPaperType](db, "exam paper type")
	examYearRepo := repository.NewTaxonomyRepository[model.ExamYear](db, "exam year")
	examSubjectRepo := repository.NewTaxonomyRepository[model.ExamSubject](db, "exam subject")

	// Outbound integrations, both optional
	var mailSvc service.Mailer
	if config.Mail.Enabled {
		mailSvc = mailer.NewMailer(config)
		logger.GetLogger().Info("SMTP mailer enabled", zap.String("host", config.Mail.SMTPHost))
	}

	var uploadSvc service.Uploader
	if config.Cloudinary.Enabled {
		cld, err := uploader.NewCloudinary(config.Cloudinary.URL)
		if err != nil {
			logger.GetLogger().Fatal("Failed to initialize cloudinary", zap.Error(err))
		}
		uploadSvc = cld
		logger.GetLogger().Info("Cloudinary uploader enabled")
	}

	// Services
	jwtService := service.NewJWTService(config.JWT.Secret, config.JWT.ExpirationTime)
	authService := service.NewAuthService(userRepo, jwtService, mailSvc, uploadSvc, config.JWT.ResetCodeTTL)
	userService := service.NewUserService(userRepo)
	recordService := service.NewRecordService(recordRepo)
	questionService := service.NewQuestionService(questionRepo)

	// A disabled redis must leave the interface nil, not a typed nil
	var taxonomyCache service.Cache
	if redisClient != nil {
		taxonomyCache = redisClient
	}

	examNameService := service.NewTaxonomyService[model.ExamName, *model.ExamName](examNameRepo, taxonomyCache, "exam name")
	examTypeService := service.NewTaxonomyService[model.ExamType, *model.ExamType](examTypeRepo, taxonomyCache, "exam type")
	examPaperTypeService := service.NewTaxonomyService[model.ExamPaperType, *model.ExamPaperType](examPaperTypeRepo, taxonomyCache, "exam paper type")
	examYearService := service.NewTaxonomyService[model.ExamYear, *model.ExamYear](examYearRepo, taxonomyCache, "exam year")
	examSubjectService := service.NewTaxonomyService[model.ExamSubject, *model.ExamSubject](examSubjectRepo, taxonomyCache, "exam subject")

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, config)
	recordHandler := handler.NewRecordHandler(recordService, config)
	questionHandler := handler.NewQuestionHandler(questionService, config)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	examNameHandler := handler.NewTaxonomyHandler[model.ExamName, *model.ExamName](examNameService, config, "exam name")
	examTypeHandler := handler.NewTaxonomyHandler[model.ExamType, *model.ExamType](examTypeService, config, "exam type")
	examPaperTypeHandler := handler.NewTaxonomyHandler[model.ExamPaperType, *model.ExamPaperType](examPaperTypeService, config, "exam paper type")
	examYearHandler := handler.NewTaxonomyHandler[model.ExamYear, *model.ExamYear](examYearService, config, "exam year")
	examSubjectHandler := handler.NewTaxonomyHandler[model.ExamSubject, *model.ExamSubject](examSubjectService, config, "exam subject")

	jwtMiddleware := middleware.NewJWTMiddleware(jwtService, userRepo)

	r := router.NewRouter(
		authHandler,
		userHandler,
		recordHandler,
		questionHandler,
		healthHandler,

		examNameHandler,
		examTypeHandler,
		examPaperTypeHandler,
		examYearHandler,
		examSubjectHandler,

		jwtMiddleware,
		redisClient,
		config,
	).SetupRoutes()

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := r.Run(":" + config.App.Port); err != nil {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")
}
