package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/school-api/api/swagger"
	"github.com/noah-isme/school-api/internal/handler"
	"github.com/noah-isme/school-api/internal/middleware"
	"github.com/noah-isme/school-api/internal/repository"
	"github.com/noah-isme/school-api/internal/service"
	"github.com/noah-isme/school-api/pkg/cache"
	"github.com/noah-isme/school-api/pkg/config"
	"github.com/noah-isme/school-api/pkg/database"
	"github.com/noah-isme/school-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-api/pkg/middleware/requestid"
	"github.com/noah-isme/school-api/pkg/validation"
)

// @title School API
// @version 1.0.0
// @description School administration backend: accounts, rosters and grade records
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	validate := validation.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	teacherSubjectRepo := repository.NewTeacherSubjectRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	gradeLevelRepo := repository.NewGradeLevelRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	gradeRepo := repository.NewGradeRepository(db)

	authSvc := service.NewAuthService(userRepo, teacherRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, userRepo, validate, logr)
	teacherSubjectSvc := service.NewTeacherSubjectService(teacherSubjectRepo, teacherRepo, subjectRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, userRepo, gradeLevelRepo, sectionRepo, validate, logr)
	sectionSvc := service.NewSectionService(sectionRepo, gradeLevelRepo, validate, logr)
	gradeLevelSvc := service.NewGradeLevelService(gradeLevelRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, validate, logr)

	var gradeSvc *service.GradeService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		gradeSvc = service.NewGradeService(gradeRepo, studentRepo, subjectRepo, teacherRepo, cacheRepo, cfg.Cache.TTL, metricsSvc, validate, logr)
	} else {
		gradeSvc = service.NewGradeService(gradeRepo, studentRepo, subjectRepo, teacherRepo, nil, 0, metricsSvc, validate, logr)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc, teacherSubjectSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	sectionHandler := handler.NewSectionHandler(sectionSvc)
	gradeLevelHandler := handler.NewGradeLevelHandler(gradeLevelSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	gradeHandler := handler.NewGradeHandler(gradeSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/auth/login", authHandler.Login)

	api := r.Group(cfg.APIPrefix)
	// signup stays open so the first admin account can be bootstrapped
	api.POST("/users/create", userHandler.Create)

	protected := api.Group("", middleware.JWT(authSvc))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/users", userHandler.List)
		protected.GET("/users/by_email", userHandler.GetByEmail)
		protected.PUT("/users/update/:id", userHandler.Update)
		protected.DELETE("/users/:id", userHandler.Delete)

		protected.GET("/teachers", teacherHandler.List)
		protected.GET("/teachers/:id", teacherHandler.Get)
		protected.POST("/teachers/create", teacherHandler.Create)
		protected.PUT("/teachers/update/:id", teacherHandler.Update)
		protected.DELETE("/teachers/:id", teacherHandler.Delete)
		protected.GET("/teachers/:id/subjects", teacherHandler.ListSubjects)
		protected.POST("/teachers/subjects/create", teacherHandler.AssignSubject)
		protected.DELETE("/teachers/:id/subjects/:subject_id", teacherHandler.RemoveSubject)

		protected.GET("/students", studentHandler.List)
		protected.GET("/students/:id", studentHandler.Get)
		protected.GET("/students/by-section/:section_id", studentHandler.ListBySection)
		protected.GET("/students/by-teacher/:teacher_id", studentHandler.ListByTeacher)
		protected.POST("/students/create", studentHandler.Create)
		protected.PUT("/students/update/:id", studentHandler.Update)
		protected.DELETE("/students/:id", studentHandler.Delete)

		protected.GET("/sections", sectionHandler.List)
		protected.GET("/sections/:id", sectionHandler.Get)
		protected.GET("/sections/by-grade-level/:grade_level_id", sectionHandler.ListByGradeLevel)
		protected.POST("/sections/create", sectionHandler.Create)
		protected.PUT("/sections/update/:id", sectionHandler.Update)
		protected.DELETE("/sections/:id", sectionHandler.Delete)

		protected.GET("/grade_levels", gradeLevelHandler.List)
		protected.GET("/grade_levels/:id", gradeLevelHandler.Get)
		protected.POST("/grade_levels/create", gradeLevelHandler.Create)
		protected.PUT("/grade_levels/update/:id", gradeLevelHandler.Update)
		protected.DELETE("/grade_levels/:id", gradeLevelHandler.Delete)

		protected.GET("/subjects", subjectHandler.List)
		protected.GET("/subjects/:id", subjectHandler.Get)
		protected.GET("/subjects/by-code/:code", subjectHandler.GetByCode)
		protected.POST("/subjects/create", subjectHandler.Create)
		protected.PUT("/subjects/update/:id", subjectHandler.Update)
		protected.DELETE("/subjects/:id", subjectHandler.Delete)

		protected.GET("/grades", gradeHandler.List)
		protected.GET("/grades/:id", gradeHandler.Get)
		protected.GET("/grades/by-student/:student_id", gradeHandler.ListByStudent)
		protected.GET("/grades/by-teacher/:teacher_id", gradeHandler.ListByTeacher)
		protected.GET("/grades/report/by-student/:student_id", gradeHandler.StudentReport)
		protected.POST("/grades/create", gradeHandler.Create)
		protected.PUT("/grades/update/:id", gradeHandler.Update)
		protected.DELETE("/grades/:id", gradeHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
