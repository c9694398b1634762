package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/uniflow-app/uniflow-api/api/swagger"
	"github.com/uniflow-app/uniflow-api/internal/handler"
	"github.com/uniflow-app/uniflow-api/internal/middleware"
	"github.com/uniflow-app/uniflow-api/internal/repository"
	"github.com/uniflow-app/uniflow-api/internal/service"
	"github.com/uniflow-app/uniflow-api/pkg/cache"
	"github.com/uniflow-app/uniflow-api/pkg/config"
	"github.com/uniflow-app/uniflow-api/pkg/database"
	"github.com/uniflow-app/uniflow-api/pkg/logger"
	corsmiddleware "github.com/uniflow-app/uniflow-api/pkg/middleware/cors"
	reqidmiddleware "github.com/uniflow-app/uniflow-api/pkg/middleware/requestid"
)

// @title UniFlow API
// @version 1.0.0
// @description Personal academic tracker backend
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	metricsSvc := service.NewMetricsService()

	var redisClient *redis.Client
	needsRedis := cfg.Store.Backend == config.StoreBackendRedis || cfg.Dashboard.CacheEnabled
	if needsRedis {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			if cfg.Store.Backend == config.StoreBackendRedis {
				logr.Sugar().Fatalw("redis store unreachable", "error", err)
			}
			logr.Sugar().Warnw("redis unreachable, dashboard cache disabled", "error", err)
		}
	}

	stateRepo, err := buildStateRepository(ctx, cfg, redisClient)
	if err != nil {
		logr.Sugar().Fatalw("failed to init state store", "backend", cfg.Store.Backend, "error", err)
	}

	var cacheSvc *service.CacheService
	if redisClient != nil && cfg.Dashboard.CacheEnabled {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	stateSvc := service.NewStateService(service.StateServiceParams{
		Repo:    stateRepo,
		Cache:   cacheSvc,
		Metrics: metricsSvc,
		Logger:  logr,
	})
	if err := stateSvc.Init(ctx); err != nil {
		logr.Sugar().Fatalw("failed to load state", "error", err)
	}

	authSvc := service.NewAuthService(stateSvc, validator.New(), logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		State:    stateSvc,
		Cache:    cacheSvc,
		Logger:   logr,
		CacheTTL: cfg.Dashboard.CacheTTL,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r, cfg, stateSvc, authSvc, dashboardSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func buildStateRepository(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (service.StateRepository, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		repo := repository.NewPostgresStateRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case config.StoreBackendRedis:
		return repository.NewRedisStateRepository(redisClient), nil
	default:
		return repository.NewFileStateRepository(cfg.Store.Dir)
	}
}

func registerRoutes(r *gin.Engine, cfg *config.Config, stateSvc *service.StateService, authSvc *service.AuthService, dashboardSvc *service.DashboardService) {
	authHandler := handler.NewAuthHandler(authSvc)
	stateHandler := handler.NewStateHandler(stateSvc)
	subjectHandler := handler.NewSubjectHandler(stateSvc)
	attendanceHandler := handler.NewAttendanceHandler(stateSvc)
	holidayHandler := handler.NewHolidayHandler(stateSvc)
	routineHandler := handler.NewRoutineHandler(stateSvc, dashboardSvc)
	userHandler := handler.NewUserHandler(stateSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.POST("/auth/logout", authHandler.Logout)

	protected.GET("/state", stateHandler.Get)
	protected.DELETE("/state", stateHandler.Reset)
	protected.PUT("/state/target", stateHandler.SetTarget)

	protected.GET("/dashboard", dashboardHandler.Summary)

	protected.GET("/subjects", subjectHandler.List)
	protected.POST("/subjects", subjectHandler.Create)
	protected.PUT("/subjects/:id", subjectHandler.Update)
	protected.DELETE("/subjects/:id", subjectHandler.Delete)
	protected.POST("/subjects/:id/syllabus", subjectHandler.AddSyllabusItem)
	protected.PATCH("/subjects/:id/syllabus/:itemId", subjectHandler.ToggleSyllabusItem)
	protected.DELETE("/subjects/:id/syllabus/:itemId", subjectHandler.RemoveSyllabusItem)

	protected.GET("/subjects/:id/attendance", attendanceHandler.List)
	protected.POST("/subjects/:id/attendance", attendanceHandler.Add)
	protected.DELETE("/subjects/:id/attendance/:recordId", attendanceHandler.Remove)

	protected.GET("/holidays", holidayHandler.List)
	protected.POST("/holidays", holidayHandler.Create)
	protected.DELETE("/holidays/:id", holidayHandler.Delete)

	protected.GET("/routine", routineHandler.List)
	protected.GET("/routine/today", routineHandler.Today)
	protected.POST("/routine", routineHandler.Create)
	protected.DELETE("/routine/:id", routineHandler.Delete)

	protected.PUT("/users/me", userHandler.UpdateMe)
}
