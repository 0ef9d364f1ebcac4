package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appHTTP "skillstream/internal/controller/http"
	"skillstream/internal/repo/persistent"
	"skillstream/internal/usecase"
	"skillstream/pkg/config"
	"skillstream/pkg/jwt"
	"skillstream/pkg/logger"
	"skillstream/pkg/middleware"
	"skillstream/pkg/queue"
	"skillstream/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "skillstream/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	videoRepo := persistent.NewVideoRepository(db)
	engagementRepo := persistent.NewEngagementRepository(db)

	// Initialize use cases
	accountUseCase := usecase.NewAccountUseCase(userRepo, jwtService, s3Client, log)
	videoUseCase := usecase.NewVideoUseCase(videoRepo, engagementRepo, userRepo, s3Client, queueClient, redisClient, log)
	engagementUseCase := usecase.NewEngagementUseCase(engagementRepo, videoRepo, userRepo, redisClient, queueClient, log, cfg.ViewDedupSeconds)
	notificationUseCase := usecase.NewNotificationUseCase(queueClient, redisClient, engagementRepo, log)

	if queueClient != nil {
		if err := notificationUseCase.Start(); err != nil {
			log.Error("Failed to start notification consumer: %v", err)
		}
	}

	// Initialize HTTP handlers
	accountHandler := appHTTP.NewAccountHandler(accountUseCase, notificationUseCase, log)
	videoHandler := appHTTP.NewVideoHandler(videoUseCase, log)
	engagementHandler := appHTTP.NewEngagementHandler(engagementUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := r.Group("/api/v1")
	{
		public.POST("/register", accountHandler.Register)
		public.POST("/login", accountHandler.Login)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		api.GET("/me", accountHandler.Me)
		api.PATCH("/me", accountHandler.UpdateProfile)
		api.POST("/me/avatar", accountHandler.UploadAvatar)
		api.GET("/me/stats", accountHandler.Stats)
		api.GET("/me/notifications", accountHandler.Notifications)
		api.GET("/users/:id", accountHandler.GetUser)

		api.POST("/videos", videoHandler.Upload)
		api.GET("/videos", videoHandler.List)
		api.GET("/videos/:id", videoHandler.Detail)
		api.DELETE("/videos/:id", videoHandler.Delete)
		api.GET("/videos/creator/:creator_id", videoHandler.GetCreatorVideos)
		api.GET("/feed", videoHandler.SubscribedFeed)

		api.POST("/videos/:id/view", engagementHandler.RecordView)
		api.POST("/videos/:id/like", engagementHandler.ToggleLike)
		api.POST("/videos/:id/comments", engagementHandler.AddComment)
		api.GET("/videos/:id/comments", engagementHandler.ListComments)
		api.DELETE("/comments/:id", engagementHandler.DeleteComment)
		api.POST("/subscriptions/:creator_id", engagementHandler.ToggleSubscription)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("SkillStream starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Drain in-flight requests before closing their dependencies
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	log.Info("Server exited")
}
