package main

import (
	"skillstream/internal/app"
	"skillstream/pkg/cache"
	"skillstream/pkg/config"
	"skillstream/pkg/database"
	"skillstream/pkg/logger"
	"skillstream/pkg/queue"
	"skillstream/pkg/s3"
)

// @title           SkillStream API
// @version         1.0
// @description     Video learning platform: accounts, video uploads, likes, comments and creator subscriptions.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to redis: %v", err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Fatal("Failed to create S3 client: %v", err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		// Notifications degrade gracefully when the broker is unavailable.
		log.Warn("Failed to connect to RabbitMQ, notifications disabled: %v", err)
		queueClient = nil
	}

	app.Run(cfg, log, db, s3Client, queueClient, redisClient)
}
