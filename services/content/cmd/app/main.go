package main

import (
	"fanvault/pkg/cache"
	"fanvault/pkg/config"
	"fanvault/pkg/database"
	"fanvault/pkg/logger"
	"fanvault/pkg/queue"
	"fanvault/pkg/s3"
	_ "fanvault/services/content/docs" // Swagger docs
	contentApp "fanvault/services/content/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Content Service API
// @version         1.0
// @description     Gated creator content: posts, follows, entitlement-aware feed
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8001
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

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	// Connect to RabbitMQ for publishing notification events
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil // Allow service to start without RabbitMQ
	}

	contentApp.Run(cfg, log, db, s3Client, redisClient, queueClient)
}
