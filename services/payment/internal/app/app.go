package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fanvault/pkg/config"
	"fanvault/pkg/jwt"
	"fanvault/pkg/logger"
	"fanvault/pkg/middleware"
	"fanvault/pkg/queue"
	paymentHTTP "fanvault/services/payment/internal/controller/http"
	"fanvault/services/payment/internal/provider"
	"fanvault/services/payment/internal/repo/persistent"
	"fanvault/services/payment/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	txManager := persistent.NewTxManager(db)
	orderRepo := persistent.NewOrderRepository(db)
	ledgerRepo := persistent.NewLedgerRepository(db)
	walletRepo := persistent.NewWalletRepository(db)
	entitlementRepo := persistent.NewEntitlementRepository(db)
	settingRepo := persistent.NewSettingRepository(db)

	// Payment provider client
	providerClient := provider.NewTelegramClient(cfg, log)

	// Initialize use cases
	paymentUseCase := usecase.NewPaymentUseCase(
		txManager, orderRepo, ledgerRepo, walletRepo, entitlementRepo, settingRepo,
		providerClient, redisClient, queueClient, cfg.PaymentCurrency, log,
	)

	// Initialize HTTP handlers
	paymentHandler := paymentHTTP.NewPaymentHandler(paymentUseCase, providerClient, log)

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

	// Provider webhook stays outside the JWT group: Telegram is the caller.
	r.POST("/webhooks/telegram", paymentHandler.TelegramWebhook)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		api.POST("/orders", paymentHandler.CreateOrder)
		api.GET("/orders", paymentHandler.GetOrders)
		api.POST("/spend", paymentHandler.Spend)
		api.GET("/wallet", paymentHandler.GetWallet)
		api.GET("/wallet/ledger", paymentHandler.GetLedger)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Payment service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down payment service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

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
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Payment service exited")
}
