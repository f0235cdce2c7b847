package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cyberwise-server/internal/config"
	"cyberwise-server/internal/handler"
	appLogger "cyberwise-server/internal/logger"
	"cyberwise-server/internal/messaging"
	"cyberwise-server/internal/middleware"
	"cyberwise-server/internal/repository"
	"cyberwise-server/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rabbitmq/amqp091-go"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func main() {
	// .env нужен только для локального запуска, в контейнере его нет.
	_ = godotenv.Load()

	// --- Configuration ---
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	logger, err := appLogger.New(appLogger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel))

	// --- External Connections ---
	pgPool, err := setupPostgres(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()
	zap.L().Info("Connected to PostgreSQL")

	redisClient, err := setupRedis(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	zap.L().Info("Connected to Redis")

	mqConn, err := connectRabbitMQ(cfg.RabbitMQURL, logger)
	if err != nil {
		zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer mqConn.Close()
	zap.L().Info("Connected to RabbitMQ")

	// --- Dependency Injection ---
	scenarioRepo := repository.NewPgScenarioRepository(pgPool, logger)
	achievementRepo := repository.NewPgAchievementRepository(pgPool, logger)
	endingRepo := repository.NewPgEndingRepository(pgPool, logger)
	stateRepo := repository.NewRedisGameStateRepository(redisClient, cfg.SessionTTL, logger)
	resultRepo := repository.NewPgGameResultRepository(pgPool, logger)

	publisher, err := messaging.NewRabbitMQClientUpdatePublisher(mqConn, cfg.ClientUpdatesQueueName)
	if err != nil {
		zap.L().Fatal("Failed to create client update publisher", zap.Error(err))
	}

	gameplaySvc := service.NewGameplayService(
		scenarioRepo,
		achievementRepo,
		endingRepo,
		stateRepo,
		resultRepo,
		publisher,
		logger,
	)
	gameHandler := handler.NewGameHandler(gameplaySvc, logger)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(logger))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	// Configure CORS Middleware
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		zap.L().Info("CORS_ALLOW_ORIGINS not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", handler.SessionIDHeader}
	corsConfig.ExposeHeaders = []string{handler.SessionIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Health Check Endpoint
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Register Application Routes
	gameHandler.RegisterRoutes(router)

	// Prometheus middleware применяем после регистрации роутов.
	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.Port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// setupPostgres initializes the PostgreSQL connection pool with retry logic.
func setupPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout

	var pool *pgxpool.Pool
	var lastErr error
	maxRetries := 50
	retryDelay := 3 * time.Second

	zap.L().Info("Attempting to connect to PostgreSQL", zap.Int("max_retries", maxRetries), zap.Duration("retry_delay", retryDelay))

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		connectCtx, connectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		pool, err = pgxpool.NewWithConfig(connectCtx, poolConfig)
		connectCancel()

		if err != nil {
			lastErr = fmt.Errorf("unable to create postgres connection pool (attempt %d/%d): %w", attempt, maxRetries, err)
			zap.L().Warn("Postgres connection pool creation failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if i < maxRetries-1 {
				time.Sleep(retryDelay)
			}
			continue
		}

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = pool.Ping(pingCtx)
		pingCancel()

		if err == nil {
			zap.L().Info("Successfully connected and pinged PostgreSQL", zap.Int("attempt", attempt))
			return pool, nil
		}

		pool.Close()
		lastErr = fmt.Errorf("unable to ping postgres database (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Postgres ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", maxRetries, lastErr)
}

// setupRedis initializes the Redis client with retry logic.
func setupRedis(cfg *config.Config) (*redis.Client, error) {
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	var client *redis.Client
	var lastErr error
	maxRetries := 50
	retryDelay := 3 * time.Second

	zap.L().Info("Attempting to connect and ping Redis", zap.String("address", redisOpts.Addr), zap.Int("max_retries", maxRetries))

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		client = redis.NewClient(redisOpts)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := client.Ping(pingCtx).Result()
		pingCancel()

		if err == nil {
			zap.L().Info("Successfully connected and pinged Redis", zap.Int("attempt", attempt))
			return client, nil
		}

		client.Close()
		lastErr = fmt.Errorf("unable to ping redis (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Redis ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxRetries, lastErr)
}

// connectRabbitMQ пытается подключиться к RabbitMQ с несколькими попытками.
func connectRabbitMQ(url string, logger *zap.Logger) (*amqp091.Connection, error) {
	var conn *amqp091.Connection
	var err error
	maxRetries := 50
	retryDelay := 5 * time.Second
	logger.Info("Attempting to connect to RabbitMQ",
		zap.Int("max_retries", maxRetries),
		zap.Duration("retry_delay", retryDelay),
	)
	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		conn, err = amqp091.Dial(url)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ", zap.Int("attempt", attempt))
			// Логируем неожиданное закрытие соединения.
			go func() {
				notifyClose := make(chan *amqp091.Error)
				conn.NotifyClose(notifyClose)
				if closeErr := <-notifyClose; closeErr != nil {
					logger.Error("RabbitMQ connection closed unexpectedly", zap.Error(closeErr))
				} else {
					logger.Info("RabbitMQ connection closed gracefully.")
				}
			}()
			return conn, nil
		}
		logger.Warn("RabbitMQ connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}
