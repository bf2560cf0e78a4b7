package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	budgetapp "github.com/fintrack/backend/internal/application/budget"
	chatapp "github.com/fintrack/backend/internal/application/chat"
	ledgerapp "github.com/fintrack/backend/internal/application/ledger"
	reportapp "github.com/fintrack/backend/internal/application/report"
	"github.com/fintrack/backend/internal/infrastructure/ai"
	"github.com/fintrack/backend/internal/infrastructure/auth"
	"github.com/fintrack/backend/internal/infrastructure/cache"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/fintrack/backend/internal/infrastructure/logger"
	"github.com/fintrack/backend/internal/infrastructure/persistence"
	"github.com/fintrack/backend/internal/interfaces/http/handler"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/fintrack/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting FinTrack Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Rate-limit counter store: Redis when enabled, in-process otherwise
	var counterStore cache.CounterStore = cache.NewInMemoryCounterStore()
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisCounterStore(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory rate limiting", zap.Error(err))
		} else {
			counterStore = redisStore
			defer func() {
				if err := redisStore.Close(); err != nil {
					log.Error("Error closing redis", zap.Error(err))
				}
			}()
			log.Info("Redis counter store connected")
		}
	}

	// Gemini client for chat generation and embeddings
	aiClient, err := ai.NewClient(context.Background(), cfg.AI)
	if err != nil {
		log.Fatal("Failed to initialize AI client", zap.Error(err))
	}

	// Initialize repositories
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db)
	conversationRepo := persistence.NewGormConversationRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	chunkRepo := persistence.NewGormChunkRepository(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	transactionService := ledgerapp.NewTransactionService(transactionRepo, accountRepo, categoryRepo)
	accountService := ledgerapp.NewAccountService(accountRepo)
	categoryService := ledgerapp.NewCategoryService(categoryRepo)
	budgetService := budgetapp.NewBudgetService(budgetRepo, categoryRepo, transactionRepo)
	reportService := reportapp.NewReportService(transactionRepo, categoryRepo)
	chatService := chatapp.NewChatService(conversationRepo, messageRepo, chunkRepo, aiClient, cfg.AI)

	// Initialize HTTP handlers
	transactionHandler := handler.NewTransactionHandler(transactionService)
	accountHandler := handler.NewAccountHandler(accountService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	reportHandler := handler.NewReportHandler(reportService)
	chatHandler := handler.NewChatHandler(chatService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first: request ID, panic recovery, request
	// logging, security headers, CORS, body limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.HTTP))

	const ingestPath = "/api/v1/ai/ingest"
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize, ingestPath))

	// Health check endpoint (outside API versioning). Anonymous probes are
	// fine; a valid token tags the request logs with the caller.
	engine.GET("/health", middleware.OptionalAuth(jwtService), healthHandler(db))

	// All API routes require authentication. Rate limits are keyed by the
	// authenticated user, so the limiter runs after auth.
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.RequireAuth(jwtService))
	if cfg.HTTP.RateLimitEnabled {
		r.Use(middleware.RateLimit(counterStore, middleware.RateLimitClassGeneral, cfg.HTTP.RateLimitGeneral))
		log.Info("Rate limiting enabled",
			zap.Int("general_requests", cfg.HTTP.RateLimitGeneral.Requests),
			zap.Int("ai_requests", cfg.HTTP.RateLimitAI.Requests),
			zap.Int("admin_requests", cfg.HTTP.RateLimitAdmin.Requests),
		)
	}

	r.Register(transactionHandler).
		Register(accountHandler).
		Register(categoryHandler).
		Register(budgetHandler).
		Register(reportHandler).
		Register(handler.NewSystemHandler(version))

	// AI routes carry tier-specific limits on top of the general one, and
	// ingest accepts larger documents.
	chatMiddleware := handler.ChatRouteMiddleware{}
	if cfg.HTTP.RateLimitEnabled {
		chatMiddleware.Chat = []gin.HandlerFunc{
			middleware.RateLimit(counterStore, middleware.RateLimitClassAI, cfg.HTTP.RateLimitAI),
		}
		chatMiddleware.Ingest = []gin.HandlerFunc{
			middleware.RateLimit(counterStore, middleware.RateLimitClassAdmin, cfg.HTTP.RateLimitAdmin),
		}
	}
	chatMiddleware.Ingest = append(chatMiddleware.Ingest, middleware.BodyLimit(cfg.HTTP.IngestMaxBodySize))
	r.Register(registrarFunc(func(rg *gin.RouterGroup) {
		chatHandler.RegisterRoutesWith(rg, chatMiddleware)
	}))

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// registrarFunc adapts a function to the router.RouteRegistrar interface
type registrarFunc func(rg *gin.RouterGroup)

func (f registrarFunc) RegisterRoutes(rg *gin.RouterGroup) { f(rg) }

// healthHandler reports liveness including database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
