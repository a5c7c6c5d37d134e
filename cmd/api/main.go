package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"alfredoptarigan/hirehub/internal/config"
	"alfredoptarigan/hirehub/internal/handlers"
	"alfredoptarigan/hirehub/internal/logger"
	"alfredoptarigan/hirehub/internal/repositories"
	"alfredoptarigan/hirehub/internal/scoring"
	"alfredoptarigan/hirehub/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize database", zap.Error(err))
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Info("✅ Repositories initialized successfully")

	// Initialize storage
	storageService, err := services.NewStorageService(ctx, services.StorageConfig{
		Driver:     cfg.Storage.Driver,
		UploadPath: cfg.Storage.UploadPath,
		Bucket:     cfg.Storage.S3Bucket,
		Region:     cfg.Storage.S3Region,
		Endpoint:   cfg.Storage.S3Endpoint,
		AccessKey:  cfg.Storage.S3AccessKey,
		SecretKey:  cfg.Storage.S3SecretKey,
	})
	if err != nil {
		log.Fatal("❌ Failed to initialize storage", zap.Error(err))
	}
	log.Info("✅ Storage initialized", zap.String("driver", cfg.Storage.Driver))

	// Initialize AI providers. Both share one limiter.
	limiter := rate.NewLimiter(rate.Limit(cfg.LLM.RequestsPerSec), cfg.LLM.Burst)

	geminiService, err := services.NewGeminiService(ctx, services.GeminiConfig{
		APIKey:     cfg.Gemini.APIKey,
		Model:      cfg.Gemini.Model,
		EmbedModel: cfg.Gemini.EmbedModel,
	}, limiter, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize Gemini AI", zap.Error(err))
	}
	log.Info("✅ Gemini AI initialized successfully")

	var generator services.TextGenerator = geminiService
	if cfg.LLM.Provider == "openrouter" {
		openRouter, err := services.NewOpenRouterService(services.OpenRouterConfig{
			APIKey:  cfg.OpenRouter.APIKey,
			BaseURL: cfg.OpenRouter.BaseURL,
			Model:   cfg.OpenRouter.Model,
			Timeout: cfg.LLM.Timeout,
		}, limiter, log)
		if err != nil {
			log.Fatal("❌ Failed to initialize OpenRouter", zap.Error(err))
		}
		generator = openRouter
	}
	generator = services.NewRetryingGenerator(generator, cfg.Worker.RetryMaxAttempts, cfg.Worker.RetryInitialDelay, log)
	log.Info("✅ LLM provider selected",
		zap.String(logger.FieldProvider, generator.Provider()),
		zap.String(logger.FieldModel, generator.Model()),
	)

	// Embedding cache
	rdb, err := services.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		log.Warn("⚠️ Redis unavailable, embedding cache is in-memory only", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}
	embedder := services.NewCachedEmbedder(geminiService, cfg.Gemini.EmbedModel, rdb, cfg.Embedding.CacheTTL, cfg.Embedding.CacheSize, log)

	scorer := scoring.NewScorer(embedder,
		scoring.WithYearsMode(scoring.ParseYearsMode(cfg.Scoring.YearsMode)),
		scoring.WithLogger(log.Named("scoring")),
	)

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(services.QdrantConfig{
		URL:          cfg.Qdrant.URL,
		APIKey:       cfg.Qdrant.APIKey,
		CVCollection: cfg.Qdrant.CVCollection,
		JDCollection: cfg.Qdrant.JDCollection,
		VectorSize:   cfg.Embedding.Dimension,
	}, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize Qdrant", zap.Error(err))
	}
	if err := qdrantService.InitCollections(ctx); err != nil {
		log.Fatal("❌ Failed to initialize Qdrant collections", zap.Error(err))
	}
	log.Info("✅ Qdrant initialized successfully")

	// Status events
	events := services.NewNoopPublisher()
	if cfg.Events.AMQPURL != "" {
		events, err = services.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("❌ Failed to initialize event publisher", zap.Error(err))
		}
	}
	defer events.Close()

	// Initialize analysis pipeline
	analyzer := services.NewAnalyzerService(services.AnalyzerDeps{
		AnalysisRepo:  analysisRepo,
		DocumentRepo:  docRepo,
		Storage:       storageService,
		Parser:        services.NewDocumentParser(),
		CVParser:      services.NewCVParser(generator, log),
		JDAnalyzer:    services.NewJDAnalyzer(generator, log),
		Embedder:      embedder,
		Vectors:       qdrantService,
		Compatibility: services.NewCompatibilityService(scorer, generator, log),
		LLM:           generator,
		Events:        events,
		Logger:        log,
	})
	artifacts := services.NewArtifactService(analysisRepo, generator, log)
	log.Info("✅ Analyzer service initialized")

	// Initialize worker
	worker := services.NewWorker(analysisRepo, analyzer, services.WorkerConfig{
		Concurrency:  cfg.Worker.Concurrency,
		QueueSize:    cfg.Worker.QueueSize,
		PollInterval: cfg.Worker.PollInterval,
	}, log)
	worker.Start(ctx)
	log.Info("✅ Worker started successfully", zap.Int("concurrency", cfg.Worker.Concurrency))

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HireHub CV Analysis API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.Register(app, handlers.Handlers{
		Upload:    handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize, log),
		Analysis:  handlers.NewAnalysisHandler(analysisRepo, docRepo, worker),
		Score:     handlers.NewScoreHandler(scorer),
		Artifacts: handlers.NewArtifactHandler(artifacts),
	})
	log.Info("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		cancel()
		worker.Stop()
		hits, misses := embedder.Stats()
		log.Info("📊 Embedding cache stats", zap.Int64("hits", hits), zap.Int64("misses", misses))
		if err := app.Shutdown(); err != nil {
			log.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("❌ Failed to start server", zap.Error(err))
	}
}
