package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/ultron-crm/assistant-backend/internal/api"
	assistantapi "github.com/ultron-crm/assistant-backend/internal/api/assistant"
	"github.com/ultron-crm/assistant-backend/internal/config"
	"github.com/ultron-crm/assistant-backend/internal/integration/llm"
	"github.com/ultron-crm/assistant-backend/internal/repository"
	"github.com/ultron-crm/assistant-backend/internal/sqlpolicy"
	"github.com/ultron-crm/assistant-backend/internal/usecase/assistant"
	"go.uber.org/zap"
)

// Build constructs every component once and injects it explicitly; the
// pipeline holds no package-level singletons.
func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	orgRepo := repository.NewOrganizationPostgres(db)
	executor := repository.NewQueryExecutorPostgres(db, cfg.DefaultRowLimit, logger)
	logger.Info("Repositories initialized")

	// Initialize generation model connector (with mock support)
	var llmConnector assistant.LLMConnector
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the generation model")
		llmConnector = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using real connector for the generation model")
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
	}

	// Initialize query policy
	policy := sqlpolicy.NewPolicy()

	// Initialize use case
	assistantUC := assistant.NewUsecase(
		llmConnector,
		executor,
		policy,
		cfg.ResponseCacheTTL,
		cfg.DefaultRowLimit,
		logger,
	)
	logger.Info("Use case initialized")

	// Setup API handler and router
	assistantHandler := assistantapi.NewHandler(assistantUC)
	authCache := gocache.New(cfg.AuthCacheTTL, 2*cfg.AuthCacheTTL)
	router := api.SetupRouter(assistantHandler, orgRepo, authCache, cfg.RequestTimeout, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

func setupLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	return cfg.Build()
}
