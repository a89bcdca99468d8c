package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/ultron-crm/assistant-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr     string        `env:"SERVER_ADDR,notEmpty"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// Database configuration
	DatabaseURL         string               `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int                  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int                  `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration        `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration        `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration        `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBStartupRetry      pkgRetry.RetryConfig `envPrefix:"DB_STARTUP_RETRY_"`

	// Generation model configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Pipeline configuration
	DefaultRowLimit  int           `env:"DEFAULT_ROW_LIMIT" envDefault:"100"`
	AuthCacheTTL     time.Duration `env:"AUTH_CACHE_TTL" envDefault:"5m"`
	ResponseCacheTTL time.Duration `env:"RESPONSE_CACHE_TTL" envDefault:"60s"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConnectorConfig configures the hosted generation model client.
type LLMConnectorConfig struct {
	HTTPClientConfig
	ChatCompletionsEndpoint string  `env:"CHAT_COMPLETIONS_ENDPOINT" envDefault:"/v1/chat/completions"`
	Model                   string  `env:"MODEL,notEmpty"`
	Temperature             float64 `env:"TEMPERATURE" envDefault:"0"`
	MaxTokens               int     `env:"MAX_TOKENS" envDefault:"512"`
	HistoryTurns            int     `env:"HISTORY_TURNS" envDefault:"4"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}
	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.DefaultRowLimit < 1 || cfg.DefaultRowLimit > 1000 {
		return fmt.Errorf("DEFAULT_ROW_LIMIT must be between 1 and 1000, got %d", cfg.DefaultRowLimit)
	}
	if cfg.LLMConnectorCfg.MaxTokens < 64 || cfg.LLMConnectorCfg.MaxTokens > 4096 {
		return fmt.Errorf("LLM_MAX_TOKENS must be between 64 and 4096, got %d", cfg.LLMConnectorCfg.MaxTokens)
	}
	if cfg.LLMConnectorCfg.HistoryTurns < 0 || cfg.LLMConnectorCfg.HistoryTurns > 20 {
		return fmt.Errorf("LLM_HISTORY_TURNS must be between 0 and 20, got %d", cfg.LLMConnectorCfg.HistoryTurns)
	}
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
