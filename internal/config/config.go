package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Qdrant     QdrantConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	LLM        LLMConfig
	Embedding  EmbeddingConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Events     EventsConfig
	Worker     WorkerConfig
	Scoring    ScoringConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL          string
	APIKey       string
	CVCollection string
	JDCollection string
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	EmbedModel string
}

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type LLMConfig struct {
	// Provider is "gemini" or "openrouter". Embeddings always come from Gemini.
	Provider       string
	RequestsPerSec float64
	Burst          int
	Timeout        time.Duration
}

type EmbeddingConfig struct {
	Dimension uint64
	CacheTTL  time.Duration
	CacheSize int
}

type RedisConfig struct {
	URL string
}

type StorageConfig struct {
	Driver      string
	UploadPath  string
	MaxFileSize int64
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

type WorkerConfig struct {
	Concurrency       int
	QueueSize         int
	PollInterval      time.Duration
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

type ScoringConfig struct {
	YearsMode string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "hirehub"),
		},
		Qdrant: QdrantConfig{
			URL:          getEnv("QDRANT_URL", "http://localhost:6334"),
			APIKey:       getEnv("QDRANT_API_KEY", ""),
			CVCollection: getEnv("QDRANT_CV_COLLECTION", "cv_embeddings"),
			JDCollection: getEnv("QDRANT_JD_COLLECTION", "jd_embeddings"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:  getEnv("OPENROUTER_API_KEY", ""),
			BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:   getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
		},
		LLM: LLMConfig{
			Provider:       strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
			RequestsPerSec: getEnvAsFloat("LLM_REQUESTS_PER_SEC", 5),
			Burst:          getEnvAsInt("LLM_BURST", 5),
			Timeout:        getEnvAsDuration("LLM_TIMEOUT", "60s"),
		},
		Embedding: EmbeddingConfig{
			Dimension: uint64(getEnvAsInt64("EMBEDDING_DIMENSION", 768)),
			CacheTTL:  getEnvAsDuration("EMBEDDING_CACHE_TTL", "24h"),
			CacheSize: getEnvAsInt("EMBEDDING_CACHE_SIZE", 10000),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3Region:    getEnv("S3_REGION", "auto"),
			S3Endpoint:  getEnv("S3_ENDPOINT", ""),
			S3AccessKey: getEnv("S3_ACCESS_KEY_ID", ""),
			S3SecretKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		},
		Events: EventsConfig{
			AMQPURL:  getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "analysis_updates"),
		},
		Worker: WorkerConfig{
			Concurrency:       getEnvAsInt("WORKER_CONCURRENCY", 3),
			QueueSize:         getEnvAsInt("WORKER_QUEUE_SIZE", 100),
			PollInterval:      getEnvAsDuration("WORKER_POLL_INTERVAL", "10s"),
			RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
		},
		Scoring: ScoringConfig{
			YearsMode: getEnv("SCORING_YEARS_MODE", "duration"),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
