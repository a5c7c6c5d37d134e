package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("SCORING_YEARS_MODE", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "duration", cfg.Scoring.YearsMode)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, 10*time.Second, cfg.Worker.PollInterval)
	assert.Equal(t, uint64(768), cfg.Embedding.Dimension)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_PROVIDER", "OpenRouter")
	t.Setenv("LLM_REQUESTS_PER_SEC", "2.5")
	t.Setenv("WORKER_CONCURRENCY", "7")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("EMBEDDING_CACHE_TTL", "90m")
	t.Setenv("STORAGE_DRIVER", "S3")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "openrouter", cfg.LLM.Provider)
	assert.Equal(t, 2.5, cfg.LLM.RequestsPerSec)
	assert.Equal(t, 7, cfg.Worker.Concurrency)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 90*time.Minute, cfg.Embedding.CacheTTL)
	assert.Equal(t, "s3", cfg.Storage.Driver)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_CONCURRENCY", "many")
	t.Setenv("LOG_DEBUG", "sometimes")
	t.Setenv("RETRY_INITIAL_DELAY", "soon")

	cfg := Load()

	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.False(t, cfg.Log.Debug)
	assert.Equal(t, 2*time.Second, cfg.Worker.RetryInitialDelay)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5433", User: "u", Password: "p", DBName: "n",
	}}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=disable", cfg.GetDatabaseDSN())
}
