package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/hirehub/internal/logger"
)

// TextGenerator is a chat model that answers a single prompt with JSON.
type TextGenerator interface {
	// GenerateJSON asks the model for a bare JSON document.
	GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error)
	Provider() string
	Model() string
}

type retryingGenerator struct {
	next         TextGenerator
	maxAttempts  int
	initialDelay time.Duration
	log          *zap.Logger
}

// NewRetryingGenerator retries failed calls with exponential backoff,
// starting at initialDelay. Context cancellation stops it immediately.
func NewRetryingGenerator(next TextGenerator, maxAttempts int, initialDelay time.Duration, log *zap.Logger) TextGenerator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &retryingGenerator{
		next:         next,
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
		log:          logger.WithAI(log, next.Provider(), next.Model()),
	}
}

func (r *retryingGenerator) Provider() string { return r.next.Provider() }
func (r *retryingGenerator) Model() string    { return r.next.Model() }

func (r *retryingGenerator) GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	return r.do(ctx, func() (string, error) {
		return r.next.GenerateJSON(ctx, prompt, temperature)
	})
}

func (r *retryingGenerator) do(ctx context.Context, call func() (string, error)) (string, error) {
	var lastErr error
	delay := r.initialDelay

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		result, err := call()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		r.log.Warn("⚠️ LLM attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("failed after %d attempts: %w", r.maxAttempts, lastErr)
}
