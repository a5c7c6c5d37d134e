package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"alfredoptarigan/hirehub/internal/logger"
)

const openRouterSystemPrompt = "You are an expert career advisor and technical recruiter. Follow the requested output format exactly."

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenRouterService talks to an OpenAI-compatible chat completions endpoint.
type OpenRouterService struct {
	client  *resty.Client
	model   string
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewOpenRouterService(cfg OpenRouterConfig, limiter *rate.Limiter, log *zap.Logger) (*OpenRouterService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter api key is required")
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &OpenRouterService{
		client:  client,
		model:   cfg.Model,
		limiter: limiter,
		log:     logger.WithAI(log, "openrouter", cfg.Model),
	}, nil
}

func (s *OpenRouterService) Provider() string { return "openrouter" }
func (s *OpenRouterService) Model() string    { return s.model }

func (s *OpenRouterService) GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	body := map[string]interface{}{
		"model":       s.model,
		"temperature": temperature,
		"messages": []map[string]string{
			{"role": "system", "content": openRouterSystemPrompt},
			{"role": "user", "content": prompt},
		},
		"response_format": map[string]string{"type": "json_object"},
	}

	s.log.Debug("📝 Sending prompt", zap.Int("prompt_length", len(prompt)))

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to call openrouter: %w", err)
	}

	raw := resp.String()
	if resp.IsError() {
		msg := gjson.Get(raw, "error.message").String()
		if msg == "" {
			msg = logger.TruncateForLog(raw, 200)
		}
		return "", fmt.Errorf("openrouter returned %d: %s", resp.StatusCode(), msg)
	}

	text := strings.TrimSpace(gjson.Get(raw, "choices.0.message.content").String())
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}

	s.log.Debug("📊 OpenRouter response received",
		zap.Int("response_length", len(text)),
		zap.Int64("total_tokens", gjson.Get(raw, "usage.total_tokens").Int()),
	)

	return text, nil
}
