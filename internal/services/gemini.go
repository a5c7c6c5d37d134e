package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"alfredoptarigan/hirehub/internal/logger"
	"alfredoptarigan/hirehub/internal/scoring"
)

const (
	// maxEmbedChars keeps a single input under the embedding model token limit.
	maxEmbedChars = 40000
	// maxEmbedBatch is the largest batch the embedding endpoint accepts.
	maxEmbedBatch = 100
)

// GeminiService generates text and embeddings with the Gemini API.
type GeminiService interface {
	TextGenerator
	scoring.EmbeddingProvider
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	EmbedModel string
	MaxTokens  int32
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	maxTokens  int32
	limiter    *rate.Limiter
	log        *zap.Logger
}

func NewGeminiService(ctx context.Context, cfg GeminiConfig, limiter *rate.Limiter, log *zap.Logger) (GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}

	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}

	return &geminiService{
		client:     client,
		modelName:  cfg.Model,
		embedModel: cfg.EmbedModel,
		maxTokens:  maxTokens,
		limiter:    limiter,
		log:        logger.WithAI(log, "gemini", cfg.Model),
	}, nil
}

func (g *geminiService) Provider() string { return "gemini" }
func (g *geminiService) Model() string    { return g.modelName }

// Embed implements scoring.EmbeddingProvider.
func (g *geminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch implements scoring.EmbeddingProvider. Inputs are sent in
// chunks of maxEmbedBatch and returned in input order.
func (g *geminiService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += maxEmbedBatch {
		end := start + maxEmbedBatch
		if end > len(texts) {
			end = len(texts)
		}

		contents := make([]*genai.Content, 0, end-start)
		for _, text := range texts[start:end] {
			contents = append(contents, genai.NewContentFromText(truncateRunes(text, maxEmbedChars), genai.RoleUser))
		}

		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
		}

		result, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}

		if result == nil || len(result.Embeddings) != len(contents) {
			return nil, fmt.Errorf("embedding result has %d vectors for %d inputs", embeddingCount(result), len(contents))
		}

		for _, e := range result.Embeddings {
			out = append(out, e.Values)
		}
	}

	g.log.Debug("🧮 Embeddings generated", zap.Int("count", len(out)), zap.String("embed_model", g.embedModel))
	return out, nil
}

// truncateRunes cuts s to at most n runes without splitting a character.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}

// GenerateJSON implements TextGenerator.
func (g *geminiService) GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	return g.generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  g.maxTokens,
		ResponseMIMEType: "application/json",
	})
}

func (g *geminiService) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	g.log.Debug("📝 Sending prompt", zap.Int("prompt_length", len(prompt)))

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		g.log.Error("❌ Gemini API error", zap.Error(err))
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	g.log.Debug("📊 Gemini response received",
		zap.Int("response_length", len(text)),
		zap.String("preview", logger.TruncateForLog(text, 200)),
	)

	return text, nil
}
