package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/hirehub/internal/models"
)

type CVParser interface {
	ParseCV(ctx context.Context, cvText string) (*models.CVData, error)
}

type cvParser struct {
	llm           TextGenerator
	promptBuilder *PromptBuilder
	log           *zap.Logger
}

func NewCVParser(llm TextGenerator, log *zap.Logger) CVParser {
	if log == nil {
		log = zap.NewNop()
	}
	return &cvParser{llm: llm, promptBuilder: NewPromptBuilder(), log: log}
}

func (p *cvParser) ParseCV(ctx context.Context, cvText string) (*models.CVData, error) {
	if strings.TrimSpace(cvText) == "" {
		return nil, fmt.Errorf("cv text is empty")
	}

	prompt := p.promptBuilder.BuildCVExtractionPrompt(cvText)
	p.log.Debug("📄 Extracting CV", zap.Int("prompt_length", len(prompt)))

	response, err := p.llm.GenerateJSON(ctx, prompt, 0.1)
	if err != nil {
		return nil, fmt.Errorf("failed to extract CV: %w", err)
	}

	var cv models.CVData
	if err := decodeLLMJSON(response, &cv); err != nil {
		return nil, fmt.Errorf("failed to parse CV extraction: %w", err)
	}

	p.log.Debug("✅ CV extracted",
		zap.Int("skills", len(cv.Skills)),
		zap.Int("employment_entries", len(cv.EmploymentHistory)),
	)
	return &cv, nil
}
