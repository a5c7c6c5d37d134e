package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/hirehub/internal/models"
)

type JDAnalyzer interface {
	AnalyzeJD(ctx context.Context, jdText string) (*models.JDData, error)
}

type jdAnalyzer struct {
	llm           TextGenerator
	promptBuilder *PromptBuilder
	log           *zap.Logger
}

func NewJDAnalyzer(llm TextGenerator, log *zap.Logger) JDAnalyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &jdAnalyzer{llm: llm, promptBuilder: NewPromptBuilder(), log: log}
}

func (a *jdAnalyzer) AnalyzeJD(ctx context.Context, jdText string) (*models.JDData, error) {
	if strings.TrimSpace(jdText) == "" {
		return nil, fmt.Errorf("job description is empty")
	}

	prompt := a.promptBuilder.BuildJDExtractionPrompt(jdText)
	a.log.Debug("📋 Analyzing job description", zap.Int("prompt_length", len(prompt)))

	response, err := a.llm.GenerateJSON(ctx, prompt, 0.1)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze job description: %w", err)
	}

	var jd models.JDData
	if err := decodeLLMJSON(response, &jd); err != nil {
		return nil, fmt.Errorf("failed to parse job description analysis: %w", err)
	}

	a.log.Debug("✅ Job description analyzed",
		zap.String("position", jd.PositionTitle),
		zap.Int("hard_skills", len(jd.HardSkillsRequired)),
	)
	return &jd, nil
}
