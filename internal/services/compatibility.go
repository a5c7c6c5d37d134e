package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/hirehub/internal/models"
	"alfredoptarigan/hirehub/internal/scoring"
)

// CompatibilityReport pairs the deterministic score with LLM commentary.
type CompatibilityReport struct {
	Result   scoring.OverallScoreResult
	Insights models.Insights
}

type CompatibilityService interface {
	Analyze(ctx context.Context, cv *models.CVData, jd *models.JDData, ragContext string) (*CompatibilityReport, error)
}

type compatibilityService struct {
	scorer        *scoring.Scorer
	llm           TextGenerator
	promptBuilder *PromptBuilder
	log           *zap.Logger
}

func NewCompatibilityService(scorer *scoring.Scorer, llm TextGenerator, log *zap.Logger) CompatibilityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &compatibilityService{
		scorer:        scorer,
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		log:           log,
	}
}

// Analyze scores the pair, then asks the LLM to explain the score. A failed
// or unparsable explanation yields empty insights; the score is kept.
func (s *compatibilityService) Analyze(ctx context.Context, cv *models.CVData, jd *models.JDData, ragContext string) (*CompatibilityReport, error) {
	if cv == nil || jd == nil {
		return nil, &scoring.InputError{Field: "analysis", Reason: "parsed CV and job description are required"}
	}

	result, err := s.scorer.ComputeCompatibility(ctx, cv.ToScoring(), jd.ToScoring())
	if err != nil {
		return nil, fmt.Errorf("failed to compute compatibility: %w", err)
	}

	s.log.Info("🎯 Compatibility score computed", zap.Int("overall_score", result.OverallScore))

	return &CompatibilityReport{
		Result:   *result,
		Insights: s.insights(ctx, cv, jd, result, ragContext),
	}, nil
}

func (s *compatibilityService) insights(ctx context.Context, cv *models.CVData, jd *models.JDData, result *scoring.OverallScoreResult, ragContext string) models.Insights {
	empty := models.Insights{}.Normalize()

	cvJSON, _ := json.Marshal(cv)
	jdJSON, _ := json.Marshal(jd)
	breakdownJSON, _ := json.MarshalIndent(result.Breakdown, "", "  ")

	prompt := s.promptBuilder.BuildInsightsPrompt(string(cvJSON), string(jdJSON), string(breakdownJSON), result.OverallScore, ragContext)

	response, err := s.llm.GenerateJSON(ctx, prompt, 0.3)
	if err != nil {
		s.log.Warn("⚠️ Insights generation failed, returning score only", zap.Error(err))
		return empty
	}

	insights, err := parseInsights(response)
	if err != nil {
		s.log.Warn("⚠️ Insights response unusable, returning score only", zap.Error(err))
		return empty
	}

	return insights
}
