package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/hirehub/internal/logger"
	"alfredoptarigan/hirehub/internal/models"
	"alfredoptarigan/hirehub/internal/repositories"
)

// ArtifactService generates the documents that follow a completed analysis.
type ArtifactService interface {
	SubmitAnswers(ctx context.Context, analysisID uuid.UUID, answers []models.Answer) (*models.OptimizedCV, error)
	GenerateCoverLetter(ctx context.Context, analysisID uuid.UUID, tone string) (*models.CoverLetter, error)
	// LearningPath and InterviewPrep are generated once and then served
	// from the analysis row.
	LearningPath(ctx context.Context, analysisID uuid.UUID) (*models.LearningPath, error)
	InterviewPrep(ctx context.Context, analysisID uuid.UUID) (*models.InterviewPrep, error)
}

type artifactService struct {
	analysisRepo  repositories.AnalysisRepository
	llm           TextGenerator
	promptBuilder *PromptBuilder
	now           func() time.Time
	log           *zap.Logger
}

func NewArtifactService(analysisRepo repositories.AnalysisRepository, llm TextGenerator, log *zap.Logger) ArtifactService {
	return &artifactService{
		analysisRepo:  analysisRepo,
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		now:           time.Now,
		log:           logger.OrNop(log),
	}
}

func (s *artifactService) completed(analysisID uuid.UUID) (*models.Analysis, error) {
	analysis, err := s.analysisRepo.FindByID(analysisID)
	if err != nil {
		return nil, err
	}
	if analysis.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: status is %s", ErrAnalysisNotReady, analysis.Status)
	}
	return analysis, nil
}

func (s *artifactService) SubmitAnswers(ctx context.Context, analysisID uuid.UUID, answers []models.Answer) (*models.OptimizedCV, error) {
	analysis, err := s.completed(analysisID)
	if err != nil {
		return nil, err
	}

	var questions []models.Question
	if err := analysis.Questions.Decode(&questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	qa, err := formatAnswers(questions, answers)
	if err != nil {
		return nil, err
	}

	answersJSON, err := models.NewJSON(answers)
	if err != nil {
		return nil, err
	}
	if err := s.analysisRepo.SaveArtifact(analysisID, repositories.ArtifactAnswers, answersJSON); err != nil {
		return nil, fmt.Errorf("failed to save answers: %w", err)
	}

	prompt := s.promptBuilder.BuildOptimizedCVPrompt(string(analysis.CVParsed), string(analysis.JDParsed), qa)

	var optimized models.OptimizedCV
	if err := s.generate(ctx, analysisID, "optimized CV", prompt, 0.4, &optimized); err != nil {
		return nil, err
	}
	if err := s.save(analysisID, repositories.ArtifactOptimizedCV, optimized); err != nil {
		return nil, err
	}
	return &optimized, nil
}

// formatAnswers pairs each answer with its question. Answers must reference
// an existing question at most once and may not be blank.
func formatAnswers(questions []models.Question, answers []models.Answer) (string, error) {
	if len(answers) == 0 {
		return "", fmt.Errorf("%w: at least one answer is required", ErrInvalidAnswers)
	}

	seen := make(map[int]bool, len(answers))
	var b strings.Builder
	for _, a := range answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(questions) {
			return "", fmt.Errorf("%w: question_index %d out of range", ErrInvalidAnswers, a.QuestionIndex)
		}
		if seen[a.QuestionIndex] {
			return "", fmt.Errorf("%w: question_index %d answered twice", ErrInvalidAnswers, a.QuestionIndex)
		}
		if strings.TrimSpace(a.Answer) == "" {
			return "", fmt.Errorf("%w: answer to question %d is empty", ErrInvalidAnswers, a.QuestionIndex)
		}
		seen[a.QuestionIndex] = true
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", questions[a.QuestionIndex].Question, strings.TrimSpace(a.Answer))
	}
	return strings.TrimSpace(b.String()), nil
}

func (s *artifactService) GenerateCoverLetter(ctx context.Context, analysisID uuid.UUID, tone string) (*models.CoverLetter, error) {
	analysis, err := s.completed(analysisID)
	if err != nil {
		return nil, err
	}

	date := s.now().Format("January 2, 2006")
	prompt := s.promptBuilder.BuildCoverLetterPrompt(string(analysis.CVParsed), string(analysis.JDParsed), string(analysis.Strengths), tone, date)

	var letter models.CoverLetter
	if err := s.generate(ctx, analysisID, "cover letter", prompt, 0.7, &letter); err != nil {
		return nil, err
	}
	if letter.Date == "" {
		letter.Date = date
	}
	if err := s.save(analysisID, repositories.ArtifactCoverLetter, letter); err != nil {
		return nil, err
	}
	return &letter, nil
}

func (s *artifactService) LearningPath(ctx context.Context, analysisID uuid.UUID) (*models.LearningPath, error) {
	analysis, err := s.completed(analysisID)
	if err != nil {
		return nil, err
	}

	var path models.LearningPath
	if !analysis.LearningPath.IsEmpty() {
		if err := analysis.LearningPath.Decode(&path); err != nil {
			return nil, fmt.Errorf("failed to decode learning path: %w", err)
		}
		return &path, nil
	}

	prompt := s.promptBuilder.BuildLearningPathPrompt(string(analysis.CVParsed), string(analysis.JDParsed), string(analysis.Gaps))
	if err := s.generate(ctx, analysisID, "learning path", prompt, 0.5, &path); err != nil {
		return nil, err
	}
	if err := s.save(analysisID, repositories.ArtifactLearningPath, path); err != nil {
		return nil, err
	}
	return &path, nil
}

func (s *artifactService) InterviewPrep(ctx context.Context, analysisID uuid.UUID) (*models.InterviewPrep, error) {
	analysis, err := s.completed(analysisID)
	if err != nil {
		return nil, err
	}

	var prep models.InterviewPrep
	if !analysis.InterviewPrep.IsEmpty() {
		if err := analysis.InterviewPrep.Decode(&prep); err != nil {
			return nil, fmt.Errorf("failed to decode interview prep: %w", err)
		}
		return &prep, nil
	}

	prompt := s.promptBuilder.BuildInterviewPrepPrompt(string(analysis.CVParsed), string(analysis.JDParsed), string(analysis.Gaps))
	if err := s.generate(ctx, analysisID, "interview prep", prompt, 0.5, &prep); err != nil {
		return nil, err
	}
	if err := s.save(analysisID, repositories.ArtifactInterviewPrep, prep); err != nil {
		return nil, err
	}
	return &prep, nil
}

func (s *artifactService) generate(ctx context.Context, analysisID uuid.UUID, what, prompt string, temperature float32, target interface{}) error {
	log := s.log.With(zap.String(logger.FieldAnalysisID, analysisID.String()))
	log.Info("🤖 Generating "+what, zap.Int("prompt_length", len(prompt)))

	response, err := s.llm.GenerateJSON(ctx, prompt, temperature)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", what, err)
	}
	if err := decodeLLMJSON(response, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", what, err)
	}
	return nil
}

func (s *artifactService) save(analysisID uuid.UUID, artifact repositories.Artifact, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", artifact, err)
	}
	if err := s.analysisRepo.SaveArtifact(analysisID, artifact, models.JSON(raw)); err != nil {
		return fmt.Errorf("failed to save %s: %w", artifact, err)
	}
	return nil
}
