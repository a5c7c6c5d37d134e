package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/hirehub/internal/models"
	"alfredoptarigan/hirehub/internal/repositories"
)

func completedAnalysis(t *testing.T) *models.Analysis {
	t.Helper()
	questions, err := models.NewJSON([]models.Question{
		{Question: "Have you used Kubernetes?", Category: "skills", Priority: "high"},
		{Question: "Did you lead a team?", Category: "experience", Priority: "medium"},
	})
	require.NoError(t, err)
	return &models.Analysis{
		ID:        uuid.New(),
		Status:    models.StatusCompleted,
		CVParsed:  models.JSON(testCVJSON),
		JDParsed:  models.JSON(`{"position_title":"Senior Go Engineer"}`),
		Gaps:      models.JSON(`[{"gap":"Kubernetes","priority":"high","impact":"deploys"}]`),
		Strengths: models.JSON(`["Go"]`),
		Questions: questions,
	}
}

func TestArtifactsRequireCompletedAnalysis(t *testing.T) {
	analysis := &models.Analysis{ID: uuid.New(), Status: models.StatusProcessing}
	svc := NewArtifactService(newFakeAnalysisRepo(analysis), newFakeLLM(), nil)

	_, err := svc.LearningPath(context.Background(), analysis.ID)
	assert.ErrorIs(t, err, ErrAnalysisNotReady)

	_, err = svc.InterviewPrep(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestSubmitAnswers(t *testing.T) {
	analysis := completedAnalysis(t)
	repo := newFakeAnalysisRepo(analysis)
	llm := newFakeLLM(llmRoute{
		marker:   "CANDIDATE ANSWERS",
		response: `{"professional_summary": "Go engineer with Kubernetes exposure", "added_keywords": ["Kubernetes"]}`,
	})
	svc := NewArtifactService(repo, llm, nil)

	optimized, err := svc.SubmitAnswers(context.Background(), analysis.ID, []models.Answer{
		{QuestionIndex: 0, Answer: " Yes, for two years "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kubernetes"}, optimized.AddedKeywords)
	assert.Equal(t, 1, llm.promptsContaining("Q: Have you used Kubernetes?\nA: Yes, for two years"))

	row := repo.row(analysis.ID)
	assert.False(t, row.Answers.IsEmpty())
	assert.False(t, row.OptimizedCV.IsEmpty())
}

func TestSubmitAnswersValidation(t *testing.T) {
	analysis := completedAnalysis(t)
	svc := NewArtifactService(newFakeAnalysisRepo(analysis), newFakeLLM(), nil)

	tests := []struct {
		name    string
		answers []models.Answer
	}{
		{"none", nil},
		{"out of range", []models.Answer{{QuestionIndex: 5, Answer: "x"}}},
		{"negative", []models.Answer{{QuestionIndex: -1, Answer: "x"}}},
		{"duplicate", []models.Answer{{QuestionIndex: 0, Answer: "x"}, {QuestionIndex: 0, Answer: "y"}}},
		{"blank", []models.Answer{{QuestionIndex: 1, Answer: "  "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitAnswers(context.Background(), analysis.ID, tt.answers)
			assert.ErrorIs(t, err, ErrInvalidAnswers)
		})
	}
}

func TestLearningPathIsGeneratedOnce(t *testing.T) {
	analysis := completedAnalysis(t)
	repo := newFakeAnalysisRepo(analysis)
	llm := newFakeLLM(llmRoute{
		marker:   "learning plan",
		response: `{"priority_areas": [{"priority": 1, "skill": "Kubernetes"}], "weekly_plan": [{"week": 1, "focus": "basics", "tasks": ["install kind"]}]}`,
	})
	svc := NewArtifactService(repo, llm, nil)

	first, err := svc.LearningPath(context.Background(), analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kubernetes", first.PriorityAreas[0].Skill)

	second, err := svc.LearningPath(context.Background(), analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, llm.promptsContaining("learning plan"))
}

func TestInterviewPrepGenerationFailure(t *testing.T) {
	analysis := completedAnalysis(t)
	repo := newFakeAnalysisRepo(analysis)
	svc := NewArtifactService(repo, newFakeLLM(llmRoute{marker: "prepare for an interview", response: "nope"}), nil)

	_, err := svc.InterviewPrep(context.Background(), analysis.ID)
	require.Error(t, err)
	assert.True(t, repo.row(analysis.ID).InterviewPrep.IsEmpty())
}

func TestCoverLetterUsesToneAndDate(t *testing.T) {
	analysis := completedAnalysis(t)
	llm := newFakeLLM(llmRoute{
		marker:   "cover letter writer",
		response: `{"company_name": "Acme", "content": {"opening": "Hello"}, "full_text": "Hello Acme"}`,
	})
	svc := NewArtifactService(newFakeAnalysisRepo(analysis), llm, nil).(*artifactService)
	svc.now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }

	letter, err := svc.GenerateCoverLetter(context.Background(), analysis.ID, "enthusiastic")
	require.NoError(t, err)
	assert.Equal(t, "March 1, 2026", letter.Date)
	assert.Equal(t, "Hello Acme", letter.FullText)
	assert.Equal(t, 1, llm.promptsContaining("Write a enthusiastic cover letter dated March 1, 2026"))
}
