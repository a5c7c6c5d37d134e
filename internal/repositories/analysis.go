package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/hirehub/internal/models"
)

type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	FindByID(id uuid.UUID) (*models.Analysis, error)
	UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error
	SaveResult(id uuid.UUID, data *AnalysisResultData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	SaveArtifact(id uuid.UUID, artifact Artifact, value models.JSON) error
	FindPendingJobs(limit int) ([]models.Analysis, error)
}

// Artifact names a JSON column that is generated on demand after scoring.
type Artifact string

const (
	ArtifactAnswers       Artifact = "answers"
	ArtifactOptimizedCV   Artifact = "optimized_cv"
	ArtifactCoverLetter   Artifact = "cover_letter"
	ArtifactLearningPath  Artifact = "learning_path"
	ArtifactInterviewPrep Artifact = "interview_prep"
)

func (a Artifact) valid() bool {
	switch a {
	case ArtifactAnswers, ArtifactOptimizedCV, ArtifactCoverLetter, ArtifactLearningPath, ArtifactInterviewPrep:
		return true
	}
	return false
}

// AnalysisResultData is everything the pipeline writes once scoring is done.
type AnalysisResultData struct {
	CVText             string
	CVParsed           models.JSON
	JDParsed           models.JSON
	CVEmbeddingID      string
	JDEmbeddingID      string
	CompatibilityScore int
	ScoreBreakdown     models.JSON
	Gaps               models.JSON
	Strengths          models.JSON
	Recommendations    models.JSON
	Questions          models.JSON
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByID(id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

func (r *analysisRepository) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	return r.update(id, "status", map[string]interface{}{
		"status": status,
	})
}

func (r *analysisRepository) SaveResult(id uuid.UUID, data *AnalysisResultData) error {
	return r.update(id, "result", map[string]interface{}{
		"status":              models.StatusCompleted,
		"cv_text":             data.CVText,
		"cv_parsed":           data.CVParsed,
		"jd_parsed":           data.JDParsed,
		"cv_embedding_id":     data.CVEmbeddingID,
		"jd_embedding_id":     data.JDEmbeddingID,
		"compatibility_score": data.CompatibilityScore,
		"score_breakdown":     data.ScoreBreakdown,
		"gaps":                data.Gaps,
		"strengths":           data.Strengths,
		"recommendations":     data.Recommendations,
		"questions":           data.Questions,
		"error_message":       nil,
	})
}

func (r *analysisRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, "error", map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
	})
}

func (r *analysisRepository) SaveArtifact(id uuid.UUID, artifact Artifact, value models.JSON) error {
	if !artifact.valid() {
		return fmt.Errorf("unknown artifact %q", artifact)
	}
	return r.update(id, string(artifact), map[string]interface{}{
		string(artifact): value,
	})
}

func (r *analysisRepository) FindPendingJobs(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return analyses, nil
}

func (r *analysisRepository) update(id uuid.UUID, what string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.Analysis{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", what, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}

	return nil
}
