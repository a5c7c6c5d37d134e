package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// Analysis is one CV/JD comparison and every artifact generated from it.
// The score columns are an immutable snapshot written once per run.
type Analysis struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CVDocumentID uuid.UUID      `gorm:"type:uuid;not null" json:"cv_document_id"`
	Status       AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`

	CVText   string `gorm:"type:text" json:"-"`
	JDText   string `gorm:"type:text" json:"jd_text"`
	CVParsed JSON   `json:"cv_parsed,omitempty"`
	JDParsed JSON   `json:"jd_parsed,omitempty"`

	CVEmbeddingID string `gorm:"type:text" json:"-"`
	JDEmbeddingID string `gorm:"type:text" json:"-"`

	CompatibilityScore *int `json:"compatibility_score,omitempty"`
	ScoreBreakdown     JSON `json:"score_breakdown,omitempty"`
	Gaps               JSON `json:"gaps,omitempty"`
	Strengths          JSON `json:"strengths,omitempty"`
	Recommendations    JSON `json:"recommendations,omitempty"`
	Questions          JSON `json:"questions,omitempty"`
	Answers            JSON `json:"answers,omitempty"`
	OptimizedCV        JSON `json:"optimized_cv,omitempty"`
	CoverLetter        JSON `json:"cover_letter,omitempty"`
	LearningPath       JSON `json:"learning_path,omitempty"`
	InterviewPrep      JSON `json:"interview_prep,omitempty"`

	ErrorMessage *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	CVDocument Document `gorm:"foreignKey:CVDocumentID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}
