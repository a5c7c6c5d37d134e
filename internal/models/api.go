package models

import (
	"github.com/google/uuid"

	"alfredoptarigan/hirehub/internal/scoring"
)

type UploadResponse struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	FileType string    `json:"file_type"`
	Size     int64     `json:"size"`
}

type CreateAnalysisRequest struct {
	CVDocumentID string `json:"cv_document_id"`
	JDText       string `json:"jd_text"`
}

type CreateAnalysisResponse struct {
	ID     uuid.UUID      `json:"id"`
	Status AnalysisStatus `json:"status"`
}

// ScoreRequest scores already-structured inputs without any LLM call.
type ScoreRequest struct {
	CV *scoring.ParsedCV `json:"cv"`
	JD *scoring.ParsedJD `json:"jd"`
}

type SubmitAnswersRequest struct {
	Answers []Answer `json:"answers"`
}

type AnalysisResponse struct {
	ID                 uuid.UUID               `json:"id"`
	Status             AnalysisStatus          `json:"status"`
	CompatibilityScore *int                    `json:"compatibility_score,omitempty"`
	ScoreBreakdown     *scoring.ScoreBreakdown `json:"score_breakdown,omitempty"`
	Gaps               []Gap                   `json:"gaps,omitempty"`
	Strengths          []string                `json:"strengths,omitempty"`
	Recommendations    []string                `json:"recommendations,omitempty"`
	Questions          []Question              `json:"questions,omitempty"`
	ErrorMessage       *string                 `json:"error_message,omitempty"`
}

// NewAnalysisResponse decodes the stored JSON columns into typed fields.
func NewAnalysisResponse(a *Analysis) (*AnalysisResponse, error) {
	resp := &AnalysisResponse{
		ID:                 a.ID,
		Status:             a.Status,
		CompatibilityScore: a.CompatibilityScore,
		ErrorMessage:       a.ErrorMessage,
	}
	if !a.ScoreBreakdown.IsEmpty() {
		resp.ScoreBreakdown = &scoring.ScoreBreakdown{}
		if err := a.ScoreBreakdown.Decode(resp.ScoreBreakdown); err != nil {
			return nil, err
		}
	}
	if err := a.Gaps.Decode(&resp.Gaps); err != nil {
		return nil, err
	}
	if err := a.Strengths.Decode(&resp.Strengths); err != nil {
		return nil, err
	}
	if err := a.Recommendations.Decode(&resp.Recommendations); err != nil {
		return nil, err
	}
	if err := a.Questions.Decode(&resp.Questions); err != nil {
		return nil, err
	}
	return resp, nil
}
