package services

import "errors"

var (
	// ErrAnalysisNotReady is returned for follow-up artifacts requested
	// before the analysis completed.
	ErrAnalysisNotReady = errors.New("analysis is not completed yet")
	ErrInvalidAnswers   = errors.New("invalid answers")
)
