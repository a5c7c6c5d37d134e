package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hirehub/internal/models"
	"alfredoptarigan/hirehub/internal/scoring"
)

type CompatibilityScorer interface {
	ComputeCompatibility(ctx context.Context, cv *scoring.ParsedCV, jd *scoring.ParsedJD) (*scoring.OverallScoreResult, error)
}

type ScoreHandler struct {
	scorer CompatibilityScorer
}

func NewScoreHandler(scorer CompatibilityScorer) *ScoreHandler {
	return &ScoreHandler{scorer: scorer}
}

// HandleScore scores already structured inputs synchronously.
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	var req models.ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := h.scorer.ComputeCompatibility(c.UserContext(), req.CV, req.JD)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
