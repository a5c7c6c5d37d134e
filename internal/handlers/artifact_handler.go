package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hirehub/internal/models"
	"alfredoptarigan/hirehub/internal/services"
)

type ArtifactHandler struct {
	artifacts services.ArtifactService
}

func NewArtifactHandler(artifacts services.ArtifactService) *ArtifactHandler {
	return &ArtifactHandler{artifacts: artifacts}
}

func (h *ArtifactHandler) HandleSubmitAnswers(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req models.SubmitAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	optimized, err := h.artifacts.SubmitAnswers(c.UserContext(), id, req.Answers)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"optimized_cv": optimized})
}

func (h *ArtifactHandler) HandleCoverLetter(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req struct {
		Tone string `json:"tone"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	letter, err := h.artifacts.GenerateCoverLetter(c.UserContext(), id, req.Tone)
	if err != nil {
		return err
	}

	return c.JSON(letter)
}

func (h *ArtifactHandler) HandleLearningPath(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	path, err := h.artifacts.LearningPath(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(path)
}

func (h *ArtifactHandler) HandleInterviewPrep(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	prep, err := h.artifacts.InterviewPrep(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(prep)
}
