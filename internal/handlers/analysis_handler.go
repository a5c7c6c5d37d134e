package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/hirehub/internal/models"
	"alfredoptarigan/hirehub/internal/repositories"
)

// JobQueue accepts analysis IDs for background processing.
type JobQueue interface {
	EnqueueJob(analysisID uuid.UUID)
}

type AnalysisHandler struct {
	analysisRepo repositories.AnalysisRepository
	docRepo      repositories.DocumentRepository
	queue        JobQueue
}

func NewAnalysisHandler(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	queue JobQueue,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisRepo: analysisRepo,
		docRepo:      docRepo,
		queue:        queue,
	}
}

// HandleCreate queues a new analysis and returns 202.
func (h *AnalysisHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.CVDocumentID == "" || strings.TrimSpace(req.JDText) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "cv_document_id and jd_text are required")
	}

	cvDocID, err := uuid.Parse(req.CVDocumentID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid CV document ID format")
	}

	if _, err := h.docRepo.FindByID(cvDocID); err != nil {
		return fmt.Errorf("CV document: %w", err)
	}

	analysis := models.Analysis{
		ID:           uuid.New(),
		CVDocumentID: cvDocID,
		JDText:       strings.TrimSpace(req.JDText),
		Status:       models.StatusQueued,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.analysisRepo.Create(&analysis); err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	h.queue.EnqueueJob(analysis.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.CreateAnalysisResponse{
		ID:     analysis.ID,
		Status: analysis.Status,
	})
}

func (h *AnalysisHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	analysis, err := h.analysisRepo.FindByID(id)
	if err != nil {
		return err
	}

	resp, err := models.NewAnalysisResponse(analysis)
	if err != nil {
		return fmt.Errorf("failed to decode analysis: %w", err)
	}

	return c.JSON(resp)
}
