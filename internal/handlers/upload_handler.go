package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/hirehub/internal/logger"
	"alfredoptarigan/hirehub/internal/models"
	"alfredoptarigan/hirehub/internal/repositories"
	"alfredoptarigan/hirehub/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
	log            *zap.Logger
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
	log *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		log:            logger.OrNop(log),
	}
}

// HandleUpload stores the multipart "cv" file (pdf, docx or txt).
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	cvFile, err := c.FormFile("cv")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No CV uploaded. Please upload a 'cv' file as PDF, DOCX or TXT.")
	}

	if cvFile.Size > h.maxFileSize {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize))
	}

	if _, err := services.ContentTypeFor(cvFile.Filename); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	src, err := cvFile.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer src.Close()

	ctx := c.UserContext()
	stored, err := h.storageService.SaveFile(ctx, cvFile.Filename, src)
	if err != nil {
		return fmt.Errorf("failed to save CV file: %w", err)
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         stored.Filename,
		OriginalFileName: cvFile.Filename,
		FileType:         fileTypeLabel(stored.ContentType),
		ContentType:      stored.ContentType,
		Location:         stored.Location,
		Size:             stored.Size,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		if derr := h.storageService.DeleteFile(ctx, stored.Location); derr != nil {
			h.log.Warn("⚠️ Failed to clean up upload", zap.String("location", stored.Location), zap.Error(derr))
		}
		return fmt.Errorf("failed to save CV document record: %w", err)
	}

	h.log.Info("📤 CV uploaded", zap.String("document_id", doc.ID.String()), zap.Int64("size", doc.Size))

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:       doc.ID,
		Filename: doc.OriginalFileName,
		FileType: doc.FileType,
		Size:     doc.Size,
	})
}

func fileTypeLabel(contentType string) string {
	switch contentType {
	case services.MimePDF:
		return "pdf"
	case services.MimeDOCX:
		return "docx"
	default:
		return "txt"
	}
}
