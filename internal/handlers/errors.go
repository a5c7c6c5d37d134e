package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/hirehub/internal/repositories"
	"alfredoptarigan/hirehub/internal/scoring"
	"alfredoptarigan/hirehub/internal/services"
)

// ErrorHandler renders every error as {"error", "code"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func statusFor(err error) int {
	var (
		fiberErr    *fiber.Error
		inputErr    *scoring.InputError
		providerErr *scoring.ProviderError
	)

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrAnalysisNotReady):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidAnswers),
		errors.Is(err, services.ErrUnsupportedFileType),
		errors.As(err, &inputErr):
		return fiber.StatusBadRequest
	case errors.As(err, &providerErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid analysis ID format")
	}
	return id, nil
}
