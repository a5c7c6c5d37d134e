package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Upload    *UploadHandler
	Analysis  *AnalysisHandler
	Score     *ScoreHandler
	Artifacts *ArtifactHandler
}

// Register mounts every route under /api/v1.
func Register(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/upload", h.Upload.HandleUpload)
	api.Post("/score", h.Score.HandleScore)

	analyses := api.Group("/analyses")
	analyses.Post("/", h.Analysis.HandleCreate)
	analyses.Get("/:id", h.Analysis.HandleGet)
	analyses.Post("/:id/answers", h.Artifacts.HandleSubmitAnswers)
	analyses.Post("/:id/cover-letter", h.Artifacts.HandleCoverLetter)
	analyses.Get("/:id/learning", h.Artifacts.HandleLearningPath)
	analyses.Get("/:id/interview-prep", h.Artifacts.HandleInterviewPrep)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HireHub CV Analysis API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/analyses",
				"GET /api/v1/analyses/:id",
				"POST /api/v1/score",
				"POST /api/v1/analyses/:id/answers",
				"POST /api/v1/analyses/:id/cover-letter",
				"GET /api/v1/analyses/:id/learning",
				"GET /api/v1/analyses/:id/interview-prep",
			},
		})
	})
}
