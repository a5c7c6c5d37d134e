package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/hirehub/internal/logger"
	"alfredoptarigan/hirehub/internal/models"
	"alfredoptarigan/hirehub/internal/repositories"
	"alfredoptarigan/hirehub/internal/scoring"
)

const (
	ragResultLimit = 3
	ragMinScore    = 0.7
)

// AnalyzerService runs the full pipeline for one queued analysis.
type AnalyzerService interface {
	Analyze(ctx context.Context, analysisID uuid.UUID) error
}

type AnalyzerDeps struct {
	AnalysisRepo  repositories.AnalysisRepository
	DocumentRepo  repositories.DocumentRepository
	Storage       StorageService
	Parser        DocumentParser
	CVParser      CVParser
	JDAnalyzer    JDAnalyzer
	Embedder      scoring.EmbeddingProvider
	Vectors       QdrantService
	Compatibility CompatibilityService
	LLM           TextGenerator
	Events        EventPublisher
	Logger        *zap.Logger
}

type analyzerService struct {
	AnalyzerDeps
	promptBuilder *PromptBuilder
}

func NewAnalyzerService(deps AnalyzerDeps) AnalyzerService {
	deps.Logger = logger.OrNop(deps.Logger)
	if deps.Events == nil {
		deps.Events = NewNoopPublisher()
	}
	return &analyzerService{AnalyzerDeps: deps, promptBuilder: NewPromptBuilder()}
}

func (a *analyzerService) Analyze(ctx context.Context, analysisID uuid.UUID) error {
	log := a.Logger.With(zap.String(logger.FieldAnalysisID, analysisID.String()))

	if err := a.AnalysisRepo.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	a.publish(ctx, log, AnalysisEvent{AnalysisID: analysisID, Status: models.StatusProcessing})

	log.Info("🔄 Starting analysis")

	result, err := a.run(ctx, log, analysisID)
	if err == nil {
		log.Info("💾 Saving analysis results")
		if serr := a.AnalysisRepo.SaveResult(analysisID, result); serr != nil {
			err = fmt.Errorf("failed to save results: %w", serr)
		}
	}
	if err != nil {
		a.fail(ctx, log, analysisID, err)
		return err
	}

	score := result.CompatibilityScore
	a.publish(ctx, log, AnalysisEvent{AnalysisID: analysisID, Status: models.StatusCompleted, CompatibilityScore: &score})

	log.Info("✅ Analysis completed", zap.Int("overall_score", score))
	return nil
}

// fail moves the analysis to failed so the row never stays processing.
func (a *analyzerService) fail(ctx context.Context, log *zap.Logger, analysisID uuid.UUID, err error) {
	log.Error("❌ Analysis failed", zap.Error(err))
	if uerr := a.AnalysisRepo.UpdateError(analysisID, err.Error()); uerr != nil {
		log.Error("❌ Failed to record analysis error", zap.Error(uerr))
	}
	a.publish(ctx, log, AnalysisEvent{AnalysisID: analysisID, Status: models.StatusFailed, Error: err.Error()})
}

func (a *analyzerService) run(ctx context.Context, log *zap.Logger, analysisID uuid.UUID) (*repositories.AnalysisResultData, error) {
	analysis, err := a.AnalysisRepo.FindByID(analysisID)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	cvDoc, err := a.DocumentRepo.FindByID(analysis.CVDocumentID)
	if err != nil {
		return nil, fmt.Errorf("CV document not found: %w", err)
	}

	// Step 1: Read and parse the uploaded CV
	log.Info("📄 Parsing CV document", zap.String("file_type", cvDoc.FileType))
	data, err := a.Storage.ReadFile(ctx, cvDoc.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to read CV: %w", err)
	}

	cvText, err := a.Parser.ExtractText(cvDoc.ContentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CV: %w", err)
	}

	// Step 2: Structured extraction of CV and JD in parallel
	log.Info("🤖 Extracting CV and job description")
	var (
		cv *models.CVData
		jd *models.JDData
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cv, err = a.CVParser.ParseCV(gctx, cvText)
		return err
	})
	g.Go(func() error {
		var err error
		jd, err = a.JDAnalyzer.AnalyzeJD(gctx, analysis.JDText)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Step 3: Index both documents and retrieve similar ones (RAG)
	cvEmbeddingID, jdEmbeddingID, ragContext := a.indexAndRetrieve(ctx, log, analysisID.String(), cvText, analysis.JDText, jd.PositionTitle)

	// Step 4: Deterministic score plus insights
	log.Info("🎯 Scoring compatibility")
	report, err := a.Compatibility.Analyze(ctx, cv, jd, ragContext)
	if err != nil {
		return nil, err
	}

	// Step 5: Clarifying questions
	questions := a.questions(ctx, log, cv, jd, report.Insights.Gaps)

	return buildResultData(cvText, cv, jd, cvEmbeddingID, jdEmbeddingID, report, questions)
}

// indexAndRetrieve failures only cost RAG context, so they are logged and
// swallowed.
func (a *analyzerService) indexAndRetrieve(ctx context.Context, log *zap.Logger, sourceID, cvText, jdText, title string) (string, string, string) {
	vectors, err := a.Embedder.EmbedBatch(ctx, []string{cvText, jdText})
	if err != nil || len(vectors) != 2 {
		log.Warn("⚠️ Failed to embed documents, continuing without RAG context", zap.Error(err))
		return "", "", FormatRAGContext(nil)
	}

	var similar []SearchResult
	for i, kind := range []DocKind{DocKindCV, DocKindJD} {
		results, err := a.Vectors.SearchSimilar(ctx, kind, vectors[i], ragResultLimit, ragMinScore, sourceID)
		if err != nil {
			log.Warn("⚠️ Failed to search similar documents", zap.String("doc_type", string(kind)), zap.Error(err))
			continue
		}
		similar = append(similar, results...)
	}

	cvID, err := a.Vectors.UpsertDocument(ctx, DocKindCV, VectorDocument{SourceID: sourceID, Title: title, Text: cvText, Vector: vectors[0]})
	if err != nil {
		log.Warn("⚠️ Failed to store CV embedding", zap.Error(err))
	}
	jdID, err := a.Vectors.UpsertDocument(ctx, DocKindJD, VectorDocument{SourceID: sourceID, Title: title, Text: jdText, Vector: vectors[1]})
	if err != nil {
		log.Warn("⚠️ Failed to store JD embedding", zap.Error(err))
	}

	log.Info("🔍 Retrieved similar documents", zap.Int("count", len(similar)))
	return cvID, jdID, FormatRAGContext(similar)
}

func (a *analyzerService) questions(ctx context.Context, log *zap.Logger, cv *models.CVData, jd *models.JDData, gaps []models.Gap) []models.Question {
	cvJSON, _ := json.Marshal(cv)
	jdJSON, _ := json.Marshal(jd)
	gapsJSON, _ := json.Marshal(gaps)

	response, err := a.LLM.GenerateJSON(ctx, a.promptBuilder.BuildQuestionsPrompt(string(cvJSON), string(jdJSON), string(gapsJSON)), 0.5)
	if err != nil {
		log.Warn("⚠️ Question generation failed", zap.Error(err))
		return []models.Question{}
	}

	questions, err := parseQuestions(response)
	if err != nil {
		log.Warn("⚠️ Question response unusable", zap.Error(err))
		return []models.Question{}
	}
	return questions
}

func buildResultData(cvText string, cv *models.CVData, jd *models.JDData, cvEmbeddingID, jdEmbeddingID string, report *CompatibilityReport, questions []models.Question) (*repositories.AnalysisResultData, error) {
	data := &repositories.AnalysisResultData{
		CVText:             cvText,
		CVEmbeddingID:      cvEmbeddingID,
		JDEmbeddingID:      jdEmbeddingID,
		CompatibilityScore: report.Result.OverallScore,
	}

	columns := []struct {
		dst *models.JSON
		v   interface{}
	}{
		{&data.CVParsed, cv},
		{&data.JDParsed, jd},
		{&data.ScoreBreakdown, report.Result.Breakdown},
		{&data.Gaps, report.Insights.Gaps},
		{&data.Strengths, report.Insights.Strengths},
		{&data.Recommendations, report.Insights.Recommendations},
		{&data.Questions, questions},
	}
	for _, c := range columns {
		j, err := models.NewJSON(c.v)
		if err != nil {
			return nil, err
		}
		*c.dst = j
	}
	return data, nil
}

func (a *analyzerService) publish(ctx context.Context, log *zap.Logger, event AnalysisEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := a.Events.PublishStatus(ctx, event); err != nil {
		log.Warn("⚠️ Failed to publish analysis event", zap.String("status", string(event.Status)), zap.Error(err))
	}
}
