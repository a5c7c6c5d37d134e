package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"alfredoptarigan/hirehub/internal/config"
	"alfredoptarigan/hirehub/internal/logger"
	"alfredoptarigan/hirehub/internal/services"
)

// Seeds the CV and JD vector collections with reference documents so the
// first analyses already have retrieval context.

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

var (
	cvDir  string
	jdDir  string
	dryRun bool

	rootCmd = &cobra.Command{
		Use:   "ingest",
		Short: "Embed reference CVs and job descriptions into Qdrant",
		RunE:  runIngest,
	}
)

func init() {
	rootCmd.Flags().StringVar(&cvDir, "cv-dir", "./reference_docs/cvs", "directory of reference CVs (pdf, docx, txt)")
	rootCmd.Flags().StringVar(&jdDir, "jd-dir", "./reference_docs/jds", "directory of reference job descriptions")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "extract and chunk only, do not embed or store")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type ingester struct {
	parser   services.DocumentParser
	chunker  services.TextChunker
	embedder services.GeminiService
	vectors  services.QdrantService
	log      *zap.Logger
}

type ingestSummary struct {
	succeeded int
	failed    int
	chunks    int
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("🚀 Starting document ingestion...", zap.Bool("dry_run", dryRun))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	in := &ingester{
		parser:  services.NewDocumentParser(),
		chunker: services.NewTextChunker(),
		log:     log,
	}

	if !dryRun {
		limiter := rate.NewLimiter(rate.Limit(cfg.LLM.RequestsPerSec), cfg.LLM.Burst)
		in.embedder, err = services.NewGeminiService(ctx, services.GeminiConfig{
			APIKey:     cfg.Gemini.APIKey,
			Model:      cfg.Gemini.Model,
			EmbedModel: cfg.Gemini.EmbedModel,
		}, limiter, log)
		if err != nil {
			return fmt.Errorf("failed to initialize Gemini: %w", err)
		}

		in.vectors, err = services.NewQdrantService(services.QdrantConfig{
			URL:          cfg.Qdrant.URL,
			APIKey:       cfg.Qdrant.APIKey,
			CVCollection: cfg.Qdrant.CVCollection,
			JDCollection: cfg.Qdrant.JDCollection,
			VectorSize:   cfg.Embedding.Dimension,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to initialize Qdrant: %w", err)
		}
		if err := in.vectors.InitCollections(ctx); err != nil {
			return fmt.Errorf("failed to initialize collections: %w", err)
		}
	}

	var total ingestSummary
	for _, src := range []struct {
		dir  string
		kind services.DocKind
	}{
		{cvDir, services.DocKindCV},
		{jdDir, services.DocKindJD},
	} {
		s := in.ingestDir(ctx, src.dir, src.kind)
		total.succeeded += s.succeeded
		total.failed += s.failed
		total.chunks += s.chunks
	}

	log.Info(strings.Repeat("=", 60))
	log.Info("📊 Ingestion Summary",
		zap.Int("succeeded", total.succeeded),
		zap.Int("failed", total.failed),
		zap.Int("chunks", total.chunks),
	)

	if total.failed > 0 {
		return fmt.Errorf("%d documents failed to ingest", total.failed)
	}

	log.Info("✅ All documents ingested successfully!")
	return nil
}

func (in *ingester) ingestDir(ctx context.Context, dir string, kind services.DocKind) ingestSummary {
	var summary ingestSummary

	entries, err := os.ReadDir(dir)
	if err != nil {
		in.log.Warn("⚠️ Directory not readable, skipping", zap.String("dir", dir), zap.Error(err))
		return summary
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		n, err := in.ingestFile(ctx, path, kind)
		if err != nil {
			in.log.Error("❌ Failed to ingest document", zap.String("path", path), zap.Error(err))
			summary.failed++
			continue
		}
		summary.succeeded++
		summary.chunks += n
	}

	return summary
}

func (in *ingester) ingestFile(ctx context.Context, path string, kind services.DocKind) (int, error) {
	log := in.log.With(zap.String("path", path), zap.String("kind", string(kind)))

	contentType, err := services.ContentTypeFor(path)
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := in.parser.ExtractText(contentType, data)
	if err != nil {
		return 0, fmt.Errorf("failed to extract text: %w", err)
	}
	text = services.CleanText(text)
	if text == "" {
		return 0, fmt.Errorf("no text extracted")
	}

	chunks := in.chunker.ChunkText(text, chunkSize, chunkOverlap)
	log.Info("✂️ Chunked document", zap.Int("characters", len(text)), zap.Int("chunks", len(chunks)))

	if dryRun {
		return len(chunks), nil
	}

	vectors, err := in.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}

	// Re-running the seed replaces earlier points for the same file.
	sourceID := filepath.Base(path)
	if err := in.vectors.DeleteBySource(ctx, kind, sourceID); err != nil {
		return 0, fmt.Errorf("failed to clear previous points: %w", err)
	}

	for i, chunk := range chunks {
		_, err := in.vectors.UpsertDocument(ctx, kind, services.VectorDocument{
			SourceID: sourceID,
			Title:    fmt.Sprintf("%s (part %d)", sourceID, i+1),
			Text:     chunk,
			Vector:   vectors[i],
		})
		if err != nil {
			return i, fmt.Errorf("failed to store chunk %d: %w", i+1, err)
		}
	}

	log.Info("✅ Document ingested")
	return len(chunks), nil
}
