package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/hirehub/internal/models"
	"alfredoptarigan/hirehub/internal/repositories"
)

// fakeLLM answers with the first route whose marker appears in the prompt.
type fakeLLM struct {
	mu      sync.Mutex
	routes  []llmRoute
	prompts []string
}

type llmRoute struct {
	marker   string
	response string
	err      error
}

func newFakeLLM(routes ...llmRoute) *fakeLLM {
	return &fakeLLM{routes: routes}
}

func (f *fakeLLM) Provider() string { return "fake" }
func (f *fakeLLM) Model() string    { return "fake-model" }

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, _ float32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	for _, r := range f.routes {
		if strings.Contains(prompt, r.marker) {
			return r.response, r.err
		}
	}
	return "", errors.New("fake llm: no route for prompt")
}

func (f *fakeLLM) promptsContaining(marker string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.prompts {
		if strings.Contains(p, marker) {
			n++
		}
	}
	return n
}

// constantEmbedder maps every text to the same unit vector, so every cosine
// similarity is exactly 1.
type constantEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (e *constantEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	v, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return v[0], nil
}

func (e *constantEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

type fakeAnalysisRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]*models.Analysis
	statuses []models.AnalysisStatus
	pending  []models.Analysis
	saveErr  error
}

func newFakeAnalysisRepo(rows ...*models.Analysis) *fakeAnalysisRepo {
	r := &fakeAnalysisRepo{rows: make(map[uuid.UUID]*models.Analysis)}
	for _, a := range rows {
		r.rows[a.ID] = a
	}
	return r
}

func (r *fakeAnalysisRepo) Create(a *models.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.rows[a.ID] = a
	return nil
}

func (r *fakeAnalysisRepo) get(id uuid.UUID) (*models.Analysis, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return a, nil
}

func (r *fakeAnalysisRepo) FindByID(id uuid.UUID) (*models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.get(id)
	if err != nil {
		return nil, err
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAnalysisRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.get(id)
	if err != nil {
		return err
	}
	a.Status = status
	r.statuses = append(r.statuses, status)
	return nil
}

func (r *fakeAnalysisRepo) SaveResult(id uuid.UUID, d *repositories.AnalysisResultData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	a, err := r.get(id)
	if err != nil {
		return err
	}
	score := d.CompatibilityScore
	a.Status = models.StatusCompleted
	a.CVText = d.CVText
	a.CVParsed = d.CVParsed
	a.JDParsed = d.JDParsed
	a.CVEmbeddingID = d.CVEmbeddingID
	a.JDEmbeddingID = d.JDEmbeddingID
	a.CompatibilityScore = &score
	a.ScoreBreakdown = d.ScoreBreakdown
	a.Gaps = d.Gaps
	a.Strengths = d.Strengths
	a.Recommendations = d.Recommendations
	a.Questions = d.Questions
	r.statuses = append(r.statuses, models.StatusCompleted)
	return nil
}

func (r *fakeAnalysisRepo) UpdateError(id uuid.UUID, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.get(id)
	if err != nil {
		return err
	}
	a.Status = models.StatusFailed
	a.ErrorMessage = &msg
	r.statuses = append(r.statuses, models.StatusFailed)
	return nil
}

func (r *fakeAnalysisRepo) SaveArtifact(id uuid.UUID, artifact repositories.Artifact, value models.JSON) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.get(id)
	if err != nil {
		return err
	}
	switch artifact {
	case repositories.ArtifactAnswers:
		a.Answers = value
	case repositories.ArtifactOptimizedCV:
		a.OptimizedCV = value
	case repositories.ArtifactCoverLetter:
		a.CoverLetter = value
	case repositories.ArtifactLearningPath:
		a.LearningPath = value
	case repositories.ArtifactInterviewPrep:
		a.InterviewPrep = value
	}
	return nil
}

func (r *fakeAnalysisRepo) FindPendingJobs(limit int) ([]models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) > limit {
		return r.pending[:limit], nil
	}
	return r.pending, nil
}

func (r *fakeAnalysisRepo) row(id uuid.UUID) *models.Analysis {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id]
}

type fakeDocumentRepo struct {
	docs map[uuid.UUID]*models.Document
}

func (r *fakeDocumentRepo) Create(d *models.Document) error {
	r.docs[d.ID] = d
	return nil
}

func (r *fakeDocumentRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return d, nil
}

type memoryStorage struct {
	files map[string][]byte
}

func (s *memoryStorage) SaveFile(context.Context, string, io.Reader) (*StoredFile, error) {
	return nil, errors.New("not used")
}

func (s *memoryStorage) ReadFile(_ context.Context, location string) ([]byte, error) {
	data, ok := s.files[location]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

func (s *memoryStorage) DeleteFile(_ context.Context, location string) error {
	delete(s.files, location)
	return nil
}

type fakeVectors struct {
	mu       sync.Mutex
	upserts  map[DocKind][]VectorDocument
	results  []SearchResult
	searchFn func(kind DocKind) error
}

func newFakeVectors() *fakeVectors {
	return &fakeVectors{upserts: make(map[DocKind][]VectorDocument)}
}

func (v *fakeVectors) InitCollections(context.Context) error { return nil }

func (v *fakeVectors) UpsertDocument(_ context.Context, kind DocKind, doc VectorDocument) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.upserts[kind] = append(v.upserts[kind], doc)
	return string(kind) + "-point", nil
}

func (v *fakeVectors) SearchSimilar(_ context.Context, kind DocKind, _ []float32, _ int, _ float32, _ string) ([]SearchResult, error) {
	if v.searchFn != nil {
		if err := v.searchFn(kind); err != nil {
			return nil, err
		}
	}
	var out []SearchResult
	for _, r := range v.results {
		if r.DocType == string(kind) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (v *fakeVectors) DeleteBySource(context.Context, DocKind, string) error { return nil }

type recordingPublisher struct {
	mu     sync.Mutex
	events []AnalysisEvent
}

func (p *recordingPublisher) PublishStatus(_ context.Context, e AnalysisEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) statuses() []models.AnalysisStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.AnalysisStatus, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Status)
	}
	return out
}
