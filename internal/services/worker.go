package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/hirehub/internal/logger"
	"alfredoptarigan/hirehub/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(analysisID uuid.UUID)
}

type WorkerConfig struct {
	Concurrency  int
	QueueSize    int
	PollInterval time.Duration
	// PollBatch is how many queued rows one poll picks up.
	PollBatch int
}

type worker struct {
	analysisRepo repositories.AnalysisRepository
	analyzer     AnalyzerService
	jobQueue     chan uuid.UUID
	cfg          WorkerConfig
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once

	// inFlight prevents the poller from enqueueing a job that is already
	// queued or running.
	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}

	log *zap.Logger
}

func NewWorker(
	analysisRepo repositories.AnalysisRepository,
	analyzer AnalyzerService,
	cfg WorkerConfig,
	log *zap.Logger,
) Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.PollBatch <= 0 {
		cfg.PollBatch = 10
	}

	return &worker{
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
		jobQueue:     make(chan uuid.UUID, cfg.QueueSize),
		cfg:          cfg,
		stopChan:     make(chan struct{}),
		inFlight:     make(map[uuid.UUID]struct{}),
		log:          logger.OrNop(log),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("🚀 Starting worker", zap.Int("concurrency", w.cfg.Concurrency))

	for i := 0; i < w.cfg.Concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	w.log.Info("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		w.log.Info("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(analysisID uuid.UUID) {
	if !w.claim(analysisID) {
		return
	}

	select {
	case w.jobQueue <- analysisID:
		w.log.Info("📥 Job enqueued", zap.String(logger.FieldAnalysisID, analysisID.String()))
	case <-w.stopChan:
		w.release(analysisID)
		w.log.Warn("⚠️ Worker stopped, cannot enqueue job", zap.String(logger.FieldAnalysisID, analysisID.String()))
	}
}

func (w *worker) claim(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.inFlight[id]; ok {
		return false
	}
	w.inFlight[id] = struct{}{}
	return true
}

func (w *worker) release(id uuid.UUID) {
	w.mu.Lock()
	delete(w.inFlight, id)
	w.mu.Unlock()
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := w.log.With(zap.Int("worker", workerID))

	for {
		select {
		case <-w.stopChan:
			log.Debug("👷 Worker stopped")
			return
		case <-ctx.Done():
			return
		case analysisID := <-w.jobQueue:
			jobLog := log.With(zap.String(logger.FieldAnalysisID, analysisID.String()))
			jobLog.Info("👷 Processing job")
			if err := w.analyzer.Analyze(ctx, analysisID); err != nil {
				jobLog.Error("❌ Failed to process job", zap.Error(err))
			} else {
				jobLog.Info("✅ Completed job")
			}
			w.release(analysisID)
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	w.log.Info("🔄 Starting pending jobs poller", zap.Duration("interval", w.cfg.PollInterval))

	for {
		select {
		case <-w.stopChan:
			w.log.Info("🔄 Pending jobs poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pendingJobs, err := w.analysisRepo.FindPendingJobs(w.cfg.PollBatch)
			if err != nil {
				w.log.Warn("⚠️ Failed to fetch pending jobs", zap.Error(err))
				continue
			}

			if len(pendingJobs) > 0 {
				w.log.Info("📋 Found pending jobs", zap.Int("count", len(pendingJobs)))
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
