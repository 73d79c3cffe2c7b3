package service

import (
	"ai_interview_backend/pkg/logger"
	"context"
	"sync"

	"go.uber.org/zap"
)

// SessionFeedbackGenerator is satisfied by *InterviewService.
type SessionFeedbackGenerator interface {
	GenerateSessionFeedback(ctx context.Context, sessionID uint) error
}

// FeedbackWorker generates aggregate interview feedback in the background so
// the answer-submission request is not blocked on the slow upstream call.
type FeedbackWorker struct {
	generator   SessionFeedbackGenerator
	jobQueue    chan uint
	concurrency int
	wg          sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

func NewFeedbackWorker(generator SessionFeedbackGenerator, concurrency int) *FeedbackWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &FeedbackWorker{
		generator:   generator,
		jobQueue:    make(chan uint, 100),
		concurrency: concurrency,
	}
}

func (w *FeedbackWorker) Start(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
	logger.Log.Info("feedback worker started", zap.Int("concurrency", w.concurrency))
}

// Stop refuses new jobs, then blocks until every already-queued session has
// been processed.
func (w *FeedbackWorker) Stop() {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.jobQueue)
	}
	w.mu.Unlock()
	w.wg.Wait()
	logger.Log.Info("feedback worker stopped")
}

// Enqueue hands a completed session to the worker. A stopped worker or a
// full queue drops the job; the session stays in feedback_status=pending and
// is re-enqueued by the pending scan on the next startup.
func (w *FeedbackWorker) Enqueue(sessionID uint) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		logger.Log.Warn("feedback worker stopped, dropping job", zap.Uint("sessionID", sessionID))
		return
	}
	select {
	case w.jobQueue <- sessionID:
	default:
		logger.Log.Warn("feedback queue full, dropping job", zap.Uint("sessionID", sessionID))
	}
}

func (w *FeedbackWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for sessionID := range w.jobQueue {
		if err := w.generator.GenerateSessionFeedback(ctx, sessionID); err != nil {
			logger.Log.Error("feedback generation failed",
				zap.Int("worker", workerID),
				zap.Uint("sessionID", sessionID),
				zap.Error(err))
		} else {
			logger.Log.Info("feedback generated",
				zap.Int("worker", workerID),
				zap.Uint("sessionID", sessionID))
		}
	}
}
