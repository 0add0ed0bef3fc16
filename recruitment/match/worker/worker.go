package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/logx"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/match"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/match/matchsrv"
)

const (
	dequeueTimeout = 5 * time.Second
	retryDelay     = 30 * time.Second
	maxAttempts    = 3
)

// RescoreWorker consumes rescore signals from the queue and drives the
// batch rescoring entry points.
type RescoreWorker struct {
	service *matchsrv.MatchService
	queue   match.RescoreQueue
	workers int
}

func NewRescoreWorker(service *matchsrv.MatchService, queue match.RescoreQueue, workers int) *RescoreWorker {
	return &RescoreWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

func (w *RescoreWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d rescore workers", w.workers)

	// Start delayed signal mover
	go w.moveDelayedSignals(ctx)

	// Start worker pool
	for i := 0; i < w.workers; i++ {
		go w.processSignals(ctx, i)
	}
}

func (w *RescoreWorker) processSignals(ctx context.Context, workerID int) {
	logx.Infof("Rescore worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Rescore worker %d stopping", workerID)
			return
		default:
			data, err := w.queue.Dequeue(ctx, dequeueTimeout)
			if err != nil {
				logx.Errorf("Rescore worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Queue timeout, nothing to do
			if len(data) == 0 {
				continue
			}

			var signal match.RescoreSignal
			if err := json.Unmarshal(data, &signal); err != nil {
				logx.Errorf("Rescore worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			w.handleSignal(ctx, workerID, &signal)
		}
	}
}

func (w *RescoreWorker) handleSignal(ctx context.Context, workerID int, signal *match.RescoreSignal) {
	logx.Infof("Rescore worker %d processing signal %s (%s)", workerID, signal.ID, signal.Kind)

	var err error
	switch signal.Kind {
	case match.RescoreKindCandidate:
		_, err = w.service.RescoreCandidate(ctx, signal.CandidateID)
	case match.RescoreKindJob:
		_, err = w.service.RescoreJob(ctx, signal.JobID)
	default:
		logx.Errorf("Rescore worker %d: unknown signal kind %q, dropping", workerID, signal.Kind)
		return
	}

	if err == nil {
		return
	}

	signal.Attempt++
	if signal.Attempt >= maxAttempts {
		logx.Errorf("Rescore signal %s failed after %d attempts, dropping: %v", signal.ID, signal.Attempt, err)
		return
	}

	logx.Warnf("Rescore signal %s failed (attempt %d/%d), requeueing: %v", signal.ID, signal.Attempt, maxAttempts, err)
	if qErr := w.queue.EnqueueDelayed(ctx, signal, retryDelay); qErr != nil {
		logx.Errorf("Failed to requeue rescore signal %s: %v", signal.ID, qErr)
	}
}

func (w *RescoreWorker) moveDelayedSignals(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed rescore signals: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed rescore signals to ready queue", count)
			}
		}
	}
}
