package worker

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/X1ag/SRTScheduler/internal/usecase"
)

type Worker struct {
	watchUC     *usecase.WatchUsecase
	userID      string
	interval    time.Duration
	concurrency int
}

func NewWorker(watchUC *usecase.WatchUsecase, userID string, interval time.Duration, concurrency int) *Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Worker{
		watchUC:     watchUC,
		userID:      userID,
		interval:    interval,
		concurrency: concurrency,
	}
}

// StartPolling checks pending watches every interval until ctx is done.
func (w *Worker) StartPolling(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.checkPendings(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// checkPendings runs one attempt for every pending watch, at most
// concurrency at a time. A failing watch does not stop the others.
func (w *Worker) checkPendings(ctx context.Context) {
	pendings, err := w.watchUC.Pending(ctx, w.userID)
	if err != nil {
		slog.Error("error getting pending watches", "error", err)
		return
	}

	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for _, pending := range pendings {
		g.Go(func() error {
			if err := w.watchUC.Process(ctx, pending); err != nil {
				slog.Warn("error handling watch", "watch", pending.ID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
