package cleanup

import (
	"context"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/rs/zerolog/log"
)

type Worker struct {
	Matches  *game.Manager
	Interval time.Duration
}

func NewWorker(matches *game.Manager, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	return &Worker{Matches: matches, Interval: interval}
}

// Start runs a cleanup immediately and then on every tick until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Info().Str("component", "cleanup").Dur("interval", w.Interval).Msg("background worker started")

	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("component", "cleanup").Msg("background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() int {
	log.Debug().Str("component", "cleanup").Msg("starting scheduled cleanup task")
	return w.Matches.CleanupOldMatches(time.Now())
}
