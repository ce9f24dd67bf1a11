package bot

import (
	"context"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// Task is a search running in the background. Front ends start one when the
// engine is to move and wait on Done (or Poll) without blocking their own
// event loop.
type Task struct {
	done   chan struct{}
	cancel context.CancelFunc
	result Result
	err    error
}

// Start clones board and searches it on a new goroutine. The caller's board
// may be changed or discarded right after Start returns.
func Start(ctx context.Context, board *domain.Board, depth int, player domain.PlayerID) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	snapshot := board.Clone()
	go func() {
		defer close(t.done)
		defer cancel()
		t.result, t.err = BestMove(ctx, snapshot, depth, player)
	}()

	return t
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the search finishes.
func (t *Task) Wait() (Result, error) {
	<-t.done
	return t.result, t.err
}

// Poll returns the result if the search has finished; ok is false otherwise.
func (t *Task) Poll() (res Result, err error, ok bool) {
	select {
	case <-t.done:
		return t.result, t.err, true
	default:
		return Result{Move: NoMove}, nil, false
	}
}

// Cancel stops the search at the next move expansion. Wait then returns the
// context error.
func (t *Task) Cancel() {
	t.cancel()
}
