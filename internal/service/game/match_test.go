package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

func TestHumanMoveThenEngineReply(t *testing.T) {
	m := NewMatch(domain.Human(), domain.Engine(4), 0)

	rec, err := m.HandleMove(domain.Player1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Column != 3 || rec.Row != 0 || rec.Player != domain.Player1 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if !m.IsEngineTurn() {
		t.Fatal("engine should be on move")
	}

	rec, res, err := m.PlayEngineTurn(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rec.Player != domain.Player2 || rec.Column != res.Move {
		t.Fatalf("engine record %+v does not match result %+v", rec, res)
	}
	if res.Depth != 4 {
		t.Fatalf("expected depth 4, got %d", res.Depth)
	}

	state := m.Snapshot()
	if state.MoveCount != 2 || state.CurrentPlayer != domain.Player1 {
		t.Fatalf("unexpected state %+v", state)
	}
	if state.Players != [2]string{"human", "ai:4"} {
		t.Fatalf("unexpected players %v", state.Players)
	}
}

func TestSeatOwnership(t *testing.T) {
	m := NewMatch(domain.Engine(2), domain.Human(), 0)

	if _, err := m.HandleMove(domain.Player1, 3); !errors.Is(err, domain.ErrNotYourTurn) {
		t.Fatalf("human move for engine seat: expected ErrNotYourTurn, got %v", err)
	}
	if _, _, err := m.PlayEngineTurn(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := m.StartEngineTurn(context.Background()); !errors.Is(err, domain.ErrNotYourTurn) {
		t.Fatalf("engine turn on human move: expected ErrNotYourTurn, got %v", err)
	}
}

func TestStartEngineTurnReusesRunningTask(t *testing.T) {
	m := NewMatch(domain.Engine(domain.MaxLevel), domain.Human(), 0)
	defer m.Reset()

	first, err := m.StartEngineTurn(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.StartEngineTurn(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("expected the running task to be reused")
	}
}

func TestResetDiscardsRunningSearch(t *testing.T) {
	m := NewMatch(domain.Engine(domain.MaxLevel), domain.Human(), 0)

	task, err := m.StartEngineTurn(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	m.Reset()

	if _, _, err := m.ApplyEngineResult(task); !errors.Is(err, domain.ErrStaleSearch) {
		t.Fatalf("expected ErrStaleSearch, got %v", err)
	}
	if got := m.Snapshot().MoveCount; got != 0 {
		t.Fatalf("stale result was applied: %d moves", got)
	}
}

func TestSearchTimeoutFallsBackToShallowMove(t *testing.T) {
	m := NewMatch(domain.Engine(12), domain.Human(), time.Millisecond)

	rec, res, err := m.PlayEngineTurn(context.Background())
	if err != nil {
		t.Fatalf("timed out search should still move, got %v", err)
	}
	if res.Depth != 1 || rec.Column != domain.CenterColumn {
		t.Fatalf("expected depth-1 center move, got %+v / %+v", rec, res)
	}
	if m.IsEngineTurn() || m.CurrentPlayer() != domain.Player2 {
		t.Fatal("turn did not pass to the human")
	}
	if _, err := m.HandleMove(domain.Player2, 3); err != nil {
		t.Fatalf("human could not reply: %v", err)
	}
}

func TestCancelledSearchDoesNotFallBack(t *testing.T) {
	m := NewMatch(domain.Engine(domain.MaxLevel), domain.Human(), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := m.PlayEngineTurn(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if m.Snapshot().MoveCount != 0 {
		t.Fatal("cancelled search should not move")
	}
}

func TestEngineVersusEngineFinishes(t *testing.T) {
	m := NewMatch(domain.Engine(1), domain.Engine(1), 0)

	for i := 0; !m.IsFinished(); i++ {
		if i > domain.Cells {
			t.Fatal("game did not end")
		}
		if _, _, err := m.PlayEngineTurn(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	if _, _, err := m.PlayEngineTurn(context.Background()); !errors.Is(err, domain.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if m.FinishedAt.IsZero() {
		t.Fatal("finish time not recorded")
	}
}

func TestBoardSnapshotIsACopy(t *testing.T) {
	m := NewMatch(domain.Human(), domain.Human(), 0)
	b := m.BoardSnapshot()
	b.Drop(0, domain.Player1)

	if m.Snapshot().Board[0][0] != int(domain.Empty) {
		t.Fatal("snapshot shares state with the match")
	}
}
