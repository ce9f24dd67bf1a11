package game

import (
	"testing"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

func TestManagerLifecycle(t *testing.T) {
	mg := NewManager(0, time.Hour)

	m := mg.Create(domain.Human(), domain.Engine(6))
	if got, ok := mg.Get(m.ID); !ok || got != m {
		t.Fatal("created match not found")
	}
	if mg.Count() != 1 {
		t.Fatalf("expected 1 match, got %d", mg.Count())
	}

	if err := mg.Remove(m.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := mg.Get(m.ID); ok {
		t.Fatal("removed match still listed")
	}
	if err := mg.Remove(m.ID); err == nil {
		t.Fatal("expected error removing unknown match")
	}
}

func TestActiveMatches(t *testing.T) {
	mg := NewManager(0, time.Hour)

	older := mg.Create(domain.Human(), domain.Engine(2))
	older.CreatedAt = time.Now().Add(-time.Minute)
	newer := mg.Create(domain.Engine(9), domain.Human())
	done := mg.Create(domain.Human(), domain.Human())
	done.Game.Status = domain.StatusDraw

	list := mg.ActiveMatches()
	if len(list) != 2 {
		t.Fatalf("expected 2 active matches, got %d", len(list))
	}
	if list[0].ID != older.ID || list[1].ID != newer.ID {
		t.Fatalf("matches not sorted by start: %+v", list)
	}
	if list[0].Player2 != "Alice (level 2)" || list[1].Player1 != "Charles (level 9)" {
		t.Fatalf("unexpected display names: %+v", list)
	}
}

func TestCleanupOldMatches(t *testing.T) {
	mg := NewManager(0, 2*time.Hour)
	now := time.Now()

	fresh := mg.Create(domain.Human(), domain.Human())

	idle := mg.Create(domain.Human(), domain.Human())
	idle.LastActivity = now.Add(-3 * time.Hour)

	recentlyDone := mg.Create(domain.Human(), domain.Human())
	recentlyDone.Game.Status = domain.StatusWon
	recentlyDone.FinishedAt = now.Add(-10 * time.Minute)

	longDone := mg.Create(domain.Human(), domain.Human())
	longDone.Game.Status = domain.StatusDraw
	longDone.FinishedAt = now.Add(-2 * time.Hour)

	if removed := mg.CleanupOldMatches(now); removed != 2 {
		t.Fatalf("expected 2 removals, got %d", removed)
	}
	for _, m := range []*Match{fresh, recentlyDone} {
		if _, ok := mg.Get(m.ID); !ok {
			t.Errorf("match %s should have been kept", m.ID)
		}
	}
	for _, m := range []*Match{idle, longDone} {
		if _, ok := mg.Get(m.ID); ok {
			t.Errorf("match %s should have been removed", m.ID)
		}
	}
}
