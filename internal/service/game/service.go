package game

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/rs/zerolog/log"
)

// finishedTTL is how long a finished match is kept around for a rematch.
const finishedTTL = 1 * time.Hour

// Manager tracks the matches driven by connected front ends.
type Manager struct {
	matches       map[string]*Match
	mu            sync.RWMutex
	searchTimeout time.Duration
	idleTTL       time.Duration
}

// MatchSummary is the listing entry for an active match.
type MatchSummary struct {
	ID        string            `json:"gameId"`
	Player1   string            `json:"player1"`
	Player2   string            `json:"player2"`
	Status    domain.GameStatus `json:"status"`
	MoveCount int               `json:"moveCount"`
	StartedAt string            `json:"startedAt"`
}

func NewManager(searchTimeout, idleTTL time.Duration) *Manager {
	return &Manager{
		matches:       make(map[string]*Match),
		searchTimeout: searchTimeout,
		idleTTL:       idleTTL,
	}
}

func (mg *Manager) Create(p1, p2 domain.PlayerConfig) *Match {
	m := NewMatch(p1, p2, mg.searchTimeout)

	mg.mu.Lock()
	mg.matches[m.ID] = m
	mg.mu.Unlock()

	log.Info().Str("component", "match").Str("match", m.ID).
		Str("player1", p1.String()).Str("player2", p2.String()).Msg("created match")
	return m
}

func (mg *Manager) Get(id string) (*Match, bool) {
	mg.mu.RLock()
	defer mg.mu.RUnlock()

	m, exists := mg.matches[id]
	return m, exists
}

func (mg *Manager) Remove(id string) error {
	mg.mu.Lock()
	defer mg.mu.Unlock()

	m, exists := mg.matches[id]
	if !exists {
		return fmt.Errorf("match %s not found", id)
	}
	m.Reset()
	delete(mg.matches, id)

	log.Info().Str("component", "match").Str("match", id).Msg("removed match")
	return nil
}

func (mg *Manager) Count() int {
	mg.mu.RLock()
	defer mg.mu.RUnlock()
	return len(mg.matches)
}

// ActiveMatches lists every match still in play, oldest first.
func (mg *Manager) ActiveMatches() []MatchSummary {
	mg.mu.RLock()
	defer mg.mu.RUnlock()

	out := make([]MatchSummary, 0, len(mg.matches))
	for _, m := range mg.matches {
		state := m.Snapshot()
		if state.Status != domain.StatusActive {
			continue
		}
		out = append(out, MatchSummary{
			ID:        m.ID,
			Player1:   m.Players[0].DisplayName(),
			Player2:   m.Players[1].DisplayName(),
			Status:    state.Status,
			MoveCount: state.MoveCount,
			StartedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt < out[j].StartedAt
	})
	return out
}

// CleanupOldMatches drops finished matches older than an hour and matches
// idle for longer than the idle TTL. It returns how many were removed.
func (mg *Manager) CleanupOldMatches(now time.Time) int {
	mg.mu.Lock()
	defer mg.mu.Unlock()

	count := 0
	for id, m := range mg.matches {
		m.mu.Lock()
		finished := m.Game.IsFinished()
		finishedAt, lastActivity := m.FinishedAt, m.LastActivity
		m.mu.Unlock()

		stale := false
		if finished {
			stale = now.Sub(finishedAt) > finishedTTL
		} else {
			stale = mg.idleTTL > 0 && now.Sub(lastActivity) > mg.idleTTL
		}
		if stale {
			m.Reset()
			delete(mg.matches, id)
			count++
		}
	}

	if count > 0 {
		log.Info().Str("component", "match").Int("removed", count).Msg("memory cleanup removed stale matches")
	}
	return count
}
