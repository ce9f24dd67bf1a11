package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
	"github.com/rs/zerolog/log"
)

// Match is one game between two seats, each human or engine. The engine is
// handed the live board once per engine turn and only ever clones it.
type Match struct {
	ID            string
	Game          *domain.Game
	Players       [2]domain.PlayerConfig
	SearchTimeout time.Duration
	CreatedAt     time.Time
	LastActivity  time.Time
	FinishedAt    time.Time

	mu   sync.Mutex
	task *bot.Task
}

// MoveRecord describes one applied move.
type MoveRecord struct {
	Player domain.PlayerID `json:"player"`
	Column int             `json:"column"`
	Row    int             `json:"row"`
}

// MatchState is a read-only snapshot for front ends.
type MatchState struct {
	ID            string            `json:"gameId"`
	Board         [][]int           `json:"board"`
	CurrentPlayer domain.PlayerID   `json:"currentTurn"`
	Status        domain.GameStatus `json:"status"`
	Winner        domain.PlayerID   `json:"winner"`
	MoveCount     int               `json:"moveCount"`
	Players       [2]string         `json:"players"`
}

func NewMatch(p1, p2 domain.PlayerConfig, searchTimeout time.Duration) *Match {
	now := time.Now()
	return &Match{
		ID:            uid.GenerateMatchID(),
		Game:          domain.NewGame(),
		Players:       [2]domain.PlayerConfig{p1, p2},
		SearchTimeout: searchTimeout,
		CreatedAt:     now,
		LastActivity:  now,
	}
}

// ConfigFor returns the seat configuration of player.
func (m *Match) ConfigFor(player domain.PlayerID) domain.PlayerConfig {
	if player == domain.Player2 {
		return m.Players[1]
	}
	return m.Players[0]
}

func (m *Match) CurrentPlayer() domain.PlayerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Game.CurrentPlayer
}

func (m *Match) IsFinished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Game.IsFinished()
}

// IsEngineTurn reports whether the side to move is an engine seat.
func (m *Match) IsEngineTurn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.Game.IsFinished() && m.ConfigFor(m.Game.CurrentPlayer).IsEngine()
}

// HandleMove applies a human move for player.
func (m *Match) HandleMove(player domain.PlayerID, column int) (MoveRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ConfigFor(player).IsEngine() {
		return MoveRecord{}, fmt.Errorf("%w: player %d is engine-controlled", domain.ErrNotYourTurn, player)
	}
	return m.applyLocked(player, column)
}

func (m *Match) applyLocked(player domain.PlayerID, column int) (MoveRecord, error) {
	row, err := m.Game.MakeMove(player, column)
	if err != nil {
		return MoveRecord{}, err
	}

	m.LastActivity = time.Now()
	if m.Game.IsFinished() {
		m.FinishedAt = m.LastActivity
		log.Info().Str("component", "match").Str("match", m.ID).
			Str("status", string(m.Game.Status)).Int("winner", int(m.Game.Winner)).
			Int("moves", m.Game.MoveCount).Msg("game over")
	}
	return MoveRecord{Player: player, Column: column, Row: row}, nil
}

// StartEngineTurn launches the search for the engine seat to move. Calling it
// again while that search runs returns the same task.
func (m *Match) StartEngineTurn(ctx context.Context) (*bot.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Game.IsFinished() {
		return nil, domain.ErrGameOver
	}
	player := m.Game.CurrentPlayer
	cfg := m.ConfigFor(player)
	if !cfg.IsEngine() {
		return nil, fmt.Errorf("%w: player %d is human", domain.ErrNotYourTurn, player)
	}
	if m.task != nil {
		return m.task, nil
	}

	cancel := context.CancelFunc(func() {})
	if m.SearchTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.SearchTimeout)
	}
	task := bot.Start(ctx, m.Game.Board, cfg.Level, player)
	go func() {
		<-task.Done()
		cancel()
	}()

	m.task = task
	log.Debug().Str("component", "match").Str("match", m.ID).
		Int("player", int(player)).Int("level", cfg.Level).Msg("engine thinking")
	return task, nil
}

// ApplyEngineResult plays the move task found. It fails with
// domain.ErrStaleSearch when the match was reset after the task started. A
// search that hits its deadline falls back to a depth-1 search so the engine
// seat still moves.
func (m *Match) ApplyEngineResult(task *bot.Task) (MoveRecord, bot.Result, error) {
	res, err := task.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.task != task {
		return MoveRecord{}, res, domain.ErrStaleSearch
	}
	m.task = nil

	if errors.Is(err, context.DeadlineExceeded) {
		player := m.Game.CurrentPlayer
		log.Warn().Str("component", "match").Str("match", m.ID).
			Int("player", int(player)).Int("level", m.ConfigFor(player).Level).
			Dur("timeout", m.SearchTimeout).Msg("search timed out, playing depth 1 move")
		res, err = bot.BestMove(context.Background(), m.Game.Board, bot.MinDepth, player)
	}
	if err != nil {
		return MoveRecord{}, res, err
	}
	if !res.HasMove() {
		return MoveRecord{}, res, domain.ErrNoLegalMove
	}

	rec, err := m.applyLocked(m.Game.CurrentPlayer, res.Move)
	return rec, res, err
}

// PlayEngineTurn searches and plays the engine's move synchronously.
func (m *Match) PlayEngineTurn(ctx context.Context) (MoveRecord, bot.Result, error) {
	task, err := m.StartEngineTurn(ctx)
	if err != nil {
		return MoveRecord{}, bot.Result{Move: bot.NoMove}, err
	}
	return m.ApplyEngineResult(task)
}

// Reset starts a new game with the same seats, abandoning any running search.
func (m *Match) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.task != nil {
		m.task.Cancel()
		m.task = nil
	}
	m.Game.Reset()
	m.LastActivity = time.Now()
	m.FinishedAt = time.Time{}
}

func (m *Match) Snapshot() MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MatchState{
		ID:            m.ID,
		Board:         m.Game.Board.Rows(),
		CurrentPlayer: m.Game.CurrentPlayer,
		Status:        m.Game.Status,
		Winner:        m.Game.Winner,
		MoveCount:     m.Game.MoveCount,
		Players:       [2]string{m.Players[0].String(), m.Players[1].String()},
	}
}

// BoardSnapshot returns a copy of the live board.
func (m *Match) BoardSnapshot() *domain.Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Game.Board.Clone()
}
