package bot

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	NoMove   = -1
	MinDepth = domain.MinLevel
	MaxDepth = domain.MaxLevel

	negInf = math.MinInt
	posInf = math.MaxInt
)

// Result is the outcome of a search. Move is NoMove when no choice was made.
type Result struct {
	Score int   `json:"score"`
	Move  int   `json:"move"`
	Nodes int64 `json:"nodes"`
	Depth int   `json:"depth"`
}

func (r Result) HasMove() bool {
	return r.Move != NoMove
}

type Options struct {
	// DisablePruning explores the full tree. Used to check that alpha-beta
	// never changes the result.
	DisablePruning bool
}

// searcher carries the state of one top-level search. It is never shared.
type searcher struct {
	ctx     context.Context
	player  domain.PlayerID
	pruning bool
	nodes   int64
}

// BestMove runs alpha-beta to the given depth and returns the move that is
// best for player along with its score.
func BestMove(ctx context.Context, board *domain.Board, depth int, player domain.PlayerID) (Result, error) {
	return Search(ctx, board, depth, player, Options{})
}

// Search is BestMove with options. board is only read; every branch works on
// its own clone.
func Search(ctx context.Context, board *domain.Board, depth int, player domain.PlayerID, opts Options) (Result, error) {
	if depth < MinDepth || depth > MaxDepth {
		return Result{Move: NoMove}, fmt.Errorf("%w: %d not in [%d,%d]", domain.ErrInvalidDepth, depth, MinDepth, MaxDepth)
	}
	if !player.Valid() {
		return Result{Move: NoMove}, fmt.Errorf("%w: %d", domain.ErrInvalidPlayer, player)
	}

	// A full board is a normal end-of-game state, not an error.
	if board.IsFull() {
		return Result{Score: board.Evaluate(player), Move: NoMove, Depth: depth}, nil
	}

	s := &searcher{ctx: ctx, player: player, pruning: !opts.DisablePruning}
	start := time.Now()

	score, move, err := s.search(board, depth, negInf, posInf, true)
	if err != nil {
		return Result{Move: NoMove}, err
	}

	log.Debug().
		Str("component", "bot").
		Int("depth", depth).
		Int("player", int(player)).
		Int("move", move).
		Int("score", score).
		Int64("nodes", s.nodes).
		Bool("pruning", s.pruning).
		Dur("elapsed", time.Since(start)).
		Msg("search finished")

	return Result{Score: score, Move: move, Nodes: s.nodes, Depth: depth}, nil
}

// ChooseMove returns only the column to play.
func ChooseMove(ctx context.Context, board *domain.Board, depth int, player domain.PlayerID) (int, error) {
	res, err := BestMove(ctx, board, depth, player)
	if err != nil {
		return NoMove, err
	}
	if !res.HasMove() {
		return NoMove, domain.ErrNoLegalMove
	}
	return res.Move, nil
}

func (s *searcher) search(board *domain.Board, depth, alpha, beta int, maximizing bool) (int, int, error) {
	s.nodes++

	moves := board.LegalMoves()

	// One column left: stop here instead of walking the forced line.
	if len(moves) == 1 {
		return board.Evaluate(s.player), moves[0], nil
	}

	if depth == 0 || board.CheckVictory() {
		return board.Evaluate(s.player), NoMove, nil
	}

	actor := s.player
	best := negInf
	if !maximizing {
		actor = s.player.Opponent()
		best = posInf
	}
	bestMove := NoMove

	for _, col := range moves {
		if err := s.ctx.Err(); err != nil {
			return 0, NoMove, err
		}

		child := board.Clone()
		if _, err := child.Drop(col, actor); err != nil {
			return 0, NoMove, err
		}

		value, _, err := s.search(child, depth-1, alpha, beta, !maximizing)
		if err != nil {
			return 0, NoMove, err
		}

		if maximizing {
			if value > best {
				best = value
				bestMove = col
			}
			alpha = max(alpha, value)
		} else {
			if value < best {
				best = value
				bestMove = col
			}
			beta = min(beta, value)
		}

		if s.pruning && beta <= alpha {
			break
		}
	}

	return best, bestMove, nil
}
