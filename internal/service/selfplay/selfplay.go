// Package selfplay pits engine levels against each other. Each game owns its
// own match and boards, so games can run side by side.
package selfplay

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Pairing struct {
	Player1Level int `json:"player1Level"`
	Player2Level int `json:"player2Level"`
}

type Outcome struct {
	Pairing  Pairing         `json:"pairing"`
	Winner   domain.PlayerID `json:"winner"`
	Moves    int             `json:"moves"`
	Columns  []int           `json:"columns"`
	Duration time.Duration   `json:"duration"`
}

// WinnerLevel is the level of the winning engine, or 0 for a draw.
func (o Outcome) WinnerLevel() int {
	switch o.Winner {
	case domain.Player1:
		return o.Pairing.Player1Level
	case domain.Player2:
		return o.Pairing.Player2Level
	}
	return 0
}

// RoundRobin returns every ordered pairing of two distinct levels, so each
// level plays each other level once as Player1 and once as Player2.
func RoundRobin(levels []int) []Pairing {
	var out []Pairing
	for _, a := range levels {
		for _, b := range levels {
			if a != b {
				out = append(out, Pairing{Player1Level: a, Player2Level: b})
			}
		}
	}
	return out
}

// PlayGame plays one engine-vs-engine game to the end. searchTimeout bounds
// each move; zero means no bound.
func PlayGame(ctx context.Context, p Pairing, searchTimeout time.Duration) (Outcome, error) {
	for _, level := range []int{p.Player1Level, p.Player2Level} {
		if err := domain.ValidateLevel(level); err != nil {
			return Outcome{}, err
		}
	}

	start := time.Now()
	m := game.NewMatch(domain.Engine(p.Player1Level), domain.Engine(p.Player2Level), searchTimeout)
	out := Outcome{Pairing: p}

	for !m.IsFinished() {
		rec, _, err := m.PlayEngineTurn(ctx)
		if err != nil {
			return Outcome{}, fmt.Errorf("pairing %d vs %d, move %d: %w", p.Player1Level, p.Player2Level, len(out.Columns)+1, err)
		}
		out.Columns = append(out.Columns, rec.Column)
	}

	state := m.Snapshot()
	out.Winner = state.Winner
	out.Moves = state.MoveCount
	out.Duration = time.Since(start)
	return out, nil
}

// Run plays all pairings with at most concurrency games at once. Outcomes
// come back in the order of pairings. The first error cancels the rest.
func Run(ctx context.Context, pairings []Pairing, concurrency int, searchTimeout time.Duration) ([]Outcome, error) {
	outcomes := make([]Outcome, len(pairings))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, p := range pairings {
		i, p := i, p
		g.Go(func() error {
			o, err := PlayGame(ctx, p, searchTimeout)
			if err != nil {
				return err
			}
			log.Info().Str("component", "selfplay").
				Int("player1", p.Player1Level).Int("player2", p.Player2Level).
				Int("winner", int(o.Winner)).Int("moves", o.Moves).Dur("took", o.Duration).
				Msg("game finished")
			outcomes[i] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Standing is one level's record across a run.
type Standing struct {
	Level  int `json:"level"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Summarize tallies outcomes per level, best record first.
func Summarize(outcomes []Outcome) []Standing {
	byLevel := make(map[int]*Standing)
	get := func(level int) *Standing {
		s, ok := byLevel[level]
		if !ok {
			s = &Standing{Level: level}
			byLevel[level] = s
		}
		return s
	}

	for _, o := range outcomes {
		p1, p2 := get(o.Pairing.Player1Level), get(o.Pairing.Player2Level)
		switch o.Winner {
		case domain.Player1:
			p1.Wins++
			p2.Losses++
		case domain.Player2:
			p2.Wins++
			p1.Losses++
		default:
			p1.Draws++
			p2.Draws++
		}
	}

	out := make([]Standing, 0, len(byLevel))
	for _, s := range byLevel {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].Losses != out[j].Losses {
			return out[i].Losses < out[j].Losses
		}
		return out[i].Level < out[j].Level
	})
	return out
}
