package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/tui"
	"github.com/iamasit07/4-in-a-row/engine/pkg/logger"
	"github.com/rs/zerolog/log"
)

var (
	flagPlayer1 = flag.String("p1", "", "Player 1: human, ai:N (1-42), easy, medium or hard")
	flagPlayer2 = flag.String("p2", "", "Player 2: human, ai:N (1-42), easy, medium or hard")
	flagTUI     = flag.Bool("tui", false, "Full-screen terminal board instead of the line prompt")
)

func main() {
	config.LoadEnv()
	cfg := config.LoadConfig()
	flag.Parse()
	if *flagTUI {
		// the screen belongs to tview
		logger.Setup("disabled", false)
	} else {
		logger.Setup(cfg.LogLevel, true)
	}

	p1Str, p2Str := cfg.Player1, cfg.Player2
	if *flagPlayer1 != "" {
		p1Str = *flagPlayer1
	}
	if *flagPlayer2 != "" {
		p2Str = *flagPlayer2
	}

	p1, err := domain.ParsePlayerConfig(p1Str)
	if err != nil {
		fmt.Fprintln(os.Stderr, "player 1:", err)
		os.Exit(2)
	}
	p2, err := domain.ParsePlayerConfig(p2Str)
	if err != nil {
		fmt.Fprintln(os.Stderr, "player 2:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := game.NewMatch(p1, p2, cfg.SearchTimeout)
	if *flagTUI {
		err = tui.Run(ctx, m)
	} else {
		err = run(ctx, m, os.Stdin, os.Stdout)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("game aborted")
		os.Exit(1)
	}
}

// run plays games on m until the input ends or the user quits.
func run(ctx context.Context, m *game.Match, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		s := m.Snapshot()
		board := m.BoardSnapshot()
		fmt.Fprint(out, board.String())

		if m.IsFinished() {
			if s.Status == domain.StatusWon {
				fmt.Fprintf(out, "Player %d wins !\n", s.Winner)
			} else {
				fmt.Fprintln(out, "This a draw !")
			}
			fmt.Fprint(out, "[n]ew game or [q]uit: ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			if strings.TrimSpace(scanner.Text()) == "n" {
				m.Reset()
				continue
			}
			return nil
		}

		player := s.CurrentPlayer
		cfg := m.ConfigFor(player)
		fmt.Fprintf(out, "Turn %d - Player %d (%s) is playing\n", s.MoveCount+1, player, cfg.DisplayName())

		if cfg.IsEngine() {
			rec, res, err := m.PlayEngineTurn(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Player %d plays column %d (score %d, %d nodes)\n", player, rec.Column, res.Score, res.Nodes)
			continue
		}

		fmt.Fprint(out, "Column (0-6), [n]ew game or [q]uit: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "q":
			return nil
		case "n":
			m.Reset()
			continue
		}

		col, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintf(out, "not a column: %q\n", input)
			continue
		}
		if _, err := m.HandleMove(player, col); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}
