package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/selfplay"
	"github.com/iamasit07/4-in-a-row/engine/pkg/logger"
	"github.com/rs/zerolog/log"
)

var (
	flagLevels      = flag.String("levels", "1,2,4,6", "Comma-separated engine levels to pit against each other")
	flagConcurrency = flag.Int("concurrency", 4, "Games played at once")
	flagTimeout     = flag.Duration("move-timeout", 0, "Per-move search timeout (0 = none)")
)

func parseLevels(s string) ([]int, error) {
	var levels []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		level, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", part, err)
		}
		if err := domain.ValidateLevel(level); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	if len(levels) < 2 {
		return nil, fmt.Errorf("need at least two levels, got %d", len(levels))
	}
	return levels, nil
}

func main() {
	config.LoadEnv()
	cfg := config.LoadConfig()
	flag.Parse()
	logger.Setup(cfg.LogLevel, true)

	levels, err := parseLevels(*flagLevels)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	pairings := selfplay.RoundRobin(levels)
	outcomes, err := selfplay.Run(ctx, pairings, *flagConcurrency, *flagTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("self-play failed")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "P1\tP2\tWINNER\tMOVES\tTIME")
	for _, o := range outcomes {
		winner := "draw"
		if o.Winner != domain.Empty {
			winner = fmt.Sprintf("P%d (level %d)", o.Winner, o.WinnerLevel())
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%s\n", o.Pairing.Player1Level, o.Pairing.Player2Level, winner, o.Moves, o.Duration.Round(time.Millisecond))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "LEVEL\tWINS\tLOSSES\tDRAWS")
	for _, s := range selfplay.Summarize(outcomes) {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", s.Level, s.Wins, s.Losses, s.Draws)
	}
	w.Flush()

	log.Info().Int("games", len(outcomes)).Dur("took", time.Since(start)).Msg("self-play finished")
}
