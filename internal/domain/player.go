package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Engine levels are search depths in plies.
const (
	MinLevel = 1
	MaxLevel = Cells
)

type PlayerKind string

const (
	KindHuman  PlayerKind = "human"
	KindEngine PlayerKind = "engine"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var difficultyLevels = map[Difficulty]int{
	DifficultyEasy:   2,
	DifficultyMedium: 4,
	DifficultyHard:   7,
}

// Level returns the search depth for a difficulty preset.
func (d Difficulty) Level() (int, bool) {
	level, ok := difficultyLevels[d]
	return level, ok
}

var BotNames = map[Difficulty]string{
	DifficultyEasy:   "Alice",
	DifficultyMedium: "Bob",
	DifficultyHard:   "Charles",
}

// BotName names an engine seat after the difficulty band its level falls in.
func BotName(level int) string {
	switch {
	case level <= 0:
		return "BOT"
	case level < 4:
		return BotNames[DifficultyEasy]
	case level < 7:
		return BotNames[DifficultyMedium]
	default:
		return BotNames[DifficultyHard]
	}
}

// PlayerConfig says who controls a seat. Level is only set for engines.
type PlayerConfig struct {
	Kind  PlayerKind
	Level int
}

func Human() PlayerConfig {
	return PlayerConfig{Kind: KindHuman}
}

func Engine(level int) PlayerConfig {
	return PlayerConfig{Kind: KindEngine, Level: level}
}

func (pc PlayerConfig) IsEngine() bool {
	return pc.Kind == KindEngine
}

func (pc PlayerConfig) String() string {
	if pc.IsEngine() {
		return fmt.Sprintf("ai:%d", pc.Level)
	}
	return string(KindHuman)
}

// DisplayName is what a front end shows for the seat.
func (pc PlayerConfig) DisplayName() string {
	if pc.IsEngine() {
		return fmt.Sprintf("%s (level %d)", BotName(pc.Level), pc.Level)
	}
	return "Human"
}

// ParsePlayerConfig accepts "human", "ai:N", "level N", a bare level, or a
// difficulty preset name.
func ParsePlayerConfig(s string) (PlayerConfig, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == string(KindHuman) {
		return Human(), nil
	}
	if level, ok := Difficulty(v).Level(); ok {
		return Engine(level), nil
	}

	for _, prefix := range []string{"ai:", "level ", "alpha-beta level "} {
		if strings.HasPrefix(v, prefix) {
			v = strings.TrimSpace(strings.TrimPrefix(v, prefix))
			break
		}
	}

	level, err := strconv.Atoi(v)
	if err != nil {
		return PlayerConfig{}, fmt.Errorf("%w: unknown player type %q", ErrInvalidPlayer, s)
	}
	if err := ValidateLevel(level); err != nil {
		return PlayerConfig{}, err
	}
	return Engine(level), nil
}

func ValidateLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidDepth, level, MinLevel, MaxLevel)
	}
	return nil
}
