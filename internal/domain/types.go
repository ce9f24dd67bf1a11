package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Valid reports whether p is one of the two players (Empty is not).
func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

func (p PlayerID) Opponent() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

const (
	Rows         = 6
	Columns      = 7
	ToWin        = 4
	Cells        = Rows * Columns
	CenterColumn = Columns / 2
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove   Error = "invalid move"
	ErrInvalidDepth  Error = "invalid search depth"
	ErrNoLegalMove   Error = "no legal move"
	ErrInvalidPlayer Error = "invalid player"
	ErrInvalidBoard  Error = "invalid board"
	ErrGameOver      Error = "game is over"
	ErrNotYourTurn   Error = "not your turn"
	ErrStaleSearch   Error = "search result no longer applies to this match"
)
