package domain

import "fmt"

// Game sequences turns over a live Board. Player1 always moves first.
type Game struct {
	Board         *Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	MoveCount     int
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
		MoveCount:     0,
	}
}

// Reset starts a fresh game on the same Game value.
func (g *Game) Reset() {
	g.Board.Reset()
	g.CurrentPlayer = Player1
	g.Status = StatusActive
	g.Winner = Empty
	g.MoveCount = 0
}

// MakeMove drops a disk for player and returns the row it landed on.
func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameOver
	}
	if player != g.CurrentPlayer {
		return -1, fmt.Errorf("%w: player %d to move", ErrNotYourTurn, g.CurrentPlayer)
	}

	row, err := g.Board.Drop(column, player)
	if err != nil {
		return -1, err
	}

	g.MoveCount++

	if g.Board.CheckVictory() {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
