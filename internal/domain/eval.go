package domain

const (
	WindowWinScore   = 10000
	WindowThreeScore = 20
)

// positionTable rewards central disks. Indexed [row][column]; the table is
// symmetric top to bottom so row 0 may be read as the bottom row.
var positionTable = [Rows][Columns]int{
	{3, 4, 5, 7, 5, 4, 3},
	{4, 6, 8, 10, 8, 6, 4},
	{5, 8, 11, 13, 11, 8, 5},
	{5, 8, 11, 13, 11, 8, 5},
	{4, 6, 8, 10, 8, 6, 4},
	{3, 4, 5, 7, 5, 4, 3},
}

// PositionWeight returns the central-control weight of a cell.
func PositionWeight(column, row int) int {
	if !inBounds(column, row) {
		return 0
	}
	return positionTable[row][column]
}

// Evaluate scores the board from player's point of view: every window is
// scored on its own and summed, then the position table is added for
// player's disks and subtracted for the opponent's.
func (b *Board) Evaluate(player PlayerID) int {
	opponent := player.Opponent()
	score := 0

	for _, w := range windows {
		score += b.scoreWindow(w, player, opponent)
	}

	for col := 0; col < Columns; col++ {
		for row := 0; row < b.heights[col]; row++ {
			switch b.cells[index(col, row)] {
			case player:
				score += positionTable[row][col]
			case opponent:
				score -= positionTable[row][col]
			}
		}
	}

	return score
}

func (b *Board) scoreWindow(w window, player, opponent PlayerID) int {
	mine, theirs, empty := 0, 0, 0
	for _, i := range w {
		switch b.cells[i] {
		case player:
			mine++
		case opponent:
			theirs++
		default:
			empty++
		}
	}

	switch {
	case mine == ToWin:
		return WindowWinScore
	case theirs == ToWin:
		return -WindowWinScore
	case mine == ToWin-1 && empty == 1:
		return WindowThreeScore
	case theirs == ToWin-1 && empty == 1:
		return -WindowThreeScore
	}
	return 0
}
