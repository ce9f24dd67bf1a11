package domain

// window is one run of ToWin cells, stored as flat board indices.
type window [ToWin]int

// windows holds every length-4 run on the board in scan order: horizontal,
// vertical, ascending diagonal, descending diagonal. 69 in total.
var windows = buildWindows()

func buildWindows() []window {
	directions := [][2]int{
		{1, 0},  // horizontal
		{0, 1},  // vertical
		{1, 1},  // diagonal /
		{1, -1}, // diagonal \
	}

	var out []window
	for _, dir := range directions {
		dCol, dRow := dir[0], dir[1]
		for col := 0; col < Columns; col++ {
			for row := 0; row < Rows; row++ {
				endCol := col + dCol*(ToWin-1)
				endRow := row + dRow*(ToWin-1)
				if !inBounds(endCol, endRow) {
					continue
				}
				var w window
				for i := 0; i < ToWin; i++ {
					w[i] = index(col+dCol*i, row+dRow*i)
				}
				out = append(out, w)
			}
		}
	}
	return out
}

// owner returns the player holding all four cells of w, or Empty.
func (b *Board) owner(w window) PlayerID {
	first := b.cells[w[0]]
	if first == Empty {
		return Empty
	}
	for i := 1; i < ToWin; i++ {
		if b.cells[w[i]] != first {
			return Empty
		}
	}
	return first
}

// CheckVictory reports whether any player has four in a row anywhere.
func (b *Board) CheckVictory() bool {
	return b.Winner() != Empty
}

// Winner returns the owner of the first four-in-a-row found, scanning both
// players' cells, or Empty when there is none.
func (b *Board) Winner() PlayerID {
	for _, w := range windows {
		if p := b.owner(w); p != Empty {
			return p
		}
	}
	return Empty
}
