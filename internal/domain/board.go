package domain

import (
	"fmt"
	"strings"
)

// moveOrder lists the columns center first, then alternating outward.
// Search relies on this order for both pruning and tie-breaks.
var moveOrder = [Columns]int{3, 4, 2, 5, 1, 6, 0}

// Board is a 7x6 gravity-filled grid stored as one flat array, column-major,
// with row 0 at the bottom. Copying a Board value copies the whole grid.
type Board struct {
	cells   [Cells]PlayerID
	heights [Columns]int
}

func NewBoard() *Board {
	return &Board{}
}

func index(column, row int) int {
	return column*Rows + row
}

func inBounds(column, row int) bool {
	return column >= 0 && column < Columns && row >= 0 && row < Rows
}

// Reset empties the board in place.
func (b *Board) Reset() {
	*b = Board{}
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) Cell(column, row int) PlayerID {
	if !inBounds(column, row) {
		return Empty
	}
	return b.cells[index(column, row)]
}

// Height is the number of disks in column.
func (b *Board) Height(column int) int {
	if column < 0 || column >= Columns {
		return 0
	}
	return b.heights[column]
}

func (b *Board) IsColumnFull(column int) bool {
	return b.Height(column) == Rows
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b.heights[c] < Rows {
			return false
		}
	}
	return true
}

// LegalMoves returns the non-full columns in center-out order.
func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, Columns)
	for _, col := range moveOrder {
		if b.heights[col] < Rows {
			moves = append(moves, col)
		}
	}
	return moves
}

// Drop places a disk for player in the lowest empty cell of column and
// returns the row it landed on. The board is left untouched on error.
func (b *Board) Drop(column int, player PlayerID) (int, error) {
	if !player.Valid() {
		return -1, fmt.Errorf("%w: %w %d", ErrInvalidMove, ErrInvalidPlayer, player)
	}
	if column < 0 || column >= Columns {
		return -1, fmt.Errorf("%w: column %d out of range", ErrInvalidMove, column)
	}
	row := b.heights[column]
	if row >= Rows {
		return -1, fmt.Errorf("%w: column %d is full", ErrInvalidMove, column)
	}
	b.cells[index(column, row)] = player
	b.heights[column]++
	return row, nil
}

// DiskCount returns how many disks each player has on the board.
func (b *Board) DiskCount() (p1, p2 int) {
	for _, cell := range b.cells {
		switch cell {
		case Player1:
			p1++
		case Player2:
			p2++
		}
	}
	return p1, p2
}

// FromRows builds a board from a [row][column] grid with row 0 at the bottom.
// Turn order is not checked, only dimensions, cell values and gravity.
func FromRows(rows [][]int) (*Board, error) {
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}
	b := NewBoard()
	for r := 0; r < Rows; r++ {
		if len(rows[r]) != Columns {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidBoard, r, len(rows[r]), Columns)
		}
		for c := 0; c < Columns; c++ {
			p := PlayerID(rows[r][c])
			if p == Empty {
				continue
			}
			if !p.Valid() {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidBoard, c, r, rows[r][c])
			}
			if b.heights[c] != r {
				return nil, fmt.Errorf("%w: floating disk at (%d,%d)", ErrInvalidBoard, c, r)
			}
			b.cells[index(c, r)] = p
			b.heights[c]++
		}
	}
	return b, nil
}

// FromMoves replays columns alternately, Player1 first.
func FromMoves(columns []int) (*Board, error) {
	b := NewBoard()
	player := Player1
	for i, col := range columns {
		if _, err := b.Drop(col, player); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		player = player.Opponent()
	}
	return b, nil
}

// Rows exports the grid as [row][column], row 0 at the bottom.
func (b *Board) Rows() [][]int {
	out := make([][]int, Rows)
	for r := 0; r < Rows; r++ {
		out[r] = make([]int, Columns)
		for c := 0; c < Columns; c++ {
			out[r][c] = int(b.cells[index(c, r)])
		}
	}
	return out
}

var cellGlyph = map[PlayerID]byte{Empty: '.', Player1: 'X', Player2: 'O'}

func (b *Board) String() string {
	var sb strings.Builder
	for r := Rows - 1; r >= 0; r-- {
		for c := 0; c < Columns; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(cellGlyph[b.cells[index(c, r)]])
		}
		sb.WriteByte('\n')
	}
	for c := 0; c < Columns; c++ {
		if c > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", c)
	}
	sb.WriteByte('\n')
	return sb.String()
}
