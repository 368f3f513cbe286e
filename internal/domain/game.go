package domain

import "errors"

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// String returns the mark drawn for the cell, or "" for Empty.
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Size is the side length of the board.
const Size = 3

// Board is a fixed 3x3 board stored row-major.
type Board [Size * Size]Cell

// Errors returned by domain operations.
var (
	ErrOutOfBounds   = errors.New("out of bounds")
	ErrOccupied      = errors.New("cell occupied")
	ErrGameOver      = errors.New("game over")
	ErrNotSingleMove = errors.New("boards do not differ by a single move")
)

// Lines lists the winning lines in the order they are checked:
// rows, then columns, then diagonals.
var Lines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// Winner describes a completed line.
type Winner struct {
	Player Cell
	Line   [3]int
}

// Contains reports whether cell i is part of the winning line.
func (w Winner) Contains(i int) bool {
	for _, idx := range w.Line {
		if idx == i {
			return true
		}
	}
	return false
}

// CalculateWinner returns the first complete line on b.
func CalculateWinner(b Board) (Winner, bool) {
	for _, ln := range Lines {
		a := b[ln[0]]
		if a != Empty && a == b[ln[1]] && a == b[ln[2]] {
			return Winner{Player: a, Line: ln}, true
		}
	}
	return Winner{}, false
}

// Full reports whether no cell is Empty.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Marks returns the number of non-Empty cells.
func (b Board) Marks() int {
	n := 0
	for _, c := range b {
		if c != Empty {
			n++
		}
	}
	return n
}

// IsDraw reports a full board without a winner.
func IsDraw(b Board) bool {
	if !b.Full() {
		return false
	}
	_, won := CalculateWinner(b)
	return !won
}

// Mover returns the side to play after move number n (X moves on even n).
func Mover(n int) Cell {
	if n%2 == 0 {
		return X
	}
	return O
}

// Place returns a copy of b with side written to cell i.
// The move is refused once the board has a winner.
func (b Board) Place(i int, side Cell) (Board, error) {
	if i < 0 || i >= len(b) {
		return b, ErrOutOfBounds
	}
	if _, won := CalculateWinner(b); won {
		return b, ErrGameOver
	}
	if b[i] != Empty {
		return b, ErrOccupied
	}
	b[i] = side
	return b, nil
}
