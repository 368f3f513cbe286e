package domain

import "fmt"

// Location is the 1-based row and column of a mark.
type Location struct {
	Row int
	Col int
}

func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.Row, l.Col)
}

// LocationOf converts a flat board index to its Location.
func LocationOf(i int) Location {
	return Location{Row: i/Size + 1, Col: i%Size + 1}
}

// Index converts l back to a flat board index.
func (l Location) Index() int {
	return (l.Row-1)*Size + (l.Col - 1)
}

// DeriveLocation finds the cell that turned from Empty into a mark between
// prev and next. Any other difference is rejected with ErrNotSingleMove.
func DeriveLocation(prev, next Board) (Location, error) {
	idx := -1
	for i := range prev {
		if prev[i] == next[i] {
			continue
		}
		if idx >= 0 {
			return Location{}, fmt.Errorf("%w: cells %d and %d changed", ErrNotSingleMove, idx, i)
		}
		if prev[i] != Empty || next[i] == Empty {
			return Location{}, fmt.Errorf("%w: cell %d went from %q to %q", ErrNotSingleMove, i, prev[i], next[i])
		}
		idx = i
	}
	if idx < 0 {
		return Location{}, fmt.Errorf("%w: no cell changed", ErrNotSingleMove)
	}
	return LocationOf(idx), nil
}
