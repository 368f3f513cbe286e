package app

import (
	"errors"
	"fmt"

	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

// Errors returned by History.
var (
	ErrInvalidMove    = errors.New("invalid move")
	ErrMoveOutOfRange = errors.New("move out of range")
)

// SortOrder controls the order of the move list. It never affects the
// history itself.
type SortOrder uint8

const (
	Ascending SortOrder = iota
	Descending
)

func (s SortOrder) String() string {
	if s == Descending {
		return "Descending"
	}
	return "Ascending"
}

// Toggle returns the opposite order.
func (s SortOrder) Toggle() SortOrder {
	if s == Descending {
		return Ascending
	}
	return Descending
}

// Entry is one recorded board. Location is nil for the game start.
type Entry struct {
	Board    domain.Board
	Location *domain.Location
}

// History is the sequence of boards of one game together with the selected
// position and the move list order. It is not safe for concurrent use.
type History struct {
	entries []Entry
	current int
	order   SortOrder
}

// NewHistory returns a history holding only the empty start board.
func NewHistory() *History {
	return &History{entries: []Entry{{}}}
}

// Play records next as the board following the current position. Any entries
// after the current position are discarded first.
//
// next must differ from the current board by exactly one mark, placed by the
// side whose turn it is. Rule checks such as "no move after a win" are left to
// PlayAt.
func (h *History) Play(next domain.Board) error {
	prev := h.entries[h.current].Board
	loc, err := domain.DeriveLocation(prev, next)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}
	if want, got := domain.Mover(h.current), next[loc.Index()]; got != want {
		return fmt.Errorf("%w: %s played at %s but %s is next", ErrInvalidMove, got, loc, want)
	}

	// Capped so that slices handed out earlier never see the new entry.
	n := h.current + 1
	h.entries = append(h.entries[:n:n], Entry{Board: next, Location: &loc})
	h.current = len(h.entries) - 1
	return nil
}

// PlayAt places the next mark at cell i of the current board.
// It returns domain.ErrOutOfBounds, domain.ErrOccupied or domain.ErrGameOver
// and leaves the history unchanged when the move is not legal.
func (h *History) PlayAt(i int) error {
	next, err := h.CurrentBoard().Place(i, h.Next())
	if err != nil {
		return err
	}
	return h.Play(next)
}

// JumpTo selects the entry at index move.
func (h *History) JumpTo(move int) error {
	if move < 0 || move >= len(h.entries) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrMoveOutOfRange, move, len(h.entries))
	}
	h.current = move
	return nil
}

// ToggleSortOrder flips the move list order.
func (h *History) ToggleSortOrder() {
	h.order = h.order.Toggle()
}

// Len returns the number of entries, including the game start.
func (h *History) Len() int { return len(h.entries) }

// CurrentMove returns the index of the selected entry.
func (h *History) CurrentMove() int { return h.current }

// SortOrder returns the move list order.
func (h *History) SortOrder() SortOrder { return h.order }

// Entries returns a copy of all entries in play order.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// CurrentBoard returns the board of the selected entry.
func (h *History) CurrentBoard() domain.Board {
	return h.entries[h.current].Board
}

// XIsNext reports whether X moves next from the selected entry.
func (h *History) XIsNext() bool { return h.current%2 == 0 }

// Next returns the side to move from the selected entry.
func (h *History) Next() domain.Cell { return domain.Mover(h.current) }

// Winner returns the completed line on the current board, if any.
func (h *History) Winner() (domain.Winner, bool) {
	return domain.CalculateWinner(h.CurrentBoard())
}

// IsDraw reports whether the current board is a draw.
func (h *History) IsDraw() bool {
	return domain.IsDraw(h.CurrentBoard())
}

// Status returns the line shown above the board.
func (h *History) Status() string {
	if w, ok := h.Winner(); ok {
		return "Winner: " + w.Player.String()
	}
	if h.IsDraw() {
		return "It's a draw!"
	}
	return "Next player: " + h.Next().String()
}

// MoveItem is one row of the move list.
type MoveItem struct {
	Move        int
	Location    *domain.Location
	Description string
	Current     bool
}

// Label is the text shown for the item: the jump description, or a marker
// for the selected entry.
func (m MoveItem) Label() string {
	if m.Current {
		return fmt.Sprintf("You are at move #%d", m.Move)
	}
	return m.Description
}

// Moves returns the move list in the configured order.
func (h *History) Moves() []MoveItem {
	items := make([]MoveItem, len(h.entries))
	for m, e := range h.entries {
		item := MoveItem{Move: m, Location: e.Location, Current: m == h.current}
		if m == 0 || e.Location == nil {
			item.Description = "Go to game start"
		} else {
			item.Description = fmt.Sprintf("Go to move #%d %s", m, *e.Location)
		}
		items[m] = item
	}
	if h.order == Descending {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// View is a snapshot of everything a renderer needs.
type View struct {
	Board       domain.Board
	CurrentMove int
	XIsNext     bool
	Winner      *domain.Winner
	Draw        bool
	Status      string
	Order       SortOrder
	Moves       []MoveItem
}

// SortLabel is the caption of the sort control.
func (v View) SortLabel() string {
	return "Sort " + v.Order.Toggle().String()
}

// Over reports whether no further move can be played on the board.
func (v View) Over() bool { return v.Winner != nil || v.Draw }

// Winning reports whether cell i belongs to the winning line.
func (v View) Winning(i int) bool {
	return v.Winner != nil && v.Winner.Contains(i)
}

// View returns a snapshot of the derived values.
func (h *History) View() View {
	v := View{
		Board:       h.CurrentBoard(),
		CurrentMove: h.current,
		XIsNext:     h.XIsNext(),
		Draw:        h.IsDraw(),
		Status:      h.Status(),
		Order:       h.order,
		Moves:       h.Moves(),
	}
	if w, ok := h.Winner(); ok {
		v.Winner = &w
	}
	return v
}
