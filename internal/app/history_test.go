package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

// playCells applies PlayAt for each cell in order.
func playCells(t *testing.T, h *History, cells ...int) {
	t.Helper()
	for n, i := range cells {
		require.NoError(t, h.PlayAt(i), "move %d at cell %d", n, i)
	}
}

func TestNewHistoryInitialState(t *testing.T) {
	h := NewHistory()

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.CurrentMove())
	assert.Equal(t, domain.Board{}, h.CurrentBoard())
	assert.True(t, h.XIsNext())
	assert.Equal(t, Ascending, h.SortOrder())
	assert.Nil(t, h.Entries()[0].Location)
	assert.Equal(t, "Next player: X", h.Status())
}

func TestPlayCenter(t *testing.T) {
	// Given: a fresh game
	h := NewHistory()
	next := domain.Board{}
	next[4] = domain.X

	// When: X plays the center
	require.NoError(t, h.Play(next))

	// Then: one entry was appended at (2, 2) and O is next
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.CurrentMove())
	assert.False(t, h.XIsNext())
	loc := h.Entries()[1].Location
	require.NotNil(t, loc)
	assert.Equal(t, domain.Location{Row: 2, Col: 2}, *loc)
	assert.Equal(t, "Next player: O", h.Status())
}

func TestPlayRejectsInvalidBoards(t *testing.T) {
	h := NewHistory()
	playCells(t, h, 0)

	cases := map[string]func() domain.Board{
		"unchanged": func() domain.Board { return h.CurrentBoard() },
		"two marks": func() domain.Board {
			b := h.CurrentBoard()
			b[1], b[2] = domain.O, domain.X
			return b
		},
		"wrong mover": func() domain.Board {
			b := h.CurrentBoard()
			b[1] = domain.X
			return b
		},
		"overwrite": func() domain.Board {
			b := h.CurrentBoard()
			b[0] = domain.O
			return b
		},
	}
	for name, mk := range cases {
		t.Run(name, func(t *testing.T) {
			err := h.Play(mk())
			assert.ErrorIs(t, err, ErrInvalidMove)
			assert.Equal(t, 2, h.Len())
			assert.Equal(t, 1, h.CurrentMove())
		})
	}
}

func TestPlayAtGate(t *testing.T) {
	t.Run("occupied cell", func(t *testing.T) {
		h := NewHistory()
		playCells(t, h, 4)

		err := h.PlayAt(4)
		assert.ErrorIs(t, err, domain.ErrOccupied)
		assert.Equal(t, 2, h.Len())
	})

	t.Run("out of bounds", func(t *testing.T) {
		h := NewHistory()
		assert.ErrorIs(t, h.PlayAt(9), domain.ErrOutOfBounds)
		assert.Equal(t, 1, h.Len())
	})

	t.Run("after a win", func(t *testing.T) {
		h := NewHistory()
		// X takes the top row.
		playCells(t, h, 0, 3, 1, 4, 2)
		require.Equal(t, "Winner: X", h.Status())

		assert.ErrorIs(t, h.PlayAt(8), domain.ErrGameOver)
		assert.Equal(t, 6, h.Len())
	})
}

func TestBranchDiscard(t *testing.T) {
	// Given: four moves played, so five entries at move 4
	h := NewHistory()
	playCells(t, h, 0, 1, 2, 3)
	require.Equal(t, 5, h.Len())
	require.Equal(t, 4, h.CurrentMove())

	// When: jumping back to move 2 and playing from there
	require.NoError(t, h.JumpTo(2))
	require.NoError(t, h.PlayAt(8))

	// Then: entries 3 and 4 are gone, replaced by the new move
	assert.Equal(t, 4, h.Len())
	assert.Equal(t, 3, h.CurrentMove())
	b := h.CurrentBoard()
	assert.Equal(t, domain.X, b[8])
	assert.Equal(t, domain.Empty, b[2])
	assert.Equal(t, domain.Empty, b[3])
	assert.Equal(t, domain.Location{Row: 3, Col: 3}, *h.Entries()[3].Location)
}

func TestBranchDiscardKeepsEarlierSnapshots(t *testing.T) {
	h := NewHistory()
	playCells(t, h, 0, 1, 2)
	before := h.Entries()

	require.NoError(t, h.JumpTo(1))
	require.NoError(t, h.PlayAt(5))

	assert.Len(t, before, 4)
	assert.Equal(t, domain.X, before[3].Board[2])
	assert.Equal(t, 3, h.Len())
}

func TestJumpTo(t *testing.T) {
	h := NewHistory()
	playCells(t, h, 4, 0, 8)

	t.Run("back to start", func(t *testing.T) {
		require.NoError(t, h.JumpTo(0))
		assert.Equal(t, domain.Board{}, h.CurrentBoard())
		assert.True(t, h.XIsNext())
		assert.Equal(t, 4, h.Len())
	})

	t.Run("odd move gives O", func(t *testing.T) {
		require.NoError(t, h.JumpTo(1))
		assert.False(t, h.XIsNext())
		assert.Equal(t, domain.O, h.Next())
	})

	t.Run("out of range fails without moving", func(t *testing.T) {
		require.NoError(t, h.JumpTo(3))
		for _, m := range []int{-1, 4, 100} {
			assert.ErrorIs(t, h.JumpTo(m), ErrMoveOutOfRange)
			assert.Equal(t, 3, h.CurrentMove())
		}
	})
}

func TestToggleSortOrder(t *testing.T) {
	h := NewHistory()
	playCells(t, h, 4, 0)
	require.NoError(t, h.JumpTo(1))

	entries, current, board := h.Entries(), h.CurrentMove(), h.CurrentBoard()
	asc := h.Moves()

	h.ToggleSortOrder()

	assert.Equal(t, Descending, h.SortOrder())
	assert.Equal(t, entries, h.Entries())
	assert.Equal(t, current, h.CurrentMove())
	assert.Equal(t, board, h.CurrentBoard())

	desc := h.Moves()
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}

	h.ToggleSortOrder()
	assert.Equal(t, asc, h.Moves())
}

func TestMovesDescriptions(t *testing.T) {
	h := NewHistory()
	playCells(t, h, 4, 0)
	require.NoError(t, h.JumpTo(1))

	moves := h.Moves()
	require.Len(t, moves, 3)

	assert.Equal(t, "Go to game start", moves[0].Description)
	assert.Equal(t, "Go to game start", moves[0].Label())
	assert.Equal(t, "Go to move #1 (2, 2)", moves[1].Description)
	assert.True(t, moves[1].Current)
	assert.Equal(t, "You are at move #1", moves[1].Label())
	assert.Equal(t, "Go to move #2 (1, 1)", moves[2].Label())
}

func TestDrawStatus(t *testing.T) {
	h := NewHistory()
	// X O X / X O O / O X X
	playCells(t, h, 0, 1, 2, 4, 3, 5, 7, 6, 8)

	assert.True(t, h.IsDraw())
	_, won := h.Winner()
	assert.False(t, won)
	assert.Equal(t, "It's a draw!", h.Status())
}

func TestViewSnapshot(t *testing.T) {
	h := NewHistory()
	// O wins on the anti-diagonal.
	playCells(t, h, 0, 2, 1, 4, 8, 6)

	v := h.View()
	require.NotNil(t, v.Winner)
	assert.Equal(t, domain.O, v.Winner.Player)
	assert.True(t, v.Over())
	for i := 0; i < 9; i++ {
		assert.Equal(t, i == 2 || i == 4 || i == 6, v.Winning(i), "cell %d", i)
	}
	assert.Equal(t, "Winner: O", v.Status)
	assert.Equal(t, "Sort Descending", v.SortLabel())
	assert.Equal(t, 6, v.CurrentMove)

	h.ToggleSortOrder()
	assert.Equal(t, "Sort Ascending", h.View().SortLabel())
	assert.Equal(t, 6, h.View().Moves[0].Move)
}
